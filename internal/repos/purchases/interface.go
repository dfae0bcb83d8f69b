package purchases

import (
	"database/sql"
	"errors"

	"github.com/google/uuid"
)

var ErrDuplicatePurchase = errors.New("duplicate purchase")

type Item struct {
	GameID     int64
	PriceCents int64
}

// Purchases is the receipt ledger: one row per successful checkout plus one
// row per purchased line item, written in the same transaction as the debit.
type Purchases interface {
	Insert(tx *sql.Tx, id uuid.UUID, userID, totalCents int64, items []Item) error
}

package cart

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

var (
	ErrDuplicateItem = errors.New("item already in cart")
	ErrItemNotFound  = errors.New("item not in cart")
)

// Entry is one staged game together with its catalogue detail, so listing a
// cart does not need a second round trip per item.
type Entry struct {
	GameID      int64
	Title       string
	PriceCents  int64
	DiscountPct int
	AddedAt     time.Time
}

type Cart interface {
	Add(ctx context.Context, userID, gameID int64) error
	Remove(ctx context.Context, userID, gameID int64) error
	List(ctx context.Context, userID int64) ([]Entry, error)
	// ListIDs returns the cart snapshot (insertion order) inside an open
	// transaction; the checkout engine works off this snapshot.
	ListIDs(tx *sql.Tx, userID int64) ([]int64, error)
	// Clear removes only the given subset of the user's cart entries.
	Clear(tx *sql.Tx, userID int64, gameIDs []int64) error
}

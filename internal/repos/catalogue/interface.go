package catalogue

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

var ErrGameNotFound = errors.New("game not found")

type Game struct {
	ID          int64
	Title       string
	Publisher   string
	PriceCents  int64
	DiscountPct int
	Rating      float64
	ReleasedOn  *time.Time
}

// Catalogue is read-only from this service's point of view; games are
// maintained elsewhere.
type Catalogue interface {
	ByID(ctx context.Context, gameID int64) (*Game, error)
	ByIDTx(tx *sql.Tx, gameID int64) (*Game, error)
	Search(ctx context.Context, query string) ([]Game, error)
}

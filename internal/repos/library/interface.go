package library

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

var ErrNotOwned = errors.New("game not owned")

type Entry struct {
	GameID       int64
	Title        string
	PurchasedAt  time.Time
	LastPlayedAt *time.Time
}

// Library is the per-user ownership set. purchased_at is written once by the
// checkout engine and never updated; last_played_at moves on play events.
type Library interface {
	IsOwned(tx *sql.Tx, userID, gameID int64) (bool, error)
	Add(tx *sql.Tx, userID, gameID int64, purchasedAt time.Time) error
	TouchLastPlayed(ctx context.Context, userID, gameID int64, when time.Time) error
	ListOwned(ctx context.Context, userID int64) ([]Entry, error)
}

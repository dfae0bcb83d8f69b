package library

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/fastprodman/gamestore/internal/repos/library"
)

var _ library.Library = (*libraryRepo)(nil)

type libraryRepo struct{ db *sql.DB }

func New(db *sql.DB) *libraryRepo {
	return &libraryRepo{db: db}
}

func (r *libraryRepo) IsOwned(tx *sql.Tx, userID, gameID int64) (bool, error) {
	var owned bool

	err := tx.QueryRow(`
		SELECT EXISTS (
			SELECT 1
			FROM library
			WHERE user_id = $1
			  AND game_id = $2
		)
	`, userID, gameID).Scan(&owned)
	if err != nil {
		return false, fmt.Errorf("check ownership: %w", err)
	}

	return owned, nil
}

func (r *libraryRepo) Add(tx *sql.Tx, userID, gameID int64, purchasedAt time.Time) error {
	_, err := tx.Exec(`
		INSERT INTO library (user_id, game_id, purchased_at)
		VALUES ($1, $2, $3)
	`, userID, gameID, purchasedAt)
	if err != nil {
		return fmt.Errorf("insert library entry: %w", err)
	}

	return nil
}

func (r *libraryRepo) TouchLastPlayed(ctx context.Context, userID, gameID int64, when time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE library
		SET last_played_at = $3
		WHERE user_id = $1
		  AND game_id = $2
	`, userID, gameID, when)
	if err != nil {
		return fmt.Errorf("touch last played: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}

	if affected == 0 {
		return library.ErrNotOwned
	}

	return nil
}

func (r *libraryRepo) ListOwned(ctx context.Context, userID int64) ([]library.Entry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT l.game_id, g.title, l.purchased_at, l.last_played_at
		FROM library l
		JOIN games g ON g.id = l.game_id
		WHERE l.user_id = $1
		ORDER BY l.purchased_at, l.game_id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list library: %w", err)
	}
	defer rows.Close()

	var entries []library.Entry
	for rows.Next() {
		var e library.Entry
		err = rows.Scan(&e.GameID, &e.Title, &e.PurchasedAt, &e.LastPlayedAt)
		if err != nil {
			return nil, fmt.Errorf("scan library entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate library: %w", err)
	}

	return entries, nil
}

package cart

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/fastprodman/gamestore/internal/repos/cart"
)

var _ cart.Cart = (*cartRepo)(nil)

type cartRepo struct{ db *sql.DB }

func New(db *sql.DB) *cartRepo {
	return &cartRepo{db: db}
}

func (r *cartRepo) Add(ctx context.Context, userID, gameID int64) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO cart_items (user_id, game_id)
		VALUES ($1, $2)
	`, userID, gameID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return cart.ErrDuplicateItem
		}

		return fmt.Errorf("insert cart item: %w", err)
	}

	return nil
}

func (r *cartRepo) Remove(ctx context.Context, userID, gameID int64) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM cart_items
		WHERE user_id = $1
		  AND game_id = $2
	`, userID, gameID)
	if err != nil {
		return fmt.Errorf("delete cart item: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}

	if affected == 0 {
		return cart.ErrItemNotFound
	}

	return nil
}

func (r *cartRepo) List(ctx context.Context, userID int64) ([]cart.Entry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT c.game_id, g.title, g.price_cents, g.discount_pct, c.added_at
		FROM cart_items c
		JOIN games g ON g.id = c.game_id
		WHERE c.user_id = $1
		ORDER BY c.added_at, c.game_id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list cart: %w", err)
	}
	defer rows.Close()

	var entries []cart.Entry
	for rows.Next() {
		var e cart.Entry
		err = rows.Scan(&e.GameID, &e.Title, &e.PriceCents, &e.DiscountPct, &e.AddedAt)
		if err != nil {
			return nil, fmt.Errorf("scan cart entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cart: %w", err)
	}

	return entries, nil
}

func (r *cartRepo) ListIDs(tx *sql.Tx, userID int64) ([]int64, error) {
	rows, err := tx.Query(`
		SELECT game_id
		FROM cart_items
		WHERE user_id = $1
		ORDER BY added_at, game_id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list cart ids: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		err = rows.Scan(&id)
		if err != nil {
			return nil, fmt.Errorf("scan cart id: %w", err)
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cart ids: %w", err)
	}

	return ids, nil
}

func (r *cartRepo) Clear(tx *sql.Tx, userID int64, gameIDs []int64) error {
	if len(gameIDs) == 0 {
		return nil
	}

	_, err := tx.Exec(`
		DELETE FROM cart_items
		WHERE user_id = $1
		  AND game_id = ANY($2)
	`, userID, gameIDs)
	if err != nil {
		return fmt.Errorf("clear cart items: %w", err)
	}

	return nil
}

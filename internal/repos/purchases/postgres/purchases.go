package purchases

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/fastprodman/gamestore/internal/repos/purchases"
)

var _ purchases.Purchases = (*purchasesRepo)(nil)

type purchasesRepo struct{ db *sql.DB }

func New(db *sql.DB) *purchasesRepo {
	return &purchasesRepo{db: db}
}

func (r *purchasesRepo) Insert(tx *sql.Tx, id uuid.UUID, userID, totalCents int64, items []purchases.Item) error {
	_, err := tx.Exec(`
		INSERT INTO purchases (id, user_id, total_cents)
		VALUES ($1, $2, $3)
	`, id, userID, totalCents)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return purchases.ErrDuplicatePurchase
		}

		return fmt.Errorf("insert purchase: %w", err)
	}

	for _, item := range items {
		_, err = tx.Exec(`
			INSERT INTO purchase_items (purchase_id, game_id, price_cents)
			VALUES ($1, $2, $3)
		`, id, item.GameID, item.PriceCents)
		if err != nil {
			return fmt.Errorf("insert purchase item: %w", err)
		}
	}

	return nil
}

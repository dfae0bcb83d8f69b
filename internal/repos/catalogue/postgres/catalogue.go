package catalogue

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fastprodman/gamestore/internal/repos/catalogue"
)

var _ catalogue.Catalogue = (*catalogueRepo)(nil)

type catalogueRepo struct{ db *sql.DB }

func New(db *sql.DB) *catalogueRepo {
	return &catalogueRepo{db: db}
}

const gameColumns = `id, title, publisher, price_cents, discount_pct, rating, released_on`

func scanGame(row *sql.Row) (*catalogue.Game, error) {
	var g catalogue.Game

	err := row.Scan(&g.ID, &g.Title, &g.Publisher, &g.PriceCents, &g.DiscountPct, &g.Rating, &g.ReleasedOn)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, catalogue.ErrGameNotFound
		}

		return nil, fmt.Errorf("scan game: %w", err)
	}

	return &g, nil
}

func (r *catalogueRepo) ByID(ctx context.Context, gameID int64) (*catalogue.Game, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+gameColumns+`
		FROM games
		WHERE id = $1
	`, gameID)

	return scanGame(row)
}

func (r *catalogueRepo) ByIDTx(tx *sql.Tx, gameID int64) (*catalogue.Game, error) {
	row := tx.QueryRow(`
		SELECT `+gameColumns+`
		FROM games
		WHERE id = $1
	`, gameID)

	return scanGame(row)
}

func (r *catalogueRepo) Search(ctx context.Context, query string) ([]catalogue.Game, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+gameColumns+`
		FROM games
		WHERE $1 = '' OR title ILIKE '%' || $1 || '%'
		ORDER BY title
	`, query)
	if err != nil {
		return nil, fmt.Errorf("search games: %w", err)
	}
	defer rows.Close()

	var games []catalogue.Game
	for rows.Next() {
		var g catalogue.Game
		err = rows.Scan(&g.ID, &g.Title, &g.Publisher, &g.PriceCents, &g.DiscountPct, &g.Rating, &g.ReleasedOn)
		if err != nil {
			return nil, fmt.Errorf("scan game row: %w", err)
		}
		games = append(games, g)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate games: %w", err)
	}

	return games, nil
}

package reviews

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/fastprodman/gamestore/internal/repos/reviews"
)

var _ reviews.Reviews = (*reviewsRepo)(nil)

type reviewsRepo struct{ db *sql.DB }

func New(db *sql.DB) *reviewsRepo {
	return &reviewsRepo{db: db}
}

func (r *reviewsRepo) Add(ctx context.Context, userID, gameID int64, rating int, body string) (int64, error) {
	var id int64

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO reviews (user_id, game_id, rating, body)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, userID, gameID, rating, body).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505": // unique_violation
				return 0, reviews.ErrAlreadyReviewed
			}
		}

		return 0, fmt.Errorf("insert review: %w", err)
	}

	return id, nil
}

func (r *reviewsRepo) ListByGame(ctx context.Context, gameID, viewerID int64) ([]reviews.Review, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT r.id, r.game_id, r.user_id, u.username, r.rating, r.body, r.created_at,
		       count(rl.user_id)                        AS likes,
		       COALESCE(bool_or(rl.user_id = $2), false) AS liked
		FROM reviews r
		JOIN users u ON u.id = r.user_id
		LEFT JOIN review_likes rl ON rl.review_id = r.id
		WHERE r.game_id = $1
		GROUP BY r.id, u.username
		ORDER BY r.created_at DESC, r.id DESC
	`, gameID, viewerID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	var out []reviews.Review
	for rows.Next() {
		var rv reviews.Review
		err = rows.Scan(&rv.ID, &rv.GameID, &rv.UserID, &rv.Username, &rv.Rating, &rv.Body, &rv.CreatedAt, &rv.Likes, &rv.Liked)
		if err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		out = append(out, rv)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reviews: %w", err)
	}

	return out, nil
}

func (r *reviewsRepo) SetLike(ctx context.Context, reviewID, userID int64, liked bool) error {
	if liked {
		_, err := r.db.ExecContext(ctx, `
			INSERT INTO review_likes (review_id, user_id)
			VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, reviewID, userID)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
				return reviews.ErrReviewNotFound
			}

			return fmt.Errorf("insert review like: %w", err)
		}

		return nil
	}

	_, err := r.db.ExecContext(ctx, `
		DELETE FROM review_likes
		WHERE review_id = $1
		  AND user_id = $2
	`, reviewID, userID)
	if err != nil {
		return fmt.Errorf("delete review like: %w", err)
	}

	return nil
}

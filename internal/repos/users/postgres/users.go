package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/fastprodman/gamestore/internal/repos/users"
)

var _ users.Users = (*usersRepo)(nil)

type usersRepo struct{ db *sql.DB }

func New(db *sql.DB) *usersRepo {
	return &usersRepo{db: db}
}

func (r *usersRepo) Create(ctx context.Context, username, passwordHash, email string, dateOfBirth *time.Time) (int64, error) {
	var id int64

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO users (username, password_hash, email, date_of_birth)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, username, passwordHash, email, dateOfBirth).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return 0, users.ErrUserExists
		}

		return 0, fmt.Errorf("insert user: %w", err)
	}

	return id, nil
}

func (r *usersRepo) ByUsername(ctx context.Context, username string) (*users.User, error) {
	var u users.User

	err := r.db.QueryRowContext(ctx, `
		SELECT id, username, password_hash, email, date_of_birth, balance_cents, created_at
		FROM users
		WHERE username = $1
	`, username).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Email, &u.DateOfBirth, &u.BalanceCents, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, users.ErrUserNotFound
		}

		return nil, fmt.Errorf("get user by username: %w", err)
	}

	return &u, nil
}

func (r *usersRepo) Exists(tx *sql.Tx, userID int64) error {
	var one int

	err := tx.QueryRow(`
		SELECT 1
		FROM users
		WHERE id = $1
	`, userID).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return users.ErrUserNotFound
		}

		return fmt.Errorf("check user exists: %w", err)
	}

	return nil
}

func (r *usersRepo) GetBalance(ctx context.Context, userID int64) (int64, error) {
	var balance int64

	err := r.db.QueryRowContext(ctx, `
		SELECT balance_cents
		FROM users
		WHERE id = $1
	`, userID).Scan(&balance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, users.ErrUserNotFound
		}

		return 0, fmt.Errorf("get balance: %w", err)
	}

	return balance, nil
}

func (r *usersRepo) LockAndGetBalance(tx *sql.Tx, userID int64) (int64, error) {
	var balance int64

	err := tx.QueryRow(`
		SELECT balance_cents
		FROM users
		WHERE id = $1
		FOR UPDATE
	`, userID).Scan(&balance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, users.ErrUserNotFound
		}

		return 0, fmt.Errorf("lock/get balance: %w", err)
	}

	return balance, nil
}

func (r *usersRepo) Credit(tx *sql.Tx, userID int64, amountCents int64) error {
	_, err := tx.Exec(`
		UPDATE users
		SET balance_cents = balance_cents + $2
		WHERE id = $1
	`, userID, amountCents)
	if err != nil {
		return fmt.Errorf("credit wallet: %w", err)
	}

	return nil
}

func (r *usersRepo) Debit(tx *sql.Tx, userID int64, amountCents int64) error {
	res, err := tx.Exec(`
		UPDATE users
		SET balance_cents = balance_cents - $2
		WHERE id = $1
		  AND balance_cents >= $2
	`, userID, amountCents)
	if err != nil {
		return fmt.Errorf("debit wallet: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}

	if affected == 0 {
		return users.ErrInsufficientFunds
	}

	return nil
}

package users

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserExists        = errors.New("user already exists")
	ErrInsufficientFunds = errors.New("insufficient funds")
)

type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Email        string
	DateOfBirth  *time.Time
	BalanceCents int64
	CreatedAt    time.Time
}

// Users is the account store: credentials plus the wallet balance, which is
// an attribute of the user row. Tx-taking methods are meant to be composed
// into a single transaction by the caller.
type Users interface {
	Create(ctx context.Context, username, passwordHash, email string, dateOfBirth *time.Time) (int64, error)
	ByUsername(ctx context.Context, username string) (*User, error)
	Exists(tx *sql.Tx, userID int64) error
	GetBalance(ctx context.Context, userID int64) (int64, error)
	LockAndGetBalance(tx *sql.Tx, userID int64) (int64, error)
	Credit(tx *sql.Tx, userID int64, amountCents int64) error
	Debit(tx *sql.Tx, userID int64, amountCents int64) error
}

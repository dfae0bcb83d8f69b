// Package account covers signup, login and wallet top-ups. Authentication
// stays a bare credential check: the handler gets a user id back and the
// client keeps it, the way the storefront has always worked.
package account

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/fastprodman/gamestore/internal/infra/pgutils"
	"github.com/fastprodman/gamestore/internal/repos/users"
	pgusers "github.com/fastprodman/gamestore/internal/repos/users/postgres"
)

var ErrIncorrectCredentials = errors.New("incorrect credentials")

type Service struct {
	db    *sql.DB
	users users.Users
}

func New(db *sql.DB) *Service {
	return &Service{
		db:    db,
		users: pgusers.New(db),
	}
}

func (s *Service) SignUp(ctx context.Context, username, password, email string, dateOfBirth *time.Time) (int64, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}

	id, err := s.users.Create(ctx, username, string(hash), email, dateOfBirth)
	if err != nil {
		return 0, fmt.Errorf("create user: %w", err)
	}

	return id, nil
}

func (s *Service) LogIn(ctx context.Context, username, password string) (int64, error) {
	u, err := s.users.ByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			return 0, ErrIncorrectCredentials
		}

		return 0, fmt.Errorf("fetch user: %w", err)
	}

	err = bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	if err != nil {
		return 0, ErrIncorrectCredentials
	}

	return u.ID, nil
}

func (s *Service) Balance(ctx context.Context, userID int64) (int64, error) {
	balance, err := s.users.GetBalance(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("get balance: %w", err)
	}

	return balance, nil
}

// TopUp credits the wallet inside one transaction so the existence check and
// the credit cannot interleave with a checkout's debit.
func (s *Service) TopUp(ctx context.Context, userID, amountCents int64) error {
	err := pgutils.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		err := s.users.Exists(tx, userID)
		if err != nil {
			return fmt.Errorf("check user exists: %w", err)
		}

		err = s.users.Credit(tx, userID, amountCents)
		if err != nil {
			return fmt.Errorf("credit wallet: %w", err)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("top up: %w", err)
	}

	return nil
}

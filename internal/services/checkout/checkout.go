// Package checkout implements the wallet-funded checkout engine: it converts
// a set of cart line items into library ownership inside a single database
// transaction, debiting the wallet by the discounted total or changing
// nothing at all.
package checkout

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fastprodman/gamestore/internal/infra/metrics"
	"github.com/fastprodman/gamestore/internal/infra/pgutils"
	"github.com/fastprodman/gamestore/internal/repos/cart"
	pgcart "github.com/fastprodman/gamestore/internal/repos/cart/postgres"
	"github.com/fastprodman/gamestore/internal/repos/catalogue"
	pgcatalogue "github.com/fastprodman/gamestore/internal/repos/catalogue/postgres"
	"github.com/fastprodman/gamestore/internal/repos/library"
	pglibrary "github.com/fastprodman/gamestore/internal/repos/library/postgres"
	"github.com/fastprodman/gamestore/internal/repos/purchases"
	pgpurchases "github.com/fastprodman/gamestore/internal/repos/purchases/postgres"
	"github.com/fastprodman/gamestore/internal/repos/users"
	pgusers "github.com/fastprodman/gamestore/internal/repos/users/postgres"
)

var (
	ErrInvalidRequest    = errors.New("invalid checkout request")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrStoreUnavailable  = errors.New("store unavailable")
)

type Status string

const (
	StatusPurchased         Status = "purchased"
	StatusAlreadyOwned      Status = "already_owned"
	StatusNotFound          Status = "not_found"
	StatusInsufficientFunds Status = "insufficient_funds"
)

// Line is the per-item outcome for one requested game id.
// PriceCents is the effective (discounted) price and is zero for lines that
// were not priced (not_found, already_owned).
type Line struct {
	GameID     int64
	Status     Status
	PriceCents int64
}

// Result summarizes one checkout invocation. PurchaseID is the uuid of the
// receipt row and is the zero value when nothing was purchased.
type Result struct {
	PurchaseID   uuid.UUID
	TotalCents   int64
	BalanceCents int64
	Lines        []Line
}

type Engine struct {
	db        *sql.DB
	users     users.Users
	catalogue catalogue.Catalogue
	cart      cart.Cart
	library   library.Library
	purchases purchases.Purchases
	metrics   *metrics.CheckoutMetrics
}

// New wires the engine against the postgres repos. Metrics may be nil.
func New(db *sql.DB, m *metrics.CheckoutMetrics) *Engine {
	return &Engine{
		db:        db,
		users:     pgusers.New(db),
		catalogue: pgcatalogue.New(db),
		cart:      pgcart.New(db),
		library:   pglibrary.New(db),
		purchases: pgpurchases.New(db),
		metrics:   m,
	}
}

// Checkout purchases the given games for the user, all or nothing.
//
// Inside one transaction it:
//
//  1. Locks the user's wallet row (FOR UPDATE), which serializes concurrent
//     checkouts for the same user.
//  2. Resolves and prices each distinct game id in input order, skipping
//     missing games (not_found) and games already in the library
//     (already_owned).
//  3. Compares the wallet balance against the discounted total; if it falls
//     short the whole call fails with ErrInsufficientFunds and no state
//     changes.
//  4. Debits the wallet (with a second balance >= amount guard), inserts the
//     library rows, clears purchased and already-owned ids from the cart and
//     writes a purchase receipt.
//
// Lines come back in input order, one per distinct id. On
// ErrInsufficientFunds the returned Result still carries the lines, each
// marked insufficient_funds, plus the total that could not be covered.
func (e *Engine) Checkout(ctx context.Context, userID int64, gameIDs []int64) (*Result, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("%w: user id must be positive", ErrInvalidRequest)
	}
	if len(gameIDs) == 0 {
		return nil, fmt.Errorf("%w: no game ids", ErrInvalidRequest)
	}

	start := time.Now()

	res, err := e.run(ctx, userID, func(*sql.Tx) ([]int64, error) {
		return dedup(gameIDs), nil
	})

	e.observe(start, res, err)

	return res, err
}

// CheckoutCart purchases the user's entire cart. The snapshot is taken
// inside the transaction, after the wallet lock, so a concurrent cart edit
// either lands before the snapshot or stays for the next checkout.
func (e *Engine) CheckoutCart(ctx context.Context, userID int64) (*Result, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("%w: user id must be positive", ErrInvalidRequest)
	}

	start := time.Now()

	res, err := e.run(ctx, userID, func(tx *sql.Tx) ([]int64, error) {
		ids, err := e.cart.ListIDs(tx, userID)
		if err != nil {
			return nil, fmt.Errorf("snapshot cart: %w", err)
		}
		if len(ids) == 0 {
			return nil, ErrEmptyCart
		}
		return ids, nil
	})

	e.observe(start, res, err)

	return res, err
}

func (e *Engine) run(ctx context.Context, userID int64, snapshot func(*sql.Tx) ([]int64, error)) (*Result, error) {
	var res *Result

	err := pgutils.WithTx(ctx, e.db, func(tx *sql.Tx) error {
		balance, err := e.users.LockAndGetBalance(tx, userID)
		if err != nil {
			return fmt.Errorf("lock wallet: %w", err)
		}

		gameIDs, err := snapshot(tx)
		if err != nil {
			return err
		}

		lines := make([]Line, 0, len(gameIDs))

		var items []purchases.Item
		var clearIDs []int64
		var totalCents int64

		for _, gameID := range gameIDs {
			game, err := e.catalogue.ByIDTx(tx, gameID)
			if err != nil {
				if errors.Is(err, catalogue.ErrGameNotFound) {
					lines = append(lines, Line{GameID: gameID, Status: StatusNotFound})
					continue
				}
				return fmt.Errorf("resolve game %d: %w", gameID, err)
			}

			owned, err := e.library.IsOwned(tx, userID, gameID)
			if err != nil {
				return fmt.Errorf("check ownership of game %d: %w", gameID, err)
			}
			if owned {
				// An ownership row means the cart pair must not persist.
				lines = append(lines, Line{GameID: gameID, Status: StatusAlreadyOwned})
				clearIDs = append(clearIDs, gameID)
				continue
			}

			price := EffectivePriceCents(game.PriceCents, game.DiscountPct)
			lines = append(lines, Line{GameID: gameID, Status: StatusPurchased, PriceCents: price})
			items = append(items, purchases.Item{GameID: gameID, PriceCents: price})
			totalCents += price
		}

		if balance < totalCents {
			res = insufficientResult(gameIDs, totalCents, balance)
			return ErrInsufficientFunds
		}

		result := &Result{TotalCents: totalCents, BalanceCents: balance, Lines: lines}

		if len(items) > 0 {
			if totalCents > 0 {
				err = e.users.Debit(tx, userID, totalCents)
				if err != nil {
					return fmt.Errorf("debit wallet: %w", err)
				}
				result.BalanceCents = balance - totalCents
			}

			now := time.Now().UTC()
			for _, item := range items {
				err = e.library.Add(tx, userID, item.GameID, now)
				if err != nil {
					return fmt.Errorf("add library entry for game %d: %w", item.GameID, err)
				}
				clearIDs = append(clearIDs, item.GameID)
			}

			result.PurchaseID = uuid.New()
			err = e.purchases.Insert(tx, result.PurchaseID, userID, totalCents, items)
			if err != nil {
				return fmt.Errorf("record purchase: %w", err)
			}
		}

		err = e.cart.Clear(tx, userID, clearIDs)
		if err != nil {
			return fmt.Errorf("clear cart: %w", err)
		}

		res = result
		return nil
	})
	if err != nil {
		return res, e.mapError(err)
	}

	return res, nil
}

// mapError passes domain conditions through and wraps everything else as a
// retryable store failure.
func (e *Engine) mapError(err error) error {
	switch {
	case errors.Is(err, ErrInsufficientFunds),
		errors.Is(err, users.ErrInsufficientFunds):
		return ErrInsufficientFunds
	case errors.Is(err, users.ErrUserNotFound):
		return fmt.Errorf("%w: %v", ErrInvalidRequest, users.ErrUserNotFound)
	case errors.Is(err, ErrEmptyCart):
		return ErrEmptyCart
	default:
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
}

func (e *Engine) observe(start time.Time, res *Result, err error) {
	if e.metrics == nil {
		return
	}

	// A completed call without a receipt (all lines already_owned or
	// not_found) bought nothing and must not count as a purchase.
	outcome := "no_op"
	switch {
	case err == nil:
		if res != nil && res.PurchaseID != uuid.Nil {
			outcome = "purchased"
			e.metrics.AmountDue.Observe(float64(res.TotalCents))
		}
	case errors.Is(err, ErrInsufficientFunds):
		outcome = "insufficient_funds"
	case errors.Is(err, ErrInvalidRequest), errors.Is(err, ErrEmptyCart):
		outcome = "invalid"
	default:
		outcome = "error"
	}

	e.metrics.Outcomes.WithLabelValues(outcome).Inc()
	e.metrics.DurationMS.Observe(float64(time.Since(start).Milliseconds()))
}

func insufficientResult(gameIDs []int64, totalCents, balanceCents int64) *Result {
	lines := make([]Line, 0, len(gameIDs))
	for _, id := range gameIDs {
		lines = append(lines, Line{GameID: id, Status: StatusInsufficientFunds})
	}

	return &Result{TotalCents: totalCents, BalanceCents: balanceCents, Lines: lines}
}

func dedup(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}

	return out
}

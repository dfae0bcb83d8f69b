package api

import (
	"database/sql"

	"github.com/fastprodman/gamestore/internal/repos/cart"
	pgcart "github.com/fastprodman/gamestore/internal/repos/cart/postgres"
	"github.com/fastprodman/gamestore/internal/repos/catalogue"
	pgcatalogue "github.com/fastprodman/gamestore/internal/repos/catalogue/postgres"
	"github.com/fastprodman/gamestore/internal/repos/library"
	pglibrary "github.com/fastprodman/gamestore/internal/repos/library/postgres"
	"github.com/fastprodman/gamestore/internal/repos/reviews"
	pgreviews "github.com/fastprodman/gamestore/internal/repos/reviews/postgres"
	"github.com/fastprodman/gamestore/internal/services/account"
	"github.com/fastprodman/gamestore/internal/services/checkout"
)

// HandlerProvider wraps the storefront services and exposes HTTP handlers.
type HandlerProvider struct {
	accounts  *account.Service
	engine    *checkout.Engine
	catalogue catalogue.Catalogue
	cart      cart.Cart
	library   library.Library
	reviews   reviews.Reviews
}

// NewHandler builds the provider on top of one shared connection pool.
func NewHandler(db *sql.DB, accounts *account.Service, engine *checkout.Engine) *HandlerProvider {
	return &HandlerProvider{
		accounts:  accounts,
		engine:    engine,
		catalogue: pgcatalogue.New(db),
		cart:      pgcart.New(db),
		library:   pglibrary.New(db),
		reviews:   pgreviews.New(db),
	}
}

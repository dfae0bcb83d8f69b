package api

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fastprodman/gamestore/internal/infra/metrics"
	"github.com/fastprodman/gamestore/internal/services/account"
	"github.com/fastprodman/gamestore/internal/services/checkout"
)

// NewRouter constructs the storefront router with all endpoints registered.
func NewRouter(db *sql.DB, accounts *account.Service, engine *checkout.Engine) http.Handler {
	h := NewHandler(db, accounts, engine)
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/signup", h.SignUpHandler)
		r.Post("/login", h.LogInHandler)

		r.Get("/games", h.ListGamesHandler)
		r.Get("/game/{gameID}", h.GameHandler)

		r.Post("/cart/add", h.CartAddHandler)
		r.Post("/cart/remove", h.CartRemoveHandler)
		r.Get("/cart/{userID}", h.CartHandler)
		r.Post("/cart/checkout", h.CheckoutCartHandler)
		r.Post("/purchase", h.BuyNowHandler)

		r.Get("/library/{userID}", h.LibraryHandler)
		r.Post("/library/play", h.PlayHandler)

		r.Get("/user/{userID}/balance", h.BalanceHandler)
		r.Post("/user/{userID}/wallet/topup", h.TopUpHandler)

		r.Get("/reviews/{gameID}", h.ReviewsHandler)
		r.Post("/review", h.AddReviewHandler)
		r.Post("/review/like", h.LikeReviewHandler)
	})

	return r
}

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/fastprodman/gamestore/internal/repos/catalogue"
	"github.com/fastprodman/gamestore/internal/services/checkout"
)

type gameResponse struct {
	ID             int64   `json:"id"`
	Title          string  `json:"title"`
	Publisher      string  `json:"publisher"`
	Price          string  `json:"price"`
	DiscountPct    int     `json:"discountPct"`
	EffectivePrice string  `json:"effectivePrice"`
	Rating         float64 `json:"rating"`
	ReleasedOn     string  `json:"releasedOn,omitempty"`
}

func toGameResponse(g catalogue.Game) gameResponse {
	resp := gameResponse{
		ID:             g.ID,
		Title:          g.Title,
		Publisher:      g.Publisher,
		Price:          centsString(g.PriceCents),
		DiscountPct:    g.DiscountPct,
		EffectivePrice: centsString(checkout.EffectivePriceCents(g.PriceCents, g.DiscountPct)),
		Rating:         g.Rating,
	}
	if g.ReleasedOn != nil {
		resp.ReleasedOn = g.ReleasedOn.Format(time.DateOnly)
	}

	return resp
}

// ListGamesHandler handles GET /api/games?q=
func (h *HandlerProvider) ListGamesHandler(w http.ResponseWriter, r *http.Request) {
	games, err := h.catalogue.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	out := make([]gameResponse, 0, len(games))
	for _, g := range games {
		out = append(out, toGameResponse(g))
	}

	writeJSON(w, http.StatusOK, out)
}

// GameHandler handles GET /api/game/{gameID}
func (h *HandlerProvider) GameHandler(w http.ResponseWriter, r *http.Request) {
	gameID, err := parseIDFromPath(r, "gameID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid gameID in path")
		return
	}

	game, err := h.catalogue.ByID(r.Context(), gameID)
	if err != nil {
		if errors.Is(err, catalogue.ErrGameNotFound) {
			writeError(w, http.StatusNotFound, "game not found")
			return
		}

		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, toGameResponse(*game))
}

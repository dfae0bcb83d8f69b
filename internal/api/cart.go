package api

import (
	"errors"
	"net/http"

	"github.com/fastprodman/gamestore/internal/repos/cart"
	"github.com/fastprodman/gamestore/internal/services/checkout"
)

type cartItemRequest struct {
	UserID int64 `json:"userID"`
	GameID int64 `json:"gameID"`
}

func (req cartItemRequest) validate() error {
	if req.UserID <= 0 || req.GameID <= 0 {
		return errors.New("userID and gameID must be positive")
	}
	return nil
}

// CartAddHandler handles POST /api/cart/add
func (h *HandlerProvider) CartAddHandler(w http.ResponseWriter, r *http.Request) {
	var req cartItemRequest
	err := decodeJSON(w, r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err = req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	err = h.cart.Add(r.Context(), req.UserID, req.GameID)
	if err != nil {
		switch {
		case errors.Is(err, cart.ErrDuplicateItem):
			writeError(w, http.StatusConflict, "game already in cart")
		default:
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"status": "added"})
}

// CartRemoveHandler handles POST /api/cart/remove
func (h *HandlerProvider) CartRemoveHandler(w http.ResponseWriter, r *http.Request) {
	var req cartItemRequest
	err := decodeJSON(w, r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err = req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	err = h.cart.Remove(r.Context(), req.UserID, req.GameID)
	if err != nil {
		if errors.Is(err, cart.ErrItemNotFound) {
			writeError(w, http.StatusNotFound, "game not in cart")
			return
		}

		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

type cartEntryResponse struct {
	GameID         int64  `json:"gameId"`
	Title          string `json:"title"`
	Price          string `json:"price"`
	DiscountPct    int    `json:"discountPct"`
	EffectivePrice string `json:"effectivePrice"`
}

// CartHandler handles GET /api/cart/{userID}
func (h *HandlerProvider) CartHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := parseIDFromPath(r, "userID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid userID in path")
		return
	}

	entries, err := h.cart.List(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	var totalCents int64
	out := make([]cartEntryResponse, 0, len(entries))
	for _, e := range entries {
		effective := checkout.EffectivePriceCents(e.PriceCents, e.DiscountPct)
		totalCents += effective
		out = append(out, cartEntryResponse{
			GameID:         e.GameID,
			Title:          e.Title,
			Price:          centsString(e.PriceCents),
			DiscountPct:    e.DiscountPct,
			EffectivePrice: centsString(effective),
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"items": out,
		"total": centsString(totalCents),
	})
}

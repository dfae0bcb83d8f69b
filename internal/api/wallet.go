package api

import (
	"errors"
	"net/http"

	"github.com/fastprodman/gamestore/internal/repos/users"
)

// BalanceHandler handles GET /api/user/{userID}/balance
func (h *HandlerProvider) BalanceHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := parseIDFromPath(r, "userID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid userID in path")
		return
	}

	balance, err := h.accounts.Balance(r.Context(), userID)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}

		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"userId":  userID,
		"balance": centsString(balance),
	})
}

type topUpRequest struct {
	Amount string `json:"amount"`
}

// TopUpHandler handles POST /api/user/{userID}/wallet/topup
func (h *HandlerProvider) TopUpHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := parseIDFromPath(r, "userID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid userID in path")
		return
	}

	var req topUpRequest
	err = decodeJSON(w, r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	amountCents, err := parseAmountCents(req.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	err = h.accounts.TopUp(r.Context(), userID, amountCents)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}

		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

package api

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/fastprodman/gamestore/internal/services/checkout"
)

type checkoutLineResponse struct {
	GameID int64  `json:"gameId"`
	Status string `json:"status"`
	Price  string `json:"price,omitempty"`
}

type checkoutResponse struct {
	PurchaseID string                 `json:"purchaseId,omitempty"`
	Total      string                 `json:"total"`
	Balance    string                 `json:"balance"`
	Lines      []checkoutLineResponse `json:"lines"`
}

func toCheckoutResponse(res *checkout.Result) checkoutResponse {
	resp := checkoutResponse{
		Total:   centsString(res.TotalCents),
		Balance: centsString(res.BalanceCents),
		Lines:   make([]checkoutLineResponse, 0, len(res.Lines)),
	}
	if res.PurchaseID != uuid.Nil {
		resp.PurchaseID = res.PurchaseID.String()
	}
	for _, line := range res.Lines {
		lr := checkoutLineResponse{GameID: line.GameID, Status: string(line.Status)}
		if line.Status == checkout.StatusPurchased {
			lr.Price = centsString(line.PriceCents)
		}
		resp.Lines = append(resp.Lines, lr)
	}

	return resp
}

func (h *HandlerProvider) writeCheckoutOutcome(w http.ResponseWriter, res *checkout.Result, err error) {
	if err == nil {
		writeJSON(w, http.StatusOK, toCheckoutResponse(res))
		return
	}

	switch {
	case errors.Is(err, checkout.ErrInsufficientFunds):
		// The abort still reports the per-item lines, uniformly marked.
		body := map[string]any{"error": "insufficient funds"}
		if res != nil {
			body["result"] = toCheckoutResponse(res)
		}
		writeJSON(w, http.StatusPaymentRequired, body)
	case errors.Is(err, checkout.ErrEmptyCart):
		writeError(w, http.StatusBadRequest, "cart is empty")
	case errors.Is(err, checkout.ErrInvalidRequest):
		writeError(w, http.StatusBadRequest, "invalid checkout request")
	case errors.Is(err, checkout.ErrStoreUnavailable):
		writeError(w, http.StatusServiceUnavailable, "store unavailable, retry later")
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

type buyNowRequest struct {
	UserID int64 `json:"userID"`
	GameID int64 `json:"gameID"`
}

// BuyNowHandler handles POST /api/purchase — the "buy now" button, a
// single-item checkout that skips the cart.
func (h *HandlerProvider) BuyNowHandler(w http.ResponseWriter, r *http.Request) {
	var req buyNowRequest
	err := decodeJSON(w, r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.GameID <= 0 {
		writeError(w, http.StatusBadRequest, "gameID must be positive")
		return
	}

	res, err := h.engine.Checkout(r.Context(), req.UserID, []int64{req.GameID})
	h.writeCheckoutOutcome(w, res, err)
}

type checkoutCartRequest struct {
	UserID int64 `json:"userID"`
}

// CheckoutCartHandler handles POST /api/cart/checkout — purchases the
// user's whole cart as one atomic unit.
func (h *HandlerProvider) CheckoutCartHandler(w http.ResponseWriter, r *http.Request) {
	var req checkoutCartRequest
	err := decodeJSON(w, r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.engine.CheckoutCart(r.Context(), req.UserID)
	h.writeCheckoutOutcome(w, res, err)
}

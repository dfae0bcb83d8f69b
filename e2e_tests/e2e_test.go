// Black-box flow tests against a running storefront (server + migrated
// Postgres with dev seed data on localhost:8080). Each run signs up a fresh
// user so reruns do not collide.
package e2etests

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"
)

const (
	baseURL   = "http://localhost:8080"
	timeout   = 5 * time.Second
	waitReady = 20 * time.Second
)

var httpClient = &http.Client{Timeout: timeout}

// Seeded catalogue: game 2 is 19.99 at 25% off (14.99 effective),
// game 3 is 39.99 at 50% off (20.00 effective).

func TestE2E_StorefrontFlow(t *testing.T) {
	waitUntilReady(t)

	userID := signUp(t, uniqName("gordon"))

	t.Run("fresh_user_balance_zero", func(t *testing.T) {
		got := getBalanceString(t, userID)
		if got != "0.00" {
			t.Fatalf("initial balance: want 0.00, got %s", got)
		}
	})

	t.Run("topup_credits_wallet", func(t *testing.T) {
		code, body := postJSON(t, fmt.Sprintf("/api/user/%d/wallet/topup", userID), map[string]string{"amount": "40.00"})
		if code != http.StatusOK {
			t.Fatalf("topup: want 200, got %d (%s)", code, body)
		}
		got := getBalanceString(t, userID)
		if got != "40.00" {
			t.Fatalf("after topup: want 40.00, got %s", got)
		}
	})

	t.Run("cart_add_and_list", func(t *testing.T) {
		for _, gameID := range []int64{2, 3} {
			code, body := postJSON(t, "/api/cart/add", map[string]int64{"userID": userID, "gameID": gameID})
			if code != http.StatusCreated {
				t.Fatalf("cart add %d: want 201, got %d (%s)", gameID, code, body)
			}
		}

		// duplicate add is rejected
		code, body := postJSON(t, "/api/cart/add", map[string]int64{"userID": userID, "gameID": 2})
		if code != http.StatusConflict {
			t.Fatalf("duplicate cart add: want 409, got %d (%s)", code, body)
		}

		cart := getCart(t, userID)
		if len(cart.Items) != 2 {
			t.Fatalf("cart items: want 2, got %d", len(cart.Items))
		}
		if cart.Total != "34.99" { // 14.99 + 20.00
			t.Fatalf("cart total: want 34.99, got %s", cart.Total)
		}
	})

	t.Run("checkout_purchases_everything", func(t *testing.T) {
		code, body := postJSON(t, "/api/cart/checkout", map[string]int64{"userID": userID})
		if code != http.StatusOK {
			t.Fatalf("checkout: want 200, got %d (%s)", code, body)
		}

		var res checkoutResponse
		mustUnmarshal(t, body, &res)
		if res.Total != "34.99" {
			t.Fatalf("checkout total: want 34.99, got %s", res.Total)
		}
		if res.Balance != "5.01" {
			t.Fatalf("checkout balance: want 5.01, got %s", res.Balance)
		}
		if res.PurchaseID == "" {
			t.Fatal("checkout: want non-empty purchaseId")
		}
		for _, line := range res.Lines {
			if line.Status != "purchased" {
				t.Fatalf("line %d: want purchased, got %s", line.GameID, line.Status)
			}
		}

		if got := getBalanceString(t, userID); got != "5.01" {
			t.Fatalf("balance after checkout: want 5.01, got %s", got)
		}

		cart := getCart(t, userID)
		if len(cart.Items) != 0 {
			t.Fatalf("cart should be empty after checkout, got %d items", len(cart.Items))
		}
	})

	t.Run("library_holds_both_games", func(t *testing.T) {
		owned := getLibraryIDs(t, userID)
		if len(owned) != 2 || !owned[2] || !owned[3] {
			t.Fatalf("library: want games 2 and 3, got %v", owned)
		}

		code, body := postJSON(t, "/api/library/play", map[string]int64{"userID": userID, "gameID": 2})
		if code != http.StatusOK {
			t.Fatalf("play owned: want 200, got %d (%s)", code, body)
		}

		code, _ = postJSON(t, "/api/library/play", map[string]int64{"userID": userID, "gameID": 1})
		if code != http.StatusNotFound {
			t.Fatalf("play unowned: want 404, got %d", code)
		}
	})

	t.Run("repurchase_reports_already_owned", func(t *testing.T) {
		code, body := postJSON(t, "/api/purchase", map[string]int64{"userID": userID, "gameID": 2})
		if code != http.StatusOK {
			t.Fatalf("repurchase: want 200, got %d (%s)", code, body)
		}

		var res checkoutResponse
		mustUnmarshal(t, body, &res)
		if res.Total != "0.00" {
			t.Fatalf("repurchase total: want 0.00, got %s", res.Total)
		}
		if len(res.Lines) != 1 || res.Lines[0].Status != "already_owned" {
			t.Fatalf("repurchase lines: want one already_owned, got %+v", res.Lines)
		}

		// nothing debited
		if got := getBalanceString(t, userID); got != "5.01" {
			t.Fatalf("balance after repurchase: want 5.01, got %s", got)
		}
	})

	t.Run("insufficient_funds_aborts_whole_purchase", func(t *testing.T) {
		// game 1 costs 59.99 with no discount; only 5.01 left
		code, body := postJSON(t, "/api/purchase", map[string]int64{"userID": userID, "gameID": 1})
		if code != http.StatusPaymentRequired {
			t.Fatalf("underfunded purchase: want 402, got %d (%s)", code, body)
		}

		if got := getBalanceString(t, userID); got != "5.01" {
			t.Fatalf("balance after abort: want 5.01, got %s", got)
		}
		owned := getLibraryIDs(t, userID)
		if owned[1] {
			t.Fatal("game 1 must not be in the library after an aborted purchase")
		}
	})
}

func TestE2E_AuthAndValidation(t *testing.T) {
	waitUntilReady(t)

	name := uniqName("alyx")
	userID := signUp(t, name)

	t.Run("duplicate_signup_conflict", func(t *testing.T) {
		code, _ := postJSON(t, "/api/signup", map[string]string{"username": name, "password": "pw"})
		if code != http.StatusConflict {
			t.Fatalf("duplicate signup: want 409, got %d", code)
		}
	})

	t.Run("login_roundtrip", func(t *testing.T) {
		code, body := postJSON(t, "/api/login", map[string]string{"username": name, "password": "pw"})
		if code != http.StatusOK {
			t.Fatalf("login: want 200, got %d (%s)", code, body)
		}
		var payload struct {
			UserID int64 `json:"userId"`
		}
		mustUnmarshal(t, body, &payload)
		if payload.UserID != userID {
			t.Fatalf("login id mismatch: want %d, got %d", userID, payload.UserID)
		}

		code, _ = postJSON(t, "/api/login", map[string]string{"username": name, "password": "wrong"})
		if code != http.StatusUnauthorized {
			t.Fatalf("bad password: want 401, got %d", code)
		}
	})

	t.Run("empty_cart_checkout_rejected", func(t *testing.T) {
		code, _ := postJSON(t, "/api/cart/checkout", map[string]int64{"userID": userID})
		if code != http.StatusBadRequest {
			t.Fatalf("empty cart checkout: want 400, got %d", code)
		}
	})

	t.Run("bad_topup_amount", func(t *testing.T) {
		code, _ := postJSON(t, fmt.Sprintf("/api/user/%d/wallet/topup", userID), map[string]string{"amount": "1.234"})
		if code != http.StatusBadRequest {
			t.Fatalf("bad amount precision: want 400, got %d", code)
		}
	})

	t.Run("unknown_game_detail", func(t *testing.T) {
		code, _ := getRaw(t, "/api/game/999999")
		if code != http.StatusNotFound {
			t.Fatalf("unknown game: want 404, got %d", code)
		}
	})
}

/* -------------------- helpers -------------------- */

type checkoutResponse struct {
	PurchaseID string `json:"purchaseId"`
	Total      string `json:"total"`
	Balance    string `json:"balance"`
	Lines      []struct {
		GameID int64  `json:"gameId"`
		Status string `json:"status"`
		Price  string `json:"price"`
	} `json:"lines"`
}

type cartResponse struct {
	Items []struct {
		GameID         int64  `json:"gameId"`
		Title          string `json:"title"`
		EffectivePrice string `json:"effectivePrice"`
	} `json:"items"`
	Total string `json:"total"`
}

func uniqName(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}

func signUp(t *testing.T, username string) int64 {
	t.Helper()

	code, body := postJSON(t, "/api/signup", map[string]string{"username": username, "password": "pw"})
	if code != http.StatusCreated {
		t.Fatalf("signup: want 201, got %d (%s)", code, body)
	}

	var payload struct {
		UserID int64 `json:"userId"`
	}
	mustUnmarshal(t, body, &payload)
	if payload.UserID == 0 {
		t.Fatal("signup: want non-zero userId")
	}

	return payload.UserID
}

func getBalanceString(t *testing.T, userID int64) string {
	t.Helper()

	code, body := getRaw(t, fmt.Sprintf("/api/user/%d/balance", userID))
	if code != http.StatusOK {
		t.Fatalf("get balance: want 200, got %d (%s)", code, body)
	}

	var payload struct {
		UserID  int64  `json:"userId"`
		Balance string `json:"balance"`
	}
	mustUnmarshal(t, body, &payload)
	if payload.UserID != userID {
		t.Fatalf("userId mismatch: want %d, got %d", userID, payload.UserID)
	}

	return payload.Balance
}

func getCart(t *testing.T, userID int64) cartResponse {
	t.Helper()

	code, body := getRaw(t, fmt.Sprintf("/api/cart/%d", userID))
	if code != http.StatusOK {
		t.Fatalf("get cart: want 200, got %d (%s)", code, body)
	}

	var payload cartResponse
	mustUnmarshal(t, body, &payload)

	return payload
}

func getLibraryIDs(t *testing.T, userID int64) map[int64]bool {
	t.Helper()

	code, body := getRaw(t, fmt.Sprintf("/api/library/%d", userID))
	if code != http.StatusOK {
		t.Fatalf("get library: want 200, got %d (%s)", code, body)
	}

	var payload []struct {
		GameID int64 `json:"gameId"`
	}
	mustUnmarshal(t, body, &payload)

	owned := make(map[int64]bool, len(payload))
	for _, item := range payload {
		owned[item.GameID] = true
	}

	return owned
}

func postJSON(t *testing.T, path string, payload any) (int, string) {
	t.Helper()

	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	req, err := http.NewRequest(http.MethodPost, baseURL+path, bytes.NewReader(data))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	b, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(b)
}

func getRaw(t *testing.T, path string) (int, string) {
	t.Helper()

	resp, err := httpClient.Get(baseURL + path)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	b, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(b)
}

func mustUnmarshal(t *testing.T, body string, into any) {
	t.Helper()

	err := json.Unmarshal([]byte(body), into)
	if err != nil {
		t.Fatalf("unmarshal %q: %v", body, err)
	}
}

// waitUntilReady polls /healthz until the server answers or the window runs
// out.
func waitUntilReady(t *testing.T) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), waitReady)
	defer cancel()

	tick := time.NewTicker(200 * time.Millisecond)
	defer tick.Stop()

	for {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/healthz", nil)
		if err != nil {
			t.Fatalf("new request: %v", err)
		}

		resp, err := httpClient.Do(req)
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}

		select {
		case <-ctx.Done():
			t.Fatalf("server not ready within %s", waitReady)
		case <-tick.C:
		}
	}
}

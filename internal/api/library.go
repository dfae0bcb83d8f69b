package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/fastprodman/gamestore/internal/repos/library"
)

type libraryEntryResponse struct {
	GameID       int64  `json:"gameId"`
	Title        string `json:"title"`
	PurchasedAt  string `json:"purchasedAt"`
	LastPlayedAt string `json:"lastPlayedAt,omitempty"`
}

// LibraryHandler handles GET /api/library/{userID}
func (h *HandlerProvider) LibraryHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := parseIDFromPath(r, "userID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid userID in path")
		return
	}

	entries, err := h.library.ListOwned(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	out := make([]libraryEntryResponse, 0, len(entries))
	for _, e := range entries {
		resp := libraryEntryResponse{
			GameID:      e.GameID,
			Title:       e.Title,
			PurchasedAt: e.PurchasedAt.UTC().Format(time.RFC3339),
		}
		if e.LastPlayedAt != nil {
			resp.LastPlayedAt = e.LastPlayedAt.UTC().Format(time.RFC3339)
		}
		out = append(out, resp)
	}

	writeJSON(w, http.StatusOK, out)
}

type playRequest struct {
	UserID int64 `json:"userID"`
	GameID int64 `json:"gameID"`
}

// PlayHandler handles POST /api/library/play — records a play event by
// touching last_played_at.
func (h *HandlerProvider) PlayHandler(w http.ResponseWriter, r *http.Request) {
	var req playRequest
	err := decodeJSON(w, r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.UserID <= 0 || req.GameID <= 0 {
		writeError(w, http.StatusBadRequest, "userID and gameID must be positive")
		return
	}

	err = h.library.TouchLastPlayed(r.Context(), req.UserID, req.GameID, time.Now().UTC())
	if err != nil {
		if errors.Is(err, library.ErrNotOwned) {
			writeError(w, http.StatusNotFound, "game not in library")
			return
		}

		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

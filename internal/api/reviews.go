package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/fastprodman/gamestore/internal/repos/reviews"
)

type reviewResponse struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"userId"`
	Username  string `json:"username"`
	Rating    int    `json:"rating"`
	Body      string `json:"body"`
	Likes     int    `json:"likes"`
	Liked     bool   `json:"liked"`
	CreatedAt string `json:"createdAt"`
}

// ReviewsHandler handles GET /api/reviews/{gameID}?userID=
func (h *HandlerProvider) ReviewsHandler(w http.ResponseWriter, r *http.Request) {
	gameID, err := parseIDFromPath(r, "gameID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid gameID in path")
		return
	}

	// Optional viewer; the liked flag is per viewer.
	var viewerID int64
	if raw := r.URL.Query().Get("userID"); raw != "" {
		viewerID, err = strconv.ParseInt(raw, 10, 64)
		if err != nil || viewerID < 0 {
			writeError(w, http.StatusBadRequest, "invalid userID query parameter")
			return
		}
	}

	list, err := h.reviews.ListByGame(r.Context(), gameID, viewerID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	out := make([]reviewResponse, 0, len(list))
	for _, rv := range list {
		out = append(out, reviewResponse{
			ID:        rv.ID,
			UserID:    rv.UserID,
			Username:  rv.Username,
			Rating:    rv.Rating,
			Body:      rv.Body,
			Likes:     rv.Likes,
			Liked:     rv.Liked,
			CreatedAt: rv.CreatedAt.UTC().Format(time.RFC3339),
		})
	}

	writeJSON(w, http.StatusOK, out)
}

type addReviewRequest struct {
	UserID int64  `json:"userID"`
	GameID int64  `json:"gameID"`
	Rating int    `json:"rating"`
	Body   string `json:"body"`
}

// AddReviewHandler handles POST /api/review
func (h *HandlerProvider) AddReviewHandler(w http.ResponseWriter, r *http.Request) {
	var req addReviewRequest
	err := decodeJSON(w, r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.UserID <= 0 || req.GameID <= 0 {
		writeError(w, http.StatusBadRequest, "userID and gameID must be positive")
		return
	}
	if req.Rating < 1 || req.Rating > 5 {
		writeError(w, http.StatusBadRequest, "rating must be between 1 and 5")
		return
	}

	id, err := h.reviews.Add(r.Context(), req.UserID, req.GameID, req.Rating, req.Body)
	if err != nil {
		if errors.Is(err, reviews.ErrAlreadyReviewed) {
			writeError(w, http.StatusConflict, "game already reviewed")
			return
		}

		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"reviewId": id})
}

type likeReviewRequest struct {
	UserID   int64 `json:"userID"`
	ReviewID int64 `json:"reviewID"`
	Like     bool  `json:"like"`
}

// LikeReviewHandler handles POST /api/review/like
func (h *HandlerProvider) LikeReviewHandler(w http.ResponseWriter, r *http.Request) {
	var req likeReviewRequest
	err := decodeJSON(w, r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.UserID <= 0 || req.ReviewID <= 0 {
		writeError(w, http.StatusBadRequest, "userID and reviewID must be positive")
		return
	}

	err = h.reviews.SetLike(r.Context(), req.ReviewID, req.UserID, req.Like)
	if err != nil {
		if errors.Is(err, reviews.ErrReviewNotFound) {
			writeError(w, http.StatusNotFound, "review not found")
			return
		}

		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

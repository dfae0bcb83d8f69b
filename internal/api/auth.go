package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/fastprodman/gamestore/internal/repos/users"
	"github.com/fastprodman/gamestore/internal/services/account"
)

type signUpRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	Email       string `json:"email"`
	DateOfBirth string `json:"dateOfBirth"`
}

// SignUpHandler handles POST /api/signup
func (h *HandlerProvider) SignUpHandler(w http.ResponseWriter, r *http.Request) {
	var req signUpRequest
	err := decodeJSON(w, r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "username and password required")
		return
	}

	var dob *time.Time
	if req.DateOfBirth != "" {
		parsed, perr := time.Parse("2006-01-02", req.DateOfBirth)
		if perr != nil {
			writeError(w, http.StatusBadRequest, "dateOfBirth must be YYYY-MM-DD")
			return
		}
		dob = &parsed
	}

	id, err := h.accounts.SignUp(r.Context(), req.Username, req.Password, req.Email, dob)
	if err != nil {
		if errors.Is(err, users.ErrUserExists) {
			writeError(w, http.StatusConflict, "username already taken")
			return
		}

		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"userId": id})
}

type logInRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LogInHandler handles POST /api/login
func (h *HandlerProvider) LogInHandler(w http.ResponseWriter, r *http.Request) {
	var req logInRequest
	err := decodeJSON(w, r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	id, err := h.accounts.LogIn(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, account.ErrIncorrectCredentials) {
			writeError(w, http.StatusUnauthorized, "incorrect username or password")
			return
		}

		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"userId": id})
}

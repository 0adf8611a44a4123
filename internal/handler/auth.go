package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/mikkelsv/taskvault/internal/domain"
	"github.com/mikkelsv/taskvault/internal/service"
)

// AuthHandler handles authentication-related HTTP requests.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// HandleSignup registers a new user and issues a token for it.
// POST /api/auth/signup
// Request:  {"email":"...","password":"...","name":"..."}
// Response: {"token":"...","user":{...}}
func (h *AuthHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	user, err := h.auth.Register(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateEmail):
			writeError(w, http.StatusBadRequest, "User with this email already exists.")
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusUnprocessableEntity, err.Error())
		default:
			slog.Error("register user", "error", err)
			writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		}
		return
	}

	token, err := h.auth.IssueToken(user.ID)
	if err != nil {
		slog.Error("issue token after signup", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"token": token,
		"user":  toUserDTO(user),
	})
}

// HandleLogin authenticates a user and issues a token.
// POST /api/auth/login
// Request:  {"email":"...","password":"..."}
// Response: {"token":"...","user":{...}}
//
// Unknown email and wrong password return the same 401 body.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	user, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			writeError(w, http.StatusUnauthorized, "Incorrect email or password.")
			return
		}
		slog.Error("login user", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	token, err := h.auth.IssueToken(user.ID)
	if err != nil {
		slog.Error("issue token after login", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"token": token,
		"user":  toUserDTO(user),
	})
}

// HandleLogout acknowledges a logout. Tokens are stateless, so there
// is nothing to invalidate server-side; the token stays valid until
// its expiry.
// POST /api/auth/logout
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully"})
}

// HandleMe returns the currently authenticated user. The token only
// proves an id; if that id no longer maps to a stored user the
// response is 404.
// GET /api/auth/me
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	userID := UserIDFromContext(r.Context())

	user, err := h.auth.GetUserByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "User not found.")
			return
		}
		slog.Error("get current user", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	writeJSON(w, http.StatusOK, toUserDTO(user))
}

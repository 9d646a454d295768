package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/kart-challenge/admin-dashboard/internal/auth"
)

// sessionProvider hands out request-scoped access gate sessions
type sessionProvider interface {
	Session(w http.ResponseWriter, r *http.Request) *auth.Session
}

// LoginRequest represents the login form
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SessionResponse reports the authenticated state after a gate operation
type SessionResponse struct {
	Authenticated bool   `json:"authenticated"`
	Redirect      string `json:"redirect,omitempty"`
}

// AuthHandler handles login and logout
type AuthHandler struct {
	sessions      sessionProvider
	dashboardPath string
	loginPath     string
	logger        *slog.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(sessions sessionProvider, loginPath, dashboardPath string, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		sessions:      sessions,
		loginPath:     loginPath,
		dashboardPath: dashboardPath,
		logger:        logger,
	}
}

// LoginPage handles GET /login
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	session := h.sessions.Session(w, r)
	WriteJSON(w, http.StatusOK, SessionResponse{Authenticated: session.IsAuthenticated()}, h.logger)
}

// Login handles POST /login with a JSON or form encoded body
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if isJSON(r) {
		if err := decodeJSON(w, r, &req); err != nil {
			h.logger.Warn("failed to decode login request", "error", err)
			WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
			return
		}
	} else {
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		if err := r.ParseForm(); err != nil {
			h.logger.Warn("failed to parse login form", "error", err)
			WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
			return
		}
		req.Username = r.PostForm.Get("username")
		req.Password = r.PostForm.Get("password")
	}

	session := h.sessions.Session(w, r)
	if err := session.Login(req.Username, req.Password); err != nil {
		WriteError(w, http.StatusUnauthorized, "Invalid credentials", h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, SessionResponse{
		Authenticated: true,
		Redirect:      h.dashboardPath,
	}, h.logger)
}

// Logout handles POST /logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session := h.sessions.Session(w, r)
	session.Logout()

	WriteJSON(w, http.StatusOK, SessionResponse{
		Authenticated: false,
		Redirect:      h.loginPath,
	}, h.logger)
}

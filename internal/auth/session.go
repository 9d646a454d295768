package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultCookieName is the cookie carrying the session marker
	DefaultCookieName = "token"
	// MarkerTTL is how long a session marker stays in client storage
	MarkerTTL = 7 * 24 * time.Hour
)

// ErrMissingCredentials is returned by Login when the username or password is empty
var ErrMissingCredentials = errors.New("username and password are required")

// Session is the access gate: an authenticated flag derived from marker presence.
// Credentials are not verified; any non-empty pair logs in.
type Session struct {
	store    MarkerStore
	ttl      time.Duration
	newToken func() string
	logger   *slog.Logger

	mu            sync.RWMutex
	authenticated bool
}

// SessionOption customises a Session
type SessionOption func(*Session)

// WithTTL overrides MarkerTTL
func WithTTL(ttl time.Duration) SessionOption {
	return func(s *Session) { s.ttl = ttl }
}

// WithTokenGenerator overrides how marker values are produced
func WithTokenGenerator(fn func() string) SessionOption {
	return func(s *Session) { s.newToken = fn }
}

// WithLogger attaches a logger for login/logout events
func WithLogger(logger *slog.Logger) SessionOption {
	return func(s *Session) { s.logger = logger }
}

// NewSession creates an unauthenticated session over store. Call Initialize before use.
func NewSession(store MarkerStore, opts ...SessionOption) *Session {
	s := &Session{
		store:    store,
		ttl:      MarkerTTL,
		newToken: uuid.NewString,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize sets the authenticated flag from the stored marker
func (s *Session) Initialize() {
	_, present := s.store.Marker()

	s.mu.Lock()
	s.authenticated = present
	s.mu.Unlock()
}

// IsAuthenticated reports the current flag
func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticated
}

// Login stores a fresh marker when both inputs are non-empty.
// On failure the session is left as it was.
func (s *Session) Login(username, password string) error {
	if username == "" || password == "" {
		s.logger.Debug("login rejected", "reason", "missing credentials")
		return ErrMissingCredentials
	}

	s.mu.Lock()
	s.store.SetMarker(s.newToken(), s.ttl)
	s.authenticated = true
	s.mu.Unlock()

	s.logger.Info("user logged in", "username", username)
	return nil
}

// Logout clears the marker unconditionally
func (s *Session) Logout() {
	s.mu.Lock()
	s.store.ClearMarker()
	s.authenticated = false
	s.mu.Unlock()

	s.logger.Info("user logged out")
}

// Gate builds request-scoped sessions backed by the marker cookie
type Gate struct {
	cookie CookieConfig
	ttl    time.Duration
	logger *slog.Logger
}

// NewGate creates a gate for the given cookie settings. A zero ttl uses MarkerTTL.
func NewGate(cookie CookieConfig, ttl time.Duration, logger *slog.Logger) *Gate {
	if cookie.Name == "" {
		cookie.Name = DefaultCookieName
	}
	if ttl <= 0 {
		ttl = MarkerTTL
	}
	return &Gate{cookie: cookie, ttl: ttl, logger: logger}
}

// Session returns an initialized session reading r and writing cookies to w
func (g *Gate) Session(w http.ResponseWriter, r *http.Request) *Session {
	s := NewSession(
		NewCookieStore(w, r, g.cookie),
		WithTTL(g.ttl),
		WithLogger(g.logger),
	)
	s.Initialize()
	return s
}

// CookieName returns the name of the marker cookie
func (g *Gate) CookieName() string {
	return g.cookie.Name
}

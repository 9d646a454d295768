package auth

import (
	"net/http"
	"sync"
	"time"
)

// MarkerStore is the client-readable storage that carries the session marker
type MarkerStore interface {
	// Marker returns the stored marker and whether a non-empty one is present
	Marker() (string, bool)
	SetMarker(value string, ttl time.Duration)
	ClearMarker()
}

// CookieConfig describes the cookie holding the session marker
type CookieConfig struct {
	Name   string
	Path   string
	Secure bool
}

// CookieStore reads the marker from a request and writes changes to its response.
// Once set or cleared, later reads reflect the change rather than the incoming request.
type CookieStore struct {
	w   http.ResponseWriter
	r   *http.Request
	cfg CookieConfig
	now func() time.Time

	overridden bool
	value      string
}

var _ MarkerStore = (*CookieStore)(nil)

// NewCookieStore binds a store to one request/response pair
func NewCookieStore(w http.ResponseWriter, r *http.Request, cfg CookieConfig) *CookieStore {
	if cfg.Path == "" {
		cfg.Path = "/"
	}
	return &CookieStore{w: w, r: r, cfg: cfg, now: time.Now}
}

func (s *CookieStore) Marker() (string, bool) {
	if s.overridden {
		return s.value, s.value != ""
	}
	return MarkerFromRequest(s.r, s.cfg.Name)
}

func (s *CookieStore) SetMarker(value string, ttl time.Duration) {
	// the marker must stay readable by the browser UI, so HttpOnly is off
	http.SetCookie(s.w, &http.Cookie{
		Name:     s.cfg.Name,
		Value:    value,
		Path:     s.cfg.Path,
		Expires:  s.now().Add(ttl),
		MaxAge:   int(ttl.Seconds()),
		Secure:   s.cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	s.overridden = true
	s.value = value
}

func (s *CookieStore) ClearMarker() {
	http.SetCookie(s.w, &http.Cookie{
		Name:     s.cfg.Name,
		Value:    "",
		Path:     s.cfg.Path,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		Secure:   s.cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	s.overridden = true
	s.value = ""
}

// MarkerFromRequest returns the marker cookie value carried by r
func MarkerFromRequest(r *http.Request, name string) (string, bool) {
	cookie, err := r.Cookie(name)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}

// MemoryStore keeps the marker in process memory and honours its expiry
type MemoryStore struct {
	mu      sync.Mutex
	value   string
	expires time.Time
	now     func() time.Time
}

var _ MarkerStore = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{now: time.Now}
}

func (s *MemoryStore) Marker() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.value == "" {
		return "", false
	}
	if !s.now().Before(s.expires) {
		s.value = ""
		return "", false
	}
	return s.value, true
}

func (s *MemoryStore) SetMarker(value string, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.value = value
	s.expires = s.now().Add(ttl)
}

func (s *MemoryStore) ClearMarker() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.value = ""
	s.expires = time.Time{}
}

package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/Lixing-Zhang/kart-challenge/admin-dashboard/internal/auth"
)

// GuardRules configures the routing guard
type GuardRules struct {
	CookieName        string
	LoginPath         string
	DashboardPath     string
	ProtectedPrefixes []string
}

// Decision is the outcome of evaluating the guard for one request
type Decision int

const (
	Allow Decision = iota
	RedirectToLogin
	RedirectToDashboard
)

func (d Decision) String() string {
	switch d {
	case RedirectToLogin:
		return "redirect_login"
	case RedirectToDashboard:
		return "redirect_dashboard"
	default:
		return "allow"
	}
}

// Matches reports whether the guard applies to path at all.
// It covers the login path exactly and every protected prefix as /prefix or /prefix/...
func (g GuardRules) Matches(path string) bool {
	if path == g.LoginPath {
		return true
	}
	for _, prefix := range g.ProtectedPrefixes {
		if path == prefix || strings.HasPrefix(path, strings.TrimRight(prefix, "/")+"/") {
			return true
		}
	}
	return false
}

// Evaluate applies the guard to a matched path given marker presence
func (g GuardRules) Evaluate(path string, hasMarker bool) Decision {
	if hasMarker && path == g.LoginPath {
		return RedirectToDashboard
	}
	if !hasMarker {
		for _, prefix := range g.ProtectedPrefixes {
			if strings.HasPrefix(path, prefix) {
				return RedirectToLogin
			}
		}
	}
	return Allow
}

// RouteGuard redirects requests based on the session marker cookie.
// It reads the cookie straight from the request and does not consult auth.Session.
func RouteGuard(rules GuardRules, logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := r.URL.Path
			if !rules.Matches(path) {
				next.ServeHTTP(w, r)
				return
			}

			_, hasMarker := auth.MarkerFromRequest(r, rules.CookieName)

			switch rules.Evaluate(path, hasMarker) {
			case RedirectToDashboard:
				logger.Debug("authenticated request to login, redirecting", "path", path)
				http.Redirect(w, r, rules.DashboardPath, http.StatusTemporaryRedirect)
			case RedirectToLogin:
				logger.Debug("unauthenticated request to protected path, redirecting", "path", path)
				http.Redirect(w, r, rules.LoginPath, http.StatusTemporaryRedirect)
			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}

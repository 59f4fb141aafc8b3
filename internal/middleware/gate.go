package middleware

import (
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Route prefixes handled by the gate.
const (
	AdminPath    = "/admin"
	LoginPath    = "/login"
	MediaAPIPath = "/api/cloudinary"
)

// Authenticator decides whether a request carries a valid admin session.
type Authenticator interface {
	Authenticated(r *http.Request) bool
}

// RouteGate redirects admin traffic based on the session cookies.
type RouteGate struct {
	auth Authenticator
}

// NewRouteGate creates a gate backed by auth.
func NewRouteGate(auth Authenticator) *RouteGate {
	return &RouteGate{auth: auth}
}

// underPrefix matches prefix itself and anything below it, but not
// siblings such as /administrator.
func underPrefix(path, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

// Gate enforces the admin session on every request:
// admin pages redirect to the login page when unauthenticated, the login
// page redirects to the console when already authenticated, and the media
// API answers 401.
func (g *RouteGate) Gate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		switch {
		case underPrefix(path, AdminPath):
			if !g.auth.Authenticated(r) {
				log.WithField("path", path).Debug("Unauthenticated admin request, redirecting to login")
				http.Redirect(w, r, LoginPath, http.StatusFound)
				return
			}
		case underPrefix(path, LoginPath):
			if g.auth.Authenticated(r) {
				http.Redirect(w, r, AdminPath, http.StatusFound)
				return
			}
		case underPrefix(path, MediaAPIPath):
			if !g.auth.Authenticated(r) {
				writeJSONError(w, http.StatusUnauthorized, "authentication required")
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrMissingCredentials = errors.New("email and password are required")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotConfigured      = errors.New("admin credentials are not configured")
)

// Session cookie names.
const (
	EmailCookie    = "userEmail"
	PasswordCookie = "userPassword"
)

// SessionTTL is how long the login cookies live.
const SessionTTL = 24 * time.Hour

// Service checks the admin credential pair.
type Service struct {
	email    string
	password string
	secure   bool
}

// Option configures a Service.
type Option func(*Service)

// WithSecureCookies marks session cookies Secure.
func WithSecureCookies(secure bool) Option {
	return func(s *Service) { s.secure = secure }
}

// NewService creates a credential checker for the configured admin pair.
// password may be a bcrypt hash, in which case presented passwords are
// verified against it.
func NewService(email, password string, opts ...Option) *Service {
	s := &Service{email: email, password: password}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Configured reports whether both halves of the admin pair are set.
func (s *Service) Configured() bool {
	return s.email != "" && s.password != ""
}

func isBcryptHash(s string) bool {
	return strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$")
}

// Matches reports whether email and password equal the configured pair.
// An unconfigured service matches nothing.
func (s *Service) Matches(email, password string) bool {
	if !s.Configured() || email == "" || password == "" {
		return false
	}
	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(s.email)) == 1
	var passwordOK bool
	if isBcryptHash(s.password) {
		passwordOK = bcrypt.CompareHashAndPassword([]byte(s.password), []byte(password)) == nil
	} else {
		passwordOK = subtle.ConstantTimeCompare([]byte(password), []byte(s.password)) == 1
	}
	return emailOK && passwordOK
}

// Login validates a login form submission.
func (s *Service) Login(email, password string) error {
	if email == "" || password == "" {
		return ErrMissingCredentials
	}
	if !s.Configured() {
		return ErrNotConfigured
	}
	if !s.Matches(email, password) {
		return ErrInvalidCredentials
	}
	return nil
}

// Authenticated reports whether the request carries both session cookies
// with values matching the admin pair.
func (s *Service) Authenticated(r *http.Request) bool {
	email, err := r.Cookie(EmailCookie)
	if err != nil {
		return false
	}
	password, err := r.Cookie(PasswordCookie)
	if err != nil {
		return false
	}
	return s.Matches(email.Value, password.Value)
}

// SetSessionCookies stores the credential pair on the client for SessionTTL.
func (s *Service) SetSessionCookies(w http.ResponseWriter, email, password string) {
	expires := time.Now().Add(SessionTTL)
	for name, value := range map[string]string{EmailCookie: email, PasswordCookie: password} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    value,
			Path:     "/",
			Expires:  expires,
			MaxAge:   int(SessionTTL.Seconds()),
			HttpOnly: true,
			Secure:   s.secure,
			SameSite: http.SameSiteLaxMode,
		})
	}
}

// ClearSessionCookies expires both session cookies.
func (s *Service) ClearSessionCookies(w http.ResponseWriter) {
	for _, name := range []string{EmailCookie, PasswordCookie} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   s.secure,
			SameSite: http.SameSiteLaxMode,
		})
	}
}

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	if len(password) < 8 {
		return "", errors.New("password must be at least 8 characters long")
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(bytes), nil
}

package handlers

import (
	"errors"
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/ukydev/showroom/internal/auth"
	"github.com/ukydev/showroom/internal/middleware"
)

// Login form messages.
const (
	msgMissingCredentials = "Please enter both email and password"
	msgInvalidCredentials = "Incorrect email or password"
	msgLoginUnavailable   = "Admin login is not configured"
)

// AuthHandler handles the admin login form
type AuthHandler struct {
	authService *auth.Service
	views       *Views
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(authService *auth.Service, views *Views) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		views:       views,
	}
}

type loginForm struct {
	Email   string
	Message string
}

// LoginPage renders the login form
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	h.views.Render(w, r, http.StatusOK, "pages/login.html", "Admin login", loginForm{})
}

// Login checks the submitted pair and stores it in the session cookies
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	email := strings.TrimSpace(r.PostFormValue("email"))
	password := r.PostFormValue("password")

	err := h.authService.Login(email, password)
	switch {
	case err == nil:
	case errors.Is(err, auth.ErrMissingCredentials):
		h.views.Render(w, r, http.StatusBadRequest, "pages/login.html", "Admin login",
			loginForm{Email: email, Message: msgMissingCredentials})
		return
	case errors.Is(err, auth.ErrNotConfigured):
		log.Warn("Login attempted but admin credentials are not configured")
		h.views.Render(w, r, http.StatusServiceUnavailable, "pages/login.html", "Admin login",
			loginForm{Email: email, Message: msgLoginUnavailable})
		return
	default:
		log.WithField("email", email).Warn("Failed admin login")
		h.views.Render(w, r, http.StatusUnauthorized, "pages/login.html", "Admin login",
			loginForm{Email: email, Message: msgInvalidCredentials})
		return
	}

	h.authService.SetSessionCookies(w, email, password)
	log.WithField("email", email).Info("Admin logged in")
	http.Redirect(w, r, middleware.AdminPath, http.StatusSeeOther)
}

// Logout clears the session cookies
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.authService.ClearSessionCookies(w)
	http.Redirect(w, r, middleware.LoginPath, http.StatusSeeOther)
}

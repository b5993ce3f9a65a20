package handlers

import (
	"errors"
	"html/template"
	"net/http"

	"goboard/internal/security"
	"goboard/internal/service"
	"goboard/internal/validation"
)

// AuthHandler handles signup, login, logout and the authenticated home page
type AuthHandler struct {
	authService *service.AuthService
	templates   *template.Template
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService, templates *template.Template) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		templates:   templates,
	}
}

// Home renders the authenticated greeting page
func (h *AuthHandler) Home(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	data := pageData(w, r, user)
	data["Title"] = "Home"
	if data["Flash"] == nil {
		data["Flash"] = &Flash{Level: "primary", Message: "hello, " + user.Username}
	}
	renderTemplate(h.templates, w, "home.tmpl", data)
}

// ShowSignup renders the signup page
func (h *AuthHandler) ShowSignup(w http.ResponseWriter, r *http.Request) {
	if h.redirectIfLoggedIn(w, r) {
		return
	}

	data := pageData(w, r, nil)
	data["Title"] = "Sign up"
	renderTemplate(h.templates, w, "signup.tmpl", data)
}

// Signup handles signup form submission
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	if h.redirectIfLoggedIn(w, r) {
		return
	}

	if err := r.ParseForm(); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidFormData, "", err)
		return
	}

	username := validation.FilterMarkup(r.FormValue("username"))
	password := r.FormValue("password")

	_, err := h.authService.Register(username, password)
	if err != nil {
		var vErr validation.ValidationError
		switch {
		case errors.As(err, &vErr):
			SetFlash(w, "danger", "Please enter both a username and a password.")
			http.Redirect(w, r, "/signup", http.StatusSeeOther)
		case errors.Is(err, service.ErrUsernameTaken):
			SetFlash(w, "danger", "That username is not available.")
			http.Redirect(w, r, "/signup", http.StatusSeeOther)
		default:
			respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "signup failed", err)
		}
		return
	}

	SetFlash(w, "primary", "Account created. Please log in.")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// ShowLogin renders the login page
func (h *AuthHandler) ShowLogin(w http.ResponseWriter, r *http.Request) {
	if h.redirectIfLoggedIn(w, r) {
		return
	}

	data := pageData(w, r, nil)
	data["Title"] = "Log in"
	data["FormUsername"] = ""
	renderTemplate(h.templates, w, "login.tmpl", data)
}

// Login handles login form submission. Unknown usernames and wrong passwords
// produce the same message.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if h.redirectIfLoggedIn(w, r) {
		return
	}

	if err := r.ParseForm(); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidFormData, "", err)
		return
	}

	username := r.FormValue("username")
	password := r.FormValue("password")

	session, _, err := h.authService.Login(username, password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			data := pageData(w, r, nil)
			data["Title"] = "Log in"
			data["Error"] = "Invalid username or password."
			data["FormUsername"] = validation.FilterMarkup(username)
			renderTemplate(h.templates, w, "login.tmpl", data)
			return
		}
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "login failed", err)
		return
	}

	http.SetCookie(w, security.CreateSessionCookie(r, SessionCookieName, session.ID, session.ExpiresAt))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout destroys the server-side session and clears the cookie
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		_ = h.authService.Logout(cookie.Value)
	}

	http.SetCookie(w, security.CreateDeleteCookie(r, SessionCookieName))
	SetFlash(w, "primary", "You have been logged out.")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// redirectIfLoggedIn sends users with a live session back home
func (h *AuthHandler) redirectIfLoggedIn(w http.ResponseWriter, r *http.Request) bool {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return false
	}
	if _, err := h.authService.ValidateSession(cookie.Value); err != nil {
		return false
	}

	SetFlash(w, "danger", "You are already logged in.")
	http.Redirect(w, r, "/", http.StatusSeeOther)
	return true
}

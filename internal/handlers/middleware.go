package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"goboard/internal/models"
	"goboard/internal/security"
	"goboard/internal/service"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const UserContextKey ContextKey = "user"

// Middleware holds dependencies for middleware functions
type Middleware struct {
	authService *service.AuthService
	csrf        *security.CSRFGenerator
	maxBodySize int64
}

// NewMiddleware creates a new middleware instance
func NewMiddleware(authService *service.AuthService, csrf *security.CSRFGenerator, maxBodySize int64) *Middleware {
	return &Middleware{
		authService: authService,
		csrf:        csrf,
		maxBodySize: maxBodySize,
	}
}

// MaxBody caps the request body size before any form parsing happens.
// Oversized bodies fail the request with 413.
func (m *Middleware) MaxBody(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, m.maxBodySize)
		next(w, r)
	}
}

// RequireAuth gates a handler behind a valid session. The session cookie is
// resolved once per request; a missing, unknown or expired session clears the
// client cookie and redirects to login. On success the resolved user is
// placed in the request context.
func (m *Middleware) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookieName)
		if err != nil {
			SetFlash(w, "danger", "Please log in first.")
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		user, err := m.authService.ValidateSession(cookie.Value)
		if err != nil {
			http.SetCookie(w, security.CreateDeleteCookie(r, SessionCookieName))
			if err == service.ErrSessionExpired {
				SetFlash(w, "danger", "Your session has expired. Please log in again.")
			} else {
				SetFlash(w, "danger", "Please log in first.")
			}
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, user)
		next(w, r.WithContext(ctx))
	}
}

// CSRFProtect validates the csrf_token form field against the session cookie.
// Must wrap state-changing form handlers; apply inside RequireAuth.
func (m *Middleware) CSRFProtect(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookieName)
		if err != nil {
			respondWithError(w, http.StatusForbidden, "Invalid request", "", nil)
			return
		}

		if err := r.ParseMultipartForm(32 << 20); err != nil && err != http.ErrNotMultipart {
			var maxBytesErr *http.MaxBytesError
			if errors.As(err, &maxBytesErr) {
				respondWithError(w, http.StatusRequestEntityTooLarge, "Upload too large", "", nil)
				return
			}
			respondWithError(w, http.StatusBadRequest, ErrInvalidFormData, "", err)
			return
		}

		if !m.csrf.ValidateToken(cookie.Value, r.FormValue("csrf_token")) {
			respondWithError(w, http.StatusForbidden, "Invalid request", "", nil)
			return
		}

		next(w, r)
	}
}

// Logging middleware logs HTTP requests
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

// UserFromContext retrieves the authenticated user from the request context
func UserFromContext(ctx context.Context) *models.User {
	user, ok := ctx.Value(UserContextKey).(*models.User)
	if !ok {
		return nil
	}
	return user
}

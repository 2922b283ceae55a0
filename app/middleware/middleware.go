package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"quill/app/auth"
	"quill/app/models"
	"quill/app/repositories"
)

// LoginURL is where unauthenticated requests to protected routes are sent.
// The originally requested path is preserved in the next parameter.
const LoginURL = "/auth/login/"

type contextKey int

const userKey contextKey = 0

// Logger logs each request with its duration.
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		slog.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"duration", time.Since(start),
		)
	})
}

// Recoverer turns panics into 500 responses instead of dropped connections.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				slog.Error("panic serving request",
					"method", r.Method,
					"path", r.URL.Path,
					"error", err,
				)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// Session resolves the current user from the session cookie and stashes it
// in the request context. A missing, invalid or stale cookie just means an
// anonymous request.
func Session(sessions *auth.Sessions, users repositories.UserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(auth.CookieName)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			userID, err := sessions.Parse(cookie.Value)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			user, err := users.GetByID(userID)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// WithUser returns a context carrying the authenticated user.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// CurrentUser returns the authenticated user for the request, or nil for an
// anonymous one.
func CurrentUser(r *http.Request) *models.User {
	user, _ := r.Context().Value(userKey).(*models.User)
	return user
}

// LoginRequired redirects anonymous requests to the login page, preserving
// the requested URL in the next parameter.
func LoginRequired(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if CurrentUser(r) == nil {
			http.Redirect(w, r, LoginURL+"?next="+url.QueryEscape(r.URL.RequestURI()), http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

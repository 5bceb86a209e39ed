package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/eventz-dev/eventz/internal/domain"
	"github.com/eventz-dev/eventz/internal/jwt"
)

// Key to store the session in the request context
type key int

const SessionKey key = 0

// Auth holds dependencies for authentication middleware
type Auth struct {
	jwtService jwt.JwtService
}

func NewAuth(jwtService jwt.JwtService) *Auth {
	return &Auth{jwtService: jwtService}
}

// NeedAuth returns middleware that requires authentication
func (a *Auth) NeedAuth() func(http.Handler) http.Handler {
	return a.auth(false)
}

// AdminOnly returns middleware that requires admin authentication
func (a *Auth) AdminOnly() func(http.Handler) http.Handler {
	return a.auth(true)
}

// OptionalAuth populates the session context if a valid token is present but
// never rejects the request. Public reads use it so handlers can still see
// who is asking.
func (a *Auth) OptionalAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := a.extractSession(r)
			if err == nil && sess != nil {
				ctx := context.WithValue(r.Context(), SessionKey, sess)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (a *Auth) auth(adminOnly bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := a.extractSession(r)
			if err != nil {
				http.Error(w, "Not authorized", http.StatusUnauthorized)
				return
			}
			if adminOnly && !sess.Admin {
				http.Error(w, "Admin privileges required", http.StatusForbidden)
				return
			}

			ctx := context.WithValue(r.Context(), SessionKey, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractSession validates the JWT from the cookie (browser clients) or the
// Authorization header (API clients).
func (a *Auth) extractSession(r *http.Request) (*domain.Session, error) {
	var tokenString string
	accessCookie, err := r.Cookie("accessToken")
	if err == nil {
		tokenString = accessCookie.Value
	} else if token, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); found {
		tokenString = token
	}

	if tokenString == "" {
		return nil, http.ErrNoCookie
	}

	return a.jwtService.DecodeSession(tokenString)
}

// GetSession returns the session stored by the auth middleware, or the
// anonymous session when none is present.
func GetSession(r *http.Request) domain.Session {
	if sess, ok := r.Context().Value(SessionKey).(*domain.Session); ok && sess != nil {
		return *sess
	}
	return domain.Anonymous
}

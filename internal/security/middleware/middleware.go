package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/yourorg/rentalhub/internal/security/auth"
	"github.com/yourorg/rentalhub/internal/security/ratelimit"
)

type claimsContextKey struct{}
type userIDContextKey struct{}

// isPublic reports whether a request requires no session token:
// registration, login, health, metrics, read-only inventory endpoints and
// CORS preflights, which never carry credentials.
func isPublic(r *http.Request) bool {
	if r.Method == http.MethodOptions {
		return true
	}

	path := r.URL.Path
	switch path {
	case "/auth/register", "/auth/login", "/health", "/metrics":
		return true
	}

	if r.Method == http.MethodGet {
		for _, prefix := range []string{"/towers", "/units", "/amenities"} {
			if path == prefix || strings.HasPrefix(path, prefix+"/") {
				return true
			}
		}
	}
	return false
}

// JWTMiddleware authenticates protected requests. Missing, malformed and
// expired tokens are logged distinctly but all answer with the same generic
// 401 body.
func JWTMiddleware(tm *auth.TokenManager, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPublic(r) {
				next.ServeHTTP(w, r)
				return
			}

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				log.Info("auth rejected: missing header", slog.String("path", r.URL.Path))
				unauthorized(w)
				return
			}

			tokenString, err := auth.ExtractToken(authHeader)
			if err != nil {
				log.Info("auth rejected: bad header", slog.String("path", r.URL.Path))
				unauthorized(w)
				return
			}

			claims, err := tm.ValidateToken(tokenString)
			if err != nil {
				log.Info("auth rejected: invalid token",
					slog.String("path", r.URL.Path),
					slog.String("reason", err.Error()),
				)
				unauthorized(w)
				return
			}

			userID, err := claims.UserID()
			if err != nil {
				log.Warn("auth rejected: bad subject", slog.String("subject", claims.Subject))
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), claimsContextKey{}, claims)
			ctx = context.WithValue(ctx, userIDContextKey{}, userID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":"authorization failed"}`))
}

// RateLimitMiddleware throttles authenticated traffic per caller; public
// endpoints are keyed by remote address.
func RateLimitMiddleware(limiter *ratelimit.Limiter, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.RemoteAddr
			if id, ok := UserIDFrom(r.Context()); ok {
				key = "user:" + strconv.FormatInt(id, 10)
			}

			if !limiter.Allow(r.Context(), key) {
				log.Warn("rate limit exceeded", slog.String("key", key))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				w.Write([]byte(`{"error":"rate limit exceeded"}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// ClaimsFrom returns the validated claims, or nil on public requests.
func ClaimsFrom(ctx context.Context) *auth.Claims {
	if c := ctx.Value(claimsContextKey{}); c != nil {
		return c.(*auth.Claims)
	}
	return nil
}

// UserIDFrom returns the authenticated caller's user id.
func UserIDFrom(ctx context.Context) (int64, bool) {
	if v := ctx.Value(userIDContextKey{}); v != nil {
		return v.(int64), true
	}
	return 0, false
}

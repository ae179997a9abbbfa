package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	h "eventregistration/internal/delivery/http/helpers"
	"eventregistration/internal/domain"
)

type contextKey string

const adminKey contextKey = "admin"

// SetAdmin returns a context carrying the authenticated admin. Used by auth middleware.
func SetAdmin(ctx context.Context, claims *domain.AdminClaims) context.Context {
	return context.WithValue(ctx, adminKey, claims)
}

// AdminFromContext returns the authenticated admin from the context, if present.
func AdminFromContext(ctx context.Context) (*domain.AdminClaims, bool) {
	claims, ok := ctx.Value(adminKey).(*domain.AdminClaims)
	return claims, ok && claims != nil
}

// authenticate extracts and verifies the bearer token. It returns a failure message
// when the request is not authenticated.
func authenticate(verifier domain.TokenVerifier, r *http.Request) (*domain.AdminClaims, string) {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return nil, "No token provided"
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(auth, prefix) {
		return nil, "Invalid authorization format"
	}
	token := strings.TrimSpace(auth[len(prefix):])
	if token == "" {
		return nil, "No token provided"
	}
	claims, err := verifier.Verify(token)
	if err != nil {
		return nil, "Invalid or expired token"
	}
	return claims, ""
}

// RequireAdmin returns a wrapper that validates the Bearer token and sets the admin in the request context.
// If the token is missing or invalid, it responds with 401 and does not call next.
func RequireAdmin(verifier domain.TokenVerifier, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			claims, failure := authenticate(verifier, r)
			if failure != "" {
				logger.DebugContext(r.Context(), "admin auth rejected", "path", r.URL.Path, "reason", failure)
				h.WriteJSONError(w, http.StatusUnauthorized, failure, "")
				return
			}
			next(w, r.WithContext(SetAdmin(r.Context(), claims)))
		}
	}
}

// RequireAdminOnceBootstrapped lets requests through without a token while hasAdmins
// reports false, so the first admin can be created. Afterwards it behaves like RequireAdmin.
func RequireAdminOnceBootstrapped(verifier domain.TokenVerifier, hasAdmins func(context.Context) (bool, error), logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	requireAdmin := RequireAdmin(verifier, logger)
	return func(next http.HandlerFunc) http.HandlerFunc {
		guarded := requireAdmin(next)
		return func(w http.ResponseWriter, r *http.Request) {
			ok, err := hasAdmins(r.Context())
			if err != nil {
				logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
				h.WriteJSONError(w, http.StatusInternalServerError, "Registration failed", "internal server error")
				return
			}
			if !ok {
				next(w, r)
				return
			}
			guarded(w, r)
		}
	}
}

package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/econolearn/econolearn/internal/auth/jwt"
	httperrors "github.com/econolearn/econolearn/pkg/http/errors"
)

type claimsKey struct{}

// ClaimsFromContext returns the validated claims for the request, or nil.
func ClaimsFromContext(ctx context.Context) *jwt.Claims {
	claims, _ := ctx.Value(claimsKey{}).(*jwt.Claims)
	return claims
}

// Middleware validates bearer tokens and injects claims into the request
// context. Requests without an Authorization header are rejected.
func Middleware(svc *Service, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				httperrors.RespondUnauthorized(w, httperrors.ErrCodeAuthenticationRequired, "Authentication required")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				httperrors.RespondUnauthorized(w, httperrors.ErrCodeInvalidToken, "Invalid authorization header")
				return
			}

			claims, err := svc.ValidateToken(parts[1])
			if err != nil {
				logger.Warn().Err(err).Msg("token validation failed")
				httperrors.RespondUnauthorized(w, httperrors.ErrCodeInvalidToken, "Invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsKey{}, claims)))
		})
	}
}

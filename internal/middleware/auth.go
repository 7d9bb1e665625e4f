package middleware

import (
	"context"
	"net/http"
	"strings"

	"catalog-api/internal/service"

	"go.uber.org/zap"
)

type contextKey string

const claimsKey contextKey = "claims"

// TokenVerifier checks a bearer token and returns its claims
type TokenVerifier interface {
	ValidateToken(tokenString string) (*service.Claims, error)
}

// AuthMiddleware requires a valid "Bearer <token>" header. A missing or
// malformed header is rejected with 401, a token that fails verification
// with 403.
func AuthMiddleware(verifier TokenVerifier, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				logger.Debug("Missing or malformed authorization header",
					zap.String("path", r.URL.Path),
				)
				RespondWithMessage(w, http.StatusUnauthorized, "Access denied. No token provided.")
				return
			}

			claims, err := verifier.ValidateToken(tokenString)
			if err != nil {
				logger.Debug("Token validation failed", zap.Error(err))
				RespondWithMessage(w, http.StatusForbidden, "Invalid or expired token.")
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken extracts the token from an exact "Bearer <token>" header.
func bearerToken(header string) (string, bool) {
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// GetClaims extracts the verified token claims from request context
func GetClaims(ctx context.Context) (*service.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*service.Claims)
	return claims, ok
}

// GetUserRole extracts the role claim from request context
func GetUserRole(ctx context.Context) (string, bool) {
	claims, ok := GetClaims(ctx)
	if !ok {
		return "", false
	}
	return claims.Role, true
}

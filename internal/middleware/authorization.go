package middleware

import (
	"net/http"
	"slices"

	"catalog-api/internal/service"

	"go.uber.org/zap"
)

// RequireAdmin ensures the authenticated caller holds the admin role
func RequireAdmin(logger *zap.Logger) func(http.Handler) http.Handler {
	return RequireRole([]string{service.RoleAdmin}, logger)
}

// RequireRole ensures the authenticated caller has one of the allowed roles.
// It must run after AuthMiddleware.
func RequireRole(allowedRoles []string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := GetUserRole(r.Context())
			if !ok || !slices.Contains(allowedRoles, role) {
				logger.Warn("Caller role not authorized",
					zap.String("role", role),
					zap.Strings("allowed_roles", allowedRoles),
				)
				RespondWithMessage(w, http.StatusForbidden, "Insufficient permissions.")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

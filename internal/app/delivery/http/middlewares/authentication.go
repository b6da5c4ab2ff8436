package middlewares

import (
	"clinic-ledger-service/internal/pkg/constvars"
	"clinic-ledger-service/internal/pkg/exceptions"
	"clinic-ledger-service/internal/pkg/utils"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// Authenticate verifies the bearer token and stores the caller identity in
// the request context.
func (m *Middlewares) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get(constvars.HeaderAuthorization)
		if authHeader == "" || !strings.HasPrefix(authHeader, constvars.BearerPrefix) {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenMissing(nil))
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, constvars.BearerPrefix))
		identity, err := m.JWTManager.VerifyToken(r.Context(), token)
		if err != nil {
			utils.BuildErrorResponse(m.Log, w, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(utils.WithIdentity(r.Context(), identity)))
	})
}

// Authorize checks the caller's role against the policy for the request
// method and path.
func (m *Middlewares) Authorize(next http.Handler) http.Handler {
	basePath := m.BasePath()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := utils.GetIdentity(r.Context())
		if !ok {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenMissing(nil))
			return
		}

		path := strings.TrimPrefix(r.URL.Path, basePath)
		if len(path) > 1 {
			path = strings.TrimSuffix(path, "/")
		}

		allowed, err := m.Enforcer.Enforce(identity.Role, path, r.Method)
		if err != nil {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrAuthorizationPolicy(err))
			return
		}
		if !allowed {
			utils.LogSecurityEvent(m.Log, "permission_denied", utils.GetRequestID(r.Context()), "medium",
				zap.String(constvars.LoggingUserIDKey, identity.UserID),
				zap.String(constvars.LoggingRoleKey, identity.Role),
				zap.String(constvars.LoggingMethodKey, r.Method),
				zap.String(constvars.LoggingEndpointKey, path),
			)
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrPermissionDenied(nil))
			return
		}

		next.ServeHTTP(w, r)
	})
}

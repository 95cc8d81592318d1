package auth

import (
	"net/http"
	"strings"

	"github.com/noah-isme/phoneshop-api/internal/common"
)

// Middleware wires authentication context into HTTP handlers.
type Middleware struct {
	Service *Service
}

// RequireAuth enforces that a valid token is present before executing the
// next handler.
func (m Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractToken(r)
		if token == "" {
			common.JSONError(w, http.StatusUnauthorized, common.CodeUnauthorized,
				"missing or invalid token", nil)
			return
		}
		userID, err := m.Service.ParseAccessToken(token)
		if err != nil {
			common.WriteError(w, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(common.WithUserID(r.Context(), userID)))
	})
}

// RequireAdmin allows only admin accounts through. It must run inside
// RequireAuth.
func (m Middleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := common.UserID(r.Context())
		if !ok {
			common.JSONError(w, http.StatusUnauthorized, common.CodeUnauthorized,
				"missing or invalid token", nil)
			return
		}
		isAdmin, err := m.Service.IsAdmin(r.Context(), userID)
		if err != nil {
			common.WriteError(w, err)
			return
		}
		if !isAdmin {
			common.JSONError(w, http.StatusForbidden, common.CodeForbidden,
				"admin access required", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func extractToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if strings.HasPrefix(strings.ToLower(header), "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}

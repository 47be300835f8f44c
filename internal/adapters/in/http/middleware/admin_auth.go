// internal/adapters/in/http/middleware/admin_auth.go
package middleware

import (
	"errors"
	"net/http"

	userdom "atelier/internal/domain/user"
)

// AdminAuthMiddleware gates admin routes on the profile doc's role.
// Runs after UserAuthMiddleware so the uid is already verified.
type AdminAuthMiddleware struct {
	Users userdom.Repository
}

func (m *AdminAuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.Users == nil {
			http.Error(w, "admin auth middleware not initialized", http.StatusServiceUnavailable)
			return
		}

		uid, ok := CurrentUserUID(r)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		u, err := m.Users.GetByID(r.Context(), uid)
		if err != nil {
			if errors.Is(err, userdom.ErrNotFound) {
				http.Error(w, "forbidden: admin only", http.StatusForbidden)
				return
			}
			http.Error(w, "admin check failed", http.StatusInternalServerError)
			return
		}
		if !u.IsAdmin() {
			http.Error(w, "forbidden: admin only", http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}

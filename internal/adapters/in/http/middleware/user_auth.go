// internal/adapters/in/http/middleware/user_auth.go
package middleware

import (
	"context"
	"net/http"
	"strings"
)

// UserAuthMiddleware verifies the Firebase ID token and stores
// uid/email in the request context. Every /api route runs behind it.
type UserAuthMiddleware struct {
	FirebaseAuth *FirebaseAuthClient
}

func (m *UserAuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.FirebaseAuth == nil {
			http.Error(w, "user auth middleware not initialized", http.StatusServiceUnavailable)
			return
		}

		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			http.Error(w, "unauthorized: missing bearer token", http.StatusUnauthorized)
			return
		}

		idToken := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if idToken == "" {
			http.Error(w, "unauthorized: empty bearer token", http.StatusUnauthorized)
			return
		}

		token, err := m.FirebaseAuth.VerifyIDToken(r.Context(), idToken)
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		uid := strings.TrimSpace(token.UID)
		if uid == "" {
			http.Error(w, "invalid uid in token", http.StatusUnauthorized)
			return
		}

		email := ""
		if raw, ok := token.Claims["email"]; ok {
			if e, ok2 := raw.(string); ok2 {
				email = strings.TrimSpace(e)
			}
		}

		ctx := context.WithValue(r.Context(), ctxKeyUID, uid)
		if email != "" {
			ctx = context.WithValue(ctx, ctxKeyEmail, email)
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalHandler verifies a bearer token when one is present but never
// rejects. Routes with public reads and authenticated writes run behind
// it; the handler checks CurrentUserUID per method.
func (m *UserAuthMiddleware) OptionalHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if m.FirebaseAuth == nil || !strings.HasPrefix(authHeader, "Bearer ") {
			next.ServeHTTP(w, r)
			return
		}

		idToken := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if idToken == "" {
			next.ServeHTTP(w, r)
			return
		}

		token, err := m.FirebaseAuth.VerifyIDToken(r.Context(), idToken)
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		uid := strings.TrimSpace(token.UID)
		if uid == "" {
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), ctxKeyUID, uid)
		if raw, ok := token.Claims["email"]; ok {
			if e, ok2 := raw.(string); ok2 && strings.TrimSpace(e) != "" {
				ctx = context.WithValue(ctx, ctxKeyEmail, strings.TrimSpace(e))
			}
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// CurrentUserUID returns the verified Firebase UID from the context.
func CurrentUserUID(r *http.Request) (string, bool) {
	u, ok := r.Context().Value(ctxKeyUID).(string)
	if !ok || strings.TrimSpace(u) == "" {
		return "", false
	}
	return strings.TrimSpace(u), true
}

// CurrentUserEmail returns the token email when present.
func CurrentUserEmail(r *http.Request) (string, bool) {
	e, ok := r.Context().Value(ctxKeyEmail).(string)
	if !ok || strings.TrimSpace(e) == "" {
		return "", false
	}
	return strings.TrimSpace(e), true
}

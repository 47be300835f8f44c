// internal/adapters/in/http/api/handler/helper_handler.go
package apiHandler

import (
	"encoding/json"
	"net/http"

	"atelier/internal/adapters/in/http/middleware"
)

// ============================================================
// Shared helpers
// ============================================================

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// requireUser pulls the verified uid or answers 401.
func requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	uid, ok := middleware.CurrentUserUID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return "", false
	}
	return uid, true
}

// internal/adapters/in/http/api/handler/admin_handler.go
package apiHandler

import (
	"net/http"
	"strings"

	usecase "atelier/internal/application/usecase"
)

// AdminHandler serves /api/admin. Registered behind the admin
// middleware, so no in-handler role check.
type AdminHandler struct {
	stats *usecase.StatsUsecase
}

func NewAdminHandler(stats *usecase.StatsUsecase) http.Handler {
	return &AdminHandler{stats: stats}
}

func (h *AdminHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	path := strings.TrimSuffix(r.URL.Path, "/")

	switch {
	// GET /api/admin/stats
	case r.Method == http.MethodGet && path == "/api/admin/stats":
		stats, err := h.stats.Dashboard(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, stats)

	default:
		writeError(w, http.StatusNotFound, "not_found")
	}
}

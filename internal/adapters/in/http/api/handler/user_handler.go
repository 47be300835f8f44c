// internal/adapters/in/http/api/handler/user_handler.go
package apiHandler

import (
	"encoding/json"
	"net/http"
	"strings"

	"atelier/internal/adapters/in/http/middleware"
	usecase "atelier/internal/application/usecase"
	userdom "atelier/internal/domain/user"
)

// UserHandler serves /api/users and the admin user-management surface.
type UserHandler struct {
	uc *usecase.UserUsecase
}

func NewUserHandler(uc *usecase.UserUsecase) http.Handler {
	return &UserHandler{uc: uc}
}

func (h *UserHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	path := strings.TrimSuffix(r.URL.Path, "/")

	switch {
	// POST /api/users/forgot-password (public, registered separately)
	case r.Method == http.MethodPost && path == "/api/users/forgot-password":
		h.forgotPassword(w, r)

	// POST /api/users
	case r.Method == http.MethodPost && path == "/api/users":
		h.register(w, r)

	// GET /api/users/me
	case r.Method == http.MethodGet && path == "/api/users/me":
		h.me(w, r)

	// PATCH /api/users/me
	case r.Method == http.MethodPatch && path == "/api/users/me":
		h.updateMe(w, r)

	// GET /api/users (admin)
	case r.Method == http.MethodGet && path == "/api/users":
		h.list(w, r)

	// PATCH /api/users/{id}/role (admin)
	case r.Method == http.MethodPatch && strings.HasPrefix(path, "/api/users/") && strings.HasSuffix(path, "/role"):
		id := strings.TrimSuffix(strings.TrimPrefix(path, "/api/users/"), "/role")
		h.setRole(w, r, id)

	// DELETE /api/users/{id} (admin)
	case r.Method == http.MethodDelete && strings.HasPrefix(path, "/api/users/"):
		h.del(w, r, strings.TrimPrefix(path, "/api/users/"))

	default:
		writeError(w, http.StatusNotFound, "not_found")
	}
}

func (h *UserHandler) register(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req struct {
		Email       string `json:"email"`
		DisplayName string `json:"displayName"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	email := strings.TrimSpace(req.Email)
	if email == "" {
		if e, ok := middleware.CurrentUserEmail(r); ok {
			email = e
		}
	}

	u, err := h.uc.Register(r.Context(), uid, email, req.DisplayName)
	if err != nil {
		writeUserErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, u)
}

func (h *UserHandler) me(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUser(w, r)
	if !ok {
		return
	}

	u, err := h.uc.Get(r.Context(), uid)
	if err != nil {
		writeUserErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (h *UserHandler) updateMe(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req struct {
		DisplayName string `json:"displayName"`
		Bio         string `json:"bio"`
		AvatarURL   string `json:"avatarUrl"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	u, err := h.uc.UpdateProfile(r.Context(), uid, req.DisplayName, req.Bio, req.AvatarURL)
	if err != nil {
		writeUserErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (h *UserHandler) list(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	users, err := h.uc.List(r.Context())
	if err != nil {
		writeUserErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *UserHandler) setRole(w http.ResponseWriter, r *http.Request, id string) {
	if !h.requireAdmin(w, r) {
		return
	}

	var req struct {
		Role string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	u, err := h.uc.SetRole(r.Context(), id, userdom.Role(strings.TrimSpace(req.Role)))
	if err != nil {
		writeUserErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (h *UserHandler) del(w http.ResponseWriter, r *http.Request, id string) {
	if !h.requireAdmin(w, r) {
		return
	}

	if err := h.uc.Delete(r.Context(), id); err != nil {
		writeUserErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *UserHandler) forgotPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	msg, err := h.uc.ForgotPassword(r.Context(), req.Email)
	if err != nil {
		writeError(w, http.StatusBadRequest, "email is required")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": msg})
}

func (h *UserHandler) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	uid, ok := requireUser(w, r)
	if !ok {
		return false
	}
	admin, err := h.uc.IsAdmin(r.Context(), uid)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "admin check failed")
		return false
	}
	if !admin {
		writeError(w, http.StatusForbidden, "forbidden: admin only")
		return false
	}
	return true
}

func writeUserErr(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError

	switch err {
	case userdom.ErrInvalidID,
		userdom.ErrInvalidEmail,
		userdom.ErrInvalidDisplayName,
		userdom.ErrInvalidRole,
		usecase.ErrUserInvalidArgument:
		code = http.StatusBadRequest
	case userdom.ErrNotFound:
		code = http.StatusNotFound
	case userdom.ErrConflict:
		code = http.StatusConflict
	}

	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

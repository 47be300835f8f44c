// internal/adapters/in/http/api/handler/cart_handler.go
package apiHandler

import (
	"encoding/json"
	"net/http"
	"strings"

	usecase "atelier/internal/application/usecase"
	artdom "atelier/internal/domain/artwork"
	cartdom "atelier/internal/domain/cart"
)

// CartHandler serves /api/cart. The cart is always the caller's own;
// there is no admin view.
type CartHandler struct {
	uc *usecase.CartUsecase
}

func NewCartHandler(uc *usecase.CartUsecase) http.Handler {
	return &CartHandler{uc: uc}
}

func (h *CartHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	uid, ok := requireUser(w, r)
	if !ok {
		return
	}

	path := strings.TrimSuffix(r.URL.Path, "/")

	switch {
	// GET /api/cart
	case r.Method == http.MethodGet && path == "/api/cart":
		h.get(w, r, uid)

	// DELETE /api/cart
	case r.Method == http.MethodDelete && path == "/api/cart":
		h.clear(w, r, uid)

	// POST /api/cart/items
	case r.Method == http.MethodPost && path == "/api/cart/items":
		h.addItem(w, r, uid)

	// PATCH /api/cart/items/{artworkId}
	case r.Method == http.MethodPatch && strings.HasPrefix(path, "/api/cart/items/"):
		h.setQty(w, r, uid, strings.TrimPrefix(path, "/api/cart/items/"))

	// DELETE /api/cart/items/{artworkId}
	case r.Method == http.MethodDelete && strings.HasPrefix(path, "/api/cart/items/"):
		h.removeItem(w, r, uid, strings.TrimPrefix(path, "/api/cart/items/"))

	default:
		writeError(w, http.StatusNotFound, "not_found")
	}
}

func (h *CartHandler) get(w http.ResponseWriter, r *http.Request, uid string) {
	c, err := h.uc.Get(r.Context(), uid)
	if err != nil {
		writeCartErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *CartHandler) addItem(w http.ResponseWriter, r *http.Request, uid string) {
	var req struct {
		ArtworkID string `json:"artworkId"`
		Qty       int    `json:"qty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Qty == 0 {
		req.Qty = 1
	}

	c, err := h.uc.AddItem(r.Context(), uid, req.ArtworkID, req.Qty)
	if err != nil {
		writeCartErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *CartHandler) setQty(w http.ResponseWriter, r *http.Request, uid, artworkID string) {
	var req struct {
		Qty int `json:"qty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	c, err := h.uc.SetQty(r.Context(), uid, artworkID, req.Qty)
	if err != nil {
		writeCartErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *CartHandler) removeItem(w http.ResponseWriter, r *http.Request, uid, artworkID string) {
	c, err := h.uc.RemoveItem(r.Context(), uid, artworkID)
	if err != nil {
		writeCartErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *CartHandler) clear(w http.ResponseWriter, r *http.Request, uid string) {
	c, err := h.uc.Clear(r.Context(), uid)
	if err != nil {
		writeCartErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func writeCartErr(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError

	switch err {
	case cartdom.ErrInvalidCart,
		artdom.ErrNotForSale,
		artdom.ErrAlreadySold,
		usecase.ErrCartInvalidArgument:
		code = http.StatusBadRequest
	case artdom.ErrNotFound:
		code = http.StatusNotFound
	}

	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

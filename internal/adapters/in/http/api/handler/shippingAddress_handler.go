// internal/adapters/in/http/api/handler/shippingAddress_handler.go
package apiHandler

import (
	"encoding/json"
	"net/http"
	"strings"

	usecase "atelier/internal/application/usecase"
	shadom "atelier/internal/domain/shippingAddress"
)

// ShippingAddressHandler serves the address book under
// /api/orders/addresses. Always scoped to the caller.
type ShippingAddressHandler struct {
	uc *usecase.ShippingAddressUsecase
}

func NewShippingAddressHandler(uc *usecase.ShippingAddressUsecase) http.Handler {
	return &ShippingAddressHandler{uc: uc}
}

func (h *ShippingAddressHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	uid, ok := requireUser(w, r)
	if !ok {
		return
	}

	path := strings.TrimSuffix(r.URL.Path, "/")

	switch {
	// GET /api/orders/addresses
	case r.Method == http.MethodGet && path == "/api/orders/addresses":
		h.list(w, r, uid)

	// GET /api/orders/addresses/default
	case r.Method == http.MethodGet && path == "/api/orders/addresses/default":
		h.getDefault(w, r, uid)

	// POST /api/orders/addresses
	case r.Method == http.MethodPost && path == "/api/orders/addresses":
		h.post(w, r, uid)

	// GET /api/orders/addresses/{id}
	case r.Method == http.MethodGet && strings.HasPrefix(path, "/api/orders/addresses/"):
		h.get(w, r, uid, strings.TrimPrefix(path, "/api/orders/addresses/"))

	// PATCH /api/orders/addresses/{id}
	case r.Method == http.MethodPatch && strings.HasPrefix(path, "/api/orders/addresses/"):
		h.patch(w, r, uid, strings.TrimPrefix(path, "/api/orders/addresses/"))

	// DELETE /api/orders/addresses/{id}
	case r.Method == http.MethodDelete && strings.HasPrefix(path, "/api/orders/addresses/"):
		h.del(w, r, uid, strings.TrimPrefix(path, "/api/orders/addresses/"))

	default:
		writeError(w, http.StatusNotFound, "not_found")
	}
}

type addressReq struct {
	Recipient string `json:"recipient"`
	ZipCode   string `json:"zipCode"`
	State     string `json:"state"`
	City      string `json:"city"`
	Street    string `json:"street"`
	Street2   string `json:"street2"`
	Country   string `json:"country"`
	IsDefault bool   `json:"isDefault"`
}

func (req addressReq) toInput(uid string) usecase.CreateAddressInput {
	return usecase.CreateAddressInput{
		UserID:    uid,
		Recipient: req.Recipient,
		ZipCode:   req.ZipCode,
		State:     req.State,
		City:      req.City,
		Street:    req.Street,
		Street2:   req.Street2,
		Country:   req.Country,
		IsDefault: req.IsDefault,
	}
}

func (h *ShippingAddressHandler) list(w http.ResponseWriter, r *http.Request, uid string) {
	list, err := h.uc.ListByUser(r.Context(), uid)
	if err != nil {
		writeShippingAddressErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *ShippingAddressHandler) getDefault(w http.ResponseWriter, r *http.Request, uid string) {
	a, err := h.uc.GetDefault(r.Context(), uid)
	if err != nil {
		writeShippingAddressErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (h *ShippingAddressHandler) get(w http.ResponseWriter, r *http.Request, uid, id string) {
	a, err := h.uc.Get(r.Context(), id, uid)
	if err != nil {
		writeShippingAddressErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (h *ShippingAddressHandler) post(w http.ResponseWriter, r *http.Request, uid string) {
	var req addressReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	a, err := h.uc.Create(r.Context(), req.toInput(uid))
	if err != nil {
		writeShippingAddressErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, a)
}

func (h *ShippingAddressHandler) patch(w http.ResponseWriter, r *http.Request, uid, id string) {
	var req addressReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	a, err := h.uc.Update(r.Context(), id, uid, req.toInput(uid))
	if err != nil {
		writeShippingAddressErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (h *ShippingAddressHandler) del(w http.ResponseWriter, r *http.Request, uid, id string) {
	if err := h.uc.Delete(r.Context(), id, uid); err != nil {
		writeShippingAddressErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeShippingAddressErr(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError

	switch err {
	case shadom.ErrInvalidID,
		shadom.ErrInvalidUserID,
		shadom.ErrInvalidRecipient,
		shadom.ErrInvalidZipCode,
		shadom.ErrInvalidState,
		shadom.ErrInvalidCity,
		shadom.ErrInvalidStreet,
		shadom.ErrInvalidCountry,
		shadom.ErrInvalidCreatedAt,
		usecase.ErrAddressInvalidArgument:
		code = http.StatusBadRequest
	case shadom.ErrNotFound:
		code = http.StatusNotFound
	case shadom.ErrConflict:
		code = http.StatusConflict
	case shadom.ErrForbidden:
		code = http.StatusForbidden
	}

	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

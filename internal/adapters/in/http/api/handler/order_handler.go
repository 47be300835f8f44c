// internal/adapters/in/http/api/handler/order_handler.go
package apiHandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	usecase "atelier/internal/application/usecase"
	artdom "atelier/internal/domain/artwork"
	orderdom "atelier/internal/domain/order"
	paydom "atelier/internal/domain/payment"
	shadom "atelier/internal/domain/shippingAddress"
)

// OrderHandler serves /api/orders: checkout, the caller's order list,
// and the admin fulfillment surface.
type OrderHandler struct {
	orders *usecase.OrderUsecase
	carts  *usecase.CartUsecase
	users  *usecase.UserUsecase
}

func NewOrderHandler(orders *usecase.OrderUsecase, carts *usecase.CartUsecase, users *usecase.UserUsecase) http.Handler {
	return &OrderHandler{orders: orders, carts: carts, users: users}
}

func (h *OrderHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	uid, ok := requireUser(w, r)
	if !ok {
		return
	}

	path := strings.TrimSuffix(r.URL.Path, "/")

	switch {
	// POST /api/orders
	case r.Method == http.MethodPost && path == "/api/orders":
		h.post(w, r, uid)

	// GET /api/orders
	case r.Method == http.MethodGet && path == "/api/orders":
		h.listMine(w, r, uid)

	// GET /api/orders/all (admin)
	case r.Method == http.MethodGet && path == "/api/orders/all":
		h.listAll(w, r, uid)

	// GET /api/orders/admin/reports (admin)
	case r.Method == http.MethodGet && path == "/api/orders/admin/reports":
		h.reports(w, r, uid)

	case strings.HasPrefix(path, "/api/orders/"):
		rest := strings.TrimPrefix(path, "/api/orders/")
		id, action, _ := strings.Cut(rest, "/")

		switch {
		case action == "" && r.Method == http.MethodGet:
			h.get(w, r, uid, id)
		case action == "status" && r.Method == http.MethodPut:
			h.putStatus(w, r, uid, id)
		case action == "payment-status" && r.Method == http.MethodPut:
			h.putPaymentStatus(w, r, uid, id)
		case action == "tracking" && r.Method == http.MethodPut:
			h.putTracking(w, r, uid, id)
		case action == "cancel" && r.Method == http.MethodPut:
			h.cancel(w, r, uid, id)
		default:
			writeError(w, http.StatusNotFound, "not_found")
		}

	default:
		writeError(w, http.StatusNotFound, "not_found")
	}
}

// POST /api/orders
// Items come either inline or, with fromCart=true, from the caller's
// cart (which is cleared after the order is persisted).
func (h *OrderHandler) post(w http.ResponseWriter, r *http.Request, uid string) {
	var req struct {
		FromCart bool `json:"fromCart"`
		Items    []struct {
			ArtworkID string `json:"artworkId"`
			Qty       int    `json:"qty"`
		} `json:"items"`
		ShippingAddressID string                    `json:"shippingAddressId"`
		ShippingAddress   orderdom.ShippingSnapshot `json:"shippingAddress"`
		PaymentMethod     string                    `json:"paymentMethod"`
		ShippingCost      int                       `json:"shippingCost"`
		Tax               int                       `json:"tax"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	in := usecase.CreateOrderInput{
		UserID:            uid,
		ShippingAddressID: req.ShippingAddressID,
		ShippingAddress:   req.ShippingAddress,
		PaymentMethod:     orderdom.PaymentMethod(strings.TrimSpace(req.PaymentMethod)),
		ShippingCost:      req.ShippingCost,
		Tax:               req.Tax,
	}

	var (
		o   orderdom.Order
		err error
	)
	if req.FromCart {
		o, err = h.carts.Checkout(r.Context(), uid, h.orders, in)
	} else {
		in.Items = make([]usecase.OrderItemInput, 0, len(req.Items))
		for _, it := range req.Items {
			in.Items = append(in.Items, usecase.OrderItemInput{ArtworkID: it.ArtworkID, Qty: it.Qty})
		}
		o, err = h.orders.Create(r.Context(), in)
	}
	if err != nil {
		writeOrderErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, o)
}

func (h *OrderHandler) listMine(w http.ResponseWriter, r *http.Request, uid string) {
	list, err := h.orders.ListByUser(r.Context(), uid)
	if err != nil {
		writeOrderErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *OrderHandler) listAll(w http.ResponseWriter, r *http.Request, uid string) {
	if !h.requireAdmin(w, r, uid) {
		return
	}

	list, err := h.orders.ListAll(r.Context())
	if err != nil {
		writeOrderErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *OrderHandler) get(w http.ResponseWriter, r *http.Request, uid, id string) {
	// Admins see every order; users only their own.
	admin, err := h.users.IsAdmin(r.Context(), uid)
	if err != nil {
		writeOrderErr(w, err)
		return
	}

	var o orderdom.Order
	if admin {
		o, err = h.orders.GetByID(r.Context(), id)
	} else {
		o, err = h.orders.GetByIDForUser(r.Context(), id, uid)
	}
	if err != nil {
		writeOrderErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

// PUT /api/orders/{id}/status (admin)
func (h *OrderHandler) putStatus(w http.ResponseWriter, r *http.Request, uid, id string) {
	if !h.requireAdmin(w, r, uid) {
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	o, err := h.orders.UpdateStatus(r.Context(), id, orderdom.Status(strings.TrimSpace(req.Status)))
	if err != nil {
		writeOrderErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

// PUT /api/orders/{id}/payment-status (owner or admin)
func (h *OrderHandler) putPaymentStatus(w http.ResponseWriter, r *http.Request, uid, id string) {
	admin, err := h.users.IsAdmin(r.Context(), uid)
	if err != nil {
		writeOrderErr(w, err)
		return
	}
	if !admin {
		if _, err := h.orders.GetByIDForUser(r.Context(), id, uid); err != nil {
			writeOrderErr(w, err)
			return
		}
	}

	var req struct {
		Status        string `json:"status"`
		TransactionID string `json:"transactionId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	o, err := h.orders.UpdatePaymentStatus(r.Context(), id, paydom.Status(strings.TrimSpace(req.Status)), req.TransactionID)
	if err != nil {
		writeOrderErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

// PUT /api/orders/{id}/tracking (admin)
func (h *OrderHandler) putTracking(w http.ResponseWriter, r *http.Request, uid, id string) {
	if !h.requireAdmin(w, r, uid) {
		return
	}

	var req struct {
		TrackingNumber string `json:"trackingNumber"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	o, err := h.orders.AddTracking(r.Context(), id, req.TrackingNumber)
	if err != nil {
		writeOrderErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

// PUT /api/orders/{id}/cancel (owner)
func (h *OrderHandler) cancel(w http.ResponseWriter, r *http.Request, uid, id string) {
	o, err := h.orders.Cancel(r.Context(), id, uid)
	if err != nil {
		writeOrderErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

// GET /api/orders/admin/reports?startDate=2026-01-01&endDate=2026-02-01
func (h *OrderHandler) reports(w http.ResponseWriter, r *http.Request, uid string) {
	if !h.requireAdmin(w, r, uid) {
		return
	}

	from, ok := parseDateParam(w, r.URL.Query().Get("startDate"))
	if !ok {
		return
	}
	to, ok := parseDateParam(w, r.URL.Query().Get("endDate"))
	if !ok {
		return
	}
	// endDate is inclusive: push the bound to the following midnight.
	if !to.IsZero() {
		to = to.Add(24 * time.Hour)
	}

	rep, err := h.orders.SalesReport(r.Context(), from, to)
	if err != nil {
		writeOrderErr(w, err)
		return
	}

	resp := map[string]interface{}{
		"totalOrders":     rep.TotalOrders,
		"totalRevenue":    rep.TotalRevenue,
		"pendingOrders":   rep.PendingOrders,
		"completedOrders": rep.CompletedOrders,
		"orders":          rep.Orders,
	}

	if ledger, err := h.orders.LedgerSummary(r.Context(), from, to); err == nil {
		resp["ledger"] = ledger
	} else if !errors.Is(err, usecase.ErrLedgerDisabled) {
		writeOrderErr(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *OrderHandler) requireAdmin(w http.ResponseWriter, r *http.Request, uid string) bool {
	admin, err := h.users.IsAdmin(r.Context(), uid)
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

// parseDateParam accepts YYYY-MM-DD or RFC3339; empty means open bound.
func parseDateParam(w http.ResponseWriter, raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, true
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t.UTC(), true
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), true
	}
	writeError(w, http.StatusBadRequest, "invalid date: "+raw)
	return time.Time{}, false
}

func writeOrderErr(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError

	var unavailable *usecase.UnavailableArtworkError
	switch {
	case errors.As(err, &unavailable):
		code = http.StatusBadRequest
	case errors.Is(err, orderdom.ErrNotFound),
		errors.Is(err, artdom.ErrNotFound),
		errors.Is(err, paydom.ErrNotFound),
		errors.Is(err, shadom.ErrNotFound):
		code = http.StatusNotFound
	case errors.Is(err, orderdom.ErrConflict), errors.Is(err, paydom.ErrConflict):
		code = http.StatusConflict
	case errors.Is(err, shadom.ErrForbidden):
		code = http.StatusForbidden
	case errors.Is(err, orderdom.ErrInvalidItems),
		errors.Is(err, orderdom.ErrInvalidLineItem),
		errors.Is(err, orderdom.ErrInvalidStatus),
		errors.Is(err, orderdom.ErrInvalidMethod),
		errors.Is(err, orderdom.ErrInvalidAddress),
		errors.Is(err, orderdom.ErrInvalidAmount),
		errors.Is(err, orderdom.ErrNotCancellable),
		errors.Is(err, orderdom.ErrInvalidTrackingCode),
		errors.Is(err, paydom.ErrInvalidStatus),
		errors.Is(err, usecase.ErrOrderInvalidArgument),
		errors.Is(err, usecase.ErrCartInvalidArgument):
		code = http.StatusBadRequest
	}

	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

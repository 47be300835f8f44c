// internal/application/usecase/order_usecase.go
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	artdom "atelier/internal/domain/artwork"
	orderdom "atelier/internal/domain/order"
	paydom "atelier/internal/domain/payment"
	shadom "atelier/internal/domain/shippingAddress"
)

var (
	ErrOrderInvalidArgument = errors.New("order_usecase: invalid argument")
	ErrLedgerDisabled       = errors.New("order_usecase: sales ledger not configured")
)

// UnavailableArtworkError names the offending artwork when checkout
// validation fails, so the client can point at the exact item.
type UnavailableArtworkError struct {
	ArtworkID string
	Reason    string
}

func (e *UnavailableArtworkError) Error() string {
	return fmt.Sprintf("order_usecase: artwork %s is unavailable: %s", e.ArtworkID, e.Reason)
}

// OrderItemInput is one requested (artwork, qty) pair at checkout.
type OrderItemInput struct {
	ArtworkID string
	Qty       int
}

// CreateOrderInput is the validated checkout request.
// Exactly one of ShippingAddressID / ShippingAddress is used: when the
// id is set, the stored address is resolved (ownership-checked) and
// snapshotted; otherwise the inline snapshot is taken as-is.
type CreateOrderInput struct {
	UserID            string
	Items             []OrderItemInput
	ShippingAddressID string
	ShippingAddress   orderdom.ShippingSnapshot
	PaymentMethod     orderdom.PaymentMethod
	ShippingCost      int
	Tax               int
}

// SaleEntry is one paid order flattened for the relational ledger.
type SaleEntry struct {
	OrderID       string
	OrderNumber   string
	UserID        string
	Total         int
	PaymentMethod string
	PaidAt        time.Time
}

// LedgerSummary is the relational-side aggregate over recorded sales.
type LedgerSummary struct {
	Sales   int `json:"sales"`
	Revenue int `json:"revenue"`
}

// SalesLedger is an optional secondary sink for paid orders. Entries
// are recorded best-effort after the payment doc is updated; the
// document store stays the source of truth.
type SalesLedger interface {
	Record(ctx context.Context, e SaleEntry) error
	Summary(ctx context.Context, from, to time.Time) (LedgerSummary, error)
}

// SalesReport is the admin aggregation over an order set.
type SalesReport struct {
	TotalOrders     int              `json:"totalOrders"`
	TotalRevenue    int              `json:"totalRevenue"`
	PendingOrders   int              `json:"pendingOrders"`
	CompletedOrders int              `json:"completedOrders"`
	Orders          []orderdom.Order `json:"orders"`
}

// OrderUsecase is the order placement and fulfillment workflow.
// It owns both the order and the paired payment record; the two writes
// at checkout are sequential with no cross-doc transaction.
type OrderUsecase struct {
	orders   orderdom.Repository
	payments paydom.Repository
	artworks artdom.Repository
	addrs    shadom.Repository
	ledger   SalesLedger
	clock    Clock
}

func NewOrderUsecase(
	orders orderdom.Repository,
	payments paydom.Repository,
	artworks artdom.Repository,
	addrs shadom.Repository,
) *OrderUsecase {
	return &OrderUsecase{
		orders:   orders,
		payments: payments,
		artworks: artworks,
		addrs:    addrs,
		clock:    systemClock{},
	}
}

// NewOrderUsecaseWithClock is useful for tests.
func NewOrderUsecaseWithClock(
	orders orderdom.Repository,
	payments paydom.Repository,
	artworks artdom.Repository,
	addrs shadom.Repository,
	clock Clock,
) *OrderUsecase {
	if clock == nil {
		clock = systemClock{}
	}
	return &OrderUsecase{orders: orders, payments: payments, artworks: artworks, addrs: addrs, clock: clock}
}

// WithSalesLedger attaches the optional relational sink. Call once at
// wiring time; nil leaves the ledger disabled.
func (uc *OrderUsecase) WithSalesLedger(l SalesLedger) *OrderUsecase {
	uc.ledger = l
	return uc
}

// Create turns a checkout request into a persisted order plus a pending
// payment record.
//
// For each item the artwork's current price and seller are resolved and
// snapshotted. Availability (forSale && !sold) is required; the error
// names the first offending artwork and nothing is persisted.
//
// NOTE: Create never marks the purchased artworks sold; only the
// single-artwork buy path (ArtworkUsecase.Buy) flips availability.
func (uc *OrderUsecase) Create(ctx context.Context, in CreateOrderInput) (orderdom.Order, error) {
	userID := strings.TrimSpace(in.UserID)
	if userID == "" || len(in.Items) == 0 {
		return orderdom.Order{}, ErrOrderInvalidArgument
	}
	if !orderdom.IsValidPaymentMethod(in.PaymentMethod) {
		return orderdom.Order{}, orderdom.ErrInvalidMethod
	}
	if in.ShippingCost < 0 || in.Tax < 0 {
		return orderdom.Order{}, orderdom.ErrInvalidAmount
	}

	now := uc.clock.Now()

	// Resolve shipping snapshot.
	snap := in.ShippingAddress
	if aid := strings.TrimSpace(in.ShippingAddressID); aid != "" {
		addr, err := uc.addrs.GetByID(ctx, aid)
		if err != nil {
			return orderdom.Order{}, err
		}
		if addr.UserID != userID {
			return orderdom.Order{}, shadom.ErrForbidden
		}
		snap = orderdom.ShippingSnapshot{
			Recipient: addr.Recipient,
			ZipCode:   addr.ZipCode,
			State:     addr.State,
			City:      addr.City,
			Street:    addr.Street,
			Street2:   addr.Street2,
			Country:   addr.Country,
		}
	}

	// Resolve and snapshot line items.
	items := make([]orderdom.LineItem, 0, len(in.Items))
	for _, req := range in.Items {
		aid := strings.TrimSpace(req.ArtworkID)
		if aid == "" || req.Qty <= 0 {
			return orderdom.Order{}, ErrOrderInvalidArgument
		}

		art, err := uc.artworks.GetByID(ctx, aid)
		if err != nil {
			if errors.Is(err, artdom.ErrNotFound) {
				return orderdom.Order{}, &UnavailableArtworkError{ArtworkID: aid, Reason: "not found"}
			}
			return orderdom.Order{}, err
		}
		if art.Sold {
			return orderdom.Order{}, &UnavailableArtworkError{ArtworkID: aid, Reason: "already sold"}
		}
		if !art.ForSale || art.Price == nil {
			return orderdom.Order{}, &UnavailableArtworkError{ArtworkID: aid, Reason: "not for sale"}
		}

		item, err := orderdom.NewLineItem(art.ID, art.ArtistID, art.Title, *art.Price, req.Qty)
		if err != nil {
			return orderdom.Order{}, err
		}
		items = append(items, item)
	}

	o, err := orderdom.New(
		uuid.NewString(),
		userID,
		orderdom.NewOrderNumber(now),
		items,
		in.ShippingCost,
		in.Tax,
		snap,
		in.PaymentMethod,
		now,
	)
	if err != nil {
		return orderdom.Order{}, err
	}

	created, err := uc.orders.Create(ctx, o)
	if err != nil {
		return orderdom.Order{}, err
	}

	// Companion payment record (pending). Sequential second write: a
	// failure here leaves the order without a payment record; surfaced
	// for manual reconciliation rather than rolled back.
	p, err := paydom.New(created.ID, userID, created.Total, string(created.PaymentMethod), now)
	if err == nil {
		_, err = uc.payments.Create(ctx, p)
	}
	if err != nil {
		log.Printf("[order_uc] ERROR: payment record create failed orderId=%s orderNumber=%s err=%v",
			created.ID, created.OrderNumber, err,
		)
		return created, fmt.Errorf("order_usecase: payment record for order %s: %w", created.ID, err)
	}

	log.Printf("[order_uc] order created orderId=%s orderNumber=%s userId=%s total=%d items=%d",
		created.ID, created.OrderNumber, userID, created.Total, len(created.Items),
	)
	return created, nil
}

// GetByID returns the order without an ownership check (admin surface).
func (uc *OrderUsecase) GetByID(ctx context.Context, id string) (orderdom.Order, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return orderdom.Order{}, orderdom.ErrNotFound
	}
	return uc.orders.GetByID(ctx, id)
}

// GetByIDForUser hides other users' orders behind ErrNotFound.
func (uc *OrderUsecase) GetByIDForUser(ctx context.Context, id, userID string) (orderdom.Order, error) {
	o, err := uc.GetByID(ctx, id)
	if err != nil {
		return orderdom.Order{}, err
	}
	if o.UserID != strings.TrimSpace(userID) {
		return orderdom.Order{}, orderdom.ErrNotFound
	}
	return o, nil
}

func (uc *OrderUsecase) ListByUser(ctx context.Context, userID string) ([]orderdom.Order, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrOrderInvalidArgument
	}
	return uc.orders.ListByUserID(ctx, userID)
}

func (uc *OrderUsecase) ListAll(ctx context.Context) ([]orderdom.Order, error) {
	return uc.orders.ListAll(ctx)
}

// UpdateStatus transitions the business status (admin).
func (uc *OrderUsecase) UpdateStatus(ctx context.Context, id string, next orderdom.Status) (orderdom.Order, error) {
	o, err := uc.GetByID(ctx, id)
	if err != nil {
		return orderdom.Order{}, err
	}
	if err := o.SetStatus(next, uc.clock.Now()); err != nil {
		return orderdom.Order{}, err
	}
	return uc.orders.Save(ctx, o)
}

// UpdatePaymentStatus updates the payment record first, then mirrors
// onto the order. The two writes are sequential; a failure in between
// leaves the payment doc ahead of the order mirror until retried.
func (uc *OrderUsecase) UpdatePaymentStatus(ctx context.Context, id string, next paydom.Status, transactionID string) (orderdom.Order, error) {
	o, err := uc.GetByID(ctx, id)
	if err != nil {
		return orderdom.Order{}, err
	}

	now := uc.clock.Now()

	p, err := uc.payments.GetByOrderID(ctx, o.ID)
	if err != nil {
		return orderdom.Order{}, err
	}
	if err := p.SetStatus(next, transactionID, now); err != nil {
		return orderdom.Order{}, err
	}
	if _, err := uc.payments.Save(ctx, p); err != nil {
		return orderdom.Order{}, err
	}

	o.MarkPaymentStatus(string(next), now)
	saved, err := uc.orders.Save(ctx, o)
	if err != nil {
		return orderdom.Order{}, err
	}

	if next == paydom.StatusPaid && uc.ledger != nil {
		e := SaleEntry{
			OrderID:       saved.ID,
			OrderNumber:   saved.OrderNumber,
			UserID:        saved.UserID,
			Total:         saved.Total,
			PaymentMethod: string(saved.PaymentMethod),
			PaidAt:        now.UTC(),
		}
		if err := uc.ledger.Record(ctx, e); err != nil {
			log.Printf("[order_uc] WARN: sales ledger record failed orderId=%s err=%v", saved.ID, err)
		}
	}
	return saved, nil
}

// LedgerSummary reads the relational aggregate; ErrLedgerDisabled when
// no ledger was wired.
func (uc *OrderUsecase) LedgerSummary(ctx context.Context, from, to time.Time) (LedgerSummary, error) {
	if uc.ledger == nil {
		return LedgerSummary{}, ErrLedgerDisabled
	}
	return uc.ledger.Summary(ctx, from, to)
}

// Cancel sets status cancelled unless already shipped/delivered.
// Ownership-scoped: non-owners get ErrNotFound.
func (uc *OrderUsecase) Cancel(ctx context.Context, id, userID string) (orderdom.Order, error) {
	o, err := uc.GetByIDForUser(ctx, id, userID)
	if err != nil {
		return orderdom.Order{}, err
	}
	if err := o.Cancel(uc.clock.Now()); err != nil {
		return orderdom.Order{}, err
	}
	return uc.orders.Save(ctx, o)
}

// AddTracking attaches a tracking number and forces shipped (admin).
func (uc *OrderUsecase) AddTracking(ctx context.Context, id, trackingNumber string) (orderdom.Order, error) {
	o, err := uc.GetByID(ctx, id)
	if err != nil {
		return orderdom.Order{}, err
	}
	if err := o.SetTracking(trackingNumber, uc.clock.Now()); err != nil {
		return orderdom.Order{}, err
	}
	return uc.orders.Save(ctx, o)
}

// SalesReport aggregates orders created in [from, to]. Zero bounds are
// open. Revenue counts only orders whose mirrored paymentStatus is paid;
// completed means delivered.
func (uc *OrderUsecase) SalesReport(ctx context.Context, from, to time.Time) (SalesReport, error) {
	orders, err := uc.orders.ListByCreatedRange(ctx, from, to)
	if err != nil {
		return SalesReport{}, err
	}

	rep := SalesReport{Orders: orders}
	rep.TotalOrders = len(orders)
	for _, o := range orders {
		if o.PaymentStatus == string(paydom.StatusPaid) {
			rep.TotalRevenue += o.Total
		}
		switch o.Status {
		case orderdom.StatusPending:
			rep.PendingOrders++
		case orderdom.StatusDelivered:
			rep.CompletedOrders++
		}
	}
	if rep.Orders == nil {
		rep.Orders = []orderdom.Order{}
	}
	return rep, nil
}

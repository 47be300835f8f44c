// internal/domain/order/entity.go
package order

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// ========================================
// Enums
// ========================================

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

func IsValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

type PaymentMethod string

const (
	MethodCard           PaymentMethod = "card"
	MethodBankTransfer   PaymentMethod = "bank_transfer"
	MethodCashOnDelivery PaymentMethod = "cash_on_delivery"
)

func IsValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case MethodCard, MethodBankTransfer, MethodCashOnDelivery:
		return true
	}
	return false
}

// ========================================
// Snapshot structs (stored in Order)
// ========================================

// ShippingSnapshot is copied from the address book at order time so
// later address edits never rewrite order history.
type ShippingSnapshot struct {
	Recipient string `json:"recipient" firestore:"recipient"`
	ZipCode   string `json:"zipCode" firestore:"zipCode"`
	State     string `json:"state" firestore:"state"`
	City      string `json:"city" firestore:"city"`
	Street    string `json:"street" firestore:"street"`
	Street2   string `json:"street2" firestore:"street2"`
	Country   string `json:"country" firestore:"country"`
}

// LineItem is a snapshot of one purchased artwork at order time.
type LineItem struct {
	ArtworkID string `json:"artworkId" firestore:"artworkId"`
	SellerID  string `json:"sellerId" firestore:"sellerId"`
	Title     string `json:"title" firestore:"title"`
	UnitPrice int    `json:"unitPrice" firestore:"unitPrice"`
	Qty       int    `json:"qty" firestore:"qty"`
	Subtotal  int    `json:"subtotal" firestore:"subtotal"`
}

// ========================================
// Entity
// ========================================

type Order struct {
	ID          string `json:"id" firestore:"id"`
	UserID      string `json:"userId" firestore:"userId"`
	OrderNumber string `json:"orderNumber" firestore:"orderNumber"`

	Items []LineItem `json:"items" firestore:"items"`

	Subtotal     int `json:"subtotal" firestore:"subtotal"`
	ShippingCost int `json:"shippingCost" firestore:"shippingCost"`
	Tax          int `json:"tax" firestore:"tax"`
	Total        int `json:"total" firestore:"total"`

	ShippingAddress ShippingSnapshot `json:"shippingAddress" firestore:"shippingAddress"`

	Status        Status        `json:"status" firestore:"status"`
	PaymentMethod PaymentMethod `json:"paymentMethod" firestore:"paymentMethod"`

	// PaymentStatus mirrors the payment record for read convenience;
	// the payment doc stays the source of truth for processor state.
	PaymentStatus string `json:"paymentStatus" firestore:"paymentStatus"`

	TrackingNumber string `json:"trackingNumber" firestore:"trackingNumber"`

	ShippedAt   *time.Time `json:"shippedAt" firestore:"shippedAt"`
	DeliveredAt *time.Time `json:"deliveredAt" firestore:"deliveredAt"`
	PaidAt      *time.Time `json:"paidAt" firestore:"paidAt"`

	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
}

// ========================================
// Errors
// ========================================

var (
	ErrNotFound            = errors.New("order: not found")
	ErrConflict            = errors.New("order: conflict")
	ErrInvalidID           = errors.New("order: invalid id")
	ErrInvalidUserID       = errors.New("order: invalid userId")
	ErrInvalidItems        = errors.New("order: invalid items")
	ErrInvalidLineItem     = errors.New("order: invalid line item")
	ErrInvalidStatus       = errors.New("order: invalid status")
	ErrInvalidMethod       = errors.New("order: invalid payment method")
	ErrInvalidAddress      = errors.New("order: invalid shipping address")
	ErrInvalidAmount       = errors.New("order: invalid amount")
	ErrInvalidCreatedAt    = errors.New("order: invalid createdAt")
	ErrNotCancellable      = errors.New("order: cannot cancel shipped or delivered order")
	ErrInvalidTrackingCode = errors.New("order: invalid tracking number")
)

// ========================================
// Constructors
// ========================================

// NewLineItem snapshots one artwork purchase.
// Subtotal is always unitPrice * qty; callers cannot override it.
func NewLineItem(artworkID, sellerID, title string, unitPrice, qty int) (LineItem, error) {
	artworkID = strings.TrimSpace(artworkID)
	sellerID = strings.TrimSpace(sellerID)
	title = strings.TrimSpace(title)
	if artworkID == "" || sellerID == "" || unitPrice < 0 || qty <= 0 {
		return LineItem{}, ErrInvalidLineItem
	}
	return LineItem{
		ArtworkID: artworkID,
		SellerID:  sellerID,
		Title:     title,
		UnitPrice: unitPrice,
		Qty:       qty,
		Subtotal:  unitPrice * qty,
	}, nil
}

// New creates a pending order. Totals are computed from the line items:
// total = sum(item.subtotal) + shippingCost + tax.
func New(
	id string,
	userID string,
	orderNumber string,
	items []LineItem,
	shippingCost int,
	tax int,
	addr ShippingSnapshot,
	method PaymentMethod,
	createdAt time.Time,
) (Order, error) {
	o := Order{
		ID:              strings.TrimSpace(id),
		UserID:          strings.TrimSpace(userID),
		OrderNumber:     strings.TrimSpace(orderNumber),
		Items:           append([]LineItem{}, items...),
		ShippingCost:    shippingCost,
		Tax:             tax,
		ShippingAddress: normalizeSnapshot(addr),
		Status:          StatusPending,
		PaymentMethod:   method,
		PaymentStatus:   "pending",
		CreatedAt:       createdAt.UTC(),
	}

	sub := 0
	for _, it := range o.Items {
		sub += it.Subtotal
	}
	o.Subtotal = sub
	o.Total = sub + o.ShippingCost + o.Tax

	if err := o.validate(); err != nil {
		return Order{}, err
	}
	return o, nil
}

// NewOrderNumber builds the human-readable unique-enough identifier:
// ORD-<unix millis>-<4 random digits>. Collisions are possible under
// concurrent checkouts; the repository's Create surfaces them as
// ErrConflict rather than overwriting.
func NewOrderNumber(now time.Time) string {
	return fmt.Sprintf("ORD-%d-%04d", now.UTC().UnixMilli(), rand.Intn(10000))
}

// ========================================
// Behavior (mutators)
// ========================================

// SetStatus transitions to next. Entering shipped/delivered stamps the
// matching timestamp exactly once; re-setting the same status later
// leaves the first timestamp untouched.
func (o *Order) SetStatus(next Status, now time.Time) error {
	if !IsValidStatus(next) {
		return ErrInvalidStatus
	}
	o.Status = next
	t := now.UTC()
	switch next {
	case StatusShipped:
		if o.ShippedAt == nil {
			o.ShippedAt = &t
		}
	case StatusDelivered:
		if o.DeliveredAt == nil {
			o.DeliveredAt = &t
		}
	}
	return nil
}

// Cancel is refused once the order is shipped or delivered.
func (o *Order) Cancel(now time.Time) error {
	if o.Status == StatusShipped || o.Status == StatusDelivered {
		return ErrNotCancellable
	}
	o.Status = StatusCancelled
	return nil
}

// SetTracking stores the carrier tracking number and forces the order
// into shipped, stamping shippedAt if not already set.
func (o *Order) SetTracking(trackingNumber string, now time.Time) error {
	trackingNumber = strings.TrimSpace(trackingNumber)
	if trackingNumber == "" {
		return ErrInvalidTrackingCode
	}
	o.TrackingNumber = trackingNumber
	return o.SetStatus(StatusShipped, now)
}

// MarkPaymentStatus updates the mirrored payment status. "paid" stamps
// paidAt once.
func (o *Order) MarkPaymentStatus(status string, now time.Time) {
	o.PaymentStatus = status
	if status == "paid" && o.PaidAt == nil {
		t := now.UTC()
		o.PaidAt = &t
	}
}

// ========================================
// Validation
// ========================================

func (o Order) validate() error {
	if o.ID == "" {
		return ErrInvalidID
	}
	if o.UserID == "" {
		return ErrInvalidUserID
	}
	if o.OrderNumber == "" {
		return ErrInvalidID
	}
	if len(o.Items) == 0 {
		return ErrInvalidItems
	}
	for _, it := range o.Items {
		if it.ArtworkID == "" || it.SellerID == "" || it.Qty <= 0 || it.UnitPrice < 0 {
			return ErrInvalidLineItem
		}
		if it.Subtotal != it.UnitPrice*it.Qty {
			return ErrInvalidLineItem
		}
	}
	if o.ShippingCost < 0 || o.Tax < 0 || o.Subtotal < 0 || o.Total < 0 {
		return ErrInvalidAmount
	}
	if err := validateSnapshot(o.ShippingAddress); err != nil {
		return err
	}
	if !IsValidStatus(o.Status) {
		return ErrInvalidStatus
	}
	if !IsValidPaymentMethod(o.PaymentMethod) {
		return ErrInvalidMethod
	}
	if o.CreatedAt.IsZero() {
		return ErrInvalidCreatedAt
	}
	return nil
}

func validateSnapshot(s ShippingSnapshot) error {
	if s.Recipient == "" || s.State == "" || s.City == "" || s.Street == "" || s.Country == "" {
		return ErrInvalidAddress
	}
	return nil
}

// ========================================
// Helpers
// ========================================

func normalizeSnapshot(s ShippingSnapshot) ShippingSnapshot {
	s.Recipient = strings.TrimSpace(s.Recipient)
	s.ZipCode = strings.TrimSpace(s.ZipCode)
	s.State = strings.TrimSpace(s.State)
	s.City = strings.TrimSpace(s.City)
	s.Street = strings.TrimSpace(s.Street)
	s.Street2 = strings.TrimSpace(s.Street2)
	s.Country = strings.TrimSpace(s.Country)
	return s
}

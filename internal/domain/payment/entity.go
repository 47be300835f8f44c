// internal/domain/payment/entity.go
package payment

import (
	"errors"
	"strings"
	"time"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusPaid     Status = "paid"
	StatusFailed   Status = "failed"
	StatusRefunded Status = "refunded"
)

func IsValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusPaid, StatusFailed, StatusRefunded:
		return true
	}
	return false
}

// Payment is the processor-side record paired 1:1 with an order.
//   - docId = orderId
//   - created alongside the order in pending status
//
// The order doc mirrors Status for reads; this record is the source
// of truth for processor state.
type Payment struct {
	OrderID       string     `json:"orderId" firestore:"orderId"`
	UserID        string     `json:"userId" firestore:"userId"`
	Amount        int        `json:"amount" firestore:"amount"`
	Method        string     `json:"method" firestore:"method"`
	Status        Status     `json:"status" firestore:"status"`
	TransactionID string     `json:"transactionId" firestore:"transactionId"`
	PaidAt        *time.Time `json:"paidAt" firestore:"paidAt"`
	CreatedAt     time.Time  `json:"createdAt" firestore:"createdAt"`
}

// Errors
var (
	ErrNotFound         = errors.New("payment: not found")
	ErrConflict         = errors.New("payment: conflict")
	ErrInvalidOrderID   = errors.New("payment: invalid orderId")
	ErrInvalidUserID    = errors.New("payment: invalid userId")
	ErrInvalidAmount    = errors.New("payment: invalid amount")
	ErrInvalidStatus    = errors.New("payment: invalid status")
	ErrInvalidCreatedAt = errors.New("payment: invalid createdAt")
)

func New(orderID, userID string, amount int, method string, now time.Time) (Payment, error) {
	p := Payment{
		OrderID:   strings.TrimSpace(orderID),
		UserID:    strings.TrimSpace(userID),
		Amount:    amount,
		Method:    strings.TrimSpace(method),
		Status:    StatusPending,
		CreatedAt: now.UTC(),
	}
	if err := p.validate(); err != nil {
		return Payment{}, err
	}
	return p, nil
}

// SetStatus moves processor state. transactionID is optional and kept
// when the caller passes "". Entering paid stamps PaidAt once.
func (p *Payment) SetStatus(next Status, transactionID string, now time.Time) error {
	if !IsValidStatus(next) {
		return ErrInvalidStatus
	}
	p.Status = next
	if tid := strings.TrimSpace(transactionID); tid != "" {
		p.TransactionID = tid
	}
	if next == StatusPaid && p.PaidAt == nil {
		t := now.UTC()
		p.PaidAt = &t
	}
	return nil
}

func (p Payment) validate() error {
	if p.OrderID == "" {
		return ErrInvalidOrderID
	}
	if p.UserID == "" {
		return ErrInvalidUserID
	}
	if p.Amount < 0 {
		return ErrInvalidAmount
	}
	if !IsValidStatus(p.Status) {
		return ErrInvalidStatus
	}
	if p.CreatedAt.IsZero() {
		return ErrInvalidCreatedAt
	}
	return nil
}

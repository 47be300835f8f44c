// internal/domain/order/entity_test.go
package order

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var (
	testNow  = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	testAddr = ShippingSnapshot{
		Recipient: "Mina Okabe",
		ZipCode:   "150-0001",
		State:     "Tokyo",
		City:      "Shibuya",
		Street:    "1-2-3 Jingumae",
		Country:   "JP",
	}
)

func newTestOrder(t *testing.T, items []LineItem, shipping, tax int) Order {
	t.Helper()
	o, err := New("order-1", "user-1", NewOrderNumber(testNow), items, shipping, tax, testAddr, MethodCard, testNow)
	require.NoError(t, err)
	return o
}

func mustLineItem(t *testing.T, artworkID string, unitPrice, qty int) LineItem {
	t.Helper()
	it, err := NewLineItem(artworkID, "seller-1", "Untitled", unitPrice, qty)
	require.NoError(t, err)
	return it
}

func TestNewLineItemComputesSubtotal(t *testing.T) {
	it := mustLineItem(t, "art-1", 100, 3)
	require.Equal(t, 300, it.Subtotal)

	_, err := NewLineItem("", "seller-1", "x", 100, 1)
	require.ErrorIs(t, err, ErrInvalidLineItem)
	_, err = NewLineItem("art-1", "seller-1", "x", -1, 1)
	require.ErrorIs(t, err, ErrInvalidLineItem)
	_, err = NewLineItem("art-1", "seller-1", "x", 100, 0)
	require.ErrorIs(t, err, ErrInvalidLineItem)
}

func TestNewComputesTotals(t *testing.T) {
	o := newTestOrder(t, []LineItem{
		mustLineItem(t, "art-1", 100, 2),
		mustLineItem(t, "art-2", 50, 1),
	}, 10, 0)

	require.Equal(t, 250, o.Subtotal)
	require.Equal(t, 260, o.Total)
	require.Equal(t, StatusPending, o.Status)
	require.Equal(t, "pending", o.PaymentStatus)
	require.Nil(t, o.PaidAt)
}

func TestNewRejectsEmptyItems(t *testing.T) {
	_, err := New("order-1", "user-1", NewOrderNumber(testNow), nil, 0, 0, testAddr, MethodCard, testNow)
	require.ErrorIs(t, err, ErrInvalidItems)
}

func TestNewRejectsBadAddress(t *testing.T) {
	addr := testAddr
	addr.City = ""
	_, err := New("order-1", "user-1", NewOrderNumber(testNow), []LineItem{mustLineItem(t, "art-1", 100, 1)}, 0, 0, addr, MethodCard, testNow)
	require.ErrorIs(t, err, ErrInvalidAddress)
}

func TestNewOrderNumberFormat(t *testing.T) {
	n := NewOrderNumber(testNow)
	require.Regexp(t, regexp.MustCompile(`^ORD-\d{13}-\d{4}$`), n)
	require.Contains(t, n, "ORD-1772366400000-")
}

func TestSetStatusStampsTimestampsOnce(t *testing.T) {
	o := newTestOrder(t, []LineItem{mustLineItem(t, "art-1", 100, 1)}, 0, 0)

	first := testNow.Add(time.Hour)
	require.NoError(t, o.SetStatus(StatusShipped, first))
	require.NotNil(t, o.ShippedAt)
	require.Equal(t, first, *o.ShippedAt)

	// re-entering shipped keeps the original stamp
	require.NoError(t, o.SetStatus(StatusShipped, first.Add(time.Hour)))
	require.Equal(t, first, *o.ShippedAt)

	second := first.Add(2 * time.Hour)
	require.NoError(t, o.SetStatus(StatusDelivered, second))
	require.NotNil(t, o.DeliveredAt)
	require.Equal(t, second, *o.DeliveredAt)

	require.ErrorIs(t, o.SetStatus(Status("bogus"), second), ErrInvalidStatus)
}

func TestCancelRules(t *testing.T) {
	o := newTestOrder(t, []LineItem{mustLineItem(t, "art-1", 100, 1)}, 0, 0)
	require.NoError(t, o.Cancel(testNow))
	require.Equal(t, StatusCancelled, o.Status)

	o = newTestOrder(t, []LineItem{mustLineItem(t, "art-1", 100, 1)}, 0, 0)
	require.NoError(t, o.SetStatus(StatusProcessing, testNow))
	require.NoError(t, o.Cancel(testNow))

	o = newTestOrder(t, []LineItem{mustLineItem(t, "art-1", 100, 1)}, 0, 0)
	require.NoError(t, o.SetStatus(StatusShipped, testNow))
	require.ErrorIs(t, o.Cancel(testNow), ErrNotCancellable)

	o = newTestOrder(t, []LineItem{mustLineItem(t, "art-1", 100, 1)}, 0, 0)
	require.NoError(t, o.SetStatus(StatusDelivered, testNow))
	require.ErrorIs(t, o.Cancel(testNow), ErrNotCancellable)
}

func TestSetTrackingForcesShipped(t *testing.T) {
	o := newTestOrder(t, []LineItem{mustLineItem(t, "art-1", 100, 1)}, 0, 0)

	require.ErrorIs(t, o.SetTracking("  ", testNow), ErrInvalidTrackingCode)

	require.NoError(t, o.SetTracking("JP123456789", testNow))
	require.Equal(t, "JP123456789", o.TrackingNumber)
	require.Equal(t, StatusShipped, o.Status)
	require.NotNil(t, o.ShippedAt)
}

func TestMarkPaymentStatusStampsPaidAtOnce(t *testing.T) {
	o := newTestOrder(t, []LineItem{mustLineItem(t, "art-1", 100, 1)}, 0, 0)

	first := testNow.Add(time.Minute)
	o.MarkPaymentStatus("paid", first)
	require.Equal(t, "paid", o.PaymentStatus)
	require.NotNil(t, o.PaidAt)
	require.Equal(t, first, *o.PaidAt)

	o.MarkPaymentStatus("paid", first.Add(time.Hour))
	require.Equal(t, first, *o.PaidAt)

	o.MarkPaymentStatus("refunded", first.Add(time.Hour))
	require.Equal(t, "refunded", o.PaymentStatus)
	require.Equal(t, first, *o.PaidAt)
}

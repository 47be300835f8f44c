// internal/domain/cart/entity_test.go
package cart

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestCart(t *testing.T) *Cart {
	t.Helper()
	c, err := NewCart("user-1", nil, testNow)
	require.NoError(t, err)
	require.Empty(t, c.Items)
	return c
}

func TestNewCart(t *testing.T) {
	c := newTestCart(t)
	require.Equal(t, "user-1", c.ID)
	require.Equal(t, testNow, c.CreatedAt)
	require.Equal(t, testNow.Add(DefaultCartTTL), c.ExpiresAt)

	_, err := NewCart("  ", nil, testNow)
	require.ErrorIs(t, err, ErrInvalidCart)
}

func TestAddAccumulatesQty(t *testing.T) {
	c := newTestCart(t)

	require.NoError(t, c.Add("art-1", 1, testNow))
	require.NoError(t, c.Add("art-1", 2, testNow.Add(time.Minute)))

	require.Len(t, c.Items, 1)
	require.Equal(t, "art-1", c.Items[0].ArtworkID)
	require.Equal(t, 3, c.Items[0].Qty)
}

func TestAddRejectsBadInput(t *testing.T) {
	c := newTestCart(t)
	require.ErrorIs(t, c.Add("", 1, testNow), ErrInvalidCart)
	require.ErrorIs(t, c.Add("art-1", 0, testNow), ErrInvalidCart)
	require.ErrorIs(t, c.Add("art-1", -2, testNow), ErrInvalidCart)
}

func TestSetQtyReplacesAndRemoves(t *testing.T) {
	c := newTestCart(t)
	require.NoError(t, c.Add("art-1", 5, testNow))

	require.NoError(t, c.SetQty("art-1", 2, testNow))
	require.Equal(t, 2, c.Items[0].Qty)

	// qty <= 0 removes the line
	require.NoError(t, c.SetQty("art-1", 0, testNow))
	require.Empty(t, c.Items)

	// removing an absent line is a no-op
	require.NoError(t, c.SetQty("art-9", -1, testNow))
	require.Empty(t, c.Items)
}

func TestSetQtyInsertsMissingLine(t *testing.T) {
	c := newTestCart(t)
	require.NoError(t, c.SetQty("art-2", 4, testNow))
	require.Len(t, c.Items, 1)
	require.Equal(t, 4, c.Items[0].Qty)
}

func TestClear(t *testing.T) {
	c := newTestCart(t)
	require.NoError(t, c.Add("art-1", 1, testNow))
	require.NoError(t, c.Add("art-2", 2, testNow))

	require.NoError(t, c.Clear(testNow.Add(time.Hour)))
	require.Empty(t, c.Items)
	require.Equal(t, testNow.Add(time.Hour), c.UpdatedAt)
}

func TestConsumeAll(t *testing.T) {
	c := newTestCart(t)
	require.NoError(t, c.Add("art-2", 2, testNow))
	require.NoError(t, c.Add("art-1", 1, testNow))

	snap, err := c.ConsumeAll(testNow.Add(time.Minute))
	require.NoError(t, err)
	require.Empty(t, c.Items)

	// snapshot is merged and sorted by artworkId
	require.Equal(t, []Item{
		{ArtworkID: "art-1", Qty: 1},
		{ArtworkID: "art-2", Qty: 2},
	}, snap)
}

func TestMutationRefreshesExpiry(t *testing.T) {
	c := newTestCart(t)
	later := testNow.Add(48 * time.Hour)

	require.NoError(t, c.Add("art-1", 1, later))
	require.Equal(t, later.Add(DefaultCartTTL), c.ExpiresAt)
}

func TestNewCartMergesDuplicateItems(t *testing.T) {
	c, err := NewCart("user-1", []Item{
		{ArtworkID: "art-1", Qty: 1},
		{ArtworkID: "art-1", Qty: 2},
		{ArtworkID: " ", Qty: 9},
	}, testNow)
	require.NoError(t, err)
	require.Equal(t, []Item{{ArtworkID: "art-1", Qty: 3}}, c.Items)
}

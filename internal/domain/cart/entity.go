// internal/domain/cart/entity.go
package cart

import (
	"errors"
	"sort"
	"strings"
	"time"
)

var (
	ErrInvalidCart = errors.New("cart: invalid")
)

// DefaultCartTTL is the inactivity window after which the cart becomes
// eligible for auto deletion (Firestore TTL is configured on expiresAt).
const DefaultCartTTL = 30 * 24 * time.Hour

// Item is one line in a cart. Uniqueness is defined by ArtworkID;
// adding the same artwork again accumulates Qty instead of appending.
type Item struct {
	ArtworkID string `json:"artworkId" firestore:"artworkId"`
	Qty       int    `json:"qty" firestore:"qty"`
}

// Cart is a per-user staging area before checkout.
//   - docId = userId (one cart per user)
//   - created lazily on first access, cleared on checkout or explicit clear
type Cart struct {
	// ID is the Firestore docId (= userId).
	ID string `json:"id" firestore:"id"`

	Items []Item `json:"items" firestore:"items"`

	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" firestore:"updatedAt"`

	// ExpiresAt is refreshed on each mutation (Firestore TTL field).
	ExpiresAt time.Time `json:"expiresAt" firestore:"expiresAt"`
}

// NewCart creates a cart doc. items can be nil (treated as empty).
func NewCart(userID string, items []Item, now time.Time) (*Cart, error) {
	c := &Cart{
		ID:        strings.TrimSpace(userID),
		Items:     cloneItems(items),
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(DefaultCartTTL),
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Add increases quantity for artworkID. qty must be >= 1.
func (c *Cart) Add(artworkID string, qty int, now time.Time) error {
	if c == nil {
		return ErrInvalidCart
	}
	aid := strings.TrimSpace(artworkID)
	if aid == "" || qty <= 0 {
		return ErrInvalidCart
	}

	if c.Items == nil {
		c.Items = []Item{}
	}

	if idx := findItemIndex(c.Items, aid); idx >= 0 {
		c.Items[idx].Qty += qty
	} else {
		c.Items = append(c.Items, Item{ArtworkID: aid, Qty: qty})
	}

	c.touch(now)
	return c.validate()
}

// SetQty replaces the quantity for artworkID.
// qty <= 0 removes the line instead.
func (c *Cart) SetQty(artworkID string, qty int, now time.Time) error {
	if c == nil {
		return ErrInvalidCart
	}
	aid := strings.TrimSpace(artworkID)
	if aid == "" {
		return ErrInvalidCart
	}

	if c.Items == nil {
		c.Items = []Item{}
	}

	idx := findItemIndex(c.Items, aid)

	if qty <= 0 {
		if idx >= 0 {
			c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
		}
		c.touch(now)
		return c.validate()
	}

	if idx >= 0 {
		c.Items[idx].Qty = qty
	} else {
		c.Items = append(c.Items, Item{ArtworkID: aid, Qty: qty})
	}

	c.touch(now)
	return c.validate()
}

// Remove drops artworkID from the cart.
func (c *Cart) Remove(artworkID string, now time.Time) error {
	return c.SetQty(artworkID, 0, now)
}

// Clear empties the cart.
func (c *Cart) Clear(now time.Time) error {
	if c == nil {
		return ErrInvalidCart
	}
	c.Items = []Item{}
	c.touch(now)
	return c.validate()
}

// ConsumeAll clears items for order creation and returns a snapshot.
// Intended flow: build the order from the snapshot, then persist the
// emptied cart in the same request.
func (c *Cart) ConsumeAll(now time.Time) ([]Item, error) {
	if c == nil {
		return nil, ErrInvalidCart
	}
	snap := cloneItems(c.Items)
	c.Items = []Item{}
	c.touch(now)
	if err := c.validate(); err != nil {
		return nil, err
	}
	return snap, nil
}

func (c *Cart) touch(now time.Time) {
	c.UpdatedAt = now
	c.ExpiresAt = now.Add(DefaultCartTTL)
}

func (c *Cart) validate() error {
	if c == nil {
		return ErrInvalidCart
	}
	if strings.TrimSpace(c.ID) == "" {
		return ErrInvalidCart
	}
	if c.CreatedAt.IsZero() || c.UpdatedAt.IsZero() || c.ExpiresAt.IsZero() {
		return ErrInvalidCart
	}
	if c.UpdatedAt.Before(c.CreatedAt) {
		return ErrInvalidCart
	}
	if c.ExpiresAt.Before(c.UpdatedAt) {
		return ErrInvalidCart
	}

	if len(c.Items) == 0 {
		return nil
	}

	c.Items = normalizeAndMerge(c.Items)

	for _, it := range c.Items {
		if strings.TrimSpace(it.ArtworkID) == "" || it.Qty <= 0 {
			return ErrInvalidCart
		}
	}
	return nil
}

// ----------------------------
// Helpers
// ----------------------------

func findItemIndex(items []Item, artworkID string) int {
	for i := range items {
		if items[i].ArtworkID == artworkID {
			return i
		}
	}
	return -1
}

func normalizeAndMerge(src []Item) []Item {
	m := map[string]int{}
	for _, it := range src {
		aid := strings.TrimSpace(it.ArtworkID)
		if aid == "" || it.Qty <= 0 {
			continue
		}
		m[aid] += it.Qty
	}

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]Item, 0, len(keys))
	for _, k := range keys {
		out = append(out, Item{ArtworkID: k, Qty: m[k]})
	}
	return out
}

func cloneItems(src []Item) []Item {
	if len(src) == 0 {
		return []Item{}
	}
	cp := make([]Item, 0, len(src))
	cp = append(cp, src...)
	return normalizeAndMerge(cp)
}

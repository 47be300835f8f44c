// internal/application/usecase/cart_usecase.go
package usecase

import (
	"context"
	"errors"
	"strings"

	artdom "atelier/internal/domain/artwork"
	cartdom "atelier/internal/domain/cart"
	orderdom "atelier/internal/domain/order"
)

var (
	ErrCartInvalidArgument = errors.New("cart_usecase: invalid argument")
)

// CartUsecase coordinates cart operations. Every mutation is a plain
// read-modify-write of the single per-user cart doc; concurrent writers
// are last-writer-wins.
type CartUsecase struct {
	carts    cartdom.Repository
	artworks artdom.Repository
	clock    Clock
}

func NewCartUsecase(carts cartdom.Repository, artworks artdom.Repository) *CartUsecase {
	return &CartUsecase{carts: carts, artworks: artworks, clock: systemClock{}}
}

// NewCartUsecaseWithClock is useful for tests.
func NewCartUsecaseWithClock(carts cartdom.Repository, artworks artdom.Repository, clock Clock) *CartUsecase {
	if clock == nil {
		clock = systemClock{}
	}
	return &CartUsecase{carts: carts, artworks: artworks, clock: clock}
}

// Get returns the user's cart, creating an empty one lazily.
func (uc *CartUsecase) Get(ctx context.Context, userID string) (*cartdom.Cart, error) {
	uid := strings.TrimSpace(userID)
	if uid == "" {
		return nil, ErrCartInvalidArgument
	}

	c, err := uc.carts.GetByUserID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if c != nil {
		return c, nil
	}

	now := uc.clock.Now()
	c, err = cartdom.NewCart(uid, nil, now)
	if err != nil {
		return nil, err
	}
	if err := uc.carts.Upsert(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// AddItem accumulates qty for an available artwork. Unavailable
// artworks (not for sale, or sold) are rejected up front so carts don't
// fill with dead lines.
func (uc *CartUsecase) AddItem(ctx context.Context, userID, artworkID string, qty int) (*cartdom.Cart, error) {
	uid := strings.TrimSpace(userID)
	aid := strings.TrimSpace(artworkID)
	if uid == "" || aid == "" || qty <= 0 {
		return nil, ErrCartInvalidArgument
	}

	art, err := uc.artworks.GetByID(ctx, aid)
	if err != nil {
		return nil, err
	}
	if art.Sold {
		return nil, artdom.ErrAlreadySold
	}
	if !art.IsAvailable() {
		return nil, artdom.ErrNotForSale
	}

	c, err := uc.Get(ctx, uid)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	if err := c.Add(aid, qty, now); err != nil {
		return nil, err
	}
	if err := uc.carts.Upsert(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// SetQty replaces the quantity; qty <= 0 removes the line.
func (uc *CartUsecase) SetQty(ctx context.Context, userID, artworkID string, qty int) (*cartdom.Cart, error) {
	uid := strings.TrimSpace(userID)
	aid := strings.TrimSpace(artworkID)
	if uid == "" || aid == "" {
		return nil, ErrCartInvalidArgument
	}

	c, err := uc.Get(ctx, uid)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	if err := c.SetQty(aid, qty, now); err != nil {
		return nil, err
	}
	if err := uc.carts.Upsert(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (uc *CartUsecase) RemoveItem(ctx context.Context, userID, artworkID string) (*cartdom.Cart, error) {
	uid := strings.TrimSpace(userID)
	aid := strings.TrimSpace(artworkID)
	if uid == "" || aid == "" {
		return nil, ErrCartInvalidArgument
	}

	c, err := uc.Get(ctx, uid)
	if err != nil {
		return nil, err
	}
	if err := c.Remove(aid, uc.clock.Now()); err != nil {
		return nil, err
	}
	if err := uc.carts.Upsert(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Clear empties the cart (explicit clear or post-checkout).
func (uc *CartUsecase) Clear(ctx context.Context, userID string) (*cartdom.Cart, error) {
	c, err := uc.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := c.Clear(uc.clock.Now()); err != nil {
		return nil, err
	}
	if err := uc.carts.Upsert(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Checkout converts the cart content into order item inputs and clears
// the cart once the order usecase has persisted the order.
func (uc *CartUsecase) Checkout(
	ctx context.Context,
	userID string,
	orders *OrderUsecase,
	in CreateOrderInput,
) (orderdom.Order, error) {
	c, err := uc.Get(ctx, userID)
	if err != nil {
		return orderdom.Order{}, err
	}

	// Snapshot-and-clear in memory; the cleared cart is only persisted
	// once the order write succeeded.
	snap, err := c.ConsumeAll(uc.clock.Now())
	if err != nil {
		return orderdom.Order{}, err
	}
	if len(snap) == 0 {
		return orderdom.Order{}, ErrCartInvalidArgument
	}

	in.UserID = userID
	in.Items = make([]OrderItemInput, 0, len(snap))
	for _, it := range snap {
		in.Items = append(in.Items, OrderItemInput{ArtworkID: it.ArtworkID, Qty: it.Qty})
	}

	o, err := orders.Create(ctx, in)
	if err != nil {
		return orderdom.Order{}, err
	}

	// Order exists; a failed clear leaves a stale cart the user can
	// recover from, so the error is not surfaced.
	_ = uc.carts.Upsert(ctx, c)
	return o, nil
}

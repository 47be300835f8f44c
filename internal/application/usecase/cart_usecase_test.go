// internal/application/usecase/cart_usecase_test.go
package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	artdom "atelier/internal/domain/artwork"
	orderdom "atelier/internal/domain/order"
)

type cartEnv struct {
	carts    *fakeCartRepo
	artworks *fakeArtworkRepo
	uc       *CartUsecase
}

func newCartEnv(t *testing.T) *cartEnv {
	t.Helper()
	env := &cartEnv{
		carts:    newFakeCartRepo(),
		artworks: newFakeArtworkRepo(),
	}
	env.uc = NewCartUsecaseWithClock(env.carts, env.artworks, fixedClock{testNow})
	return env
}

func (env *cartEnv) listArtwork(t *testing.T, id, artistID string, price int) {
	t.Helper()
	a, err := artdom.New(id, "Untitled "+id, "", artistID, testNow)
	require.NoError(t, err)
	require.NoError(t, a.ListForSale(price, testNow))
	env.artworks.put(a)
}

func TestGetCreatesEmptyCartLazily(t *testing.T) {
	env := newCartEnv(t)

	c, err := env.uc.Get(context.Background(), "user-1")
	require.NoError(t, err)
	require.Equal(t, "user-1", c.ID)
	require.Empty(t, c.Items)

	// and it was persisted
	stored, err := env.carts.GetByUserID(context.Background(), "user-1")
	require.NoError(t, err)
	require.NotNil(t, stored)
}

func TestAddItemAccumulates(t *testing.T) {
	env := newCartEnv(t)
	env.listArtwork(t, "art-1", "artist-1", 100)

	_, err := env.uc.AddItem(context.Background(), "user-1", "art-1", 1)
	require.NoError(t, err)
	c, err := env.uc.AddItem(context.Background(), "user-1", "art-1", 2)
	require.NoError(t, err)

	require.Len(t, c.Items, 1)
	require.Equal(t, 3, c.Items[0].Qty)
}

func TestAddItemRejectsUnavailable(t *testing.T) {
	env := newCartEnv(t)

	unlisted, err := artdom.New("art-1", "Drawer Piece", "", "artist-1", testNow)
	require.NoError(t, err)
	env.artworks.put(unlisted)

	sold, err := artdom.New("art-2", "Gone", "", "artist-1", testNow)
	require.NoError(t, err)
	require.NoError(t, sold.ListForSale(100, testNow))
	require.NoError(t, sold.MarkSold("someone-else", testNow))
	env.artworks.put(sold)

	_, err = env.uc.AddItem(context.Background(), "user-1", "art-1", 1)
	require.ErrorIs(t, err, artdom.ErrNotForSale)

	_, err = env.uc.AddItem(context.Background(), "user-1", "art-2", 1)
	require.ErrorIs(t, err, artdom.ErrAlreadySold)

	_, err = env.uc.AddItem(context.Background(), "user-1", "missing", 1)
	require.ErrorIs(t, err, artdom.ErrNotFound)

	_, err = env.uc.AddItem(context.Background(), "user-1", "art-1", 0)
	require.ErrorIs(t, err, ErrCartInvalidArgument)
}

func TestSetQtyAndRemove(t *testing.T) {
	env := newCartEnv(t)
	env.listArtwork(t, "art-1", "artist-1", 100)

	_, err := env.uc.AddItem(context.Background(), "user-1", "art-1", 2)
	require.NoError(t, err)

	c, err := env.uc.SetQty(context.Background(), "user-1", "art-1", 5)
	require.NoError(t, err)
	require.Equal(t, 5, c.Items[0].Qty)

	c, err = env.uc.RemoveItem(context.Background(), "user-1", "art-1")
	require.NoError(t, err)
	require.Empty(t, c.Items)
}

func TestClear(t *testing.T) {
	env := newCartEnv(t)
	env.listArtwork(t, "art-1", "artist-1", 100)

	_, err := env.uc.AddItem(context.Background(), "user-1", "art-1", 2)
	require.NoError(t, err)

	c, err := env.uc.Clear(context.Background(), "user-1")
	require.NoError(t, err)
	require.Empty(t, c.Items)

	stored, err := env.carts.GetByUserID(context.Background(), "user-1")
	require.NoError(t, err)
	require.Empty(t, stored.Items)
}

func TestCheckoutBuildsOrderAndClearsCart(t *testing.T) {
	env := newCartEnv(t)
	env.listArtwork(t, "art-1", "artist-1", 100)
	env.listArtwork(t, "art-2", "artist-2", 50)

	orders := NewOrderUsecaseWithClock(
		newFakeOrderRepo(), newFakePaymentRepo(), env.artworks, newFakeAddressRepo(),
		fixedClock{testNow},
	)

	_, err := env.uc.AddItem(context.Background(), "user-1", "art-1", 2)
	require.NoError(t, err)
	_, err = env.uc.AddItem(context.Background(), "user-1", "art-2", 1)
	require.NoError(t, err)

	o, err := env.uc.Checkout(context.Background(), "user-1", orders, CreateOrderInput{
		ShippingAddress: testSnapshot,
		PaymentMethod:   orderdom.MethodCard,
		ShippingCost:    10,
	})
	require.NoError(t, err)
	require.Equal(t, "user-1", o.UserID)
	require.Equal(t, 250, o.Subtotal)
	require.Equal(t, 260, o.Total)
	require.Len(t, o.Items, 2)

	c, err := env.uc.Get(context.Background(), "user-1")
	require.NoError(t, err)
	require.Empty(t, c.Items)
}

func TestCheckoutEmptyCart(t *testing.T) {
	env := newCartEnv(t)
	orders := NewOrderUsecaseWithClock(
		newFakeOrderRepo(), newFakePaymentRepo(), env.artworks, newFakeAddressRepo(),
		fixedClock{testNow},
	)

	_, err := env.uc.Checkout(context.Background(), "user-1", orders, CreateOrderInput{
		ShippingAddress: testSnapshot,
		PaymentMethod:   orderdom.MethodCard,
	})
	require.ErrorIs(t, err, ErrCartInvalidArgument)
}

func TestCheckoutKeepsCartWhenOrderFails(t *testing.T) {
	env := newCartEnv(t)
	env.listArtwork(t, "art-1", "artist-1", 100)

	orders := NewOrderUsecaseWithClock(
		newFakeOrderRepo(), newFakePaymentRepo(), env.artworks, newFakeAddressRepo(),
		fixedClock{testNow},
	)

	_, err := env.uc.AddItem(context.Background(), "user-1", "art-1", 1)
	require.NoError(t, err)

	// invalidate the artwork after it entered the cart
	a, err := env.artworks.GetByID(context.Background(), "art-1")
	require.NoError(t, err)
	require.NoError(t, a.MarkSold("someone-else", testNow))
	env.artworks.put(a)

	_, err = env.uc.Checkout(context.Background(), "user-1", orders, CreateOrderInput{
		ShippingAddress: testSnapshot,
		PaymentMethod:   orderdom.MethodCard,
	})
	var uerr *UnavailableArtworkError
	require.ErrorAs(t, err, &uerr)
	require.Equal(t, "art-1", uerr.ArtworkID)

	c, err := env.uc.Get(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, c.Items, 1)
}

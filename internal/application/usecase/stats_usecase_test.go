// internal/application/usecase/stats_usecase_test.go
package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	orderdom "atelier/internal/domain/order"
	paydom "atelier/internal/domain/payment"
	userdom "atelier/internal/domain/user"
)

func TestDashboard(t *testing.T) {
	users := newFakeUserRepo()
	env := newOrderEnv(t)
	artworks := NewArtworkUsecaseWithClock(env.artworks, users, nil, fixedClock{testNow})
	stats := NewStatsUsecase(users, env.artworks, env.uc)

	for _, u := range []struct{ id, email string }{
		{"uid-1", "a@example.com"},
		{"uid-2", "b@example.com"},
	} {
		nu, err := userdom.New(u.id, u.email, "User", testNow)
		require.NoError(t, err)
		_, err = users.Create(context.Background(), nu)
		require.NoError(t, err)
	}

	listed, err := artworks.Create(context.Background(), "uid-1", CreateArtworkInput{
		Title: "Blue Field", Price: intPtr(100),
	})
	require.NoError(t, err)
	_, err = artworks.Create(context.Background(), "uid-1", CreateArtworkInput{Title: "Sketch"})
	require.NoError(t, err)

	o, err := env.uc.Create(context.Background(), CreateOrderInput{
		UserID:          "uid-2",
		Items:           []OrderItemInput{{ArtworkID: listed.ID, Qty: 1}},
		ShippingAddress: testSnapshot,
		PaymentMethod:   orderdom.MethodCard,
	})
	require.NoError(t, err)
	_, err = env.uc.UpdatePaymentStatus(context.Background(), o.ID, paydom.StatusPaid, "tx1")
	require.NoError(t, err)

	_, err = artworks.Buy(context.Background(), listed.ID, "uid-2")
	require.NoError(t, err)

	got, err := stats.Dashboard(context.Background())
	require.NoError(t, err)
	require.Equal(t, DashboardStats{
		Users:           2,
		Artworks:        2,
		ArtworksForSale: 0,
		ArtworksSold:    1,
		Orders:          1,
		Revenue:         100,
	}, got)
}

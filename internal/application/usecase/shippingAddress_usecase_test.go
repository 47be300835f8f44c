// internal/application/usecase/shippingAddress_usecase_test.go
package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	shadom "atelier/internal/domain/shippingAddress"
)

func newAddressEnv(t *testing.T) (*fakeAddressRepo, *ShippingAddressUsecase) {
	t.Helper()
	repo := newFakeAddressRepo()
	return repo, NewShippingAddressUsecaseWithClock(repo, fixedClock{testNow})
}

func addressInput(userID string, isDefault bool) CreateAddressInput {
	return CreateAddressInput{
		UserID:    userID,
		Recipient: "Mina Okabe",
		ZipCode:   "150-0002",
		State:     "Tokyo",
		City:      "Shibuya",
		Street:    "1-2-3 Jinnan",
		Country:   "JP",
		IsDefault: isDefault,
	}
}

func TestFirstAddressBecomesDefault(t *testing.T) {
	_, uc := newAddressEnv(t)

	a, err := uc.Create(context.Background(), addressInput("user-1", false))
	require.NoError(t, err)
	require.True(t, a.IsDefault)
}

func TestSingleDefaultInvariant(t *testing.T) {
	_, uc := newAddressEnv(t)

	first, err := uc.Create(context.Background(), addressInput("user-1", false))
	require.NoError(t, err)

	second, err := uc.Create(context.Background(), addressInput("user-1", true))
	require.NoError(t, err)
	require.True(t, second.IsDefault)

	list, err := uc.ListByUser(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, list, 2)

	defaults := 0
	for _, a := range list {
		if a.IsDefault {
			defaults++
			require.Equal(t, second.ID, a.ID)
		}
	}
	require.Equal(t, 1, defaults)

	// re-promoting the first flips the default back
	_, err = uc.Update(context.Background(), first.ID, "user-1", addressInput("user-1", true))
	require.NoError(t, err)

	got, err := uc.GetDefault(context.Background(), "user-1")
	require.NoError(t, err)
	require.Equal(t, first.ID, got.ID)
}

func TestUpdateKeepsOwnDefault(t *testing.T) {
	_, uc := newAddressEnv(t)

	a, err := uc.Create(context.Background(), addressInput("user-1", true))
	require.NoError(t, err)

	in := addressInput("user-1", true)
	in.City = "Meguro"
	updated, err := uc.Update(context.Background(), a.ID, "user-1", in)
	require.NoError(t, err)
	require.Equal(t, "Meguro", updated.City)
	require.True(t, updated.IsDefault)
}

func TestDefaultsAreScopedPerUser(t *testing.T) {
	_, uc := newAddressEnv(t)

	a1, err := uc.Create(context.Background(), addressInput("user-1", true))
	require.NoError(t, err)
	_, err = uc.Create(context.Background(), addressInput("user-2", true))
	require.NoError(t, err)

	got, err := uc.GetDefault(context.Background(), "user-1")
	require.NoError(t, err)
	require.Equal(t, a1.ID, got.ID)
}

func TestOtherUsersAddressesAreHidden(t *testing.T) {
	_, uc := newAddressEnv(t)

	a, err := uc.Create(context.Background(), addressInput("user-1", true))
	require.NoError(t, err)

	_, err = uc.Get(context.Background(), a.ID, "user-2")
	require.ErrorIs(t, err, shadom.ErrNotFound)

	_, err = uc.Update(context.Background(), a.ID, "user-2", addressInput("user-2", false))
	require.ErrorIs(t, err, shadom.ErrNotFound)

	err = uc.Delete(context.Background(), a.ID, "user-2")
	require.ErrorIs(t, err, shadom.ErrNotFound)
}

func TestDelete(t *testing.T) {
	repo, uc := newAddressEnv(t)

	a, err := uc.Create(context.Background(), addressInput("user-1", true))
	require.NoError(t, err)

	require.NoError(t, uc.Delete(context.Background(), a.ID, "user-1"))
	_, err = repo.GetByID(context.Background(), a.ID)
	require.ErrorIs(t, err, shadom.ErrNotFound)
}

func TestGetDefaultEmptyBook(t *testing.T) {
	_, uc := newAddressEnv(t)

	_, err := uc.GetDefault(context.Background(), "user-1")
	require.ErrorIs(t, err, shadom.ErrNotFound)
}

func TestCreateValidation(t *testing.T) {
	_, uc := newAddressEnv(t)

	in := addressInput("user-1", false)
	in.Recipient = "  "
	_, err := uc.Create(context.Background(), in)
	require.ErrorIs(t, err, shadom.ErrInvalidRecipient)
}

// internal/application/usecase/shippingAddress_usecase.go
package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	shadom "atelier/internal/domain/shippingAddress"
)

var (
	ErrAddressInvalidArgument = errors.New("shippingAddress_usecase: invalid argument")
)

// CreateAddressInput is the validated address-book write request.
type CreateAddressInput struct {
	UserID    string
	Recipient string
	ZipCode   string
	State     string
	City      string
	Street    string
	Street2   string
	Country   string
	IsDefault bool
}

// ShippingAddressUsecase owns the address book and its single-default
// invariant: before a default write, every other default of the user is
// cleared. The clears and the target write are independent store calls;
// a brief two-defaults window under concurrent writers is accepted.
type ShippingAddressUsecase struct {
	repo  shadom.Repository
	clock Clock
}

func NewShippingAddressUsecase(repo shadom.Repository) *ShippingAddressUsecase {
	return &ShippingAddressUsecase{repo: repo, clock: systemClock{}}
}

// NewShippingAddressUsecaseWithClock is useful for tests.
func NewShippingAddressUsecaseWithClock(repo shadom.Repository, clock Clock) *ShippingAddressUsecase {
	if clock == nil {
		clock = systemClock{}
	}
	return &ShippingAddressUsecase{repo: repo, clock: clock}
}

func (uc *ShippingAddressUsecase) Create(ctx context.Context, in CreateAddressInput) (shadom.ShippingAddress, error) {
	now := uc.clock.Now()

	// First address of a user becomes default implicitly.
	existing, err := uc.repo.ListByUserID(ctx, strings.TrimSpace(in.UserID))
	if err != nil {
		return shadom.ShippingAddress{}, err
	}
	isDefault := in.IsDefault || len(existing) == 0

	a, err := shadom.New(
		uuid.NewString(),
		in.UserID,
		in.Recipient,
		in.ZipCode,
		in.State,
		in.City,
		in.Street,
		in.Street2,
		in.Country,
		isDefault,
		now,
	)
	if err != nil {
		return shadom.ShippingAddress{}, err
	}

	if isDefault {
		if err := uc.repo.UnsetDefaults(ctx, a.UserID, ""); err != nil {
			return shadom.ShippingAddress{}, err
		}
	}
	return uc.repo.Create(ctx, a)
}

// Update rewrites the postal fields; isDefault=true clears every other
// default first (excluding the address being updated).
func (uc *ShippingAddressUsecase) Update(ctx context.Context, id, userID string, in CreateAddressInput) (shadom.ShippingAddress, error) {
	a, err := uc.getOwned(ctx, id, userID)
	if err != nil {
		return shadom.ShippingAddress{}, err
	}

	now := uc.clock.Now()
	if err := a.UpdateFromForm(
		in.Recipient, in.ZipCode, in.State, in.City, in.Street, in.Street2, in.Country,
		in.IsDefault, now,
	); err != nil {
		return shadom.ShippingAddress{}, err
	}

	if a.IsDefault {
		if err := uc.repo.UnsetDefaults(ctx, a.UserID, a.ID); err != nil {
			return shadom.ShippingAddress{}, err
		}
	}
	return uc.repo.Save(ctx, a)
}

func (uc *ShippingAddressUsecase) Get(ctx context.Context, id, userID string) (shadom.ShippingAddress, error) {
	return uc.getOwned(ctx, id, userID)
}

func (uc *ShippingAddressUsecase) ListByUser(ctx context.Context, userID string) ([]shadom.ShippingAddress, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrAddressInvalidArgument
	}
	return uc.repo.ListByUserID(ctx, userID)
}

// GetDefault returns the user's default address, ErrNotFound when the
// book is empty or carries no default.
func (uc *ShippingAddressUsecase) GetDefault(ctx context.Context, userID string) (shadom.ShippingAddress, error) {
	list, err := uc.ListByUser(ctx, userID)
	if err != nil {
		return shadom.ShippingAddress{}, err
	}
	for _, a := range list {
		if a.IsDefault {
			return a, nil
		}
	}
	return shadom.ShippingAddress{}, shadom.ErrNotFound
}

func (uc *ShippingAddressUsecase) Delete(ctx context.Context, id, userID string) error {
	a, err := uc.getOwned(ctx, id, userID)
	if err != nil {
		return err
	}
	return uc.repo.Delete(ctx, a.ID)
}

func (uc *ShippingAddressUsecase) getOwned(ctx context.Context, id, userID string) (shadom.ShippingAddress, error) {
	id = strings.TrimSpace(id)
	userID = strings.TrimSpace(userID)
	if id == "" || userID == "" {
		return shadom.ShippingAddress{}, ErrAddressInvalidArgument
	}
	a, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return shadom.ShippingAddress{}, err
	}
	if a.UserID != userID {
		// Hide other users' addresses.
		return shadom.ShippingAddress{}, shadom.ErrNotFound
	}
	return a, nil
}

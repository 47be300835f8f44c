// internal/domain/shippingAddress/entity.go
package shippingAddress

import (
	"errors"
	"strings"
	"time"
)

// ShippingAddress is one entry in a user's address book.
// At most one address per user carries IsDefault = true; the
// application layer unsets the others before writing a new default.
type ShippingAddress struct {
	ID        string `json:"id" firestore:"id"`
	UserID    string `json:"userId" firestore:"userId"`
	Recipient string `json:"recipient" firestore:"recipient"`
	ZipCode   string `json:"zipCode" firestore:"zipCode"`
	State     string `json:"state" firestore:"state"`
	City      string `json:"city" firestore:"city"`
	Street    string `json:"street" firestore:"street"`
	Street2   string `json:"street2" firestore:"street2"`
	Country   string `json:"country" firestore:"country"`
	IsDefault bool   `json:"isDefault" firestore:"isDefault"`

	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" firestore:"updatedAt"`
}

// Errors
var (
	ErrNotFound         = errors.New("shippingAddress: not found")
	ErrConflict         = errors.New("shippingAddress: conflict")
	ErrInvalidID        = errors.New("shippingAddress: invalid id")
	ErrInvalidUserID    = errors.New("shippingAddress: invalid userId")
	ErrInvalidRecipient = errors.New("shippingAddress: invalid recipient")
	ErrInvalidZipCode   = errors.New("shippingAddress: invalid zipCode")
	ErrInvalidState     = errors.New("shippingAddress: invalid state")
	ErrInvalidCity      = errors.New("shippingAddress: invalid city")
	ErrInvalidStreet    = errors.New("shippingAddress: invalid street")
	ErrInvalidCountry   = errors.New("shippingAddress: invalid country")
	ErrInvalidCreatedAt = errors.New("shippingAddress: invalid createdAt")
	ErrForbidden        = errors.New("shippingAddress: not owned by user")
)

func New(
	id, userID, recipient, zipCode, state, city, street, street2, country string,
	isDefault bool,
	now time.Time,
) (ShippingAddress, error) {
	a := ShippingAddress{
		ID:        strings.TrimSpace(id),
		UserID:    strings.TrimSpace(userID),
		Recipient: strings.TrimSpace(recipient),
		ZipCode:   strings.TrimSpace(zipCode),
		State:     strings.TrimSpace(state),
		City:      strings.TrimSpace(city),
		Street:    strings.TrimSpace(street),
		Street2:   strings.TrimSpace(street2),
		Country:   strings.TrimSpace(country),
		IsDefault: isDefault,
		CreatedAt: now.UTC(),
		UpdatedAt: now.UTC(),
	}
	if err := a.validate(); err != nil {
		return ShippingAddress{}, err
	}
	return a, nil
}

// UpdateFromForm replaces the postal fields after validation.
func (a *ShippingAddress) UpdateFromForm(
	recipient, zipCode, state, city, street, street2, country string,
	isDefault bool,
	now time.Time,
) error {
	next := *a
	next.Recipient = strings.TrimSpace(recipient)
	next.ZipCode = strings.TrimSpace(zipCode)
	next.State = strings.TrimSpace(state)
	next.City = strings.TrimSpace(city)
	next.Street = strings.TrimSpace(street)
	next.Street2 = strings.TrimSpace(street2)
	next.Country = strings.TrimSpace(country)
	next.IsDefault = isDefault
	next.UpdatedAt = now.UTC()
	if err := next.validate(); err != nil {
		return err
	}
	*a = next
	return nil
}

func (a *ShippingAddress) SetDefault(v bool, now time.Time) {
	a.IsDefault = v
	a.UpdatedAt = now.UTC()
}

func (a ShippingAddress) validate() error {
	if a.ID == "" {
		return ErrInvalidID
	}
	if a.UserID == "" {
		return ErrInvalidUserID
	}
	if a.Recipient == "" {
		return ErrInvalidRecipient
	}
	if a.ZipCode == "" {
		return ErrInvalidZipCode
	}
	if a.State == "" {
		return ErrInvalidState
	}
	if a.City == "" {
		return ErrInvalidCity
	}
	if a.Street == "" {
		return ErrInvalidStreet
	}
	if a.Country == "" {
		return ErrInvalidCountry
	}
	if a.CreatedAt.IsZero() {
		return ErrInvalidCreatedAt
	}
	return nil
}

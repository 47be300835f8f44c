// internal/adapters/out/firestore/shippingAddress_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	shadom "atelier/internal/domain/shippingAddress"
)

// Firestore implementation of shippingAddress.Repository.
type ShippingAddressRepositoryFS struct {
	Client *firestore.Client
}

func NewShippingAddressRepositoryFS(client *firestore.Client) *ShippingAddressRepositoryFS {
	return &ShippingAddressRepositoryFS{Client: client}
}

func (r *ShippingAddressRepositoryFS) addressesCol() *firestore.CollectionRef {
	return r.Client.Collection("shippingAddresses")
}

func (r *ShippingAddressRepositoryFS) GetByID(ctx context.Context, id string) (shadom.ShippingAddress, error) {
	if r.Client == nil {
		return shadom.ShippingAddress{}, errors.New("firestore client is nil")
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return shadom.ShippingAddress{}, shadom.ErrInvalidID
	}

	snap, err := r.addressesCol().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return shadom.ShippingAddress{}, shadom.ErrNotFound
		}
		return shadom.ShippingAddress{}, err
	}
	return docToAddress(snap)
}

func (r *ShippingAddressRepositoryFS) ListByUserID(ctx context.Context, userID string) ([]shadom.ShippingAddress, error) {
	if r.Client == nil {
		return nil, errors.New("firestore client is nil")
	}

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return []shadom.ShippingAddress{}, nil
	}

	it := r.addressesCol().
		Where("userId", "==", userID).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx)
	defer it.Stop()

	out := make([]shadom.ShippingAddress, 0, 8)
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		a, err := docToAddress(snap)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

func (r *ShippingAddressRepositoryFS) Create(ctx context.Context, a shadom.ShippingAddress) (shadom.ShippingAddress, error) {
	if r.Client == nil {
		return shadom.ShippingAddress{}, errors.New("firestore client is nil")
	}

	_, err := r.addressesCol().Doc(a.ID).Create(ctx, a)
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return shadom.ShippingAddress{}, shadom.ErrConflict
		}
		return shadom.ShippingAddress{}, err
	}
	return a, nil
}

func (r *ShippingAddressRepositoryFS) Save(ctx context.Context, a shadom.ShippingAddress) (shadom.ShippingAddress, error) {
	if r.Client == nil {
		return shadom.ShippingAddress{}, errors.New("firestore client is nil")
	}

	_, err := r.addressesCol().Doc(a.ID).Set(ctx, a)
	if err != nil {
		return shadom.ShippingAddress{}, err
	}
	return a, nil
}

func (r *ShippingAddressRepositoryFS) Delete(ctx context.Context, id string) error {
	if r.Client == nil {
		return errors.New("firestore client is nil")
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return shadom.ErrInvalidID
	}

	_, err := r.addressesCol().Doc(id).Delete(ctx)
	if err != nil && status.Code(err) != codes.NotFound {
		return err
	}
	return nil
}

// UnsetDefaults clears isDefault on the user's addresses one write at a
// time. excludeID = "" clears every default.
func (r *ShippingAddressRepositoryFS) UnsetDefaults(ctx context.Context, userID, excludeID string) error {
	if r.Client == nil {
		return errors.New("firestore client is nil")
	}

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return shadom.ErrInvalidUserID
	}

	it := r.addressesCol().
		Where("userId", "==", userID).
		Where("isDefault", "==", true).
		Documents(ctx)
	defer it.Stop()

	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return err
		}
		if snap.Ref.ID == excludeID {
			continue
		}
		_, err = snap.Ref.Update(ctx, []firestore.Update{
			{Path: "isDefault", Value: false},
		})
		if err != nil && status.Code(err) != codes.NotFound {
			return err
		}
	}
	return nil
}

func docToAddress(snap *firestore.DocumentSnapshot) (shadom.ShippingAddress, error) {
	var a shadom.ShippingAddress
	if err := snap.DataTo(&a); err != nil {
		return shadom.ShippingAddress{}, err
	}
	a.ID = snap.Ref.ID
	return a, nil
}

// internal/adapters/out/firestore/cart_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	cartdom "atelier/internal/domain/cart"
)

// Firestore implementation of cart.Repository (docId = userId).
type CartRepositoryFS struct {
	Client *firestore.Client
}

func NewCartRepositoryFS(client *firestore.Client) *CartRepositoryFS {
	return &CartRepositoryFS{Client: client}
}

func (r *CartRepositoryFS) cartsCol() *firestore.CollectionRef {
	return r.Client.Collection("carts")
}

// GetByUserID returns (nil, nil) when the user has no cart yet.
func (r *CartRepositoryFS) GetByUserID(ctx context.Context, userID string) (*cartdom.Cart, error) {
	if r.Client == nil {
		return nil, errors.New("firestore client is nil")
	}

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, nil
	}

	snap, err := r.cartsCol().Doc(userID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, err
	}

	var c cartdom.Cart
	if err := snap.DataTo(&c); err != nil {
		return nil, err
	}
	c.ID = snap.Ref.ID
	if c.Items == nil {
		c.Items = []cartdom.Item{}
	}
	return &c, nil
}

func (r *CartRepositoryFS) Upsert(ctx context.Context, c *cartdom.Cart) error {
	if r.Client == nil {
		return errors.New("firestore client is nil")
	}
	if c == nil || strings.TrimSpace(c.ID) == "" {
		return cartdom.ErrInvalidCart
	}

	_, err := r.cartsCol().Doc(c.ID).Set(ctx, c)
	return err
}

func (r *CartRepositoryFS) DeleteByUserID(ctx context.Context, userID string) error {
	if r.Client == nil {
		return errors.New("firestore client is nil")
	}

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil
	}

	_, err := r.cartsCol().Doc(userID).Delete(ctx)
	if err != nil && status.Code(err) != codes.NotFound {
		return err
	}
	return nil
}

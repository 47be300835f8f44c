// internal/adapters/out/firestore/order_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	orderdom "atelier/internal/domain/order"
)

// Firestore implementation of order.Repository.
//
// Uniqueness of orderNumber is enforced with a marker doc in the
// orderNumbers collection, created in the same transaction as the
// order itself so a duplicate number fails the whole write.
type OrderRepositoryFS struct {
	Client *firestore.Client
}

func NewOrderRepositoryFS(client *firestore.Client) *OrderRepositoryFS {
	return &OrderRepositoryFS{Client: client}
}

func (r *OrderRepositoryFS) ordersCol() *firestore.CollectionRef {
	return r.Client.Collection("orders")
}

func (r *OrderRepositoryFS) orderNumbersCol() *firestore.CollectionRef {
	return r.Client.Collection("orderNumbers")
}

func (r *OrderRepositoryFS) GetByID(ctx context.Context, id string) (orderdom.Order, error) {
	if r.Client == nil {
		return orderdom.Order{}, errors.New("firestore client is nil")
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return orderdom.Order{}, orderdom.ErrInvalidID
	}

	snap, err := r.ordersCol().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return orderdom.Order{}, orderdom.ErrNotFound
		}
		return orderdom.Order{}, err
	}
	return docToOrder(snap)
}

func (r *OrderRepositoryFS) ListByUserID(ctx context.Context, userID string) ([]orderdom.Order, error) {
	if r.Client == nil {
		return nil, errors.New("firestore client is nil")
	}

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return []orderdom.Order{}, nil
	}

	it := r.ordersCol().
		Where("userId", "==", userID).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx)
	return collectOrders(it)
}

func (r *OrderRepositoryFS) ListAll(ctx context.Context) ([]orderdom.Order, error) {
	if r.Client == nil {
		return nil, errors.New("firestore client is nil")
	}

	it := r.ordersCol().
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx)
	return collectOrders(it)
}

func (r *OrderRepositoryFS) ListByCreatedRange(ctx context.Context, from, to time.Time) ([]orderdom.Order, error) {
	if r.Client == nil {
		return nil, errors.New("firestore client is nil")
	}

	q := r.ordersCol().Query
	if !from.IsZero() {
		q = q.Where("createdAt", ">=", from.UTC())
	}
	if !to.IsZero() {
		q = q.Where("createdAt", "<", to.UTC())
	}
	it := q.OrderBy("createdAt", firestore.Desc).Documents(ctx)
	return collectOrders(it)
}

func (r *OrderRepositoryFS) Create(ctx context.Context, o orderdom.Order) (orderdom.Order, error) {
	if r.Client == nil {
		return orderdom.Order{}, errors.New("firestore client is nil")
	}

	orderRef := r.ordersCol().Doc(o.ID)
	markerRef := r.orderNumbersCol().Doc(o.OrderNumber)

	err := r.Client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if err := tx.Create(markerRef, map[string]interface{}{
			"orderId":   o.ID,
			"createdAt": o.CreatedAt,
		}); err != nil {
			return err
		}
		return tx.Create(orderRef, o)
	})
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return orderdom.Order{}, orderdom.ErrConflict
		}
		return orderdom.Order{}, err
	}
	return o, nil
}

func (r *OrderRepositoryFS) Save(ctx context.Context, o orderdom.Order) (orderdom.Order, error) {
	if r.Client == nil {
		return orderdom.Order{}, errors.New("firestore client is nil")
	}

	_, err := r.ordersCol().Doc(o.ID).Set(ctx, o)
	if err != nil {
		return orderdom.Order{}, err
	}
	return o, nil
}

func (r *OrderRepositoryFS) Count(ctx context.Context) (int, error) {
	if r.Client == nil {
		return 0, errors.New("firestore client is nil")
	}

	it := r.ordersCol().Documents(ctx)
	defer it.Stop()

	n := 0
	for {
		_, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return 0, err
		}
		n++
	}
	return n, nil
}

func collectOrders(it *firestore.DocumentIterator) ([]orderdom.Order, error) {
	defer it.Stop()

	out := make([]orderdom.Order, 0, 32)
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		o, err := docToOrder(snap)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, nil
}

func docToOrder(snap *firestore.DocumentSnapshot) (orderdom.Order, error) {
	var o orderdom.Order
	if err := snap.DataTo(&o); err != nil {
		return orderdom.Order{}, err
	}
	o.ID = snap.Ref.ID
	if o.Items == nil {
		o.Items = []orderdom.LineItem{}
	}
	return o, nil
}

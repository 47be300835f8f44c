// internal/adapters/out/firestore/payment_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	paydom "atelier/internal/domain/payment"
)

// Firestore implementation of payment.Repository (docId = orderId).
type PaymentRepositoryFS struct {
	Client *firestore.Client
}

func NewPaymentRepositoryFS(client *firestore.Client) *PaymentRepositoryFS {
	return &PaymentRepositoryFS{Client: client}
}

func (r *PaymentRepositoryFS) paymentsCol() *firestore.CollectionRef {
	return r.Client.Collection("payments")
}

func (r *PaymentRepositoryFS) GetByOrderID(ctx context.Context, orderID string) (paydom.Payment, error) {
	if r.Client == nil {
		return paydom.Payment{}, errors.New("firestore client is nil")
	}

	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return paydom.Payment{}, paydom.ErrInvalidOrderID
	}

	snap, err := r.paymentsCol().Doc(orderID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return paydom.Payment{}, paydom.ErrNotFound
		}
		return paydom.Payment{}, err
	}

	var p paydom.Payment
	if err := snap.DataTo(&p); err != nil {
		return paydom.Payment{}, err
	}
	p.OrderID = snap.Ref.ID
	return p, nil
}

func (r *PaymentRepositoryFS) Create(ctx context.Context, p paydom.Payment) (paydom.Payment, error) {
	if r.Client == nil {
		return paydom.Payment{}, errors.New("firestore client is nil")
	}

	_, err := r.paymentsCol().Doc(p.OrderID).Create(ctx, p)
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return paydom.Payment{}, paydom.ErrConflict
		}
		return paydom.Payment{}, err
	}
	return p, nil
}

func (r *PaymentRepositoryFS) Save(ctx context.Context, p paydom.Payment) (paydom.Payment, error) {
	if r.Client == nil {
		return paydom.Payment{}, errors.New("firestore client is nil")
	}

	_, err := r.paymentsCol().Doc(p.OrderID).Set(ctx, p)
	if err != nil {
		return paydom.Payment{}, err
	}
	return p, nil
}

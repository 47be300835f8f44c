// internal/domain/user/repository_port.go
package user

import "context"

// Repository is a persistence port for User.
//
// Storage (Firestore):
// - collection: users
// - docId: Firebase UID
type Repository interface {
	// GetByID returns ErrNotFound when no doc matches.
	GetByID(ctx context.Context, id string) (User, error)

	// GetByEmail returns ErrNotFound when no doc matches.
	GetByEmail(ctx context.Context, email string) (User, error)

	// Create fails with ErrConflict when the doc already exists
	// or when another user owns the email.
	Create(ctx context.Context, u User) (User, error)

	// Save upserts the doc.
	Save(ctx context.Context, u User) (User, error)

	Delete(ctx context.Context, id string) error

	List(ctx context.Context) ([]User, error)

	Count(ctx context.Context) (int, error)
}

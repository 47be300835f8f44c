// internal/domain/artwork/repository_port.go
package artwork

import (
	"context"
	"time"
)

// Filter narrows List results. Nil/empty fields mean "no filter".
type Filter struct {
	ForSale  *bool
	ArtistID string
	OwnerID  string
}

// Repository is a persistence port for Artwork.
//
// Storage (Firestore):
// - collection: artworks
// - docId: auto-generated
type Repository interface {
	// GetByID returns ErrNotFound when no doc matches.
	GetByID(ctx context.Context, id string) (Artwork, error)

	List(ctx context.Context, filter Filter) ([]Artwork, error)

	Create(ctx context.Context, a Artwork) (Artwork, error)

	// Save overwrites the doc (read-modify-write, no concurrency check).
	Save(ctx context.Context, a Artwork) (Artwork, error)

	Delete(ctx context.Context, id string) error

	// Like/Unlike mutate the likedBy set inside a store transaction so
	// concurrent likes cannot drop each other.
	Like(ctx context.Context, id, userID string, now time.Time) (Artwork, error)
	Unlike(ctx context.Context, id, userID string, now time.Time) (Artwork, error)

	// MarkSold atomically checks availability and transfers ownership
	// to buyerID (the single-artwork buy path).
	MarkSold(ctx context.Context, id, buyerID string, now time.Time) (Artwork, error)

	Count(ctx context.Context, filter Filter) (int, error)
}

// internal/adapters/out/firestore/artwork_repository_fs.go
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

	artdom "atelier/internal/domain/artwork"
)

// Firestore implementation of artwork.Repository.
type ArtworkRepositoryFS struct {
	Client *firestore.Client
}

func NewArtworkRepositoryFS(client *firestore.Client) *ArtworkRepositoryFS {
	return &ArtworkRepositoryFS{Client: client}
}

func (r *ArtworkRepositoryFS) artworksCol() *firestore.CollectionRef {
	return r.Client.Collection("artworks")
}

func (r *ArtworkRepositoryFS) GetByID(ctx context.Context, id string) (artdom.Artwork, error) {
	if r.Client == nil {
		return artdom.Artwork{}, errors.New("firestore client is nil")
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return artdom.Artwork{}, artdom.ErrNotFound
	}

	snap, err := r.artworksCol().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return artdom.Artwork{}, artdom.ErrNotFound
		}
		return artdom.Artwork{}, err
	}
	return docToArtwork(snap)
}

func (r *ArtworkRepositoryFS) List(ctx context.Context, filter artdom.Filter) ([]artdom.Artwork, error) {
	if r.Client == nil {
		return nil, errors.New("firestore client is nil")
	}

	q := r.artworksCol().Query
	if filter.ForSale != nil {
		q = q.Where("forSale", "==", *filter.ForSale)
	}
	if aid := strings.TrimSpace(filter.ArtistID); aid != "" {
		q = q.Where("artistId", "==", aid)
	}
	if oid := strings.TrimSpace(filter.OwnerID); oid != "" {
		q = q.Where("ownerId", "==", oid)
	}
	q = q.OrderBy("createdAt", firestore.Desc)

	it := q.Documents(ctx)
	defer it.Stop()

	out := []artdom.Artwork{}
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		a, err := docToArtwork(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

func (r *ArtworkRepositoryFS) Create(ctx context.Context, a artdom.Artwork) (artdom.Artwork, error) {
	if r.Client == nil {
		return artdom.Artwork{}, errors.New("firestore client is nil")
	}

	_, err := r.artworksCol().Doc(a.ID).Create(ctx, a)
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return artdom.Artwork{}, artdom.ErrConflict
		}
		return artdom.Artwork{}, err
	}
	return a, nil
}

func (r *ArtworkRepositoryFS) Save(ctx context.Context, a artdom.Artwork) (artdom.Artwork, error) {
	if r.Client == nil {
		return artdom.Artwork{}, errors.New("firestore client is nil")
	}

	if _, err := r.artworksCol().Doc(a.ID).Set(ctx, a); err != nil {
		return artdom.Artwork{}, err
	}
	return a, nil
}

func (r *ArtworkRepositoryFS) Delete(ctx context.Context, id string) error {
	if r.Client == nil {
		return errors.New("firestore client is nil")
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return artdom.ErrNotFound
	}

	_, err := r.artworksCol().Doc(id).Delete(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return artdom.ErrNotFound
		}
		return err
	}
	return nil
}

// Like runs the set mutation in a transaction so concurrent likes
// cannot drop each other.
func (r *ArtworkRepositoryFS) Like(ctx context.Context, id, userID string, now time.Time) (artdom.Artwork, error) {
	return r.mutateTx(ctx, id, func(a *artdom.Artwork) error {
		return a.Like(userID, now)
	})
}

func (r *ArtworkRepositoryFS) Unlike(ctx context.Context, id, userID string, now time.Time) (artdom.Artwork, error) {
	return r.mutateTx(ctx, id, func(a *artdom.Artwork) error {
		return a.Unlike(userID, now)
	})
}

// MarkSold atomically checks availability and transfers ownership.
func (r *ArtworkRepositoryFS) MarkSold(ctx context.Context, id, buyerID string, now time.Time) (artdom.Artwork, error) {
	return r.mutateTx(ctx, id, func(a *artdom.Artwork) error {
		return a.MarkSold(buyerID, now)
	})
}

func (r *ArtworkRepositoryFS) Count(ctx context.Context, filter artdom.Filter) (int, error) {
	if r.Client == nil {
		return 0, errors.New("firestore client is nil")
	}

	list, err := r.List(ctx, filter)
	if err != nil {
		return 0, err
	}
	return len(list), nil
}

// mutateTx applies fn to the artwork inside RunTransaction.
func (r *ArtworkRepositoryFS) mutateTx(ctx context.Context, id string, fn func(*artdom.Artwork) error) (artdom.Artwork, error) {
	if r.Client == nil {
		return artdom.Artwork{}, errors.New("firestore client is nil")
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return artdom.Artwork{}, artdom.ErrNotFound
	}

	docRef := r.artworksCol().Doc(id)

	var out artdom.Artwork
	err := r.Client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return artdom.ErrNotFound
			}
			return err
		}

		a, err := docToArtwork(snap)
		if err != nil {
			return err
		}
		if err := fn(&a); err != nil {
			return err
		}
		out = a
		return tx.Set(docRef, a)
	})
	if err != nil {
		return artdom.Artwork{}, err
	}
	return out, nil
}

func docToArtwork(snap *firestore.DocumentSnapshot) (artdom.Artwork, error) {
	var a artdom.Artwork
	if err := snap.DataTo(&a); err != nil {
		return artdom.Artwork{}, err
	}
	a.ID = snap.Ref.ID
	if a.LikedBy == nil {
		a.LikedBy = []string{}
	}
	if a.Comments == nil {
		a.Comments = []artdom.Comment{}
	}
	return a, nil
}

// internal/application/usecase/artwork_usecase.go
package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/google/uuid"

	artdom "atelier/internal/domain/artwork"
	userdom "atelier/internal/domain/user"
)

var (
	ErrArtworkInvalidArgument = errors.New("artwork_usecase: invalid argument")
	ErrArtworkForbidden       = errors.New("artwork_usecase: not the owner")
)

// ImageStore is an outbound port for artwork image objects
// (GCS-backed in production).
type ImageStore interface {
	Upload(ctx context.Context, objectPath string, data []byte, contentType string) (publicURL string, err error)
}

// CreateArtworkInput is the validated listing request. Price is
// optional; when set the piece goes on sale immediately.
type CreateArtworkInput struct {
	Title       string
	Description string
	Price       *int
}

type UpdateArtworkInput struct {
	Title       *string
	Description *string
	Price       *int
	ForSale     *bool
}

// ArtworkUsecase owns the catalog: CRUD, like/comment social state,
// and the single-artwork buy path (the only place availability flips).
type ArtworkUsecase struct {
	repo   artdom.Repository
	users  userdom.Repository
	images ImageStore
	clock  Clock
}

func NewArtworkUsecase(repo artdom.Repository, users userdom.Repository, images ImageStore) *ArtworkUsecase {
	return &ArtworkUsecase{repo: repo, users: users, images: images, clock: systemClock{}}
}

// NewArtworkUsecaseWithClock is useful for tests.
func NewArtworkUsecaseWithClock(repo artdom.Repository, users userdom.Repository, images ImageStore, clock Clock) *ArtworkUsecase {
	if clock == nil {
		clock = systemClock{}
	}
	return &ArtworkUsecase{repo: repo, users: users, images: images, clock: clock}
}

// Create lists a new artwork; the caller is artist and initial owner.
func (uc *ArtworkUsecase) Create(ctx context.Context, artistID string, in CreateArtworkInput) (artdom.Artwork, error) {
	artistID = strings.TrimSpace(artistID)
	if artistID == "" {
		return artdom.Artwork{}, ErrArtworkInvalidArgument
	}

	now := uc.clock.Now()
	a, err := artdom.New(uuid.NewString(), in.Title, in.Description, artistID, now)
	if err != nil {
		return artdom.Artwork{}, err
	}
	if in.Price != nil {
		if err := a.ListForSale(*in.Price, now); err != nil {
			return artdom.Artwork{}, err
		}
	}
	return uc.repo.Create(ctx, a)
}

func (uc *ArtworkUsecase) Get(ctx context.Context, id string) (artdom.Artwork, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return artdom.Artwork{}, artdom.ErrNotFound
	}
	return uc.repo.GetByID(ctx, id)
}

func (uc *ArtworkUsecase) List(ctx context.Context, filter artdom.Filter) ([]artdom.Artwork, error) {
	return uc.repo.List(ctx, filter)
}

// Update applies partial edits. Only the current owner may edit;
// setting forSale=true requires a price (supplied now or previously).
func (uc *ArtworkUsecase) Update(ctx context.Context, id, userID string, in UpdateArtworkInput) (artdom.Artwork, error) {
	a, err := uc.Get(ctx, id)
	if err != nil {
		return artdom.Artwork{}, err
	}
	if a.OwnerID != strings.TrimSpace(userID) {
		return artdom.Artwork{}, ErrArtworkForbidden
	}

	now := uc.clock.Now()

	if in.Title != nil || in.Description != nil {
		title := a.Title
		desc := a.Description
		if in.Title != nil {
			title = *in.Title
		}
		if in.Description != nil {
			desc = *in.Description
		}
		if err := a.UpdateDetails(title, desc, now); err != nil {
			return artdom.Artwork{}, err
		}
	}

	switch {
	case in.ForSale != nil && !*in.ForSale:
		if err := a.Unlist(now); err != nil {
			return artdom.Artwork{}, err
		}
	case in.ForSale != nil && *in.ForSale:
		price := 0
		if in.Price != nil {
			price = *in.Price
		} else if a.Price != nil {
			price = *a.Price
		}
		if err := a.ListForSale(price, now); err != nil {
			return artdom.Artwork{}, err
		}
	case in.Price != nil:
		// Price change without a sale-flag change keeps the current
		// listing state.
		if a.ForSale {
			if err := a.ListForSale(*in.Price, now); err != nil {
				return artdom.Artwork{}, err
			}
		} else {
			if *in.Price <= 0 {
				return artdom.Artwork{}, artdom.ErrInvalidPrice
			}
			p := *in.Price
			a.Price = &p
			a.UpdatedAt = now.UTC()
		}
	}

	return uc.repo.Save(ctx, a)
}

// Delete removes a listing. Owner or admin only; sold pieces stay for
// order history.
func (uc *ArtworkUsecase) Delete(ctx context.Context, id, userID string) error {
	a, err := uc.Get(ctx, id)
	if err != nil {
		return err
	}
	if a.Sold {
		return artdom.ErrSoldLocked
	}
	uid := strings.TrimSpace(userID)
	if a.OwnerID != uid {
		u, err := uc.users.GetByID(ctx, uid)
		if err != nil || !u.IsAdmin() {
			return ErrArtworkForbidden
		}
	}
	return uc.repo.Delete(ctx, id)
}

// Like/Unlike run inside a store transaction; likes stays equal to
// len(likedBy).
func (uc *ArtworkUsecase) Like(ctx context.Context, id, userID string) (artdom.Artwork, error) {
	if strings.TrimSpace(id) == "" || strings.TrimSpace(userID) == "" {
		return artdom.Artwork{}, ErrArtworkInvalidArgument
	}
	return uc.repo.Like(ctx, id, userID, uc.clock.Now())
}

func (uc *ArtworkUsecase) Unlike(ctx context.Context, id, userID string) (artdom.Artwork, error) {
	if strings.TrimSpace(id) == "" || strings.TrimSpace(userID) == "" {
		return artdom.Artwork{}, ErrArtworkInvalidArgument
	}
	return uc.repo.Unlike(ctx, id, userID, uc.clock.Now())
}

func (uc *ArtworkUsecase) Comment(ctx context.Context, id, userID, text string) (artdom.Artwork, error) {
	a, err := uc.Get(ctx, id)
	if err != nil {
		return artdom.Artwork{}, err
	}
	if err := a.AddComment(userID, text, uc.clock.Now()); err != nil {
		return artdom.Artwork{}, err
	}
	return uc.repo.Save(ctx, a)
}

// Buy is the single-artwork purchase path: atomically checks
// availability, rejects self-purchase, marks sold and moves ownership.
// Order checkout deliberately does NOT call this.
func (uc *ArtworkUsecase) Buy(ctx context.Context, id, buyerID string) (artdom.Artwork, error) {
	if strings.TrimSpace(id) == "" || strings.TrimSpace(buyerID) == "" {
		return artdom.Artwork{}, ErrArtworkInvalidArgument
	}
	a, err := uc.repo.MarkSold(ctx, id, buyerID, uc.clock.Now())
	if err != nil {
		return artdom.Artwork{}, err
	}
	log.Printf("[artwork_uc] sold artworkId=%s buyerId=%s", a.ID, buyerID)
	return a, nil
}

// AttachImage uploads the image bytes and stores the public URL on the
// artwork. Owner only.
func (uc *ArtworkUsecase) AttachImage(ctx context.Context, id, userID string, data []byte, contentType string) (artdom.Artwork, error) {
	if uc.images == nil {
		return artdom.Artwork{}, errors.New("artwork_usecase: image store not configured")
	}
	if len(data) == 0 {
		return artdom.Artwork{}, ErrArtworkInvalidArgument
	}

	a, err := uc.Get(ctx, id)
	if err != nil {
		return artdom.Artwork{}, err
	}
	if a.OwnerID != strings.TrimSpace(userID) {
		return artdom.Artwork{}, ErrArtworkForbidden
	}

	url, err := uc.images.Upload(ctx, "artworks/"+a.ID, data, contentType)
	if err != nil {
		return artdom.Artwork{}, err
	}
	a.SetImageURL(url, uc.clock.Now())
	return uc.repo.Save(ctx, a)
}

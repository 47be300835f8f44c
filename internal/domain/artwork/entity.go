// internal/domain/artwork/entity.go
package artwork

import (
	"errors"
	"strings"
	"time"
)

// Comment is an append-only entry on an artwork.
type Comment struct {
	UserID    string    `json:"userId" firestore:"userId"`
	Text      string    `json:"text" firestore:"text"`
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
}

// Artwork is a listed piece.
//
// Sale-state invariants:
// - sold == true  implies forSale == false
// - forSale == true implies price != nil
//
// ArtistID never changes; OwnerID moves to the buyer on sale.
type Artwork struct {
	ID          string `json:"id" firestore:"id"`
	Title       string `json:"title" firestore:"title"`
	Description string `json:"description" firestore:"description"`
	ImageURL    string `json:"imageUrl" firestore:"imageUrl"`

	Price   *int `json:"price" firestore:"price"`
	ForSale bool `json:"forSale" firestore:"forSale"`
	Sold    bool `json:"sold" firestore:"sold"`

	ArtistID string `json:"artistId" firestore:"artistId"`
	OwnerID  string `json:"ownerId" firestore:"ownerId"`

	Likes   int      `json:"likes" firestore:"likes"`
	LikedBy []string `json:"likedBy" firestore:"likedBy"`

	Comments []Comment `json:"comments" firestore:"comments"`

	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" firestore:"updatedAt"`
}

// Errors
var (
	ErrNotFound         = errors.New("artwork: not found")
	ErrConflict         = errors.New("artwork: conflict")
	ErrInvalidID        = errors.New("artwork: invalid id")
	ErrInvalidTitle     = errors.New("artwork: invalid title")
	ErrInvalidPrice     = errors.New("artwork: invalid price")
	ErrInvalidArtistID  = errors.New("artwork: invalid artistId")
	ErrInvalidComment   = errors.New("artwork: invalid comment")
	ErrInvalidCreatedAt = errors.New("artwork: invalid createdAt")

	ErrNotForSale  = errors.New("artwork: not for sale")
	ErrAlreadySold = errors.New("artwork: already sold")
	ErrOwnArtwork  = errors.New("artwork: cannot buy own artwork")
	ErrSoldLocked  = errors.New("artwork: sold artwork cannot be modified")
)

// New creates an unlisted artwork. The creator is both artist and owner.
func New(id, title, description, artistID string, now time.Time) (Artwork, error) {
	a := Artwork{
		ID:          strings.TrimSpace(id),
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		ArtistID:    strings.TrimSpace(artistID),
		OwnerID:     strings.TrimSpace(artistID),
		LikedBy:     []string{},
		Comments:    []Comment{},
		CreatedAt:   now.UTC(),
		UpdatedAt:   now.UTC(),
	}
	if err := a.validate(); err != nil {
		return Artwork{}, err
	}
	return a, nil
}

// ListForSale puts the artwork on sale at price (> 0 required).
func (a *Artwork) ListForSale(price int, now time.Time) error {
	if a.Sold {
		return ErrSoldLocked
	}
	if price <= 0 {
		return ErrInvalidPrice
	}
	a.Price = &price
	a.ForSale = true
	a.UpdatedAt = now.UTC()
	return nil
}

// Unlist takes the artwork off sale. The price sticks around for re-listing.
func (a *Artwork) Unlist(now time.Time) error {
	if a.Sold {
		return ErrSoldLocked
	}
	a.ForSale = false
	a.UpdatedAt = now.UTC()
	return nil
}

// IsAvailable reports whether the artwork can be purchased right now.
func (a Artwork) IsAvailable() bool {
	return a.ForSale && !a.Sold && a.Price != nil
}

// MarkSold flips the sale state and hands ownership to buyerID.
// The availability/self-purchase checks live here so the repository
// transaction can reuse them.
func (a *Artwork) MarkSold(buyerID string, now time.Time) error {
	buyerID = strings.TrimSpace(buyerID)
	if buyerID == "" {
		return ErrInvalidID
	}
	if a.Sold {
		return ErrAlreadySold
	}
	if !a.ForSale || a.Price == nil {
		return ErrNotForSale
	}
	if buyerID == a.ArtistID || buyerID == a.OwnerID {
		return ErrOwnArtwork
	}
	a.Sold = true
	a.ForSale = false
	a.OwnerID = buyerID
	a.UpdatedAt = now.UTC()
	return nil
}

// Like adds userID to the likedBy set. Re-liking is a no-op.
func (a *Artwork) Like(userID string, now time.Time) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return ErrInvalidID
	}
	for _, u := range a.LikedBy {
		if u == userID {
			return nil
		}
	}
	a.LikedBy = append(a.LikedBy, userID)
	a.Likes = len(a.LikedBy)
	a.UpdatedAt = now.UTC()
	return nil
}

// Unlike removes userID from the likedBy set. Unknown users are a no-op.
func (a *Artwork) Unlike(userID string, now time.Time) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return ErrInvalidID
	}
	for i, u := range a.LikedBy {
		if u == userID {
			a.LikedBy = append(a.LikedBy[:i], a.LikedBy[i+1:]...)
			a.Likes = len(a.LikedBy)
			a.UpdatedAt = now.UTC()
			return nil
		}
	}
	return nil
}

// AddComment appends a comment; entries are never edited or removed.
func (a *Artwork) AddComment(userID, text string, now time.Time) error {
	userID = strings.TrimSpace(userID)
	text = strings.TrimSpace(text)
	if userID == "" || text == "" {
		return ErrInvalidComment
	}
	a.Comments = append(a.Comments, Comment{
		UserID:    userID,
		Text:      text,
		CreatedAt: now.UTC(),
	})
	a.UpdatedAt = now.UTC()
	return nil
}

func (a *Artwork) UpdateDetails(title, description string, now time.Time) error {
	if a.Sold {
		return ErrSoldLocked
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrInvalidTitle
	}
	a.Title = title
	a.Description = strings.TrimSpace(description)
	a.UpdatedAt = now.UTC()
	return nil
}

func (a *Artwork) SetImageURL(url string, now time.Time) {
	a.ImageURL = strings.TrimSpace(url)
	a.UpdatedAt = now.UTC()
}

func (a Artwork) validate() error {
	if a.ID == "" {
		return ErrInvalidID
	}
	if a.Title == "" {
		return ErrInvalidTitle
	}
	if a.ArtistID == "" {
		return ErrInvalidArtistID
	}
	if a.Sold && a.ForSale {
		return ErrAlreadySold
	}
	if a.ForSale && a.Price == nil {
		return ErrInvalidPrice
	}
	if a.Price != nil && *a.Price <= 0 {
		return ErrInvalidPrice
	}
	if a.CreatedAt.IsZero() {
		return ErrInvalidCreatedAt
	}
	return nil
}

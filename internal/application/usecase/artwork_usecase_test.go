// internal/application/usecase/artwork_usecase_test.go
package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	artdom "atelier/internal/domain/artwork"
	userdom "atelier/internal/domain/user"
)

type fakeImageStore struct {
	uploads map[string][]byte
	err     error
}

func (s *fakeImageStore) Upload(_ context.Context, objectPath string, data []byte, _ string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	if s.uploads == nil {
		s.uploads = map[string][]byte{}
	}
	s.uploads[objectPath] = data
	return "https://storage.googleapis.com/atelier-images/" + objectPath, nil
}

type artworkEnv struct {
	repo   *fakeArtworkRepo
	users  *fakeUserRepo
	images *fakeImageStore
	uc     *ArtworkUsecase
}

func newArtworkEnv(t *testing.T) *artworkEnv {
	t.Helper()
	env := &artworkEnv{
		repo:   newFakeArtworkRepo(),
		users:  newFakeUserRepo(),
		images: &fakeImageStore{},
	}
	env.uc = NewArtworkUsecaseWithClock(env.repo, env.users, env.images, fixedClock{testNow})
	return env
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }
func boolPtr(v bool) *bool    { return &v }

func TestCreateArtwork(t *testing.T) {
	env := newArtworkEnv(t)

	a, err := env.uc.Create(context.Background(), "artist-1", CreateArtworkInput{
		Title: "Blue Field", Description: "oil on canvas",
	})
	require.NoError(t, err)
	require.Equal(t, "artist-1", a.ArtistID)
	require.Equal(t, "artist-1", a.OwnerID)
	require.False(t, a.ForSale)

	// with a price the piece goes on sale immediately
	b, err := env.uc.Create(context.Background(), "artist-1", CreateArtworkInput{
		Title: "Red Field", Price: intPtr(300),
	})
	require.NoError(t, err)
	require.True(t, b.ForSale)
	require.Equal(t, 300, *b.Price)

	_, err = env.uc.Create(context.Background(), "artist-1", CreateArtworkInput{
		Title: "Free Field", Price: intPtr(0),
	})
	require.ErrorIs(t, err, artdom.ErrInvalidPrice)
}

func TestUpdateOwnerOnly(t *testing.T) {
	env := newArtworkEnv(t)

	a, err := env.uc.Create(context.Background(), "artist-1", CreateArtworkInput{Title: "Blue Field"})
	require.NoError(t, err)

	_, err = env.uc.Update(context.Background(), a.ID, "intruder", UpdateArtworkInput{
		Title: strPtr("Stolen"),
	})
	require.ErrorIs(t, err, ErrArtworkForbidden)

	updated, err := env.uc.Update(context.Background(), a.ID, "artist-1", UpdateArtworkInput{
		Title:   strPtr("Blue Field II"),
		ForSale: boolPtr(true),
		Price:   intPtr(500),
	})
	require.NoError(t, err)
	require.Equal(t, "Blue Field II", updated.Title)
	require.True(t, updated.ForSale)
	require.Equal(t, 500, *updated.Price)
}

func TestUpdateRelistUsesStoredPrice(t *testing.T) {
	env := newArtworkEnv(t)

	a, err := env.uc.Create(context.Background(), "artist-1", CreateArtworkInput{
		Title: "Blue Field", Price: intPtr(250),
	})
	require.NoError(t, err)

	off, err := env.uc.Update(context.Background(), a.ID, "artist-1", UpdateArtworkInput{
		ForSale: boolPtr(false),
	})
	require.NoError(t, err)
	require.False(t, off.ForSale)

	on, err := env.uc.Update(context.Background(), a.ID, "artist-1", UpdateArtworkInput{
		ForSale: boolPtr(true),
	})
	require.NoError(t, err)
	require.True(t, on.ForSale)
	require.Equal(t, 250, *on.Price)
}

func TestBuy(t *testing.T) {
	env := newArtworkEnv(t)

	a, err := env.uc.Create(context.Background(), "artist-1", CreateArtworkInput{
		Title: "Blue Field", Price: intPtr(250),
	})
	require.NoError(t, err)

	sold, err := env.uc.Buy(context.Background(), a.ID, "buyer-1")
	require.NoError(t, err)
	require.True(t, sold.Sold)
	require.False(t, sold.ForSale)
	require.Equal(t, "buyer-1", sold.OwnerID)
	require.Equal(t, "artist-1", sold.ArtistID)

	_, err = env.uc.Buy(context.Background(), a.ID, "buyer-2")
	require.ErrorIs(t, err, artdom.ErrAlreadySold)
}

func TestBuyOwnArtwork(t *testing.T) {
	env := newArtworkEnv(t)

	a, err := env.uc.Create(context.Background(), "artist-1", CreateArtworkInput{
		Title: "Blue Field", Price: intPtr(250),
	})
	require.NoError(t, err)

	_, err = env.uc.Buy(context.Background(), a.ID, "artist-1")
	require.ErrorIs(t, err, artdom.ErrOwnArtwork)
}

func TestLikeUnlike(t *testing.T) {
	env := newArtworkEnv(t)

	a, err := env.uc.Create(context.Background(), "artist-1", CreateArtworkInput{Title: "Blue Field"})
	require.NoError(t, err)

	liked, err := env.uc.Like(context.Background(), a.ID, "user-1")
	require.NoError(t, err)
	require.Equal(t, 1, liked.Likes)

	// re-like is a no-op
	liked, err = env.uc.Like(context.Background(), a.ID, "user-1")
	require.NoError(t, err)
	require.Equal(t, 1, liked.Likes)

	unliked, err := env.uc.Unlike(context.Background(), a.ID, "user-1")
	require.NoError(t, err)
	require.Zero(t, unliked.Likes)
}

func TestComment(t *testing.T) {
	env := newArtworkEnv(t)

	a, err := env.uc.Create(context.Background(), "artist-1", CreateArtworkInput{Title: "Blue Field"})
	require.NoError(t, err)

	got, err := env.uc.Comment(context.Background(), a.ID, "user-1", "lovely")
	require.NoError(t, err)
	require.Len(t, got.Comments, 1)
	require.Equal(t, "lovely", got.Comments[0].Text)

	_, err = env.uc.Comment(context.Background(), a.ID, "user-1", "   ")
	require.ErrorIs(t, err, artdom.ErrInvalidComment)
}

func TestDeletePermissions(t *testing.T) {
	env := newArtworkEnv(t)

	admin, err := userdom.New("admin-1", "admin@example.com", "Admin", testNow)
	require.NoError(t, err)
	require.NoError(t, admin.SetRole(userdom.RoleAdmin, testNow))
	_, err = env.users.Create(context.Background(), admin)
	require.NoError(t, err)

	a, err := env.uc.Create(context.Background(), "artist-1", CreateArtworkInput{Title: "Blue Field"})
	require.NoError(t, err)

	require.ErrorIs(t, env.uc.Delete(context.Background(), a.ID, "intruder"), ErrArtworkForbidden)
	require.NoError(t, env.uc.Delete(context.Background(), a.ID, "admin-1"))

	_, err = env.uc.Get(context.Background(), a.ID)
	require.ErrorIs(t, err, artdom.ErrNotFound)
}

func TestDeleteSoldIsRefused(t *testing.T) {
	env := newArtworkEnv(t)

	a, err := env.uc.Create(context.Background(), "artist-1", CreateArtworkInput{
		Title: "Blue Field", Price: intPtr(250),
	})
	require.NoError(t, err)
	_, err = env.uc.Buy(context.Background(), a.ID, "buyer-1")
	require.NoError(t, err)

	require.ErrorIs(t, env.uc.Delete(context.Background(), a.ID, "buyer-1"), artdom.ErrSoldLocked)
}

func TestAttachImage(t *testing.T) {
	env := newArtworkEnv(t)

	a, err := env.uc.Create(context.Background(), "artist-1", CreateArtworkInput{Title: "Blue Field"})
	require.NoError(t, err)

	got, err := env.uc.AttachImage(context.Background(), a.ID, "artist-1", []byte("png-bytes"), "image/png")
	require.NoError(t, err)
	require.Equal(t, "https://storage.googleapis.com/atelier-images/artworks/"+a.ID, got.ImageURL)
	require.Equal(t, []byte("png-bytes"), env.images.uploads["artworks/"+a.ID])

	_, err = env.uc.AttachImage(context.Background(), a.ID, "intruder", []byte("x"), "image/png")
	require.ErrorIs(t, err, ErrArtworkForbidden)

	_, err = env.uc.AttachImage(context.Background(), a.ID, "artist-1", nil, "image/png")
	require.ErrorIs(t, err, ErrArtworkInvalidArgument)
}

func TestListFilters(t *testing.T) {
	env := newArtworkEnv(t)

	_, err := env.uc.Create(context.Background(), "artist-1", CreateArtworkInput{
		Title: "Blue Field", Price: intPtr(100),
	})
	require.NoError(t, err)
	_, err = env.uc.Create(context.Background(), "artist-2", CreateArtworkInput{Title: "Sketch"})
	require.NoError(t, err)

	forSale := true
	list, err := env.uc.List(context.Background(), artdom.Filter{ForSale: &forSale})
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "Blue Field", list[0].Title)

	list, err = env.uc.List(context.Background(), artdom.Filter{ArtistID: "artist-2"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "Sketch", list[0].Title)
}

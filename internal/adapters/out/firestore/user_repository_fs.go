// internal/adapters/out/firestore/user_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	userdom "atelier/internal/domain/user"
)

// Firestore implementation of user.Repository.
type UserRepositoryFS struct {
	Client *firestore.Client
}

func NewUserRepositoryFS(client *firestore.Client) *UserRepositoryFS {
	return &UserRepositoryFS{Client: client}
}

func (r *UserRepositoryFS) usersCol() *firestore.CollectionRef {
	return r.Client.Collection("users")
}

func (r *UserRepositoryFS) GetByID(ctx context.Context, id string) (userdom.User, error) {
	if r.Client == nil {
		return userdom.User{}, errors.New("firestore client is nil")
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return userdom.User{}, userdom.ErrNotFound
	}

	snap, err := r.usersCol().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return userdom.User{}, userdom.ErrNotFound
		}
		return userdom.User{}, err
	}

	var u userdom.User
	if err := snap.DataTo(&u); err != nil {
		return userdom.User{}, err
	}
	u.ID = snap.Ref.ID
	return u, nil
}

func (r *UserRepositoryFS) GetByEmail(ctx context.Context, email string) (userdom.User, error) {
	if r.Client == nil {
		return userdom.User{}, errors.New("firestore client is nil")
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return userdom.User{}, userdom.ErrNotFound
	}

	it := r.usersCol().Where("email", "==", email).Limit(1).Documents(ctx)
	defer it.Stop()

	doc, err := it.Next()
	if err == iterator.Done {
		return userdom.User{}, userdom.ErrNotFound
	}
	if err != nil {
		return userdom.User{}, err
	}

	var u userdom.User
	if err := doc.DataTo(&u); err != nil {
		return userdom.User{}, err
	}
	u.ID = doc.Ref.ID
	return u, nil
}

func (r *UserRepositoryFS) Create(ctx context.Context, u userdom.User) (userdom.User, error) {
	if r.Client == nil {
		return userdom.User{}, errors.New("firestore client is nil")
	}

	_, err := r.usersCol().Doc(u.ID).Create(ctx, u)
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return userdom.User{}, userdom.ErrConflict
		}
		return userdom.User{}, err
	}
	return u, nil
}

func (r *UserRepositoryFS) Save(ctx context.Context, u userdom.User) (userdom.User, error) {
	if r.Client == nil {
		return userdom.User{}, errors.New("firestore client is nil")
	}

	if _, err := r.usersCol().Doc(u.ID).Set(ctx, u); err != nil {
		return userdom.User{}, err
	}
	return u, nil
}

func (r *UserRepositoryFS) Delete(ctx context.Context, id string) error {
	if r.Client == nil {
		return errors.New("firestore client is nil")
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return userdom.ErrNotFound
	}

	_, err := r.usersCol().Doc(id).Delete(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return userdom.ErrNotFound
		}
		return err
	}
	return nil
}

func (r *UserRepositoryFS) List(ctx context.Context) ([]userdom.User, error) {
	if r.Client == nil {
		return nil, errors.New("firestore client is nil")
	}

	it := r.usersCol().OrderBy("createdAt", firestore.Desc).Documents(ctx)
	defer it.Stop()

	out := []userdom.User{}
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var u userdom.User
		if err := doc.DataTo(&u); err != nil {
			return nil, err
		}
		u.ID = doc.Ref.ID
		out = append(out, u)
	}
	return out, nil
}

func (r *UserRepositoryFS) Count(ctx context.Context) (int, error) {
	if r.Client == nil {
		return 0, errors.New("firestore client is nil")
	}

	it := r.usersCol().Documents(ctx)
	defer it.Stop()

	total := 0
	for {
		_, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return 0, err
		}
		total++
	}
	return total, nil
}

// internal/domain/user/entity.go
package user

import (
	"errors"
	"strings"
	"time"
)

// Role controls access to the admin surface.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func IsValidRole(r Role) bool {
	switch r {
	case RoleUser, RoleAdmin:
		return true
	}
	return false
}

// User is a profile document keyed by the Firebase UID.
// Credentials are owned by Firebase Auth; the doc only carries
// role and display fields.
type User struct {
	ID          string    `json:"id" firestore:"id"`
	Email       string    `json:"email" firestore:"email"`
	DisplayName string    `json:"displayName" firestore:"displayName"`
	Bio         string    `json:"bio" firestore:"bio"`
	AvatarURL   string    `json:"avatarUrl" firestore:"avatarUrl"`
	Role        Role      `json:"role" firestore:"role"`
	CreatedAt   time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" firestore:"updatedAt"`
}

// Errors
var (
	ErrNotFound           = errors.New("user: not found")
	ErrConflict           = errors.New("user: conflict")
	ErrInvalidID          = errors.New("user: invalid id")
	ErrInvalidEmail       = errors.New("user: invalid email")
	ErrInvalidDisplayName = errors.New("user: invalid displayName")
	ErrInvalidRole        = errors.New("user: invalid role")
	ErrInvalidCreatedAt   = errors.New("user: invalid createdAt")
)

// New creates a user profile with role "user".
func New(id, email, displayName string, now time.Time) (User, error) {
	u := User{
		ID:          strings.TrimSpace(id),
		Email:       strings.ToLower(strings.TrimSpace(email)),
		DisplayName: strings.TrimSpace(displayName),
		Role:        RoleUser,
		CreatedAt:   now.UTC(),
		UpdatedAt:   now.UTC(),
	}
	if err := u.validate(); err != nil {
		return User{}, err
	}
	return u, nil
}

// UpdateProfile replaces the mutable display fields.
// Empty displayName is rejected; bio/avatarURL may be cleared.
func (u *User) UpdateProfile(displayName, bio, avatarURL string, now time.Time) error {
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return ErrInvalidDisplayName
	}
	u.DisplayName = displayName
	u.Bio = strings.TrimSpace(bio)
	u.AvatarURL = strings.TrimSpace(avatarURL)
	u.UpdatedAt = now.UTC()
	return nil
}

func (u *User) SetRole(r Role, now time.Time) error {
	if !IsValidRole(r) {
		return ErrInvalidRole
	}
	u.Role = r
	u.UpdatedAt = now.UTC()
	return nil
}

func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

func (u User) validate() error {
	if u.ID == "" {
		return ErrInvalidID
	}
	if u.Email == "" || !strings.Contains(u.Email, "@") {
		return ErrInvalidEmail
	}
	if u.DisplayName == "" {
		return ErrInvalidDisplayName
	}
	if !IsValidRole(u.Role) {
		return ErrInvalidRole
	}
	if u.CreatedAt.IsZero() {
		return ErrInvalidCreatedAt
	}
	return nil
}

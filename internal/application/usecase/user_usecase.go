// internal/application/usecase/user_usecase.go
package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	userdom "atelier/internal/domain/user"
)

var (
	ErrUserInvalidArgument = errors.New("user_usecase: invalid argument")
)

// ForgotPasswordMessage is returned for EVERY forgot-password request,
// found or not, so the endpoint never leaks account existence.
const ForgotPasswordMessage = "If an account exists for that email, a reset link has been sent."

// ResetLinkProvider builds a password-reset link for an email.
// Satisfied by *firebase auth.Client (PasswordResetLink).
type ResetLinkProvider interface {
	PasswordResetLink(ctx context.Context, email string) (string, error)
}

// ResetMailer delivers the reset link (SendGrid-backed in production).
type ResetMailer interface {
	SendPasswordReset(ctx context.Context, toEmail, resetLink string) error
}

// UserUsecase owns profile documents and the admin user-management
// surface. Credentials live in Firebase Auth.
type UserUsecase struct {
	repo   userdom.Repository
	links  ResetLinkProvider
	mailer ResetMailer
	clock  Clock
}

func NewUserUsecase(repo userdom.Repository, links ResetLinkProvider, mailer ResetMailer) *UserUsecase {
	return &UserUsecase{repo: repo, links: links, mailer: mailer, clock: systemClock{}}
}

// NewUserUsecaseWithClock is useful for tests.
func NewUserUsecaseWithClock(repo userdom.Repository, links ResetLinkProvider, mailer ResetMailer, clock Clock) *UserUsecase {
	if clock == nil {
		clock = systemClock{}
	}
	return &UserUsecase{repo: repo, links: links, mailer: mailer, clock: clock}
}

// Register creates the profile doc for a verified Firebase UID.
// Duplicate email surfaces as userdom.ErrConflict.
func (uc *UserUsecase) Register(ctx context.Context, uid, email, displayName string) (userdom.User, error) {
	u, err := userdom.New(uid, email, displayName, uc.clock.Now())
	if err != nil {
		return userdom.User{}, err
	}

	if _, err := uc.repo.GetByEmail(ctx, u.Email); err == nil {
		return userdom.User{}, userdom.ErrConflict
	} else if !errors.Is(err, userdom.ErrNotFound) {
		return userdom.User{}, err
	}

	return uc.repo.Create(ctx, u)
}

func (uc *UserUsecase) Get(ctx context.Context, id string) (userdom.User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return userdom.User{}, userdom.ErrNotFound
	}
	return uc.repo.GetByID(ctx, id)
}

func (uc *UserUsecase) UpdateProfile(ctx context.Context, id, displayName, bio, avatarURL string) (userdom.User, error) {
	u, err := uc.Get(ctx, id)
	if err != nil {
		return userdom.User{}, err
	}
	if err := u.UpdateProfile(displayName, bio, avatarURL, uc.clock.Now()); err != nil {
		return userdom.User{}, err
	}
	return uc.repo.Save(ctx, u)
}

// IsAdmin reports whether the uid's profile carries the admin role.
// Unknown users are plain non-admins.
func (uc *UserUsecase) IsAdmin(ctx context.Context, id string) (bool, error) {
	u, err := uc.Get(ctx, id)
	if err != nil {
		if errors.Is(err, userdom.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return u.IsAdmin(), nil
}

// List / SetRole / Delete are the admin surface.

func (uc *UserUsecase) List(ctx context.Context) ([]userdom.User, error) {
	return uc.repo.List(ctx)
}

func (uc *UserUsecase) SetRole(ctx context.Context, id string, role userdom.Role) (userdom.User, error) {
	u, err := uc.Get(ctx, id)
	if err != nil {
		return userdom.User{}, err
	}
	if err := u.SetRole(role, uc.clock.Now()); err != nil {
		return userdom.User{}, err
	}
	return uc.repo.Save(ctx, u)
}

func (uc *UserUsecase) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrUserInvalidArgument
	}
	return uc.repo.Delete(ctx, id)
}

// ForgotPassword sends a reset mail when the account exists and swallows
// every failure behind the generic message. The only error ever
// returned is for a blank email.
func (uc *UserUsecase) ForgotPassword(ctx context.Context, email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", ErrUserInvalidArgument
	}

	if _, err := uc.repo.GetByEmail(ctx, email); err != nil {
		if !errors.Is(err, userdom.ErrNotFound) {
			log.Printf("[user_uc] WARN: forgot-password lookup failed: %v", err)
		}
		return ForgotPasswordMessage, nil
	}

	if uc.links == nil || uc.mailer == nil {
		log.Printf("[user_uc] WARN: forgot-password mail not configured; skipping send")
		return ForgotPasswordMessage, nil
	}

	link, err := uc.links.PasswordResetLink(ctx, email)
	if err != nil {
		log.Printf("[user_uc] WARN: reset link generation failed: %v", err)
		return ForgotPasswordMessage, nil
	}
	if err := uc.mailer.SendPasswordReset(ctx, email, link); err != nil {
		log.Printf("[user_uc] WARN: reset mail send failed: %v", err)
	}
	return ForgotPasswordMessage, nil
}

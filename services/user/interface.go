package user

import (
	"context"
	"errors"
	"time"

	userRepo "checkfree/database/repository/user"
	"checkfree/models"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrInvalidRole    = errors.New("invalid role")
	ErrNoRefreshToken = errors.New("google did not grant a refresh token")
)

// TokenEncrypter encrypts refresh tokens before they are stored.
type TokenEncrypter interface {
	EncryptToken(plaintext string) (string, error)
}

type UserService interface {
	// Sign-in
	SignIn(ctx context.Context, profile models.GoogleProfile, refreshToken string) (*models.User, error)

	// Profile and role
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	CheckUser(ctx context.Context, email string) (*models.UserStatus, error)
	SetRole(ctx context.Context, email string, role models.Role) error

	// Directory
	ListSellers(ctx context.Context) ([]models.SellerSummary, error)
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo   userRepo.UserRepository
	Cipher TokenEncrypter
	// Now defaults to time.Now.
	Now func() time.Time
}

func (s *DefaultUserService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

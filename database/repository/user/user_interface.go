package userRepo

import (
	"context"
	"errors"

	"checkfree/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrUserNotFound is returned by updates that matched no document.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines methods for user data access.
// Lookups return (nil, nil) when no document matches.
type UserRepository interface {
	// GetByID retrieves a user by its ObjectID.
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	// GetByEmail retrieves a user by its email address.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// Create inserts a new user record and sets its ID.
	Create(ctx context.Context, user *models.User) error
	// UpdateRefreshToken replaces the stored (encrypted) refresh token.
	UpdateRefreshToken(ctx context.Context, email, encryptedToken string) error
	// SetRole sets the marketplace role of the user with the given email.
	SetRole(ctx context.Context, email string, role models.Role) error
	// GetSellers lists every user whose role is seller.
	GetSellers(ctx context.Context) ([]models.SellerSummary, error)
}

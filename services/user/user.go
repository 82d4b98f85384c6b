package user

import (
	"context"
	"errors"
	"fmt"

	userRepo "checkfree/database/repository/user"
	"checkfree/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Frontend pages a signed-in user is sent to.
const (
	RoleSelectPath      = "/auth/role-select"
	BuyerDashboardPath  = "/buyer/dashboard"
	SellerDashboardPath = "/seller/dashboard"
)

// RedirectFor returns the landing page for a user with role r.
func RedirectFor(r models.Role) string {
	switch r {
	case models.RoleBuyer:
		return BuyerDashboardPath
	case models.RoleSeller:
		return SellerDashboardPath
	default:
		return RoleSelectPath
	}
}

func (s *DefaultUserService) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid user id %q: %w", id, err)
	}
	usr, err := s.Repo.GetByID(ctx, oid)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if usr == nil {
		return nil, ErrUserNotFound
	}
	return usr, nil
}

// CheckUser reports the user's role and where the frontend should go next.
func (s *DefaultUserService) CheckUser(ctx context.Context, email string) (*models.UserStatus, error) {
	usr, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if usr == nil {
		return nil, ErrUserNotFound
	}

	status := &models.UserStatus{
		ID:       usr.ID.Hex(),
		Email:    usr.Email,
		Name:     usr.Name,
		HasRole:  usr.Role != "",
		Redirect: RedirectFor(usr.Role),
	}
	if status.HasRole {
		role := usr.Role
		status.Role = &role
	}
	return status, nil
}

// SetRole assigns buyer or seller to the user with email.
func (s *DefaultUserService) SetRole(ctx context.Context, email string, role models.Role) error {
	if !role.Valid() {
		return ErrInvalidRole
	}
	if err := s.Repo.SetRole(ctx, email, role); err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to set role: %w", err)
	}
	return nil
}

// ListSellers returns every user who chose the seller role.
func (s *DefaultUserService) ListSellers(ctx context.Context) ([]models.SellerSummary, error) {
	sellers, err := s.Repo.GetSellers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list sellers: %w", err)
	}
	return sellers, nil
}

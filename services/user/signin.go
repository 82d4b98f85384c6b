package user

import (
	"context"
	"errors"
	"fmt"

	"checkfree/models"
	"checkfree/utils"

	"go.uber.org/zap"
)

// SignIn upserts the user behind a Google profile. New users are only
// created when Google granted a refresh token; for known users a granted
// token replaces the stored one.
func (s *DefaultUserService) SignIn(ctx context.Context, profile models.GoogleProfile, refreshToken string) (*models.User, error) {
	logger := utils.GetLogger()
	if profile.Email == "" {
		return nil, errors.New("google profile has no email")
	}

	existing, err := s.Repo.GetByEmail(ctx, profile.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if existing == nil {
		if refreshToken == "" {
			return nil, ErrNoRefreshToken
		}
		enc, err := s.Cipher.EncryptToken(refreshToken)
		if err != nil {
			return nil, fmt.Errorf("failed to encrypt refresh token: %w", err)
		}
		usr := &models.User{
			Email:        profile.Email,
			Name:         profile.Name,
			Image:        profile.Picture,
			GoogleID:     profile.ID,
			RefreshToken: enc,
			CreatedAt:    s.now().UTC(),
		}
		if err := s.Repo.Create(ctx, usr); err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
		logger.Info("New user signed up", zap.String("email", usr.Email), zap.String("id", usr.ID.Hex()))
		return usr, nil
	}

	if refreshToken != "" {
		enc, err := s.Cipher.EncryptToken(refreshToken)
		if err != nil {
			return nil, fmt.Errorf("failed to encrypt refresh token: %w", err)
		}
		if err := s.Repo.UpdateRefreshToken(ctx, existing.Email, enc); err != nil {
			return nil, fmt.Errorf("failed to update refresh token: %w", err)
		}
		existing.RefreshToken = enc
		existing.UpdatedAt = s.now().UTC()
	}
	logger.Debug("User signed in", zap.String("email", existing.Email), zap.Bool("tokenRefreshed", refreshToken != ""))
	return existing, nil
}

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"checkfree/models"
	"checkfree/services/user"
	"checkfree/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrInvalidState   = errors.New("invalid or expired oauth state")
	ErrInvalidSession = errors.New("invalid session")
)

// LoginResult is the outcome of a completed Google sign-in.
type LoginResult struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      *models.User `json:"user"`
}

type AuthService interface {
	BeginLogin(ctx context.Context) (string, error)
	CompleteLogin(ctx context.Context, code, state string) (*LoginResult, error)
	Authenticate(ctx context.Context, token string) (*utils.SessionClaims, error)
	Logout(ctx context.Context, token string) error
}

// DefaultAuthService signs users in with Google and issues session JWTs.
type DefaultAuthService struct {
	Identity   IdentityProvider
	States     StateStore
	Sessions   SessionStore
	Users      user.UserService
	JWTSecret  []byte
	SessionTTL time.Duration
}

// BeginLogin stores a fresh state and returns Google's consent URL.
func (s *DefaultAuthService) BeginLogin(ctx context.Context) (string, error) {
	state := uuid.NewString()
	if err := s.States.Save(ctx, state, utils.OAuthStateTTL); err != nil {
		return "", fmt.Errorf("failed to store oauth state: %w", err)
	}
	return s.Identity.AuthCodeURL(state), nil
}

// CompleteLogin validates state, exchanges code and signs the user in.
func (s *DefaultAuthService) CompleteLogin(ctx context.Context, code, state string) (*LoginResult, error) {
	if code == "" || state == "" {
		return nil, ErrInvalidState
	}
	ok, err := s.States.Consume(ctx, state)
	if err != nil {
		return nil, fmt.Errorf("failed to check oauth state: %w", err)
	}
	if !ok {
		return nil, ErrInvalidState
	}

	tok, err := s.Identity.Exchange(ctx, code)
	if err != nil {
		return nil, err
	}
	profile, err := s.Identity.Profile(ctx, tok)
	if err != nil {
		return nil, err
	}

	usr, err := s.Users.SignIn(ctx, profile, tok.RefreshToken)
	if err != nil {
		return nil, err
	}

	token, err := utils.GenerateToken(s.JWTSecret, usr.ID.Hex(), usr.Email, s.SessionTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to issue session token: %w", err)
	}
	if err := s.Sessions.Remember(ctx, utils.HashToken(token), usr.ID.Hex(), utils.AuthCacheTTL); err != nil {
		utils.GetLogger().Warn("Failed to cache session", zap.String("email", usr.Email), zap.Error(err))
	}

	return &LoginResult{
		Token:     token,
		ExpiresAt: time.Now().Add(s.SessionTTL).UTC(),
		User:      usr,
	}, nil
}

// Authenticate verifies a session token. A cached token skips the user lookup.
func (s *DefaultAuthService) Authenticate(ctx context.Context, token string) (*utils.SessionClaims, error) {
	logger := utils.GetLogger()

	claims, err := utils.ValidateToken(s.JWTSecret, token)
	if err != nil {
		return nil, ErrInvalidSession
	}
	hash := utils.HashToken(token)

	revoked, err := s.Sessions.IsRevoked(ctx, hash)
	if err != nil {
		return nil, fmt.Errorf("failed to check revocation: %w", err)
	}
	if revoked {
		return nil, ErrInvalidSession
	}

	cachedID, err := s.Sessions.Lookup(ctx, hash, utils.AuthCacheTTL)
	if err != nil {
		logger.Warn("Auth cache lookup failed", zap.String("email", claims.Email), zap.Error(err))
	}
	if cachedID == claims.Subject {
		return claims, nil
	}

	if _, err := s.Users.GetUserByID(ctx, claims.Subject); err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, ErrInvalidSession
		}
		return nil, err
	}
	if err := s.Sessions.Remember(ctx, hash, claims.Subject, utils.AuthCacheTTL); err != nil {
		logger.Warn("Failed to cache session", zap.String("email", claims.Email), zap.Error(err))
	}
	return claims, nil
}

// Logout revokes token until it would have expired.
func (s *DefaultAuthService) Logout(ctx context.Context, token string) error {
	claims, err := utils.ValidateToken(s.JWTSecret, token)
	if err != nil {
		// Nothing to revoke.
		return nil
	}
	hash := utils.HashToken(token)
	if err := s.Sessions.Revoke(ctx, hash, time.Until(claims.ExpiresAtTime())); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	if err := s.Sessions.Forget(ctx, hash); err != nil {
		utils.GetLogger().Warn("Failed to drop cached session", zap.Error(err))
	}
	return nil
}

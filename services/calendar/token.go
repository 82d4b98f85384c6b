package calendar

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
)

// TokenDecrypter decrypts refresh tokens stored at rest.
type TokenDecrypter interface {
	DecryptToken(ciphertext string) (string, error)
}

// UserToken decrypts a stored refresh token and exchanges it for an access token.
func UserToken(ctx context.Context, c Client, dec TokenDecrypter, encrypted string) (*oauth2.Token, error) {
	if encrypted == "" {
		return nil, fmt.Errorf("no refresh token stored")
	}
	refresh, err := dec.DecryptToken(encrypted)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt refresh token: %w", err)
	}
	return c.RefreshAccessToken(ctx, refresh)
}

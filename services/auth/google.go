package auth

import (
	"context"
	"fmt"

	"checkfree/models"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gcal "google.golang.org/api/calendar/v3"
	goauth2 "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
)

// Scopes requested at sign-in. Calendar access is needed offline, on behalf
// of sellers who are not present when a buyer books.
var Scopes = []string{
	goauth2.OpenIDScope,
	goauth2.UserinfoEmailScope,
	goauth2.UserinfoProfileScope,
	gcal.CalendarEventsScope,
	gcal.CalendarReadonlyScope,
}

// NewOAuthConfig builds the Google OAuth client configuration.
func NewOAuthConfig(clientID, clientSecret, redirectURL string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		Endpoint:     google.Endpoint,
		Scopes:       Scopes,
	}
}

// IdentityProvider runs the authorization-code flow against Google.
type IdentityProvider interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (*oauth2.Token, error)
	Profile(ctx context.Context, token *oauth2.Token) (models.GoogleProfile, error)
}

// GoogleIdentity implements IdentityProvider.
type GoogleIdentity struct {
	Config *oauth2.Config
	// Options are added to the userinfo client (e.g. a custom endpoint).
	Options []option.ClientOption
}

// AuthCodeURL returns the consent page URL. prompt=consent makes Google
// issue a refresh token on every sign-in.
func (g *GoogleIdentity) AuthCodeURL(state string) string {
	return g.Config.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
	)
}

func (g *GoogleIdentity) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	tok, err := g.Config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}
	return tok, nil
}

func (g *GoogleIdentity) Profile(ctx context.Context, token *oauth2.Token) (models.GoogleProfile, error) {
	opts := append([]option.ClientOption{option.WithTokenSource(oauth2.StaticTokenSource(token))}, g.Options...)
	svc, err := goauth2.NewService(ctx, opts...)
	if err != nil {
		return models.GoogleProfile{}, fmt.Errorf("failed to create userinfo client: %w", err)
	}
	info, err := svc.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		return models.GoogleProfile{}, fmt.Errorf("failed to fetch google profile: %w", err)
	}
	return models.GoogleProfile{
		ID:      info.Id,
		Email:   info.Email,
		Name:    info.Name,
		Picture: info.Picture,
	}, nil
}

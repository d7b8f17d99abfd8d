package config

import (
	"context"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// GoogleOAuth bundles the OAuth2 client config and the ID token verifier.
type GoogleOAuth struct {
	Config   *oauth2.Config
	Verifier *oidc.IDTokenVerifier
}

// NewGoogleOAuth discovers Google's OIDC provider. It returns nil, nil when
// Google sign-in is not configured.
func NewGoogleOAuth(ctx context.Context, cfg GoogleConfig) (*GoogleOAuth, error) {
	if !cfg.Enabled() {
		return nil, nil
	}

	provider, err := oidc.NewProvider(ctx, "https://accounts.google.com")
	if err != nil {
		return nil, fmt.Errorf("failed to create OIDC provider: %w", err)
	}

	return &GoogleOAuth{
		Config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{oidc.ScopeOpenID, "email", "profile"},
			Endpoint:     google.Endpoint,
		},
		Verifier: provider.Verifier(&oidc.Config{ClientID: cfg.ClientID}),
	}, nil
}

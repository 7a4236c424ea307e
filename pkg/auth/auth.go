// Package auth builds the credential-bearing *http.Client used for API requests.
//
// Signing and token refresh are delegated to golang.org/x/oauth2 and dghubble/oauth1.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/dghubble/oauth1"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/Bynder/bynder-go-sdk/pkg/configs"
)

// ErrUnsupportedMode is returned for an unknown auth mode.
var ErrUnsupportedMode = errors.New("auth: unsupported mode")

// NewHTTPClient returns a client authenticating requests according to cfg.AuthMode.
// base supplies the transport and timeout; nil means http.DefaultClient.
// Token fetches keep the values of ctx but not its cancellation: the client outlives the call.
func NewHTTPClient(ctx context.Context, cfg configs.APIConfig, base *http.Client) (*http.Client, error) {
	if base == nil {
		base = http.DefaultClient
	}

	ctx = context.WithoutCancel(ctx)

	var client *http.Client

	switch cfg.AuthMode {
	case configs.AuthPermanentToken, "":
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.PermanentToken, TokenType: "Bearer"})
		client = oauth2.NewClient(context.WithValue(ctx, oauth2.HTTPClient, base), ts)
	case configs.AuthClientCredentials:
		cc := clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     cfg.GetTokenURL(),
			Scopes:       cfg.GetScopes(),
		}
		client = cc.Client(context.WithValue(ctx, oauth2.HTTPClient, base))
	case configs.AuthRefreshToken:
		ts := OAuth2Config(cfg).TokenSource(
			context.WithValue(ctx, oauth2.HTTPClient, base),
			&oauth2.Token{RefreshToken: cfg.RefreshToken},
		)
		client = oauth2.NewClient(context.WithValue(ctx, oauth2.HTTPClient, base), oauth2.ReuseTokenSource(nil, ts))
	case configs.AuthOAuth1:
		oc := oauth1.NewConfig(cfg.ConsumerKey, cfg.ConsumerSecret)
		client = oc.Client(context.WithValue(ctx, oauth1.HTTPClient, base), oauth1.NewToken(cfg.Token, cfg.TokenSecret))
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedMode, cfg.AuthMode)
	}

	client.Timeout = base.Timeout

	return client, nil
}

// OAuth2Config returns the authorization code flow configuration of the account.
func OAuth2Config(cfg configs.APIConfig) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint: oauth2.Endpoint{
			AuthURL:   cfg.GetAuthURL(),
			TokenURL:  cfg.GetTokenURL(),
			AuthStyle: oauth2.AuthStyleInParams,
		},
		Scopes: cfg.GetScopes(),
	}
}

// AuthCodeURL returns the URL the user visits to grant access.
func AuthCodeURL(cfg configs.APIConfig, redirectURL, state string) string {
	oc := OAuth2Config(cfg)
	oc.RedirectURL = redirectURL

	return oc.AuthCodeURL(state)
}

// Exchange trades an authorization code for a token; its RefreshToken feeds the refresh_token mode.
func Exchange(ctx context.Context, cfg configs.APIConfig, redirectURL, code string) (*oauth2.Token, error) {
	oc := OAuth2Config(cfg)
	oc.RedirectURL = redirectURL

	tok, err := oc.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}

	return tok, nil
}

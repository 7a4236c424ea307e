package configs

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

// AuthMode selects how requests to the API are authenticated.
type AuthMode string

const (
	// AuthPermanentToken sends a long-lived token as a bearer token.
	AuthPermanentToken AuthMode = "permanent_token"
	// AuthClientCredentials uses the OAuth2 client credentials grant.
	AuthClientCredentials AuthMode = "client_credentials"
	// AuthRefreshToken uses OAuth2 with a previously obtained refresh token.
	AuthRefreshToken AuthMode = "refresh_token"
	// AuthOAuth1 signs requests with OAuth1 consumer and token credentials.
	AuthOAuth1 AuthMode = "oauth1"
)

const (
	DefaultAuthMode  = AuthPermanentToken              // default authentication
	DefaultTokenPath = "/v6/authentication/oauth2/token" // OAuth2 token endpoint
	DefaultAuthPath  = "/v6/authentication/oauth2/auth"  // OAuth2 authorization endpoint
)

// DefaultScopes are requested by the OAuth2 grants when none are configured.
var DefaultScopes = []string{
	"offline",
	"asset:read", "asset:write",
	"collection:read", "collection:write",
	"meta.assetbank:read", "meta.assetbank:write",
}

// errMissingCredentials is wrapped by Validate for mode specific checks.
var errMissingCredentials = errors.New("missing credentials")

type (
	// APIConfig account URL and credentials.
	APIConfig struct {
		BaseURL  string   `mapstructure:"base_url"  rule:"required,url"`
		AuthMode AuthMode `mapstructure:"auth_mode" rule:"oneof=permanent_token client_credentials refresh_token oauth1"`

		PermanentToken string `mapstructure:"permanent_token" json:"-" rule:"required_if=AuthMode permanent_token"`

		// OAuth2
		ClientID     string   `mapstructure:"client_id"`
		ClientSecret string   `mapstructure:"client_secret" json:"-"`
		RefreshToken string   `mapstructure:"refresh_token" json:"-" rule:"required_if=AuthMode refresh_token"`
		Scopes       []string `mapstructure:"scopes"`
		TokenPath    string   `mapstructure:"token_path"`
		AuthPath     string   `mapstructure:"auth_path"`

		// OAuth1
		ConsumerKey    string `mapstructure:"consumer_key"    rule:"required_if=AuthMode oauth1"`
		ConsumerSecret string `mapstructure:"consumer_secret" json:"-" rule:"required_if=AuthMode oauth1"`
		Token          string `mapstructure:"token"           rule:"required_if=AuthMode oauth1"`
		TokenSecret    string `mapstructure:"token_secret"    json:"-" rule:"required_if=AuthMode oauth1"`
	}
)

// GetBaseURL returns the base URL without a trailing slash.
func (c *APIConfig) GetBaseURL() string {
	return strings.TrimRight(c.BaseURL, "/")
}

// GetTokenURL returns the absolute OAuth2 token endpoint.
func (c *APIConfig) GetTokenURL() string {
	return c.GetBaseURL() + c.TokenPath
}

// GetAuthURL returns the absolute OAuth2 authorization endpoint.
func (c *APIConfig) GetAuthURL() string {
	return c.GetBaseURL() + c.AuthPath
}

// GetScopes returns the configured scopes or DefaultScopes.
func (c *APIConfig) GetScopes() []string {
	if len(c.Scopes) == 0 {
		return DefaultScopes
	}

	return c.Scopes
}

// Validate checks the credentials the struct tags cannot express: the OAuth2 client
// is needed by two modes.
func (c *APIConfig) Validate() error {
	switch c.AuthMode {
	case AuthClientCredentials, AuthRefreshToken:
		if c.ClientID == "" || c.ClientSecret == "" {
			return errors.Join(errMissingCredentials,
				errors.New("client_id and client_secret are required for "+string(c.AuthMode)))
		}
	}

	return nil
}

// setDefaults sets the API defaults. Empty keys are registered so BYNDER_API_* overrides work.
func (c *APIConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", "")
	v.SetDefault("api.auth_mode", string(DefaultAuthMode))
	v.SetDefault("api.permanent_token", "")
	v.SetDefault("api.client_id", "")
	v.SetDefault("api.client_secret", "")
	v.SetDefault("api.refresh_token", "")
	v.SetDefault("api.scopes", []string{})
	v.SetDefault("api.token_path", DefaultTokenPath)
	v.SetDefault("api.auth_path", DefaultAuthPath)
	v.SetDefault("api.consumer_key", "")
	v.SetDefault("api.consumer_secret", "")
	v.SetDefault("api.token", "")
	v.SetDefault("api.token_secret", "")
}

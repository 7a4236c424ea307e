package auth_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bynder/bynder-go-sdk/pkg/auth"
	"github.com/Bynder/bynder-go-sdk/pkg/configs"
)

func TestNewHTTPClient_PermanentToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
	}))
	defer srv.Close()

	client, err := auth.NewHTTPClient(context.Background(), configs.APIConfig{
		BaseURL:        srv.URL,
		AuthMode:       configs.AuthPermanentToken,
		PermanentToken: "secret",
	}, srv.Client())
	require.NoError(t, err)

	resp, err := client.Get(srv.URL + "/api/v4/brands/")
	require.NoError(t, err)
	resp.Body.Close()
}

func TestNewHTTPClient_ClientCredentials(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc(configs.DefaultTokenPath, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		form, _ := url.ParseQuery(string(body))

		assert.Equal(t, "client_credentials", form.Get("grant_type"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"access_token":"issued","token_type":"bearer","expires_in":3600}`)
	})
	mux.HandleFunc("/api/v4/brands/", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer issued", r.Header.Get("Authorization"))
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	client, err := auth.NewHTTPClient(context.Background(), configs.APIConfig{
		BaseURL:      srv.URL,
		AuthMode:     configs.AuthClientCredentials,
		ClientID:     "id",
		ClientSecret: "secret",
		TokenPath:    configs.DefaultTokenPath,
	}, srv.Client())
	require.NoError(t, err)

	resp, err := client.Get(srv.URL + "/api/v4/brands/")
	require.NoError(t, err)
	resp.Body.Close()
}

func TestNewHTTPClient_OutlivesContext(t *testing.T) {
	// Arrange
	mux := http.NewServeMux()
	mux.HandleFunc(configs.DefaultTokenPath, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"access_token":"late","token_type":"bearer","expires_in":3600}`)
	})
	mux.HandleFunc("/api/v4/brands/", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer late", r.Header.Get("Authorization"))
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())

	client, err := auth.NewHTTPClient(ctx, configs.APIConfig{
		BaseURL:      srv.URL,
		AuthMode:     configs.AuthRefreshToken,
		ClientID:     "id",
		ClientSecret: "secret",
		RefreshToken: "refresh",
		TokenPath:    configs.DefaultTokenPath,
	}, srv.Client())
	require.NoError(t, err)

	// Act
	cancel()
	resp, err := client.Get(srv.URL + "/api/v4/brands/")

	// Assert
	require.NoError(t, err)
	resp.Body.Close()
}

func TestNewHTTPClient_OAuth1(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := r.Header.Get("Authorization")
		assert.True(t, strings.HasPrefix(h, "OAuth "), h)
		assert.Contains(t, h, `oauth_consumer_key="ck"`)
		assert.Contains(t, h, `oauth_token="tk"`)
	}))
	defer srv.Close()

	client, err := auth.NewHTTPClient(context.Background(), configs.APIConfig{
		AuthMode:       configs.AuthOAuth1,
		ConsumerKey:    "ck",
		ConsumerSecret: "cs",
		Token:          "tk",
		TokenSecret:    "ts",
	}, srv.Client())
	require.NoError(t, err)

	resp, err := client.Get(srv.URL + "/api/v4/media/")
	require.NoError(t, err)
	resp.Body.Close()
}

func TestNewHTTPClient_UnknownMode(t *testing.T) {
	_, err := auth.NewHTTPClient(context.Background(), configs.APIConfig{AuthMode: "basic"}, nil)
	require.ErrorIs(t, err, auth.ErrUnsupportedMode)
}

func TestAuthCodeURL(t *testing.T) {
	u, err := url.Parse(auth.AuthCodeURL(configs.APIConfig{
		BaseURL:  "https://example.bynder.com/",
		ClientID: "id",
		AuthPath: configs.DefaultAuthPath,
		Scopes:   []string{"asset:read"},
	}, "https://app.example.com/cb", "xyz"))
	require.NoError(t, err)

	assert.Equal(t, "example.bynder.com", u.Host)
	assert.Equal(t, configs.DefaultAuthPath, u.Path)
	assert.Equal(t, "id", u.Query().Get("client_id"))
	assert.Equal(t, "xyz", u.Query().Get("state"))
	assert.Equal(t, "asset:read", u.Query().Get("scope"))
}

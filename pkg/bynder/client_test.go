package bynder_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bynder/bynder-go-sdk/pkg/bynder"
	"github.com/Bynder/bynder-go-sdk/pkg/configs"
)

func validConfig(baseURL string) configs.AppConfig {
	cfg := configs.Defaults()
	cfg.API.BaseURL = baseURL
	cfg.API.PermanentToken = "token"

	return cfg
}

func TestNew_InvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*configs.AppConfig)
		want   string
	}{
		{
			name:   "missing base url",
			mutate: func(c *configs.AppConfig) { c.API.BaseURL = "" },
			want:   "base_url",
		},
		{
			name:   "missing permanent token",
			mutate: func(c *configs.AppConfig) { c.API.PermanentToken = "" },
			want:   "permanent_token",
		},
		{
			name: "client credentials without secret",
			mutate: func(c *configs.AppConfig) {
				c.API.AuthMode = configs.AuthClientCredentials
				c.API.ClientID = "id"
			},
			want: "client_secret",
		},
		{
			name: "oauth1 without token",
			mutate: func(c *configs.AppConfig) {
				c.API.AuthMode = configs.AuthOAuth1
				c.API.ConsumerKey = "ck"
				c.API.ConsumerSecret = "cs"
			},
			want: "token",
		},
		{
			name:   "unknown protocol",
			mutate: func(c *configs.AppConfig) { c.Upload.Protocol = "ftp" },
			want:   "protocol",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig("https://example.bynder.com")
			tt.mutate(&cfg)

			_, err := bynder.New(context.Background(), cfg)

			require.ErrorIs(t, err, bynder.ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestNew_GetBrands(t *testing.T) {
	// Arrange
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v4/brands/", r.URL.Path)
		assert.Equal(t, "Bearer token", r.Header.Get("Authorization"))
		assert.True(t, strings.HasPrefix(r.Header.Get("User-Agent"), "bynder-go-sdk/"))

		_, _ = io.WriteString(w, `[{"id":"b1","name":"Main"}]`)
	}))
	defer srv.Close()

	client, err := bynder.New(context.Background(), validConfig(srv.URL), bynder.WithHTTPClient(srv.Client()))
	require.NoError(t, err)

	// Act
	brands, err := client.Assets.GetBrands(context.Background())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Main", brands[0].Name)
	assert.NotNil(t, client.Collections)
	assert.NotNil(t, client.Upload)
	assert.Equal(t, srv.URL, client.Config().API.BaseURL)
}

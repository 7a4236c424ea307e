package configs_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Bynder/bynder-go-sdk/pkg/configs"
)

// TestDefaults checks the default upload tuning.
func TestDefaults(t *testing.T) {
	cfg := configs.Defaults()

	if cfg.Upload.ChunkSize != configs.DefaultChunkSize {
		t.Errorf("chunk size: expected %d, got %d", configs.DefaultChunkSize, cfg.Upload.ChunkSize)
	}

	if cfg.Upload.PollMaxIterations != 60 {
		t.Errorf("poll iterations: expected 60, got %d", cfg.Upload.PollMaxIterations)
	}

	if cfg.Upload.GetPollInterval() != 2*time.Second {
		t.Errorf("poll interval: expected 2s, got %s", cfg.Upload.GetPollInterval())
	}

	if cfg.Upload.Protocol != configs.ProtocolLegacy {
		t.Errorf("protocol: expected legacy, got %s", cfg.Upload.Protocol)
	}

	if cfg.API.AuthMode != configs.AuthPermanentToken {
		t.Errorf("auth mode: expected permanent_token, got %s", cfg.API.AuthMode)
	}
}

// TestInitConfig_File checks loading a YAML file.
func TestInitConfig_File(t *testing.T) {
	dir := t.TempDir()
	content := []byte(`api:
  base_url: https://example.bynder.com/
  permanent_token: secret
upload:
  protocol: v7
  chunk_size: 1024
  poll_interval: 250ms
`)

	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), content, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if err := configs.InitConfig(dir); err != nil {
		t.Fatalf("init config: %v", err)
	}

	cfg := configs.GetConfig()

	if cfg.API.GetBaseURL() != "https://example.bynder.com" {
		t.Errorf("base url: got %q", cfg.API.GetBaseURL())
	}

	if cfg.Upload.Protocol != configs.ProtocolV7 || cfg.Upload.ChunkSize != 1024 {
		t.Errorf("upload: got %+v", cfg.Upload)
	}

	if cfg.Upload.PollInterval != 250*time.Millisecond {
		t.Errorf("poll interval: got %s", cfg.Upload.PollInterval)
	}

	if cfg.API.GetTokenURL() != "https://example.bynder.com/v6/authentication/oauth2/token" {
		t.Errorf("token url: got %q", cfg.API.GetTokenURL())
	}
}

// TestInitConfig_Env checks BYNDER_* overrides without a config file.
func TestInitConfig_Env(t *testing.T) {
	t.Setenv("BYNDER_API_BASE_URL", "https://env.bynder.com")
	t.Setenv("BYNDER_UPLOAD_CHUNK_SIZE", "2048")

	if err := configs.InitConfig(t.TempDir()); err != nil {
		t.Fatalf("init config: %v", err)
	}

	cfg := configs.GetConfig()

	if cfg.API.BaseURL != "https://env.bynder.com" {
		t.Errorf("base url: got %q", cfg.API.BaseURL)
	}

	if cfg.Upload.ChunkSize != 2048 {
		t.Errorf("chunk size: got %d", cfg.Upload.ChunkSize)
	}
}

// TestAPIConfig_Validate checks the OAuth2 client requirement.
func TestAPIConfig_Validate(t *testing.T) {
	c := configs.APIConfig{AuthMode: configs.AuthClientCredentials, ClientID: "id"}
	if err := c.Validate(); err == nil {
		t.Error("expected error without client secret")
	}

	c.ClientSecret = "secret"
	if err := c.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	if got := c.GetScopes(); len(got) != len(configs.DefaultScopes) {
		t.Errorf("expected default scopes, got %v", got)
	}
}

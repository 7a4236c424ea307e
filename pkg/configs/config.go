// Package configs manages the SDK and CLI configuration: API credentials, upload tuning,
// HTTP client behaviour, logging, tracing and metrics.
// configs supports several formats (YAML, JSON, TOML, dotenv), BYNDER_* environment
// overrides and optional hot reload.
//
// Example:
//
//	err := configs.InitConfig("./")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	config := configs.GetConfig()
//	fmt.Println(config.API.BaseURL)
//
// Example accessing upload config:
//
//	upload := configs.GetConfig().Upload
//	fmt.Println(upload.ChunkSize, upload.GetPollInterval())
//
// Example building a config in code, without any file:
//
//	cfg := configs.Defaults()
//	cfg.API.BaseURL = "https://example.bynder.com"
//	cfg.API.PermanentToken = token
package configs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. BYNDER_API_BASE_URL.
const EnvPrefix = "BYNDER"

type (
	// AppConfig global configuration.
	AppConfig struct {
		API     APIConfig     `mapstructure:"api"`     // APIConfig account URL and credentials
		Upload  UploadConfig  `mapstructure:"upload"`  // UploadConfig chunking and polling
		HTTP    HTTPConfig    `mapstructure:"http"`    // HTTPConfig timeouts, rate limit, circuit breaker
		Log     LogConfig     `mapstructure:"log"`     // LogConfig logging
		Tracing TracingConfig `mapstructure:"tracing"` // TracingConfig OpenTelemetry export
		Metrics MetricsConfig `mapstructure:"metrics"` // MetricsConfig Prometheus export
	}
)

var (
	// globalConfig global configuration instance.
	globalConfig = Defaults()
	// appViper global Viper instance.
	appViper *viper.Viper
)

// InitConfig loads the configuration from path (a file or a directory) and the environment.
// A missing config file is not an error: defaults and BYNDER_* variables are used instead.
func InitConfig(path string) error {
	appViper = newViper()

	if path != "" {
		// a file: let viper detect the type from the extension
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			appViper.SetConfigFile(path)
		} else {
			appViper.SetConfigName("config")
			appViper.AddConfigPath(path)
			appViper.AddConfigPath(filepath.Join(path, "configs"))

			exts := []string{"yaml", "yml", "json", "toml", "env", "dotenv"}

			for _, ext := range exts {
				cfg := filepath.Join(path, "config."+ext)
				if _, err := os.Stat(cfg); err == nil {
					appViper.SetConfigFile(cfg)

					break
				}
			}
		}

		if err := appViper.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	var cfg AppConfig
	if err := appViper.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	globalConfig = cfg

	reloadConfigs(appViper, cfg.Log.ReloadConfig)

	return nil
}

// Defaults returns a configuration holding only default values.
func Defaults() AppConfig {
	v := newViper()

	var cfg AppConfig
	_ = v.Unmarshal(&cfg)

	return cfg
}

func newViper() *viper.Viper {
	v := viper.New()
	setAllDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// setAllDefaults sets the defaults of every section.
func setAllDefaults(v *viper.Viper) {
	var apiConfig APIConfig

	var uploadConfig UploadConfig

	var httpConfig HTTPConfig

	var logConfig LogConfig

	var tracingConfig TracingConfig

	var metricsConfig MetricsConfig

	apiConfig.setDefaults(v)
	uploadConfig.setDefaults(v)
	httpConfig.setDefaults(v)
	logConfig.setDefaults(v)
	tracingConfig.setDefaults(v)
	metricsConfig.setDefaults(v)
}

func reloadConfigs(v *viper.Viper, isHotReload bool) {
	if !isHotReload || v.ConfigFileUsed() == "" {
		return
	}
	// watch the config file and re-read it on change
	v.OnConfigChange(func(e fsnotify.Event) {
		fmt.Fprintln(os.Stderr, "Config file changed:", e.Name)

		var cfg AppConfig
		if err := v.Unmarshal(&cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error reloading config: %v\n", err)

			return
		}

		globalConfig = cfg
	})
	v.WatchConfig()
}

// GetConfig returns the global configuration.
func GetConfig() *AppConfig {
	return &globalConfig
}

// GetViper returns the global Viper instance, nil before InitConfig.
func GetViper() *viper.Viper {
	return appViper
}

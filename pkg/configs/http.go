package configs

import (
	"time"

	"github.com/spf13/viper"
)

const (
	DefaultHTTPTimeout = 60 * time.Second // per request timeout
	DefaultUserAgent   = "bynder-go-sdk/" + AppVersion
)

type (
	// HTTPConfig HTTP client behaviour.
	HTTPConfig struct {
		Timeout        time.Duration        `mapstructure:"timeout"`
		UserAgent      string               `mapstructure:"user_agent"`
		RateLimit      RateLimitConfig      `mapstructure:"rate_limit"`
		CircuitBreaker CircuitBreakerConfig `mapstructure:"circuit_breaker"`
	}
)

// GetTimeout returns the request timeout, the default when unset.
func (c *HTTPConfig) GetTimeout() time.Duration {
	if c.Timeout <= 0 {
		return DefaultHTTPTimeout
	}

	return c.Timeout
}

func (c *HTTPConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("http.timeout", DefaultHTTPTimeout)
	v.SetDefault("http.user_agent", DefaultUserAgent)

	c.RateLimit.setDefaults(v)
	c.CircuitBreaker.setDefaults(v)
}

package configs

import (
	"time"

	"github.com/spf13/viper"
)

const (
	DefaultBreakerEnabled          = false
	DefaultBreakerFailureRatio     = 0.5              // ratio of 5xx or network failures that opens the breaker
	DefaultBreakerMinRequests      = 20               // requests counted before the ratio applies
	DefaultBreakerWindow           = time.Minute      // counting window while closed
	DefaultBreakerCooldown         = 30 * time.Second // open duration before probing again
	DefaultBreakerHalfOpenRequests = 5                // probes allowed while half-open
)

// CircuitBreakerConfig stops calling the API after repeated server side failures.
// Storage uploads are never guarded.
type CircuitBreakerConfig struct {
	Enabled          bool          `mapstructure:"enabled"`
	FailureRatio     float64       `mapstructure:"failure_ratio"      rule:"min=0,max=1"`
	MinRequests      uint32        `mapstructure:"min_requests"`
	Window           time.Duration `mapstructure:"window"`
	Cooldown         time.Duration `mapstructure:"cooldown"`
	HalfOpenRequests uint32        `mapstructure:"half_open_requests"`
}

func (c *CircuitBreakerConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("http.circuit_breaker.enabled", DefaultBreakerEnabled)
	v.SetDefault("http.circuit_breaker.failure_ratio", DefaultBreakerFailureRatio)
	v.SetDefault("http.circuit_breaker.min_requests", DefaultBreakerMinRequests)
	v.SetDefault("http.circuit_breaker.window", DefaultBreakerWindow)
	v.SetDefault("http.circuit_breaker.cooldown", DefaultBreakerCooldown)
	v.SetDefault("http.circuit_breaker.half_open_requests", DefaultBreakerHalfOpenRequests)
}

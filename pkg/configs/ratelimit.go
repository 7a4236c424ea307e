package configs

import "github.com/spf13/viper"

// The API allows roughly 4500 requests per 5 minutes per account.
const (
	DefaultRateLimitEnabled = true
	DefaultRateLimitRPS     = 15.0
	DefaultRateLimitBurst   = 15
)

// RateLimitConfig throttles API calls on the client. Burst 0 falls back to 1.
type RateLimitConfig struct {
	Enabled bool    `mapstructure:"enabled"`
	RPS     float64 `mapstructure:"rps"   rule:"min=0"`
	Burst   int     `mapstructure:"burst" rule:"min=0"`
}

func (c *RateLimitConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("http.rate_limit.enabled", DefaultRateLimitEnabled)
	v.SetDefault("http.rate_limit.rps", DefaultRateLimitRPS)
	v.SetDefault("http.rate_limit.burst", DefaultRateLimitBurst)
}

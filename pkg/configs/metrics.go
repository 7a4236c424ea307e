package configs

import (
	"github.com/spf13/viper"
)

// MetricsConfig Prometheus metrics.
//
//	metricsConfig := configs.GetConfig().Metrics
//	if metricsConfig.Enabled {
//		// register collectors, serve /metrics on Endpoint
//	}
type MetricsConfig struct {
	Enabled        bool   `mapstructure:"enabled"`         // register collectors
	Endpoint       string `mapstructure:"endpoint"`        // listen address of the scrape server, empty to disable
	Pprof          bool   `mapstructure:"pprof"`           // also serve /debug/pprof on Endpoint
	RuntimeMetrics bool   `mapstructure:"runtime_metrics"` // Go runtime and process collectors
}

// setDefaults sets the metrics defaults.
func (c *MetricsConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.endpoint", "")
	v.SetDefault("metrics.pprof", false)
	v.SetDefault("metrics.runtime_metrics", false)
}

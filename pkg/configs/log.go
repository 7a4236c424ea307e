package configs

import (
	"github.com/spf13/viper"
)

const (
	DefaultLogEnableFile   = false             // write a log file besides stderr
	DefaultLogFilePath     = "logs/bynder.log" // log file path
	DefaultLogMaxSize      = 100               // max log file size (MB)
	DefaultLogMaxBackups   = 7                 // rotated files kept
	DefaultLogMaxAge       = 28                // days a rotated file is kept
	DefaultLogCompress     = true              // gzip rotated files
	DefaultLogLevel        = "info"            // log level
	DefaultLogDebug        = false             // add the caller to every event
	DefaultLogReloadConfig = false             // watch the config file for changes
)

type (
	// LogConfig logging.
	LogConfig struct {
		EnableFile   bool   `mapstructure:"enable_file"`
		FilePath     string `mapstructure:"file_path"`
		MaxSize      int    `mapstructure:"max_size_mb"`
		MaxBackups   int    `mapstructure:"max_backups"`
		MaxAge       int    `mapstructure:"max_age_days"`
		Compress     bool   `mapstructure:"compress"`
		Level        string `mapstructure:"level"         rule:"oneof=trace debug info warn error fatal panic disabled"`
		Debug        bool   `mapstructure:"debug"`
		ReloadConfig bool   `mapstructure:"reload_config"`
	}
)

func (l *LogConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("log.enable_file", DefaultLogEnableFile)
	v.SetDefault("log.file_path", DefaultLogFilePath)
	v.SetDefault("log.max_size_mb", DefaultLogMaxSize)
	v.SetDefault("log.max_backups", DefaultLogMaxBackups)
	v.SetDefault("log.max_age_days", DefaultLogMaxAge)
	v.SetDefault("log.compress", DefaultLogCompress)
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.debug", DefaultLogDebug)
	v.SetDefault("log.reload_config", DefaultLogReloadConfig)
}

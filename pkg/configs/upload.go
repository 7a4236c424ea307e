package configs

import (
	"time"

	"github.com/spf13/viper"
)

// UploadProtocol selects one of the two upload flows offered by the API.
type UploadProtocol string

const (
	// ProtocolLegacy uploads chunks to the storage backend and registers each one with the API.
	ProtocolLegacy UploadProtocol = "legacy"
	// ProtocolV7 sends chunks to the file_cmds endpoints with SHA-256 digests.
	ProtocolV7 UploadProtocol = "v7"
)

const (
	DefaultUploadProtocol     = ProtocolLegacy  // default upload flow
	DefaultChunkSize          = 5 * 1024 * 1024 // 5 MiB per chunk
	DefaultPollMaxIterations  = 60              // conversion status queries before giving up
	DefaultPollInterval       = 2 * time.Second // wait between two status queries
	DefaultUploadConcurrency  = 1               // chunks in flight (v7 only)
	maxSensibleChunkSizeBytes = 1024 * 1024 * 1024
)

type (
	// UploadConfig chunking and conversion polling.
	UploadConfig struct {
		Protocol          UploadProtocol `mapstructure:"protocol"            rule:"oneof=legacy v7"`
		ChunkSize         int            `mapstructure:"chunk_size"          rule:"min=1,max=1073741824"`
		PollMaxIterations int            `mapstructure:"poll_max_iterations" rule:"min=1"`
		PollInterval      time.Duration  `mapstructure:"poll_interval"`
		Concurrency       int            `mapstructure:"concurrency"         rule:"min=1,max=16"`
	}
)

// GetChunkSize returns the chunk size, falling back to the default for invalid values.
func (c *UploadConfig) GetChunkSize() int {
	if c.ChunkSize <= 0 || c.ChunkSize > maxSensibleChunkSizeBytes {
		return DefaultChunkSize
	}

	return c.ChunkSize
}

// GetPollInterval returns the wait between two conversion status queries, the default when unset.
func (c *UploadConfig) GetPollInterval() time.Duration {
	if c.PollInterval <= 0 {
		return DefaultPollInterval
	}

	return c.PollInterval
}

// setDefaults sets the upload defaults.
func (c *UploadConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("upload.protocol", string(DefaultUploadProtocol))
	v.SetDefault("upload.chunk_size", DefaultChunkSize)
	v.SetDefault("upload.poll_max_iterations", DefaultPollMaxIterations)
	v.SetDefault("upload.poll_interval", DefaultPollInterval)
	v.SetDefault("upload.concurrency", DefaultUploadConcurrency)
}

// Package log provides the zerolog logger of the SDK and the CLI, writing to stderr and
// optionally to a rotated file (lumberjack).
package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/natefinch/lumberjack"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Bynder/bynder-go-sdk/pkg/configs"
)

var (
	logger   zerolog.Logger
	initOnce sync.Once
)

// Init initializes the global logger from configs.GetConfig().Log.
func Init() {
	initOnce.Do(func() {
		logger = New(configs.GetConfig().Log, os.Stderr)
		log.Logger = logger
	})
}

// New builds a logger from cfg writing human readable lines to out.
func New(cfg configs.LogConfig, out io.Writer) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || cfg.Level == "" {
		if cfg.Level != "" {
			fmt.Fprintf(os.Stderr, "invalid log level %q, defaulting to info\n", cfg.Level)
		}

		lvl = zerolog.InfoLevel
	}

	var writers []io.Writer

	console := zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
		w.Out = out
		w.TimeFormat = time.Kitchen
	})
	writers = append(writers, console)

	if cfg.EnableFile {
		writers = append(writers, &lumberjack.Logger{
			Filename:   cfg.FilePath,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
		})
	}

	ctx := zerolog.New(io.MultiWriter(writers...)).Level(lvl).With()
	if cfg.Debug {
		ctx = ctx.Caller()
	}

	return ctx.Timestamp().Logger()
}

// Logger returns the global logger.
func Logger() *zerolog.Logger {
	Init()

	return &logger
}

// Nop returns a logger that discards everything, used when the caller brings none.
func Nop() *zerolog.Logger {
	l := zerolog.Nop()

	return &l
}

package log_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Bynder/bynder-go-sdk/pkg/configs"
	"github.com/Bynder/bynder-go-sdk/pkg/log"
)

// TestNew_Level checks that events below the configured level are dropped.
func TestNew_Level(t *testing.T) {
	var buf bytes.Buffer

	l := log.New(configs.LogConfig{Level: "warn"}, &buf)
	l.Info().Msg("hidden")
	l.Warn().Msg("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info event written at warn level: %q", out)
	}

	if !strings.Contains(out, "shown") {
		t.Errorf("warn event missing: %q", out)
	}
}

// TestNew_InvalidLevel checks the info fallback.
func TestNew_InvalidLevel(t *testing.T) {
	var buf bytes.Buffer

	l := log.New(configs.LogConfig{Level: "loud"}, &buf)
	l.Debug().Msg("debug")
	l.Info().Msg("info")

	out := buf.String()
	if strings.Contains(out, "debug") || !strings.Contains(out, "info") {
		t.Errorf("unexpected output: %q", out)
	}
}

// TestLogger checks the global logger is usable before Init.
func TestLogger(t *testing.T) {
	if log.Logger() == nil {
		t.Fatal("Logger() returned nil")
	}

	log.Nop().Info().Msg("discarded")
}

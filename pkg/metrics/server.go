package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/pprof"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Bynder/bynder-go-sdk/pkg/configs"
	"github.com/Bynder/bynder-go-sdk/pkg/log"
)

const shutdownTimeout = 5 * time.Second

// NewHandler returns the scrape engine: /metrics and, when enabled, /debug/pprof.
func NewHandler(config configs.MetricsConfig) http.Handler {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	engine.Use(gin.Recovery(), gzip.Gzip(gzip.DefaultCompression))

	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	if config.Pprof {
		dbg := engine.Group("/debug/pprof")
		dbg.GET("/", gin.WrapF(pprof.Index))
		dbg.GET("/cmdline", gin.WrapF(pprof.Cmdline))
		dbg.GET("/profile", gin.WrapF(pprof.Profile))
		dbg.GET("/symbol", gin.WrapF(pprof.Symbol))
		dbg.GET("/trace", gin.WrapF(pprof.Trace))
		dbg.GET("/:name", func(c *gin.Context) {
			pprof.Handler(c.Param("name")).ServeHTTP(c.Writer, c.Request)
		})
	}

	return engine
}

// StartMetricsServer serves NewHandler on config.Endpoint until ctx is done.
// It returns immediately when metrics are disabled or no endpoint is set.
func StartMetricsServer(ctx context.Context, config configs.MetricsConfig) error {
	if !config.Enabled || config.Endpoint == "" {
		return nil
	}

	srv := &http.Server{
		Addr:              config.Endpoint,
		Handler:           NewHandler(config),
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger := log.Logger()

	errCh := make(chan error, 1)

	go func() {
		logger.Info().Str("addr", config.Endpoint).Msg("metrics server listening")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}

		close(errCh)
	}()

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn().Err(err).Msg("metrics server shutdown")
		}
	}()

	// surface immediate bind errors
	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("metrics server: %w", err)
		}
	case <-time.After(100 * time.Millisecond):
	}

	return nil
}

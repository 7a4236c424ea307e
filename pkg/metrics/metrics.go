// Package metrics exposes Prometheus metrics of the API client and the upload pipeline.
//
// Example:
//
//	import "github.com/Bynder/bynder-go-sdk/pkg/metrics"
//
//	if err := metrics.InitMetrics(cfg.Metrics); err != nil {
//		log.Fatal(err)
//	}
//
//	metrics.UploadsTotal.WithLabelValues("legacy", "done").Inc()
package metrics

import (
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/Bynder/bynder-go-sdk/pkg/configs"
)

// Namespace prefixes every metric name.
const Namespace = "bynder"

// Request kinds.
const (
	KindAPI     = "api"
	KindStorage = "storage"
)

var (
	// RequestCounter requests sent, by kind, method and status code ("0" when no response).
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests sent",
		},
		[]string{"kind", "method", "status"},
	)

	// RequestDuration request latency by kind and method.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"kind", "method"},
	)

	// UploadsTotal finished uploads by protocol and result.
	UploadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "uploads_total",
			Help:      "Total number of uploads by result",
		},
		[]string{"protocol", "result"},
	)

	// ChunksTotal chunks transferred by protocol.
	ChunksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "upload_chunks_total",
			Help:      "Total number of chunks uploaded",
		},
		[]string{"protocol"},
	)

	// UploadedBytes payload bytes transferred by protocol.
	UploadedBytes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "upload_bytes_total",
			Help:      "Total number of payload bytes uploaded",
		},
		[]string{"protocol"},
	)

	// PollAttempts conversion status queries.
	PollAttempts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "upload_poll_attempts_total",
			Help:      "Total number of conversion status queries",
		},
	)

	// InFlightUploads uploads currently running.
	InFlightUploads = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "uploads_in_flight",
			Help:      "Number of uploads in progress",
		},
	)

	// registry Prometheus registry.
	registry = prometheus.NewRegistry()

	registerOnce sync.Once
)

// InitMetrics registers the collectors. Calling it more than once is a no-op.
func InitMetrics(config configs.MetricsConfig) error {
	if !config.Enabled {
		return nil
	}

	var err error

	registerOnce.Do(func() {
		cs := []prometheus.Collector{
			RequestCounter, RequestDuration,
			UploadsTotal, ChunksTotal, UploadedBytes,
			PollAttempts, InFlightUploads,
		}

		if config.RuntimeMetrics {
			cs = append(cs,
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)
		}

		for _, c := range cs {
			if rerr := registry.Register(c); rerr != nil {
				var already prometheus.AlreadyRegisteredError
				if !errors.As(rerr, &already) {
					err = rerr

					return
				}
			}
		}
	})

	return err
}

// ObserveRequest records one sent request. status is 0 when no response was received.
func ObserveRequest(kind, method string, status int, elapsed time.Duration) {
	RequestCounter.WithLabelValues(kind, method, strconv.Itoa(status)).Inc()
	RequestDuration.WithLabelValues(kind, method).Observe(elapsed.Seconds())
}

// GetRegistry returns the Prometheus registry.
func GetRegistry() *prometheus.Registry {
	return registry
}

// NewCounter creates and registers a counter vector.
func NewCounter(name, help string, labels []string) *prometheus.CounterVec {
	counter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      name,
			Help:      help,
		},
		labels,
	)
	registry.MustRegister(counter)

	return counter
}

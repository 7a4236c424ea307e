package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/Bynder/bynder-go-sdk/pkg/configs"
	"github.com/Bynder/bynder-go-sdk/pkg/log"
	"github.com/Bynder/bynder-go-sdk/pkg/metrics"
	"github.com/Bynder/bynder-go-sdk/pkg/tracing"
)

// HTTPSender is the Sender used by the client. API requests go through the
// authenticated client, the rate limiter and the circuit breaker; storage requests
// use a plain client.
type HTTPSender struct {
	baseURL   *url.URL
	api       *http.Client
	storage   *http.Client
	limiter   *rate.Limiter
	breaker   *gobreaker.CircuitBreaker
	userAgent string
	logger    *zerolog.Logger
}

// Option configures an HTTPSender.
type Option func(*HTTPSender)

// WithStorageClient sets the client used for External requests.
func WithStorageClient(c *http.Client) Option {
	return func(s *HTTPSender) { s.storage = c }
}

// WithLimiter throttles API requests. A nil limiter disables throttling.
func WithLimiter(l *rate.Limiter) Option {
	return func(s *HTTPSender) { s.limiter = l }
}

// WithBreaker guards API requests with cb. A nil breaker disables it.
func WithBreaker(cb *gobreaker.CircuitBreaker) Option {
	return func(s *HTTPSender) { s.breaker = cb }
}

// WithUserAgent sets the User-Agent header of every request.
func WithUserAgent(ua string) Option {
	return func(s *HTTPSender) { s.userAgent = ua }
}

// WithLogger sets the logger used for request debug events.
func WithLogger(l *zerolog.Logger) Option {
	return func(s *HTTPSender) { s.logger = l }
}

// NewHTTPSender creates a sender for the API at baseURL. api should carry the credentials.
func NewHTTPSender(baseURL string, api *http.Client, opts ...Option) (*HTTPSender, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}

	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("parse base url: %q is not absolute", baseURL)
	}

	if api == nil {
		api = http.DefaultClient
	}

	s := &HTTPSender{
		baseURL:   u,
		api:       api,
		storage:   &http.Client{Timeout: api.Timeout},
		userAgent: configs.DefaultUserAgent,
		logger:    log.Nop(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// NewLimiter builds the client side rate limiter, nil when disabled.
func NewLimiter(cfg configs.RateLimitConfig) *rate.Limiter {
	if !cfg.Enabled || cfg.RPS <= 0 {
		return nil
	}

	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}

	return rate.NewLimiter(rate.Limit(cfg.RPS), burst)
}

// NewBreaker builds the circuit breaker, nil when disabled.
// Only transport failures and 5xx responses count as failures.
func NewBreaker(cfg configs.CircuitBreakerConfig, logger *zerolog.Logger) *gobreaker.CircuitBreaker {
	if !cfg.Enabled {
		return nil
	}

	if logger == nil {
		logger = log.Nop()
	}

	settings := gobreaker.Settings{
		Name:        "bynder-api",
		MaxRequests: cfg.HalfOpenRequests,
		Interval:    cfg.Window,
		Timeout:     cfg.Cooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			total := counts.Requests
			if total < cfg.MinRequests {
				return false
			}

			ratio := float64(counts.TotalFailures) / float64(total)

			return ratio >= cfg.FailureRatio
		},
		IsSuccessful: func(err error) bool {
			// the caller gave up, not the server
			if err == nil || errors.Is(err, context.Canceled) {
				return true
			}

			var reqErr *RequestError
			if errors.As(err, &reqErr) {
				return reqErr.StatusCode != 0 && reqErr.StatusCode < http.StatusInternalServerError
			}

			return false
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).
				Msg("circuit breaker state changed")
		},
	}

	return gobreaker.NewCircuitBreaker(settings)
}

// Send implements Sender.
func (s *HTTPSender) Send(ctx context.Context, req *Request) (*Response, error) {
	target, err := s.resolve(req)
	if err != nil {
		return nil, err
	}

	if !req.External && s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, &RequestError{Method: req.Method, URL: target, Err: err}
		}
	}

	if req.External || s.breaker == nil {
		return s.do(ctx, req, target)
	}

	out, err := s.breaker.Execute(func() (any, error) {
		return s.do(ctx, req, target)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, &RequestError{Method: req.Method, URL: target, Err: err}
		}

		return nil, err
	}

	resp, _ := out.(*Response)

	return resp, nil
}

func (s *HTTPSender) do(ctx context.Context, req *Request, target string) (*Response, error) {
	kind, client := metrics.KindAPI, s.api
	if req.External {
		kind, client = metrics.KindStorage, s.storage
	}

	ctx, span := tracing.StartSpan(ctx, kind+" "+req.Method)

	resp, err := s.roundTrip(ctx, client, kind, req, target)

	tracing.EndSpan(span, err)

	return resp, err
}

func (s *HTTPSender) roundTrip(
	ctx context.Context, client *http.Client, kind string, req *Request, target string,
) (*Response, error) {
	body, contentType := req.Body, req.ContentType
	if body == nil && req.Form != nil {
		body, contentType = strings.NewReader(req.Form.Encode()), ContentTypeForm
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return nil, &RequestError{Method: req.Method, URL: target, Err: err}
	}

	for k, vs := range req.Header {
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}

	if contentType != "" && httpReq.Header.Get("Content-Type") == "" {
		httpReq.Header.Set("Content-Type", contentType)
	}

	if s.userAgent != "" {
		httpReq.Header.Set("User-Agent", s.userAgent)
	}

	start := time.Now()

	httpResp, err := client.Do(httpReq)
	if err != nil {
		metrics.ObserveRequest(kind, req.Method, 0, time.Since(start))
		s.logger.Debug().Err(err).Str("method", req.Method).Str("url", target).Msg("request failed")

		return nil, &RequestError{Method: req.Method, URL: target, Err: err}
	}
	defer httpResp.Body.Close()

	data, err := io.ReadAll(httpResp.Body)

	elapsed := time.Since(start)
	metrics.ObserveRequest(kind, req.Method, httpResp.StatusCode, elapsed)
	s.logger.Debug().
		Str("method", req.Method).
		Str("url", target).
		Int("status", httpResp.StatusCode).
		Dur("elapsed", elapsed).
		Msg("request sent")

	if err != nil {
		return nil, &RequestError{Method: req.Method, URL: target, StatusCode: httpResp.StatusCode, Err: err}
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		return nil, &RequestError{
			Method:     req.Method,
			URL:        target,
			StatusCode: httpResp.StatusCode,
			Body:       truncate(data),
		}
	}

	return &Response{StatusCode: httpResp.StatusCode, Header: httpResp.Header, Body: data}, nil
}

// resolve builds the absolute URL of req with its query appended.
func (s *HTTPSender) resolve(req *Request) (string, error) {
	var target string

	if req.External {
		target = req.Path
	} else {
		target = s.baseURL.String() + "/" + strings.TrimLeft(req.Path, "/")
	}

	u, err := url.Parse(target)
	if err != nil {
		return "", &RequestError{Method: req.Method, URL: target, Err: err}
	}

	if req.Query != nil && req.Query.Len() > 0 {
		if u.RawQuery == "" {
			u.RawQuery = req.Query.Encode()
		} else {
			u.RawQuery += "&" + req.Query.Encode()
		}
	}

	return u.String(), nil
}

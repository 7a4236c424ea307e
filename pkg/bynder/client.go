// Package bynder is the entry point of the SDK: it validates the configuration, builds the
// authenticated transport and exposes the asset, collection and upload services.
//
// Example:
//
//	cfg := configs.Defaults()
//	cfg.API.BaseURL = "https://example.bynder.com"
//	cfg.API.PermanentToken = os.Getenv("BYNDER_TOKEN")
//
//	client, err := bynder.New(ctx, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	res, err := client.Upload.Upload(ctx, &upload.Request{FilePath: "logo.png", BrandID: brandID})
package bynder

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/Bynder/bynder-go-sdk/pkg/asset"
	"github.com/Bynder/bynder-go-sdk/pkg/auth"
	"github.com/Bynder/bynder-go-sdk/pkg/collection"
	"github.com/Bynder/bynder-go-sdk/pkg/configs"
	"github.com/Bynder/bynder-go-sdk/pkg/log"
	"github.com/Bynder/bynder-go-sdk/pkg/rule"
	"github.com/Bynder/bynder-go-sdk/pkg/transport"
	"github.com/Bynder/bynder-go-sdk/pkg/upload"
)

// ErrInvalidConfig is returned by New when the configuration cannot work.
var ErrInvalidConfig = errors.New("bynder: invalid configuration")

// Client groups the services of one account.
type Client struct {
	Assets      *asset.Service
	Collections *collection.Service
	Upload      *upload.Uploader

	sender transport.Sender
	config configs.AppConfig
}

type options struct {
	httpClient *http.Client
	sender     transport.Sender
	logger     *zerolog.Logger
}

// Option configures New.
type Option func(*options)

// WithHTTPClient sets the base client wrapped by the authentication layer.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

// WithSender replaces the whole transport, authentication included.
func WithSender(s transport.Sender) Option {
	return func(o *options) { o.sender = s }
}

// WithLogger sets the logger of the transport and the uploader.
func WithLogger(l *zerolog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// New validates cfg and builds a Client. Configuration errors match ErrInvalidConfig.
// Only the values of ctx are kept for later token fetches, not its deadline or cancellation.
func New(ctx context.Context, cfg configs.AppConfig, opts ...Option) (*Client, error) {
	if err := Validate(cfg); err != nil {
		return nil, err
	}

	o := options{logger: log.Nop()}
	for _, opt := range opts {
		opt(&o)
	}

	sender := o.sender
	if sender == nil {
		base := o.httpClient
		if base == nil {
			base = &http.Client{Timeout: cfg.HTTP.GetTimeout()}
		}

		api, err := auth.NewHTTPClient(ctx, cfg.API, base)
		if err != nil {
			return nil, invalid(err)
		}

		sender, err = transport.NewHTTPSender(cfg.API.GetBaseURL(), api,
			transport.WithStorageClient(&http.Client{Timeout: base.Timeout, Transport: base.Transport}),
			transport.WithLimiter(transport.NewLimiter(cfg.HTTP.RateLimit)),
			transport.WithBreaker(transport.NewBreaker(cfg.HTTP.CircuitBreaker, o.logger)),
			transport.WithUserAgent(cfg.HTTP.UserAgent),
			transport.WithLogger(o.logger),
		)
		if err != nil {
			return nil, invalid(err)
		}
	}

	return &Client{
		Assets:      asset.NewService(sender),
		Collections: collection.NewService(sender),
		Upload:      upload.New(sender, cfg.Upload, upload.WithLogger(o.logger)),
		sender:      sender,
		config:      cfg,
	}, nil
}

// Validate checks the rule tags and the credentials of the selected auth mode.
// Start from configs.Defaults so that unset sections carry valid values.
func Validate(cfg configs.AppConfig) error {
	if err := rule.ValidateStruct(cfg.API); err != nil {
		return invalid(err)
	}

	if err := cfg.API.Validate(); err != nil {
		return invalid(err)
	}

	if err := rule.ValidateStruct(cfg.Upload); err != nil {
		return invalid(err)
	}

	return nil
}

func invalid(err error) error {
	if errs := rule.Errors(err); errs != nil {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, errs)
	}

	return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
}

// Sender returns the transport shared by the services.
func (c *Client) Sender() transport.Sender {
	return c.sender
}

// Config returns the configuration the client was built with.
func (c *Client) Config() configs.AppConfig {
	return c.config
}

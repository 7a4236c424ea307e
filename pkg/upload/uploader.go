// Package upload implements the chunked upload pipeline: request a slot, transfer the
// source chunk by chunk, finalize, wait for the server side conversion, then save the media.
//
// Example:
//
//	u := upload.New(sender, configs.GetConfig().Upload)
//	res, err := u.Upload(ctx, &upload.Request{FilePath: "logo.png", BrandID: brandID})
//	if errors.Is(err, upload.ErrUploadIncomplete) {
//		// conversion failed or timed out, nothing was saved
//	}
package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/Bynder/bynder-go-sdk/pkg/configs"
	"github.com/Bynder/bynder-go-sdk/pkg/log"
	"github.com/Bynder/bynder-go-sdk/pkg/metrics"
	"github.com/Bynder/bynder-go-sdk/pkg/query"
	"github.com/Bynder/bynder-go-sdk/pkg/tracing"
	"github.com/Bynder/bynder-go-sdk/pkg/transport"
)

// Uploader runs uploads. It is safe for concurrent use; uploads share only the sender
// and the storage endpoint cache.
type Uploader struct {
	sender      transport.Sender
	protocol    Protocol
	poller      *Poller
	chunkSize   int
	concurrency int
	logger      *zerolog.Logger
}

// Option configures an Uploader.
type Option func(*Uploader)

// WithProtocol overrides the protocol selected by the configuration.
func WithProtocol(p Protocol) Option {
	return func(u *Uploader) { u.protocol = p }
}

// WithPoller overrides the conversion poller.
func WithPoller(p *Poller) Option {
	return func(u *Uploader) { u.poller = p }
}

// WithEndpointCache shares a storage endpoint cache with the legacy protocol.
func WithEndpointCache(c *EndpointCache) Option {
	return func(u *Uploader) {
		if _, ok := u.protocol.(*Legacy); ok {
			u.protocol = NewLegacy(u.sender, c)
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *zerolog.Logger) Option {
	return func(u *Uploader) { u.logger = l }
}

// New returns an Uploader configured by cfg.
func New(sender transport.Sender, cfg configs.UploadConfig, opts ...Option) *Uploader {
	u := &Uploader{
		sender:      sender,
		poller:      NewPoller(NewStatusClient(sender), cfg),
		chunkSize:   cfg.GetChunkSize(),
		concurrency: max(cfg.Concurrency, 1),
		logger:      log.Nop(),
	}

	if cfg.Protocol == configs.ProtocolV7 {
		u.protocol = NewV7(sender)
	} else {
		u.protocol = NewLegacy(sender, nil)
	}

	for _, opt := range opts {
		opt(u)
	}

	return u
}

// Upload runs the whole pipeline for req. The media is saved only when the conversion
// succeeds; otherwise an *IncompleteError is returned.
// The caller's req is never modified.
func (u *Uploader) Upload(ctx context.Context, req *Request) (res *Result, err error) {
	r := *req
	req = &r

	src, size, closer, err := openSource(req)
	if err != nil {
		return nil, err
	}
	defer closer()

	session := uuid.NewString()
	logger := u.logger.With().
		Str("session", session).
		Str("protocol", u.protocol.Name()).
		Str("file", req.FileName).
		Logger()

	ctx, span := tracing.StartSpan(ctx, "upload")
	span.SetAttributes(
		attribute.String("upload.session", session),
		attribute.String("upload.protocol", u.protocol.Name()),
		attribute.String("upload.file", req.FileName),
	)

	metrics.InFlightUploads.Inc()

	defer func() {
		metrics.InFlightUploads.Dec()
		metrics.UploadsTotal.WithLabelValues(u.protocol.Name(), resultLabel(err)).Inc()
		tracing.EndSpan(span, err)
	}()

	slot, err := u.protocol.Prepare(ctx, req)
	if err != nil {
		return nil, err
	}

	logger.Debug().Str("upload_id", slot.UploadID).Str("file_id", slot.FileID).Msg("upload slot issued")

	sum, err := u.transfer(ctx, slot, req, src, ChunkCount(size, u.chunkSize), logger)
	if err != nil {
		return nil, err
	}

	fin, err := u.protocol.Finalize(ctx, slot, req, sum)
	if err != nil {
		return nil, err
	}

	logger.Debug().Str("import_id", fin.ImportID).Int("chunks", sum.Chunks).Msg("upload finalized")

	status, err := u.poller.Poll(ctx, fin.ImportID)
	if err != nil {
		return nil, err
	}

	if status != StatusDone {
		logger.Warn().Str("import_id", fin.ImportID).Stringer("status", status).Msg("conversion incomplete")

		return nil, &IncompleteError{ImportID: fin.ImportID, Status: status}
	}

	saved, err := u.save(ctx, req, fin.SaveID)
	if err != nil {
		return nil, err
	}

	logger.Info().Str("import_id", fin.ImportID).Str("media_id", saved.MediaID).Msg("upload saved")

	return &Result{MediaID: saved.MediaID, ImportID: fin.ImportID, Status: status, Summary: sum}, nil
}

// transfer streams src in chunks. Chunks run in parallel only when the protocol allows it.
func (u *Uploader) transfer(
	ctx context.Context, slot *Slot, req *Request, src io.Reader, total int, logger zerolog.Logger,
) (Summary, error) {
	chunker := NewChunker(src, u.chunkSize)

	g, gctx := errgroup.WithContext(ctx)
	if u.protocol.Concurrent() {
		g.SetLimit(u.concurrency)
	} else {
		g.SetLimit(1)
	}

	for {
		if gctx.Err() != nil {
			break
		}

		chunk, err := chunker.Next()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			_ = g.Wait()

			return Summary{}, err
		}

		g.Go(func() error {
			if err := u.protocol.UploadChunk(gctx, slot, req, chunk, total); err != nil {
				return err
			}

			metrics.ChunksTotal.WithLabelValues(u.protocol.Name()).Inc()
			metrics.UploadedBytes.WithLabelValues(u.protocol.Name()).Add(float64(len(chunk.Data)))
			logger.Debug().Int("chunk", chunk.Number).Int("bytes", len(chunk.Data)).Msg("chunk uploaded")

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Summary{}, err
	}

	if err := ctx.Err(); err != nil {
		return Summary{}, err
	}

	if chunker.Count() == 0 {
		return Summary{}, ErrEmptySource
	}

	return Summary{
		FileName: req.FileName,
		Chunks:   chunker.Count(),
		Size:     chunker.Size(),
		SHA256:   chunker.SHA256(),
	}, nil
}

func (u *Uploader) save(ctx context.Context, req *Request, saveID string) (*SaveResponse, error) {
	path := "/api/v4/media/save/" + saveID + "/"
	if req.IsNewVersion() {
		path = "/api/v4/media/" + req.MediaID + "/save/" + saveID + "/"
	}

	res, err := transport.SendJSON[SaveResponse](ctx, u.sender, transport.PostForm(path, query.Encode(req)))
	if err != nil {
		return nil, fmt.Errorf("save media: %w", err)
	}

	if res.MediaID == "" {
		res.MediaID = req.MediaID
	}

	return &res, nil
}

// openSource resolves the reader, its size (-1 when unknown) and the file name of req.
// req must be the uploader's own copy.
func openSource(req *Request) (io.Reader, int64, func(), error) {
	if req.FilePath != "" {
		f, err := os.Open(req.FilePath)
		if err != nil {
			return nil, 0, nil, fmt.Errorf("open source: %w", err)
		}

		info, err := f.Stat()
		if err != nil {
			_ = f.Close()

			return nil, 0, nil, fmt.Errorf("stat source: %w", err)
		}

		if req.FileName == "" {
			req.FileName = filepath.Base(req.FilePath)
		}

		return f, info.Size(), func() { _ = f.Close() }, nil
	}

	if req.Reader == nil {
		return nil, 0, nil, ErrNoSource
	}

	if req.FileName == "" {
		return nil, 0, nil, fmt.Errorf("%w: file name required with a reader", ErrNoSource)
	}

	size := req.Size
	if size <= 0 {
		size = -1
	}

	return req.Reader, size, func() {}, nil
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "saved"
	case errors.Is(err, ErrUploadIncomplete):
		return "incomplete"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	}

	return "failed"
}

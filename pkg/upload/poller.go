package upload

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/Bynder/bynder-go-sdk/pkg/configs"
	"github.com/Bynder/bynder-go-sdk/pkg/metrics"
)

// ConversionStatus is the server side processing state of an import.
type ConversionStatus int

const (
	StatusPending ConversionStatus = iota
	StatusDone
	StatusFailed
	// StatusTimeout is decided by the client after the last attempt.
	StatusTimeout
)

func (s ConversionStatus) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusDone:
		return "done"
	case StatusFailed:
		return "failed"
	case StatusTimeout:
		return "timeout"
	}

	return fmt.Sprintf("ConversionStatus(%d)", int(s))
}

// PollResult is one answer of the status endpoint.
type PollResult struct {
	ItemsDone   []string `json:"itemsDone"`
	ItemsFailed []string `json:"itemsFailed"`
}

// StatusOf returns the status of id in r.
func (r *PollResult) StatusOf(id string) ConversionStatus {
	switch {
	case r == nil:
		return StatusPending
	case slices.Contains(r.ItemsDone, id):
		return StatusDone
	case slices.Contains(r.ItemsFailed, id):
		return StatusFailed
	}

	return StatusPending
}

// StatusSource queries the conversion state of a set of imports.
type StatusSource interface {
	PollStatus(ctx context.Context, ids []string) (*PollResult, error)
}

// Poller waits for imports to reach a final state.
type Poller struct {
	Source        StatusSource
	MaxIterations int
	Interval      time.Duration
}

// NewPoller returns a Poller using the iteration count and interval of cfg.
func NewPoller(src StatusSource, cfg configs.UploadConfig) *Poller {
	iterations := cfg.PollMaxIterations
	if iterations <= 0 {
		iterations = configs.DefaultPollMaxIterations
	}

	return &Poller{Source: src, MaxIterations: iterations, Interval: cfg.GetPollInterval()}
}

// Poll queries the status of id until it is done or failed, at most MaxIterations times.
// It never waits after the final attempt. Errors of the source are returned as is.
func (p *Poller) Poll(ctx context.Context, id string) (ConversionStatus, error) {
	statuses, err := p.PollAll(ctx, []string{id})
	if err != nil {
		return StatusPending, err
	}

	return statuses[id], nil
}

// PollAll is Poll for a batch: every attempt queries the imports still pending.
// Imports unresolved after the last attempt are reported as StatusTimeout.
func (p *Poller) PollAll(ctx context.Context, ids []string) (map[string]ConversionStatus, error) {
	out := make(map[string]ConversionStatus, len(ids))
	pending := slices.Clone(ids)

	for attempt := 1; attempt <= p.MaxIterations && len(pending) > 0; attempt++ {
		metrics.PollAttempts.Inc()

		res, err := p.Source.PollStatus(ctx, pending)
		if err != nil {
			return nil, fmt.Errorf("poll attempt %d: %w", attempt, err)
		}

		pending = slices.DeleteFunc(pending, func(id string) bool {
			st := res.StatusOf(id)
			if st == StatusPending {
				return false
			}

			out[id] = st

			return true
		})

		if len(pending) == 0 || attempt == p.MaxIterations {
			break
		}

		if err := sleep(ctx, p.Interval); err != nil {
			return nil, err
		}
	}

	for _, id := range pending {
		out[id] = StatusTimeout
	}

	return out, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

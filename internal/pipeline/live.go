package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/jmwalls/windy/internal/config"
	"github.com/jmwalls/windy/internal/domain"
	"github.com/jmwalls/windy/internal/observability"
	"github.com/jmwalls/windy/internal/rose"
)

// Extractor reads the next raw observation from the source.
type Extractor interface {
	Extract(ctx context.Context) (domain.Observation, error)
}

// Live consumes observations from a topic and accumulates them into a
// continuously updated rose.
type Live struct {
	extractor Extractor
	acc       *rose.Accumulator
	logger    *slog.Logger
	metrics   *observability.Metrics
	bins      int
	title     string
	ready     atomic.Bool
}

// NewLive creates a live runner feeding the given accumulator.
func NewLive(cfg *config.Config, e Extractor, acc *rose.Accumulator, logger *slog.Logger, metrics *observability.Metrics) *Live {
	return &Live{
		extractor: e,
		acc:       acc,
		logger:    logger,
		metrics:   metrics,
		bins:      cfg.Bins,
		title:     cfg.Title,
	}
}

// CheckReadiness returns nil once at least one clean sample has been
// accumulated.
func (l *Live) CheckReadiness(_ context.Context) error {
	if !l.ready.Load() {
		return errors.New("no clean observations accumulated yet")
	}
	return nil
}

// Rose bins the samples accumulated so far.
func (l *Live) Rose() (*rose.Rose, error) {
	return l.acc.Build(l.bins, l.title)
}

// Run executes the consume loop until the context is cancelled.
func (l *Live) Run(ctx context.Context) error {
	l.logger.Info("live pipeline started", "bins", l.bins)
	l.metrics.PipelineRunning.Set(1)
	defer l.metrics.PipelineRunning.Set(0)

	// Exponential backoff: start at 200ms, double each retry, cap at 5s.
	// Avoids tight loops while the broker is unreachable.
	backoff := 200 * time.Millisecond
	const maxBackoff = 5 * time.Second

	for {
		select {
		case <-ctx.Done():
			l.logger.Info("live pipeline stopping", "reason", ctx.Err())
			return nil
		default:
		}

		obs, err := l.extractor.Extract(ctx)
		if err != nil {
			if ctx.Err() != nil {
				l.logger.Info("live pipeline stopping", "reason", ctx.Err())
				return nil
			}
			l.logger.Warn("extract observation failed", "error", err)
			l.metrics.ConsumeErrors.Inc()
			if !sleepWithContext(ctx, backoff) {
				return nil
			}
			backoff = nextBackoff(backoff, maxBackoff)
			continue
		}
		backoff = 200 * time.Millisecond

		l.metrics.ObservationsConsumed.Inc()
		l.metrics.RowsRead.Inc()

		if kept := l.acc.Add(obs); kept == 0 {
			l.metrics.RowsDropped.Inc()
			l.logger.Debug("observation dropped", "date", obs.Date, "station", obs.Station)
			continue
		}

		l.metrics.RoseSamples.Set(float64(l.acc.Len()))
		l.ready.Store(true)
	}
}

func nextBackoff(current, maxBackoff time.Duration) time.Duration {
	next := current * 2
	if next > maxBackoff {
		return maxBackoff
	}
	return next
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

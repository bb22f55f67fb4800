// Package pipeline orchestrates the two observation flows: a single-pass
// batch load from a CSV export, and a live loop consuming observations
// from a message topic.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmwalls/windy/internal/config"
	"github.com/jmwalls/windy/internal/dataset"
	"github.com/jmwalls/windy/internal/observability"
	"github.com/jmwalls/windy/internal/rose"
)

// Batch loads a station CSV once and bins it into a rose.
type Batch struct {
	cfg     *config.Config
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewBatch creates a batch runner.
func NewBatch(cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) *Batch {
	return &Batch{cfg: cfg, logger: logger, metrics: metrics}
}

// Run loads, cleans, and bins the configured CSV. Any failure is fatal to
// the run; there is no partial result.
func (b *Batch) Run() (*rose.Rose, error) {
	cols := dataset.Columns{
		Date:      b.cfg.DateColumn,
		Direction: b.cfg.DirectionColumn,
		Speed:     b.cfg.SpeedColumn,
	}

	res, err := dataset.LoadFile(b.cfg.CSVPath, cols)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", b.cfg.CSVPath, err)
	}

	b.metrics.RowsRead.Add(float64(res.Rows))
	b.metrics.RowsDropped.Add(float64(res.Dropped))
	b.logger.Info("loaded observations",
		"path", b.cfg.CSVPath,
		"rows", res.Rows,
		"samples", len(res.Samples),
		"dropped", res.Dropped,
	)

	r, err := rose.Build(res.Samples, b.cfg.Bins, b.cfg.Title)
	if err != nil {
		return nil, err
	}
	b.metrics.RoseSamples.Set(float64(r.Samples))

	return r, nil
}

// Fixed serves one pre-built rose, for batch-then-serve mode.
type Fixed struct {
	rose *rose.Rose
}

// NewFixed wraps a built rose as a provider for the HTTP server.
func NewFixed(r *rose.Rose) *Fixed {
	return &Fixed{rose: r}
}

func (f *Fixed) Rose() (*rose.Rose, error) { return f.rose, nil }

func (f *Fixed) CheckReadiness(_ context.Context) error { return nil }

// Command windrose renders polar histograms of wind direction from NOAA
// daily-summary data: one aggregate wind rose plus twelve per-month roses
// on a single figure.
//
// Batch mode reads a station CSV export and writes a PNG:
//
//	windrose -csv karb_daily.csv -out windrose.png
//
// Live mode consumes observation JSON from Kafka and serves the
// continuously updated figure over HTTP:
//
//	windrose -brokers localhost:9092 -topic wind-observations -serve :8080
//
// Either mode can serve the figure with -serve; batch mode then keeps the
// process alive after writing the output file.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jmwalls/windy/internal/adapter/httpserver"
	kafkaadapter "github.com/jmwalls/windy/internal/adapter/kafka"
	"github.com/jmwalls/windy/internal/config"
	"github.com/jmwalls/windy/internal/observability"
	"github.com/jmwalls/windy/internal/pipeline"
	"github.com/jmwalls/windy/internal/render"
	"github.com/jmwalls/windy/internal/rose"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(2)
	}
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	figure, err := render.New(render.Options{})
	if err != nil {
		logger.Error("failed to create figure renderer", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Live() {
		runLive(ctx, cfg, figure, metrics, logger)
		return
	}
	runBatch(ctx, cfg, figure, metrics, logger)
}

// runBatch loads the CSV, renders the figure to disk, and optionally keeps
// serving it.
func runBatch(ctx context.Context, cfg *config.Config, figure *render.Figure, metrics *observability.Metrics, logger *slog.Logger) {
	batch := pipeline.NewBatch(cfg, logger, metrics)

	r, err := batch.Run()
	if err != nil {
		logger.Error("batch run failed", "error", err)
		os.Exit(1)
	}

	if err := writeFigure(figure, r, cfg.OutPath); err != nil {
		logger.Error("write figure failed", "error", err, "path", cfg.OutPath)
		os.Exit(1)
	}
	logger.Info("figure written", "path", cfg.OutPath, "samples", r.Samples)

	if cfg.ServeAddr == "" {
		return
	}

	srv := httpserver.NewServer(cfg.ServeAddr, pipeline.NewFixed(r), figure, metrics, logger)
	serveUntilCancelled(ctx, cfg, srv, logger)
}

// runLive consumes observations from Kafka and serves the live figure.
func runLive(ctx context.Context, cfg *config.Config, figure *render.Figure, metrics *observability.Metrics, logger *slog.Logger) {
	reader := kafkaadapter.NewReader(cfg, logger)
	acc := rose.NewAccumulator()
	live := pipeline.NewLive(cfg, reader, acc, logger, metrics)

	srv := httpserver.NewServer(cfg.ServeAddr, live, figure, metrics, logger)

	go func() {
		if err := live.Run(ctx); err != nil {
			logger.Error("live pipeline error", "error", err)
		}
	}()

	serveUntilCancelled(ctx, cfg, srv, logger)

	if err := reader.Close(); err != nil {
		logger.Error("kafka reader close error", "error", err)
	}
}

// serveUntilCancelled runs the HTTP server until the context is cancelled,
// then drains it within the shutdown timeout.
func serveUntilCancelled(ctx context.Context, cfg *config.Config, srv *httpserver.Server, logger *slog.Logger) {
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}

func writeFigure(figure *render.Figure, r *rose.Rose, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := figure.Render(r, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

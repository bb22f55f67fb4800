package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds all settings, populated from CLI flags and environment
// variables.
type Config struct {
	// Batch input.
	CSVPath string

	// Live input. Non-empty brokers selects live mode.
	KafkaBrokers []string
	KafkaTopic   string
	KafkaGroupID string

	// Histogram and figure.
	Bins            int
	Title           string
	DateColumn      string
	DirectionColumn string
	SpeedColumn     string

	// Output.
	OutPath   string
	ServeAddr string

	// Ambient.
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
}

// Live reports whether observations come from Kafka instead of a CSV file.
func (c *Config) Live() bool { return len(c.KafkaBrokers) > 0 }

// Load parses CLI flags (args excludes the program name) and environment
// variables, applying defaults where unset.
func Load(args []string) (*Config, error) {
	fs := flag.NewFlagSet("windrose", flag.ContinueOnError)

	csvPath := fs.String("csv", "", "input NOAA daily-summary CSV file")
	brokers := fs.String("brokers", "", "comma-separated Kafka brokers for live observation mode")
	topic := fs.String("topic", "wind-observations", "Kafka topic carrying observation JSON")
	groupID := fs.String("group", "windy", "Kafka consumer group id")

	bins := fs.Int("bins", 20, "number of angular histogram bins")
	title := fs.String("title", "Wind dir", "aggregate subplot title")
	dateCol := fs.String("date-col", "DATE", "date column name")
	dirCol := fs.String("dir-col", "WDF5", "wind direction column name")
	speedCol := fs.String("speed-col", "WSF5", "wind speed column name")

	out := fs.String("out", "windrose.png", "output figure path (batch mode)")
	serve := fs.String("serve", "", "serve the figure over HTTP at this address instead of exiting")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	shutdownTimeout, err := parseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		CSVPath:         *csvPath,
		KafkaBrokers:    splitBrokers(*brokers),
		KafkaTopic:      *topic,
		KafkaGroupID:    *groupID,
		Bins:            *bins,
		Title:           *title,
		DateColumn:      *dateCol,
		DirectionColumn: *dirCol,
		SpeedColumn:     *speedCol,
		OutPath:         *out,
		ServeAddr:       *serve,
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "text"),
		ShutdownTimeout: shutdownTimeout,
	}

	// Live mode has no file to write, so the figure must be served.
	if cfg.Live() && cfg.ServeAddr == "" {
		cfg.ServeAddr = ":8080"
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.CSVPath == "" && !c.Live() {
		return errors.New("missing required flag: -csv (or -brokers for live mode)")
	}
	if c.CSVPath != "" && c.Live() {
		return errors.New("-csv and -brokers are mutually exclusive")
	}
	if c.Bins < 1 {
		return fmt.Errorf("-bins must be >= 1, got %d", c.Bins)
	}
	if c.Live() && c.KafkaTopic == "" {
		return errors.New("-topic is required in live mode")
	}
	if c.DateColumn == "" || c.DirectionColumn == "" || c.SpeedColumn == "" {
		return errors.New("column names must be non-empty")
	}
	return nil
}

func splitBrokers(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseShutdownTimeout() (time.Duration, error) {
	s := envOrDefault("SHUTDOWN_TIMEOUT", "10s")
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, errors.New("invalid SHUTDOWN_TIMEOUT")
	}
	return d, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

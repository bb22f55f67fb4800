package config

import (
	"flag"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_BatchDefaults(t *testing.T) {
	cfg, err := Load([]string{"-csv", "karb.csv"})
	require.NoError(t, err)

	assert.Equal(t, "karb.csv", cfg.CSVPath)
	assert.False(t, cfg.Live())
	assert.Equal(t, 20, cfg.Bins)
	assert.Equal(t, "Wind dir", cfg.Title)
	assert.Equal(t, "DATE", cfg.DateColumn)
	assert.Equal(t, "WDF5", cfg.DirectionColumn)
	assert.Equal(t, "WSF5", cfg.SpeedColumn)
	assert.Equal(t, "windrose.png", cfg.OutPath)
	assert.Empty(t, cfg.ServeAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestLoad_HelpRequested(t *testing.T) {
	_, err := Load([]string{"-h"})
	require.ErrorIs(t, err, flag.ErrHelp)
}

func TestLoad_CustomFlags(t *testing.T) {
	cfg, err := Load([]string{
		"-csv", "karb.csv",
		"-bins", "36",
		"-title", "Wind dir KARB",
		"-dir-col", "WDF2",
		"-speed-col", "WSF2",
		"-out", "/tmp/rose.png",
		"-serve", ":9090",
	})
	require.NoError(t, err)

	assert.Equal(t, 36, cfg.Bins)
	assert.Equal(t, "Wind dir KARB", cfg.Title)
	assert.Equal(t, "WDF2", cfg.DirectionColumn)
	assert.Equal(t, "WSF2", cfg.SpeedColumn)
	assert.Equal(t, "/tmp/rose.png", cfg.OutPath)
	assert.Equal(t, ":9090", cfg.ServeAddr)
}

func TestLoad_LiveMode(t *testing.T) {
	cfg, err := Load([]string{"-brokers", "broker1:9092, broker2:9092"})
	require.NoError(t, err)

	assert.True(t, cfg.Live())
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "wind-observations", cfg.KafkaTopic)
	assert.Equal(t, "windy", cfg.KafkaGroupID)
	// Live mode must always serve the figure.
	assert.Equal(t, ":8080", cfg.ServeAddr)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")

	cfg, err := Load([]string{"-csv", "karb.csv"})
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
}

func TestLoad_Validation(t *testing.T) {
	cases := []struct {
		name string
		args []string
		env  map[string]string
	}{
		{name: "no input source", args: nil},
		{name: "both input sources", args: []string{"-csv", "a.csv", "-brokers", "b:9092"}},
		{name: "zero bins", args: []string{"-csv", "a.csv", "-bins", "0"}},
		{name: "empty topic in live mode", args: []string{"-brokers", "b:9092", "-topic", ""}},
		{name: "empty direction column", args: []string{"-csv", "a.csv", "-dir-col", ""}},
		{name: "positional arguments", args: []string{"-csv", "a.csv", "stray"}},
		{
			name: "bad shutdown timeout",
			args: []string{"-csv", "a.csv"},
			env:  map[string]string{"SHUTDOWN_TIMEOUT": "soon"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := Load(tc.args)
			require.Error(t, err)
		})
	}
}

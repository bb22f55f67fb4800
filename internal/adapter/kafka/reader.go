// Package kafka adapts a Kafka topic of observation JSON into the live
// pipeline's extractor interface.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/jmwalls/windy/internal/config"
	"github.com/jmwalls/windy/internal/domain"
)

// Reader consumes observation messages from the configured topic.
// It implements pipeline.Extractor.
type Reader struct {
	reader *kafkago.Reader
	logger *slog.Logger
}

// NewReader creates a consumer-group reader for the observation topic.
func NewReader(cfg *config.Config, logger *slog.Logger) *Reader {
	r := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     cfg.KafkaBrokers,
		Topic:       cfg.KafkaTopic,
		GroupID:     cfg.KafkaGroupID,
		MinBytes:    1,
		MaxBytes:    1 << 20,
		MaxWait:     time.Second,
		StartOffset: kafkago.FirstOffset,
	})
	return &Reader{reader: r, logger: logger}
}

// Extract blocks until the next observation message arrives or the context
// is cancelled. The offset is committed through the consumer group once
// the message is read.
func (r *Reader) Extract(ctx context.Context) (domain.Observation, error) {
	msg, err := r.reader.ReadMessage(ctx)
	if err != nil {
		return domain.Observation{}, err
	}
	return mapMessage(msg)
}

func (r *Reader) Close() error {
	return r.reader.Close()
}

// mapMessage decodes an observation message body. Missing wind fields
// arrive as JSON nulls and stay nil on the Observation.
func mapMessage(msg kafkago.Message) (domain.Observation, error) {
	var obs domain.Observation
	if err := json.Unmarshal(msg.Value, &obs); err != nil {
		return domain.Observation{}, fmt.Errorf("decode observation at %s/%d/%d: %w",
			msg.Topic, msg.Partition, msg.Offset, err)
	}
	if obs.Date == "" {
		return domain.Observation{}, fmt.Errorf("observation at %s/%d/%d has no date",
			msg.Topic, msg.Partition, msg.Offset)
	}
	return obs, nil
}

//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strconv"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"

	"github.com/jmwalls/windy/internal/adapter/kafka"
	"github.com/jmwalls/windy/internal/config"
	"github.com/jmwalls/windy/internal/domain"
	"github.com/jmwalls/windy/internal/observability"
	"github.com/jmwalls/windy/internal/pipeline"
	"github.com/jmwalls/windy/internal/rose"
)

const testTopic = "test-wind-observations"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func ptr(v float64) *float64 { return &v }

// startKafka launches a single-node Kafka container and returns its broker
// address.
func startKafka(ctx context.Context, t *testing.T) string {
	t.Helper()

	container, err := tckafka.Run(ctx, "confluentinc/confluent-local:7.5.0",
		tckafka.WithClusterID("test-cluster"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	brokers, err := container.Brokers(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, brokers)
	return brokers[0]
}

func createTopic(t *testing.T, broker, topic string) {
	t.Helper()

	conn, err := kafkago.Dial("tcp", broker)
	require.NoError(t, err)
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err)

	cc, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	require.NoError(t, err)
	defer cc.Close()

	require.NoError(t, cc.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}))
}

func produce(ctx context.Context, t *testing.T, broker string, observations ...domain.Observation) {
	t.Helper()

	producer := &kafkago.Writer{
		Addr:  kafkago.TCP(broker),
		Topic: testTopic,
	}
	t.Cleanup(func() { _ = producer.Close() })

	msgs := make([]kafkago.Message, 0, len(observations))
	for i, obs := range observations {
		payload, err := json.Marshal(obs)
		require.NoError(t, err)
		msgs = append(msgs, kafkago.Message{
			Key:   []byte(fmt.Sprintf("obs-%d", i)),
			Value: payload,
		})
	}
	require.NoError(t, producer.WriteMessages(ctx, msgs...))
}

// TestLivePipelineEndToEnd wires kafka.Reader into the live pipeline
// against real Kafka and verifies that published observations end up as
// clean samples in the rose.
func TestLivePipelineEndToEnd(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testTopic)

	cfg := &config.Config{
		KafkaBrokers: []string{broker},
		KafkaTopic:   testTopic,
		KafkaGroupID: fmt.Sprintf("test-live-%d", time.Now().UnixNano()),
		Bins:         8,
		Title:        "live test",
	}

	produce(ctx, t, broker,
		domain.Observation{Station: "TEST", Date: "2017-01-01", DirectionDeg: ptr(230), SpeedMPH: ptr(21.9)},
		domain.Observation{Station: "TEST", Date: "2017-01-02", DirectionDeg: nil, SpeedMPH: ptr(15)},
		domain.Observation{Station: "TEST", Date: "2017-07-04", DirectionDeg: ptr(90), SpeedMPH: ptr(12)},
	)

	reader := kafka.NewReader(cfg, discardLogger())
	t.Cleanup(func() { _ = reader.Close() })

	acc := rose.NewAccumulator()
	live := pipeline.NewLive(cfg, reader, acc, discardLogger(), observability.NewMetricsForTesting())

	liveCtx, liveCancel := context.WithCancel(ctx)
	errCh := make(chan error, 1)
	go func() { errCh <- live.Run(liveCtx) }()

	// Wait for both clean observations to land. The consumer group may
	// need time to rebalance before messages become available.
	require.Eventually(t, func() bool { return acc.Len() == 2 },
		90*time.Second, 250*time.Millisecond, "expected 2 clean samples, have %d", acc.Len())

	require.NoError(t, live.CheckReadiness(ctx))

	r, err := live.Rose()
	require.NoError(t, err)
	assert.Equal(t, 2, r.Samples)
	assert.Equal(t, 1, r.Monthly[0].Total, "January sample")
	assert.Equal(t, 1, r.Monthly[6].Total, "July sample")

	liveCancel()
	require.NoError(t, <-errCh)
}

// TestLivePipelinePoisonPill verifies that an undecodable message is
// skipped and consumption continues.
func TestLivePipelinePoisonPill(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testTopic)

	cfg := &config.Config{
		KafkaBrokers: []string{broker},
		KafkaTopic:   testTopic,
		KafkaGroupID: fmt.Sprintf("test-poison-%d", time.Now().UnixNano()),
		Bins:         8,
	}

	producer := &kafkago.Writer{
		Addr:  kafkago.TCP(broker),
		Topic: testTopic,
	}
	t.Cleanup(func() { _ = producer.Close() })

	good, err := json.Marshal(domain.Observation{Date: "2017-03-01", DirectionDeg: ptr(180), SpeedMPH: ptr(20)})
	require.NoError(t, err)

	require.NoError(t, producer.WriteMessages(ctx,
		kafkago.Message{Key: []byte("bad"), Value: []byte("not-json{{{")},
		kafkago.Message{Key: []byte("good"), Value: good},
	))

	reader := kafka.NewReader(cfg, discardLogger())
	t.Cleanup(func() { _ = reader.Close() })

	acc := rose.NewAccumulator()
	live := pipeline.NewLive(cfg, reader, acc, discardLogger(), observability.NewMetricsForTesting())

	liveCtx, liveCancel := context.WithCancel(ctx)
	errCh := make(chan error, 1)
	go func() { errCh <- live.Run(liveCtx) }()

	require.Eventually(t, func() bool { return acc.Len() == 1 },
		90*time.Second, 250*time.Millisecond)

	liveCancel()
	require.NoError(t, <-errCh)
}

// Package integration holds tests that need real infrastructure. They are
// skipped in -short mode and require a local container runtime.
package integration

import (
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"

	kafkaadapter "github.com/couchcryptid/weather-intel-service/internal/adapter/kafka"
	"github.com/couchcryptid/weather-intel-service/internal/analysis"
	"github.com/couchcryptid/weather-intel-service/internal/config"
)

func TestPublisher_RoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping kafka integration test in short mode")
	}

	ctx := context.Background()

	container, err := tckafka.Run(ctx, "confluentinc/confluent-local:7.5.0",
		tckafka.WithClusterID("weather-intel-test"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	brokers, err := container.Brokers(ctx)
	require.NoError(t, err)

	const topic = "weather-analysis-results"
	cfg := &config.Config{KafkaBrokers: brokers, KafkaResultsTopic: topic}

	publisher := kafkaadapter.NewPublisher(cfg, slog.Default())
	t.Cleanup(func() { _ = publisher.Close() })

	published := &analysis.Result{
		Activity:    "hiking",
		Lat:         40.7128,
		Lon:         -74.0060,
		GeneratedAt: time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, publisher.PublishResult(ctx, published))

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  "integration-test",
		MinBytes: 1,
		MaxBytes: 10e6,
	})
	t.Cleanup(func() { _ = reader.Close() })

	readCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	msg, err := reader.ReadMessage(readCtx)
	require.NoError(t, err)

	assert.Equal(t, []byte("hiking"), msg.Key)

	var got analysis.Result
	require.NoError(t, json.Unmarshal(msg.Value, &got))
	assert.Equal(t, published.Activity, got.Activity)
	assert.Equal(t, published.Lat, got.Lat)
	assert.True(t, published.GeneratedAt.Equal(got.GeneratedAt))
}

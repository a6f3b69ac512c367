package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/pick-grader/internal/platform/resilience"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestKafkaPublisher_Publish(t *testing.T) {
	writer := &fakeWriter{}
	publisher := newKafkaPublisher(writer, KafkaPublisherConfig{Topic: "picks.graded"}, nil)
	publisher.now = func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) }

	err := publisher.Publish(context.Background(), "score-entry:2025-03-01:hawks", map[string]any{"team": "Hawks"})
	require.NoError(t, err)
	require.Len(t, writer.msgs, 1)

	msg := writer.msgs[0]
	assert.Equal(t, "score-entry:2025-03-01:hawks", string(msg.Key))
	var body map[string]any
	require.NoError(t, sonic.Unmarshal(msg.Value, &body))
	assert.Equal(t, "Hawks", body["team"])
	require.Len(t, msg.Headers, 2)
	assert.Equal(t, "event_id", msg.Headers[0].Key)
	assert.Len(t, msg.Headers[0].Value, 36)

	require.NoError(t, publisher.Close())
	assert.True(t, writer.closed)
}

func TestKafkaPublisher_BreakerOpensAfterFailures(t *testing.T) {
	writer := &fakeWriter{err: errors.New("leader not available")}
	publisher := newKafkaPublisher(writer, KafkaPublisherConfig{
		Topic: "picks.graded",
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 2,
			OpenTimeout:      time.Minute,
		},
	}, nil)

	for i := 0; i < 2; i++ {
		err := publisher.Publish(context.Background(), "k", map[string]any{})
		require.Error(t, err)
		assert.NotErrorIs(t, err, resilience.ErrCircuitOpen)
	}

	err := publisher.Publish(context.Background(), "k", map[string]any{})
	assert.ErrorIs(t, err, resilience.ErrCircuitOpen)
}

func TestNewKafkaPublisher_Validates(t *testing.T) {
	_, err := NewKafkaPublisher(KafkaPublisherConfig{Topic: "t"}, nil)
	assert.Error(t, err)

	_, err = NewKafkaPublisher(KafkaPublisherConfig{Brokers: []string{"localhost:9092"}}, nil)
	assert.Error(t, err)

	p, err := NewKafkaPublisher(KafkaPublisherConfig{Brokers: []string{" localhost:9092 "}, Topic: "picks.graded"}, nil)
	require.NoError(t, err)
	require.NoError(t, p.Close())
}

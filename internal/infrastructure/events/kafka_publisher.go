package events

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/segmentio/kafka-go"

	"github.com/riskibarqy/pick-grader/internal/platform/id"
	"github.com/riskibarqy/pick-grader/internal/platform/logging"
	"github.com/riskibarqy/pick-grader/internal/platform/resilience"
)

type KafkaPublisherConfig struct {
	Brokers        []string
	Topic          string
	WriteTimeout   time.Duration
	CircuitBreaker resilience.CircuitBreakerConfig
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes JSON events keyed for per-game ordering.
type KafkaPublisher struct {
	writer  messageWriter
	topic   string
	timeout time.Duration
	breaker *resilience.CircuitBreaker
	ids     id.Generator
	logger  *logging.Logger
	now     func() time.Time
}

func NewKafkaPublisher(cfg KafkaPublisherConfig, logger *logging.Logger) (*KafkaPublisher, error) {
	brokers := make([]string, 0, len(cfg.Brokers))
	for _, b := range cfg.Brokers {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	if len(brokers) == 0 {
		return nil, fmt.Errorf("kafka brokers are required")
	}
	if strings.TrimSpace(cfg.Topic) == "" {
		return nil, fmt.Errorf("kafka topic is required")
	}

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		BatchTimeout:           10 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}
	return newKafkaPublisher(writer, cfg, logger), nil
}

func newKafkaPublisher(writer messageWriter, cfg KafkaPublisherConfig, logger *logging.Logger) *KafkaPublisher {
	if logger == nil {
		logger = logging.Default()
	}
	timeout := cfg.WriteTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	return &KafkaPublisher{
		writer:  writer,
		topic:   cfg.Topic,
		timeout: timeout,
		breaker: cfg.CircuitBreaker.Build(),
		ids:     id.NewUUIDGenerator(),
		logger:  logger,
		now:     time.Now,
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, key string, payload any) error {
	body, err := sonic.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal event payload: %w", err)
	}
	eventID, err := p.ids.NewID()
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: body,
		Time:  p.now().UTC(),
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(eventID)},
			{Key: "content_type", Value: []byte("application/json")},
		},
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	err = p.breaker.Execute(func() error {
		return p.writer.WriteMessages(ctx, msg)
	})
	if err != nil {
		return fmt.Errorf("publish to %s: %w", p.topic, err)
	}

	p.logger.DebugContext(ctx, "event published", "topic", p.topic, "key", key, "bytes", len(body))
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

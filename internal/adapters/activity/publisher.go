// Package activity publishes user and event activity to Kafka.
package activity

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"

	"eventhub/internal/domain"
)

// Config holds configuration for the activity publisher. No brokers means disabled.
type Config struct {
	Brokers []string
	Topic   string
}

// messageWriter is the subset of *kafka.Writer used by the publisher.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// NewPublisher returns a Kafka-backed publisher, or a no-op publisher when no brokers are configured.
func NewPublisher(cfg Config, logger *slog.Logger) domain.ActivityPublisher {
	if len(cfg.Brokers) == 0 || cfg.Topic == "" {
		logger.Info("activity feed disabled")
		return NoopPublisher{}
	}
	w := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		BatchTimeout: 20 * time.Millisecond,
		Compression:  kafka.Snappy,
	}
	logger.Info("activity feed enabled", "brokers", cfg.Brokers, "topic", cfg.Topic)
	return &KafkaPublisher{writer: w}
}

// KafkaPublisher writes each Activity as one JSON message keyed by user id, so a
// user's activities stay ordered within a partition.
type KafkaPublisher struct {
	writer messageWriter
}

func (p *KafkaPublisher) Publish(ctx context.Context, a domain.Activity) error {
	msg, err := newMessage(a)
	if err != nil {
		return err
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write activity %s: %w", a.Type, err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

func newMessage(a domain.Activity) (kafka.Message, error) {
	payload, err := json.Marshal(a)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("encode activity: %w", err)
	}
	return kafka.Message{
		Key:   []byte(a.UserID),
		Value: payload,
		Time:  a.TS,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(a.Type)},
			{Key: "version", Value: []byte(strconv.Itoa(a.Version))},
		},
	}, nil
}

// NoopPublisher discards activities.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, domain.Activity) error { return nil }

func (NoopPublisher) Close() error { return nil }

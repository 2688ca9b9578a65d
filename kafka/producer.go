package kafka

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Producer publishes recognition domain events (compliment_sent,
// prize_redeemed, redemption_cancelled) to a single topic, keyed by user ID
// so one user's events stay ordered.
type Producer struct {
	writer *kafka.Writer
	logger *zap.Logger
}

// NewProducer creates a Producer for the given brokers and topic.
func NewProducer(brokers []string, topic string, logger *zap.Logger) *Producer {
	writer := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}
	return &Producer{writer: writer, logger: logger}
}

// Publish marshals the event and writes it keyed by the given key. Errors
// are returned for logging; callers must not fail the user mutation on a
// publish error.
func (p *Producer) Publish(ctx context.Context, key string, event interface{}) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: data,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("Failed to write Kafka message", zap.Error(err))
		return err
	}
	return nil
}

// Close flushes and closes the underlying writer.
func (p *Producer) Close() error {
	return p.writer.Close()
}

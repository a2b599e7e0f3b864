// Package producers publishes transfer events to Kafka. Events leave the
// system only through the outbox relay, so the writers here favor delivery
// guarantees over throughput.
package producers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/Lucas0204/Fin-API/internal/config"
	"github.com/segmentio/kafka-go"
)

// TransferEventProducer publishes transfer-completed events
type TransferEventProducer struct {
	logger *slog.Logger
	writer KafkaWriter // Interface for testability
	topic  string
}

// NewTransferEventProducer creates the producer and ensures the topic exists
func NewTransferEventProducer(ctx context.Context, logger *slog.Logger, cfg *config.KafkaConfig) (*TransferEventProducer, error) {
	if cfg.TransferTopic == "" {
		return nil, fmt.Errorf("kafka transfer topic is not configured")
	}

	conn, err := kafka.Dial("tcp", cfg.Brokers)
	if err != nil {
		return nil, fmt.Errorf("failed to dial kafka for transfer event producer: %w", err)
	}
	defer conn.Close()

	err = createKafkaTopicIfNotExists(conn, cfg.TransferTopic, cfg.NumPartitions, cfg.ReplicationFactor, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure transfer topic %s exists: %w", cfg.TransferTopic, err)
	}

	// Synchronous writes with full acks: the outbox relay marks a message
	// processed only after the broker confirms it.
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers),
		Topic:        cfg.TransferTopic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireAll,
		Async:        false,
		WriteTimeout: cfg.MaxWait,
	}

	return &TransferEventProducer{
		logger: logger,
		writer: writer,
		topic:  cfg.TransferTopic,
	}, nil
}

// Publish writes one event keyed for per-sender ordering
func (p *TransferEventProducer) Publish(ctx context.Context, key string, value interface{}) error {
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal message value for transfer event producer: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: jsonValue,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("Failed to publish transfer event",
			"topic", p.topic,
			"key", key,
			"error", err,
		)
		return fmt.Errorf("failed to publish message to %s: %w", p.topic, err)
	}

	p.logger.Debug("Published transfer event",
		"topic", p.topic,
		"key", key,
	)
	return nil
}

func (p *TransferEventProducer) Close() error {
	p.logger.Info("Closing transfer event producer", "topic", p.topic)
	if err := p.writer.Close(); err != nil {
		return fmt.Errorf("failed to close kafka writer for topic %s: %w", p.topic, err)
	}
	return nil
}

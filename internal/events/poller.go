// Package events relays committed transfer events from the transactional
// outbox to Kafka. The relay is the only publisher in the system: events
// enter the outbox inside the transfer's database transaction and leave it
// here, so a broker outage delays delivery but never loses an event.
package events

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/Lucas0204/Fin-API/internal/config"
	"github.com/Lucas0204/Fin-API/internal/domain/outbox"
	"github.com/Lucas0204/Fin-API/internal/platform/messaging/producers"
)

// Poller drains pending outbox messages on a fixed interval
type Poller struct {
	outboxRepo  outbox.Repository
	publisher   producers.MessagePublisher
	deadLetter  producers.DeadLetterPublisher
	interval    time.Duration
	batchSize   int
	maxAttempts int
	logger      *slog.Logger
}

// NewPoller wires the relay with its outbox store and producers. The dead
// letter publisher may be nil when the DLQ is disabled.
func NewPoller(
	logger *slog.Logger,
	outboxRepo outbox.Repository,
	publisher producers.MessagePublisher,
	deadLetter producers.DeadLetterPublisher,
	cfg *config.OutboxConfig,
) *Poller {
	return &Poller{
		outboxRepo:  outboxRepo,
		publisher:   publisher,
		deadLetter:  deadLetter,
		interval:    cfg.PollingInterval,
		batchSize:   cfg.BatchSize,
		maxAttempts: cfg.MaxRetryAttempts,
		logger:      logger,
	}
}

// Start runs the polling loop until the context is canceled
func (p *Poller) Start(ctx context.Context) {
	p.logger.Info("Starting outbox poller",
		"interval", p.interval.String(),
		"batch_size", p.batchSize,
		"max_attempts", p.maxAttempts,
	)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("Stopping outbox poller")
			return
		case <-ticker.C:
			if err := p.processBatch(ctx); err != nil {
				p.logger.Error("Outbox batch processing failed", "error", err)
			}
		}
	}
}

func (p *Poller) processBatch(ctx context.Context) error {
	messages, err := p.outboxRepo.GetPending(ctx, p.batchSize)
	if err != nil {
		return err
	}

	for _, message := range messages {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		p.relay(ctx, message)
	}

	return nil
}

// relay publishes one message, keyed by sender so a sender's transfers reach
// consumers in commit order. A failed publish bumps the attempt counter;
// exhausting the attempts parks the message and hands it to the DLQ.
func (p *Poller) relay(ctx context.Context, message *outbox.Message) {
	event, err := message.Event()
	if err != nil {
		// An undecodable payload can never succeed; park it immediately.
		p.logger.Error("Outbox message payload is not decodable", "id", message.ID, "error", err)
		p.park(ctx, message, "payload not decodable: "+err.Error())
		return
	}

	if err := p.publisher.Publish(ctx, message.SenderID.String(), event); err != nil {
		p.handlePublishFailure(ctx, message, err)
		return
	}

	if err := p.outboxRepo.UpdateStatus(ctx, message.ID, outbox.StatusProcessed); err != nil {
		// The event went out but the status write failed; the next cycle
		// republishes, which consumers must tolerate (at-least-once).
		p.logger.Error("Failed to mark outbox message processed", "id", message.ID, "error", err)
		return
	}

	p.logger.Debug("Outbox message published",
		"id", message.ID,
		"transfer_id", message.TransferID.String(),
	)
}

func (p *Poller) handlePublishFailure(ctx context.Context, message *outbox.Message, publishErr error) {
	p.logger.Warn("Failed to publish outbox message",
		"id", message.ID,
		"transfer_id", message.TransferID.String(),
		"attempts", message.Attempts+1,
		"error", publishErr,
	)

	if err := p.outboxRepo.IncrementAttempts(ctx, message.ID); err != nil {
		p.logger.Error("Failed to increment outbox message attempts", "id", message.ID, "error", err)
		return
	}

	if message.Attempts+1 >= p.maxAttempts {
		p.park(ctx, message, "max publish attempts exceeded: "+publishErr.Error())
	}
}

// park marks the message failed and forwards it to the dead letter topic
func (p *Poller) park(ctx context.Context, message *outbox.Message, reason string) {
	if err := p.outboxRepo.UpdateStatus(ctx, message.ID, outbox.StatusFailedToPublish); err != nil {
		p.logger.Error("Failed to park outbox message", "id", message.ID, "error", err)
		return
	}

	if p.deadLetter == nil {
		p.logger.Warn("DLQ disabled, parked message not forwarded", "id", message.ID, "reason", reason)
		return
	}

	if err := p.deadLetter.PublishToDLQ(ctx, message.SenderID.String(), message.Payload, reason); err != nil {
		p.logger.Error("Failed to forward parked message to DLQ", "id", message.ID, "error", err)
	}
}

// Drain processes any remaining pending messages once, for graceful shutdown
func (p *Poller) Drain(ctx context.Context) error {
	err := p.processBatch(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// Package outbox implements the message side of the transactional outbox:
// a transfer-completed event is stored in the same database transaction as
// the transfer itself, and a poller publishes it to Kafka afterwards.
package outbox

import (
	"encoding/json"
	"time"

	"github.com/Lucas0204/Fin-API/internal/domain/transfer"
	"github.com/google/uuid"
)

// Status defines message publishing states
type Status string

const (
	StatusPending         Status = "PENDING"
	StatusProcessed       Status = "PROCESSED"
	StatusFailedToPublish Status = "FAILED_TO_PUBLISH"
)

// TransferCompletedEvent is the payload published for every committed transfer
type TransferCompletedEvent struct {
	TransferID  uuid.UUID `json:"transfer_id"`
	SenderID    uuid.UUID `json:"sender_id"`
	ReceiverID  uuid.UUID `json:"receiver_id"`
	Amount      string    `json:"amount"`
	Description string    `json:"description"`
	CompletedAt time.Time `json:"completed_at"`
}

// Message stores a pending event for reliable publishing
type Message struct {
	ID            int64           `json:"id"`
	TransferID    uuid.UUID       `json:"transfer_id"`
	SenderID      uuid.UUID       `json:"sender_id"`
	Payload       json.RawMessage `json:"payload"`
	Status        Status          `json:"status"`
	Attempts      int             `json:"attempts"`
	CreatedAt     time.Time       `json:"created_at"`
	LastAttemptAt *time.Time      `json:"last_attempt_at,omitempty"`
}

// NewMessage builds a pending outbox message from a committed transfer
func NewMessage(t *transfer.Transfer) (*Message, error) {
	event := TransferCompletedEvent{
		TransferID:  t.ID,
		SenderID:    t.SenderID,
		ReceiverID:  t.ReceiverID,
		Amount:      t.Amount.String(),
		Description: t.Description,
		CompletedAt: t.CreatedAt,
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}

	return &Message{
		TransferID: t.ID,
		SenderID:   t.SenderID,
		Payload:    payload,
		Status:     StatusPending,
		Attempts:   0,
		CreatedAt:  time.Now(),
	}, nil
}

// Event decodes the transfer-completed payload
func (m *Message) Event() (*TransferCompletedEvent, error) {
	var event TransferCompletedEvent
	if err := json.Unmarshal(m.Payload, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

// Package transfer holds the transfer record entity and the business error
// kinds raised by the transfer engine. A transfer record is a denormalized
// summary for API consumers; the two ledger entries it causes are what
// balance computation actually sees.
package transfer

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TypeTransfer is the fixed type tag carried by every transfer record
const TypeTransfer = "transfer"

// Business rejections, raised before any write happens
var (
	ErrSelfTransfer      = errors.New("operation to self not allowed")
	ErrSenderNotFound    = errors.New("sender does not exist")
	ErrReceiverNotFound  = errors.New("receiver does not exist")
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// Transfer is the denormalized record of a completed transfer
type Transfer struct {
	ID          uuid.UUID       `json:"id"`
	SenderID    uuid.UUID       `json:"sender_id"`
	ReceiverID  uuid.UUID       `json:"receiver_id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Type        string          `json:"type"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// NewTransfer creates a transfer record with a fresh identity, timestamps,
// and the fixed "transfer" type tag. Validation belongs to the engine.
func NewTransfer(senderID, receiverID uuid.UUID, amount decimal.Decimal, description string) *Transfer {
	now := time.Now()
	return &Transfer{
		ID:          uuid.New(),
		SenderID:    senderID,
		ReceiverID:  receiverID,
		Amount:      amount,
		Description: description,
		Type:        TypeTransfer,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Package statement holds the ledger entry entity, the operation kinds, and
// the balance rule derived from them. Entries are append-only: once written
// they are never updated or deleted.
package statement

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OperationType defines the two ledger operation kinds
type OperationType string

const (
	OperationDeposit  OperationType = "deposit"
	OperationWithdraw OperationType = "withdraw"
)

// Entry is a single deposit or withdrawal recorded against an account.
// Transfer legs are ordinary entries whose description carries the
// "[TRANSFER]" marker; the read side reshapes them for presentation.
type Entry struct {
	ID          uuid.UUID       `json:"id"`
	AccountID   uuid.UUID       `json:"account_id"`
	Type        OperationType   `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// NewEntry creates an entry with a fresh identity and timestamps. Amount
// validation is the caller's responsibility; the store never rejects rows.
func NewEntry(accountID uuid.UUID, opType OperationType, amount decimal.Decimal, description string) *Entry {
	now := time.Now()
	return &Entry{
		ID:          uuid.New(),
		AccountID:   accountID,
		Type:        opType,
		Amount:      amount,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

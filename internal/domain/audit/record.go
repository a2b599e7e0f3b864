// Package audit defines the operation audit trail: a non-authoritative,
// best-effort record of every accepted or rejected ledger operation, kept
// separately from the balance-bearing entries.
package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// OperationKind identifies which ledger operation produced a record
type OperationKind string

const (
	KindDeposit  OperationKind = "deposit"
	KindWithdraw OperationKind = "withdraw"
	KindTransfer OperationKind = "transfer"
)

// OperationStatus tells whether the operation was committed or rejected
type OperationStatus string

const (
	StatusCompleted OperationStatus = "COMPLETED"
	StatusRejected  OperationStatus = "REJECTED"
)

// OperationRecord is one audit trail document. Amount is kept as its string
// form so no precision is lost in storage.
type OperationRecord struct {
	ID             uuid.UUID       `bson:"_id"`
	Kind           OperationKind   `bson:"kind"`
	AccountID      uuid.UUID       `bson:"account_id"`
	CounterpartyID *uuid.UUID      `bson:"counterparty_id,omitempty"`
	Amount         string          `bson:"amount"`
	Status         OperationStatus `bson:"status"`
	Reason         string          `bson:"reason,omitempty"`
	RecordedAt     time.Time       `bson:"recorded_at"`
}

// Repository persists audit records
type Repository interface {
	Record(ctx context.Context, record *OperationRecord) error
	ListByAccountID(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]*OperationRecord, error)
}

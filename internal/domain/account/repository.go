package account

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Repository defines account persistence operations
type Repository interface {
	Create(ctx context.Context, account *Account) error
	FindByID(ctx context.Context, id uuid.UUID) (*Account, error)

	// LockForUpdate acquires a row lock on the account, serializing all
	// balance-affecting work for it. Must be called on a tx-scoped repository.
	LockForUpdate(ctx context.Context, id uuid.UUID) (*Account, error)
	WithTx(tx pgx.Tx) Repository
}

// ErrAccountNotFound indicates missing account
type ErrAccountNotFound struct {
	AccountID uuid.UUID
}

func (e ErrAccountNotFound) Error() string {
	return "account not found: " + e.AccountID.String()
}

// Is matches any ErrAccountNotFound when the target carries a nil id
func (e ErrAccountNotFound) Is(target error) bool {
	t, ok := target.(ErrAccountNotFound)
	if !ok {
		return false
	}
	if t.AccountID == uuid.Nil {
		return true
	}
	return e.AccountID == t.AccountID
}

package statement

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// Repository manages ledger entry persistence. The combined GetBalance query
// exists so implementations can derive the balance and fetch the rows in a
// single pass over the account's entries.
type Repository interface {
	Create(ctx context.Context, entry *Entry) error

	// GetBalance returns the derived balance and, when withEntries is set,
	// the account's full entry list ordered oldest-first.
	GetBalance(ctx context.Context, accountID uuid.UUID, withEntries bool) (decimal.Decimal, []*Entry, error)
	WithTx(tx pgx.Tx) Repository
}

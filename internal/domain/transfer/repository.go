package transfer

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// Repository manages transfer record persistence. No business validation
// happens here; the engine validates before calling Create.
type Repository interface {
	Create(ctx context.Context, t *Transfer) error
	WithTx(tx pgx.Tx) Repository
}

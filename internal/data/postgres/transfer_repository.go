package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Lucas0204/Fin-API/internal/domain/transfer"
	"github.com/Lucas0204/Fin-API/internal/platform/persistence"
	"github.com/jackc/pgx/v5"
)

// TransferRepository implements the transfer.Repository interface for PostgreSQL
type TransferRepository struct {
	querier persistence.Querier
	logger  *slog.Logger
}

// NewTransferRepository creates a new PostgreSQL transfer repository
func NewTransferRepository(logger *slog.Logger, db *persistence.PostgresDB) transfer.Repository {
	return &TransferRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// WithTx returns a copy of the repository bound to the given transaction
func (r *TransferRepository) WithTx(tx pgx.Tx) transfer.Repository {
	return &TransferRepository{
		querier: tx,
		logger:  r.logger,
	}
}

// Create stores a transfer record
func (r *TransferRepository) Create(ctx context.Context, t *transfer.Transfer) error {
	query := `
		INSERT INTO transfers (id, sender_id, receiver_id, amount, description, type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.querier.Exec(ctx, query,
		t.ID,
		t.SenderID,
		t.ReceiverID,
		t.Amount,
		t.Description,
		t.Type,
		t.CreatedAt,
		t.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create transfer record",
			"sender_id", t.SenderID.String(),
			"receiver_id", t.ReceiverID.String(),
			"error", err,
		)
		return fmt.Errorf("failed to create transfer record: %w", err)
	}

	return nil
}

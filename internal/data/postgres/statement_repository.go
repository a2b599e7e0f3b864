package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Lucas0204/Fin-API/internal/domain/statement"
	"github.com/Lucas0204/Fin-API/internal/platform/persistence"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// StatementRepository implements the statement.Repository interface for PostgreSQL
type StatementRepository struct {
	querier persistence.Querier
	logger  *slog.Logger
}

// NewStatementRepository creates a new PostgreSQL ledger entry repository
func NewStatementRepository(logger *slog.Logger, db *persistence.PostgresDB) statement.Repository {
	return &StatementRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// WithTx returns a copy of the repository bound to the given transaction
func (r *StatementRepository) WithTx(tx pgx.Tx) statement.Repository {
	return &StatementRepository{
		querier: tx,
		logger:  r.logger,
	}
}

// Create appends a ledger entry. Entries are immutable; there is no update path.
func (r *StatementRepository) Create(ctx context.Context, entry *statement.Entry) error {
	query := `
		INSERT INTO statement_entries (id, account_id, type, amount, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.querier.Exec(ctx, query,
		entry.ID,
		entry.AccountID,
		string(entry.Type),
		entry.Amount,
		entry.Description,
		entry.CreatedAt,
		entry.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create statement entry",
			"account_id", entry.AccountID.String(),
			"error", err,
		)
		return fmt.Errorf("failed to create statement entry: %w", err)
	}

	return nil
}

// GetBalance derives the account balance and optionally returns the entries
// that produced it, ordered oldest-first. With entries requested, balance and
// rows come from one scan so the two can never disagree.
func (r *StatementRepository) GetBalance(ctx context.Context, accountID uuid.UUID, withEntries bool) (decimal.Decimal, []*statement.Entry, error) {
	if !withEntries {
		query := `
			SELECT COALESCE(SUM(CASE WHEN type = 'deposit' THEN amount ELSE -amount END), 0)
			FROM statement_entries
			WHERE account_id = $1
		`

		var balance decimal.Decimal
		if err := r.querier.QueryRow(ctx, query, accountID).Scan(&balance); err != nil {
			r.logger.Error("Failed to compute balance", "account_id", accountID.String(), "error", err)
			return decimal.Zero, nil, fmt.Errorf("failed to compute balance: %w", err)
		}

		return balance, nil, nil
	}

	query := `
		SELECT id, account_id, type, amount, description, created_at, updated_at
		FROM statement_entries
		WHERE account_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.querier.Query(ctx, query, accountID)
	if err != nil {
		r.logger.Error("Failed to list statement entries", "account_id", accountID.String(), "error", err)
		return decimal.Zero, nil, fmt.Errorf("failed to list statement entries: %w", err)
	}
	defer rows.Close()

	entries := []*statement.Entry{}
	for rows.Next() {
		var entry statement.Entry
		var opType string
		err := rows.Scan(
			&entry.ID,
			&entry.AccountID,
			&opType,
			&entry.Amount,
			&entry.Description,
			&entry.CreatedAt,
			&entry.UpdatedAt,
		)
		if err != nil {
			r.logger.Error("Failed to scan statement entry", "account_id", accountID.String(), "error", err)
			return decimal.Zero, nil, fmt.Errorf("failed to scan statement entry: %w", err)
		}
		entry.Type = statement.OperationType(opType)
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("Error iterating over statement entries", "account_id", accountID.String(), "error", err)
		return decimal.Zero, nil, fmt.Errorf("error iterating over statement entries: %w", err)
	}

	return statement.BalanceOf(entries), entries, nil
}

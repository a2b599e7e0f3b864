// Package postgres provides PostgreSQL implementations of the domain
// repositories. All balance-affecting writes run through tx-scoped copies
// obtained via WithTx so the engine controls the transaction boundary.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Lucas0204/Fin-API/internal/domain/account"
	"github.com/Lucas0204/Fin-API/internal/platform/persistence"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// AccountRepository implements the account.Repository interface for PostgreSQL
type AccountRepository struct {
	querier persistence.Querier // Can be *pgxpool.Pool or pgx.Tx
	logger  *slog.Logger
}

// NewAccountRepository creates a new PostgreSQL account repository
func NewAccountRepository(logger *slog.Logger, db *persistence.PostgresDB) account.Repository {
	return &AccountRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// WithTx returns a copy of the repository bound to the given transaction
func (r *AccountRepository) WithTx(tx pgx.Tx) account.Repository {
	return &AccountRepository{
		querier: tx,
		logger:  r.logger,
	}
}

// Create stores a new account
func (r *AccountRepository) Create(ctx context.Context, acc *account.Account) error {
	query := `
		INSERT INTO accounts (id, owner_name, email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.querier.Exec(ctx, query,
		acc.ID,
		acc.OwnerName,
		acc.Email,
		acc.CreatedAt,
		acc.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create account", "error", err)
		return fmt.Errorf("failed to create account: %w", err)
	}

	return nil
}

// FindByID retrieves an account by its ID
func (r *AccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	query := `
		SELECT id, owner_name, email, created_at, updated_at
		FROM accounts
		WHERE id = $1
	`

	var acc account.Account
	err := r.querier.QueryRow(ctx, query, id).Scan(
		&acc.ID,
		&acc.OwnerName,
		&acc.Email,
		&acc.CreatedAt,
		&acc.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, account.ErrAccountNotFound{AccountID: id}
		}
		r.logger.Error("Failed to find account", "id", id.String(), "error", err)
		return nil, fmt.Errorf("failed to find account: %w", err)
	}

	return &acc, nil
}

// LockForUpdate obtains a pessimistic lock on the account row. All
// withdrawals and transfer debits for an account serialize on this lock,
// so a balance check and the write it guards behave as one atomic unit.
func (r *AccountRepository) LockForUpdate(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	query := `
		SELECT id, owner_name, email, created_at, updated_at
		FROM accounts
		WHERE id = $1
		FOR UPDATE
	`

	var acc account.Account
	err := r.querier.QueryRow(ctx, query, id).Scan(
		&acc.ID,
		&acc.OwnerName,
		&acc.Email,
		&acc.CreatedAt,
		&acc.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, account.ErrAccountNotFound{AccountID: id}
		}
		r.logger.Error("Failed to lock account for update", "id", id.String(), "error", err)
		return nil, fmt.Errorf("failed to lock account for update: %w", err)
	}

	return &acc, nil
}

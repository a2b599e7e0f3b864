package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Lucas0204/Fin-API/internal/domain/statement"
	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatementRepository_Create(t *testing.T) {
	ctx := context.Background()
	logger := newTestLogger()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &StatementRepository{querier: mock, logger: logger}
	entry := statement.NewEntry(uuid.New(), statement.OperationDeposit, decimal.RequireFromString("100.25"), "salary")

	query := `
		INSERT INTO statement_entries \(id, account_id, type, amount, description, created_at, updated_at\)
		VALUES \(\$1, \$2, \$3, \$4, \$5, \$6, \$7\)
	`

	t.Run("success", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs(entry.ID, entry.AccountID, string(entry.Type), entry.Amount, entry.Description, entry.CreatedAt, entry.UpdatedAt).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		err := repo.Create(ctx, entry)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("failure", func(t *testing.T) {
		expectedErr := errors.New("db error")
		mock.ExpectExec(query).
			WithArgs(entry.ID, entry.AccountID, string(entry.Type), entry.Amount, entry.Description, entry.CreatedAt, entry.UpdatedAt).
			WillReturnError(expectedErr)

		err := repo.Create(ctx, entry)
		assert.ErrorIs(t, err, expectedErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestStatementRepository_GetBalance(t *testing.T) {
	ctx := context.Background()
	logger := newTestLogger()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &StatementRepository{querier: mock, logger: logger}
	accountID := uuid.New()

	t.Run("balance only", func(t *testing.T) {
		query := `
			SELECT COALESCE\(SUM\(CASE WHEN type = 'deposit' THEN amount ELSE -amount END\), 0\)
			FROM statement_entries
			WHERE account_id = \$1
		`
		rows := pgxmock.NewRows([]string{"coalesce"}).AddRow(decimal.RequireFromString("59.75"))
		mock.ExpectQuery(query).WithArgs(accountID).WillReturnRows(rows)

		balance, entries, err := repo.GetBalance(ctx, accountID, false)
		assert.NoError(t, err)
		assert.Nil(t, entries)
		assert.True(t, balance.Equal(decimal.RequireFromString("59.75")))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("with entries", func(t *testing.T) {
		query := `
			SELECT id, account_id, type, amount, description, created_at, updated_at
			FROM statement_entries
			WHERE account_id = \$1
			ORDER BY created_at ASC
		`
		now := time.Now()
		rows := pgxmock.NewRows([]string{"id", "account_id", "type", "amount", "description", "created_at", "updated_at"}).
			AddRow(uuid.New(), accountID, "deposit", decimal.RequireFromString("100"), "salary", now, now).
			AddRow(uuid.New(), accountID, "withdraw", decimal.RequireFromString("40.25"), "groceries", now, now)
		mock.ExpectQuery(query).WithArgs(accountID).WillReturnRows(rows)

		balance, entries, err := repo.GetBalance(ctx, accountID, true)
		assert.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, statement.OperationDeposit, entries[0].Type)
		assert.Equal(t, statement.OperationWithdraw, entries[1].Type)
		assert.True(t, balance.Equal(decimal.RequireFromString("59.75")), "balance derived from the scanned entries")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty account", func(t *testing.T) {
		query := `
			SELECT id, account_id, type, amount, description, created_at, updated_at
			FROM statement_entries
			WHERE account_id = \$1
			ORDER BY created_at ASC
		`
		rows := pgxmock.NewRows([]string{"id", "account_id", "type", "amount", "description", "created_at", "updated_at"})
		mock.ExpectQuery(query).WithArgs(accountID).WillReturnRows(rows)

		balance, entries, err := repo.GetBalance(ctx, accountID, true)
		assert.NoError(t, err)
		assert.Empty(t, entries)
		assert.True(t, balance.IsZero())
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

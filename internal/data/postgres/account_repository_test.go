package postgres

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/Lucas0204/Fin-API/internal/domain/account"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestAccountRepository_Create(t *testing.T) {
	ctx := context.Background()
	logger := newTestLogger()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &AccountRepository{querier: mock, logger: logger}

	acc := &account.Account{
		ID:        uuid.New(),
		OwnerName: "Test User",
		Email:     "test@example.com",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	query := `
		INSERT INTO accounts \(id, owner_name, email, created_at, updated_at\)
		VALUES \(\$1, \$2, \$3, \$4, \$5\)
	`

	t.Run("success", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs(acc.ID, acc.OwnerName, acc.Email, acc.CreatedAt, acc.UpdatedAt).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		err := repo.Create(ctx, acc)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("failure", func(t *testing.T) {
		expectedErr := errors.New("db error")
		mock.ExpectExec(query).
			WithArgs(acc.ID, acc.OwnerName, acc.Email, acc.CreatedAt, acc.UpdatedAt).
			WillReturnError(expectedErr)

		err := repo.Create(ctx, acc)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create account")
		assert.ErrorIs(t, err, expectedErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAccountRepository_FindByID(t *testing.T) {
	ctx := context.Background()
	logger := newTestLogger()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &AccountRepository{querier: mock, logger: logger}
	accID := uuid.New()
	now := time.Now()

	query := `
		SELECT id, owner_name, email, created_at, updated_at
		FROM accounts
		WHERE id = \$1
	`

	t.Run("success", func(t *testing.T) {
		rows := pgxmock.NewRows([]string{"id", "owner_name", "email", "created_at", "updated_at"}).
			AddRow(accID, "Test User", "test@example.com", now, now)
		mock.ExpectQuery(query).WithArgs(accID).WillReturnRows(rows)

		acc, err := repo.FindByID(ctx, accID)
		assert.NoError(t, err)
		assert.Equal(t, accID, acc.ID)
		assert.Equal(t, "Test User", acc.OwnerName)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery(query).WithArgs(accID).WillReturnError(pgx.ErrNoRows)

		acc, err := repo.FindByID(ctx, accID)
		assert.Error(t, err)
		assert.Nil(t, acc)
		var notFound account.ErrAccountNotFound
		assert.ErrorAs(t, err, &notFound)
		assert.Equal(t, accID, notFound.AccountID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAccountRepository_LockForUpdate(t *testing.T) {
	ctx := context.Background()
	logger := newTestLogger()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &AccountRepository{querier: mock, logger: logger}
	accID := uuid.New()
	now := time.Now()

	query := `
		SELECT id, owner_name, email, created_at, updated_at
		FROM accounts
		WHERE id = \$1
		FOR UPDATE
	`

	t.Run("success", func(t *testing.T) {
		rows := pgxmock.NewRows([]string{"id", "owner_name", "email", "created_at", "updated_at"}).
			AddRow(accID, "Test User", "test@example.com", now, now)
		mock.ExpectQuery(query).WithArgs(accID).WillReturnRows(rows)

		acc, err := repo.LockForUpdate(ctx, accID)
		assert.NoError(t, err)
		assert.Equal(t, accID, acc.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery(query).WithArgs(accID).WillReturnError(pgx.ErrNoRows)

		acc, err := repo.LockForUpdate(ctx, accID)
		assert.Nil(t, acc)
		var notFound account.ErrAccountNotFound
		assert.ErrorAs(t, err, &notFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

package postgres

import (
	"context"
	"testing"

	"github.com/Lucas0204/Fin-API/internal/domain/outbox"
	"github.com/Lucas0204/Fin-API/internal/domain/transfer"
	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOutboxMessage(t *testing.T) *outbox.Message {
	t.Helper()
	tr := transfer.NewTransfer(uuid.New(), uuid.New(), decimal.RequireFromString("25"), "rent")
	message, err := outbox.NewMessage(tr)
	require.NoError(t, err)
	return message
}

func TestOutboxRepository_Create(t *testing.T) {
	ctx := context.Background()
	logger := newTestLogger()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &OutboxRepository{querier: mock, logger: logger}
	message := newOutboxMessage(t)

	query := `
		INSERT INTO transfer_outbox \(transfer_id, sender_id, payload, status, attempts, created_at\)
		VALUES \(\$1, \$2, \$3, \$4, \$5, \$6\)
		RETURNING id
	`

	t.Run("success assigns id", func(t *testing.T) {
		rows := pgxmock.NewRows([]string{"id"}).AddRow(int64(42))
		mock.ExpectQuery(query).
			WithArgs(message.TransferID, message.SenderID, message.Payload, message.Status, message.Attempts, message.CreatedAt).
			WillReturnRows(rows)

		err := repo.Create(ctx, message)
		assert.NoError(t, err)
		assert.Equal(t, int64(42), message.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestOutboxRepository_GetPending(t *testing.T) {
	ctx := context.Background()
	logger := newTestLogger()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &OutboxRepository{querier: mock, logger: logger}

	query := `
		SELECT id, transfer_id, sender_id, payload, status, attempts, created_at, last_attempt_at
		FROM transfer_outbox
		WHERE status = \$1
		ORDER BY created_at ASC
		LIMIT \$2
	`

	t.Run("returns batch", func(t *testing.T) {
		first := newOutboxMessage(t)
		second := newOutboxMessage(t)
		rows := pgxmock.NewRows([]string{"id", "transfer_id", "sender_id", "payload", "status", "attempts", "created_at", "last_attempt_at"}).
			AddRow(int64(1), first.TransferID, first.SenderID, first.Payload, first.Status, 0, first.CreatedAt, nil).
			AddRow(int64(2), second.TransferID, second.SenderID, second.Payload, second.Status, 1, second.CreatedAt, nil)
		mock.ExpectQuery(query).WithArgs(outbox.StatusPending, 10).WillReturnRows(rows)

		messages, err := repo.GetPending(ctx, 10)
		assert.NoError(t, err)
		require.Len(t, messages, 2)
		assert.Equal(t, int64(1), messages[0].ID)
		assert.Equal(t, 1, messages[1].Attempts)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty result", func(t *testing.T) {
		rows := pgxmock.NewRows([]string{"id", "transfer_id", "sender_id", "payload", "status", "attempts", "created_at", "last_attempt_at"})
		mock.ExpectQuery(query).WithArgs(outbox.StatusPending, 10).WillReturnRows(rows)

		messages, err := repo.GetPending(ctx, 10)
		assert.NoError(t, err)
		assert.Empty(t, messages)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestOutboxRepository_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	logger := newTestLogger()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &OutboxRepository{querier: mock, logger: logger}

	query := `
		UPDATE transfer_outbox
		SET status = \$1, last_attempt_at = \$2
		WHERE id = \$3
	`

	t.Run("success", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs(outbox.StatusProcessed, pgxmock.AnyArg(), int64(7)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		err := repo.UpdateStatus(ctx, 7, outbox.StatusProcessed)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing message", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs(outbox.StatusProcessed, pgxmock.AnyArg(), int64(8)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		err := repo.UpdateStatus(ctx, 8, outbox.StatusProcessed)
		var notFound outbox.ErrMessageNotFound
		assert.ErrorAs(t, err, &notFound)
		assert.Equal(t, int64(8), notFound.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestOutboxRepository_IncrementAttempts(t *testing.T) {
	ctx := context.Background()
	logger := newTestLogger()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &OutboxRepository{querier: mock, logger: logger}

	query := `
		UPDATE transfer_outbox
		SET attempts = attempts \+ 1, last_attempt_at = \$1
		WHERE id = \$2
	`

	t.Run("success", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs(pgxmock.AnyArg(), int64(7)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		err := repo.IncrementAttempts(ctx, 7)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing message", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs(pgxmock.AnyArg(), int64(9)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		err := repo.IncrementAttempts(ctx, 9)
		var notFound outbox.ErrMessageNotFound
		assert.ErrorAs(t, err, &notFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

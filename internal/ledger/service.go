// Package ledger implements the balance and transfer engine: the rules that
// derive balances from entries, keep withdrawals and transfer debits within
// available funds, and record a transfer as a pair of linked entries plus a
// denormalized transfer record.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Lucas0204/Fin-API/internal/domain/account"
	"github.com/Lucas0204/Fin-API/internal/domain/audit"
	"github.com/Lucas0204/Fin-API/internal/domain/outbox"
	"github.com/Lucas0204/Fin-API/internal/domain/statement"
	"github.com/Lucas0204/Fin-API/internal/domain/transfer"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// ErrInvalidAmount rejects non-positive deposit amounts. The HTTP boundary
// already enforces positivity; the engine keeps the check for other callers.
var ErrInvalidAmount = errors.New("amount must be positive")

// TxRunner executes a function inside one database transaction, rolling the
// whole scope back on error. Satisfied by persistence.PostgresDB.
type TxRunner interface {
	ExecuteTx(ctx context.Context, fn func(tx pgx.Tx) error) error
}

// AuditRecorder receives best-effort operation audit records. Implementations
// must never block the request path or surface errors.
type AuditRecorder interface {
	Record(record *audit.OperationRecord)
}

// BalanceStatement is the balance read model: the derived balance plus the
// decoded entry sequence in insertion order (oldest first). Statement
// elements are *statement.Entry or *TransferView.
type BalanceStatement struct {
	Balance   decimal.Decimal `json:"balance"`
	Statement []any           `json:"statement"`
}

// Service is the ledger engine. It owns no state beyond its collaborators
// and is safe for concurrent use; per-account serialization comes from the
// row lock taken inside each balance-affecting transaction.
type Service struct {
	db            TxRunner
	accountRepo   account.Repository
	statementRepo statement.Repository
	transferRepo  transfer.Repository
	outboxRepo    outbox.Repository
	recorder      AuditRecorder
	logger        *slog.Logger
}

// NewService wires the engine with its collaborators
func NewService(
	logger *slog.Logger,
	db TxRunner,
	accountRepo account.Repository,
	statementRepo statement.Repository,
	transferRepo transfer.Repository,
	outboxRepo outbox.Repository,
	recorder AuditRecorder,
) *Service {
	return &Service{
		db:            db,
		accountRepo:   accountRepo,
		statementRepo: statementRepo,
		transferRepo:  transferRepo,
		outboxRepo:    outboxRepo,
		recorder:      recorder,
		logger:        logger,
	}
}

// CreateAccount registers a new account holder
func (s *Service) CreateAccount(ctx context.Context, ownerName, email string) (*account.Account, error) {
	acc, err := account.NewAccount(ownerName, email)
	if err != nil {
		return nil, err
	}
	if err := s.accountRepo.Create(ctx, acc); err != nil {
		return nil, err
	}

	s.logger.Info("Account created", "account_id", acc.ID.String())
	return acc, nil
}

// GetAccount fetches a single account by id
func (s *Service) GetAccount(ctx context.Context, accountID uuid.UUID) (*account.Account, error) {
	return s.accountRepo.FindByID(ctx, accountID)
}

// Deposit appends a deposit entry for an existing account. Deposits touch no
// invariant, so no lock or transaction is needed.
func (s *Service) Deposit(ctx context.Context, accountID uuid.UUID, amount decimal.Decimal, description string) (*statement.Entry, error) {
	if _, err := s.accountRepo.FindByID(ctx, accountID); err != nil {
		return nil, err
	}
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	entry := statement.NewEntry(accountID, statement.OperationDeposit, amount, description)
	if err := s.statementRepo.Create(ctx, entry); err != nil {
		return nil, err
	}

	s.logger.Info("Deposit recorded", "account_id", accountID.String(), "amount", amount.String())
	s.audit(audit.KindDeposit, accountID, nil, amount, audit.StatusCompleted, "")

	return entry, nil
}

// Withdraw appends a withdraw entry, holding the account's row lock so the
// balance check and the debit write form one atomic unit.
func (s *Service) Withdraw(ctx context.Context, accountID uuid.UUID, amount decimal.Decimal, description string) (*statement.Entry, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	var entry *statement.Entry
	err := s.db.ExecuteTx(ctx, func(tx pgx.Tx) error {
		if _, err := s.accountRepo.WithTx(tx).LockForUpdate(ctx, accountID); err != nil {
			return err
		}

		statements := s.statementRepo.WithTx(tx)
		balance, _, err := statements.GetBalance(ctx, accountID, false)
		if err != nil {
			return err
		}
		if balance.LessThan(amount) {
			return transfer.ErrInsufficientFunds
		}

		entry = statement.NewEntry(accountID, statement.OperationWithdraw, amount, description)
		return statements.Create(ctx, entry)
	})
	if err != nil {
		if errors.Is(err, transfer.ErrInsufficientFunds) {
			s.logger.Warn("Withdrawal rejected", "account_id", accountID.String(), "amount", amount.String(), "reason", err.Error())
			s.audit(audit.KindWithdraw, accountID, nil, amount, audit.StatusRejected, err.Error())
		}
		return nil, err
	}

	s.logger.Info("Withdrawal recorded", "account_id", accountID.String(), "amount", amount.String())
	s.audit(audit.KindWithdraw, accountID, nil, amount, audit.StatusCompleted, "")

	return entry, nil
}

// Transfer moves funds between two accounts. Validation order is fixed:
// self-transfer, sender existence, receiver existence, available funds; the
// first failing check wins and nothing is written. On success exactly one
// transfer record, two ledger entries, and one outbox message are committed
// atomically, with the sender row locked from the balance check through the
// writes so concurrent transfers cannot jointly overdraw the account.
func (s *Service) Transfer(ctx context.Context, senderID, receiverID uuid.UUID, description string, amount decimal.Decimal) (*transfer.Transfer, error) {
	if senderID == receiverID {
		s.logger.Warn("Transfer rejected", "sender_id", senderID.String(), "reason", transfer.ErrSelfTransfer.Error())
		s.audit(audit.KindTransfer, senderID, &receiverID, amount, audit.StatusRejected, transfer.ErrSelfTransfer.Error())
		return nil, transfer.ErrSelfTransfer
	}

	var created *transfer.Transfer
	err := s.db.ExecuteTx(ctx, func(tx pgx.Tx) error {
		accounts := s.accountRepo.WithTx(tx)

		// Locking the sender proves its existence and serializes every
		// balance-affecting operation on it until commit.
		if _, err := accounts.LockForUpdate(ctx, senderID); err != nil {
			if errors.Is(err, account.ErrAccountNotFound{}) {
				return transfer.ErrSenderNotFound
			}
			return err
		}

		if _, err := accounts.FindByID(ctx, receiverID); err != nil {
			if errors.Is(err, account.ErrAccountNotFound{}) {
				return transfer.ErrReceiverNotFound
			}
			return err
		}

		statements := s.statementRepo.WithTx(tx)
		balance, _, err := statements.GetBalance(ctx, senderID, false)
		if err != nil {
			return err
		}
		// A transfer of the exact balance is allowed; only amount > balance
		// (or a non-positive amount reaching this far) is rejected.
		if !amount.IsPositive() || balance.LessThan(amount) {
			return transfer.ErrInsufficientFunds
		}

		created = transfer.NewTransfer(senderID, receiverID, amount, description)
		if err := s.transferRepo.WithTx(tx).Create(ctx, created); err != nil {
			return err
		}

		debit := statement.NewEntry(senderID, statement.OperationWithdraw, amount, senderLegDescription(receiverID, description))
		if err := statements.Create(ctx, debit); err != nil {
			return err
		}

		credit := statement.NewEntry(receiverID, statement.OperationDeposit, amount, receiverLegDescription(senderID, description))
		if err := statements.Create(ctx, credit); err != nil {
			return err
		}

		msg, err := outbox.NewMessage(created)
		if err != nil {
			return err
		}
		return s.outboxRepo.WithTx(tx).Create(ctx, msg)
	})
	if err != nil {
		if isBusinessRejection(err) {
			s.logger.Warn("Transfer rejected",
				"sender_id", senderID.String(),
				"receiver_id", receiverID.String(),
				"amount", amount.String(),
				"reason", err.Error(),
			)
			s.audit(audit.KindTransfer, senderID, &receiverID, amount, audit.StatusRejected, err.Error())
		} else {
			s.logger.Error("Transfer failed",
				"sender_id", senderID.String(),
				"receiver_id", receiverID.String(),
				"error", err,
			)
		}
		return nil, err
	}

	s.logger.Info("Transfer committed",
		"transfer_id", created.ID.String(),
		"sender_id", senderID.String(),
		"receiver_id", receiverID.String(),
		"amount", amount.String(),
	)
	s.audit(audit.KindTransfer, senderID, &receiverID, amount, audit.StatusCompleted, "")

	return created, nil
}

// GetBalance returns the derived balance together with the decoded statement
// for an existing account. The existence check runs before any balance work.
func (s *Service) GetBalance(ctx context.Context, accountID uuid.UUID) (*BalanceStatement, error) {
	if _, err := s.accountRepo.FindByID(ctx, accountID); err != nil {
		return nil, err
	}

	balance, entries, err := s.statementRepo.GetBalance(ctx, accountID, true)
	if err != nil {
		return nil, err
	}

	return &BalanceStatement{
		Balance:   balance,
		Statement: DecodeStatement(entries),
	}, nil
}

func (s *Service) audit(kind audit.OperationKind, accountID uuid.UUID, counterparty *uuid.UUID, amount decimal.Decimal, status audit.OperationStatus, reason string) {
	if s.recorder == nil {
		return
	}
	s.recorder.Record(&audit.OperationRecord{
		ID:             uuid.New(),
		Kind:           kind,
		AccountID:      accountID,
		CounterpartyID: counterparty,
		Amount:         amount.String(),
		Status:         status,
		Reason:         reason,
		RecordedAt:     time.Now(),
	})
}

func isBusinessRejection(err error) bool {
	return errors.Is(err, transfer.ErrSelfTransfer) ||
		errors.Is(err, transfer.ErrSenderNotFound) ||
		errors.Is(err, transfer.ErrReceiverNotFound) ||
		errors.Is(err, transfer.ErrInsufficientFunds)
}

func senderLegDescription(receiverID uuid.UUID, description string) string {
	return fmt.Sprintf("[TRANSFER] - transference to %s - %s", receiverID, description)
}

func receiverLegDescription(senderID uuid.UUID, description string) string {
	return fmt.Sprintf("[TRANSFER] - transference from %s - %s", senderID, description)
}

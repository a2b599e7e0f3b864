package handler

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/Lucas0204/Fin-API/internal/domain/account"
	"github.com/Lucas0204/Fin-API/internal/domain/statement"
	"github.com/Lucas0204/Fin-API/internal/domain/transfer"
	"github.com/Lucas0204/Fin-API/internal/ledger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LedgerService is the slice of the ledger engine the ledger handler needs
type LedgerService interface {
	Deposit(ctx context.Context, accountID uuid.UUID, amount decimal.Decimal, description string) (*statement.Entry, error)
	Withdraw(ctx context.Context, accountID uuid.UUID, amount decimal.Decimal, description string) (*statement.Entry, error)
	Transfer(ctx context.Context, senderID, receiverID uuid.UUID, description string, amount decimal.Decimal) (*transfer.Transfer, error)
	GetBalance(ctx context.Context, accountID uuid.UUID) (*ledger.BalanceStatement, error)
}

// LedgerHandler handles HTTP requests for balance-affecting operations
type LedgerHandler struct {
	service LedgerService
	logger  *slog.Logger
}

// NewLedgerHandler creates a new ledger handler
func NewLedgerHandler(logger *slog.Logger, service LedgerService) *LedgerHandler {
	return &LedgerHandler{
		service: service,
		logger:  logger,
	}
}

// Deposit credits an account
func (h *LedgerHandler) Deposit(c *gin.Context) {
	id, ok := parseAccountID(c)
	if !ok {
		return
	}

	var req OperationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	entry, err := h.service.Deposit(c.Request.Context(), id, req.Amount, req.Description)
	if err != nil {
		h.respondOperationError(c, err)
		return
	}

	RespondCreated(c, mapEntryToResponse(entry))
}

// Withdraw debits an account, rejecting overdrafts
func (h *LedgerHandler) Withdraw(c *gin.Context) {
	id, ok := parseAccountID(c)
	if !ok {
		return
	}

	var req OperationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	entry, err := h.service.Withdraw(c.Request.Context(), id, req.Amount, req.Description)
	if err != nil {
		h.respondOperationError(c, err)
		return
	}

	RespondCreated(c, mapEntryToResponse(entry))
}

// Transfer moves funds between two accounts
func (h *LedgerHandler) Transfer(c *gin.Context) {
	var req CreateTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	// uuid binding already validated the format
	senderID := uuid.MustParse(req.SenderID)
	receiverID := uuid.MustParse(req.ReceiverID)

	t, err := h.service.Transfer(c.Request.Context(), senderID, receiverID, req.Description, req.Amount)
	if err != nil {
		h.respondOperationError(c, err)
		return
	}

	RespondCreated(c, TransferResponse{
		ID:          t.ID.String(),
		SenderID:    t.SenderID.String(),
		ReceiverID:  t.ReceiverID.String(),
		Amount:      t.Amount,
		Description: t.Description,
		Type:        t.Type,
		CreatedAt:   t.CreatedAt.Format(time.RFC3339),
	})
}

// GetBalance returns the derived balance and decoded statement
func (h *LedgerHandler) GetBalance(c *gin.Context) {
	id, ok := parseAccountID(c)
	if !ok {
		return
	}

	result, err := h.service.GetBalance(c.Request.Context(), id)
	if err != nil {
		h.respondOperationError(c, err)
		return
	}

	RespondOK(c, BalanceResponse{
		Balance:   result.Balance,
		Statement: result.Statement,
	})
}

// respondOperationError maps engine errors onto HTTP statuses: business
// rejections are 400, missing parties 404, everything else 500.
func (h *LedgerHandler) respondOperationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, transfer.ErrSelfTransfer),
		errors.Is(err, transfer.ErrInsufficientFunds),
		errors.Is(err, ledger.ErrInvalidAmount):
		RespondBadRequest(c, err.Error())
	case errors.Is(err, transfer.ErrSenderNotFound),
		errors.Is(err, transfer.ErrReceiverNotFound):
		RespondNotFound(c, err.Error())
	case errors.Is(err, account.ErrAccountNotFound{}):
		RespondNotFound(c, "Account not found")
	default:
		h.logger.Error("Ledger operation failed", "error", err)
		RespondInternalError(c)
	}
}

func mapEntryToResponse(entry *statement.Entry) EntryResponse {
	return EntryResponse{
		ID:          entry.ID.String(),
		AccountID:   entry.AccountID.String(),
		Type:        string(entry.Type),
		Amount:      entry.Amount,
		Description: entry.Description,
		CreatedAt:   entry.CreatedAt.Format(time.RFC3339),
	}
}

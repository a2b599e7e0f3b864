// Package handler translates HTTP requests into ledger engine calls and maps
// engine errors onto HTTP status codes.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/Lucas0204/Fin-API/internal/domain/account"
	"github.com/Lucas0204/Fin-API/internal/domain/audit"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AccountService is the slice of the ledger engine the account handler needs
type AccountService interface {
	CreateAccount(ctx context.Context, ownerName, email string) (*account.Account, error)
	GetAccount(ctx context.Context, accountID uuid.UUID) (*account.Account, error)
}

// AccountHandler handles HTTP requests for account operations
type AccountHandler struct {
	service   AccountService
	auditRepo audit.Repository
	logger    *slog.Logger
}

// NewAccountHandler creates a new account handler. The audit repository backs
// the operations listing and may be nil when auditing is disabled.
func NewAccountHandler(logger *slog.Logger, service AccountService, auditRepo audit.Repository) *AccountHandler {
	return &AccountHandler{
		service:   service,
		auditRepo: auditRepo,
		logger:    logger,
	}
}

// Create handles creation of a new account
func (h *AccountHandler) Create(c *gin.Context) {
	var req CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	acc, err := h.service.CreateAccount(c.Request.Context(), req.OwnerName, req.Email)
	if err != nil {
		if errors.Is(err, account.ErrEmptyOwnerName) {
			RespondBadRequest(c, err.Error())
			return
		}
		h.logger.Error("Failed to create account", "error", err)
		RespondInternalError(c)
		return
	}

	RespondCreated(c, mapAccountToResponse(acc))
}

// GetByID retrieves an account by its ID, returning 404 if not found
func (h *AccountHandler) GetByID(c *gin.Context) {
	id, ok := parseAccountID(c)
	if !ok {
		return
	}

	acc, err := h.service.GetAccount(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, account.ErrAccountNotFound{}) {
			RespondNotFound(c, "Account not found")
			return
		}
		h.logger.Error("Failed to get account", "id", id.String(), "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, mapAccountToResponse(acc))
}

// ListOperations returns the account's audit trail, newest first
func (h *AccountHandler) ListOperations(c *gin.Context) {
	id, ok := parseAccountID(c)
	if !ok {
		return
	}

	var pagination PaginationParams
	if err := c.ShouldBindQuery(&pagination); err != nil {
		RespondBadRequest(c, "Invalid pagination parameters: "+err.Error())
		return
	}

	if h.auditRepo == nil {
		RespondOK(c, []any{})
		return
	}

	offset := (pagination.Page - 1) * pagination.PerPage
	records, err := h.auditRepo.ListByAccountID(c.Request.Context(), id, pagination.PerPage, offset)
	if err != nil {
		h.logger.Error("Failed to list operations", "id", id.String(), "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, records)
}

// parseAccountID reads the :id path parameter, answering 400 on garbage input
func parseAccountID(c *gin.Context) (uuid.UUID, bool) {
	idParam := c.Param("id")
	id, err := uuid.Parse(idParam)
	if err != nil {
		RespondBadRequest(c, "Invalid account ID")
		return uuid.Nil, false
	}
	return id, true
}

// mapAccountToResponse maps an account entity to an account response DTO
func mapAccountToResponse(acc *account.Account) AccountResponse {
	return AccountResponse{
		ID:        acc.ID.String(),
		OwnerName: acc.OwnerName,
		Email:     acc.Email,
		CreatedAt: acc.CreatedAt.Format(time.RFC3339),
		UpdatedAt: acc.UpdatedAt.Format(time.RFC3339),
	}
}

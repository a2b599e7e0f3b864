package handler

import (
	"github.com/shopspring/decimal"
)

// CreateAccountRequest represents a request to create a new account
type CreateAccountRequest struct {
	OwnerName string `json:"owner_name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
}

// AccountResponse represents an account in API responses
type AccountResponse struct {
	ID        string `json:"id"`
	OwnerName string `json:"owner_name"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// OperationRequest represents a deposit or withdrawal request. Amounts are
// decimal strings or JSON numbers; positivity is checked by the engine.
type OperationRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description" binding:"required"`
}

// EntryResponse represents a ledger entry in API responses
type EntryResponse struct {
	ID          string          `json:"id"`
	AccountID   string          `json:"account_id"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	CreatedAt   string          `json:"created_at"`
}

// CreateTransferRequest represents a request to move funds between accounts
type CreateTransferRequest struct {
	SenderID    string          `json:"sender_id" binding:"required,uuid"`
	ReceiverID  string          `json:"receiver_id" binding:"required,uuid"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description" binding:"required"`
}

// TransferResponse represents a committed transfer in API responses
type TransferResponse struct {
	ID          string          `json:"id"`
	SenderID    string          `json:"sender_id"`
	ReceiverID  string          `json:"receiver_id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Type        string          `json:"type"`
	CreatedAt   string          `json:"created_at"`
}

// BalanceResponse represents the balance view: the derived balance plus the
// decoded statement, oldest entry first.
type BalanceResponse struct {
	Balance   decimal.Decimal `json:"balance"`
	Statement []any           `json:"statement"`
}

// PaginationParams represents pagination parameters for list endpoints
type PaginationParams struct {
	Page    int `form:"page,default=1" binding:"min=1"`
	PerPage int `form:"per_page,default=10" binding:"min=1,max=100"`
}

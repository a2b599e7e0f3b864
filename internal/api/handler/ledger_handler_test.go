package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/Lucas0204/Fin-API/internal/domain/statement"
	"github.com/Lucas0204/Fin-API/internal/domain/transfer"
	"github.com/Lucas0204/Fin-API/internal/ledger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockLedgerService struct {
	mock.Mock
}

func (m *mockLedgerService) Deposit(ctx context.Context, accountID uuid.UUID, amount decimal.Decimal, description string) (*statement.Entry, error) {
	args := m.Called(ctx, accountID, amount, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*statement.Entry), args.Error(1)
}

func (m *mockLedgerService) Withdraw(ctx context.Context, accountID uuid.UUID, amount decimal.Decimal, description string) (*statement.Entry, error) {
	args := m.Called(ctx, accountID, amount, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*statement.Entry), args.Error(1)
}

func (m *mockLedgerService) Transfer(ctx context.Context, senderID, receiverID uuid.UUID, description string, amount decimal.Decimal) (*transfer.Transfer, error) {
	args := m.Called(ctx, senderID, receiverID, description, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*transfer.Transfer), args.Error(1)
}

func (m *mockLedgerService) GetBalance(ctx context.Context, accountID uuid.UUID) (*ledger.BalanceStatement, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.BalanceStatement), args.Error(1)
}

func newLedgerRouter(service *mockLedgerService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	h := NewLedgerHandler(logger, service)

	r := gin.New()
	r.POST("/api/v1/accounts/:id/deposit", h.Deposit)
	r.POST("/api/v1/accounts/:id/withdraw", h.Withdraw)
	r.POST("/api/v1/transfers", h.Transfer)
	r.GET("/api/v1/accounts/:id/balance", h.GetBalance)
	return r
}

func performJSON(t *testing.T, r *gin.Engine, method, url string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestLedgerHandler_Transfer(t *testing.T) {
	senderID := uuid.New()
	receiverID := uuid.New()
	amount := decimal.RequireFromString("30.50")

	validBody := gin.H{
		"sender_id":   senderID.String(),
		"receiver_id": receiverID.String(),
		"amount":      "30.50",
		"description": "dinner split",
	}

	t.Run("Success", func(t *testing.T) {
		service := new(mockLedgerService)
		created := transfer.NewTransfer(senderID, receiverID, amount, "dinner split")
		service.On("Transfer", mock.Anything, senderID, receiverID, "dinner split", mock.MatchedBy(func(a decimal.Decimal) bool {
			return a.Equal(amount)
		})).Return(created, nil)

		w := performJSON(t, newLedgerRouter(service), http.MethodPost, "/api/v1/transfers", validBody)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), created.ID.String())
		assert.Contains(t, w.Body.String(), `"type":"transfer"`)
		service.AssertExpectations(t)
	})

	t.Run("MissingFields", func(t *testing.T) {
		service := new(mockLedgerService)
		w := performJSON(t, newLedgerRouter(service), http.MethodPost, "/api/v1/transfers", gin.H{
			"sender_id": senderID.String(),
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		service.AssertNotCalled(t, "Transfer", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("MalformedUUID", func(t *testing.T) {
		service := new(mockLedgerService)
		body := gin.H{
			"sender_id":   "not-a-uuid",
			"receiver_id": receiverID.String(),
			"amount":      "10",
			"description": "x",
		}
		w := performJSON(t, newLedgerRouter(service), http.MethodPost, "/api/v1/transfers", body)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	statusCases := []struct {
		name   string
		err    error
		status int
	}{
		{"SelfTransfer", transfer.ErrSelfTransfer, http.StatusBadRequest},
		{"InsufficientFunds", transfer.ErrInsufficientFunds, http.StatusBadRequest},
		{"SenderNotFound", transfer.ErrSenderNotFound, http.StatusNotFound},
		{"ReceiverNotFound", transfer.ErrReceiverNotFound, http.StatusNotFound},
		{"StorageFailure", fmt.Errorf("connection reset"), http.StatusInternalServerError},
	}

	for _, tc := range statusCases {
		t.Run(tc.name, func(t *testing.T) {
			service := new(mockLedgerService)
			service.On("Transfer", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
				Return(nil, tc.err)

			w := performJSON(t, newLedgerRouter(service), http.MethodPost, "/api/v1/transfers", validBody)
			assert.Equal(t, tc.status, w.Code)
		})
	}
}

func TestLedgerHandler_Deposit(t *testing.T) {
	accountID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		service := new(mockLedgerService)
		entry := statement.NewEntry(accountID, statement.OperationDeposit, decimal.RequireFromString("25"), "salary")
		service.On("Deposit", mock.Anything, accountID, mock.Anything, "salary").Return(entry, nil)

		w := performJSON(t, newLedgerRouter(service), http.MethodPost, "/api/v1/accounts/"+accountID.String()+"/deposit", gin.H{
			"amount":      "25",
			"description": "salary",
		})

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"type":"deposit"`)
	})

	t.Run("InvalidAccountID", func(t *testing.T) {
		service := new(mockLedgerService)
		w := performJSON(t, newLedgerRouter(service), http.MethodPost, "/api/v1/accounts/garbage/deposit", gin.H{
			"amount":      "25",
			"description": "salary",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		service.AssertNotCalled(t, "Deposit", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("NonPositiveAmount", func(t *testing.T) {
		service := new(mockLedgerService)
		service.On("Deposit", mock.Anything, accountID, mock.Anything, "zero").
			Return(nil, ledger.ErrInvalidAmount)

		w := performJSON(t, newLedgerRouter(service), http.MethodPost, "/api/v1/accounts/"+accountID.String()+"/deposit", gin.H{
			"amount":      "-5",
			"description": "zero",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLedgerHandler_Withdraw(t *testing.T) {
	accountID := uuid.New()

	t.Run("InsufficientFunds", func(t *testing.T) {
		service := new(mockLedgerService)
		service.On("Withdraw", mock.Anything, accountID, mock.Anything, "rent").
			Return(nil, transfer.ErrInsufficientFunds)

		w := performJSON(t, newLedgerRouter(service), http.MethodPost, "/api/v1/accounts/"+accountID.String()+"/withdraw", gin.H{
			"amount":      "100",
			"description": "rent",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "insufficient funds")
	})

	t.Run("Success", func(t *testing.T) {
		service := new(mockLedgerService)
		entry := statement.NewEntry(accountID, statement.OperationWithdraw, decimal.RequireFromString("40"), "groceries")
		service.On("Withdraw", mock.Anything, accountID, mock.Anything, "groceries").Return(entry, nil)

		w := performJSON(t, newLedgerRouter(service), http.MethodPost, "/api/v1/accounts/"+accountID.String()+"/withdraw", gin.H{
			"amount":      "40",
			"description": "groceries",
		})

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"type":"withdraw"`)
	})
}

func TestLedgerHandler_GetBalance(t *testing.T) {
	accountID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		service := new(mockLedgerService)
		entry := statement.NewEntry(accountID, statement.OperationDeposit, decimal.RequireFromString("100"), "salary")
		service.On("GetBalance", mock.Anything, accountID).Return(&ledger.BalanceStatement{
			Balance:   decimal.RequireFromString("100"),
			Statement: []any{entry},
		}, nil)

		w := performJSON(t, newLedgerRouter(service), http.MethodGet, "/api/v1/accounts/"+accountID.String()+"/balance", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"balance":"100"`)
		assert.Contains(t, w.Body.String(), `"statement"`)
	})

	t.Run("AccountNotFound", func(t *testing.T) {
		service := new(mockLedgerService)
		service.On("GetBalance", mock.Anything, accountID).
			Return(nil, accountNotFoundErr(accountID))

		w := performJSON(t, newLedgerRouter(service), http.MethodGet, "/api/v1/accounts/"+accountID.String()+"/balance", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

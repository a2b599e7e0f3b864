package statement

import "github.com/shopspring/decimal"

// BalanceOf derives an account balance from its entries: deposits add,
// withdrawals subtract. Order-independent; an empty slice yields zero.
func BalanceOf(entries []*Entry) decimal.Decimal {
	balance := decimal.Zero
	for _, entry := range entries {
		switch entry.Type {
		case OperationDeposit:
			balance = balance.Add(entry.Amount)
		case OperationWithdraw:
			balance = balance.Sub(entry.Amount)
		}
	}
	return balance
}

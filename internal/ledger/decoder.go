package ledger

import (
	"strings"
	"time"

	"github.com/Lucas0204/Fin-API/internal/domain/statement"
	"github.com/Lucas0204/Fin-API/internal/domain/transfer"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransferView is a withdraw entry reshaped for presentation once it is
// recognized as the sending leg of a transfer. It mimics a transfer record
// without requiring a join against the transfers table.
type TransferView struct {
	ID          uuid.UUID       `json:"id"`
	SenderID    uuid.UUID       `json:"sender_id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Type        string          `json:"type"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// DecodeStatement reshapes the withdraw entries that carry the transfer
// marker and passes everything else through unchanged, preserving order.
func DecodeStatement(entries []*statement.Entry) []any {
	items := make([]any, len(entries))
	for i, entry := range entries {
		items[i] = entry
	}
	return DecodeItems(items)
}

// DecodeItems is the re-entrant form of DecodeStatement: already-reshaped
// TransferViews and anything else that is not a ledger entry pass through
// untouched, so decoding an already-decoded statement is a no-op.
func DecodeItems(items []any) []any {
	decoded := make([]any, len(items))
	for i, item := range items {
		entry, ok := item.(*statement.Entry)
		if !ok {
			decoded[i] = item
			continue
		}
		decoded[i] = decodeEntry(entry)
	}
	return decoded
}

func decodeEntry(entry *statement.Entry) any {
	if entry.Type != statement.OperationWithdraw {
		return entry
	}
	if bracketTag(entry.Description) != transfer.TypeTransfer {
		return entry
	}

	return &TransferView{
		ID:          entry.ID,
		SenderID:    entry.AccountID,
		Amount:      entry.Amount,
		Description: entry.Description,
		Type:        transfer.TypeTransfer,
		CreatedAt:   entry.CreatedAt,
		UpdatedAt:   entry.UpdatedAt,
	}
}

// bracketTag extracts the lower-cased text between the first '[' and the
// first ']' of a description. The scan is deliberately permissive: a missing
// '[' starts the slice at the beginning, a missing ']' ends it one rune
// before the end, and an end before the start yields an empty tag. Degenerate
// descriptions therefore produce a tag that simply fails the comparison
// instead of an error.
func bracketTag(description string) string {
	runes := []rune(description)

	start := runeIndex(runes, '[') + 1
	end := runeIndex(runes, ']')
	if end < 0 {
		end = len(runes) + end
		if end < 0 {
			end = 0
		}
	}

	if start >= end {
		return ""
	}

	return strings.ToLower(string(runes[start:end]))
}

func runeIndex(runes []rune, target rune) int {
	for i, r := range runes {
		if r == target {
			return i
		}
	}
	return -1
}

// Package account holds the account entity and its persistence contract.
// Account management proper (authentication, profiles) lives outside this
// service; the ledger core only needs accounts to exist and to be lockable.
package account

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrEmptyOwnerName = errors.New("owner name cannot be empty")

// Account represents a ledger account holder
type Account struct {
	ID        uuid.UUID `json:"id"`
	OwnerName string    `json:"owner_name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewAccount creates an account with a fresh identity and timestamps
func NewAccount(ownerName string, email string) (*Account, error) {
	if ownerName == "" {
		return nil, ErrEmptyOwnerName
	}

	now := time.Now()
	return &Account{
		ID:        uuid.New(),
		OwnerName: ownerName,
		Email:     email,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

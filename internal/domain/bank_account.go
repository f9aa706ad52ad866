package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyBankAccountID   = errors.New("bank account ID cannot be empty")
	ErrEmptyBankName        = errors.New("bank name cannot be empty")
	ErrEmptyIBAN            = errors.New("IBAN cannot be empty")
	ErrEmptySWIFT           = errors.New("SWIFT code cannot be empty")
	ErrEmptyBankAccountUser = errors.New("bank account must belong to a user")
)

// BankAccount stores a user's payout account details.
type BankAccount struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	BankName  string    `json:"bank_name"`
	IBAN      string    `json:"iban"`
	SWIFT     string    `json:"swift"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewBankAccount creates a bank account owned by the given user.
// Returns an error if validation fails.
func NewBankAccount(userID uuid.UUID, bankName, iban, swift string) (*BankAccount, error) {
	now := time.Now().UTC()
	account := &BankAccount{
		ID:        uuid.New(),
		UserID:    userID,
		BankName:  bankName,
		IBAN:      iban,
		SWIFT:     swift,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := account.Validate(); err != nil {
		return nil, err
	}

	return account, nil
}

// Validate checks if the BankAccount has valid data.
func (b *BankAccount) Validate() error {
	if b.ID == uuid.Nil {
		return ErrEmptyBankAccountID
	}
	if b.UserID == uuid.Nil {
		return ErrEmptyBankAccountUser
	}
	if b.BankName == "" {
		return ErrEmptyBankName
	}
	if b.IBAN == "" {
		return ErrEmptyIBAN
	}
	if b.SWIFT == "" {
		return ErrEmptySWIFT
	}
	return nil
}

// CheckOwner reports whether the given user owns this bank account.
func (b *BankAccount) CheckOwner(userID uuid.UUID) bool {
	return b.UserID == userID
}

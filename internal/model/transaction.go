package model

import (
	"fmt"
	"time"
)

// TransactionType indicates whether money left or entered the account.
type TransactionType string

const (
	// TransactionExpense is money spent.
	TransactionExpense TransactionType = "expense"
	// TransactionIncome is money received.
	TransactionIncome TransactionType = "income"
)

// ParseTransactionType validates a user-supplied transaction type.
func ParseTransactionType(s string) (TransactionType, error) {
	switch TransactionType(s) {
	case TransactionExpense, TransactionIncome:
		return TransactionType(s), nil
	default:
		return "", fmt.Errorf("invalid transaction type %q: must be expense or income", s)
	}
}

// Transaction represents a single recorded expense or income entry.
// Amount is always stored as a positive face value in Currency.
type Transaction struct {
	Date     time.Time       `json:"date"`
	ID       string          `json:"id"`
	Category string          `json:"category"`
	Note     string          `json:"note"`
	Type     TransactionType `json:"type"`
	Currency string          `json:"currency,omitempty"`
	Amount   float64         `json:"amount"`
}

// IsExpense reports whether the transaction counts towards spending.
func (t Transaction) IsExpense() bool {
	return t.Type == TransactionExpense
}

// Label returns the note when present, otherwise the category.
func (t Transaction) Label() string {
	if t.Note != "" {
		return t.Note
	}
	return t.Category
}

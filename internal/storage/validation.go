package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/spendwise/internal/model"
)

// Validation errors.
var (
	ErrNilContext      = errors.New("context cannot be nil")
	ErrEmptyString     = errors.New("string parameter cannot be empty")
	ErrInvalidModel    = errors.New("unsupported model")
	ErrInvalidSnapshot = errors.New("invalid snapshot")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateSnapshot rejects data that could not have come from the app itself.
func validateSnapshot(s model.Snapshot) error {
	if s.Salary < 0 {
		return fmt.Errorf("%w: negative salary", ErrInvalidSnapshot)
	}
	for _, b := range s.Budgets {
		if strings.TrimSpace(b.Category) == "" {
			return fmt.Errorf("%w: budget %s has no category", ErrInvalidSnapshot, b.ID)
		}
		if b.PlannedAmount < 0 {
			return fmt.Errorf("%w: budget %s has negative amount", ErrInvalidSnapshot, b.ID)
		}
	}
	for _, t := range s.Transactions {
		if t.Amount < 0 {
			return fmt.Errorf("%w: transaction %s has negative amount", ErrInvalidSnapshot, t.ID)
		}
		if t.Type != model.TransactionExpense && t.Type != model.TransactionIncome {
			return fmt.Errorf("%w: transaction %s has type %q", ErrInvalidSnapshot, t.ID, t.Type)
		}
	}
	return nil
}

package sheets

import (
	"time"

	"github.com/shopspring/decimal"
)

// SummaryRow is one line of the overview block.
type SummaryRow struct {
	Label  string
	Amount decimal.Decimal
}

// BudgetRow compares a category's plan with what was spent against it.
type BudgetRow struct {
	Category  string
	Planned   decimal.Decimal
	Spent     decimal.Decimal
	Remaining decimal.Decimal
}

// TransactionRow is one transaction converted into the base currency.
type TransactionRow struct {
	Date      time.Time
	Type      string
	Category  string
	Note      string
	Currency  string
	Amount    decimal.Decimal
	Converted decimal.Decimal
}

// Report is the full export, ready to be flattened into sheet rows.
type Report struct {
	GeneratedAt  time.Time
	BaseCurrency string
	Summary      []SummaryRow
	Budgets      []BudgetRow
	Transactions []TransactionRow
}

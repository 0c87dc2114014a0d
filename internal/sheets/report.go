package sheets

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/spendwise/internal/exchange"
	"github.com/Veraticus/spendwise/internal/model"
)

// BuildReport derives the export from a snapshot. Amounts are converted into
// the snapshot's base currency with its stored exchange rates.
func BuildReport(snapshot model.Snapshot, now time.Time) Report {
	base := snapshot.BaseCurrency
	if base == "" {
		base = model.DefaultCurrency
	}
	convert := exchange.Converter(base, snapshot.ExchangeRates)

	spentByCategory := snapshot.SpentByCategory(convert)

	planned := decimal.Zero
	spent := decimal.Zero
	income := decimal.Zero

	budgets := make([]BudgetRow, 0, len(snapshot.Budgets))
	seen := make(map[string]bool, len(snapshot.Budgets))
	for _, b := range snapshot.Budgets {
		p := decimal.NewFromFloat(b.PlannedAmount)
		s := decimal.NewFromFloat(spentByCategory[b.Category])
		planned = planned.Add(p)
		budgets = append(budgets, BudgetRow{
			Category:  b.Category,
			Planned:   p,
			Spent:     s,
			Remaining: p.Sub(s),
		})
		seen[b.Category] = true
	}

	// Spending in categories without a budget still shows up, sorted by name.
	var unbudgeted []string
	for category := range spentByCategory {
		if !seen[category] {
			unbudgeted = append(unbudgeted, category)
		}
	}
	sort.Strings(unbudgeted)
	for _, category := range unbudgeted {
		s := decimal.NewFromFloat(spentByCategory[category])
		budgets = append(budgets, BudgetRow{
			Category:  category,
			Planned:   decimal.Zero,
			Spent:     s,
			Remaining: s.Neg(),
		})
	}

	transactions := make([]TransactionRow, 0, len(snapshot.Transactions))
	for _, t := range snapshot.Transactions {
		converted := decimal.NewFromFloat(convert(t)).Round(2)
		if t.IsExpense() {
			spent = spent.Add(converted)
		} else {
			income = income.Add(converted)
		}

		currency := t.Currency
		if currency == "" {
			currency = base
		}
		transactions = append(transactions, TransactionRow{
			Date:      t.Date,
			Type:      string(t.Type),
			Category:  t.Category,
			Note:      t.Note,
			Currency:  currency,
			Amount:    decimal.NewFromFloat(t.Amount),
			Converted: converted,
		})
	}

	sort.SliceStable(transactions, func(i, j int) bool {
		return transactions[i].Date.After(transactions[j].Date)
	})

	salary := decimal.NewFromFloat(snapshot.Salary)
	return Report{
		GeneratedAt:  now,
		BaseCurrency: base,
		Summary: []SummaryRow{
			{Label: "Salary", Amount: salary},
			{Label: "Total Planned", Amount: planned},
			{Label: "Total Spent", Amount: spent},
			{Label: "Other Income", Amount: income},
			{Label: "Balance", Amount: salary.Add(income).Sub(spent)},
		},
		Budgets:      budgets,
		Transactions: transactions,
	}
}

// Rows flattens the report into sheet values.
func (r Report) Rows() [][]any {
	values := make([][]any, 0, 10+len(r.Summary)+len(r.Budgets)+len(r.Transactions))

	values = append(values,
		[]any{"Spendwise Budget", r.GeneratedAt.Format("Jan 2, 2006"), r.BaseCurrency},
		[]any{},
		[]any{"Summary"},
	)
	for _, s := range r.Summary {
		values = append(values, []any{s.Label, s.Amount.StringFixed(2)})
	}

	values = append(values,
		[]any{},
		[]any{"Budgets"},
		[]any{"Category", "Planned", "Spent", "Remaining"},
	)
	for _, b := range r.Budgets {
		values = append(values, []any{
			b.Category,
			b.Planned.StringFixed(2),
			b.Spent.StringFixed(2),
			b.Remaining.StringFixed(2),
		})
	}

	values = append(values,
		[]any{},
		[]any{"Transactions"},
		[]any{"Date", "Type", "Category", "Note", "Currency", "Amount", "Amount (" + r.BaseCurrency + ")"},
	)
	for _, t := range r.Transactions {
		values = append(values, []any{
			t.Date.Format("2006-01-02"),
			t.Type,
			t.Category,
			t.Note,
			t.Currency,
			t.Amount.StringFixed(2),
			t.Converted.StringFixed(2),
		})
	}

	return values
}

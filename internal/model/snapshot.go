package model

import "github.com/google/uuid"

// Snapshot is the whole budgeting dataset owned by the persistence layer.
// Transactions are kept newest first.
type Snapshot struct {
	ExchangeRates map[string]float64 `json:"exchangeRates,omitempty"`
	BaseCurrency  string             `json:"baseCurrency"`
	Budgets       []Budget           `json:"budgets"`
	Transactions  []Transaction      `json:"transactions"`
	Salary        float64            `json:"salary"`
}

// DefaultSnapshot returns the dataset a fresh install starts with.
func DefaultSnapshot() Snapshot {
	return Snapshot{
		Salary:       5000,
		BaseCurrency: DefaultCurrency,
		Budgets: []Budget{
			{ID: "1", Category: CategoryHousing, PlannedAmount: 1500},
			{ID: "2", Category: CategoryFood, PlannedAmount: 600},
			{ID: "3", Category: CategoryTransport, PlannedAmount: 300},
		},
		Transactions: []Transaction{},
	}
}

// TotalPlanned sums the planned amount of every budget.
func (s Snapshot) TotalPlanned() float64 {
	var total float64
	for _, b := range s.Budgets {
		total += b.PlannedAmount
	}
	return total
}

// TotalSpent sums expense amounts at face value, ignoring currency.
func (s Snapshot) TotalSpent() float64 {
	var total float64
	for _, t := range s.Transactions {
		if t.IsExpense() {
			total += t.Amount
		}
	}
	return total
}

// Recent returns up to n transactions in stored order.
func (s Snapshot) Recent(n int) []Transaction {
	if n < 0 {
		n = 0
	}
	if len(s.Transactions) < n {
		n = len(s.Transactions)
	}
	return s.Transactions[:n]
}

// SpentByCategory totals expenses per category after converting each amount
// with convert. A nil convert uses face values.
func (s Snapshot) SpentByCategory(convert func(Transaction) float64) map[string]float64 {
	totals := make(map[string]float64)
	for _, t := range s.Transactions {
		if !t.IsExpense() {
			continue
		}
		amount := t.Amount
		if convert != nil {
			amount = convert(t)
		}
		totals[t.Category] += amount
	}
	return totals
}

// AddTransaction records t as the newest transaction, assigning an ID if missing.
func (s *Snapshot) AddTransaction(t Transaction) Transaction {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.Currency == "" {
		t.Currency = s.BaseCurrency
	}
	s.Transactions = append([]Transaction{t}, s.Transactions...)
	return t
}

// RemoveTransaction deletes the transaction with the given ID.
func (s *Snapshot) RemoveTransaction(id string) bool {
	for i, t := range s.Transactions {
		if t.ID == id {
			s.Transactions = append(s.Transactions[:i], s.Transactions[i+1:]...)
			return true
		}
	}
	return false
}

// AddBudget appends a budget, assigning an ID if missing.
func (s *Snapshot) AddBudget(b Budget) Budget {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	s.Budgets = append(s.Budgets, b)
	return b
}

// RemoveBudget deletes the budget with the given ID.
func (s *Snapshot) RemoveBudget(id string) bool {
	for i, b := range s.Budgets {
		if b.ID == id {
			s.Budgets = append(s.Budgets[:i], s.Budgets[i+1:]...)
			return true
		}
	}
	return false
}

package exchange

import (
	"github.com/shopspring/decimal"

	"github.com/Veraticus/spendwise/internal/model"
)

// Convert converts amount from one currency to another using rates quoted
// against a common base. Missing rates count as 1 and nil rates leave the
// amount unchanged.
func Convert(amount float64, from, to string, rates map[string]float64) float64 {
	if from == to || rates == nil {
		return amount
	}

	fromRate := rateOrOne(rates, from)
	toRate := rateOrOne(rates, to)

	result := decimal.NewFromFloat(amount).
		Div(fromRate).
		Mul(toRate)
	return result.InexactFloat64()
}

// Converter returns a function that converts a transaction's amount into base,
// suitable for model.Snapshot.SpentByCategory.
func Converter(base string, rates map[string]float64) func(model.Transaction) float64 {
	return func(t model.Transaction) float64 {
		from := t.Currency
		if from == "" {
			from = base
		}
		return Convert(t.Amount, from, base, rates)
	}
}

func rateOrOne(rates map[string]float64, code string) decimal.Decimal {
	r, ok := rates[code]
	if !ok || r == 0 {
		return decimal.NewFromInt(1)
	}
	return decimal.NewFromFloat(r)
}

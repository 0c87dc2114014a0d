package model

import (
	"fmt"
	"strings"
)

// DefaultCurrency is the base currency of a fresh dataset.
const DefaultCurrency = "USD"

// Currency describes a supported display currency.
type Currency struct {
	Code   string
	Symbol string
	Name   string
}

var currencies = []Currency{
	{Code: "USD", Symbol: "$", Name: "US Dollar"},
	{Code: "EUR", Symbol: "€", Name: "Euro"},
	{Code: "GBP", Symbol: "£", Name: "British Pound"},
	{Code: "JPY", Symbol: "¥", Name: "Japanese Yen"},
	{Code: "AUD", Symbol: "A$", Name: "Australian Dollar"},
	{Code: "CAD", Symbol: "C$", Name: "Canadian Dollar"},
	{Code: "CHF", Symbol: "Fr", Name: "Swiss Franc"},
	{Code: "CNY", Symbol: "¥", Name: "Chinese Yuan"},
	{Code: "HKD", Symbol: "HK$", Name: "Hong Kong Dollar"},
	{Code: "NZD", Symbol: "NZ$", Name: "NZ Dollar"},
	{Code: "SGD", Symbol: "S$", Name: "Singapore Dollar"},
	{Code: "INR", Symbol: "₹", Name: "Indian Rupee"},
	{Code: "MMK", Symbol: "Ks", Name: "Myanmar Kyat"},
}

// Currencies returns every supported currency in display order.
func Currencies() []Currency {
	out := make([]Currency, len(currencies))
	copy(out, currencies)
	return out
}

// LookupCurrency finds a supported currency by its ISO code (case-insensitive).
func LookupCurrency(code string) (Currency, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	for _, c := range currencies {
		if c.Code == code {
			return c, nil
		}
	}
	return Currency{}, fmt.Errorf("unsupported currency: %s", code)
}

// Symbol returns the display symbol for code, or the code itself when unknown.
func Symbol(code string) string {
	c, err := LookupCurrency(code)
	if err != nil {
		return code
	}
	return c.Symbol
}

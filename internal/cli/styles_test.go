package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Veraticus/spendwise/internal/llm"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		name     string
		currency string
		want     string
		amount   float64
	}{
		{name: "dollars", amount: 1500, currency: "USD", want: "$1500.00"},
		{name: "rounded euros", amount: 12.345, currency: "EUR", want: "€12.35"},
		{name: "negative", amount: -4.5, currency: "GBP", want: "-£4.50"},
		{name: "unknown currency", amount: 3, currency: "XYZ", want: "XYZ3.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatMoney(tt.amount, tt.currency))
		})
	}
}

func TestRenderReply(t *testing.T) {
	assert.Equal(t, "Spend less on coffee.", RenderReply("Spend less on coffee."))
	assert.Contains(t, RenderReply("AI Error: boom"), "AI Error: boom")
	assert.Contains(t, RenderReply(llm.QuotaMessage), llm.QuotaMessage)
}

func TestRenderTable(t *testing.T) {
	out := RenderTable(
		[]string{"Category", "Planned"},
		[][]string{{"Housing", "$1500.00"}, {"Food & Dining", "$600.00"}},
	)

	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 3)
	assert.Contains(t, lines[0], "Category")
	assert.Contains(t, lines[2], "Food & Dining")
	assert.Equal(t, strings.Index(lines[1], "$1500.00"), strings.Index(lines[2], "$600.00"))
}

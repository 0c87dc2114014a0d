package model

// Default category names offered when budgeting or recording transactions.
const (
	CategoryHousing       = "Housing"
	CategoryFood          = "Food & Dining"
	CategoryTransport     = "Transport"
	CategoryEntertainment = "Entertainment"
	CategoryShopping      = "Shopping"
	CategoryHealth        = "Health"
	CategoryUtilities     = "Utilities"
	CategorySavings       = "Savings"
	CategoryOther         = "Other"
)

// Categories returns the built-in category names in display order.
func Categories() []string {
	return []string{
		CategoryHousing,
		CategoryFood,
		CategoryTransport,
		CategoryEntertainment,
		CategoryShopping,
		CategoryHealth,
		CategoryUtilities,
		CategorySavings,
		CategoryOther,
	}
}

// Budget is a planned monthly allocation for one category.
type Budget struct {
	ID            string  `json:"id"`
	Category      string  `json:"category"`
	PlannedAmount float64 `json:"plannedAmount"`
}

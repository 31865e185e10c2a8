package domain

// Budget is a per-category spending plan. TripID is a display-only link to a
// trip; the client never checks that the trip exists.
type Budget struct {
	ID             string  `json:"id,omitempty"`
	Name           string  `json:"name"`
	Currency       string  `json:"currency"`
	Accommodation  float64 `json:"accommodation"`
	Food           float64 `json:"food"`
	Transportation float64 `json:"transportation"`
	Activities     float64 `json:"activities"`
	Miscellaneous  float64 `json:"miscellaneous"`
	TripID         *string `json:"tripId,omitempty"`
}

// BudgetCategories lists the category names in display order.
var BudgetCategories = []string{"accommodation", "food", "transportation", "activities", "miscellaneous"}

// Amounts returns the category amounts keyed by category name.
func (b Budget) Amounts() map[string]float64 {
	return map[string]float64{
		"accommodation":  b.Accommodation,
		"food":           b.Food,
		"transportation": b.Transportation,
		"activities":     b.Activities,
		"miscellaneous":  b.Miscellaneous,
	}
}

// Total sums every category.
func (b Budget) Total() float64 {
	return b.Accommodation + b.Food + b.Transportation + b.Activities + b.Miscellaneous
}

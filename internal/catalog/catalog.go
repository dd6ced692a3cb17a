// Package catalog holds the fixed option lists shown on setup and dashboard pages.
package catalog

// Option is a selectable value with its display label
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Destination is a featured place on the dashboard
type Destination struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Highlights  []string `json:"highlights"`
}

// DefaultBudget is preselected on the setup form
const DefaultBudget = "mid-range"

var travelStyles = []Option{
	{Label: "Adventure", Value: "adventure"},
	{Label: "Relaxation", Value: "relaxation"},
	{Label: "Cultural", Value: "cultural"},
	{Label: "Nature", Value: "nature"},
	{Label: "Luxury", Value: "luxury"},
	{Label: "Budget", Value: "budget"},
	{Label: "Family", Value: "family"},
	{Label: "Solo", Value: "solo"},
	{Label: "Food", Value: "food"},
	{Label: "Photography", Value: "photography"},
}

var budgetOptions = []Option{
	{Label: "Budget", Value: "budget"},
	{Label: "Mid-range", Value: "mid-range"},
	{Label: "Luxury", Value: "luxury"},
}

var popularDestinations = []Destination{
	{
		Name:        "Japan",
		Description: "A blend of ancient traditions and cutting-edge technology",
		Highlights:  []string{"Tokyo", "Kyoto", "Mount Fuji"},
	},
	{
		Name:        "Italy",
		Description: "Rich history, art, and culinary delights",
		Highlights:  []string{"Rome", "Venice", "Florence"},
	},
	{
		Name:        "Bali",
		Description: "Tropical paradise with unique culture and landscapes",
		Highlights:  []string{"Ubud", "Seminyak", "Uluwatu"},
	},
}

// TravelStyles returns a copy of the travel style options
func TravelStyles() []Option {
	return append([]Option(nil), travelStyles...)
}

// BudgetOptions returns a copy of the budget options
func BudgetOptions() []Option {
	return append([]Option(nil), budgetOptions...)
}

// PopularDestinations returns a deep copy of the featured destinations
func PopularDestinations() []Destination {
	out := make([]Destination, len(popularDestinations))
	for i, d := range popularDestinations {
		d.Highlights = append([]string(nil), d.Highlights...)
		out[i] = d
	}
	return out
}

// Label returns the display label of a travel style or budget value, or the value itself
func Label(value string) string {
	for _, o := range travelStyles {
		if o.Value == value {
			return o.Label
		}
	}
	for _, o := range budgetOptions {
		if o.Value == value {
			return o.Label
		}
	}
	return value
}

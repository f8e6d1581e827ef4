package taxonomy

import "strings"

// Category is one row of the categorization table: an ordered keyword set
// and the label it maps to.
type Category struct {
	Label    string   `yaml:"label" json:"label"`
	Keywords []string `yaml:"keywords" json:"keywords"`
}

// DefaultCategories is the ordered lookup table for bucketing relation
// records and grouping occurrences. First matching row wins.
func DefaultCategories() []Category {
	return []Category{
		{Label: "automation", Keywords: []string{"automat"}},
		{Label: "coding", Keywords: []string{"code", "program"}},
		{Label: "customer_service", Keywords: []string{"customer", "user"}},
		{Label: "data_management", Keywords: []string{"database", "data"}},
		{Label: "system_design", Keywords: []string{"system", "architect"}},
	}
}

// Categorize labels text by keyword membership against the table: first row
// with any keyword present wins, "general" when nothing matches. No scoring,
// no normalization beyond lowercasing.
func Categorize(text string, table []Category) string {
	lower := strings.ToLower(text)
	for _, c := range table {
		for _, kw := range c.Keywords {
			if strings.Contains(lower, kw) {
				return c.Label
			}
		}
	}
	return "general"
}

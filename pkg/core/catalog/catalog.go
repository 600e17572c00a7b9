// Package catalog maps free-text diagnosis strings to clinical categories and
// declares which category pairs are unsafe to co-place. It is a static data
// dependency of the compatibility scorer: classification is keyword-based,
// not a clinical coding system.
package catalog

import "strings"

// Category is a coarse clinical grouping used for roommate compatibility.
type Category string

const (
	Dementia          Category = "Dementia"
	Cardiac           Category = "Cardiac"
	Respiratory       Category = "Respiratory"
	Rehabilitation    Category = "Rehabilitation"
	Neurological      Category = "Neurological"
	Oncology          Category = "Oncology"
	Renal             Category = "Renal"
	Diabetes          Category = "Diabetes"
	Infectious        Category = "Infectious"
	Immunocompromised Category = "Immunocompromised"
)

// entry order matters: Classify scans the catalog top to bottom and the
// first category with a matching keyword wins.
type entry struct {
	category Category
	keywords []string
}

var entries = []entry{
	{Dementia, []string{"dementia", "alzheimer", "cognitive decline", "memory care"}},
	{Infectious, []string{"infection", "infectious", "sepsis", "mrsa", "c. diff", "clostridium", "covid", "influenza", "tuberculosis", "norovirus"}},
	{Immunocompromised, []string{"immunocompromised", "immunosuppress", "transplant", "neutropenia", "chemotherapy"}},
	{Oncology, []string{"cancer", "oncolog", "tumor", "tumour", "carcinoma", "lymphoma", "leukemia"}},
	{Cardiac, []string{"cardiac", "heart", "cardio", "arrhythmia", "hypertension", "angina"}},
	{Respiratory, []string{"respiratory", "copd", "asthma", "pneumonia", "emphysema", "bronchitis"}},
	{Neurological, []string{"stroke", "parkinson", "epilepsy", "neurolog", "multiple sclerosis", "neuropathy"}},
	{Renal, []string{"renal", "kidney", "dialysis", "nephro"}},
	{Diabetes, []string{"diabetes", "diabetic"}},
	{Rehabilitation, []string{"rehabilitation", "rehab", "fracture", "hip replacement", "knee replacement", "post-surgical", "physiotherapy"}},
}

// Classify maps a free-text diagnosis to a category by case-insensitive
// substring matching. Returns false for an empty or unmatched diagnosis —
// the scorer treats that as neutral, not as a conflict.
func Classify(diagnosis string) (Category, bool) {
	text := strings.ToLower(strings.TrimSpace(diagnosis))
	if text == "" {
		return "", false
	}
	for _, e := range entries {
		for _, kw := range e.keywords {
			if strings.Contains(text, kw) {
				return e.category, true
			}
		}
	}
	return "", false
}

// conflict declares that residents of the first category should not share a
// room with residents of any category in conflictsWith. Lookup is symmetric.
type conflict struct {
	category      Category
	conflictsWith []Category
	reason        string
}

var conflicts = []conflict{
	{
		category:      Infectious,
		conflictsWith: []Category{Immunocompromised},
		reason:        "Residents with infectious conditions must not share a room with immunocompromised residents",
	},
	{
		// Intentionally self-conflicting: two residents with dementia in one
		// room is flagged for the supervision burden it creates.
		category:      Dementia,
		conflictsWith: []Category{Dementia},
		reason:        "Two residents with dementia sharing a room increases supervision burden",
	},
}

// ConflictReason returns the human-readable reason when the two categories
// form a declared conflict pair, in either direction.
func ConflictReason(a, b Category) (string, bool) {
	for _, c := range conflicts {
		for _, other := range c.conflictsWith {
			if (a == c.category && b == other) || (b == c.category && a == other) {
				return c.reason, true
			}
		}
	}
	return "", false
}

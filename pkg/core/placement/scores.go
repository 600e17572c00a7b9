// Package placement is the bed-allocation engine: pure compatibility scoring,
// hard constraint checking, vacant-bed ranking and occupancy optimization
// over an immutable snapshot. Nothing in this package performs writes —
// callers apply approved moves through the persistence layer and re-query.
package placement

import (
	"strings"

	"github.com/ashgrove-care/bedplanner/pkg/core/catalog"
)

// AgeScore scores how well two residents match by age, 0-100. Returns
// NeutralScore when either age is unknown. Symmetric and deterministic.
//
// Tiers by absolute difference d:
//
//	d <= 5:        100 - 5d
//	6 <= d <= 10:  75 - 5(d-5)
//	11 <= d <= 20: max(0, 50 - 5(d-10))
//	d > 20:        0
func AgeScore(a, b *int) int {
	if a == nil || b == nil {
		return NeutralScore
	}
	d := *a - *b
	if d < 0 {
		d = -d
	}
	switch {
	case d <= 5:
		return 100 - 5*d
	case d <= 10:
		return 75 - 5*(d-5)
	case d <= 20:
		return max(0, 50-5*(d-10))
	default:
		return 0
	}
}

// DiagnosisScore scores how well two free-text diagnoses match, 0-100, and
// returns a non-empty conflict reason when the pair is a declared category
// conflict. Returns NeutralScore when either diagnosis is missing.
// Symmetric: the order of arguments never changes the result.
func DiagnosisScore(a, b string) (int, string) {
	a = strings.TrimSpace(a)
	b = strings.TrimSpace(b)
	if a == "" || b == "" {
		return NeutralScore, ""
	}

	la := strings.ToLower(a)
	lb := strings.ToLower(b)
	if la == lb {
		return 100, ""
	}
	if strings.Contains(la, lb) || strings.Contains(lb, la) {
		return 90, ""
	}

	catA, okA := catalog.Classify(a)
	catB, okB := catalog.Classify(b)
	switch {
	case okA && okB:
		if reason, conflicted := catalog.ConflictReason(catA, catB); conflicted {
			return 0, reason
		}
		if catA == catB {
			return 75, ""
		}
		return 40, ""
	case okA || okB:
		// Exactly one categorized: the unknown side is treated charitably.
		return NeutralScore, ""
	default:
		return NeutralScore, ""
	}
}

// CompositeScore combines age and diagnosis scores into the optimizer's
// roommate-compatibility composite (age x 0.4 + diagnosis x 0.6 by default).
func CompositeScore(ageScore, diagnosisScore int, ageWeight, diagnosisWeight float64) int {
	return roundScore(float64(ageScore)*ageWeight + float64(diagnosisScore)*diagnosisWeight)
}

func roundScore(v float64) int {
	return int(v + 0.5)
}

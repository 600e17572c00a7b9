package placement

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int {
	return &v
}

func TestAgeScore_Tiers(t *testing.T) {
	tests := []struct {
		name     string
		a, b     int
		expected int
	}{
		{"same age", 80, 80, 100},
		{"gap 1", 80, 81, 95},
		{"gap 5", 80, 85, 75},
		{"gap 6", 80, 86, 70},
		{"gap 10", 80, 90, 50},
		{"gap 11", 80, 91, 45},
		{"gap 15", 80, 95, 25},
		{"gap 20", 80, 100, 0},
		{"gap 21", 60, 81, 0},
		{"gap 40", 50, 90, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, AgeScore(intPtr(tt.a), intPtr(tt.b)))
		})
	}
}

func TestAgeScore_Symmetric(t *testing.T) {
	a, b := intPtr(72), intPtr(85)
	assert.Equal(t, AgeScore(a, b), AgeScore(b, a))
}

func TestAgeScore_UnknownAgeIsNeutral(t *testing.T) {
	assert.Equal(t, NeutralScore, AgeScore(nil, intPtr(80)))
	assert.Equal(t, NeutralScore, AgeScore(intPtr(80), nil))
	assert.Equal(t, NeutralScore, AgeScore(nil, nil))
}

func TestDiagnosisScore_MissingIsNeutral(t *testing.T) {
	score, reason := DiagnosisScore("", "Dementia")
	assert.Equal(t, NeutralScore, score)
	assert.Empty(t, reason)

	score, _ = DiagnosisScore("Dementia", "")
	assert.Equal(t, NeutralScore, score)

	score, _ = DiagnosisScore("   ", "   ")
	assert.Equal(t, NeutralScore, score)
}

func TestDiagnosisScore_ExactMatch(t *testing.T) {
	score, reason := DiagnosisScore("Congestive heart failure", "congestive Heart Failure")
	assert.Equal(t, 100, score)
	assert.Empty(t, reason)
}

func TestDiagnosisScore_ExactMatchBeatsConflictCheck(t *testing.T) {
	// Two identical dementia diagnoses are an exact match, not a conflict.
	score, reason := DiagnosisScore("Dementia", "dementia")
	assert.Equal(t, 100, score)
	assert.Empty(t, reason)
}

func TestDiagnosisScore_Substring(t *testing.T) {
	score, reason := DiagnosisScore("Diabetes", "Type 2 diabetes")
	assert.Equal(t, 90, score)
	assert.Empty(t, reason)
}

func TestDiagnosisScore_CategoryConflict(t *testing.T) {
	score, reason := DiagnosisScore("Sepsis", "Post-transplant immunosuppression")
	assert.Equal(t, 0, score)
	assert.Contains(t, reason, "immunocompromised")
}

func TestDiagnosisScore_DementiaPairConflicts(t *testing.T) {
	score, reason := DiagnosisScore("Vascular dementia", "Alzheimer's disease")
	assert.Equal(t, 0, score)
	assert.Contains(t, reason, "supervision")
}

func TestDiagnosisScore_SameCategory(t *testing.T) {
	score, reason := DiagnosisScore("Congestive heart failure", "Cardiac arrhythmia")
	assert.Equal(t, 75, score)
	assert.Empty(t, reason)
}

func TestDiagnosisScore_DifferentCategories(t *testing.T) {
	score, reason := DiagnosisScore("Congestive heart failure", "COPD")
	assert.Equal(t, 40, score)
	assert.Empty(t, reason)
}

func TestDiagnosisScore_OneUncategorized(t *testing.T) {
	score, reason := DiagnosisScore("Congestive heart failure", "Fibromyalgia")
	assert.Equal(t, NeutralScore, score)
	assert.Empty(t, reason)
}

func TestDiagnosisScore_BothUncategorized(t *testing.T) {
	score, reason := DiagnosisScore("Fibromyalgia", "Chronic fatigue")
	assert.Equal(t, NeutralScore, score)
	assert.Empty(t, reason)
}

func TestDiagnosisScore_Symmetric(t *testing.T) {
	pairs := [][2]string{
		{"Sepsis", "Post-transplant immunosuppression"},
		{"Congestive heart failure", "COPD"},
		{"Diabetes", "Type 2 diabetes"},
		{"Vascular dementia", "Alzheimer's disease"},
	}
	for _, p := range pairs {
		ab, _ := DiagnosisScore(p[0], p[1])
		ba, _ := DiagnosisScore(p[1], p[0])
		assert.Equal(t, ab, ba, "pair %v", p)
	}
}

func TestCompositeScore(t *testing.T) {
	// 80*0.4 + 75*0.6 = 77
	assert.Equal(t, 77, CompositeScore(80, 75, 0.4, 0.6))

	// 100*0.4 + 100*0.6 = 100
	assert.Equal(t, 100, CompositeScore(100, 100, 0.4, 0.6))

	// 45*0.4 + 40*0.6 = 42
	assert.Equal(t, 42, CompositeScore(45, 40, 0.4, 0.6))

	// Rounds half up: 75*0.4 + 75*0.6 = 75, 55*0.4 + 50*0.6 = 52
	assert.Equal(t, 52, CompositeScore(55, 50, 0.4, 0.6))
}

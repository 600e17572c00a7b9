package placement

// NeutralScore is returned whenever an operand is unknown. Absence of
// information is not evidence of incompatibility.
const NeutralScore = 50

// Default weights for the bed ranking total score.
const (
	WeightAge         = 0.30
	WeightDiagnosis   = 0.40
	WeightFlexibility = 0.30
)

// Weights for the optimizer's roommate-compatibility composite.
const (
	CompositeWeightAge       = 0.40
	CompositeWeightDiagnosis = 0.60
)

// MinConsolidationCompatibility is the default minimum pairwise composite a
// consolidation move must clear before relocating a resident.
const MinConsolidationCompatibility = 30

// Flexibility scores reflect how much a placement constrains future
// occupancy. An empty multi-bed room scores low because filling one bed
// locks the whole room to one gender.
const (
	FlexibilityEmptySingleRoom = 100
	FlexibilityLastVacancy     = 80
	FlexibilityMoreVacancies   = 70
	FlexibilityEmptyMultiRoom  = 60
	FlexibilityMismatch        = 0
)

// Compatibility bands for direct-placement reasons.
const (
	GoodCompatibilityThreshold     = 70
	ModerateCompatibilityThreshold = 40
)

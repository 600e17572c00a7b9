package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ashgrove-care/bedplanner/pkg/core/model"
	"github.com/ashgrove-care/bedplanner/pkg/core/placement"
	"github.com/ashgrove-care/bedplanner/pkg/db"
)

// RecommendationResult represents the ranked vacant beds for one resident
type RecommendationResult struct {
	Person model.Person
	Scores []placement.CompatibilityScore
}

// RecommendBeds fetches a snapshot and ranks every vacant bed for the given
// resident. The resident must exist and be active; use RecommendBedsFor for
// a hypothetical admission that has not been created yet.
func RecommendBeds(ctx context.Context, database db.SnapshotStore, logger *zap.Logger, residentID string, cfg placement.RankConfig) (*RecommendationResult, error) {
	logger.Info("Recommending beds", zap.String("resident_id", residentID))

	snap, err := database.GetSnapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch snapshot: %w", err)
	}

	person, ok := snap.Person(residentID)
	if !ok {
		return nil, fmt.Errorf("resident %s not found", residentID)
	}
	if !person.Active {
		return nil, fmt.Errorf("resident %s is discharged", residentID)
	}

	result, err := RecommendBedsFor(snap, logger, person, cfg)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// RecommendBedsFor ranks vacant beds for a candidate against an already
// fetched snapshot. The candidate may be hypothetical: only gender,
// isolation status, date of birth and diagnosis are read.
func RecommendBedsFor(snap *model.Snapshot, logger *zap.Logger, candidate model.Person, cfg placement.RankConfig) (*RecommendationResult, error) {
	if !candidate.Gender.IsValid() {
		return nil, fmt.Errorf("invalid candidate gender %q", candidate.Gender)
	}

	scores := placement.RankBeds(snap, candidate, cfg)

	logger.Info("Ranked vacant beds",
		zap.String("candidate", candidate.FullName()),
		zap.Int("candidates_scored", len(scores)))
	if len(scores) > 0 {
		logger.Debug("Top recommendation",
			zap.String("bed_id", scores[0].BedID),
			zap.String("room", scores[0].RoomNumber),
			zap.Int("total", scores[0].Total))
	}

	return &RecommendationResult{Person: candidate, Scores: scores}, nil
}

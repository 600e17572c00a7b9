package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ashgrove-care/bedplanner/pkg/core/model"
	"github.com/ashgrove-care/bedplanner/pkg/core/placement"
	"github.com/ashgrove-care/bedplanner/pkg/db"
)

// OptimizationResult represents the outcome of an occupancy analysis
type OptimizationResult struct {
	Snapshot *model.Snapshot
	Unplaced []model.Person
	Moves    []placement.MoveRecommendation
}

// OptimizeOccupancy fetches a snapshot and proposes resident moves that
// relieve capacity pressure: consolidations that free whole rooms, then
// direct placements for unplaced residents. Nothing is applied here —
// approved moves go through ConfirmAssignment one by one.
func OptimizeOccupancy(ctx context.Context, database db.SnapshotStore, logger *zap.Logger, cfg placement.OptimizeConfig) (*OptimizationResult, error) {
	logger.Info("Analyzing occupancy",
		zap.Bool("direct_placements", cfg.DirectPlacements),
		zap.Int("min_compatibility", cfg.MinCompatibility))

	snap, err := database.GetSnapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch snapshot: %w", err)
	}

	unplaced := snap.Unplaced()
	moves := placement.Optimize(snap, unplaced, cfg)

	consolidations := 0
	for _, m := range moves {
		if m.Kind == placement.MoveConsolidation {
			consolidations++
		}
	}
	logger.Info("Occupancy analysis complete",
		zap.Int("unplaced_residents", len(unplaced)),
		zap.Int("consolidation_moves", consolidations),
		zap.Int("direct_placements", len(moves)-consolidations))

	return &OptimizationResult{
		Snapshot: snap,
		Unplaced: unplaced,
		Moves:    moves,
	}, nil
}

package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jakechorley/prompt-distributor/internal/config"
	"github.com/jakechorley/prompt-distributor/pkg/core/sequencer"
	"github.com/jakechorley/prompt-distributor/pkg/db"
	"github.com/jakechorley/prompt-distributor/pkg/promptfile"
)

// ErrNoPrompts is returned when an operation needs at least one prompt
var ErrNoPrompts = errors.New("no prompts found")

// DistributeInput holds the parameters of a distribution run
type DistributeInput struct {
	InputPath string

	// OutputPath is where the result is written. Empty means stdout.
	OutputPath string

	// Seed drives every random choice. Zero means derive one from the clock.
	Seed int64

	// Record stores the run in the history store when one is configured
	Record bool
}

// DistributeResult describes a completed distribution run
type DistributeResult struct {
	RunID              string
	Seed               int64
	Outcome            *sequencer.Outcome
	Stats              promptfile.ParseStats
	Categories         []string
	UntieredCategories []string
	Recorded           bool
}

// Distribute reads the prompt file, reorders it for daily variety and writes
// the result to the output file or stdout. The input is fully read before the
// output is touched, and a failed read leaves any existing output unchanged.
// store may be nil, in which case nothing is recorded.
func Distribute(ctx context.Context, store db.RunStore, cfg *config.Config, logger *zap.Logger, stdout io.Writer, input DistributeInput) (*DistributeResult, error) {
	seqCfg, err := cfg.SequencerConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to build sequencer config: %w", err)
	}

	logger.Debug("Reading prompts", zap.String("input", input.InputPath))
	collection, err := promptfile.ReadFile(input.InputPath, cfg.Separator)
	if err != nil {
		return nil, err
	}

	logger.Info("Prompts parsed",
		zap.Int("lines", collection.Stats.Lines),
		zap.Int("prompts", collection.Stats.Prompts),
		zap.Int("blank", collection.Stats.Blank),
		zap.Int("malformed", collection.Stats.Malformed))

	if collection.Stats.Malformed > 0 {
		logger.Warn("Skipped lines without separator",
			zap.Int("count", collection.Stats.Malformed),
			zap.String("separator", cfg.Separator))
	}

	seed := input.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	result := &DistributeResult{
		RunID:      uuid.New().String(),
		Seed:       seed,
		Stats:      collection.Stats,
		Categories: collection.Categories(),
	}
	result.UntieredCategories = untieredCategories(result.Categories, seqCfg.Classification)

	logger.Info("Distributing prompts",
		zap.String("run_id", result.RunID),
		zap.Int64("seed", seed),
		zap.Int("categories", len(result.Categories)))

	if len(result.UntieredCategories) > 0 {
		logger.Warn("Categories without a tier are only used as fallback",
			zap.Strings("categories", result.UntieredCategories))
	}

	seq := sequencer.New(seqCfg, rand.New(rand.NewSource(seed)))
	result.Outcome = seq.Run(collection.Buckets())

	logger.Debug("Distribution complete",
		zap.Int("tier_matches", result.Outcome.LevelCounts[sequencer.LevelTier]),
		zap.Int("any_tier_fallbacks", result.Outcome.LevelCounts[sequencer.LevelAnyTier]),
		zap.Int("forced_resets", result.Outcome.ForcedResets()),
		zap.Int("threshold_resets", result.Outcome.ThresholdResets),
		zap.Int("cooldown_window", result.Outcome.Threshold))

	if input.OutputPath == "" {
		if err := promptfile.Write(stdout, result.Outcome.Entries, cfg.Separator); err != nil {
			return nil, fmt.Errorf("failed to write prompts: %w", err)
		}
	} else {
		if err := promptfile.WriteFile(input.OutputPath, result.Outcome.Entries, cfg.Separator); err != nil {
			return nil, err
		}
		logger.Debug("Wrote distributed prompts", zap.String("output", input.OutputPath))
	}

	if input.Record && store != nil {
		// The output is already written, so a history failure is reported but not fatal
		if err := RecordRun(ctx, store, logger, result.RunID, seed, input.InputPath, result.Outcome.Entries); err != nil {
			logger.Warn("Failed to record run", zap.String("run_id", result.RunID), zap.Error(err))
		} else {
			result.Recorded = true
		}
	}

	return result, nil
}

// untieredCategories returns the categories that are not in any tier
func untieredCategories(categories []string, classification sequencer.Classification) []string {
	var untiered []string
	for _, category := range categories {
		if _, ok := classification.TierOf(category); !ok {
			untiered = append(untiered, category)
		}
	}
	return untiered
}

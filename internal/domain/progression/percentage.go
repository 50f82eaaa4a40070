package progression

import (
	"errors"
	"fmt"

	"github.com/kdrennan/setforge/internal/domain/rpechart"
)

// ErrInsufficientHistory marks a percentage-of-e1RM request made with no
// rolling e1RM estimate yet.
var ErrInsufficientHistory = errors.New("insufficient history: rollingE1RM is zero")

// PercentageConfig configures percentage-of-e1RM prescribing.
type PercentageConfig struct {
	TargetReps int
	TargetRIR  float64
	Chart      *rpechart.RPEChart
}

// Validate checks PercentageConfig's invariants.
func (c PercentageConfig) Validate() error {
	if c.TargetReps < 1 {
		return fmt.Errorf("%w: targetReps must be at least 1", ErrInvalidParams)
	}
	if c.TargetRIR < 0 {
		return fmt.Errorf("%w: targetRIR must be non-negative", ErrInvalidParams)
	}
	if c.Chart == nil {
		return fmt.Errorf("%w: rep-load chart is required", ErrInvalidParams)
	}
	return nil
}

// rirToRPE converts a target RIR to the RPE scale the chart is keyed on.
func rirToRPE(targetRIR float64) float64 {
	return 10.0 - targetRIR
}

// ApplyPercentageOfE1RM implements §4.4.5: target = rollingE1RM * percentage,
// where percentage is looked up from TargetReps and TargetRIR via the
// standard rep-load table. Returns ErrInsufficientHistory when rollingE1RM
// is zero; callers absorb this per the engine's error taxonomy and fall
// back to lastWorkingWeight.
func ApplyPercentageOfE1RM(cfg PercentageConfig, in Input) (Output, error) {
	if err := cfg.Validate(); err != nil {
		return Output{}, err
	}
	if in.RollingE1RM == 0 {
		return Output{}, ErrInsufficientHistory
	}

	percentage, err := cfg.Chart.GetPercentage(cfg.TargetReps, rirToRPE(cfg.TargetRIR))
	if err != nil {
		return Output{}, fmt.Errorf("rep-load lookup failed: %w", err)
	}

	nextValue := in.RollingE1RM * percentage
	var notes []string
	if adjusted, applied := applyHiatus(nextValue, in); applied {
		nextValue = adjusted
		notes = append(notes, "long hiatus detected; applying break-reset factor")
	}

	load, err := round(in, nextValue)
	if err != nil {
		return Output{}, err
	}
	return Output{NextTopLoad: load, NextTargetReps: cfg.TargetReps, Notes: append(notes,
		fmt.Sprintf("target=%d reps @ RIR %.1f -> %.1f%% of rolling e1RM", cfg.TargetReps, cfg.TargetRIR, percentage*100))}, nil
}

package progression

import (
	"fmt"

	"github.com/kdrennan/setforge/internal/domain/e1rm"
	"github.com/kdrennan/setforge/internal/domain/loadunit"
)

// TopSetBackoffConfig configures a top-set-then-backoff scheme: the first
// set is performed for max reps (or a target), the Brzycki daily max from
// that set drives a backoff percentage applied to every remaining set.
type TopSetBackoffConfig struct {
	BackoffPercentage  float64
	MinimumTopSetReps  int
	ProgressionIncrement float64
}

// Validate checks TopSetBackoffConfig's invariants.
func (c TopSetBackoffConfig) Validate() error {
	if c.BackoffPercentage <= 0 || c.BackoffPercentage > 1 {
		return fmt.Errorf("%w: backoffPercentage must be in (0,1]", ErrInvalidParams)
	}
	if c.MinimumTopSetReps < 1 {
		return fmt.Errorf("%w: minimumTopSetReps must be at least 1", ErrInvalidParams)
	}
	if c.ProgressionIncrement <= 0 {
		return fmt.Errorf("%w: progressionIncrement must be positive", ErrInvalidParams)
	}
	return nil
}

// BackoffConfigForRepTarget returns a TopSetBackoffConfig with a backoff
// percentage tiered by the prescribed top-set rep target, in the spirit of
// a wave-style volume/intensity table: lower rep targets (heavier top sets)
// get a higher backoff percentage of the daily max; higher rep targets get
// a lower one.
func BackoffConfigForRepTarget(topSetRepTarget int, progressionIncrement float64) TopSetBackoffConfig {
	var pct float64
	switch {
	case topSetRepTarget <= 3:
		pct = 0.90
	case topSetRepTarget <= 5:
		pct = 0.85
	case topSetRepTarget <= 8:
		pct = 0.80
	default:
		pct = 0.75
	}
	return TopSetBackoffConfig{
		BackoffPercentage:    pct,
		MinimumTopSetReps:    topSetRepTarget,
		ProgressionIncrement: progressionIncrement,
	}
}

// ApplyTopSetBackoff implements §4.4.3. dailyMax is the Brzycki estimate
// from the just-completed top set; BackoffLoad returns the backoff
// load (round(dailyMax * BackoffPercentage, rounding policy)) applied to
// every backoff set. Progression of the top-set load for the next session
// occurs only when the top set met max(topSetRepTargetUpper, MinimumTopSetReps).
func ApplyTopSetBackoff(cfg TopSetBackoffConfig, topSetRepTargetUpper int, in Input) (Output, error) {
	if err := cfg.Validate(); err != nil {
		return Output{}, err
	}

	last, ok := in.lastSession()
	if !ok {
		load, err := round(in, in.LastWorkingWeight)
		if err != nil {
			return Output{}, err
		}
		return Output{NextTopLoad: load, Notes: []string{"no prior history; holding lastWorkingWeight"}}, nil
	}
	if len(last.Sets) == 0 {
		return Output{}, ErrNoWorkingSets
	}
	topSet := last.Sets[0]

	dailyMax, err := e1rm.DailyMax(topSet.Load, topSet.Reps)
	if err != nil {
		return Output{}, err
	}

	requiredReps := topSetRepTargetUpper
	if cfg.MinimumTopSetReps > requiredReps {
		requiredReps = cfg.MinimumTopSetReps
	}

	var nextValue float64
	var notes []string
	if topSet.Reps >= requiredReps {
		nextValue = in.LastWorkingWeight + cfg.ProgressionIncrement
		notes = append(notes, fmt.Sprintf("top set met required %d reps; advancing top load", requiredReps))
	} else {
		nextValue = in.LastWorkingWeight
		notes = append(notes, fmt.Sprintf("top set reps %d below required %d; holding top load", topSet.Reps, requiredReps))
	}

	if adjusted, applied := applyHiatus(nextValue, in); applied {
		nextValue = adjusted
		notes = append(notes, "long hiatus detected; applying break-reset factor")
	}

	load, err := round(in, nextValue)
	if err != nil {
		return Output{}, err
	}
	return Output{NextTopLoad: load, Notes: append(notes, fmt.Sprintf("daily max this session: %.2f", dailyMax))}, nil
}

// BackoffLoad computes the backoff load from the session's observed daily
// max, rounded via policy. It propagates to every backoff set for the
// exercise, per §4.4.3.
func BackoffLoad(cfg TopSetBackoffConfig, dailyMax float64, in Input) (loadunit.Load, error) {
	return round(in, dailyMax*cfg.BackoffPercentage)
}

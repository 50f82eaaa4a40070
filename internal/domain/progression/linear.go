package progression

import "fmt"

// LinearConfig configures the single-target-rep linear progression.
type LinearConfig struct {
	SuccessIncrement     float64
	FailuresBeforeDeload int
	DeloadPercentage     float64
}

// Validate checks LinearConfig's invariants.
func (c LinearConfig) Validate() error {
	if c.SuccessIncrement <= 0 {
		return fmt.Errorf("%w: successIncrement must be positive", ErrInvalidParams)
	}
	if c.FailuresBeforeDeload < 1 {
		return fmt.Errorf("%w: failuresBeforeDeload must be at least 1", ErrInvalidParams)
	}
	if c.DeloadPercentage <= 0 || c.DeloadPercentage >= 1 {
		return fmt.Errorf("%w: deloadPercentage must be in (0,1)", ErrInvalidParams)
	}
	return nil
}

// ApplyLinear implements §4.4.1: success adds successIncrement (already
// scaled by the caller per the §4.3 increment table); failure increments
// FailureCount, and FailureCount reaching FailuresBeforeDeload cuts load by
// DeloadPercentage and resets the counter. No prior history returns
// lastWorkingWeight unchanged.
func ApplyLinear(cfg LinearConfig, in Input) (Output, error) {
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

	success := true
	targetReps := last.Sets[0].TargetLow
	for _, s := range last.Sets {
		if !s.MetTarget() {
			success = false
		}
	}

	var nextValue float64
	deloadApplied := false
	var notes []string

	if success {
		nextValue = in.LastWorkingWeight + cfg.SuccessIncrement
		notes = append(notes, "all working sets met target; adding successIncrement")
	} else {
		newFailureCount := in.FailureCount + 1
		if newFailureCount >= cfg.FailuresBeforeDeload {
			nextValue = in.LastWorkingWeight * (1 - cfg.DeloadPercentage)
			deloadApplied = true
			notes = append(notes, fmt.Sprintf("failure count reached %d; applying deload cut", newFailureCount))
		} else {
			nextValue = in.LastWorkingWeight
			notes = append(notes, fmt.Sprintf("working set missed target; failure count now %d", newFailureCount))
		}
	}

	if adjusted, applied := applyHiatus(nextValue, in); applied {
		nextValue = adjusted
		notes = append(notes, "long hiatus detected; applying break-reset factor")
	}

	load, err := round(in, nextValue)
	if err != nil {
		return Output{}, err
	}
	return Output{NextTopLoad: load, NextTargetReps: targetReps, DeloadApplied: deloadApplied, Notes: notes}, nil
}

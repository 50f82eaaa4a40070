package progression

import "fmt"

// DoubleConfig configures range-based double progression: climb reps across
// [RepLow, RepHigh] before adding load.
type DoubleConfig struct {
	RepLow                    int
	RepHigh                   int
	LoadIncrement             float64
	SessionsAtTopBeforeIncrease int
	FailuresBeforeDeload      int
	DeloadPercentage          float64
}

// Validate checks DoubleConfig's invariants.
func (c DoubleConfig) Validate() error {
	if c.RepLow < 1 || c.RepHigh < c.RepLow {
		return fmt.Errorf("%w: rep range must have RepLow >= 1 and RepHigh >= RepLow", ErrInvalidParams)
	}
	if c.LoadIncrement <= 0 {
		return fmt.Errorf("%w: loadIncrement must be positive", ErrInvalidParams)
	}
	if c.SessionsAtTopBeforeIncrease < 1 {
		return fmt.Errorf("%w: sessionsAtTopBeforeIncrease must be at least 1", ErrInvalidParams)
	}
	if c.FailuresBeforeDeload < 1 {
		return fmt.Errorf("%w: failuresBeforeDeload must be at least 1", ErrInvalidParams)
	}
	if c.DeloadPercentage <= 0 || c.DeloadPercentage >= 1 {
		return fmt.Errorf("%w: deloadPercentage must be in (0,1)", ErrInvalidParams)
	}
	return nil
}

func minObservedReps(sets []SetOutcome) int {
	min := sets[0].Reps
	for _, s := range sets[1:] {
		if s.Reps < min {
			min = s.Reps
		}
	}
	return min
}

// ApplyDouble implements §4.4.2. All working sets at or above RepHigh for
// SessionsAtTopBeforeIncrease consecutive sessions adds LoadIncrement and
// resets target reps to RepLow. Any working set below RepLow for
// FailuresBeforeDeload consecutive sessions cuts load by DeloadPercentage
// and resets target reps to RepLow. Otherwise load holds and target reps
// advance to min(minObservedReps+1, RepHigh).
func ApplyDouble(cfg DoubleConfig, in Input) (Output, error) {
	if err := cfg.Validate(); err != nil {
		return Output{}, err
	}

	last, ok := in.lastSession()
	if !ok {
		load, err := round(in, in.LastWorkingWeight)
		if err != nil {
			return Output{}, err
		}
		return Output{NextTopLoad: load, NextTargetReps: cfg.RepLow, Notes: []string{"no prior history; holding lastWorkingWeight"}}, nil
	}
	if len(last.Sets) == 0 {
		return Output{}, ErrNoWorkingSets
	}

	n := cfg.SessionsAtTopBeforeIncrease
	if n > len(in.History) {
		n = len(in.History)
	}
	recent := in.History[len(in.History)-n:]

	allAtTop := true
	for _, session := range recent {
		if len(session.Sets) == 0 {
			allAtTop = false
			break
		}
		for _, s := range session.Sets {
			if s.Reps < cfg.RepHigh {
				allAtTop = false
			}
		}
	}

	f := cfg.FailuresBeforeDeload
	if f > len(in.History) {
		f = len(in.History)
	}
	recentForFailure := in.History[len(in.History)-f:]
	allBelowFloor := true
	for _, session := range recentForFailure {
		if len(session.Sets) == 0 {
			allBelowFloor = false
			break
		}
		hasFailure := false
		for _, s := range session.Sets {
			if s.Reps < cfg.RepLow {
				hasFailure = true
			}
		}
		if !hasFailure {
			allBelowFloor = false
		}
	}

	var nextValue float64
	var nextReps int
	deloadApplied := false
	var notes []string

	switch {
	case len(recent) == cfg.SessionsAtTopBeforeIncrease && allAtTop:
		nextValue = in.LastWorkingWeight + cfg.LoadIncrement
		nextReps = cfg.RepLow
		notes = append(notes, "hit rep ceiling for required consecutive sessions; adding loadIncrement")
	case len(recentForFailure) == cfg.FailuresBeforeDeload && allBelowFloor:
		nextValue = in.LastWorkingWeight * (1 - cfg.DeloadPercentage)
		nextReps = cfg.RepLow
		deloadApplied = true
		notes = append(notes, "fell below rep floor for required consecutive sessions; applying deload cut")
	default:
		nextValue = in.LastWorkingWeight
		observed := minObservedReps(last.Sets)
		nextReps = observed + 1
		if nextReps > cfg.RepHigh {
			nextReps = cfg.RepHigh
		}
		if nextReps < cfg.RepLow {
			nextReps = cfg.RepLow
		}
		notes = append(notes, "holding load; advancing target reps")
	}

	if adjusted, applied := applyHiatus(nextValue, in); applied {
		nextValue = adjusted
		notes = append(notes, "long hiatus detected; applying break-reset factor")
	}

	load, err := round(in, nextValue)
	if err != nil {
		return Output{}, err
	}
	return Output{NextTopLoad: load, NextTargetReps: nextReps, DeloadApplied: deloadApplied, Notes: notes}, nil
}

package progression

import "fmt"

// RIRConfig configures RIR (reps-in-reserve) autoregulation at plan time.
// In-session adjustment per §4.6 lives in the insession package; this
// policy only governs what the next session's plan carries forward.
type RIRConfig struct {
	TargetRIR float64
	// DeviationThreshold is how many RIR of sustained deviation from
	// TargetRIR across DeviationSessions triggers a load correction.
	DeviationThreshold float64
	DeviationSessions  int
	CorrectionIncrement float64
}

// Validate checks RIRConfig's invariants.
func (c RIRConfig) Validate() error {
	if c.TargetRIR < 0 {
		return fmt.Errorf("%w: targetRIR must be non-negative", ErrInvalidParams)
	}
	if c.DeviationThreshold <= 0 {
		return fmt.Errorf("%w: deviationThreshold must be positive", ErrInvalidParams)
	}
	if c.DeviationSessions < 1 {
		return fmt.Errorf("%w: deviationSessions must be at least 1", ErrInvalidParams)
	}
	if c.CorrectionIncrement <= 0 {
		return fmt.Errorf("%w: correctionIncrement must be positive", ErrInvalidParams)
	}
	return nil
}

// averageRIR returns the mean reported RIR across a session's working sets
// that reported one; ok is false if none did.
func averageRIR(sets []SetOutcome) (avg float64, ok bool) {
	var sum float64
	var n int
	for _, s := range sets {
		if s.RIR != nil {
			sum += *s.RIR
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

// ApplyRIRAutoregulation implements §4.4.4's plan-time half: carry the load
// unchanged unless history shows sustained deviation from TargetRIR across
// DeviationSessions consecutive sessions, in which case nudge load by
// CorrectionIncrement (down if the lifter has consistently undershot RIR —
// training harder than intended — up if they've consistently overshot it).
func ApplyRIRAutoregulation(cfg RIRConfig, in Input) (Output, error) {
	if err := cfg.Validate(); err != nil {
		return Output{}, err
	}

	if len(in.History) == 0 {
		load, err := round(in, in.LastWorkingWeight)
		if err != nil {
			return Output{}, err
		}
		return Output{NextTopLoad: load, Notes: []string{"no prior history; holding lastWorkingWeight"}}, nil
	}

	n := cfg.DeviationSessions
	if n > len(in.History) {
		n = len(in.History)
	}
	recent := in.History[len(in.History)-n:]

	allUndershot, allOvershot := true, true
	sawAny := false
	for _, session := range recent {
		avg, ok := averageRIR(session.Sets)
		if !ok {
			allUndershot, allOvershot = false, false
			continue
		}
		sawAny = true
		deviation := avg - cfg.TargetRIR
		if deviation > -cfg.DeviationThreshold {
			allUndershot = false
		}
		if deviation < cfg.DeviationThreshold {
			allOvershot = false
		}
	}

	nextValue := in.LastWorkingWeight
	var notes []string
	switch {
	case sawAny && len(recent) == cfg.DeviationSessions && allUndershot:
		nextValue -= cfg.CorrectionIncrement
		notes = append(notes, "sustained RIR undershoot (too hard); reducing load")
	case sawAny && len(recent) == cfg.DeviationSessions && allOvershot:
		nextValue += cfg.CorrectionIncrement
		notes = append(notes, "sustained RIR overshoot (too easy); increasing load")
	default:
		notes = append(notes, "no sustained RIR deviation; holding load")
	}

	if adjusted, applied := applyHiatus(nextValue, in); applied {
		nextValue = adjusted
		notes = append(notes, "long hiatus detected; applying break-reset factor")
	}

	load, err := round(in, nextValue)
	if err != nil {
		return Output{}, err
	}
	return Output{NextTopLoad: load, Notes: notes}, nil
}

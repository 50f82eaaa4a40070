// Package e1rm provides domain logic for estimated one-rep-max (e1RM)
// calculation, rolling-average state update, and trend classification.
package e1rm

import (
	"errors"
	"fmt"
)

var (
	ErrWeightMustBePositive = errors.New("weight must be greater than 0")
	ErrRepsOutOfRange       = errors.New("reps must be between 1 and 30")
)

// minReps and maxReps bound the Brzycki formula's valid rep range; reps
// outside this band are clamped before the estimate is taken.
const (
	minReps = 1
	maxReps = 30
)

// Brzycki estimates a one-rep max from a single (load, reps) observation:
// load * 36 / (37 - reps). reps is clamped to [1, 30] before the formula is
// applied — the formula is undefined at reps=37 and unstable well before it.
func Brzycki(load float64, reps int) (float64, error) {
	if load <= 0 {
		return 0, fmt.Errorf("%w: got %.2f", ErrWeightMustBePositive, load)
	}
	clamped := reps
	if clamped < minReps {
		clamped = minReps
	}
	if clamped > maxReps {
		clamped = maxReps
	}
	return load * 36.0 / (37.0 - float64(clamped)), nil
}

// WorkingSet is the minimal shape the daily-max and session-e1RM
// calculations need from a performed set: its load already expressed in the
// canonical state's unit, and the reps completed.
type WorkingSet struct {
	Load float64
	Reps int
}

// DailyMax computes the Brzycki estimate for a single performed set — used
// immediately after a top set to drive top-set+backoff recomputation.
func DailyMax(load float64, reps int) (float64, error) {
	return Brzycki(load, reps)
}

// SessionE1RM computes the session's representative e1RM as the maximum
// Brzycki estimate over its working sets. sets must be non-empty.
func SessionE1RM(sets []WorkingSet) (float64, error) {
	if len(sets) == 0 {
		return 0, fmt.Errorf("%w: no working sets provided", ErrRepsOutOfRange)
	}
	var best float64
	for i, s := range sets {
		estimate, err := Brzycki(s.Load, s.Reps)
		if err != nil {
			return 0, fmt.Errorf("working set %d: %w", i, err)
		}
		if estimate > best {
			best = estimate
		}
	}
	return best, nil
}

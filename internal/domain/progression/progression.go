// Package progression implements the five per-lift progression policies.
// Each policy is a pure function of (config, prescription snapshot, lift
// state, history, exercise id) to (next top load, next target reps, notes).
// No policy reads a clock or touches persistence; rounding is applied once,
// at the output boundary, via the caller-supplied RoundingPolicy.
package progression

import (
	"errors"
	"fmt"

	"github.com/kdrennan/setforge/internal/domain/loadunit"
	"github.com/kdrennan/setforge/internal/domain/magnitude"
)

// Type identifies one of the five progression policies.
type Type string

const (
	TypeLinear             Type = "linear"
	TypeDoubleProgression  Type = "doubleProgression"
	TypeTopSetBackoff      Type = "topSetBackoff"
	TypeRIRAutoregulation  Type = "rirAutoregulation"
	TypePercentageOfE1RM   Type = "percentageOfE1RM"
)

// ValidTypes contains all valid progression policy types.
var ValidTypes = map[Type]bool{
	TypeLinear:            true,
	TypeDoubleProgression: true,
	TypeTopSetBackoff:     true,
	TypeRIRAutoregulation: true,
	TypePercentageOfE1RM:  true,
}

var (
	ErrInvalidParams       = errors.New("invalid progression parameters")
	ErrUnknownType         = errors.New("unknown progression type")
	ErrNoWorkingSets       = errors.New("last session has no working sets for this exercise")
)

// ValidateType checks that t is one of the five known progression types.
func ValidateType(t Type) error {
	if !ValidTypes[t] {
		return fmt.Errorf("%w: %s", ErrUnknownType, t)
	}
	return nil
}

// SetOutcome is the minimal shape a progression policy needs from one
// working set of the most recently completed session for this exercise.
type SetOutcome struct {
	Load      float64
	TargetLow int
	TargetHigh int
	Reps      int
	IsAMRAP   bool
	RIR       *float64
}

// MetTarget reports whether this set's reps reached the lower bound of its
// target rep range; reps above TargetHigh also count as met.
func (s SetOutcome) MetTarget() bool {
	return s.Reps >= s.TargetLow
}

// SessionRecord is the minimal per-exercise slice of WorkoutHistory a
// progression policy consults: one completed session's working sets for a
// single exercise, most-recent last when part of a slice.
type SessionRecord struct {
	Sets []SetOutcome
	// DaysSinceLastSession is the gap, in days, between this session and
	// the one preceding it (0 for the oldest record in a slice).
	DaysSinceLastSession int
}

// Input bundles everything a policy needs, independent of any specific
// policy's configuration shape.
type Input struct {
	ExerciseID string
	// LastWorkingWeight is the lift's most recently prescribed top load,
	// used as the progression anchor when history is empty.
	LastWorkingWeight float64
	// RollingE1RM feeds the percentage-of-e1RM policy; zero means "no
	// estimate available yet".
	RollingE1RM float64
	// FailureCount is the lift's current consecutive-failure counter
	// (linear progression reads and would reset this; the caller — State
	// Update — owns the actual counter mutation from the returned Output).
	FailureCount int
	// History is ordered oldest-first; History[len-1] is the most recent
	// completed session for this exercise, if any.
	History []SessionRecord
	// RoundingPolicy quantizes the final output load.
	RoundingPolicy loadunit.RoundingPolicy
	// HiatusAlreadyHandled is true when DirectionPolicy already applied a
	// resetAfterBreak multiplier this cycle — §4.4.6 must not double-apply
	// the same break-reset tiering.
	HiatusAlreadyHandled bool
	// DaysSinceLastSession drives the §4.4.6 long-hiatus check.
	DaysSinceLastSession int
}

// Output is what every progression policy produces.
type Output struct {
	NextTopLoad    loadunit.Load
	NextTargetReps int
	// DeloadApplied is true when this policy's own internal failure
	// handling (not the session-level Deload Policy) fired a cut.
	DeloadApplied bool
	Notes         []string
}

// applyHiatus multiplies load by the §4.3 break-reset tier (via
// magnitude.Tier, the single source of truth for that table) unless
// DirectionPolicy already handled the break via resetAfterBreak, or the gap
// is under 14 days (§4.4.6's own threshold, stricter than §4.3's 8-day
// floor since this is a fallback path).
func applyHiatus(load float64, in Input) (float64, bool) {
	if in.HiatusAlreadyHandled || in.DaysSinceLastSession < 14 {
		return load, false
	}
	return load * magnitude.Tier(in.DaysSinceLastSession), true
}

func (in Input) lastSession() (SessionRecord, bool) {
	if len(in.History) == 0 {
		return SessionRecord{}, false
	}
	return in.History[len(in.History)-1], true
}

func round(in Input, value float64) (loadunit.Load, error) {
	load, err := loadunit.NewLoad(value, in.RoundingPolicy.Unit)
	if err != nil {
		return loadunit.Load{}, err
	}
	return in.RoundingPolicy.Apply(load)
}

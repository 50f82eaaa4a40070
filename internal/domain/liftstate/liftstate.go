// Package liftstate implements State Update (§4.7): after a completed
// session, it recomputes the canonical per-lift-family LiftState — rolling
// e1RM, trend, streaks, failure counts, and last working weight — from the
// session's working sets. Family aliasing (resolving a variation's id to
// its canonical id and coefficient) is internal/domain/lift's concern;
// this package only ever reads and writes state at the canonical id.
package liftstate

import (
	"fmt"
	"sort"
	"time"

	"github.com/kdrennan/setforge/internal/domain/e1rm"
	"github.com/kdrennan/setforge/internal/domain/loadunit"
)

// LiftState is the canonical per-lift-family progression record.
type LiftState struct {
	ExerciseID              string
	LastWorkingWeight       loadunit.Load
	RollingE1RM             float64
	FailureCount            int
	HighRpeStreak           int
	SuccessStreak           int
	SuccessfulSessionsCount int
	LastDeloadDate          *time.Time
	Trend                   e1rm.Trend
	E1RMHistory             []e1rm.Sample
	LastSessionDate         *time.Time
}

// WorkingSetResult is one performed working set, already filtered to
// completed/non-warmup/reps>0 sets by the caller, with its load already
// expressed in the canonical state's unit (the caller applies the family
// coefficient before constructing this).
type WorkingSetResult struct {
	Reps           int
	Load           loadunit.Load
	RIRObserved    *float64
	RepsLowerBound int
}

func (w WorkingSetResult) failed() bool {
	return w.Reps < w.RepsLowerBound
}

func (w WorkingSetResult) grinder(grinderRPE float64) bool {
	if w.RIRObserved == nil {
		return false
	}
	impliedRPE := 10 - *w.RIRObserved
	return *w.RIRObserved <= 0 || impliedRPE >= grinderRPE
}

// Config holds the thresholds State Update itself needs (distinct from the
// Direction Policy's own copy of grinderRPE, since State Update runs
// independently and must not import direction to avoid a cycle with the
// engine package that uses both).
type Config struct {
	GrinderRPE float64
}

// DefaultConfig mirrors direction.DefaultConfig().GrinderRPE.
func DefaultConfig() Config {
	return Config{GrinderRPE: 8.5}
}

// UpdateAfterSession applies §4.7 to produce the next LiftState for one
// lift family. workingSets must already be grouped to this family and
// converted into the canonical unit. An empty workingSets leaves state
// unchanged (byte-for-byte), satisfying the state-update idempotence
// invariant. wasDeload and isAdjustmentDeload both come from the session's
// per-exercise plan (deload from either the session-level Deload Policy or
// the lift's own Direction Policy counts for streak purposes).
func UpdateAfterSession(cfg Config, state LiftState, sessionDate time.Time, workingSets []WorkingSetResult, wasDeload bool, isAdjustmentDeload bool) (LiftState, error) {
	if len(workingSets) == 0 {
		return state, nil
	}

	unit := state.LastWorkingWeight.Unit
	if unit == "" {
		if len(workingSets) > 0 {
			unit = workingSets[0].Load.Unit
		} else {
			unit = loadunit.Pounds
		}
	}

	sets := make([]e1rm.WorkingSet, 0, len(workingSets))
	for _, w := range workingSets {
		converted, err := w.Load.In(unit)
		if err != nil {
			return LiftState{}, fmt.Errorf("converting working set load: %w", err)
		}
		sets = append(sets, e1rm.WorkingSet{Load: converted.Value, Reps: w.Reps})
	}

	sessionE1RM, err := e1rm.SessionE1RM(sets)
	if err != nil {
		return LiftState{}, fmt.Errorf("computing session e1RM: %w", err)
	}

	newRolling, newHistory := e1rm.UpdateRolling(state.RollingE1RM, state.E1RMHistory, sessionE1RM, sessionDate)
	newTrend := e1rm.ClassifyTrend(newHistory)

	var failureFlag, grinderFlag bool
	var maxLoad loadunit.Load
	for i, w := range workingSets {
		if w.failed() {
			failureFlag = true
		}
		if w.grinder(cfg.GrinderRPE) {
			grinderFlag = true
		}
		converted, err := w.Load.In(unit)
		if err != nil {
			return LiftState{}, err
		}
		if i == 0 {
			maxLoad = converted
		} else if cmp, _ := converted.Compare(maxLoad); cmp > 0 {
			maxLoad = converted
		}
	}

	next := state
	next.RollingE1RM = newRolling
	next.E1RMHistory = newHistory
	next.Trend = newTrend

	if failureFlag || isAdjustmentDeload {
		next.FailureCount = state.FailureCount + 1
	} else {
		next.FailureCount = 0
	}
	if grinderFlag {
		next.HighRpeStreak = state.HighRpeStreak + 1
	} else {
		next.HighRpeStreak = 0
	}
	cleanSuccess := !failureFlag && !grinderFlag && !wasDeload
	if cleanSuccess {
		next.SuccessStreak = state.SuccessStreak + 1
		next.SuccessfulSessionsCount = state.SuccessfulSessionsCount + 1
	} else {
		next.SuccessStreak = 0
	}

	if wasDeload {
		date := sessionDate
		next.LastDeloadDate = &date
		// lastWorkingWeight is held, not advanced, on a deload session.
	} else {
		next.LastWorkingWeight = maxLoad
	}

	date := sessionDate
	next.LastSessionDate = &date

	return next, nil
}

// CanonicalKeys sorts a set of canonical ids for deterministic iteration,
// per §4.7's determinism requirement that groups be processed in stable
// sorted key order.
func CanonicalKeys(states map[string]LiftState) []string {
	keys := make([]string, 0, len(states))
	for k := range states {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

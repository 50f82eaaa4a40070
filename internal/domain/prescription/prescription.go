// Package prescription provides domain logic for the SetPrescription and
// SetPlan entities (§3): a SetPrescription is the durable per-exercise
// target (set count, rep range, RIR target, rest, load strategy,
// increment); a SetPlan is one concrete prescribed set, quantized to a
// RoundingPolicy and ready to display to the lifter.
package prescription

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kdrennan/setforge/internal/domain/loadunit"
)

// LoadStrategy selects how a SetPrescription's base load is derived.
type LoadStrategy string

const (
	// LoadStrategyAbsolute carries a fixed load forward from the lift's
	// lastWorkingWeight, adjusted only by the progression pipeline.
	LoadStrategyAbsolute LoadStrategy = "absolute"
	// LoadStrategyRPEAutoregulated derives load from the lifter's
	// reported RIR/RPE during the session rather than a fixed percentage.
	LoadStrategyRPEAutoregulated LoadStrategy = "rpeAutoregulated"
	// LoadStrategyPercentageE1RM derives load as a percentage of the
	// lift's rolling e1RM.
	LoadStrategyPercentageE1RM LoadStrategy = "percentageE1RM"
)

var validLoadStrategies = map[LoadStrategy]bool{
	LoadStrategyAbsolute:         true,
	LoadStrategyRPEAutoregulated: true,
	LoadStrategyPercentageE1RM:   true,
}

// Validation errors.
var (
	ErrSetCountInvalid      = errors.New("set count must be >= 1")
	ErrRepsRangeInvalid     = errors.New("target reps range must have lo <= hi and lo >= 1")
	ErrTargetRIRInvalid     = errors.New("target RIR must be >= 0")
	ErrRestSecondsInvalid   = errors.New("rest seconds must be >= 0")
	ErrLoadStrategyInvalid  = errors.New("load strategy must be absolute, rpeAutoregulated, or percentageE1RM")
	ErrTargetRepsOutOfRange = errors.New("target reps must fall within the prescription's rep range")
)

// RepsRange is an inclusive [lo, hi] bound on reps-per-set.
type RepsRange struct {
	Lo int
	Hi int
}

func (r RepsRange) validate() error {
	if r.Lo < 1 || r.Lo > r.Hi {
		return ErrRepsRangeInvalid
	}
	return nil
}

// Contains reports whether reps falls within [Lo, Hi].
func (r RepsRange) Contains(reps int) bool {
	return reps >= r.Lo && reps <= r.Hi
}

// SetPrescription is the durable per-exercise target a session's plan is
// built from (§3).
type SetPrescription struct {
	SetCount        int
	TargetRepsRange RepsRange
	TargetRIR       float64
	RestSeconds     int
	LoadStrategy    LoadStrategy
	Increment       loadunit.Load
}

// Validate checks all of SetPrescription's field-level invariants.
func (p SetPrescription) Validate() error {
	var msgs []string
	if p.SetCount < 1 {
		msgs = append(msgs, ErrSetCountInvalid.Error())
	}
	if err := p.TargetRepsRange.validate(); err != nil {
		msgs = append(msgs, err.Error())
	}
	if p.TargetRIR < 0 {
		msgs = append(msgs, ErrTargetRIRInvalid.Error())
	}
	if p.RestSeconds < 0 {
		msgs = append(msgs, ErrRestSecondsInvalid.Error())
	}
	if !validLoadStrategies[p.LoadStrategy] {
		msgs = append(msgs, ErrLoadStrategyInvalid.Error())
	}
	if err := loadunit.ValidateUnit(p.Increment.Unit); err != nil {
		msgs = append(msgs, err.Error())
	}
	if len(msgs) > 0 {
		return fmt.Errorf("invalid set prescription: %s", strings.Join(msgs, "; "))
	}
	return nil
}

// SetPlan is one concrete prescribed set (§3): the engine's output unit,
// one per working (and optionally warmup) set in a session's ExercisePlan.
type SetPlan struct {
	SetIndex     int
	TargetLoad   loadunit.Load
	TargetReps   int
	TargetRIR    float64
	RestSeconds  int
	IsWarmup     bool
	// IsBackoffSet marks a set whose load is pegged to a preceding top
	// set's performance (§4.6) rather than computed directly by the
	// progression pipeline.
	IsBackoffSet   bool
	RoundingPolicy loadunit.RoundingPolicy
}

// BuildWorkingSets expands a SetPrescription into p.SetCount identical
// working-set SetPlans at baseLoad, quantized under policy. targetReps must
// fall within p.TargetRepsRange. The returned plans are 1-indexed by
// SetIndex in the order they appear; a caller prepending warmups is
// responsible for its own indexing scheme.
func BuildWorkingSets(p SetPrescription, baseLoad loadunit.Load, policy loadunit.RoundingPolicy, targetReps int) ([]SetPlan, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if !p.TargetRepsRange.Contains(targetReps) {
		return nil, fmt.Errorf("%w: got %d, range [%d, %d]", ErrTargetRepsOutOfRange, targetReps, p.TargetRepsRange.Lo, p.TargetRepsRange.Hi)
	}

	quantized, err := policy.Apply(baseLoad)
	if err != nil {
		return nil, fmt.Errorf("quantizing base load: %w", err)
	}

	plans := make([]SetPlan, 0, p.SetCount)
	for i := 1; i <= p.SetCount; i++ {
		plans = append(plans, SetPlan{
			SetIndex:       i,
			TargetLoad:     quantized,
			TargetReps:     targetReps,
			TargetRIR:      p.TargetRIR,
			RestSeconds:    p.RestSeconds,
			IsWarmup:       false,
			RoundingPolicy: policy,
		})
	}
	return plans, nil
}

// WarmupRamp describes one step of a warmup ramp as a fraction of the
// working load and a rep count, in ascending load order.
type WarmupRamp struct {
	LoadFraction float64
	Reps         int
}

// DefaultWarmupRamp is a conservative three-step ramp: an empty-bar-ish
// opener, a mid-range set, and a near-working-weight single.
func DefaultWarmupRamp() []WarmupRamp {
	return []WarmupRamp{
		{LoadFraction: 0.4, Reps: 5},
		{LoadFraction: 0.6, Reps: 3},
		{LoadFraction: 0.8, Reps: 1},
	}
}

// BuildWarmups expands a warmup ramp into SetPlans preceding the working
// sets, quantized under the same policy as the working sets. Plans are
// 1-indexed within the ramp alone; call Renumber after concatenating with
// the working sets that follow.
func BuildWarmups(ramp []WarmupRamp, workingLoad loadunit.Load, policy loadunit.RoundingPolicy, targetRIR float64, restSeconds int) ([]SetPlan, error) {
	plans := make([]SetPlan, 0, len(ramp))
	for i, step := range ramp {
		if step.Reps < 1 {
			return nil, fmt.Errorf("warmup step %d: %w", i, ErrTargetRepsOutOfRange)
		}
		scaled, err := workingLoad.Scale(step.LoadFraction)
		if err != nil {
			return nil, fmt.Errorf("scaling warmup step %d: %w", i, err)
		}
		quantized, err := policy.Apply(scaled)
		if err != nil {
			return nil, fmt.Errorf("quantizing warmup step %d: %w", i, err)
		}
		plans = append(plans, SetPlan{
			SetIndex:       i + 1,
			TargetLoad:     quantized,
			TargetReps:     step.Reps,
			TargetRIR:      targetRIR,
			RestSeconds:    restSeconds,
			IsWarmup:       true,
			RoundingPolicy: policy,
		})
	}
	return plans, nil
}

// Renumber reassigns SetIndex to 1..len(plans) in the given order — used
// after concatenating warmups and working sets into one ExercisePlan.
func Renumber(plans []SetPlan) []SetPlan {
	for i := range plans {
		plans[i].SetIndex = i + 1
	}
	return plans
}

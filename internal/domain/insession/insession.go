// Package insession implements In-Session Adjustment: the two rules that
// modify the next planned set in response to the set that was just
// performed (RIR autoregulation, and top-set-driven backoff
// recomputation). This is the adjustDuringSession half of RIR
// autoregulation; the plan-time half lives in
// internal/domain/progression.
package insession

import (
	"fmt"

	"github.com/kdrennan/setforge/internal/domain/e1rm"
	"github.com/kdrennan/setforge/internal/domain/loadunit"
)

// SetResult is the minimal shape of a just-completed set the adjustment
// rules need.
type SetResult struct {
	Reps        int
	Load        loadunit.Load
	RIRObserved *float64
	Completed   bool
	IsWarmup    bool
	// IsTopSet marks the top set of a top-set/backoff exercise.
	IsTopSet bool
}

// SetPlan is the minimal shape of a planned upcoming set the adjustment
// rules read and rewrite.
type SetPlan struct {
	SetIndex       int
	TargetLoad     loadunit.Load
	TargetReps     int
	TargetRIR      float64
	RestSeconds    int
	IsWarmup       bool
	IsBackoffSet   bool
	RoundingPolicy loadunit.RoundingPolicy
}

// RIRConfig configures the RIR-autoregulation in-session rule.
type RIRConfig struct {
	AdjustmentPerRIR      float64 // default 0.025 (2.5%/RIR)
	MaxAdjustmentPerSet   float64 // default 0.10 (10%)
	AllowUpwardAdjustment bool
	MinimumLoad           loadunit.Load
}

// DefaultRIRConfig returns the spec's documented defaults.
func DefaultRIRConfig(unit loadunit.Unit) RIRConfig {
	minLoad, _ := loadunit.NewLoad(0, unit)
	return RIRConfig{AdjustmentPerRIR: 0.025, MaxAdjustmentPerSet: 0.10, AllowUpwardAdjustment: true, MinimumLoad: minLoad}
}

// clamp restricts v to [-bound, bound].
func clamp(v, bound float64) float64 {
	if v > bound {
		return bound
	}
	if v < -bound {
		return -bound
	}
	return v
}

// AdjustRIR applies the §4.6 RIR-autoregulation rule: a just-completed set
// with an observed RIR shifts the next planned set's load proportionally to
// its deviation from that set's target RIR. Reps are never pushed above the
// plan's own target; the caller is responsible for clamping to the
// exercise's prescription.repsRange.upper if that differs.
func AdjustRIR(cfg RIRConfig, completed SetResult, targetRIR float64, plan SetPlan) (SetPlan, error) {
	if completed.RIRObserved == nil {
		return plan, nil
	}

	delta := *completed.RIRObserved - targetRIR
	rawAdjust := delta * cfg.AdjustmentPerRIR
	adjust := clamp(rawAdjust, cfg.MaxAdjustmentPerSet)
	if adjust > 0 && !cfg.AllowUpwardAdjustment {
		adjust = 0
	}

	scaled, err := plan.TargetLoad.Scale(1 + adjust)
	if err != nil {
		return SetPlan{}, err
	}
	rounded, err := plan.RoundingPolicy.Apply(scaled)
	if err != nil {
		return SetPlan{}, err
	}
	cmp, err := rounded.Compare(cfg.MinimumLoad)
	if err != nil {
		return SetPlan{}, err
	}
	if cmp < 0 {
		rounded = cfg.MinimumLoad
	}

	plan.TargetLoad = rounded
	return plan, nil
}

// AdjustTopSetBackoff recomputes every remaining backoff SetPlan's target
// load from the just-completed top set's actual performance, per §4.6's
// top-set-driven backoff propagation rule. remaining must contain only the
// exercise's not-yet-performed backoff sets, in plan order.
func AdjustTopSetBackoff(backoffPercentage float64, completedTopSet SetResult, remaining []SetPlan) ([]SetPlan, error) {
	if !completedTopSet.Completed || completedTopSet.Reps <= 0 {
		return remaining, nil
	}
	dailyMax, err := e1rm.DailyMax(completedTopSet.Load.Value, completedTopSet.Reps)
	if err != nil {
		return nil, fmt.Errorf("recomputing daily max: %w", err)
	}

	out := make([]SetPlan, len(remaining))
	for i, set := range remaining {
		if !set.IsBackoffSet {
			out[i] = set
			continue
		}
		raw, err := loadunit.NewLoad(dailyMax*backoffPercentage, completedTopSet.Load.Unit)
		if err != nil {
			return nil, err
		}
		rounded, err := set.RoundingPolicy.Apply(raw)
		if err != nil {
			return nil, err
		}
		set.TargetLoad = rounded
		out[i] = set
	}
	return out, nil
}

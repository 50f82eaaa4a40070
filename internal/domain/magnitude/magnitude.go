// Package magnitude implements the Magnitude Policy: it converts a
// DirectionDecision into a concrete load multiplier and/or absolute
// increment, respecting experience level, movement pattern, and the
// break-reset tiering table shared with the long-hiatus progression check.
package magnitude

import (
	"fmt"

	"github.com/kdrennan/setforge/internal/domain/direction"
	"github.com/kdrennan/setforge/internal/domain/loadunit"
)

// MovementPattern classifies an exercise for the increment-cap table.
type MovementPattern string

const (
	Squat               MovementPattern = "squat"
	HipHinge            MovementPattern = "hipHinge"
	HorizontalPush      MovementPattern = "horizontalPush"
	VerticalPush        MovementPattern = "verticalPush"
	KneeExtension       MovementPattern = "kneeExtension"
	KneeFlexion         MovementPattern = "kneeFlexion"
	ShoulderAbduction   MovementPattern = "shoulderAbduction"
	ShoulderFlexion     MovementPattern = "shoulderFlexion"
	ElbowFlexion        MovementPattern = "elbowFlexion"
	ElbowExtension      MovementPattern = "elbowExtension"
)

// AdjustmentKind tags why a magnitude took the shape it did.
type AdjustmentKind string

const (
	KindProgression AdjustmentKind = "progression"
	KindReadinessCut AdjustmentKind = "readinessCut"
	KindBreakReset   AdjustmentKind = "breakReset"
	KindDeload       AdjustmentKind = "deload"
	KindNone         AdjustmentKind = "none"
)

// Magnitude is the policy's output.
type Magnitude struct {
	LoadMultiplier    float64
	AbsoluteIncrement loadunit.Load
	AdjustmentKind    AdjustmentKind
	// VolumeSetDelta is the signed change to setCount this magnitude implies
	// (e.g. -1 for a readiness cut, -Config.VolumeReduction for a deload).
	VolumeSetDelta int
}

// incrementCap is one row of the §4.3 movement-pattern table: a cap
// expressed in both units. The per-experience scale factors are kept
// separately.
type incrementCap struct {
	CapPounds    float64
	CapKilograms float64
}

var incrementCaps = map[MovementPattern]incrementCap{
	Squat:             {CapPounds: 10, CapKilograms: 5},
	HipHinge:          {CapPounds: 10, CapKilograms: 5},
	HorizontalPush:    {CapPounds: 5, CapKilograms: 2.5},
	VerticalPush:      {CapPounds: 5, CapKilograms: 2.5},
	KneeExtension:     {CapPounds: 5, CapKilograms: 2.5},
	KneeFlexion:       {CapPounds: 5, CapKilograms: 2.5},
	ShoulderAbduction: {CapPounds: 2.5, CapKilograms: 1.25},
	ShoulderFlexion:   {CapPounds: 2.5, CapKilograms: 1.25},
	ElbowFlexion:      {CapPounds: 2.5, CapKilograms: 1.25},
	ElbowExtension:    {CapPounds: 2.5, CapKilograms: 1.25},
}

var experienceScale = map[direction.ExperienceLevel]float64{
	direction.Beginner:     1.0,
	direction.Intermediate: 0.8,
	direction.Advanced:     0.6,
	direction.Elite:        0.5,
}

// acuteReduction is the §4.3 decreaseSlightly multiplier cut, keyed by
// experience.
var acuteReduction = map[direction.ExperienceLevel]float64{
	direction.Beginner:     0.02,
	direction.Intermediate: 0.03,
	direction.Advanced:     0.04,
	direction.Elite:        0.05,
}

// breakResetTiers is the §4.3 table, also reused verbatim by the
// progression package's long-hiatus multiplier (§4.4.6) via Tier.
var breakResetTiers = []struct {
	minDays    int
	multiplier float64
}{
	{84, 0.75},
	{56, 0.80},
	{28, 0.85},
	{14, 0.90},
	{8, 0.95},
}

// Tier returns the break-reset multiplier for a gap of days, or 1.0 if the
// gap is under the smallest tier's threshold.
func Tier(days int) float64 {
	for _, t := range breakResetTiers {
		if days >= t.minDays {
			return t.multiplier
		}
	}
	return 1.0
}

// Config enumerates the policy's tunable parameters.
type Config struct {
	IntensityReduction float64 // deload multiplier cut, default 0.10
	VolumeReduction    int     // deload set-count cut, default 1
	ReadinessCutEnabled bool   // whether acuteReadiness trims a set (open question, default true)
}

// DefaultConfig returns the spec's documented defaults.
func DefaultConfig() Config {
	return Config{IntensityReduction: 0.10, VolumeReduction: 1, ReadinessCutEnabled: true}
}

func (c Config) validate() error {
	if c.IntensityReduction <= 0 || c.IntensityReduction >= 1 {
		return fmt.Errorf("invalid magnitude config: intensityReduction must be in (0,1), got %.4f", c.IntensityReduction)
	}
	if c.VolumeReduction <= 0 {
		return fmt.Errorf("invalid magnitude config: volumeReduction must be positive, got %d", c.VolumeReduction)
	}
	return nil
}

// ScaleIncrement computes the experience- and movement-pattern-scaled
// absolute increment for an increase direction: min(baseIncrement *
// experienceScale, cap), quantized by policy.
func ScaleIncrement(baseIncrement float64, pattern MovementPattern, experience direction.ExperienceLevel, policy loadunit.RoundingPolicy) (loadunit.Load, error) {
	cap, ok := incrementCaps[pattern]
	if !ok {
		return loadunit.Load{}, fmt.Errorf("unknown movement pattern: %s", pattern)
	}
	scale, ok := experienceScale[experience]
	if !ok {
		return loadunit.Load{}, fmt.Errorf("unknown experience level: %s", experience)
	}
	capValue := cap.CapPounds
	if policy.Unit == loadunit.Kilograms {
		capValue = cap.CapKilograms
	}
	scaled := baseIncrement * scale
	if scaled > capValue {
		scaled = capValue
	}
	load, err := loadunit.NewLoad(scaled, policy.Unit)
	if err != nil {
		return loadunit.Load{}, err
	}
	return policy.Apply(load)
}

// Decide converts a DirectionDecision into a Magnitude.
func Decide(cfg Config, dec direction.DirectionDecision, s direction.LiftSignals, pattern MovementPattern, baseIncrement float64, policy loadunit.RoundingPolicy) (Magnitude, error) {
	if err := cfg.validate(); err != nil {
		return Magnitude{}, err
	}

	switch dec.Direction {
	case direction.Increase:
		inc, err := ScaleIncrement(baseIncrement, pattern, s.Experience, policy)
		if err != nil {
			return Magnitude{}, err
		}
		return Magnitude{LoadMultiplier: 1.0, AbsoluteIncrement: inc, AdjustmentKind: KindProgression}, nil

	case direction.Hold:
		if dec.Reason == direction.ReasonAcuteReadiness && cfg.ReadinessCutEnabled {
			return Magnitude{LoadMultiplier: 1.0, AdjustmentKind: KindReadinessCut, VolumeSetDelta: -1}, nil
		}
		return Magnitude{LoadMultiplier: 1.0, AdjustmentKind: KindNone}, nil

	case direction.DecreaseSlightly:
		reduction, ok := acuteReduction[s.Experience]
		if !ok {
			return Magnitude{}, fmt.Errorf("unknown experience level: %s", s.Experience)
		}
		return Magnitude{LoadMultiplier: 1 - reduction, AdjustmentKind: KindReadinessCut}, nil

	case direction.Deload:
		return Magnitude{LoadMultiplier: 1 - cfg.IntensityReduction, AdjustmentKind: KindDeload, VolumeSetDelta: -cfg.VolumeReduction}, nil

	case direction.ResetAfterBreak:
		if s.DaysSinceLastExposure == nil {
			return Magnitude{}, fmt.Errorf("resetAfterBreak requires a known exposure gap")
		}
		return Magnitude{LoadMultiplier: Tier(*s.DaysSinceLastExposure), AdjustmentKind: KindBreakReset}, nil

	default:
		return Magnitude{}, fmt.Errorf("unknown direction: %s", dec.Direction)
	}
}

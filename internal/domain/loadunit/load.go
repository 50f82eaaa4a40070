package loadunit

import (
	"errors"
	"fmt"
)

// Unit is the measurement unit a Load is expressed in.
type Unit string

const (
	Pounds    Unit = "pounds"
	Kilograms Unit = "kilograms"
)

// ValidUnits contains all valid units.
var ValidUnits = map[Unit]bool{
	Pounds:    true,
	Kilograms: true,
}

// KgToLbFactor is the fixed conversion factor: 1 kg = 2.2046226218 lb.
const KgToLbFactor = 2.2046226218

var (
	ErrInvalidUnit = errors.New("invalid unit")
)

// ValidateUnit checks if a unit string is valid.
func ValidateUnit(unit Unit) error {
	if !ValidUnits[unit] {
		return fmt.Errorf("%w: %s", ErrInvalidUnit, unit)
	}
	return nil
}

// Load is a non-negative scalar paired with its unit. Zero is allowed
// (bodyweight, assistance work). Values below zero are clamped to zero at
// construction rather than rejected — callers compute deltas that can dip
// negative before a floor is applied.
type Load struct {
	Value float64 `json:"value"`
	Unit  Unit     `json:"unit"`
}

// NewLoad constructs a Load, clamping a negative value to zero and
// validating the unit.
func NewLoad(value float64, unit Unit) (Load, error) {
	if err := ValidateUnit(unit); err != nil {
		return Load{}, err
	}
	if value < 0 {
		value = 0
	}
	return Load{Value: value, Unit: unit}, nil
}

// Zero returns a zero-value Load in the given unit.
func Zero(unit Unit) Load {
	return Load{Value: 0, Unit: unit}
}

// In converts the Load to the target unit, applying KgToLbFactor. No
// rounding is applied — conversion is an internal, unrounded operation;
// rounding only happens at a RoundingPolicy boundary.
func (l Load) In(unit Unit) (Load, error) {
	if err := ValidateUnit(unit); err != nil {
		return Load{}, err
	}
	if l.Unit == unit {
		return l, nil
	}
	switch {
	case l.Unit == Kilograms && unit == Pounds:
		return Load{Value: l.Value * KgToLbFactor, Unit: Pounds}, nil
	case l.Unit == Pounds && unit == Kilograms:
		return Load{Value: l.Value / KgToLbFactor, Unit: Kilograms}, nil
	default:
		return Load{}, fmt.Errorf("%w: cannot convert %s to %s", ErrInvalidUnit, l.Unit, unit)
	}
}

// Add returns the sum of two Loads, converting rhs into l's unit first.
func (l Load) Add(rhs Load) (Load, error) {
	converted, err := rhs.In(l.Unit)
	if err != nil {
		return Load{}, err
	}
	return NewLoad(l.Value+converted.Value, l.Unit)
}

// Sub returns l minus rhs (converted into l's unit), clamped to zero.
func (l Load) Sub(rhs Load) (Load, error) {
	converted, err := rhs.In(l.Unit)
	if err != nil {
		return Load{}, err
	}
	return NewLoad(l.Value-converted.Value, l.Unit)
}

// Scale multiplies the Load by a scalar factor, clamped to zero.
func (l Load) Scale(factor float64) (Load, error) {
	return NewLoad(l.Value*factor, l.Unit)
}

// Compare returns -1, 0, or 1 as l is less than, equal to, or greater than
// rhs, after converting rhs into l's unit.
func (l Load) Compare(rhs Load) (int, error) {
	converted, err := rhs.In(l.Unit)
	if err != nil {
		return 0, err
	}
	switch {
	case l.Value < converted.Value:
		return -1, nil
	case l.Value > converted.Value:
		return 1, nil
	default:
		return 0, nil
	}
}

// IsZero reports whether the Load's value is exactly zero.
func (l Load) IsZero() bool {
	return l.Value == 0
}

// RoundingPolicy quantizes a Load to plate-achievable increments. The
// policy's unit is the unit increment is expressed in; a Load is converted
// into that unit before rounding and the result carries the policy's unit.
type RoundingPolicy struct {
	Increment float64      `json:"increment"`
	Unit      Unit         `json:"unit"`
	Mode      RoundingMode `json:"mode"`
}

// NewRoundingPolicy constructs a RoundingPolicy, validating increment > 0,
// the unit, and the mode (empty mode defaults to NEAREST).
func NewRoundingPolicy(increment float64, unit Unit, mode RoundingMode) (RoundingPolicy, error) {
	if increment <= 0 {
		return RoundingPolicy{}, fmt.Errorf("%w: got %.4f", ErrInvalidIncrement, increment)
	}
	if err := ValidateUnit(unit); err != nil {
		return RoundingPolicy{}, err
	}
	if err := ValidateMode(mode); err != nil {
		return RoundingPolicy{}, err
	}
	return RoundingPolicy{Increment: increment, Unit: unit, Mode: NormalizeMode(mode)}, nil
}

// DefaultRoundingPolicy returns the 5-unit NEAREST policy for the given unit.
func DefaultRoundingPolicy(unit Unit) RoundingPolicy {
	return RoundingPolicy{Increment: DefaultIncrement, Unit: unit, Mode: DefaultMode}
}

// Apply quantizes load to the policy's increment and unit, returning a Load
// expressed in the policy's unit.
func (p RoundingPolicy) Apply(load Load) (Load, error) {
	converted, err := load.In(p.Unit)
	if err != nil {
		return Load{}, err
	}
	rounded, err := RoundWeight(converted.Value, p.Increment, p.Mode)
	if err != nil {
		return Load{}, err
	}
	return Load{Value: rounded, Unit: p.Unit}, nil
}

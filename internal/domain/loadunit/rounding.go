// Package loadunit provides domain logic for the Load value type: unit
// conversion and quantization to plate-achievable increments. Rounding is a
// boundary concern — internal computations stay unrounded float64 and this
// package is invoked only when a SetPlan.targetLoad or a
// LiftState.lastWorkingWeight is about to be written.
package loadunit

import (
	"errors"
	"fmt"
	"math"
)

// RoundingMode specifies how a quantized load is derived from a raw one.
type RoundingMode string

const (
	// RoundNearest rounds to the nearest increment (half-up at exactly .5).
	RoundNearest RoundingMode = "NEAREST"
	// RoundDown always rounds down (conservative/floor).
	RoundDown RoundingMode = "DOWN"
	// RoundUp always rounds up (ceiling).
	RoundUp RoundingMode = "UP"
)

// ValidRoundingModes contains all valid rounding modes.
var ValidRoundingModes = map[RoundingMode]bool{
	RoundNearest: true,
	RoundDown:    true,
	RoundUp:      true,
}

// Rounding errors.
var (
	ErrNegativeWeight   = errors.New("weight cannot be negative")
	ErrInvalidIncrement = errors.New("rounding increment must be greater than zero")
	ErrInvalidMode      = errors.New("invalid rounding mode")
)

// DefaultIncrement is the default plate-step increment (5 lb or 5 kg).
const DefaultIncrement = 5.0

// DefaultMode is the default rounding mode.
const DefaultMode = RoundNearest

// RoundWeight quantizes weight to the given increment using mode.
// Parameters:
//   - weight: the weight to round (must be non-negative)
//   - increment: the rounding increment (e.g., 2.5, 5.0); must be > 0
//   - mode: how to round (NEAREST, DOWN, UP)
func RoundWeight(weight, increment float64, mode RoundingMode) (float64, error) {
	if weight < 0 {
		return 0, fmt.Errorf("%w: got %.4f", ErrNegativeWeight, weight)
	}
	if increment <= 0 {
		return 0, fmt.Errorf("%w: got %.4f", ErrInvalidIncrement, increment)
	}
	if !ValidRoundingModes[mode] {
		return 0, fmt.Errorf("%w: %s", ErrInvalidMode, mode)
	}
	if weight == 0 {
		return 0, nil
	}

	switch mode {
	case RoundNearest:
		return math.Round(weight/increment) * increment, nil
	case RoundDown:
		return math.Floor(weight/increment) * increment, nil
	case RoundUp:
		return math.Ceil(weight/increment) * increment, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrInvalidMode, mode)
	}
}

// NormalizeMode returns the effective rounding mode, defaulting empty to NEAREST.
func NormalizeMode(mode RoundingMode) RoundingMode {
	if mode == "" {
		return DefaultMode
	}
	return mode
}

// NormalizeIncrement returns the effective increment, defaulting non-positive to DefaultIncrement.
func NormalizeIncrement(increment float64) float64 {
	if increment <= 0 {
		return DefaultIncrement
	}
	return increment
}

// ValidateMode checks if a rounding mode string is valid; empty is allowed
// (defaults to NEAREST).
func ValidateMode(mode RoundingMode) error {
	if mode == "" {
		return nil
	}
	if !ValidRoundingModes[mode] {
		return fmt.Errorf("%w: %s", ErrInvalidMode, mode)
	}
	return nil
}

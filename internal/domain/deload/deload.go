// Package deload implements the session-level Deload Policy: a trigger
// that, independent of any single lift's DirectionPolicy outcome, can mark
// an entire session as a deload. Checked top-down; the first trigger that
// fires wins.
package deload

import (
	"fmt"
	"time"
)

// Reason identifies which trigger fired.
type Reason string

const (
	ReasonScheduledDeload       Reason = "scheduledDeload"
	ReasonHighAccumulatedFatigue Reason = "highAccumulatedFatigue"
	ReasonPerformanceDecline    Reason = "performanceDecline"
	ReasonNone                  Reason = ""
)

// Decision is the policy's output.
type Decision struct {
	IsDeload bool
	Reason   Reason
}

// Config enumerates the policy's tunable thresholds.
type Config struct {
	// ScheduledDeloadWeeks is nullable: nil disables the scheduled trigger.
	ScheduledDeloadWeeks *int
	ReadinessThreshold    int
	LowReadinessDaysRequired int
	FailuresBeforeDeload  int
	// FatigueRatioThreshold is the recent/baseline 7-day-vs-28-day-average
	// volume ratio that must be met or exceeded (default 1.3).
	FatigueRatioThreshold float64
	// PerformanceDeclineEnabled gates the session-level fallback trigger.
	// The spec's open question resolves this to false by default: decline
	// is handled per-lift by DirectionPolicy's trend-caution rule, and this
	// trigger exists only as a fallback a host may opt into.
	PerformanceDeclineEnabled bool
}

// DefaultConfig returns the spec's documented defaults, with the
// performance-decline fallback trigger disabled per the recorded open
// question decision (see DESIGN.md).
func DefaultConfig() Config {
	return Config{
		ReadinessThreshold:        60,
		LowReadinessDaysRequired:  3,
		FailuresBeforeDeload:      2,
		FatigueRatioThreshold:     1.3,
		PerformanceDeclineEnabled: false,
	}
}

func (c Config) validate() error {
	if c.FatigueRatioThreshold <= 1 {
		return fmt.Errorf("invalid deload config: fatigueRatioThreshold must exceed 1, got %.4f", c.FatigueRatioThreshold)
	}
	return nil
}

// LiftTrendSample is a minimal (declining?, successStreak) view of one
// tracked lift used by the performance-decline fallback trigger.
type LiftTrendSample struct {
	// RecentE1RMDeclines is true when two consecutive declining e1RM
	// samples appear in the most recent three samples for this lift.
	RecentE1RMDeclines bool
	SuccessStreak      int
}

// Input bundles the session-level signals the Deload Policy consults.
type Input struct {
	Today time.Time

	// LastDeloadDate is the most recent lastDeloadDate across all tracked
	// lifts, nil if no lift has ever been deloaded.
	LastDeloadDate *time.Time

	TodayReadiness int

	// RecentVolume is the summed kg-volume over the last 7 days.
	RecentVolume float64
	// BaselineVolume is the average kg-volume per 7-day window over the
	// last 28 days.
	BaselineVolume float64

	TrackedLifts []LiftTrendSample
}

// Decide evaluates the session-level triggers in priority order.
func Decide(cfg Config, in Input) (Decision, error) {
	if err := cfg.validate(); err != nil {
		return Decision{}, err
	}

	// Trigger 1: scheduled cadence.
	if cfg.ScheduledDeloadWeeks != nil && in.LastDeloadDate != nil {
		weeksSince := in.Today.Sub(*in.LastDeloadDate).Hours() / (24 * 7)
		if weeksSince >= float64(*cfg.ScheduledDeloadWeeks) {
			return Decision{IsDeload: true, Reason: ReasonScheduledDeload}, nil
		}
	}

	// Trigger 2: high accumulated fatigue.
	if in.BaselineVolume > 0 {
		ratio := in.RecentVolume / in.BaselineVolume
		if ratio >= cfg.FatigueRatioThreshold && in.TodayReadiness < cfg.ReadinessThreshold {
			return Decision{IsDeload: true, Reason: ReasonHighAccumulatedFatigue}, nil
		}
	}

	// Trigger 3: performance decline fallback (disabled by default; see
	// the recorded open-question decision).
	if cfg.PerformanceDeclineEnabled {
		for _, lift := range in.TrackedLifts {
			if lift.RecentE1RMDeclines && lift.SuccessStreak == 0 {
				return Decision{IsDeload: true, Reason: ReasonPerformanceDecline}, nil
			}
		}
	}

	return Decision{IsDeload: false, Reason: ReasonNone}, nil
}

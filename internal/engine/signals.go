package engine

import (
	"time"

	"github.com/kdrennan/setforge/internal/domain/direction"
	"github.com/kdrennan/setforge/internal/domain/e1rm"
	"github.com/kdrennan/setforge/internal/domain/lift"
	"github.com/kdrennan/setforge/internal/domain/liftstate"
)

// trendToSignal converts an e1rm.Trend to direction's parallel enum; the
// two packages intentionally share string values so this is a pure cast.
func trendToSignal(t e1rm.Trend) direction.TrendSignal {
	return direction.TrendSignal(t)
}

// buildLiftSignals assembles a direction.LiftSignals for one canonical
// exercise from the history snapshot, today's date, and the lift's
// recorded state (the zero value when never trained before).
func buildLiftSignals(cal Calendar, today time.Time, state liftstate.LiftState, hasState bool, targetRIR float64, lastSessionAvgRIR *float64, lastSessionMetLowerBound bool, todayReadiness int, recentReadiness []int, lowReadinessStreakCount int, profile UserProfile, sessionIsDeload bool, intent direction.SessionIntent) direction.LiftSignals {
	var daysSinceExposure, daysSinceDeload *int
	if hasState && state.LastSessionDate != nil {
		d := DaysBetween(cal, *state.LastSessionDate, today)
		daysSinceExposure = &d
	}
	if hasState && state.LastDeloadDate != nil {
		d := DaysBetween(cal, *state.LastDeloadDate, today)
		daysSinceDeload = &d
	}

	return direction.LiftSignals{
		DaysSinceLastExposure:    daysSinceExposure,
		DaysSinceLastDeload:      daysSinceDeload,
		FailStreak:               state.FailureCount,
		HighRpeStreak:            state.HighRpeStreak,
		SuccessStreak:            state.SuccessStreak,
		SuccessfulSessionsCount:  state.SuccessfulSessionsCount,
		Trend:                    trendToSignal(state.Trend),
		LastSessionAvgRIR:        lastSessionAvgRIR,
		LastSessionMetLowerBound: lastSessionMetLowerBound,
		TargetRIR:                targetRIR,
		TodayReadiness:           todayReadiness,
		RecentReadiness:          recentReadiness,
		LowReadinessStreak:       lowReadinessStreakCount,
		Experience:               profile.Experience,
		Sex:                      profile.Sex,
		BodyWeight:               profile.BodyWeight,
		SessionIsDeload:          sessionIsDeload,
		SessionIntent:            intent,
		HasLastWorkingWeight:     hasState && !state.LastWorkingWeight.IsZero(),
	}
}

// resolveCanonical resolves exerciseID to its lift family's canonical id
// and coefficient via repo. A nil repo treats every exercise as its own
// canonical id with coefficient 1.0 (no family aliasing configured).
func resolveCanonical(exerciseID string, repo lift.LiftRepository) (string, float64, error) {
	if repo == nil {
		return exerciseID, 1.0, nil
	}
	return lift.ResolveFamily(exerciseID, repo)
}

// lowReadinessStreak counts the number of trailing samples (most recent
// first) strictly below threshold, stopping at the first sample at or
// above it.
func lowReadinessStreak(history []ReadinessSample, threshold int) int {
	streak := 0
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Score < threshold {
			streak++
		} else {
			break
		}
	}
	return streak
}

// recentReadinessScores returns up to n most recent readiness scores,
// oldest-first.
func recentReadinessScores(history []ReadinessSample, n int) []int {
	if n > len(history) {
		n = len(history)
	}
	if n <= 0 {
		return nil
	}
	out := make([]int, n)
	for i, s := range history[len(history)-n:] {
		out[i] = s.Score
	}
	return out
}

func clampReadiness(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

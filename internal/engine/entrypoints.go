package engine

import (
	"fmt"
	"time"

	"github.com/kdrennan/setforge/internal/domain/deload"
	"github.com/kdrennan/setforge/internal/domain/direction"
	"github.com/kdrennan/setforge/internal/domain/insession"
	"github.com/kdrennan/setforge/internal/domain/liftstate"
	"github.com/kdrennan/setforge/internal/errors"
)

// RecommendSession is §6's primary entry point: given today's date, the
// lifter's profile, a full plan (every exercise the lifter trains), their
// history, and today's readiness, it produces one SessionPlan covering
// every exercise in the plan. plannedDeloadWeek lets a host's own
// periodization calendar force a scheduled deload independent of the
// Deload Policy's own fatigue/readiness triggers.
func (r Recommender) RecommendSession(date time.Time, profile UserProfile, planTemplate PlanTemplate, history WorkoutHistory, todayReadiness int, plannedDeloadWeek bool) (SessionPlan, error) {
	return r.recommendForExercises(date, profile, planTemplate, planTemplate.Exercises, history, todayReadiness, plannedDeloadWeek)
}

// RecommendSessionForTemplate restricts RecommendSession to the exercises
// in planTemplate whose IDs are not in excludingExerciseIDs — the host's
// lever for "skip bench today, I'm out of a rack" without rebuilding a
// whole new PlanTemplate.
func (r Recommender) RecommendSessionForTemplate(date time.Time, profile UserProfile, planTemplate PlanTemplate, history WorkoutHistory, todayReadiness int, plannedDeloadWeek bool, excludingExerciseIDs []string) (SessionPlan, error) {
	excluded := make(map[string]bool, len(excludingExerciseIDs))
	for _, id := range excludingExerciseIDs {
		excluded[id] = true
	}
	var included []ExerciseConfig
	for _, ec := range planTemplate.Exercises {
		if excluded[ec.Exercise.ID] {
			continue
		}
		included = append(included, ec)
	}
	return r.recommendForExercises(date, profile, planTemplate, included, history, todayReadiness, plannedDeloadWeek)
}

func (r Recommender) recommendForExercises(date time.Time, profile UserProfile, planTemplate PlanTemplate, exercises []ExerciseConfig, history WorkoutHistory, todayReadiness int, plannedDeloadWeek bool) (SessionPlan, error) {
	if len(exercises) == 0 {
		return SessionPlan{}, errors.NewInvalidInput("exercises", "plan template has no exercises to schedule")
	}

	deloadInput := r.buildDeloadInput(date, history, todayReadiness)
	deloadDecision, err := deload.Decide(r.Config.Deload, deloadInput)
	if err != nil {
		return SessionPlan{}, fmt.Errorf("deload policy: %w", err)
	}
	if plannedDeloadWeek && !deloadDecision.IsDeload {
		deloadDecision = deload.Decision{IsDeload: true, Reason: deload.ReasonScheduledDeload}
	}

	intent := direction.IntentGeneral
	if deloadDecision.IsDeload {
		intent = direction.IntentLight
	}

	plans := make([]ExercisePlan, 0, len(exercises))
	for _, ec := range exercises {
		plan, err := r.planExercise(date, ec, history, profile, todayReadiness, deloadDecision.IsDeload, intent, planTemplate.SubstitutionCatalog)
		if err != nil {
			return SessionPlan{}, err
		}
		plans = append(plans, plan)
	}

	return SessionPlan{
		TemplateID:   planTemplate.ID,
		Exercises:    plans,
		IsDeload:     deloadDecision.IsDeload,
		DeloadReason: deloadDecision.Reason,
	}, nil
}

// AdjustDuringSession is §6's in-session entry point: given the set the
// lifter just completed and the next planned set for the same exercise, it
// returns the adjusted next set. remainingBackoffSets, when non-empty, are
// this exercise's not-yet-performed backoff sets to repropagate from a
// completed top set (§4.6); they are returned alongside the adjusted next
// set so the caller can splice both back into its SessionPlan.
func AdjustDuringSession(cfg insession.RIRConfig, completed SetResult, targetRIR float64, next SetPlan, backoffPercentage float64, remainingBackoffSets []SetPlan) (SetPlan, []SetPlan, error) {
	completedIn := insession.SetResult{
		Reps:        completed.Reps,
		Load:        completed.Load,
		RIRObserved: completed.RIRObserved,
		Completed:   completed.Completed,
		IsWarmup:    completed.IsWarmup,
		IsTopSet:    completed.IsTopSet,
	}

	if completed.IsTopSet && len(remainingBackoffSets) > 0 {
		adjustedBackoff, err := insession.AdjustTopSetBackoff(backoffPercentage, completedIn, toInsessionPlans(remainingBackoffSets))
		if err != nil {
			return SetPlan{}, nil, fmt.Errorf("adjusting backoff sets: %w", err)
		}
		return next, fromInsessionPlans(adjustedBackoff), nil
	}

	adjusted, err := insession.AdjustRIR(cfg, completedIn, targetRIR, toInsessionPlan(next))
	if err != nil {
		return SetPlan{}, nil, fmt.Errorf("adjusting RIR: %w", err)
	}
	return fromInsessionPlan(adjusted), remainingBackoffSets, nil
}

func toInsessionPlan(p SetPlan) insession.SetPlan {
	return insession.SetPlan{
		SetIndex:       p.SetIndex,
		TargetLoad:     p.TargetLoad,
		TargetReps:     p.TargetReps,
		TargetRIR:      p.TargetRIR,
		RestSeconds:    p.RestSeconds,
		IsWarmup:       p.IsWarmup,
		IsBackoffSet:   p.IsBackoffSet,
		RoundingPolicy: p.RoundingPolicy,
	}
}

func fromInsessionPlan(p insession.SetPlan) SetPlan {
	return SetPlan{
		SetIndex:       p.SetIndex,
		TargetLoad:     p.TargetLoad,
		TargetReps:     p.TargetReps,
		TargetRIR:      p.TargetRIR,
		RestSeconds:    p.RestSeconds,
		IsWarmup:       p.IsWarmup,
		IsBackoffSet:   p.IsBackoffSet,
		RoundingPolicy: p.RoundingPolicy,
	}
}

func toInsessionPlans(plans []SetPlan) []insession.SetPlan {
	out := make([]insession.SetPlan, len(plans))
	for i, p := range plans {
		out[i] = toInsessionPlan(p)
	}
	return out
}

func fromInsessionPlans(plans []insession.SetPlan) []SetPlan {
	out := make([]SetPlan, len(plans))
	for i, p := range plans {
		out[i] = fromInsessionPlan(p)
	}
	return out
}

// UpdateLiftState is §6's post-session entry point: given a completed
// session, it folds every exercise's working-set results into that
// exercise's canonical lift's LiftState and returns the updated states in
// CanonicalKeys order, per the determinism contract. States for lifts the
// caller never trained this session are left untouched and are not
// included in the returned slice.
func (r Recommender) UpdateLiftState(cfg liftstate.Config, afterSession CompletedSession, history WorkoutHistory, planTemplate PlanTemplate) ([]liftstate.LiftState, error) {
	repsLowerBoundByExercise := make(map[string]int, len(planTemplate.Exercises))
	for _, ec := range planTemplate.Exercises {
		repsLowerBoundByExercise[ec.Exercise.ID] = ec.Prescription.TargetRepsRange.Lo
	}

	byCanonical := make(map[string][]liftstate.WorkingSetResult)
	order := make([]string, 0, len(afterSession.ExerciseResults))

	for _, result := range afterSession.ExerciseResults {
		canonicalID, coefficient, err := resolveCanonical(result.ExerciseID, r.LiftRepo)
		if err != nil {
			return nil, fmt.Errorf("resolving lift family for %s: %w", result.ExerciseID, err)
		}
		if _, seen := byCanonical[canonicalID]; !seen {
			order = append(order, canonicalID)
		}
		repsLowerBound := repsLowerBoundByExercise[result.ExerciseID]
		for _, s := range result.Sets {
			if !s.Completed || s.IsWarmup || s.Reps <= 0 {
				continue
			}
			load, err := s.Load.Scale(coefficient)
			if err != nil {
				return nil, err
			}
			byCanonical[canonicalID] = append(byCanonical[canonicalID], liftstate.WorkingSetResult{
				Reps:           s.Reps,
				Load:           load,
				RIRObserved:    s.RIRObserved,
				RepsLowerBound: repsLowerBound,
			})
		}
	}

	keys := make([]string, 0, len(byCanonical))
	seen := make(map[string]bool, len(byCanonical))
	for _, id := range order {
		if !seen[id] {
			seen[id] = true
			keys = append(keys, id)
		}
	}

	updates := make(map[string]liftstate.LiftState, len(keys))
	for _, canonicalID := range keys {
		current := history.LiftStates[canonicalID]
		if current.ExerciseID == "" {
			current.ExerciseID = canonicalID
		}
		updated, err := liftstate.UpdateAfterSession(cfg, current, afterSession.Date, byCanonical[canonicalID], afterSession.WasDeload, false)
		if err != nil {
			return nil, fmt.Errorf("updating lift state for %s: %w", canonicalID, err)
		}
		updates[canonicalID] = updated
	}

	sortedKeys := liftstate.CanonicalKeys(updates)
	out := make([]liftstate.LiftState, 0, len(sortedKeys))
	for _, k := range sortedKeys {
		out = append(out, updates[k])
	}
	return out, nil
}

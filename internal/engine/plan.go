package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/kdrennan/setforge/internal/domain/deload"
	"github.com/kdrennan/setforge/internal/domain/direction"
	"github.com/kdrennan/setforge/internal/domain/lift"
	"github.com/kdrennan/setforge/internal/domain/loadunit"
	"github.com/kdrennan/setforge/internal/domain/magnitude"
	"github.com/kdrennan/setforge/internal/domain/prescription"
	"github.com/kdrennan/setforge/internal/domain/progression"
	"github.com/kdrennan/setforge/internal/domain/substitution"
)

// Config bundles every policy's tunable configuration; a host builds one
// from its own settings or uses DefaultConfig.
type Config struct {
	Direction direction.Config
	Magnitude magnitude.Config
	Deload    deload.Config
}

// DefaultConfig returns the spec's documented defaults for every subsystem.
func DefaultConfig() Config {
	return Config{
		Direction: direction.DefaultConfig(),
		Magnitude: magnitude.DefaultConfig(),
		Deload:    deload.DefaultConfig(),
	}
}

// Recommender bundles the engine's external collaborators (§6): the lift
// family repository used for canonicalization, and the calendar pinned to
// the host's time zone.
type Recommender struct {
	Config   Config
	LiftRepo lift.LiftRepository
	Calendar Calendar
}

// NewRecommender constructs a Recommender with the given collaborators.
func NewRecommender(cfg Config, liftRepo lift.LiftRepository, cal Calendar) Recommender {
	return Recommender{Config: cfg, LiftRepo: liftRepo, Calendar: cal}
}

func lastSessionSummary(history WorkoutHistory, exerciseID string, repsLowerBound int) (avgRIR *float64, metLowerBound bool, hasSession bool) {
	for i := len(history.Sessions) - 1; i >= 0; i-- {
		for _, result := range history.Sessions[i].ExerciseResults {
			if result.ExerciseID != exerciseID {
				continue
			}
			var sum float64
			var count int
			metLowerBound = true
			for _, s := range result.Sets {
				if !s.Completed || s.IsWarmup || s.Reps <= 0 {
					continue
				}
				if s.Reps < repsLowerBound {
					metLowerBound = false
				}
				if s.RIRObserved != nil {
					sum += *s.RIRObserved
					count++
				}
			}
			if count > 0 {
				avg := sum / float64(count)
				avgRIR = &avg
			}
			return avgRIR, metLowerBound, true
		}
	}
	return nil, false, false
}

func progressionHistory(history WorkoutHistory, exerciseID string, repsLow, repsHigh int) []progression.SessionRecord {
	var records []progression.SessionRecord
	var prevDate time.Time
	for _, session := range history.Sessions {
		for _, result := range session.ExerciseResults {
			if result.ExerciseID != exerciseID {
				continue
			}
			var sets []progression.SetOutcome
			for _, s := range result.Sets {
				if !s.Completed || s.IsWarmup || s.Reps <= 0 {
					continue
				}
				sets = append(sets, progression.SetOutcome{
					Load:       s.Load.Value,
					TargetLow:  repsLow,
					TargetHigh: repsHigh,
					Reps:       s.Reps,
					RIR:        s.RIRObserved,
				})
			}
			if len(sets) == 0 {
				continue
			}
			gap := 0
			if !prevDate.IsZero() {
				gap = int(session.Date.Sub(prevDate).Hours() / 24)
			}
			records = append(records, progression.SessionRecord{Sets: sets, DaysSinceLastSession: gap})
			prevDate = session.Date
		}
	}
	return records
}

// runProgression dispatches to the one of five progression policies ec
// selects. The linear and double-progression policies receive the
// magnitude-scaled increment as their own increment field; the other three
// use their configured values unchanged.
func runProgression(ec ExerciseConfig, in progression.Input, scaledIncrement float64) (progression.Output, error) {
	switch ec.ProgressionType {
	case progression.TypeLinear:
		cfg := ec.LinearConfig
		cfg.SuccessIncrement = scaledIncrement
		return progression.ApplyLinear(cfg, in)
	case progression.TypeDoubleProgression:
		cfg := ec.DoubleConfig
		cfg.LoadIncrement = scaledIncrement
		return progression.ApplyDouble(cfg, in)
	case progression.TypeTopSetBackoff:
		return progression.ApplyTopSetBackoff(ec.TopSetConfig, ec.Prescription.TargetRepsRange.Hi, in)
	case progression.TypeRIRAutoregulation:
		return progression.ApplyRIRAutoregulation(ec.RIRConfig, in)
	case progression.TypePercentageOfE1RM:
		return progression.ApplyPercentageOfE1RM(ec.PercentageConfig, in)
	default:
		return progression.Output{}, fmt.Errorf("%w: %s", progression.ErrUnknownType, ec.ProgressionType)
	}
}

// planExercise runs the full Direction -> Magnitude -> Progression pipeline
// for one exercise and materializes its ExercisePlan.
func (r Recommender) planExercise(today time.Time, ec ExerciseConfig, history WorkoutHistory, profile UserProfile, todayReadiness int, sessionIsDeload bool, intent direction.SessionIntent, substitutionCatalog []substitution.Candidate) (ExercisePlan, error) {
	canonicalID, coefficient, err := resolveCanonical(ec.Exercise.ID, r.LiftRepo)
	if err != nil {
		return ExercisePlan{}, fmt.Errorf("resolving lift family for %s: %w", ec.Exercise.ID, err)
	}

	state, hasState := history.LiftStates[canonicalID]
	targetRIR := ec.Prescription.TargetRIR

	avgRIR, metLowerBound, _ := lastSessionSummary(history, ec.Exercise.ID, ec.Prescription.TargetRepsRange.Lo)
	recent := recentReadinessScores(history.ReadinessHistory, 7)
	streak := lowReadinessStreak(history.ReadinessHistory, r.Config.Direction.ReadinessThreshold)

	signals := buildLiftSignals(r.Calendar, today, state, hasState, targetRIR, avgRIR, metLowerBound, clampReadiness(todayReadiness), recent, streak, profile, sessionIsDeload, intent)

	decision, err := direction.Decide(r.Config.Direction, signals)
	if err != nil {
		return ExercisePlan{}, fmt.Errorf("direction policy for %s: %w", ec.Exercise.ID, err)
	}

	mag, err := magnitude.Decide(r.Config.Magnitude, decision, signals, magnitude.MovementPattern(ec.Exercise.MovementPattern), ec.Prescription.Increment.Value, ec.RoundingPolicy)
	if err != nil {
		return ExercisePlan{}, fmt.Errorf("magnitude policy for %s: %w", ec.Exercise.ID, err)
	}

	lastWorking := state.LastWorkingWeight
	if lastWorking.Unit == "" {
		lastWorking = loadunit.Zero(ec.RoundingPolicy.Unit)
	}
	convertedLast, err := lastWorking.In(ec.RoundingPolicy.Unit)
	if err != nil {
		return ExercisePlan{}, err
	}
	referenceLoad, err := convertedLast.Scale(coefficient)
	if err != nil {
		return ExercisePlan{}, err
	}

	var nextLoad loadunit.Load
	var nextReps int
	var notes []string

	if mag.AdjustmentKind == magnitude.KindProgression {
		in := progression.Input{
			ExerciseID:           ec.Exercise.ID,
			LastWorkingWeight:    referenceLoad.Value,
			RollingE1RM:          state.RollingE1RM,
			FailureCount:         state.FailureCount,
			History:              progressionHistory(history, ec.Exercise.ID, ec.Prescription.TargetRepsRange.Lo, ec.Prescription.TargetRepsRange.Hi),
			RoundingPolicy:       ec.RoundingPolicy,
			HiatusAlreadyHandled: decision.Direction == direction.ResetAfterBreak,
			DaysSinceLastSession: daysSinceLastSessionFor(signals),
		}
		out, err := runProgression(ec, in, mag.AbsoluteIncrement.Value)
		if errors.Is(err, progression.ErrInsufficientHistory) {
			held, rerr := ec.RoundingPolicy.Apply(referenceLoad)
			if rerr != nil {
				return ExercisePlan{}, rerr
			}
			out = progression.Output{NextTopLoad: held, Notes: []string{"insufficient history for " + string(ec.ProgressionType) + "; holding last working weight"}}
			err = nil
		}
		if err != nil {
			return ExercisePlan{}, fmt.Errorf("progression policy for %s: %w", ec.Exercise.ID, err)
		}
		nextLoad = out.NextTopLoad
		nextReps = out.NextTargetReps
		notes = out.Notes
	} else {
		scaled, err := referenceLoad.Scale(mag.LoadMultiplier)
		if err != nil {
			return ExercisePlan{}, err
		}
		nextLoad, err = ec.RoundingPolicy.Apply(scaled)
		if err != nil {
			return ExercisePlan{}, err
		}
		nextReps = ec.Prescription.TargetRepsRange.Lo
		notes = []string{string(decision.Reason) + ": " + decision.Explanation}
	}

	if nextReps == 0 {
		nextReps = ec.Prescription.TargetRepsRange.Lo
	}
	if !ec.Prescription.TargetRepsRange.Contains(nextReps) {
		if nextReps < ec.Prescription.TargetRepsRange.Lo {
			nextReps = ec.Prescription.TargetRepsRange.Lo
		} else {
			nextReps = ec.Prescription.TargetRepsRange.Hi
		}
	}

	setCount := ec.Prescription.SetCount + mag.VolumeSetDelta
	if setCount < 1 {
		setCount = 1
	}
	workingPrescription := ec.Prescription
	workingPrescription.SetCount = setCount

	workingSets, err := prescription.BuildWorkingSets(workingPrescription, nextLoad, ec.RoundingPolicy, nextReps)
	if err != nil {
		return ExercisePlan{}, fmt.Errorf("building working sets for %s: %w", ec.Exercise.ID, err)
	}

	var allSets []prescription.SetPlan
	if len(ec.WarmupRamp) > 0 {
		warmups, err := prescription.BuildWarmups(ec.WarmupRamp, nextLoad, ec.RoundingPolicy, ec.Prescription.TargetRIR, ec.Prescription.RestSeconds)
		if err != nil {
			return ExercisePlan{}, fmt.Errorf("building warmups for %s: %w", ec.Exercise.ID, err)
		}
		allSets = append(allSets, warmups...)
	}
	allSets = append(allSets, workingSets...)
	if ec.Exercise.IsTopSetBackoff && len(workingSets) > 1 {
		firstWorking := len(allSets) - len(workingSets)
		for i := firstWorking + 1; i < len(allSets); i++ {
			allSets[i].IsBackoffSet = true
			allSets[i].TargetLoad, err = ec.RoundingPolicy.Apply(mustScale(allSets[i].TargetLoad, ec.Exercise.BackoffPercentage))
			if err != nil {
				return ExercisePlan{}, err
			}
		}
	}
	allSets = prescription.Renumber(allSets)

	var subs []substitution.Ranked
	if len(substitutionCatalog) > 0 {
		target := substitution.Candidate{
			ExerciseID:      ec.Exercise.ID,
			DisplayName:     ec.Exercise.Name,
			MovementPattern: ec.Exercise.MovementPattern,
			PrimaryMuscles:  ec.Exercise.PrimaryMuscles,
			Equipment:       ec.Exercise.Equipment,
		}
		subs = substitution.Rank(target, substitutionCatalog, substitution.DefaultWeights())
	}

	return ExercisePlan{
		Exercise:                  ec.Exercise,
		Prescription:              workingPrescription,
		Sets:                      allSets,
		Direction:                 decision.Direction,
		DirectionReason:           decision.Reason,
		RecommendedAdjustmentKind: string(mag.AdjustmentKind),
		ProgressionPolicy:         ec.ProgressionType,
		IsBackoffExercise:         ec.Exercise.IsTopSetBackoff,
		Substitutions:             subs,
		Notes:                     notes,
	}, nil
}

func mustScale(l loadunit.Load, factor float64) loadunit.Load {
	scaled, err := l.Scale(factor)
	if err != nil {
		return l
	}
	return scaled
}

func daysSinceLastSessionFor(s direction.LiftSignals) int {
	if s.DaysSinceLastExposure == nil {
		return 0
	}
	return *s.DaysSinceLastExposure
}

// buildDeloadInput assembles a deload.Input from the history snapshot.
func (r Recommender) buildDeloadInput(today time.Time, history WorkoutHistory, todayReadiness int) deload.Input {
	var lastDeload *time.Time
	for _, state := range history.LiftStates {
		if state.LastDeloadDate == nil {
			continue
		}
		if lastDeload == nil || state.LastDeloadDate.After(*lastDeload) {
			lastDeload = state.LastDeloadDate
		}
	}

	recent, baseline := volumeWindows(today, history.RecentVolumeByDate, r.Calendar)

	var trends []deload.LiftTrendSample
	for _, state := range history.LiftStates {
		trends = append(trends, deload.LiftTrendSample{
			RecentE1RMDeclines: state.Trend == "declining",
			SuccessStreak:      state.SuccessStreak,
		})
	}

	return deload.Input{
		Today:          today,
		LastDeloadDate: lastDeload,
		TodayReadiness: clampReadiness(todayReadiness),
		RecentVolume:   recent,
		BaselineVolume: baseline,
		TrackedLifts:   trends,
	}
}

func volumeWindows(today time.Time, byDate map[string]float64, cal Calendar) (recent, baseline float64) {
	var recentSum, baselineSum float64
	for i := 0; i < 7; i++ {
		day := cal.AddDays(today, -i)
		recentSum += byDate[day.Format("2006-01-02")]
	}
	for i := 0; i < 28; i++ {
		day := cal.AddDays(today, -i)
		baselineSum += byDate[day.Format("2006-01-02")]
	}
	return recentSum, baselineSum / 4
}

package engine

import (
	"time"

	"github.com/kdrennan/setforge/internal/domain/deload"
	"github.com/kdrennan/setforge/internal/domain/direction"
	"github.com/kdrennan/setforge/internal/domain/liftstate"
	"github.com/kdrennan/setforge/internal/domain/loadunit"
	"github.com/kdrennan/setforge/internal/domain/prescription"
	"github.com/kdrennan/setforge/internal/domain/progression"
	"github.com/kdrennan/setforge/internal/domain/substitution"
)

// Exercise is the minimal catalog entry the engine needs from the external
// exercise catalog collaborator (§6): identity and the movement pattern
// that drives the Magnitude Policy's increment table.
type Exercise struct {
	ID              string
	Name            string
	MovementPattern string
	PrimaryMuscles  []string
	Equipment       []string
	IsTopSetBackoff bool
	// BackoffPercentage is only meaningful when IsTopSetBackoff is true.
	BackoffPercentage float64
}

// ExerciseConfig is the per-exercise configuration a PlanTemplate carries:
// which progression policy drives this exercise and that policy's tuned
// parameters, plus the base SetPrescription.
type ExerciseConfig struct {
	Exercise        Exercise
	Prescription    prescription.SetPrescription
	ProgressionType progression.Type

	LinearConfig     progression.LinearConfig
	DoubleConfig     progression.DoubleConfig
	TopSetConfig     progression.TopSetBackoffConfig
	RIRConfig        progression.RIRConfig
	PercentageConfig progression.PercentageConfig

	RoundingPolicy loadunit.RoundingPolicy
	WarmupRamp     []prescription.WarmupRamp
}

// PlanTemplate is the ordered list of exercises a session is built from.
// SubstitutionCatalog, when non-empty, is the pool planExercise ranks
// against each exercise to populate ExercisePlan.Substitutions; a nil
// catalog simply skips substitution ranking for that template.
type PlanTemplate struct {
	ID                  string
	Exercises           []ExerciseConfig
	SubstitutionCatalog []substitution.Candidate
}

// UserProfile carries the lifter attributes the Direction/Magnitude
// policies need that are not derived from history.
type UserProfile struct {
	Experience direction.ExperienceLevel
	Sex        direction.BiologicalSex
	BodyWeight float64
	Unit       loadunit.Unit
}

// ReadinessSample is one day's pre-computed readiness score, already
// clamped to [0,100] by the host per §6.
type ReadinessSample struct {
	Date  time.Time
	Score int
}

// ExerciseSessionResult is one exercise's full set of SetResults from a
// completed session.
type ExerciseSessionResult struct {
	ExerciseID string
	Sets       []SetResult
}

// SetResult is one performed set (§3).
type SetResult struct {
	Reps        int
	Load        loadunit.Load
	RIRObserved *float64
	Completed   bool
	IsWarmup    bool
	IsTopSet    bool
}

// CompletedSession is the record a host hands to updateLiftState after a
// session has been performed.
type CompletedSession struct {
	Date              time.Time
	TemplateID        string
	ExerciseResults   []ExerciseSessionResult
	WasDeload         bool
	AdjustmentKind    string
	ReadinessScore    int
}

// WorkoutHistory is the engine's only state input (§3): everything
// recommendSession and updateLiftState need about a user's past.
type WorkoutHistory struct {
	Sessions          []CompletedSession
	LiftStates        map[string]liftstate.LiftState
	ReadinessHistory  []ReadinessSample
	RecentVolumeByDate map[string]float64
}

// NewWorkoutHistory returns an empty, ready-to-use WorkoutHistory.
func NewWorkoutHistory() WorkoutHistory {
	return WorkoutHistory{
		LiftStates:         make(map[string]liftstate.LiftState),
		RecentVolumeByDate: make(map[string]float64),
	}
}

// SetPlan re-exports prescription.SetPlan as the engine's vocabulary.
type SetPlan = prescription.SetPlan

// ExercisePlan is one exercise's materialized plan for a session (§3).
type ExercisePlan struct {
	Exercise                  Exercise
	Prescription              prescription.SetPrescription
	Sets                      []SetPlan
	Direction                 direction.Direction
	DirectionReason           direction.Reason
	RecommendedAdjustmentKind string
	ProgressionPolicy         progression.Type
	IsBackoffExercise         bool
	Substitutions             []substitution.Ranked
	Notes                     []string
}

// SessionPlan is the engine's primary output (§3).
type SessionPlan struct {
	TemplateID   string
	Exercises    []ExercisePlan
	IsDeload     bool
	DeloadReason deload.Reason
}

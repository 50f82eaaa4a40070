// Package dto is the HOST boundary between an external JSON request and
// the CORE's internal/engine vocabulary. SessionRequest is validated with
// go-playground/validator before any of it is translated into engine
// types, so malformed input is rejected before it ever reaches the
// deterministic pipeline.
package dto

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/kdrennan/setforge/internal/domain/direction"
	"github.com/kdrennan/setforge/internal/domain/loadunit"
	"github.com/kdrennan/setforge/internal/domain/prescription"
	"github.com/kdrennan/setforge/internal/domain/progression"
	"github.com/kdrennan/setforge/internal/engine"
)

var validate = validator.New()

// UserProfile is the JSON shape of engine.UserProfile.
type UserProfile struct {
	Experience string  `json:"experience" validate:"required,oneof=beginner intermediate advanced elite"`
	Sex        string  `json:"sex" validate:"required,oneof=male female"`
	BodyWeight float64 `json:"bodyWeight" validate:"gte=0"`
	Unit       string  `json:"unit" validate:"required,oneof=pounds kilograms"`
}

// LinearExercise is the JSON shape of one ExerciseConfig driven by the
// linear progression policy — the only progression type this boundary
// layer currently exposes to external requests (the other four are
// exercised directly by internal/domain/progression's own tests; see
// DESIGN.md).
type LinearExercise struct {
	ID                   string  `json:"id" validate:"required"`
	Name                 string  `json:"name" validate:"required"`
	MovementPattern      string  `json:"movementPattern" validate:"required"`
	SetCount             int     `json:"setCount" validate:"required,min=1"`
	RepsLow              int     `json:"repsLow" validate:"required,min=1"`
	RepsHigh             int     `json:"repsHigh" validate:"required,gtefield=RepsLow"`
	TargetRIR            float64 `json:"targetRIR" validate:"gte=0"`
	RestSeconds          int     `json:"restSeconds" validate:"gte=0"`
	IncrementValue       float64 `json:"incrementValue" validate:"gt=0"`
	SuccessIncrement     float64 `json:"successIncrement" validate:"gt=0"`
	FailuresBeforeDeload int     `json:"failuresBeforeDeload" validate:"required,min=1"`
	DeloadPercentage     float64 `json:"deloadPercentage" validate:"gt=0,lt=1"`
	RoundingIncrement    float64 `json:"roundingIncrement" validate:"gt=0"`
}

// PlanTemplate is the JSON shape of engine.PlanTemplate.
type PlanTemplate struct {
	ID        string           `json:"id" validate:"required"`
	Exercises []LinearExercise `json:"exercises" validate:"required,min=1,dive"`
}

// ReadinessSample is the JSON shape of engine.ReadinessSample.
type ReadinessSample struct {
	Date  string `json:"date" validate:"required"`
	Score int    `json:"score" validate:"gte=0,lte=100"`
}

// SessionRequest is the full external shape cmd/planner reads from a JSON
// fixture and hands to internal/engine.Recommender.RecommendSession.
type SessionRequest struct {
	Date              string            `json:"date" validate:"required"`
	Profile           UserProfile       `json:"userProfile" validate:"required"`
	Plan              PlanTemplate      `json:"plan" validate:"required"`
	TodayReadiness    int               `json:"todayReadiness" validate:"gte=0,lte=100"`
	PlannedDeloadWeek bool              `json:"plannedDeloadWeek"`
	ReadinessHistory  []ReadinessSample `json:"readinessHistory"`
}

// Validate runs struct-tag validation over the whole request.
func (r SessionRequest) Validate() error {
	return validate.Struct(r)
}

// ToEngine translates a validated SessionRequest into the engine's own
// vocabulary. Callers must call Validate first; ToEngine does not
// re-validate.
func (r SessionRequest) ToEngine() (time.Time, engine.UserProfile, engine.PlanTemplate, engine.WorkoutHistory, error) {
	date, err := time.Parse("2006-01-02", r.Date)
	if err != nil {
		return time.Time{}, engine.UserProfile{}, engine.PlanTemplate{}, engine.WorkoutHistory{}, fmt.Errorf("parsing date: %w", err)
	}

	unit := loadunit.Unit(r.Profile.Unit)
	profile := engine.UserProfile{
		Experience: direction.ExperienceLevel(r.Profile.Experience),
		Sex:        direction.BiologicalSex(r.Profile.Sex),
		BodyWeight: r.Profile.BodyWeight,
		Unit:       unit,
	}

	exercises := make([]engine.ExerciseConfig, 0, len(r.Plan.Exercises))
	for _, e := range r.Plan.Exercises {
		policy, err := loadunit.NewRoundingPolicy(e.RoundingIncrement, unit, loadunit.RoundNearest)
		if err != nil {
			return time.Time{}, engine.UserProfile{}, engine.PlanTemplate{}, engine.WorkoutHistory{}, fmt.Errorf("rounding policy for %s: %w", e.ID, err)
		}
		exercises = append(exercises, engine.ExerciseConfig{
			Exercise: engine.Exercise{ID: e.ID, Name: e.Name, MovementPattern: e.MovementPattern},
			Prescription: prescription.SetPrescription{
				SetCount:        e.SetCount,
				TargetRepsRange: prescription.RepsRange{Lo: e.RepsLow, Hi: e.RepsHigh},
				TargetRIR:       e.TargetRIR,
				RestSeconds:     e.RestSeconds,
				LoadStrategy:    prescription.LoadStrategyAbsolute,
				Increment:       loadunit.Load{Value: e.IncrementValue, Unit: unit},
			},
			ProgressionType: progression.TypeLinear,
			LinearConfig: progression.LinearConfig{
				SuccessIncrement:     e.SuccessIncrement,
				FailuresBeforeDeload: e.FailuresBeforeDeload,
				DeloadPercentage:     e.DeloadPercentage,
			},
			RoundingPolicy: policy,
		})
	}

	planTemplate := engine.PlanTemplate{ID: r.Plan.ID, Exercises: exercises}

	history := engine.NewWorkoutHistory()
	for _, s := range r.ReadinessHistory {
		sampleDate, err := time.Parse("2006-01-02", s.Date)
		if err != nil {
			return time.Time{}, engine.UserProfile{}, engine.PlanTemplate{}, engine.WorkoutHistory{}, fmt.Errorf("parsing readiness date: %w", err)
		}
		history.ReadinessHistory = append(history.ReadinessHistory, engine.ReadinessSample{Date: sampleDate, Score: s.Score})
	}

	return date, profile, planTemplate, history, nil
}

package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRequest() SessionRequest {
	return SessionRequest{
		Date: "2026-01-05",
		Profile: UserProfile{
			Experience: "intermediate",
			Sex:        "male",
			Unit:       "pounds",
		},
		Plan: PlanTemplate{
			ID: "day-a",
			Exercises: []LinearExercise{
				{
					ID:                   "squat",
					Name:                 "Back Squat",
					MovementPattern:      "squat",
					SetCount:             3,
					RepsLow:              5,
					RepsHigh:             5,
					TargetRIR:            2,
					RestSeconds:          180,
					IncrementValue:       10,
					SuccessIncrement:     10,
					FailuresBeforeDeload: 2,
					DeloadPercentage:     0.1,
					RoundingIncrement:    5,
				},
			},
		},
		TodayReadiness: 80,
	}
}

func TestValidateAcceptsWellFormedRequest(t *testing.T) {
	require.NoError(t, validRequest().Validate())
}

func TestValidateRejectsMissingExercises(t *testing.T) {
	req := validRequest()
	req.Plan.Exercises = nil
	assert.Error(t, req.Validate())
}

func TestValidateRejectsBadExperience(t *testing.T) {
	req := validRequest()
	req.Profile.Experience = "legendary"
	assert.Error(t, req.Validate())
}

func TestValidateRejectsOutOfRangeReadiness(t *testing.T) {
	req := validRequest()
	req.TodayReadiness = 150
	assert.Error(t, req.Validate())
}

func TestToEngineTranslatesWellFormedRequest(t *testing.T) {
	req := validRequest()
	require.NoError(t, req.Validate())

	date, profile, plan, history, err := req.ToEngine()
	require.NoError(t, err)

	assert.Equal(t, 2026, date.Year())
	assert.Equal(t, "intermediate", string(profile.Experience))
	require.Len(t, plan.Exercises, 1)
	assert.Equal(t, "squat", plan.Exercises[0].Exercise.ID)
	assert.NotNil(t, history.LiftStates)
}

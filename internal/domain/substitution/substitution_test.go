package substitution

import "testing"

func TestRankPrefersSameMovementPattern(t *testing.T) {
	target := Candidate{ExerciseID: "back-squat", MovementPattern: "squat", PrimaryMuscles: []string{"quads", "glutes"}}
	pool := []Candidate{
		{ExerciseID: "front-squat", DisplayName: "front squat", MovementPattern: "squat", PrimaryMuscles: []string{"quads"}},
		{ExerciseID: "deadlift", DisplayName: "deadlift", MovementPattern: "hip-hinge", PrimaryMuscles: []string{"glutes", "hamstrings"}},
	}

	ranked := Rank(target, pool, DefaultWeights())
	if len(ranked) != 2 {
		t.Fatalf("expected 2 ranked candidates, got %d", len(ranked))
	}
	if ranked[0].ExerciseID != "front-squat" {
		t.Errorf("expected front-squat ranked first, got %s", ranked[0].ExerciseID)
	}
	if ranked[0].DisplayName != "Front Squat" {
		t.Errorf("expected title-cased display name, got %q", ranked[0].DisplayName)
	}
}

func TestRankExcludesTargetFromPool(t *testing.T) {
	target := Candidate{ExerciseID: "back-squat", MovementPattern: "squat"}
	pool := []Candidate{target, {ExerciseID: "front-squat", MovementPattern: "squat"}}

	ranked := Rank(target, pool, DefaultWeights())
	if len(ranked) != 1 {
		t.Fatalf("expected the target excluded from its own ranking, got %d results", len(ranked))
	}
}

func TestRankIsDeterministicOnTies(t *testing.T) {
	target := Candidate{ExerciseID: "back-squat", MovementPattern: "squat"}
	pool := []Candidate{
		{ExerciseID: "zercher-squat", MovementPattern: "squat"},
		{ExerciseID: "front-squat", MovementPattern: "squat"},
	}

	ranked := Rank(target, pool, DefaultWeights())
	if ranked[0].ExerciseID != "front-squat" || ranked[1].ExerciseID != "zercher-squat" {
		t.Errorf("expected alphabetical tiebreak, got %s then %s", ranked[0].ExerciseID, ranked[1].ExerciseID)
	}
}

func TestOverlapScoreEmptySets(t *testing.T) {
	if got := overlapScore(nil, []string{"quads"}); got != 0 {
		t.Errorf("expected 0 overlap with an empty set, got %v", got)
	}
}

package lift

import "testing"

type familyRepo struct {
	lifts map[string]*Lift
}

func (r *familyRepo) GetByID(id string) (*Lift, error) {
	return r.lifts[id], nil
}

func (r *familyRepo) SlugExists(slug string, excludeID *string) (bool, error) {
	return false, nil
}

func TestResolveFamilyNoParentIsCanonical(t *testing.T) {
	repo := &familyRepo{lifts: map[string]*Lift{
		"squat": {ID: "squat"},
	}}
	canonical, coef, err := ResolveFamily("squat", repo)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if canonical != "squat" || coef != 1.0 {
		t.Errorf("got (%s, %v)", canonical, coef)
	}
}

func TestResolveFamilyAppliesCoefficientChain(t *testing.T) {
	squatID := "squat"
	repo := &familyRepo{lifts: map[string]*Lift{
		"squat":        {ID: "squat"},
		"pause-squat":  {ID: "pause-squat", ParentLiftID: &squatID, Coefficient: 0.9},
	}}
	canonical, coef, err := ResolveFamily("pause-squat", repo)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if canonical != "squat" || coef != 0.9 {
		t.Errorf("got (%s, %v)", canonical, coef)
	}
}

func TestResolveFamilyDefaultsUnsetCoefficientToOne(t *testing.T) {
	squatID := "squat"
	repo := &familyRepo{lifts: map[string]*Lift{
		"squat":          {ID: "squat"},
		"high-bar-squat": {ID: "high-bar-squat", ParentLiftID: &squatID},
	}}
	canonical, coef, err := ResolveFamily("high-bar-squat", repo)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if canonical != "squat" || coef != 1.0 {
		t.Errorf("got (%s, %v)", canonical, coef)
	}
}

func TestResolveFamilyDetectsCycle(t *testing.T) {
	aID, bID := "a", "b"
	repo := &familyRepo{lifts: map[string]*Lift{
		"a": {ID: "a", ParentLiftID: &bID},
		"b": {ID: "b", ParentLiftID: &aID},
	}}
	_, _, err := ResolveFamily("a", repo)
	if err == nil {
		t.Fatal("expected cycle detection error")
	}
}

func TestResolveFamilyRejectsOutOfRangeCoefficient(t *testing.T) {
	squatID := "squat"
	repo := &familyRepo{lifts: map[string]*Lift{
		"squat": {ID: "squat"},
		"weird": {ID: "weird", ParentLiftID: &squatID, Coefficient: 2.0},
	}}
	_, _, err := ResolveFamily("weird", repo)
	if err == nil {
		t.Fatal("expected out-of-range coefficient error")
	}
}

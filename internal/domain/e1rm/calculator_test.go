package e1rm

import (
	"errors"
	"math"
	"testing"
)

func TestBrzycki(t *testing.T) {
	tests := []struct {
		name     string
		load     float64
		reps     int
		expected float64
		wantErr  error
	}{
		{"single rep equals load", 400, 1, 400 * 36.0 / 36.0, nil},
		{"scenario S4 top set", 225, 8, 225 * 36.0 / 29.0, nil},
		{"reps clamped above 30", 200, 40, 200 * 36.0 / 7.0, nil},
		{"reps clamped below 1", 200, 0, 200 * 36.0 / 36.0, nil},
		{"zero load", 0, 5, 0, ErrWeightMustBePositive},
		{"negative load", -10, 5, 0, ErrWeightMustBePositive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Brzycki(tt.load, tt.reps)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(got-tt.expected) > 1e-6 {
				t.Errorf("expected %.6f, got %.6f", tt.expected, got)
			}
		})
	}
}

func TestDailyMaxMatchesScenarioS4(t *testing.T) {
	// 225 lb x 8 reps -> dailyMax = 225 * 36/(37-8) = 279.31...
	got, err := DailyMax(225, 8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(got-279.3103448275862) > 1e-6 {
		t.Errorf("expected ~279.31, got %.6f", got)
	}
}

func TestSessionE1RM(t *testing.T) {
	sets := []WorkingSet{
		{Load: 225, Reps: 8},
		{Load: 245, Reps: 3},
		{Load: 200, Reps: 10},
	}
	got, err := SessionE1RM(sets)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var want float64
	for _, s := range sets {
		e, _ := Brzycki(s.Load, s.Reps)
		if e > want {
			want = e
		}
	}
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("expected session e1rm to equal max working-set estimate, got %.6f want %.6f", got, want)
	}
}

func TestSessionE1RMEmpty(t *testing.T) {
	_, err := SessionE1RM(nil)
	if err == nil {
		t.Error("expected error for empty set list")
	}
}

func TestSessionE1RMPropagatesSetError(t *testing.T) {
	sets := []WorkingSet{{Load: -5, Reps: 5}}
	_, err := SessionE1RM(sets)
	if !errors.Is(err, ErrWeightMustBePositive) {
		t.Errorf("expected ErrWeightMustBePositive, got %v", err)
	}
}

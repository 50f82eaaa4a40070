package magnitude

import (
	"math"
	"testing"

	"github.com/kdrennan/setforge/internal/domain/direction"
	"github.com/kdrennan/setforge/internal/domain/loadunit"
)

func policy() loadunit.RoundingPolicy {
	return loadunit.RoundingPolicy{Increment: 5, Unit: loadunit.Pounds, Mode: loadunit.RoundNearest}
}

func TestTierBoundaries(t *testing.T) {
	cases := map[int]float64{7: 1.0, 8: 0.95, 13: 0.95, 14: 0.90, 27: 0.90, 28: 0.85, 55: 0.85, 56: 0.80, 83: 0.80, 84: 0.75}
	for days, want := range cases {
		if got := Tier(days); math.Abs(got-want) > 1e-9 {
			t.Errorf("Tier(%d) = %v, want %v", days, got, want)
		}
	}
}

func TestDecideIncreaseScalesAndCaps(t *testing.T) {
	dec := direction.DirectionDecision{Direction: direction.Increase}
	s := direction.LiftSignals{Experience: direction.Intermediate}
	m, err := Decide(DefaultConfig(), dec, s, Squat, 10, policy())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// base 10 * 0.8 scale = 8, under the 10lb cap, rounds to nearest 5 -> 10.
	if m.AbsoluteIncrement.Value != 10 {
		t.Errorf("expected scaled increment 10, got %v", m.AbsoluteIncrement.Value)
	}
	if m.AdjustmentKind != KindProgression {
		t.Errorf("got kind %v", m.AdjustmentKind)
	}
}

func TestDecideIncreaseRespectsCapForSmallIsolation(t *testing.T) {
	dec := direction.DirectionDecision{Direction: direction.Increase}
	s := direction.LiftSignals{Experience: direction.Beginner}
	// A 2.5 lb step keeps the 2.5 lb cap representable after quantization.
	fine := loadunit.RoundingPolicy{Increment: 2.5, Unit: loadunit.Pounds, Mode: loadunit.RoundNearest}
	m, err := Decide(DefaultConfig(), dec, s, ShoulderAbduction, 10, fine)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.AbsoluteIncrement.Value > 2.5 {
		t.Errorf("expected cap at 2.5, got %v", m.AbsoluteIncrement.Value)
	}
}

func TestDecideHoldAcuteReadinessCutsOneSet(t *testing.T) {
	dec := direction.DirectionDecision{Direction: direction.Hold, Reason: direction.ReasonAcuteReadiness}
	m, err := Decide(DefaultConfig(), dec, direction.LiftSignals{}, Squat, 10, policy())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.AdjustmentKind != KindReadinessCut || m.VolumeSetDelta != -1 {
		t.Errorf("got %+v", m)
	}
}

func TestDecideDecreaseSlightlyScenarioS3(t *testing.T) {
	dec := direction.DirectionDecision{Direction: direction.DecreaseSlightly}
	s := direction.LiftSignals{Experience: direction.Intermediate}
	m, err := Decide(DefaultConfig(), dec, s, Squat, 10, policy())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(m.LoadMultiplier-0.97) > 1e-9 {
		t.Errorf("expected multiplier 0.97, got %v", m.LoadMultiplier)
	}
	load, _ := loadunit.NewLoad(315, loadunit.Pounds)
	scaled, _ := load.Scale(m.LoadMultiplier)
	rounded, _ := policy().Apply(scaled)
	if rounded.Value != 305 {
		t.Errorf("expected 305, got %v", rounded.Value)
	}
}

func TestDecideDeload(t *testing.T) {
	dec := direction.DirectionDecision{Direction: direction.Deload}
	m, err := Decide(DefaultConfig(), dec, direction.LiftSignals{}, Squat, 10, policy())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(m.LoadMultiplier-0.90) > 1e-9 || m.VolumeSetDelta != -1 {
		t.Errorf("got %+v", m)
	}
}

func TestDecideResetAfterBreakScenarioS2(t *testing.T) {
	days := 21
	dec := direction.DirectionDecision{Direction: direction.ResetAfterBreak}
	s := direction.LiftSignals{DaysSinceLastExposure: &days}
	m, err := Decide(DefaultConfig(), dec, s, Squat, 10, policy())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(m.LoadMultiplier-0.90) > 1e-9 {
		t.Errorf("expected 0.90, got %v", m.LoadMultiplier)
	}
	load, _ := loadunit.NewLoad(315, loadunit.Pounds)
	scaled, _ := load.Scale(m.LoadMultiplier)
	rounded, _ := policy().Apply(scaled)
	if rounded.Value != 285 {
		t.Errorf("expected 285, got %v", rounded.Value)
	}
}

func TestDecideResetAfterBreakRequiresKnownGap(t *testing.T) {
	dec := direction.DirectionDecision{Direction: direction.ResetAfterBreak}
	_, err := Decide(DefaultConfig(), dec, direction.LiftSignals{}, Squat, 10, policy())
	if err == nil {
		t.Fatal("expected error for missing exposure gap")
	}
}

package direction

import "testing"

func ptr(f float64) *float64 { return &f }
func iptr(i int) *int        { return &i }

func baseSignals() LiftSignals {
	return LiftSignals{
		DaysSinceLastExposure:   iptr(3),
		SuccessfulSessionsCount: 5,
		HasLastWorkingWeight:    true,
		TargetRIR:               2,
		TodayReadiness:          80,
		Experience:              Intermediate,
		SessionIntent:           IntentHeavy,
	}
}

func TestDecideSessionDeloadOverridesEverything(t *testing.T) {
	s := baseSignals()
	s.SessionIsDeload = true
	s.FailStreak = 5
	out, err := Decide(DefaultConfig(), s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Direction != Deload || out.Reason != ReasonSessionDeload {
		t.Errorf("got %+v", out)
	}
}

func TestDecideExtendedBreak(t *testing.T) {
	s := baseSignals()
	s.DaysSinceLastExposure = iptr(21)
	out, err := Decide(DefaultConfig(), s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Direction != ResetAfterBreak || out.Reason != ReasonExtendedBreak {
		t.Errorf("got %+v", out)
	}
}

func TestDecideTrainingGap(t *testing.T) {
	s := baseSignals()
	s.DaysSinceLastExposure = iptr(10)
	out, _ := Decide(DefaultConfig(), s)
	if out.Direction != ResetAfterBreak || out.Reason != ReasonTrainingGap {
		t.Errorf("got %+v", out)
	}
}

func TestDecideColdStart(t *testing.T) {
	s := baseSignals()
	s.DaysSinceLastExposure = nil
	out, _ := Decide(DefaultConfig(), s)
	if out.Direction != Hold || out.Reason != ReasonInsufficientData {
		t.Errorf("got %+v", out)
	}
}

func TestDecideRepeatedFailuresDeloads(t *testing.T) {
	s := baseSignals()
	s.FailStreak = 2
	out, _ := Decide(DefaultConfig(), s)
	if out.Direction != Deload || out.Reason != ReasonRepeatedFailures {
		t.Errorf("got %+v", out)
	}
}

func TestDecideSingleFailureIntermediateHeavy(t *testing.T) {
	s := baseSignals()
	s.FailStreak = 1
	out, _ := Decide(DefaultConfig(), s)
	if out.Direction != DecreaseSlightly || out.Reason != ReasonMinorFatigueSignal {
		t.Errorf("got %+v", out)
	}
}

func TestDecideGrinderBeginnerHolds(t *testing.T) {
	s := baseSignals()
	s.Experience = Beginner
	s.LastSessionAvgRIR = ptr(0.5)
	out, _ := Decide(DefaultConfig(), s)
	if out.Direction != Hold || out.Reason != ReasonGrinderSuccess {
		t.Errorf("got %+v", out)
	}
}

func TestDecideGrinderIntermediateHeavyDecreases(t *testing.T) {
	s := baseSignals()
	s.LastSessionAvgRIR = ptr(0.5)
	out, _ := Decide(DefaultConfig(), s)
	if out.Direction != DecreaseSlightly || out.Reason != ReasonMinorFatigueSignal {
		t.Errorf("got %+v", out)
	}
}

func TestDecideGrinderIntermediateLightSingleHolds(t *testing.T) {
	s := baseSignals()
	s.SessionIntent = IntentLight
	s.HighRpeStreak = 1
	s.LastSessionAvgRIR = ptr(0.5)
	out, _ := Decide(DefaultConfig(), s)
	if out.Direction != Hold || out.Reason != ReasonGrinderSuccess {
		t.Errorf("got %+v", out)
	}
}

func TestDecideAcuteLowReadiness(t *testing.T) {
	s := baseSignals()
	s.TodayReadiness = 35
	out, _ := Decide(DefaultConfig(), s)
	if out.Direction != Hold || out.Reason != ReasonAcuteReadiness {
		t.Errorf("got %+v", out)
	}
}

func TestDecideDecliningTrendNoStreak(t *testing.T) {
	s := baseSignals()
	s.Trend = TrendDeclining
	s.LastSessionAvgRIR = ptr(2)
	s.LastSessionMetLowerBound = true
	out, _ := Decide(DefaultConfig(), s)
	if out.Direction != Hold || out.Reason != ReasonTrendCaution {
		t.Errorf("got %+v", out)
	}
}

func TestDecideNormalProgressionIncreases(t *testing.T) {
	s := baseSignals()
	s.LastSessionAvgRIR = ptr(2)
	s.LastSessionMetLowerBound = true
	out, _ := Decide(DefaultConfig(), s)
	if out.Direction != Increase || out.Reason != ReasonMetTarget {
		t.Errorf("got %+v", out)
	}
}

func TestDecideDefaultHold(t *testing.T) {
	s := baseSignals()
	s.LastSessionAvgRIR = ptr(2)
	s.LastSessionMetLowerBound = false
	out, _ := Decide(DefaultConfig(), s)
	if out.Direction != Hold || out.Reason != ReasonMaintainLoad {
		t.Errorf("got %+v", out)
	}
}

func TestDecideInvalidConfig(t *testing.T) {
	cfg := Config{ExtendedBreakDays: 5, TrainingGapDays: 8, FailureStreakThreshold: 2}
	_, err := Decide(cfg, baseSignals())
	if err == nil {
		t.Fatal("expected error for inverted break thresholds")
	}
}

func TestExperienceAtLeast(t *testing.T) {
	if !Advanced.AtLeast(Intermediate) {
		t.Error("advanced should be at least intermediate")
	}
	if Beginner.AtLeast(Intermediate) {
		t.Error("beginner should not be at least intermediate")
	}
}

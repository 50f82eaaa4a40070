package loggedset

import "testing"

func TestIsWorkingSet(t *testing.T) {
	cases := []struct {
		name string
		set  LoggedSet
		want bool
	}{
		{"completed working set", LoggedSet{Completed: true, RepsPerformed: 5}, true},
		{"warmup excluded", LoggedSet{Completed: true, RepsPerformed: 5, IsWarmup: true}, false},
		{"not completed", LoggedSet{Completed: false, RepsPerformed: 5}, false},
		{"zero reps", LoggedSet{Completed: true, RepsPerformed: 0}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.set.IsWorkingSet(); got != tc.want {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestImpliedRIR(t *testing.T) {
	rpe := 8.5
	set := LoggedSet{RPE: &rpe}
	rir := set.ImpliedRIR()
	if rir == nil || *rir != 1.5 {
		t.Errorf("got %v, want 1.5", rir)
	}

	noRPE := LoggedSet{}
	if noRPE.ImpliedRIR() != nil {
		t.Error("expected nil RIR when RPE absent")
	}
}

func TestIsGrinder(t *testing.T) {
	rpe := 8.5
	set := LoggedSet{RPE: &rpe}
	if !set.IsGrinder(8.5) {
		t.Error("expected grinder at threshold")
	}
	if set.IsGrinder(9.0) {
		t.Error("expected not grinder below threshold")
	}
}

package loggedset

// impliedRPEFloor is the lowest RPE this package's RPE scale records; RIR is
// derived as 10 - RPE, so an RPE of 5.0 implies 5 reps in reserve.
const impliedRPEFloor = 5.0

// IsWorkingSet reports whether l counts toward e1RM, streak, and
// lastWorkingWeight aggregation: completed, not a warmup, with reps > 0.
func (l *LoggedSet) IsWorkingSet() bool {
	return l.Completed && !l.IsWarmup && l.RepsPerformed > 0
}

// ImpliedRIR converts the recorded RPE into reps-in-reserve (RIR = 10 -
// RPE), returning nil when no RPE was recorded.
func (l *LoggedSet) ImpliedRIR() *float64 {
	if l.RPE == nil {
		return nil
	}
	rir := 10.0 - *l.RPE
	return &rir
}

// IsGrinder reports whether this set's recorded RPE is at or above the
// grinder RPE threshold. A set with no recorded RPE is never a grinder;
// reps and completion are not considered.
func (l *LoggedSet) IsGrinder(grinderRPE float64) bool {
	if l.RPE == nil {
		return false
	}
	return *l.RPE >= grinderRPE
}

// Package engine wires the six core subsystems (Direction, Magnitude,
// Progression, Deload, In-Session Adjustment, State Update) into the four
// public entry points a host calls: recommendSession,
// recommendSessionForTemplate, adjustDuringSession, and updateLiftState.
// The engine itself holds no state — every call takes a WorkoutHistory
// snapshot and returns new values; nothing here reads a clock.
package engine

import "time"

// Calendar supplies the only notion of "now" the engine is allowed to
// consume, and only ever via the date a caller passes in — the engine
// itself never calls time.Now(). A host pins this to its own time zone.
type Calendar interface {
	Weekday(t time.Time) time.Weekday
	AddDays(t time.Time, days int) time.Time
	StartOfDay(t time.Time) time.Time
}

// FixedZoneCalendar is a Calendar pinned to a single *time.Location, per
// §6's requirement that the caller — not the core — own time-zone policy.
type FixedZoneCalendar struct {
	Location *time.Location
}

// NewFixedZoneCalendar constructs a FixedZoneCalendar; a nil loc pins to UTC.
func NewFixedZoneCalendar(loc *time.Location) FixedZoneCalendar {
	if loc == nil {
		loc = time.UTC
	}
	return FixedZoneCalendar{Location: loc}
}

func (c FixedZoneCalendar) Weekday(t time.Time) time.Weekday {
	return t.In(c.Location).Weekday()
}

func (c FixedZoneCalendar) AddDays(t time.Time, days int) time.Time {
	return t.In(c.Location).AddDate(0, 0, days)
}

func (c FixedZoneCalendar) StartOfDay(t time.Time) time.Time {
	local := t.In(c.Location)
	y, m, d := local.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, c.Location)
}

// DaysBetween returns the whole-day gap between from and to (to - from),
// using cal's time zone for the day boundary so exposure-gap arithmetic
// is stable regardless of the time-of-day components of either timestamp.
func DaysBetween(cal Calendar, from, to time.Time) int {
	a := cal.StartOfDay(from)
	b := cal.StartOfDay(to)
	return int(b.Sub(a).Hours() / 24)
}

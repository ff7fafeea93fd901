package grading

import "time"

// WithinWindow reports whether now falls inside the inclusive submission
// window [earliest, effectiveDeadline].
func WithinWindow(now, earliest, effectiveDeadline time.Time) bool {
	return !now.Before(earliest) && !now.After(effectiveDeadline)
}

// ComputeIsLate reports whether a submission at now falls in the grace window
// after the regular deadline. A portfolio without a late deadline never
// produces late submissions.
func ComputeIsLate(now, deadline time.Time, lateDeadline *time.Time) bool {
	return lateDeadline != nil && now.After(deadline)
}

// StartOfDay truncates an instant to midnight in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

// EndOfDay returns the last representable millisecond of the instant's day in
// loc. Deadlines are normalized this way once, when the portfolio is created.
func EndOfDay(t time.Time, loc *time.Location) time.Time {
	return StartOfDay(t, loc).AddDate(0, 0, 1).Add(-time.Millisecond)
}

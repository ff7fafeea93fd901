package grading

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWithinWindow(t *testing.T) {
	earliest := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	deadline := time.Date(2024, 1, 8, 23, 59, 59, 0, time.UTC)

	require.True(t, WithinWindow(earliest, earliest, deadline), "window start is inclusive")
	require.True(t, WithinWindow(deadline, earliest, deadline), "window end is inclusive")
	require.True(t, WithinWindow(earliest.AddDate(0, 0, 3), earliest, deadline))
	require.False(t, WithinWindow(earliest.Add(-time.Second), earliest, deadline))
	require.False(t, WithinWindow(deadline.Add(time.Second), earliest, deadline))
}

func TestComputeIsLate(t *testing.T) {
	deadline := time.Date(2024, 1, 8, 23, 59, 59, 0, time.UTC)
	lateDeadline := deadline.AddDate(0, 0, 7)

	require.True(t, ComputeIsLate(deadline.AddDate(0, 0, 1), deadline, &lateDeadline))
	require.False(t, ComputeIsLate(deadline.Add(-time.Hour), deadline, &lateDeadline))
	require.False(t, ComputeIsLate(deadline.AddDate(0, 0, 1), deadline, nil), "no late deadline means never late")
}

func TestDayNormalization(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	instant := time.Date(2024, 3, 15, 14, 30, 12, 0, loc)

	start := StartOfDay(instant, loc)
	require.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, loc), start)

	end := EndOfDay(instant, loc)
	require.Equal(t, time.Date(2024, 3, 15, 23, 59, 59, int(999*time.Millisecond), loc), end)
}

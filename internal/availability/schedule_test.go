package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var weekdays = []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday}

func nineToFive() Schedule {
	return Schedule{
		TimeZone: "UTC",
		Rules:    []WeeklyRule{{Days: weekdays, StartMinute: 9 * 60, EndMinute: 17 * 60}},
	}
}

func day(d, hour, minute int) time.Time {
	return time.Date(2024, 1, d, hour, minute, 0, 0, time.UTC)
}

func TestWorkingRanges_WeeklyRules(t *testing.T) {
	// 2024-01-01 is a Monday.
	got, err := WorkingRanges(nineToFive(), day(1, 0, 0), day(8, 0, 0))
	require.NoError(t, err)
	require.Len(t, got, 5)
	for i, r := range got {
		assert.Equal(t, day(1+i, 9, 0), r.Start)
		assert.Equal(t, day(1+i, 17, 0), r.End)
	}
}

func TestWorkingRanges_ClipsToWindow(t *testing.T) {
	got, err := WorkingRanges(nineToFive(), day(1, 12, 0), day(2, 10, 0))
	require.NoError(t, err)
	assert.Equal(t, []TimeRange{
		{Start: day(1, 12, 0), End: day(1, 17, 0)},
		{Start: day(2, 9, 0), End: day(2, 10, 0)},
	}, got)
}

func TestWorkingRanges_Overrides(t *testing.T) {
	s := nineToFive()
	s.Overrides = []DateOverride{
		{Date: "2024-01-02", StartMinute: 0, EndMinute: 0},
		{Date: "2024-01-03", StartMinute: 13 * 60, EndMinute: 15 * 60},
		{Date: "2024-01-06", StartMinute: 10 * 60, EndMinute: 12 * 60},
	}
	got, err := WorkingRanges(s, day(1, 0, 0), day(7, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, []TimeRange{
		{Start: day(1, 9, 0), End: day(1, 17, 0)},
		{Start: day(3, 13, 0), End: day(3, 15, 0)},
		{Start: day(4, 9, 0), End: day(4, 17, 0)},
		{Start: day(5, 9, 0), End: day(5, 17, 0)},
		{Start: day(6, 10, 0), End: day(6, 12, 0)},
	}, got)
}

func TestWorkingRanges_DaylightSavingShift(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	s := Schedule{
		TimeZone: "America/New_York",
		Rules: []WeeklyRule{{
			Days:        []time.Weekday{time.Saturday, time.Sunday},
			StartMinute: 9 * 60,
			EndMinute:   17 * 60,
		}},
	}
	// Clocks move forward on 2024-03-10.
	from := time.Date(2024, 3, 9, 0, 0, 0, 0, ny)
	to := time.Date(2024, 3, 11, 0, 0, 0, 0, ny)
	got, err := WorkingRanges(s, from, to)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, time.Date(2024, 3, 9, 14, 0, 0, 0, time.UTC), got[0].Start)
	assert.Equal(t, time.Date(2024, 3, 9, 22, 0, 0, 0, time.UTC), got[0].End)
	assert.Equal(t, time.Date(2024, 3, 10, 13, 0, 0, 0, time.UTC), got[1].Start)
	assert.Equal(t, time.Date(2024, 3, 10, 21, 0, 0, 0, time.UTC), got[1].End)
}

func TestWorkingRanges_FullDayRule(t *testing.T) {
	s := Schedule{Rules: []WeeklyRule{{Days: []time.Weekday{time.Monday, time.Tuesday}, StartMinute: 0, EndMinute: minutesPerDay}}}
	got, err := WorkingRanges(s, day(1, 0, 0), day(3, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, []TimeRange{{Start: day(1, 0, 0), End: day(3, 0, 0)}}, got)
}

func TestWorkingRanges_Errors(t *testing.T) {
	_, err := WorkingRanges(nineToFive(), day(2, 0, 0), day(1, 0, 0))
	assert.ErrorIs(t, err, ErrInvalidTimeRange)

	_, err = WorkingRanges(Schedule{TimeZone: "Mars/Olympus"}, day(1, 0, 0), day(2, 0, 0))
	assert.ErrorIs(t, err, ErrInvalidTimeZone)

	s := nineToFive()
	s.Overrides = []DateOverride{{Date: "01/02/2024", StartMinute: 60, EndMinute: 120}}
	_, err = WorkingRanges(s, day(1, 0, 0), day(2, 0, 0))
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestValidMinuteSpan(t *testing.T) {
	assert.True(t, ValidMinuteSpan(0, minutesPerDay))
	assert.True(t, ValidMinuteSpan(540, 1020))
	assert.False(t, ValidMinuteSpan(600, 600))
	assert.False(t, ValidMinuteSpan(-1, 60))
	assert.False(t, ValidMinuteSpan(0, minutesPerDay+1))
}

func TestLoadLocation(t *testing.T) {
	loc, err := LoadLocation("")
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)

	loc, err = LoadLocation("Europe/Berlin")
	require.NoError(t, err)
	assert.Equal(t, "Europe/Berlin", loc.String())
}

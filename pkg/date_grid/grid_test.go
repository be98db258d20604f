package date_grid

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthCells_AlwaysFortyTwo(t *testing.T) {
	testCases := []struct {
		name  string
		year  int
		month time.Month
	}{
		{name: "regular month", year: 2024, month: time.March},
		{name: "leap February", year: 2024, month: time.February},
		{name: "non-leap February", year: 2023, month: time.February},
		{name: "month starting on Sunday", year: 2024, month: time.September},
		{name: "month starting on Saturday", year: 2024, month: time.June},
		{name: "December year boundary", year: 2024, month: time.December},
		{name: "January year boundary", year: 2025, month: time.January},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cells := MonthCells(tc.year, tc.month)
			require.Len(t, cells, 42)

			// Ascending, no gaps.
			for i := 1; i < len(cells); i++ {
				assert.Equal(t, cells[i-1].Date.AddDate(0, 0, 1), cells[i].Date)
			}

			// The current-month entries are exactly the days of the month, in order.
			day := 1
			for _, cell := range cells {
				if !cell.IsCurrentMonth {
					continue
				}
				assert.Equal(t, tc.year, cell.Date.Year())
				assert.Equal(t, tc.month, cell.Date.Month())
				assert.Equal(t, day, cell.Date.Day())
				day++
			}
			lastDay := time.Date(tc.year, tc.month+1, 0, 0, 0, 0, 0, time.UTC).Day()
			assert.Equal(t, lastDay+1, day, "expected every day of the month to be present")
		})
	}
}

func TestMonthCells_LeapFebruary2024(t *testing.T) {
	cells := MonthCells(2024, time.February)
	require.Len(t, cells, 42)

	// February 2024 starts on a Thursday, so the grid opens on Sunday Jan 28.
	assert.Equal(t, time.Date(2024, time.January, 28, 0, 0, 0, 0, time.UTC), cells[0].Date)
	assert.False(t, cells[0].IsCurrentMonth)

	assert.Equal(t, time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), cells[4].Date)
	assert.True(t, cells[4].IsCurrentMonth)

	leapDay := time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC)
	found := false
	for _, cell := range cells {
		if cell.Date.Equal(leapDay) {
			found = true
			assert.True(t, cell.IsCurrentMonth)
		}
	}
	assert.True(t, found, "expected Feb 29 in the grid")
}

func TestMonthCells_Deterministic(t *testing.T) {
	assert.Equal(t, MonthCells(2024, time.July), MonthCells(2024, time.July))
}

func TestWeekCells(t *testing.T) {
	// 2024-03-05 is a Tuesday; the week starts on Sunday 2024-03-03.
	anchor := time.Date(2024, time.March, 5, 16, 45, 0, 0, time.UTC)
	days := WeekCells(anchor)
	require.Len(t, days, 7)

	assert.Equal(t, time.Date(2024, time.March, 3, 0, 0, 0, 0, time.UTC), days[0])
	assert.Equal(t, time.Sunday, days[0].Weekday())
	for i := 1; i < 7; i++ {
		assert.Equal(t, days[i-1].AddDate(0, 0, 1), days[i])
	}
}

func TestWeekCells_AnchorOnSunday(t *testing.T) {
	anchor := time.Date(2024, time.March, 3, 0, 0, 0, 0, time.UTC)
	days := WeekCells(anchor)
	assert.Equal(t, anchor, days[0])
}

func TestHourBuckets(t *testing.T) {
	hours := HourBuckets()
	require.Len(t, hours, 24)
	for i, hour := range hours {
		assert.Equal(t, i, hour)
	}
}

func TestSameDay(t *testing.T) {
	day := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)
	assert.True(t, SameDay(time.Date(2024, time.March, 5, 23, 59, 59, 0, time.UTC), day))
	assert.True(t, SameDay(day, day))
	assert.False(t, SameDay(time.Date(2024, time.March, 6, 0, 0, 0, 0, time.UTC), day))
}

func TestInHour_MatchesStartOnly(t *testing.T) {
	day := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)
	start := time.Date(2024, time.March, 5, 14, 30, 0, 0, time.UTC)

	assert.True(t, InHour(start, day, 14))
	// The 15:00 bucket never matches, even for an event still running then.
	assert.False(t, InHour(start, day, 15))
	assert.False(t, InHour(start, day.AddDate(0, 0, 1), 14))
}

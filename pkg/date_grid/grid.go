package date_grid

import "time"

// monthGridSize is the fixed number of cells in a month view: 6 rows of 7
// days each, Sunday first.
const monthGridSize = 42

// Cell is one day slot of a month grid. Cells padding out the first and last
// week belong to the adjacent months and are marked IsCurrentMonth=false.
type Cell struct {
	Date           time.Time
	IsCurrentMonth bool
}

// MonthCells returns the 42 day cells displayed for the given month: the tail
// of the previous month up to the first's weekday offset, every day of the
// target month, and enough leading days of the next month to reach 42. The
// result is ascending with no gaps; same input always yields the same cells.
func MonthCells(year int, month time.Month) []Cell {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	cells := make([]Cell, 0, monthGridSize)
	for i := int(first.Weekday()); i > 0; i-- {
		cells = append(cells, Cell{Date: first.AddDate(0, 0, -i)})
	}
	for d := 1; d <= last.Day(); d++ {
		cells = append(cells, Cell{
			Date:           time.Date(year, month, d, 0, 0, 0, 0, time.UTC),
			IsCurrentMonth: true,
		})
	}
	for i := 1; len(cells) < monthGridSize; i++ {
		cells = append(cells, Cell{Date: last.AddDate(0, 0, i)})
	}
	return cells
}

// WeekCells returns the 7 consecutive days of the week containing anchor,
// starting at the Sunday on or before it. Each entry is the start of its day
// in the anchor's location.
func WeekCells(anchor time.Time) []time.Time {
	start := StartOfDay(anchor).AddDate(0, 0, -int(anchor.Weekday()))
	days := make([]time.Time, 7)
	for i := range days {
		days[i] = start.AddDate(0, 0, i)
	}
	return days
}

// HourBuckets returns the 24 hour slots of a day, 0 through 23, used by the
// week and day views to lay out their rows.
func HourBuckets() []int {
	hours := make([]int, 24)
	for i := range hours {
		hours[i] = i
	}
	return hours
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar day. Only the
// date components are compared, so an instant matches a day bucket regardless
// of its time of day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// InHour reports whether t falls within the given (day, hour) bucket. Only
// the start instant of an event is ever matched against buckets; the end
// never places it in additional buckets.
func InHour(t time.Time, day time.Time, hour int) bool {
	return SameDay(t, day) && t.Hour() == hour
}

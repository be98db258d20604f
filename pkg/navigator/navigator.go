package navigator

import (
	"sync"
	"time"

	"github.com/kalendo/kalendo/internal/utils"
	"github.com/kalendo/kalendo/pkg/calendar"
)

// Navigator tracks the anchor date the views are centered on. The display
// granularity itself lives in the calendar state; callers pass it in when
// stepping, so there is a single source of truth for the active view.
type Navigator struct {
	mu     sync.RWMutex
	anchor time.Time
}

// New returns a Navigator anchored at the current time.
func New(clock utils.Clock) *Navigator {
	return &Navigator{anchor: clock.Now()}
}

// Anchor returns the current anchor date.
func (n *Navigator) Anchor() time.Time {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.anchor
}

// SetAnchor jumps to an explicit anchor date.
func (n *Navigator) SetAnchor(anchor time.Time) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.anchor = anchor
}

// Advance moves the anchor forward by one unit of the given granularity and
// returns the new anchor.
func (n *Navigator) Advance(view calendar.View) time.Time {
	return n.step(view, 1)
}

// Retreat moves the anchor backward by one unit of the given granularity and
// returns the new anchor.
func (n *Navigator) Retreat(view calendar.View) time.Time {
	return n.step(view, -1)
}

func (n *Navigator) step(view calendar.View, units int) time.Time {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.anchor = Step(n.anchor, view, units)
	return n.anchor
}

// Step moves anchor by the given number of granularity units. Month steps
// preserve the day-of-month and clamp to the last day of the target month
// when it is shorter, so stepping from Jan 31 lands on Feb 29 (or 28), never
// on an overflowed date.
func Step(anchor time.Time, view calendar.View, units int) time.Time {
	switch view {
	case calendar.ViewMonth:
		return addMonths(anchor, units)
	case calendar.ViewWeek:
		return anchor.AddDate(0, 0, 7*units)
	default:
		return anchor.AddDate(0, 0, units)
	}
}

// addMonths implements calendar month arithmetic. time.AddDate normalizes
// overflowing days into the following month (Jan 31 + 1 month = Mar 2), which
// is not what a calendar UI wants, so the day is clamped explicitly.
func addMonths(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	hour, minute, sec := t.Clock()

	firstOfTarget := time.Date(year, month+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	targetYear, targetMonth, _ := firstOfTarget.Date()

	if last := daysIn(targetYear, targetMonth, t.Location()); day > last {
		day = last
	}
	return time.Date(targetYear, targetMonth, day, hour, minute, sec, t.Nanosecond(), t.Location())
}

// daysIn returns the number of days in the given month. Day zero of the next
// month is the last day of this one.
func daysIn(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}

package calendar

import "time"

// View is the display granularity of the calendar.
type View string

const (
	ViewMonth View = "month"
	ViewWeek  View = "week"
	ViewDay   View = "day"
)

// Valid reports whether v is one of the three supported granularities.
func (v View) Valid() bool {
	switch v {
	case ViewMonth, ViewWeek, ViewDay:
		return true
	}
	return false
}

// Assignee is a person who can be linked to events. Events hold value copies
// of assignees, not references, so later assignee changes do not rewrite
// existing events.
type Assignee struct {
	ID     string
	Name   string
	Avatar string
}

// Tag is a named category with an associated color token. The name acts as
// the key; uniqueness is not enforced by the store.
type Tag struct {
	Name  string
	Color string
}

// Event is a scheduled item. The first entry of Tags is treated as the
// primary tag for color purposes. No ordering between Start and End is
// enforced.
type Event struct {
	ID          string
	Title       string
	Description string
	Start       time.Time
	End         time.Time
	Assignees   []Assignee
	Tags        []string
}

func (e Event) clone() Event {
	c := e
	c.Assignees = append([]Assignee(nil), e.Assignees...)
	c.Tags = append([]string(nil), e.Tags...)
	return c
}

// EventDraft is an event without an identity, used for creation.
type EventDraft struct {
	Title       string
	Description string
	Start       time.Time
	End         time.Time
	Assignees   []Assignee
	Tags        []string
}

// EventPatch is a partial event update. Nil fields keep their prior values.
type EventPatch struct {
	Title       *string
	Description *string
	Start       *time.Time
	End         *time.Time
	Assignees   *[]Assignee
	Tags        *[]string
}

// AssigneeDraft is an assignee without an identity, used for creation.
type AssigneeDraft struct {
	Name   string
	Avatar string
}

// Snapshot is the aggregate calendar state. Every transition returns a fresh
// Snapshot with freshly allocated collections; the receiver is never mutated,
// so observers can rely on identity comparison to detect changes.
type Snapshot struct {
	Events    []Event
	Assignees []Assignee
	Tags      []Tag
	View      View
}

// NewSnapshot returns an empty snapshot with the default month view.
func NewSnapshot() Snapshot {
	return Snapshot{View: ViewMonth}
}

func (s Snapshot) clone() Snapshot {
	c := Snapshot{
		Events:    make([]Event, len(s.Events)),
		Assignees: append([]Assignee(nil), s.Assignees...),
		Tags:      append([]Tag(nil), s.Tags...),
		View:      s.View,
	}
	for i, e := range s.Events {
		c.Events[i] = e.clone()
	}
	return c
}

// WithEvent appends the event, preserving insertion order.
func (s Snapshot) WithEvent(e Event) Snapshot {
	c := s.clone()
	c.Events = append(c.Events, e.clone())
	return c
}

// WithEventUpdated merges the patch into the event with the given id,
// keeping its position. An unknown id yields an unchanged copy.
func (s Snapshot) WithEventUpdated(id string, patch EventPatch) Snapshot {
	c := s.clone()
	for i, e := range c.Events {
		if e.ID != id {
			continue
		}
		if patch.Title != nil {
			e.Title = *patch.Title
		}
		if patch.Description != nil {
			e.Description = *patch.Description
		}
		if patch.Start != nil {
			e.Start = *patch.Start
		}
		if patch.End != nil {
			e.End = *patch.End
		}
		if patch.Assignees != nil {
			e.Assignees = append([]Assignee(nil), *patch.Assignees...)
		}
		if patch.Tags != nil {
			e.Tags = append([]string(nil), *patch.Tags...)
		}
		c.Events[i] = e
		break
	}
	return c
}

// WithoutEvent removes the event with the given id. An unknown id yields an
// unchanged copy.
func (s Snapshot) WithoutEvent(id string) Snapshot {
	c := s.clone()
	events := c.Events[:0]
	for _, e := range c.Events {
		if e.ID != id {
			events = append(events, e)
		}
	}
	c.Events = events
	return c
}

// WithAssignee appends the assignee, preserving insertion order.
func (s Snapshot) WithAssignee(a Assignee) Snapshot {
	c := s.clone()
	c.Assignees = append(c.Assignees, a)
	return c
}

// WithTag appends the tag unconditionally. A tag with an already used name
// creates a second entry; callers wanting uniqueness must check first.
func (s Snapshot) WithTag(t Tag) Snapshot {
	c := s.clone()
	c.Tags = append(c.Tags, t)
	return c
}

// WithView replaces the active granularity.
func (s Snapshot) WithView(v View) Snapshot {
	c := s.clone()
	c.View = v
	return c
}

// FindEvent returns the event with the given id, if present.
func (s Snapshot) FindEvent(id string) (Event, bool) {
	for _, e := range s.Events {
		if e.ID == id {
			return e.clone(), true
		}
	}
	return Event{}, false
}

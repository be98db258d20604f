package event_bus

import "time"

// Topics are scoped to the calendar field that changed, so a subscriber to
// tag changes is never woken by event mutations.
const (
	TopicEventCreated  Topic = "calendar.event.created"
	TopicEventUpdated  Topic = "calendar.event.updated"
	TopicEventDeleted  Topic = "calendar.event.deleted"
	TopicAssigneeAdded Topic = "calendar.assignee.added"
	TopicTagAdded      Topic = "calendar.tag.added"
	TopicViewChanged   Topic = "calendar.view.changed"
)

type CalendarEventCreated struct {
	ID        string
	Title     string
	StartTime time.Time
	EndTime   time.Time
	Tags      []string
}

type CalendarEventUpdated struct {
	ID        string
	Title     string
	StartTime time.Time
	EndTime   time.Time
}

type CalendarEventDeleted struct {
	ID string
}

type AssigneeAdded struct {
	ID   string
	Name string
}

type TagAdded struct {
	Name  string
	Color string
}

type ViewChanged struct {
	View string
}

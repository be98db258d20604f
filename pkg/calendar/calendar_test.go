package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEvent(id string) Event {
	return Event{
		ID:          id,
		Title:       "Sprint review",
		Description: "Demo the new board",
		Start:       time.Date(2024, time.March, 5, 14, 30, 0, 0, time.UTC),
		End:         time.Date(2024, time.March, 5, 16, 0, 0, 0, time.UTC),
		Assignees:   []Assignee{{ID: "a1", Name: "John Doe"}},
		Tags:        []string{"Work", "Meeting"},
	}
}

func TestView_Valid(t *testing.T) {
	assert.True(t, ViewMonth.Valid())
	assert.True(t, ViewWeek.Valid())
	assert.True(t, ViewDay.Valid())
	assert.False(t, View("year").Valid())
	assert.False(t, View("").Valid())
}

func TestSnapshot_WithEvent_DoesNotAliasReceiver(t *testing.T) {
	original := NewSnapshot().WithEvent(sampleEvent("e1"))
	next := original.WithEvent(sampleEvent("e2"))

	require.Len(t, original.Events, 1)
	require.Len(t, next.Events, 2)

	// Mutating the new snapshot's collections must not leak into the old one.
	next.Events[0].Title = "changed"
	next.Events[0].Tags[0] = "changed"
	assert.Equal(t, "Sprint review", original.Events[0].Title)
	assert.Equal(t, "Work", original.Events[0].Tags[0])
}

func TestSnapshot_WithEventUpdated_EmptyPatchIsNoOp(t *testing.T) {
	s := NewSnapshot().WithEvent(sampleEvent("e1"))
	updated := s.WithEventUpdated("e1", EventPatch{})
	assert.Equal(t, s.Events, updated.Events)
}

func TestSnapshot_WithEventUpdated_MergesOnlySuppliedFields(t *testing.T) {
	s := NewSnapshot().WithEvent(sampleEvent("e1"))

	title := "Renamed"
	newStart := time.Date(2024, time.March, 6, 9, 0, 0, 0, time.UTC)
	updated := s.WithEventUpdated("e1", EventPatch{Title: &title, Start: &newStart})

	got, found := updated.FindEvent("e1")
	require.True(t, found)
	assert.Equal(t, "Renamed", got.Title)
	assert.Equal(t, newStart, got.Start)
	// Untouched fields keep their prior values.
	assert.Equal(t, "Demo the new board", got.Description)
	assert.Equal(t, s.Events[0].End, got.End)
	assert.Equal(t, s.Events[0].Tags, got.Tags)
}

func TestSnapshot_WithEventUpdated_UnknownIdIsNoOp(t *testing.T) {
	s := NewSnapshot().WithEvent(sampleEvent("e1"))
	title := "Renamed"
	updated := s.WithEventUpdated("missing", EventPatch{Title: &title})
	assert.Equal(t, s.Events, updated.Events)
}

func TestSnapshot_WithoutEvent_KeepsOrderAndIsIdempotent(t *testing.T) {
	s := NewSnapshot().
		WithEvent(sampleEvent("e1")).
		WithEvent(sampleEvent("e2")).
		WithEvent(sampleEvent("e3"))

	once := s.WithoutEvent("e2")
	twice := once.WithoutEvent("e2")

	require.Len(t, once.Events, 2)
	assert.Equal(t, "e1", once.Events[0].ID)
	assert.Equal(t, "e3", once.Events[1].ID)
	assert.Equal(t, once.Events, twice.Events)
}

func TestSnapshot_AddThenDeleteRoundTrip(t *testing.T) {
	s := NewSnapshot().WithEvent(sampleEvent("e1"))
	roundTripped := s.WithEvent(sampleEvent("e2")).WithoutEvent("e2")
	assert.Equal(t, s.Events, roundTripped.Events)
}

func TestSnapshot_WithTag_AllowsDuplicateNames(t *testing.T) {
	s := NewSnapshot().
		WithTag(Tag{Name: "Work", Color: "colorA"}).
		WithTag(Tag{Name: "Work", Color: "colorB"})

	require.Len(t, s.Tags, 2)
	assert.Equal(t, Tag{Name: "Work", Color: "colorA"}, s.Tags[0])
	assert.Equal(t, Tag{Name: "Work", Color: "colorB"}, s.Tags[1])
}

func TestSnapshot_WithView(t *testing.T) {
	s := NewSnapshot()
	assert.Equal(t, ViewMonth, s.View)
	assert.Equal(t, ViewDay, s.WithView(ViewDay).View)
}

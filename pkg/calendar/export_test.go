package calendar

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/kalendo/kalendo/internal/event_bus"
	"github.com/kalendo/kalendo/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestICSExporter_Render(t *testing.T) {
	service := NewService(NewRepositoryStub(), event_bus.NewEventBus())
	clock := &utils.MockClock{FixedNow: time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)}
	exporter := NewICSExporter(service, clock)

	event, err := service.AddEvent(context.Background(), EventDraft{
		Title:       "Sprint review",
		Description: "Demo the new board",
		Start:       time.Date(2024, time.March, 5, 14, 30, 0, 0, time.UTC),
		End:         time.Date(2024, time.March, 5, 16, 0, 0, 0, time.UTC),
		Tags:        []string{"Work", "Meeting"},
	})
	require.NoError(t, err)

	ics := exporter.Render()
	assert.Contains(t, ics, "BEGIN:VCALENDAR")
	assert.Contains(t, ics, "BEGIN:VEVENT")
	assert.Contains(t, ics, "UID:"+event.ID)
	assert.Contains(t, ics, "SUMMARY:Sprint review")
	assert.Contains(t, ics, "CATEGORIES:Work")
	assert.Contains(t, ics, "END:VCALENDAR")
}

func TestICSExporter_RenderEmptyCalendar(t *testing.T) {
	service := NewService(NewRepositoryStub(), event_bus.NewEventBus())
	exporter := NewICSExporter(service, &utils.SystemClock{})

	ics := exporter.Render()
	assert.Contains(t, ics, "BEGIN:VCALENDAR")
	assert.NotContains(t, ics, "BEGIN:VEVENT")
}

func TestICSExporter_ExportCalendar(t *testing.T) {
	service := NewService(NewRepositoryStub(), event_bus.NewEventBus())
	exporter := NewICSExporter(service, &utils.SystemClock{})

	_, err := service.AddEvent(context.Background(), EventDraft{
		Title: "Planning",
		Start: time.Date(2024, time.March, 5, 9, 0, 0, 0, time.UTC),
		End:   time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	recorder := httptest.NewRecorder()
	exporter.ExportCalendar(recorder, httptest.NewRequest("GET", "/api/calendar.ics", nil))

	assert.Equal(t, 200, recorder.Code)
	assert.True(t, strings.HasPrefix(recorder.Header().Get("Content-Type"), "text/calendar"))
	assert.Contains(t, recorder.Body.String(), "SUMMARY:Planning")
}

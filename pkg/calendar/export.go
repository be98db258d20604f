package calendar

import (
	"net/http"
	"strings"

	ics "github.com/arran4/golang-ical"
	"github.com/kalendo/kalendo/internal/utils"
)

// ICSExporter renders the full event collection as an iCalendar feed, so the
// calendar can be subscribed to from other clients.
type ICSExporter struct {
	calendar *Service
	clock    utils.Clock
}

func NewICSExporter(s *Service, clock utils.Clock) *ICSExporter {
	return &ICSExporter{calendar: s, clock: clock}
}

// Render serializes all events into an iCalendar document.
func (x *ICSExporter) Render() string {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)

	now := x.clock.Now()
	for _, e := range x.calendar.Events() {
		ve := cal.AddEvent(e.ID)
		ve.SetDtStampTime(now)
		ve.SetStartAt(e.Start)
		ve.SetEndAt(e.End)
		ve.SetSummary(e.Title)
		if e.Description != "" {
			ve.SetDescription(e.Description)
		}
		if len(e.Tags) > 0 {
			ve.SetProperty(ics.ComponentProperty(ics.PropertyCategories), strings.Join(e.Tags, ","))
		}
	}
	return cal.Serialize()
}

// ExportCalendar serves the feed over HTTP.
func (x *ICSExporter) ExportCalendar(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="calendar.ics"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(x.Render())); err != nil {
		return
	}
}

package app

import (
	"github.com/gorilla/mux"
	"github.com/kalendo/kalendo/internal/config"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Events
	r.HandleFunc("/api/event", deps.CalendarHandler.GetEvents).Methods("GET")
	r.HandleFunc("/api/event", deps.CalendarHandler.CreateEvent).Methods("POST")
	r.HandleFunc("/api/event/{eventId}", deps.CalendarHandler.UpdateEvent).Methods("PATCH")
	r.HandleFunc("/api/event/{eventId}", deps.CalendarHandler.DeleteEvent).Methods("DELETE")

	// Assignees
	r.HandleFunc("/api/assignee", deps.CalendarHandler.GetAssignees).Methods("GET")
	r.HandleFunc("/api/assignee", deps.CalendarHandler.CreateAssignee).Methods("POST")

	// Tags
	r.HandleFunc("/api/tag", deps.CalendarHandler.GetTags).Methods("GET")
	r.HandleFunc("/api/tag", deps.CalendarHandler.CreateTag).Methods("POST")

	// View mode
	r.HandleFunc("/api/view", deps.CalendarHandler.GetView).Methods("GET")
	r.HandleFunc("/api/view", deps.CalendarHandler.SetView).Methods("PUT")

	// Grids
	r.HandleFunc("/api/grid/month", deps.GridHandler.GetMonthGrid).Queries("year", "{year}", "month", "{month}").Methods("GET")
	r.HandleFunc("/api/grid/week", deps.GridHandler.GetWeekGrid).Queries("anchor", "{anchor}").Methods("GET")
	r.HandleFunc("/api/grid/day", deps.GridHandler.GetDayGrid).Queries("anchor", "{anchor}").Methods("GET")

	// Navigation
	r.HandleFunc("/api/navigation", deps.NavigatorHandler.GetAnchor).Methods("GET")
	r.HandleFunc("/api/navigation", deps.NavigatorHandler.SetAnchor).Methods("PUT")
	r.HandleFunc("/api/navigation/next", deps.NavigatorHandler.Next).Methods("POST")
	r.HandleFunc("/api/navigation/previous", deps.NavigatorHandler.Previous).Methods("POST")

	// iCalendar feed
	r.HandleFunc("/api/calendar.ics", deps.ICSExporter.ExportCalendar).Methods("GET")
}

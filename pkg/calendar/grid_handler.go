package calendar

import (
	"net/http"
	"strconv"
	"time"

	"github.com/kalendo/kalendo/pkg/date_grid"
)

// EventSource is the slice of the service the grid views consume: they only
// ever filter events into day and hour buckets.
type EventSource interface {
	EventsForDay(day time.Time) []Event
	EventsForHour(day time.Time, hour int) []Event
}

// GridHandler serves the month/week/day grids: the date cells computed by
// date_grid with the events bucketed into each cell.
type GridHandler struct {
	events EventSource
}

func NewGridHandler(events EventSource) *GridHandler {
	return &GridHandler{events: events}
}

type DayCellDTO struct {
	Date           string     `json:"date"`
	IsCurrentMonth bool       `json:"isCurrentMonth"`
	Events         []EventDTO `json:"events"`
}

type HourCellDTO struct {
	Hour   int        `json:"hour"`
	Events []EventDTO `json:"events"`
}

type DayColumnDTO struct {
	Date  string        `json:"date"`
	Hours []HourCellDTO `json:"hours"`
}

// GetMonthGrid returns the 42 day cells for ?year=YYYY&month=1..12, each with
// the events bucketed into it.
func (h *GridHandler) GetMonthGrid(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid year", "'year' must be an integer")
		return
	}
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil || month < 1 || month > 12 {
		writeError(w, http.StatusBadRequest, "Invalid month", "'month' must be an integer between 1 and 12")
		return
	}

	cells := date_grid.MonthCells(year, time.Month(month))
	dtos := make([]DayCellDTO, 0, len(cells))
	for _, cell := range cells {
		dtos = append(dtos, DayCellDTO{
			Date:           cell.Date.Format(dayLayout),
			IsCurrentMonth: cell.IsCurrentMonth,
			Events:         eventDTOs(h.events.EventsForDay(cell.Date)),
		})
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetWeekGrid returns, for ?anchor=RFC3339, the 7 days of the containing week
// with their 24 hour rows and bucketed events.
func (h *GridHandler) GetWeekGrid(w http.ResponseWriter, r *http.Request) {
	anchor, err := time.Parse(time.RFC3339, r.URL.Query().Get("anchor"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid anchor format", "'anchor' must be in RFC3339 format")
		return
	}

	days := date_grid.WeekCells(anchor)
	dtos := make([]DayColumnDTO, 0, len(days))
	for _, day := range days {
		dtos = append(dtos, DayColumnDTO{
			Date:  day.Format(dayLayout),
			Hours: h.hourCells(day),
		})
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetDayGrid returns the 24 hour rows for ?anchor=RFC3339 with bucketed
// events.
func (h *GridHandler) GetDayGrid(w http.ResponseWriter, r *http.Request) {
	anchor, err := time.Parse(time.RFC3339, r.URL.Query().Get("anchor"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid anchor format", "'anchor' must be in RFC3339 format")
		return
	}

	writeJSON(w, http.StatusOK, DayColumnDTO{
		Date:  anchor.Format(dayLayout),
		Hours: h.hourCells(anchor),
	})
}

func (h *GridHandler) hourCells(day time.Time) []HourCellDTO {
	hours := date_grid.HourBuckets()
	cells := make([]HourCellDTO, 0, len(hours))
	for _, hour := range hours {
		cells = append(cells, HourCellDTO{
			Hour:   hour,
			Events: eventDTOs(h.events.EventsForHour(day, hour)),
		})
	}
	return cells
}

func eventDTOs(events []Event) []EventDTO {
	dtos := make([]EventDTO, 0, len(events))
	for _, e := range events {
		dtos = append(dtos, NewEventDTO(e))
	}
	return dtos
}

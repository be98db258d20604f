package calendar

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/kalendo/kalendo/internal/rest"
	log "github.com/sirupsen/logrus"
)

// dayLayout is the wire format of day query parameters.
const dayLayout = "2006-01-02"

type Handler struct {
	calendar *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{calendar: s}
}

type EventDTO struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	Start       time.Time     `json:"start"`
	End         time.Time     `json:"end"`
	Assignees   []AssigneeDTO `json:"assignees"`
	Tags        []string      `json:"tags"`
}

type AssigneeDTO struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}

type TagDTO struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

type ViewDTO struct {
	View string `json:"view"`
}

// eventPatchDTO mirrors EventPatch: absent fields keep their stored values.
type eventPatchDTO struct {
	Title       *string        `json:"title"`
	Description *string        `json:"description"`
	Start       *time.Time     `json:"start"`
	End         *time.Time     `json:"end"`
	Assignees   *[]AssigneeDTO `json:"assignees"`
	Tags        *[]string      `json:"tags"`
}

// GetEvents lists events. With a "day" query parameter it returns the events
// of that day bucket; adding "hour" narrows to the (day, hour) bucket.
// Without parameters all events are returned in insertion order.
func (h *Handler) GetEvents(w http.ResponseWriter, r *http.Request) {
	var events []Event

	dayString := r.URL.Query().Get("day")
	hourString := r.URL.Query().Get("hour")

	switch {
	case dayString == "" && hourString == "":
		events = h.calendar.Events()
	case dayString == "":
		writeError(w, http.StatusBadRequest, "Missing day parameter", "'hour' requires a 'day' parameter")
		return
	default:
		day, err := time.Parse(dayLayout, dayString)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid day format", "'day' must be formatted as YYYY-MM-DD")
			return
		}
		if hourString == "" {
			events = h.calendar.EventsForDay(day)
		} else {
			hour, err := strconv.Atoi(hourString)
			if err != nil || hour < 0 || hour > 23 {
				writeError(w, http.StatusBadRequest, "Invalid hour", "'hour' must be an integer between 0 and 23")
				return
			}
			events = h.calendar.EventsForHour(day, hour)
		}
	}

	dtos := make([]EventDTO, 0, len(events))
	for _, e := range events {
		dtos = append(dtos, NewEventDTO(e))
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var dto EventDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if dto.Title == "" {
		writeError(w, http.StatusBadRequest, "Missing title", "'title' must not be empty")
		return
	}

	event, err := h.calendar.AddEvent(r.Context(), EventDraft{
		Title:       dto.Title,
		Description: dto.Description,
		Start:       dto.Start,
		End:         dto.End,
		Assignees:   assigneesFromDTO(dto.Assignees),
		Tags:        dto.Tags,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, NewEventDTO(event))
}

func (h *Handler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	eventId := vars["eventId"]

	var dto eventPatchDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	patch := EventPatch{
		Title:       dto.Title,
		Description: dto.Description,
		Start:       dto.Start,
		End:         dto.End,
		Tags:        dto.Tags,
	}
	if dto.Assignees != nil {
		assignees := assigneesFromDTO(*dto.Assignees)
		patch.Assignees = &assignees
	}

	if err := h.calendar.UpdateEvent(r.Context(), eventId, patch); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	// An unknown id is a no-op, not an error.
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	eventId := vars["eventId"]

	if err := h.calendar.DeleteEvent(r.Context(), eventId); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetView(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ViewDTO{View: string(h.calendar.View())})
}

func (h *Handler) SetView(w http.ResponseWriter, r *http.Request) {
	var dto ViewDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	view := View(dto.View)
	if !view.Valid() {
		writeError(w, http.StatusBadRequest, "Invalid view", "'view' must be one of: month, week, day")
		return
	}

	if err := h.calendar.SetView(r.Context(), view); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, ViewDTO{View: string(view)})
}

func (h *Handler) GetAssignees(w http.ResponseWriter, r *http.Request) {
	assignees := h.calendar.Assignees()
	dtos := make([]AssigneeDTO, 0, len(assignees))
	for _, a := range assignees {
		dtos = append(dtos, AssigneeDTO(a))
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) CreateAssignee(w http.ResponseWriter, r *http.Request) {
	var dto AssigneeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if dto.Name == "" {
		writeError(w, http.StatusBadRequest, "Missing name", "'name' must not be empty")
		return
	}

	assignee, err := h.calendar.AddAssignee(r.Context(), AssigneeDraft{
		Name:   dto.Name,
		Avatar: dto.Avatar,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, AssigneeDTO(assignee))
}

func (h *Handler) GetTags(w http.ResponseWriter, r *http.Request) {
	tags := h.calendar.Tags()
	dtos := make([]TagDTO, 0, len(tags))
	for _, t := range tags {
		dtos = append(dtos, TagDTO(t))
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) CreateTag(w http.ResponseWriter, r *http.Request) {
	var dto TagDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if dto.Name == "" {
		writeError(w, http.StatusBadRequest, "Missing name", "'name' must not be empty")
		return
	}

	// Duplicate names are accepted on purpose; see AddTag.
	tag, err := h.calendar.AddTag(r.Context(), dto.Name, dto.Color)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, TagDTO(tag))
}

// NewEventDTO converts a domain event to its wire representation. Exported
// for the grid handlers, which embed events in their cell payloads.
func NewEventDTO(e Event) EventDTO {
	assignees := make([]AssigneeDTO, 0, len(e.Assignees))
	for _, a := range e.Assignees {
		assignees = append(assignees, AssigneeDTO(a))
	}
	tags := e.Tags
	if tags == nil {
		tags = []string{}
	}
	return EventDTO{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Start:       e.Start,
		End:         e.End,
		Assignees:   assignees,
		Tags:        tags,
	}
}

func assigneesFromDTO(dtos []AssigneeDTO) []Assignee {
	assignees := make([]Assignee, 0, len(dtos))
	for _, dto := range dtos {
		assignees = append(assignees, Assignee(dto))
	}
	return assignees
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Errorf("failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(rest.ErrorResponse{Error: message, Details: details}); err != nil {
		log.Errorf("failed to encode error response: %v", err)
	}
}

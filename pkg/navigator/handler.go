package navigator

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/kalendo/kalendo/internal/rest"
	"github.com/kalendo/kalendo/pkg/calendar"
)

// ViewSource provides the active display granularity.
type ViewSource interface {
	View() calendar.View
}

type Handler struct {
	navigator *Navigator
	views     ViewSource
}

func NewHandler(n *Navigator, views ViewSource) *Handler {
	return &Handler{navigator: n, views: views}
}

type AnchorDTO struct {
	Anchor time.Time `json:"anchor"`
	View   string    `json:"view"`
}

func (h *Handler) GetAnchor(w http.ResponseWriter, r *http.Request) {
	h.writeAnchor(w, h.navigator.Anchor())
}

// SetAnchor jumps to an explicit anchor date.
func (h *Handler) SetAnchor(w http.ResponseWriter, r *http.Request) {
	var dto struct {
		Anchor time.Time `json:"anchor"`
	}
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "Invalid anchor",
			Details: "'anchor' must be in RFC3339 format",
		})
		return
	}
	h.navigator.SetAnchor(dto.Anchor)
	h.writeAnchor(w, dto.Anchor)
}

// Next advances the anchor by one unit of the active granularity.
func (h *Handler) Next(w http.ResponseWriter, r *http.Request) {
	h.writeAnchor(w, h.navigator.Advance(h.views.View()))
}

// Previous moves the anchor back by one unit of the active granularity.
func (h *Handler) Previous(w http.ResponseWriter, r *http.Request) {
	h.writeAnchor(w, h.navigator.Retreat(h.views.View()))
}

func (h *Handler) writeAnchor(w http.ResponseWriter, anchor time.Time) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(AnchorDTO{
		Anchor: anchor,
		View:   string(h.views.View()),
	})
}

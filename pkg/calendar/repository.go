package calendar

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

// storageKey is the single key the aggregate document lives under.
const storageKey = "calendar-storage"

// schemaVersion is the version written into every stored document.
const schemaVersion = 1

// Repository persists the aggregate snapshot as one JSON document.
type Repository interface {
	// Load returns the stored snapshot, or nil when nothing has been
	// stored yet.
	Load(ctx context.Context) (*Snapshot, error)
	Save(ctx context.Context, snapshot Snapshot) error
}

type RepositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

// Stored document shapes. Dates travel as ISO-8601 strings so the loader can
// reject a single malformed event without failing the whole document.
type storedDocument struct {
	State   storedState `json:"state"`
	Version int         `json:"version"`
}

type storedState struct {
	Events    []storedEvent    `json:"events"`
	Assignees []storedAssignee `json:"assignees"`
	Tags      []storedTag      `json:"tags"`
	View      string           `json:"view"`
}

type storedEvent struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description,omitempty"`
	Start       string           `json:"start"`
	End         string           `json:"end"`
	Assignees   []storedAssignee `json:"assignees"`
	Tags        []string         `json:"tags"`
}

type storedAssignee struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}

type storedTag struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

func (r *RepositoryImpl) Load(ctx context.Context) (*Snapshot, error) {
	query := `SELECT value FROM calendar_storage WHERE storage_key = ?`

	var value string
	err := r.db.QueryRowContext(ctx, query, storageKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		err := fmt.Errorf("could not query calendar storage: %w", err)
		log.Error(err)
		return nil, err
	}

	var doc storedDocument
	if err := json.Unmarshal([]byte(value), &doc); err != nil {
		// A corrupt document is not fatal: start from an empty calendar.
		log.Warnf("calendar storage document is malformed, starting empty: %v", err)
		return nil, nil
	}
	if doc.Version > schemaVersion {
		log.Warnf("calendar storage document has unknown version %d, starting empty", doc.Version)
		return nil, nil
	}

	snapshot := decodeState(doc.State)
	return &snapshot, nil
}

func (r *RepositoryImpl) Save(ctx context.Context, snapshot Snapshot) error {
	doc := storedDocument{
		State:   encodeState(snapshot),
		Version: schemaVersion,
	}
	value, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("could not marshal calendar state: %w", err)
	}

	query := `INSERT INTO calendar_storage (storage_key, value, updated_at) VALUES (?, ?, ?)
              ON CONFLICT(storage_key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %w", err)
		log.Error(err)
		return err
	}
	defer stmt.Close()

	if _, err := stmt.ExecContext(ctx, storageKey, string(value), time.Now().UnixMilli()); err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

func encodeState(s Snapshot) storedState {
	state := storedState{
		Events:    make([]storedEvent, 0, len(s.Events)),
		Assignees: make([]storedAssignee, 0, len(s.Assignees)),
		Tags:      make([]storedTag, 0, len(s.Tags)),
		View:      string(s.View),
	}
	for _, e := range s.Events {
		state.Events = append(state.Events, storedEvent{
			ID:          e.ID,
			Title:       e.Title,
			Description: e.Description,
			Start:       e.Start.Format(time.RFC3339Nano),
			End:         e.End.Format(time.RFC3339Nano),
			Assignees:   encodeAssignees(e.Assignees),
			Tags:        append([]string{}, e.Tags...),
		})
	}
	for _, a := range s.Assignees {
		state.Assignees = append(state.Assignees, storedAssignee(a))
	}
	for _, t := range s.Tags {
		state.Tags = append(state.Tags, storedTag(t))
	}
	return state
}

func decodeState(state storedState) Snapshot {
	snapshot := Snapshot{
		Events:    make([]Event, 0, len(state.Events)),
		Assignees: make([]Assignee, 0, len(state.Assignees)),
		Tags:      make([]Tag, 0, len(state.Tags)),
		View:      View(state.View),
	}
	if !snapshot.View.Valid() {
		snapshot.View = ViewMonth
	}
	for _, se := range state.Events {
		start, err := parseStoredTime(se.Start)
		if err != nil {
			log.Warnf("dropping stored event %s: invalid start %q: %v", se.ID, se.Start, err)
			continue
		}
		end, err := parseStoredTime(se.End)
		if err != nil {
			log.Warnf("dropping stored event %s: invalid end %q: %v", se.ID, se.End, err)
			continue
		}
		snapshot.Events = append(snapshot.Events, Event{
			ID:          se.ID,
			Title:       se.Title,
			Description: se.Description,
			Start:       start,
			End:         end,
			Assignees:   decodeAssignees(se.Assignees),
			Tags:        append([]string{}, se.Tags...),
		})
	}
	for _, sa := range state.Assignees {
		snapshot.Assignees = append(snapshot.Assignees, Assignee(sa))
	}
	for _, st := range state.Tags {
		snapshot.Tags = append(snapshot.Tags, Tag(st))
	}
	return snapshot
}

func parseStoredTime(value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		// Older documents may carry second precision only.
		return time.Parse(time.RFC3339, value)
	}
	return t, nil
}

func encodeAssignees(assignees []Assignee) []storedAssignee {
	out := make([]storedAssignee, 0, len(assignees))
	for _, a := range assignees {
		out = append(out, storedAssignee(a))
	}
	return out
}

func decodeAssignees(assignees []storedAssignee) []Assignee {
	out := make([]Assignee, 0, len(assignees))
	for _, a := range assignees {
		out = append(out, Assignee(a))
	}
	return out
}

package calendar

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/kalendo/kalendo/internal/event_bus"
	"github.com/kalendo/kalendo/pkg/date_grid"
	log "github.com/sirupsen/logrus"
)

// Service is the calendar state container. It holds the current snapshot,
// applies pure transitions to it, publishes a field-scoped change event on
// the bus after each mutation, and persists the new snapshot through the
// repository. Persistence failures are returned to the caller; the in-memory
// transition is kept either way, so the next successful save catches up.
//
// Mutations from concurrent requests are serialized by the mutex; each one is
// a complete transition on the latest snapshot.
type Service struct {
	mu      sync.RWMutex
	current Snapshot

	repo Repository
	bus  *event_bus.EventBus
}

func NewService(repo Repository, bus *event_bus.EventBus) *Service {
	return &Service{
		current: NewSnapshot(),
		repo:    repo,
		bus:     bus,
	}
}

// Load hydrates the service from storage. When no document exists yet, the
// given seed snapshot becomes the initial state and is persisted.
func (s *Service) Load(ctx context.Context, seed Snapshot) error {
	stored, err := s.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load calendar state: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if stored == nil {
		s.current = seed.clone()
		if err := s.repo.Save(ctx, s.current); err != nil {
			return fmt.Errorf("failed to persist seeded calendar state: %w", err)
		}
		log.Infof("Initialized calendar storage with %d assignees and %d tags",
			len(seed.Assignees), len(seed.Tags))
		return nil
	}

	s.current = *stored
	log.Debugf("Loaded calendar state: %d events, %d assignees, %d tags, view=%s",
		len(stored.Events), len(stored.Assignees), len(stored.Tags), stored.View)
	return nil
}

// Snapshot returns a copy of the current aggregate state.
func (s *Service) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.clone()
}

// AddEvent assigns a fresh id to the draft and appends it. Start/End ordering
// is deliberately not validated.
func (s *Service) AddEvent(ctx context.Context, draft EventDraft) (Event, error) {
	event := Event{
		ID:          uuid.NewString(),
		Title:       draft.Title,
		Description: draft.Description,
		Start:       draft.Start,
		End:         draft.End,
		Assignees:   append([]Assignee(nil), draft.Assignees...),
		Tags:        append([]string(nil), draft.Tags...),
	}

	s.mu.Lock()
	s.current = s.current.WithEvent(event)
	next := s.current
	s.mu.Unlock()

	s.publish(ctx, event_bus.TopicEventCreated, event_bus.CalendarEventCreated{
		ID:        event.ID,
		Title:     event.Title,
		StartTime: event.Start,
		EndTime:   event.End,
		Tags:      event.Tags,
	})

	if err := s.repo.Save(ctx, next); err != nil {
		return event, fmt.Errorf("failed to persist calendar state: %w", err)
	}
	return event, nil
}

// UpdateEvent merges the patch into the event with the given id. An unknown
// id is a silent no-op: nothing changes, nothing is saved, no error.
func (s *Service) UpdateEvent(ctx context.Context, id string, patch EventPatch) error {
	s.mu.Lock()
	updated, found := s.current.FindEvent(id)
	if !found {
		s.mu.Unlock()
		log.Debugf("UpdateEvent: no event with id %s, ignoring", id)
		return nil
	}
	s.current = s.current.WithEventUpdated(id, patch)
	updated, _ = s.current.FindEvent(id)
	next := s.current
	s.mu.Unlock()

	s.publish(ctx, event_bus.TopicEventUpdated, event_bus.CalendarEventUpdated{
		ID:        updated.ID,
		Title:     updated.Title,
		StartTime: updated.Start,
		EndTime:   updated.End,
	})

	if err := s.repo.Save(ctx, next); err != nil {
		return fmt.Errorf("failed to persist calendar state: %w", err)
	}
	return nil
}

// DeleteEvent removes the event with the given id. Deleting an id that does
// not exist (or was already deleted) is a silent no-op.
func (s *Service) DeleteEvent(ctx context.Context, id string) error {
	s.mu.Lock()
	if _, found := s.current.FindEvent(id); !found {
		s.mu.Unlock()
		log.Debugf("DeleteEvent: no event with id %s, ignoring", id)
		return nil
	}
	s.current = s.current.WithoutEvent(id)
	next := s.current
	s.mu.Unlock()

	s.publish(ctx, event_bus.TopicEventDeleted, event_bus.CalendarEventDeleted{ID: id})

	if err := s.repo.Save(ctx, next); err != nil {
		return fmt.Errorf("failed to persist calendar state: %w", err)
	}
	return nil
}

// SetView replaces the active granularity.
func (s *Service) SetView(ctx context.Context, view View) error {
	s.mu.Lock()
	s.current = s.current.WithView(view)
	next := s.current
	s.mu.Unlock()

	s.publish(ctx, event_bus.TopicViewChanged, event_bus.ViewChanged{View: string(view)})

	if err := s.repo.Save(ctx, next); err != nil {
		return fmt.Errorf("failed to persist calendar state: %w", err)
	}
	return nil
}

// AddAssignee assigns a fresh id to the draft and appends it.
func (s *Service) AddAssignee(ctx context.Context, draft AssigneeDraft) (Assignee, error) {
	assignee := Assignee{
		ID:     uuid.NewString(),
		Name:   draft.Name,
		Avatar: draft.Avatar,
	}

	s.mu.Lock()
	s.current = s.current.WithAssignee(assignee)
	next := s.current
	s.mu.Unlock()

	s.publish(ctx, event_bus.TopicAssigneeAdded, event_bus.AssigneeAdded{
		ID:   assignee.ID,
		Name: assignee.Name,
	})

	if err := s.repo.Save(ctx, next); err != nil {
		return assignee, fmt.Errorf("failed to persist calendar state: %w", err)
	}
	return assignee, nil
}

// AddTag appends a tag unconditionally, even when a tag with the same name
// already exists.
func (s *Service) AddTag(ctx context.Context, name string, color string) (Tag, error) {
	tag := Tag{Name: name, Color: color}

	s.mu.Lock()
	s.current = s.current.WithTag(tag)
	next := s.current
	s.mu.Unlock()

	s.publish(ctx, event_bus.TopicTagAdded, event_bus.TagAdded{Name: name, Color: color})

	if err := s.repo.Save(ctx, next); err != nil {
		return tag, fmt.Errorf("failed to persist calendar state: %w", err)
	}
	return tag, nil
}

// Events returns all events in insertion order.
func (s *Service) Events() []Event {
	return s.Snapshot().Events
}

// EventsForDay returns the events whose start falls on the given calendar
// day, in insertion order. Matching uses the start only, so an event never
// appears under more than one day.
func (s *Service) EventsForDay(day time.Time) []Event {
	snapshot := s.Snapshot()
	result := make([]Event, 0, len(snapshot.Events))
	for _, e := range snapshot.Events {
		if date_grid.SameDay(e.Start, day) {
			result = append(result, e)
		}
	}
	return result
}

// EventsForHour returns the events whose start falls within the given
// (day, hour) bucket.
func (s *Service) EventsForHour(day time.Time, hour int) []Event {
	snapshot := s.Snapshot()
	result := make([]Event, 0, len(snapshot.Events))
	for _, e := range snapshot.Events {
		if date_grid.InHour(e.Start, day, hour) {
			result = append(result, e)
		}
	}
	return result
}

// Assignees returns all assignees in insertion order.
func (s *Service) Assignees() []Assignee {
	return s.Snapshot().Assignees
}

// Tags returns all tags in insertion order.
func (s *Service) Tags() []Tag {
	return s.Snapshot().Tags
}

// View returns the active granularity.
func (s *Service) View() View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.View
}

func (s *Service) publish(ctx context.Context, topic event_bus.Topic, payload any) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(event_bus.NewEvent(ctx, topic, payload)); err != nil {
		log.Warnf("calendar: observer error on %s: %v", topic, err)
	}
}

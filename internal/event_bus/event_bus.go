package event_bus

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// Topic identifies one kind of state change. Subscribers register per topic,
// so a reader interested only in tag changes never sees event changes.
type Topic string

// Event is the generic envelope delivered to subscribers.
type Event struct {
	ctx       context.Context
	Topic     Topic
	Timestamp time.Time
	Data      any
}

// NewEvent creates an Event carrying the given payload. The timestamp is set
// to the current time.
func NewEvent(ctx context.Context, topic Topic, data any) Event {
	return Event{
		ctx:       ctx,
		Topic:     topic,
		Timestamp: time.Now(),
		Data:      data,
	}
}

// Context returns the context the event was published with. Handlers should
// use it for cancellation and for request-scoped values.
func (e Event) Context() context.Context {
	if e.ctx == nil {
		return context.Background()
	}
	return e.ctx
}

// EventT is the typed envelope seen by handlers registered via SubscribeTyped.
type EventT[T any] struct {
	ctx       context.Context
	Topic     Topic
	Timestamp time.Time
	Data      T
}

func (e EventT[T]) Context() context.Context {
	if e.ctx == nil {
		return context.Background()
	}
	return e.ctx
}

type handler func(Event) error

// EventBus is a synchronous observer dispatcher: Publish runs every handler
// registered for the event's topic, in registration order, before returning.
// It is safe for concurrent use.
type EventBus struct {
	mu          sync.RWMutex
	subscribers map[Topic][]subscription
	nextID      uint64
}

type subscription struct {
	id uint64
	h  handler
}

func NewEventBus() *EventBus {
	return &EventBus{
		subscribers: make(map[Topic][]subscription),
	}
}

// Subscribe registers a handler for the given topic and returns a function
// that removes it again.
func (eb *EventBus) Subscribe(topic Topic, h func(Event) error) (unsubscribe func()) {
	eb.mu.Lock()
	eb.nextID++
	id := eb.nextID
	eb.subscribers[topic] = append(eb.subscribers[topic], subscription{id: id, h: h})
	eb.mu.Unlock()

	return func() {
		eb.mu.Lock()
		defer eb.mu.Unlock()

		subs := eb.subscribers[topic]
		for i, s := range subs {
			if s.id == id {
				eb.subscribers[topic] = append(subs[:i:i], subs[i+1:]...)
				break
			}
		}
		if len(eb.subscribers[topic]) == 0 {
			delete(eb.subscribers, topic)
		}
	}
}

// SubscribeTyped registers a handler expecting a payload of type T. It is a
// free function because Go methods cannot introduce type parameters. Events
// whose payload is not a T are skipped with a debug log.
func SubscribeTyped[T any](eb *EventBus, topic Topic, h func(EventT[T]) error) (unsubscribe func()) {
	wrapper := func(e Event) error {
		if e.Data == nil {
			log.Debugf("EventBus: nil payload on topic %s, skipping typed handler", topic)
			return nil
		}
		payload, ok := e.Data.(T)
		if !ok {
			log.Debugf("EventBus: payload type mismatch on topic %s: expected %T, got %T",
				topic, *new(T), e.Data)
			return nil
		}
		return h(EventT[T]{
			ctx:       e.ctx,
			Topic:     e.Topic,
			Timestamp: e.Timestamp,
			Data:      payload,
		})
	}
	return eb.Subscribe(topic, wrapper)
}

// Publish delivers the event to all handlers for its topic. Handler errors do
// not stop delivery; they are collected and returned joined. A panicking
// handler is recovered and reported as an error. If the event's context is
// cancelled, remaining handlers are skipped.
func (eb *EventBus) Publish(e Event) error {
	if err := e.Context().Err(); err != nil {
		return fmt.Errorf("topic %s: context cancelled before publish: %w", e.Topic, err)
	}

	eb.mu.RLock()
	subs := make([]subscription, len(eb.subscribers[e.Topic]))
	copy(subs, eb.subscribers[e.Topic])
	eb.mu.RUnlock()

	var errs []error
	for _, sub := range subs {
		if err := e.Context().Err(); err != nil {
			errs = append(errs, fmt.Errorf("context cancelled during delivery: %w", err))
			break
		}

		err := func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("handler panic (ID %d) on topic %s: %v", sub.id, e.Topic, r)
					log.Error(err)
				}
			}()
			return sub.h(e)
		}()
		if err != nil {
			log.Errorf("EventBus: handler error (ID %d) on topic %s: %v", sub.id, e.Topic, err)
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("topic %s: %w", e.Topic, errors.Join(errs...))
	}
	return nil
}

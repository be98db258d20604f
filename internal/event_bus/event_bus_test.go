package event_bus

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const topicTest Topic = "test.topic"

func TestEventBus_PublishReachesOnlyMatchingTopic(t *testing.T) {
	bus := NewEventBus()

	var matched, other int
	bus.Subscribe(topicTest, func(e Event) error {
		matched++
		return nil
	})
	bus.Subscribe(Topic("other.topic"), func(e Event) error {
		other++
		return nil
	})

	require.NoError(t, bus.Publish(NewEvent(context.Background(), topicTest, "payload")))
	assert.Equal(t, 1, matched)
	assert.Equal(t, 0, other)
}

func TestEventBus_Unsubscribe(t *testing.T) {
	bus := NewEventBus()

	var calls int
	unsubscribe := bus.Subscribe(topicTest, func(e Event) error {
		calls++
		return nil
	})

	require.NoError(t, bus.Publish(NewEvent(context.Background(), topicTest, nil)))
	unsubscribe()
	require.NoError(t, bus.Publish(NewEvent(context.Background(), topicTest, nil)))
	assert.Equal(t, 1, calls)
}

func TestEventBus_HandlerErrorDoesNotStopDelivery(t *testing.T) {
	bus := NewEventBus()

	var second bool
	bus.Subscribe(topicTest, func(e Event) error {
		return errors.New("first handler failed")
	})
	bus.Subscribe(topicTest, func(e Event) error {
		second = true
		return nil
	})

	err := bus.Publish(NewEvent(context.Background(), topicTest, nil))
	assert.Error(t, err)
	assert.True(t, second)
}

func TestEventBus_HandlerPanicIsRecovered(t *testing.T) {
	bus := NewEventBus()

	bus.Subscribe(topicTest, func(e Event) error {
		panic("boom")
	})

	err := bus.Publish(NewEvent(context.Background(), topicTest, nil))
	assert.Error(t, err)
}

func TestSubscribeTyped(t *testing.T) {
	bus := NewEventBus()

	var received []TagAdded
	SubscribeTyped(bus, TopicTagAdded, func(e EventT[TagAdded]) error {
		received = append(received, e.Data)
		return nil
	})

	require.NoError(t, bus.Publish(NewEvent(context.Background(), TopicTagAdded, TagAdded{Name: "Work", Color: "colorA"})))
	// A payload of the wrong type is skipped, not an error.
	require.NoError(t, bus.Publish(NewEvent(context.Background(), TopicTagAdded, "not a TagAdded")))

	require.Len(t, received, 1)
	assert.Equal(t, "Work", received[0].Name)
}

func TestEventBus_CancelledContextSkipsHandlers(t *testing.T) {
	bus := NewEventBus()

	var calls int
	bus.Subscribe(topicTest, func(e Event) error {
		calls++
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := bus.Publish(NewEvent(ctx, topicTest, nil))
	assert.Error(t, err)
	assert.Equal(t, 0, calls)
}

package bus_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/mokkun/habitfolio/internal/bus"
	"github.com/stretchr/testify/assert"
)

func TestPublishReachesAllSubscribers(t *testing.T) {
	b := bus.NewBus()
	ch1, cancel1 := b.Subscribe()
	ch2, cancel2 := b.Subscribe()
	defer cancel1()
	defer cancel2()

	ev := bus.Event{
		Kind:       bus.EventInsert,
		Date:       "2026-08-31",
		Amount:     2,
		HabitID:    uuid.New(),
		HabitTitle: "morning run",
	}
	b.Publish(ev)

	assert.Equal(t, ev, <-ch1)
	assert.Equal(t, ev, <-ch2)
}

func TestPublishDoesNotBlockOnFullBuffer(t *testing.T) {
	b := bus.NewBus()
	ch, cancel := b.Subscribe()
	defer cancel()

	// Nobody drains ch, so publishes past the buffer must be dropped
	// rather than hang.
	for i := 0; i < 100; i++ {
		b.Publish(bus.Event{Kind: bus.EventInsert, Date: "2026-08-31", HabitID: uuid.New()})
	}

	received := 0
	for {
		select {
		case <-ch:
			received++
		default:
			assert.Greater(t, received, 0)
			assert.Less(t, received, 100)
			return
		}
	}
}

func TestCancelUnsubscribes(t *testing.T) {
	b := bus.NewBus()
	ch, cancel := b.Subscribe()
	assert.Equal(t, 1, b.SubscriberCount())

	cancel()
	cancel() // repeat is a no-op

	assert.Equal(t, 0, b.SubscriberCount())
	_, open := <-ch
	assert.False(t, open)

	// Publishing with no subscribers is fine.
	b.Publish(bus.Event{Kind: bus.EventDelete, Date: "2026-08-31", HabitID: uuid.New()})
}

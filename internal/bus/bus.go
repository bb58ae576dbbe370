// Package bus is an in-process fan-out channel for habit ledger events.
// Publishing is fire-and-forget: a slow subscriber loses events instead of
// blocking the publisher, and every subscriber receives the publisher's own
// events too.
package bus

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

const (
	EventInsert = "insert"
	EventUpdate = "update"
	EventDelete = "delete"
)

// Event describes a single change to the completion ledger.
type Event struct {
	Kind       string    `json:"kind"`
	Date       string    `json:"date"`
	Amount     int       `json:"amount"`
	HabitID    uuid.UUID `json:"habitId"`
	HabitTitle string    `json:"habitTitle,omitempty"`
}

const subscriberBuffer = 16

type Bus struct {
	mu   sync.Mutex
	subs map[int]chan Event
	next int
}

func NewBus() *Bus {
	return &Bus{subs: make(map[int]chan Event)}
}

// Subscribe registers a new listener. The returned cancel func unregisters it
// and closes the channel; it is safe to call more than once.
func (b *Bus) Subscribe() (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.next
	b.next++
	ch := make(chan Event, subscriberBuffer)
	b.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.subs, id)
			close(ch)
		})
	}
	return ch, cancel
}

// Publish delivers ev to all current subscribers without blocking. Events are
// dropped for subscribers whose buffer is full.
func (b *Bus) Publish(ev Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs {
		select {
		case ch <- ev:
		default:
			slog.Warn("bus: dropping event for slow subscriber", slog.String("kind", ev.Kind), slog.String("habit_id", ev.HabitID.String()))
		}
	}
}

// SubscriberCount reports how many listeners are attached.
func (b *Bus) SubscriberCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

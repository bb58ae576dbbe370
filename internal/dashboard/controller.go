package dashboard

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/mokkun/habitfolio/internal/bus"
)

// Outcome reports how a completion attempt ended.
type Outcome int

const (
	// OutcomeSkipped means nothing was attempted: the habit was already
	// done today or another attempt is still pending.
	OutcomeSkipped Outcome = iota
	// OutcomeCommitted means the ledger confirmed the completion.
	OutcomeCommitted
	// OutcomeRolledBack means the ledger rejected it and the view was
	// restored to its pre-attempt state.
	OutcomeRolledBack
)

const noticeBuffer = 8

// Controller drives the optimistic completion flow. A completion goes through
// exactly one of three paths: skipped, committed, or rolled back.
type Controller struct {
	cache  *ViewCache
	ledger Ledger
	pub    Publisher

	mu      sync.Mutex
	pending map[uuid.UUID]struct{}

	notices chan string
}

func NewController(cache *ViewCache, ledger Ledger, pub Publisher) *Controller {
	return &Controller{
		cache:   cache,
		ledger:  ledger,
		pub:     pub,
		pending: make(map[uuid.UUID]struct{}),
		notices: make(chan string, noticeBuffer),
	}
}

// Notices delivers user-facing rollback messages. The channel is buffered and
// messages are dropped when nobody reads them.
func (c *Controller) Notices() <-chan string {
	return c.notices
}

// Complete records a completion of habitID for the cache's current day.
// The view updates immediately and an insert event goes out before the ledger
// call; if the ledger rejects, the habit is restored from a snapshot and a
// compensating delete event follows. Either way the attempt ends with a reload
// of the authoritative lists.
func (c *Controller) Complete(ctx context.Context, habitID uuid.UUID) (Outcome, error) {
	if c.cache.IsDone(habitID) {
		return OutcomeSkipped, nil
	}
	if !c.begin(habitID) {
		return OutcomeSkipped, nil
	}
	defer c.finish(habitID)

	snap, ok := c.cache.Snapshot(habitID)
	if !ok {
		return OutcomeSkipped, errors.New("habit is not in the cached view")
	}
	habit := snap.Habit()
	day := c.cache.Today()

	c.cache.ApplyCompletion(habitID)
	if c.pub != nil {
		c.pub.Publish(bus.Event{
			Kind:       bus.EventInsert,
			Date:       day,
			Amount:     habit.UnitAmount,
			HabitID:    habitID,
			HabitTitle: habit.Title,
		})
	}

	result, err := c.ledger.RecordCompletion(ctx, habitID, day)
	if err != nil {
		c.cache.Restore(snap)
		if c.pub != nil {
			c.pub.Publish(bus.Event{
				Kind:    bus.EventDelete,
				Date:    day,
				HabitID: habitID,
			})
		}
		c.notify("couldn't record \"" + habit.Title + "\", the view was reverted")
		slog.Error("completion rolled back",
			slog.String("habit_id", habitID.String()),
			slog.String("date", day),
			slog.String("error", err.Error()),
		)
		c.resync(ctx)
		return OutcomeRolledBack, err
	}
	c.cache.CommitTotals(habitID, result)
	c.resync(ctx)
	return OutcomeCommitted, nil
}

// resync reloads the habit list and today's completions once an attempt has
// settled. A committed completion can archive the habit server-side, and other
// sessions may have recorded completions in the meantime; neither should wait
// for the next poll. A failed reload keeps the current view.
func (c *Controller) resync(ctx context.Context) {
	habits, err := c.ledger.ActiveHabits(ctx)
	if err != nil {
		slog.Warn("habit reload after completion failed", slog.String("error", err.Error()))
		return
	}
	done, err := c.ledger.CompletedHabitIDs(ctx, c.cache.Today())
	if err != nil {
		slog.Warn("completions reload after completion failed", slog.String("error", err.Error()))
		return
	}
	c.cache.SetHabits(habits)
	c.cache.SetDone(done)
}

func (c *Controller) begin(habitID uuid.UUID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, inFlight := c.pending[habitID]; inFlight {
		return false
	}
	c.pending[habitID] = struct{}{}
	return true
}

func (c *Controller) finish(habitID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.pending, habitID)
}

func (c *Controller) notify(msg string) {
	select {
	case c.notices <- msg:
	default:
	}
}

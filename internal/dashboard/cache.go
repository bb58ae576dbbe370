package dashboard

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mokkun/habitfolio/pkg/entity"
	"github.com/mokkun/habitfolio/pkg/jstdate"
)

// DefaultDisplayLimit caps how many habits Display returns at once.
const DefaultDisplayLimit = 6

// ViewCache is the dashboard's in-memory state: the active habits, the set of
// habits already completed on the current JST day, and the day itself.
type ViewCache struct {
	mu           sync.RWMutex
	habits       []*entity.Habit
	doneToday    map[uuid.UUID]struct{}
	today        string
	displayLimit int
	now          func() time.Time
}

// Snapshot is one habit's pre-attempt state, used to roll back a rejected
// optimistic update without disturbing the rest of the view.
type Snapshot struct {
	habit   entity.Habit
	wasDone bool
}

// Habit returns the captured habit row.
func (s *Snapshot) Habit() entity.Habit {
	return s.habit
}

func NewViewCache(displayLimit int) *ViewCache {
	if displayLimit < 1 {
		displayLimit = DefaultDisplayLimit
	}
	vc := &ViewCache{
		doneToday:    make(map[uuid.UUID]struct{}),
		displayLimit: displayLimit,
		now:          time.Now,
	}
	vc.today = jstdate.Day(vc.now())
	return vc
}

// WithClock overrides the time source, for tests.
func (vc *ViewCache) WithClock(now func() time.Time) *ViewCache {
	vc.now = now
	vc.today = jstdate.Day(now())
	return vc
}

// SetHabits replaces the habit list.
func (vc *ViewCache) SetHabits(habits []*entity.Habit) {
	vc.mu.Lock()
	defer vc.mu.Unlock()
	vc.habits = habits
}

// SetDone replaces the completed-today set.
func (vc *ViewCache) SetDone(ids []uuid.UUID) {
	vc.mu.Lock()
	defer vc.mu.Unlock()
	vc.doneToday = make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		vc.doneToday[id] = struct{}{}
	}
}

// Habit looks a habit up by id.
func (vc *ViewCache) Habit(id uuid.UUID) (*entity.Habit, bool) {
	vc.mu.RLock()
	defer vc.mu.RUnlock()
	for _, h := range vc.habits {
		if h.ID == id {
			return h, true
		}
	}
	return nil, false
}

// Display returns at most displayLimit habits, in list order.
func (vc *ViewCache) Display() []*entity.Habit {
	vc.mu.RLock()
	defer vc.mu.RUnlock()
	n := len(vc.habits)
	if n > vc.displayLimit {
		n = vc.displayLimit
	}
	out := make([]*entity.Habit, n)
	copy(out, vc.habits[:n])
	return out
}

func (vc *ViewCache) IsDone(id uuid.UUID) bool {
	vc.mu.RLock()
	defer vc.mu.RUnlock()
	_, ok := vc.doneToday[id]
	return ok
}

func (vc *ViewCache) DoneCount() int {
	vc.mu.RLock()
	defer vc.mu.RUnlock()
	return len(vc.doneToday)
}

func (vc *ViewCache) Today() string {
	vc.mu.RLock()
	defer vc.mu.RUnlock()
	return vc.today
}

// ApplyCompletion marks the habit done today and bumps its totals by its unit
// amount. This is the optimistic half of a completion; the reconciled totals
// arrive later with CommitTotals.
func (vc *ViewCache) ApplyCompletion(id uuid.UUID) {
	vc.mu.Lock()
	defer vc.mu.Unlock()
	vc.doneToday[id] = struct{}{}
	for _, h := range vc.habits {
		if h.ID == id {
			h.TotalInvestment += h.UnitAmount
			h.TotalDays++
			return
		}
	}
}

// CommitTotals overwrites a habit's totals with the ledger's authoritative
// numbers.
func (vc *ViewCache) CommitTotals(id uuid.UUID, result *entity.CompletionResult) {
	vc.mu.Lock()
	defer vc.mu.Unlock()
	for _, h := range vc.habits {
		if h.ID == id {
			h.TotalInvestment = result.TotalInvestment
			h.TotalDays = result.TotalDays
			return
		}
	}
}

// Snapshot copies the habit's row and done mark so a failed attempt can be
// rewound later. The second return is false when the habit is not in the view.
func (vc *ViewCache) Snapshot(id uuid.UUID) (*Snapshot, bool) {
	vc.mu.RLock()
	defer vc.mu.RUnlock()
	for _, h := range vc.habits {
		if h.ID == id {
			_, done := vc.doneToday[id]
			return &Snapshot{habit: *h, wasDone: done}, true
		}
	}
	return nil, false
}

// Restore rewinds the snapshotted habit to its pre-attempt totals and done
// mark. Anything else that changed while the attempt was pending, a refresh or
// a day rollover, is left alone.
func (vc *ViewCache) Restore(snap *Snapshot) {
	vc.mu.Lock()
	defer vc.mu.Unlock()
	for _, h := range vc.habits {
		if h.ID == snap.habit.ID {
			h.TotalInvestment = snap.habit.TotalInvestment
			h.TotalDays = snap.habit.TotalDays
			break
		}
	}
	if !snap.wasDone {
		delete(vc.doneToday, snap.habit.ID)
	}
}

// Rollover clears the completed set when the JST day has changed and reports
// whether it did. Totals are untouched, only per-day state resets.
func (vc *ViewCache) Rollover() bool {
	day := jstdate.Day(vc.now())
	vc.mu.Lock()
	defer vc.mu.Unlock()
	if day == vc.today {
		return false
	}
	vc.today = day
	vc.doneToday = make(map[uuid.UUID]struct{})
	return true
}

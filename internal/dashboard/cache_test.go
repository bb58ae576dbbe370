package dashboard_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mokkun/habitfolio/internal/dashboard"
	"github.com/mokkun/habitfolio/pkg/entity"
	"github.com/mokkun/habitfolio/pkg/jstdate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisplayLimit(t *testing.T) {
	cache := dashboard.NewViewCache(3)
	habits := make([]*entity.Habit, 0, 5)
	for range 5 {
		habits = append(habits, newTestHabit(0, 0))
	}
	cache.SetHabits(habits)
	shown := cache.Display()
	require.Len(t, shown, 3)
	assert.Equal(t, habits[0].ID, shown[0].ID)
	assert.Equal(t, habits[2].ID, shown[2].ID)
}

func TestSnapshotRestore(t *testing.T) {
	habit := newTestHabit(10, 5)
	cache := dashboard.NewViewCache(0)
	cache.SetHabits([]*entity.Habit{habit})

	snap, ok := cache.Snapshot(habit.ID)
	require.True(t, ok)
	cache.ApplyCompletion(habit.ID)

	got, _ := cache.Habit(habit.ID)
	assert.Equal(t, 12, got.TotalInvestment)
	assert.Equal(t, 6, got.TotalDays)
	assert.True(t, cache.IsDone(habit.ID))

	cache.Restore(snap)
	got, _ = cache.Habit(habit.ID)
	assert.Equal(t, 10, got.TotalInvestment)
	assert.Equal(t, 5, got.TotalDays)
	assert.False(t, cache.IsDone(habit.ID))
}

func TestSnapshotUnknownHabit(t *testing.T) {
	cache := dashboard.NewViewCache(0)
	_, ok := cache.Snapshot(uuid.New())
	assert.False(t, ok)
}

func TestRestoreLeavesConcurrentChanges(t *testing.T) {
	habit := newTestHabit(10, 5)
	other := newTestHabit(3, 1)
	cache := dashboard.NewViewCache(0)
	cache.SetHabits([]*entity.Habit{habit, other})

	snap, ok := cache.Snapshot(habit.ID)
	require.True(t, ok)
	cache.ApplyCompletion(habit.ID)

	// A refresh lands while the attempt is pending
	cache.SetDone([]uuid.UUID{other.ID})

	cache.Restore(snap)
	got, _ := cache.Habit(habit.ID)
	assert.Equal(t, 10, got.TotalInvestment)
	assert.False(t, cache.IsDone(habit.ID))
	// The refreshed completion survives the rollback
	assert.True(t, cache.IsDone(other.ID))
}

func TestRolloverSameDay(t *testing.T) {
	cache := dashboard.NewViewCache(0)
	cache.SetDone([]uuid.UUID{uuid.New()})
	assert.False(t, cache.Rollover())
	assert.Equal(t, 1, cache.DoneCount())
}

func TestRolloverNextDay(t *testing.T) {
	now := time.Date(2026, 3, 14, 23, 30, 0, 0, jstdate.JST)
	cache := dashboard.NewViewCache(0).WithClock(func() time.Time { return now })
	cache.SetDone([]uuid.UUID{uuid.New()})
	require.Equal(t, "2026-03-14", cache.Today())

	now = now.Add(time.Hour)
	assert.True(t, cache.Rollover())
	assert.Equal(t, "2026-03-15", cache.Today())
	assert.Equal(t, 0, cache.DoneCount())
	// A second check on the new day is a no-op
	assert.False(t, cache.Rollover())
}

func TestRestoreAfterRollover(t *testing.T) {
	now := time.Date(2026, 3, 14, 23, 59, 0, 0, jstdate.JST)
	habit := newTestHabit(10, 5)
	cache := dashboard.NewViewCache(0).WithClock(func() time.Time { return now })
	cache.SetHabits([]*entity.Habit{habit})

	snap, ok := cache.Snapshot(habit.ID)
	require.True(t, ok)
	cache.ApplyCompletion(habit.ID)

	now = now.Add(2 * time.Minute)
	require.True(t, cache.Rollover())

	// Rolling back the attempt must not rewind the day
	cache.Restore(snap)
	assert.Equal(t, "2026-03-15", cache.Today())
	assert.Equal(t, 0, cache.DoneCount())
	got, _ := cache.Habit(habit.ID)
	assert.Equal(t, 10, got.TotalInvestment)
	assert.Equal(t, 5, got.TotalDays)
}

func TestRefresh(t *testing.T) {
	habit := newTestHabit(4, 2)
	ledger := &fakeLedger{
		habits: []*entity.Habit{habit},
		done:   []uuid.UUID{habit.ID},
	}
	cache := dashboard.NewViewCache(0)
	rf := dashboard.NewRefresher(cache, ledger)

	require.NoError(t, rf.Refresh(t.Context()))
	assert.Len(t, cache.Display(), 1)
	assert.True(t, cache.IsDone(habit.ID))
}

type failingLedger struct {
	fakeLedger
}

func (fl *failingLedger) ActiveHabits(ctx context.Context) ([]*entity.Habit, error) {
	return nil, errors.New("connection refused")
}

func TestRefreshKeepsViewOnError(t *testing.T) {
	habit := newTestHabit(4, 2)
	cache := dashboard.NewViewCache(0)
	cache.SetHabits([]*entity.Habit{habit})
	rf := dashboard.NewRefresher(cache, &failingLedger{})

	assert.Error(t, rf.Refresh(t.Context()))
	assert.Len(t, cache.Display(), 1)
}

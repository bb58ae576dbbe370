// Package dashboard keeps a local, optimistically updated view of one user's
// habits. Completions are applied to the view first and confirmed against the
// ledger afterwards; a failed confirmation rolls the view back to the exact
// pre-completion state.
package dashboard

import (
	"context"

	"github.com/google/uuid"
	"github.com/mokkun/habitfolio/internal/bus"
	"github.com/mokkun/habitfolio/pkg/entity"
)

// Ledger is the remote source of truth the dashboard reconciles against.
type Ledger interface {
	RecordCompletion(ctx context.Context, habitID uuid.UUID, date string) (*entity.CompletionResult, error)
	ActiveHabits(ctx context.Context) ([]*entity.Habit, error)
	CompletedHabitIDs(ctx context.Context, date string) ([]uuid.UUID, error)
}

// Publisher pushes ledger events to other live views. Publishing never blocks
// and delivery is best effort.
type Publisher interface {
	Publish(ev bus.Event)
}

package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mokkun/habitfolio/pkg/entity"
)

//go:generate mockgen -destination=mocks/mock_service.go -package=mocks github.com/mokkun/habitfolio/internal/service UserServiceI,CategoriesServiceI,GoalsServiceI,HabitsServiceI,LedgerServiceI,ReportsServiceI

type RegisterRequest struct {
	Name     string `validate:"required,alphanum_underscore,min=3,max=100"`
	Password string `validate:"required,min=8,max=72"`
}

type CreateCategoryRequest struct {
	Name  string `validate:"required,min=1,max=50"`
	Color string `validate:"omitempty,hexcolor"`
}

type CreateGoalRequest struct {
	Title       string `validate:"required,min=1,max=50"`
	Description string `validate:"max=200"`
	DueDate     *time.Time
	CategoryID  *uuid.UUID
}

// Validation ranges follow the product's habit form: short titles, tiny
// per-completion reward amounts, target no longer than a year.
type CreateHabitRequest struct {
	Title      string `validate:"required,min=1,max=50"`
	Trigger    string `validate:"max=200"`
	Steps      string `validate:"max=200"`
	TargetDays int    `validate:"required,min=1,max=365"`
	UnitAmount int    `validate:"required,min=1,max=3"`
	GoalID     *uuid.UUID
}

type PaginationOpts struct {
	Limit  int
	Offset int
}

type UserServiceI interface {
	// Validates user's credentials, creates new row in database. Returns user's data with ID
	Register(ctx context.Context, req *RegisterRequest) (*entity.User, error)
	// Compares given credentials. If ok, gives back user's data with ID
	Login(ctx context.Context, name, password string) (*entity.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	DeleteAccount(ctx context.Context, id uuid.UUID, password string) error
}

type CategoriesServiceI interface {
	CreateCategory(ctx context.Context, uid uuid.UUID, req *CreateCategoryRequest) (*entity.Category, error)
	GetUserCategories(ctx context.Context, uid uuid.UUID) ([]*entity.Category, error)
}

type GoalsServiceI interface {
	CreateGoal(ctx context.Context, uid uuid.UUID, req *CreateGoalRequest) (uuid.UUID, error)
	GetUserGoals(ctx context.Context, uid uuid.UUID) ([]*entity.Goal, error)
	DeleteGoal(ctx context.Context, goalID, userID uuid.UUID) error
}

type HabitsServiceI interface {
	CreateHabit(ctx context.Context, uid uuid.UUID, req *CreateHabitRequest) (*entity.Habit, error)
	// Lists active habits in creation order
	GetUserHabits(ctx context.Context, uid uuid.UUID, pagination PaginationOpts) ([]*entity.Habit, error)
	// Lists archived ("hall of fame") habits, most recent first
	GetArchivedHabits(ctx context.Context, uid uuid.UUID) ([]*entity.Habit, error)
	GetHabit(ctx context.Context, habitID, userID uuid.UUID) (*entity.Habit, error)
	DeleteHabit(ctx context.Context, habitID, userID uuid.UUID) error
}

type LedgerServiceI interface {
	// Records a completion of habitID on a JST calendar day and returns the
	// updated totals. The (habit, day) pair is unique; a repeat fails with
	// ErrCompletionExists and changes nothing.
	RecordCompletion(ctx context.Context, habitID, userID uuid.UUID, date string) (*entity.CompletionResult, error)
	// IDs of the user's habits already completed on date
	CompletedHabitIDs(ctx context.Context, uid uuid.UUID, date string) ([]uuid.UUID, error)
	// Logs of one habit within a date range, ownership enforced
	GetHabitLogs(ctx context.Context, habitID, userID uuid.UUID, from, to string) ([]entity.CompletionLog, error)
}

type ReportsServiceI interface {
	// Log rows with habit titles for the last `days` JST days
	Daily(ctx context.Context, uid uuid.UUID, days int) ([]entity.DailyRow, error)
	// Per-category investment totals since Monday of the current JST week
	Portfolio(ctx context.Context, uid uuid.UUID) ([]entity.CategoryTotal, error)
}

package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mokkun/habitfolio/pkg/entity"
)

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks github.com/mokkun/habitfolio/internal/repository UsersRepositoryI,CategoriesRepositoryI,GoalsRepositoryI,HabitsRepositoryI,LedgerRepositoryI

type UsersRepositoryI interface {
	// Creates new user in database
	Create(ctx context.Context, user *entity.User) error
	// Looks up user by name. Can be used for login
	FindByName(ctx context.Context, name string) (*entity.User, error)
	// Looks up user by uid. Can be used for authorization middleware
	FindByID(ctx context.Context, uid uuid.UUID) (*entity.User, error)
	// Deletes user
	Delete(ctx context.Context, uid uuid.UUID) error
}

type CategoriesRepositoryI interface {
	// Creates new category, returns its id
	Create(ctx context.Context, category *entity.Category) (uuid.UUID, error)
	// Lists categories owned by user in creation order
	GetByUserID(ctx context.Context, uid uuid.UUID) ([]*entity.Category, error)
}

type GoalsRepositoryI interface {
	// Creates new goal, returns its id
	Create(ctx context.Context, goal *entity.Goal) (uuid.UUID, error)
	// Searches goal with given id
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Goal, error)
	// Lists goals owned by user in creation order
	GetByUserID(ctx context.Context, uid uuid.UUID) ([]*entity.Goal, error)
	// Deletes goal with id
	Delete(ctx context.Context, id uuid.UUID) error
}

type HabitsRepositoryI interface {
	// Creates new habit. Only UserID, Title, UnitAmount, TargetDays (plus
	// optional GoalID, Trigger, Steps) are read from habit
	Create(ctx context.Context, habit *entity.Habit) (uuid.UUID, error)
	// Searches habit with given id
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Habit, error)
	// Lists active habits owned by user in creation order. Requires pagination params
	GetActiveByUserID(ctx context.Context, uid uuid.UUID, limit, offset int) ([]*entity.Habit, error)
	// Lists archived habits owned by user, most recently archived first
	GetArchivedByUserID(ctx context.Context, uid uuid.UUID) ([]*entity.Habit, error)
	// Marks habit archived and stamps archived_at
	Archive(ctx context.Context, id uuid.UUID) error
	// Deletes habit with id
	Delete(ctx context.Context, id uuid.UUID) error
}

type LedgerRepositoryI interface {
	// Atomically inserts a completion log for (habitID, date) and increments the
	// habit's totals. Fails with ErrCompletionExists if a log for the pair is
	// already recorded, ErrHabitNotFound if the habit is missing or archived.
	RecordCompletion(ctx context.Context, habitID uuid.UUID, date string) (*entity.CompletionResult, error)
	// IDs of user's habits with a log on date
	CompletedHabitIDs(ctx context.Context, uid uuid.UUID, date string) ([]uuid.UUID, error)
	// Logs joined with habit titles since a day, ascending by date
	DailyRows(ctx context.Context, uid uuid.UUID, since string) ([]entity.DailyRow, error)
	// Per-category amount sums since a day, joined through goals
	CategoryTotals(ctx context.Context, uid uuid.UUID, since string) ([]entity.CategoryTotal, error)
	// Logs of one habit within a date range
	GetByHabitAndDateRange(ctx context.Context, habitID uuid.UUID, from, to string) ([]entity.CompletionLog, error)
}

type DBConfig interface {
	ConnString() string
}

type PgConnection interface {
	Ping(ctx context.Context) error
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PGCfg struct {
	Address  string
	Username string
	Password string
	DB       string
}

func (pgcfg *PGCfg) ConnString() string {
	return fmt.Sprintf("postgresql://%s:%s@%s/%s", pgcfg.Username, pgcfg.Password, pgcfg.Address, pgcfg.DB)
}

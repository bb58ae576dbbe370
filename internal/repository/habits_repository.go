package repository

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	errorvalues "github.com/mokkun/habitfolio/internal/error_values"
	"github.com/mokkun/habitfolio/pkg/cleanup"
	"github.com/mokkun/habitfolio/pkg/entity"
)

type HabitsRepository struct {
	conn PgConnection
}

func NewHabitsRepo(cfg DBConfig) *HabitsRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for habitsRepo error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for habitsRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &HabitsRepository{
		conn: pool,
	}
}

func NewHabitsRepoWithConn(conn PgConnection) *HabitsRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for habitsRepo: " + err.Error())
	}
	return &HabitsRepository{
		conn: conn,
	}
}

func (hr *HabitsRepository) Create(ctx context.Context, habit *entity.Habit) (uuid.UUID, error) {
	var id uuid.UUID
	row := hr.conn.QueryRow(ctx, `INSERT INTO habits (user_id, goal_id, title, trigger, steps, unit_amount, target_days)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id;`,
		habit.UserID,
		habit.GoalID,
		habit.Title,
		habit.Trigger,
		habit.Steps,
		habit.UnitAmount,
		habit.TargetDays,
	)
	if err := row.Scan(&id); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			// FK violation
			case "23503":
				return uuid.UUID{}, errorvalues.ErrGoalNotFound
			}
		}
		return uuid.UUID{}, errors.New("creating habit db error: " + err.Error())
	}
	return id, nil
}

func (hr *HabitsRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Habit, error) {
	var habit entity.Habit
	habit.ID = id
	row := hr.conn.QueryRow(ctx, `SELECT user_id, goal_id, title, trigger, steps, unit_amount, target_days,
		total_investment, total_days, status, archived_at, created_at, updated_at FROM habits WHERE id = $1;`, id)
	if err := row.Scan(&habit.UserID, &habit.GoalID, &habit.Title, &habit.Trigger, &habit.Steps,
		&habit.UnitAmount, &habit.TargetDays, &habit.TotalInvestment, &habit.TotalDays,
		&habit.Status, &habit.ArchivedAt, &habit.CreatedAt, &habit.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrHabitNotFound
		}
		return nil, errors.New("getting habit by id error: " + err.Error())
	}
	return &habit, nil
}

func (hr *HabitsRepository) GetActiveByUserID(ctx context.Context, uid uuid.UUID, limit, offset int) ([]*entity.Habit, error) {
	habits := make([]*entity.Habit, 0)
	rows, err := hr.conn.Query(ctx, `SELECT id, user_id, goal_id, title, trigger, steps, unit_amount, target_days,
		total_investment, total_days, status, archived_at, created_at, updated_at
		FROM habits WHERE user_id = $1 AND status = 'active' ORDER BY created_at LIMIT $2 OFFSET $3;`, uid, limit, offset)
	if err != nil {
		return nil, errors.New("getting habits by uid error: " + err.Error())
	}
	defer rows.Close()
	for rows.Next() {
		h := entity.Habit{}
		err = rows.Scan(&h.ID, &h.UserID, &h.GoalID, &h.Title, &h.Trigger, &h.Steps, &h.UnitAmount, &h.TargetDays,
			&h.TotalInvestment, &h.TotalDays, &h.Status, &h.ArchivedAt, &h.CreatedAt, &h.UpdatedAt)
		if err != nil {
			return nil, errors.New("unmarshalling habit error: " + err.Error())
		}
		habits = append(habits, &h)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected error after scanning: " + rows.Err().Error())
	}
	return habits, nil
}

func (hr *HabitsRepository) GetArchivedByUserID(ctx context.Context, uid uuid.UUID) ([]*entity.Habit, error) {
	habits := make([]*entity.Habit, 0)
	rows, err := hr.conn.Query(ctx, `SELECT id, user_id, goal_id, title, trigger, steps, unit_amount, target_days,
		total_investment, total_days, status, archived_at, created_at, updated_at
		FROM habits WHERE user_id = $1 AND status = 'archived' ORDER BY archived_at DESC;`, uid)
	if err != nil {
		return nil, errors.New("getting archived habits error: " + err.Error())
	}
	defer rows.Close()
	for rows.Next() {
		h := entity.Habit{}
		err = rows.Scan(&h.ID, &h.UserID, &h.GoalID, &h.Title, &h.Trigger, &h.Steps, &h.UnitAmount, &h.TargetDays,
			&h.TotalInvestment, &h.TotalDays, &h.Status, &h.ArchivedAt, &h.CreatedAt, &h.UpdatedAt)
		if err != nil {
			return nil, errors.New("unmarshalling habit error: " + err.Error())
		}
		habits = append(habits, &h)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected error after scanning: " + rows.Err().Error())
	}
	return habits, nil
}

func (hr *HabitsRepository) Archive(ctx context.Context, id uuid.UUID) error {
	ct, err := hr.conn.Exec(ctx, `UPDATE habits SET status = 'archived', archived_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND status = 'active';`, id)
	if err != nil {
		return errors.New("error archiving habit: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrHabitNotFound
	}
	return nil
}

func (hr *HabitsRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ct, err := hr.conn.Exec(ctx, `DELETE FROM habits WHERE id = $1;`, id)
	if err != nil {
		return errors.New("error deleting habit: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrHabitNotFound
	}
	return nil
}

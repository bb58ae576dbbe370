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

type GoalsRepository struct {
	conn PgConnection
}

func NewGoalsRepo(cfg DBConfig) *GoalsRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for goalsRepo error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for goalsRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &GoalsRepository{
		conn: pool,
	}
}

func NewGoalsRepoWithConn(conn PgConnection) *GoalsRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for goalsRepo: " + err.Error())
	}
	return &GoalsRepository{
		conn: conn,
	}
}

func (gr *GoalsRepository) Create(ctx context.Context, goal *entity.Goal) (uuid.UUID, error) {
	var id uuid.UUID
	row := gr.conn.QueryRow(ctx, `INSERT INTO goals (user_id, category_id, title, description, due_date)
		VALUES ($1, $2, $3, $4, $5) RETURNING id;`,
		goal.UserID,
		goal.CategoryID,
		goal.Title,
		goal.Description,
		goal.DueDate,
	)
	if err := row.Scan(&id); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			// FK violation
			case "23503":
				return uuid.UUID{}, errorvalues.ErrCategoryNotFound
			}
		}
		return uuid.UUID{}, errors.New("creating goal db error: " + err.Error())
	}
	return id, nil
}

func (gr *GoalsRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Goal, error) {
	var goal entity.Goal
	goal.ID = id
	row := gr.conn.QueryRow(ctx, `SELECT user_id, category_id, title, description, due_date, created_at
		FROM goals WHERE id = $1;`, id)
	if err := row.Scan(&goal.UserID, &goal.CategoryID, &goal.Title, &goal.Description, &goal.DueDate, &goal.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrGoalNotFound
		}
		return nil, errors.New("getting goal by id error: " + err.Error())
	}
	return &goal, nil
}

func (gr *GoalsRepository) GetByUserID(ctx context.Context, uid uuid.UUID) ([]*entity.Goal, error) {
	goals := make([]*entity.Goal, 0)
	rows, err := gr.conn.Query(ctx, `SELECT id, user_id, category_id, title, description, due_date, created_at
		FROM goals WHERE user_id = $1 ORDER BY created_at;`, uid)
	if err != nil {
		return nil, errors.New("getting goals by uid error: " + err.Error())
	}
	defer rows.Close()
	for rows.Next() {
		g := entity.Goal{}
		err = rows.Scan(&g.ID, &g.UserID, &g.CategoryID, &g.Title, &g.Description, &g.DueDate, &g.CreatedAt)
		if err != nil {
			return nil, errors.New("unmarshalling goal error: " + err.Error())
		}
		goals = append(goals, &g)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected error after scanning: " + rows.Err().Error())
	}
	return goals, nil
}

func (gr *GoalsRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ct, err := gr.conn.Exec(ctx, `DELETE FROM goals WHERE id = $1;`, id)
	if err != nil {
		return errors.New("error deleting goal: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrGoalNotFound
	}
	return nil
}

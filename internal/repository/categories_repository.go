package repository

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	errorvalues "github.com/mokkun/habitfolio/internal/error_values"
	"github.com/mokkun/habitfolio/pkg/cleanup"
	"github.com/mokkun/habitfolio/pkg/entity"
)

type CategoriesRepository struct {
	conn PgConnection
}

func NewCategoriesRepo(cfg DBConfig) *CategoriesRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for categoriesRepo error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for categoriesRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &CategoriesRepository{
		conn: pool,
	}
}

func NewCategoriesRepoWithConn(conn PgConnection) *CategoriesRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for categoriesRepo: " + err.Error())
	}
	return &CategoriesRepository{
		conn: conn,
	}
}

func (cr *CategoriesRepository) Create(ctx context.Context, category *entity.Category) (uuid.UUID, error) {
	var id uuid.UUID
	row := cr.conn.QueryRow(ctx, `INSERT INTO categories (user_id, name, color) VALUES ($1, $2, $3) RETURNING id;`,
		category.UserID,
		category.Name,
		category.Color,
	)
	if err := row.Scan(&id); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			// Unique violation
			case "23505":
				return uuid.UUID{}, errorvalues.ErrCategoryExists
			}
		}
		return uuid.UUID{}, errors.New("creating category db error: " + err.Error())
	}
	return id, nil
}

func (cr *CategoriesRepository) GetByUserID(ctx context.Context, uid uuid.UUID) ([]*entity.Category, error) {
	categories := make([]*entity.Category, 0)
	rows, err := cr.conn.Query(ctx, `SELECT id, user_id, name, color FROM categories WHERE user_id = $1 ORDER BY created_at;`, uid)
	if err != nil {
		return nil, errors.New("getting categories by uid error: " + err.Error())
	}
	defer rows.Close()
	for rows.Next() {
		c := entity.Category{}
		err = rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Color)
		if err != nil {
			return nil, errors.New("unmarshalling category error: " + err.Error())
		}
		categories = append(categories, &c)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected error after scanning: " + rows.Err().Error())
	}
	return categories, nil
}

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

// LedgerRepository owns habit_logs and the atomic record-completion procedure.
// Log rows are append-only; the habit's running totals are maintained in the
// same transaction that writes the log.
type LedgerRepository struct {
	conn PgConnection
}

func NewLedgerRepo(cfg DBConfig) *LedgerRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for ledgerRepo error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for ledgerRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &LedgerRepository{
		conn: pool,
	}
}

func NewLedgerRepoWithConn(conn PgConnection) *LedgerRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for ledgerRepo: " + err.Error())
	}
	return &LedgerRepository{
		conn: conn,
	}
}

func (lr *LedgerRepository) RecordCompletion(ctx context.Context, habitID uuid.UUID, date string) (*entity.CompletionResult, error) {
	tx, err := lr.conn.Begin(ctx)
	if err != nil {
		return nil, errors.New("beginning completion tx error: " + err.Error())
	}
	defer tx.Rollback(ctx)

	// The insert-select reads the habit's current reward amount and refuses
	// archived or missing habits in one statement. The unique index on
	// (habit_id, log_date) rejects a second completion for the same day.
	var amount int
	row := tx.QueryRow(ctx, `INSERT INTO habit_logs (habit_id, log_date, amount)
		SELECT id, $2, unit_amount FROM habits WHERE id = $1 AND status = 'active'
		RETURNING amount;`, habitID, date)
	if err := row.Scan(&amount); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrHabitNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			// Unique violation
			case "23505":
				return nil, errorvalues.ErrCompletionExists
			}
		}
		return nil, errors.New("inserting completion log error: " + err.Error())
	}

	var result entity.CompletionResult
	row = tx.QueryRow(ctx, `UPDATE habits SET total_investment = total_investment + $2,
		total_days = total_days + 1, updated_at = NOW()
		WHERE id = $1 RETURNING total_investment, total_days;`, habitID, amount)
	if err := row.Scan(&result.TotalInvestment, &result.TotalDays); err != nil {
		return nil, errors.New("incrementing habit totals error: " + err.Error())
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, errors.New("committing completion tx error: " + err.Error())
	}
	return &result, nil
}

func (lr *LedgerRepository) CompletedHabitIDs(ctx context.Context, uid uuid.UUID, date string) ([]uuid.UUID, error) {
	rows, err := lr.conn.Query(ctx, `SELECT l.habit_id FROM habit_logs l
		JOIN habits h ON h.id = l.habit_id
		WHERE h.user_id = $1 AND l.log_date = $2;`, uid, date)
	if err != nil {
		return nil, errors.New("getting completed habit ids error: " + err.Error())
	}
	defer rows.Close()
	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err = rows.Scan(&id); err != nil {
			return nil, errors.New("completed id row parsing error: " + err.Error())
		}
		ids = append(ids, id)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected completed id rows error: " + rows.Err().Error())
	}
	return ids, nil
}

func (lr *LedgerRepository) DailyRows(ctx context.Context, uid uuid.UUID, since string) ([]entity.DailyRow, error) {
	rows, err := lr.conn.Query(ctx, `SELECT to_char(l.log_date, 'YYYY-MM-DD'), l.amount, h.title FROM habit_logs l
		JOIN habits h ON h.id = l.habit_id
		WHERE h.user_id = $1 AND l.log_date >= $2 ORDER BY l.log_date;`, uid, since)
	if err != nil {
		return nil, errors.New("getting daily rows error: " + err.Error())
	}
	defer rows.Close()
	result := make([]entity.DailyRow, 0)
	for rows.Next() {
		r := entity.DailyRow{}
		if err = rows.Scan(&r.Date, &r.Amount, &r.HabitTitle); err != nil {
			return nil, errors.New("daily row parsing error: " + err.Error())
		}
		result = append(result, r)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected daily rows error: " + rows.Err().Error())
	}
	return result, nil
}

func (lr *LedgerRepository) CategoryTotals(ctx context.Context, uid uuid.UUID, since string) ([]entity.CategoryTotal, error) {
	rows, err := lr.conn.Query(ctx, `SELECT COALESCE(c.name, ''), COALESCE(c.color, ''), SUM(l.amount) FROM habit_logs l
		JOIN habits h ON h.id = l.habit_id
		LEFT JOIN goals g ON g.id = h.goal_id
		LEFT JOIN categories c ON c.id = g.category_id
		WHERE h.user_id = $1 AND l.log_date >= $2
		GROUP BY c.name, c.color ORDER BY SUM(l.amount) DESC;`, uid, since)
	if err != nil {
		return nil, errors.New("getting category totals error: " + err.Error())
	}
	defer rows.Close()
	result := make([]entity.CategoryTotal, 0)
	for rows.Next() {
		t := entity.CategoryTotal{}
		if err = rows.Scan(&t.Category, &t.Color, &t.Total); err != nil {
			return nil, errors.New("category total row parsing error: " + err.Error())
		}
		result = append(result, t)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected category total rows error: " + rows.Err().Error())
	}
	return result, nil
}

func (lr *LedgerRepository) GetByHabitAndDateRange(ctx context.Context, habitID uuid.UUID, from, to string) ([]entity.CompletionLog, error) {
	rows, err := lr.conn.Query(ctx, `SELECT id, habit_id, to_char(log_date, 'YYYY-MM-DD'), amount, created_at
		FROM habit_logs WHERE habit_id = $1 AND log_date >= $2 AND log_date <= $3 ORDER BY log_date;`,
		habitID, from, to)
	if err != nil {
		return nil, errors.New("getting logs for period error: " + err.Error())
	}
	defer rows.Close()
	result := make([]entity.CompletionLog, 0)
	for rows.Next() {
		l := entity.CompletionLog{}
		if err = rows.Scan(&l.ID, &l.HabitID, &l.LogDate, &l.Amount, &l.CreatedAt); err != nil {
			return nil, errors.New("log row parsing error: " + err.Error())
		}
		result = append(result, l)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected log rows error: " + rows.Err().Error())
	}
	return result, nil
}

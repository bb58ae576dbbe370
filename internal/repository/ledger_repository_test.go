package repository_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	errorvalues "github.com/mokkun/habitfolio/internal/error_values"
	"github.com/mokkun/habitfolio/internal/repository"
	"github.com/mokkun/habitfolio/pkg/entity"
	"github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	insertLogQuery = regexp.QuoteMeta(`INSERT INTO habit_logs (habit_id, log_date, amount)
		SELECT id, $2, unit_amount FROM habits WHERE id = $1 AND status = 'active'
		RETURNING amount;`)
	incrementTotalsQuery = regexp.QuoteMeta(`UPDATE habits SET total_investment = total_investment + $2,
		total_days = total_days + 1, updated_at = NOW()
		WHERE id = $1 RETURNING total_investment, total_days;`)
)

func TestRecordCompletion(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	ledgerRepo := repository.NewLedgerRepoWithConn(mock)
	habitID := uuid.New()
	date := "2025-06-01"
	testCases := []struct {
		Desc            string
		Error           error
		Expected        *entity.CompletionResult
		MockPrepareFunc func()
	}{
		{
			Desc:     "successful",
			Error:    nil,
			Expected: &entity.CompletionResult{TotalInvestment: 12, TotalDays: 6},
			MockPrepareFunc: func() {
				mock.ExpectBegin()
				mock.ExpectQuery(insertLogQuery).WithArgs(habitID, date).
					WillReturnRows(pgxmock.NewRows([]string{"amount"}).AddRow(2))
				mock.ExpectQuery(incrementTotalsQuery).WithArgs(habitID, 2).
					WillReturnRows(pgxmock.NewRows([]string{"total_investment", "total_days"}).AddRow(12, 6))
				mock.ExpectCommit()
			},
		},
		{
			Desc:  "duplicate completion",
			Error: errorvalues.ErrCompletionExists,
			MockPrepareFunc: func() {
				mock.ExpectBegin()
				mock.ExpectQuery(insertLogQuery).WithArgs(habitID, date).WillReturnError(&pgconn.PgError{
					Code: "23505",
				})
				mock.ExpectRollback()
			},
		},
		{
			Desc:  "habit missing or archived",
			Error: errorvalues.ErrHabitNotFound,
			MockPrepareFunc: func() {
				mock.ExpectBegin()
				mock.ExpectQuery(insertLogQuery).WithArgs(habitID, date).WillReturnError(pgx.ErrNoRows)
				mock.ExpectRollback()
			},
		},
		{
			Desc:  "insert db error",
			Error: errors.New("inserting completion log error: db error"),
			MockPrepareFunc: func() {
				mock.ExpectBegin()
				mock.ExpectQuery(insertLogQuery).WithArgs(habitID, date).WillReturnError(errors.New("db error"))
				mock.ExpectRollback()
			},
		},
		{
			Desc:  "increment db error",
			Error: errors.New("incrementing habit totals error: db error"),
			MockPrepareFunc: func() {
				mock.ExpectBegin()
				mock.ExpectQuery(insertLogQuery).WithArgs(habitID, date).
					WillReturnRows(pgxmock.NewRows([]string{"amount"}).AddRow(2))
				mock.ExpectQuery(incrementTotalsQuery).WithArgs(habitID, 2).WillReturnError(errors.New("db error"))
				mock.ExpectRollback()
			},
		},
		{
			Desc:  "begin error",
			Error: errors.New("beginning completion tx error: no connection"),
			MockPrepareFunc: func() {
				mock.ExpectBegin().WillReturnError(errors.New("no connection"))
			},
		},
	}
	ctx := context.Background()
	for _, tc := range testCases {
		t.Run(tc.Desc, func(t *testing.T) {
			tc.MockPrepareFunc()
			result, err := ledgerRepo.RecordCompletion(ctx, habitID, date)
			if tc.Error != nil {
				assert.EqualError(t, err, tc.Error.Error())
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tc.Expected, result)
			}
		})
	}
}

func TestCompletedHabitIDs(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	ledgerRepo := repository.NewLedgerRepoWithConn(mock)
	query := regexp.QuoteMeta(`SELECT l.habit_id FROM habit_logs l
		JOIN habits h ON h.id = l.habit_id
		WHERE h.user_id = $1 AND l.log_date = $2;`)
	uid := uuid.New()
	first := uuid.New()
	second := uuid.New()
	date := "2025-06-01"
	ctx := context.Background()
	t.Run("two completed habits", func(t *testing.T) {
		mock.ExpectQuery(query).WithArgs(uid, date).
			WillReturnRows(pgxmock.NewRows([]string{"habit_id"}).AddRow(first).AddRow(second))
		ids, err := ledgerRepo.CompletedHabitIDs(ctx, uid, date)
		assert.NoError(t, err)
		assert.Equal(t, []uuid.UUID{first, second}, ids)
	})
	t.Run("nothing completed", func(t *testing.T) {
		mock.ExpectQuery(query).WithArgs(uid, date).
			WillReturnRows(pgxmock.NewRows([]string{"habit_id"}))
		ids, err := ledgerRepo.CompletedHabitIDs(ctx, uid, date)
		assert.NoError(t, err)
		assert.Empty(t, ids)
	})
	t.Run("db error", func(t *testing.T) {
		mock.ExpectQuery(query).WithArgs(uid, date).WillReturnError(errors.New("db error"))
		_, err := ledgerRepo.CompletedHabitIDs(ctx, uid, date)
		assert.EqualError(t, err, "getting completed habit ids error: db error")
	})
}

func TestDailyRows(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	ledgerRepo := repository.NewLedgerRepoWithConn(mock)
	query := regexp.QuoteMeta(`SELECT to_char(l.log_date, 'YYYY-MM-DD'), l.amount, h.title FROM habit_logs l
		JOIN habits h ON h.id = l.habit_id
		WHERE h.user_id = $1 AND l.log_date >= $2 ORDER BY l.log_date;`)
	uid := uuid.New()
	since := "2025-05-26"
	ctx := context.Background()
	t.Run("rows in date order", func(t *testing.T) {
		mock.ExpectQuery(query).WithArgs(uid, since).
			WillReturnRows(pgxmock.NewRows([]string{"log_date", "amount", "title"}).
				AddRow("2025-05-26", 1, "reading").
				AddRow("2025-05-27", 2, "running"))
		rows, err := ledgerRepo.DailyRows(ctx, uid, since)
		assert.NoError(t, err)
		assert.Equal(t, []entity.DailyRow{
			{Date: "2025-05-26", Amount: 1, HabitTitle: "reading"},
			{Date: "2025-05-27", Amount: 2, HabitTitle: "running"},
		}, rows)
	})
	t.Run("db error", func(t *testing.T) {
		mock.ExpectQuery(query).WithArgs(uid, since).WillReturnError(errors.New("db error"))
		_, err := ledgerRepo.DailyRows(ctx, uid, since)
		assert.EqualError(t, err, "getting daily rows error: db error")
	})
}

func TestCategoryTotals(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	ledgerRepo := repository.NewLedgerRepoWithConn(mock)
	query := regexp.QuoteMeta(`SELECT COALESCE(c.name, ''), COALESCE(c.color, ''), SUM(l.amount) FROM habit_logs l
		JOIN habits h ON h.id = l.habit_id
		LEFT JOIN goals g ON g.id = h.goal_id
		LEFT JOIN categories c ON c.id = g.category_id
		WHERE h.user_id = $1 AND l.log_date >= $2
		GROUP BY c.name, c.color ORDER BY SUM(l.amount) DESC;`)
	uid := uuid.New()
	since := "2025-05-26"
	ctx := context.Background()
	t.Run("totals with uncategorized bucket", func(t *testing.T) {
		mock.ExpectQuery(query).WithArgs(uid, since).
			WillReturnRows(pgxmock.NewRows([]string{"name", "color", "sum"}).
				AddRow("health", "#40c057", 9).
				AddRow("", "", 3))
		totals, err := ledgerRepo.CategoryTotals(ctx, uid, since)
		assert.NoError(t, err)
		assert.Equal(t, []entity.CategoryTotal{
			{Category: "health", Color: "#40c057", Total: 9},
			{Category: "", Color: "", Total: 3},
		}, totals)
	})
	t.Run("db error", func(t *testing.T) {
		mock.ExpectQuery(query).WithArgs(uid, since).WillReturnError(errors.New("db error"))
		_, err := ledgerRepo.CategoryTotals(ctx, uid, since)
		assert.EqualError(t, err, "getting category totals error: db error")
	})
}

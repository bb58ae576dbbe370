package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	errorvalues "github.com/mokkun/habitfolio/internal/error_values"
	"github.com/mokkun/habitfolio/internal/repository/mocks"
	"github.com/mokkun/habitfolio/internal/service"
	"github.com/mokkun/habitfolio/pkg/entity"
	"github.com/mokkun/habitfolio/pkg/jstdate"
	"github.com/stretchr/testify/assert"
)

func activeHabit(id, uid uuid.UUID) *entity.Habit {
	return &entity.Habit{
		ID:              id,
		UserID:          uid,
		Title:           "stretching",
		UnitAmount:      2,
		TargetDays:      30,
		TotalInvestment: 10,
		TotalDays:       5,
		Status:          entity.HabitStatusActive,
	}
}

func TestRecordCompletionService(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	habitsRepo := mocks.NewMockHabitsRepositoryI(ctrl)
	ledgerRepo := mocks.NewMockLedgerRepositoryI(ctrl)

	serv := service.NewLedgerService(habitsRepo, ledgerRepo)
	habitID := uuid.New()
	userID := uuid.New()
	today := jstdate.Today()
	testCases := []struct {
		Desc         string
		Error        error
		Date         string
		Expected     *entity.CompletionResult
		MockPrepFunc func()
	}{
		{
			Desc:     "success increments totals",
			Error:    nil,
			Date:     today,
			Expected: &entity.CompletionResult{TotalInvestment: 12, TotalDays: 6},
			MockPrepFunc: func() {
				habitsRepo.EXPECT().GetByID(gomock.Any(), habitID).Return(activeHabit(habitID, userID), nil)
				ledgerRepo.EXPECT().RecordCompletion(gomock.Any(), habitID, today).
					Return(&entity.CompletionResult{TotalInvestment: 12, TotalDays: 6}, nil)
			},
		},
		{
			Desc:  "duplicate completion same day",
			Error: errorvalues.ErrCompletionExists,
			Date:  today,
			MockPrepFunc: func() {
				habitsRepo.EXPECT().GetByID(gomock.Any(), habitID).Return(activeHabit(habitID, userID), nil)
				ledgerRepo.EXPECT().RecordCompletion(gomock.Any(), habitID, today).
					Return(nil, errorvalues.ErrCompletionExists)
			},
		},
		{
			Desc:  "wrong owner",
			Error: errorvalues.ErrWrongOwner,
			Date:  today,
			MockPrepFunc: func() {
				habitsRepo.EXPECT().GetByID(gomock.Any(), habitID).Return(activeHabit(habitID, uuid.New()), nil)
			},
		},
		{
			Desc:  "habit archived",
			Error: errorvalues.ErrHabitArchived,
			Date:  today,
			MockPrepFunc: func() {
				h := activeHabit(habitID, userID)
				h.Status = entity.HabitStatusArchived
				habitsRepo.EXPECT().GetByID(gomock.Any(), habitID).Return(h, nil)
			},
		},
		{
			Desc:  "habit not found",
			Error: errorvalues.ErrHabitNotFound,
			Date:  today,
			MockPrepFunc: func() {
				habitsRepo.EXPECT().GetByID(gomock.Any(), habitID).Return(nil, errorvalues.ErrHabitNotFound)
			},
		},
		{
			Desc:         "future date rejected",
			Error:        errorvalues.ErrDateNotAllowed,
			Date:         "2999-01-01",
			MockPrepFunc: func() {},
		},
		{
			Desc:         "malformed date rejected",
			Error:        errorvalues.ErrDateNotAllowed,
			Date:         "today",
			MockPrepFunc: func() {},
		},
		{
			Desc:  "repository error",
			Error: errors.New("repository error: db down"),
			Date:  today,
			MockPrepFunc: func() {
				habitsRepo.EXPECT().GetByID(gomock.Any(), habitID).Return(activeHabit(habitID, userID), nil)
				ledgerRepo.EXPECT().RecordCompletion(gomock.Any(), habitID, today).
					Return(nil, errors.New("db down"))
			},
		},
	}
	ctx := context.Background()
	for _, tc := range testCases {
		t.Run(tc.Desc, func(t *testing.T) {
			tc.MockPrepFunc()
			result, err := serv.RecordCompletion(ctx, habitID, userID, tc.Date)
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

func TestRecordCompletionArchivesAtTarget(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	habitsRepo := mocks.NewMockHabitsRepositoryI(ctrl)
	ledgerRepo := mocks.NewMockLedgerRepositoryI(ctrl)

	serv := service.NewLedgerService(habitsRepo, ledgerRepo)
	habitID := uuid.New()
	userID := uuid.New()
	today := jstdate.Today()

	h := activeHabit(habitID, userID)
	h.TargetDays = 6
	habitsRepo.EXPECT().GetByID(gomock.Any(), habitID).Return(h, nil)
	ledgerRepo.EXPECT().RecordCompletion(gomock.Any(), habitID, today).
		Return(&entity.CompletionResult{TotalInvestment: 12, TotalDays: 6}, nil)
	habitsRepo.EXPECT().Archive(gomock.Any(), habitID).Return(nil)

	result, err := serv.RecordCompletion(context.Background(), habitID, userID, today)
	assert.NoError(t, err)
	assert.Equal(t, 6, result.TotalDays)
}

func TestRecordCompletionArchiveFailureIsNotFatal(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	habitsRepo := mocks.NewMockHabitsRepositoryI(ctrl)
	ledgerRepo := mocks.NewMockLedgerRepositoryI(ctrl)

	serv := service.NewLedgerService(habitsRepo, ledgerRepo)
	habitID := uuid.New()
	userID := uuid.New()
	today := jstdate.Today()

	h := activeHabit(habitID, userID)
	h.TargetDays = 6
	habitsRepo.EXPECT().GetByID(gomock.Any(), habitID).Return(h, nil)
	ledgerRepo.EXPECT().RecordCompletion(gomock.Any(), habitID, today).
		Return(&entity.CompletionResult{TotalInvestment: 12, TotalDays: 6}, nil)
	habitsRepo.EXPECT().Archive(gomock.Any(), habitID).Return(errors.New("db down"))

	// Completion is already durable, the caller still gets the totals.
	result, err := serv.RecordCompletion(context.Background(), habitID, userID, today)
	assert.NoError(t, err)
	assert.Equal(t, 12, result.TotalInvestment)
}

func TestCompletedHabitIDsService(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	habitsRepo := mocks.NewMockHabitsRepositoryI(ctrl)
	ledgerRepo := mocks.NewMockLedgerRepositoryI(ctrl)

	serv := service.NewLedgerService(habitsRepo, ledgerRepo)
	uid := uuid.New()
	today := jstdate.Today()
	done := []uuid.UUID{uuid.New(), uuid.New()}

	t.Run("ids provided", func(t *testing.T) {
		ledgerRepo.EXPECT().CompletedHabitIDs(gomock.Any(), uid, today).Return(done, nil)
		ids, err := serv.CompletedHabitIDs(context.Background(), uid, today)
		assert.NoError(t, err)
		assert.Equal(t, done, ids)
	})
	t.Run("bad date", func(t *testing.T) {
		_, err := serv.CompletedHabitIDs(context.Background(), uid, "yesterday")
		assert.ErrorIs(t, err, errorvalues.ErrDateNotAllowed)
	})
}

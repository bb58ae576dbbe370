package service_test

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	errorvalues "github.com/mokkun/habitfolio/internal/error_values"
	"github.com/mokkun/habitfolio/internal/repository/mocks"
	"github.com/mokkun/habitfolio/internal/service"
	"github.com/mokkun/habitfolio/pkg/entity"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	service.InitValidator()
	m.Run()
}

func TestCreateHabitService(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	habitsRepo := mocks.NewMockHabitsRepositoryI(ctrl)
	goalsRepo := mocks.NewMockGoalsRepositoryI(ctrl)

	serv := service.NewHabitsService(habitsRepo, goalsRepo)
	userID := uuid.New()
	goalID := uuid.New()
	habitID := uuid.New()
	testCases := []struct {
		Desc         string
		Error        error
		Request      service.CreateHabitRequest
		MockPrepFunc func()
	}{
		{
			Desc:  "success without goal",
			Error: nil,
			Request: service.CreateHabitRequest{
				Title:      "stretching",
				TargetDays: 30,
				UnitAmount: 2,
			},
			MockPrepFunc: func() {
				habitsRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(habitID, nil)
				habitsRepo.EXPECT().GetByID(gomock.Any(), habitID).Return(&entity.Habit{
					ID:         habitID,
					UserID:     userID,
					Title:      "stretching",
					UnitAmount: 2,
					TargetDays: 30,
					Status:     entity.HabitStatusActive,
				}, nil)
			},
		},
		{
			Desc:  "success with owned goal",
			Error: nil,
			Request: service.CreateHabitRequest{
				Title:      "stretching",
				TargetDays: 30,
				UnitAmount: 2,
				GoalID:     &goalID,
			},
			MockPrepFunc: func() {
				goalsRepo.EXPECT().GetByID(gomock.Any(), goalID).Return(&entity.Goal{
					ID:     goalID,
					UserID: userID,
					Title:  "get flexible",
				}, nil)
				habitsRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(habitID, nil)
				habitsRepo.EXPECT().GetByID(gomock.Any(), habitID).Return(&entity.Habit{
					ID:     habitID,
					UserID: userID,
					GoalID: &goalID,
					Title:  "stretching",
					Status: entity.HabitStatusActive,
				}, nil)
			},
		},
		{
			Desc:  "goal of different owner",
			Error: errorvalues.ErrGoalNotFound,
			Request: service.CreateHabitRequest{
				Title:      "stretching",
				TargetDays: 30,
				UnitAmount: 2,
				GoalID:     &goalID,
			},
			MockPrepFunc: func() {
				goalsRepo.EXPECT().GetByID(gomock.Any(), goalID).Return(&entity.Goal{
					ID:     goalID,
					UserID: uuid.New(),
					Title:  "get flexible",
				}, nil)
			},
		},
	}
	ctx := context.Background()
	for _, tc := range testCases {
		t.Run(tc.Desc, func(t *testing.T) {
			tc.MockPrepFunc()
			habit, err := serv.CreateHabit(ctx, userID, &tc.Request)
			if tc.Error != nil {
				assert.EqualError(t, err, tc.Error.Error())
			} else {
				assert.NoError(t, err)
				assert.Equal(t, habitID, habit.ID)
			}
		})
	}
	t.Run("validation errors", func(t *testing.T) {
		for _, req := range []service.CreateHabitRequest{
			{Title: "", TargetDays: 30, UnitAmount: 2},
			{Title: "stretching", TargetDays: 0, UnitAmount: 2},
			{Title: "stretching", TargetDays: 400, UnitAmount: 2},
			{Title: "stretching", TargetDays: 30, UnitAmount: 4},
		} {
			habit, err := serv.CreateHabit(ctx, userID, &req)
			assert.Error(t, err)
			assert.Nil(t, habit)
		}
	})
}

func TestDeleteHabitService(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	habitsRepo := mocks.NewMockHabitsRepositoryI(ctrl)
	goalsRepo := mocks.NewMockGoalsRepositoryI(ctrl)

	serv := service.NewHabitsService(habitsRepo, goalsRepo)
	habitID := uuid.New()
	userID := uuid.New()
	testCases := []struct {
		Desc         string
		Error        error
		MockPrepFunc func()
	}{
		{
			Desc:  "deleted",
			Error: nil,
			MockPrepFunc: func() {
				habitsRepo.EXPECT().GetByID(gomock.Any(), habitID).Return(&entity.Habit{
					ID:     habitID,
					UserID: userID,
				}, nil)
				habitsRepo.EXPECT().Delete(gomock.Any(), habitID).Return(nil)
			},
		},
		{
			Desc:  "wrong owner",
			Error: errorvalues.ErrWrongOwner,
			MockPrepFunc: func() {
				habitsRepo.EXPECT().GetByID(gomock.Any(), habitID).Return(&entity.Habit{
					ID:     habitID,
					UserID: uuid.New(),
				}, nil)
			},
		},
		{
			Desc:  "not found",
			Error: errorvalues.ErrHabitNotFound,
			MockPrepFunc: func() {
				habitsRepo.EXPECT().GetByID(gomock.Any(), habitID).Return(nil, errorvalues.ErrHabitNotFound)
			},
		},
	}
	ctx := context.Background()
	for _, tc := range testCases {
		t.Run(tc.Desc, func(t *testing.T) {
			tc.MockPrepFunc()
			err := serv.DeleteHabit(ctx, habitID, userID)
			if tc.Error != nil {
				assert.EqualError(t, err, tc.Error.Error())
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGetUserHabitsService(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	habitsRepo := mocks.NewMockHabitsRepositoryI(ctrl)
	goalsRepo := mocks.NewMockGoalsRepositoryI(ctrl)

	serv := service.NewHabitsService(habitsRepo, goalsRepo)
	userID := uuid.New()
	habits := []*entity.Habit{
		{ID: uuid.New(), UserID: userID, Title: "reading"},
		{ID: uuid.New(), UserID: userID, Title: "running"},
	}
	habitsRepo.EXPECT().GetActiveByUserID(gomock.Any(), userID, 6, 0).Return(habits, nil)
	result, err := serv.GetUserHabits(context.Background(), userID, service.PaginationOpts{Limit: 6, Offset: 0})
	assert.NoError(t, err)
	assert.Equal(t, habits, result)
}

package service

import (
	"context"
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	errorvalues "github.com/mokkun/habitfolio/internal/error_values"
	"github.com/mokkun/habitfolio/internal/repository"
	"github.com/mokkun/habitfolio/pkg/entity"
)

type HabitsService struct {
	habitsRepo repository.HabitsRepositoryI
	goalsRepo  repository.GoalsRepositoryI
}

func NewHabitsService(habitsRepo repository.HabitsRepositoryI, goalsRepo repository.GoalsRepositoryI) *HabitsService {
	if habitsRepo == nil || goalsRepo == nil {
		log.Fatal("provided nil repos to habits service")
	}
	return &HabitsService{
		habitsRepo: habitsRepo,
		goalsRepo:  goalsRepo,
	}
}

func (hs *HabitsService) CreateHabit(ctx context.Context, uid uuid.UUID, req *CreateHabitRequest) (*entity.Habit, error) {
	err := validate.Struct(*req)
	if err != nil {
		if validationError, ok := err.(validator.ValidationErrors); ok {
			err = errors.New("validation error: ")
			for _, fieldErr := range validationError {
				err = errors.Join(err, fieldErr)
			}
			return nil, err
		}
		return nil, errors.New("validation unexpected error: " + err.Error())
	}
	if req.GoalID != nil {
		goal, err := hs.goalsRepo.GetByID(ctx, *req.GoalID)
		if err != nil {
			if errors.Is(err, errorvalues.ErrGoalNotFound) {
				return nil, err
			}
			return nil, errors.New("goals repository error: " + err.Error())
		}
		if goal.UserID != uid {
			return nil, errorvalues.ErrGoalNotFound
		}
	}
	h := entity.Habit{
		UserID:     uid,
		GoalID:     req.GoalID,
		Title:      req.Title,
		Trigger:    req.Trigger,
		Steps:      req.Steps,
		UnitAmount: req.UnitAmount,
		TargetDays: req.TargetDays,
	}
	id, err := hs.habitsRepo.Create(ctx, &h)
	if err != nil {
		if errors.Is(err, errorvalues.ErrGoalNotFound) {
			return nil, err
		}
		return nil, errors.New("habits repository error: " + err.Error())
	}
	habit, err := hs.habitsRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, errorvalues.ErrHabitNotFound) {
			return nil, err
		}
		return nil, errors.New("habits repository error: " + err.Error())
	}
	return habit, nil
}

func (hs *HabitsService) GetUserHabits(ctx context.Context, uid uuid.UUID, pagination PaginationOpts) ([]*entity.Habit, error) {
	habits, err := hs.habitsRepo.GetActiveByUserID(ctx, uid, pagination.Limit, pagination.Offset)
	if err != nil {
		return nil, errors.New("habits repository error: " + err.Error())
	}
	return habits, nil
}

func (hs *HabitsService) GetArchivedHabits(ctx context.Context, uid uuid.UUID) ([]*entity.Habit, error) {
	habits, err := hs.habitsRepo.GetArchivedByUserID(ctx, uid)
	if err != nil {
		return nil, errors.New("habits repository error: " + err.Error())
	}
	return habits, nil
}

func (hs *HabitsService) GetHabit(ctx context.Context, habitID, userID uuid.UUID) (*entity.Habit, error) {
	habit, err := hs.habitsRepo.GetByID(ctx, habitID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrHabitNotFound) {
			return nil, err
		}
		return nil, errors.New("habits repository error: " + err.Error())
	}
	if habit.UserID != userID {
		return nil, errorvalues.ErrWrongOwner
	}
	return habit, nil
}

func (hs *HabitsService) DeleteHabit(ctx context.Context, habitID, userID uuid.UUID) error {
	habit, err := hs.habitsRepo.GetByID(ctx, habitID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrHabitNotFound) {
			return err
		}
		return errors.New("habits repository error: " + err.Error())
	}
	if habit.UserID != userID {
		return errorvalues.ErrWrongOwner
	}
	err = hs.habitsRepo.Delete(ctx, habitID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrHabitNotFound) {
			return err
		}
		return errors.New("habits repository error: " + err.Error())
	}
	return nil
}

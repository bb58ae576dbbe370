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

type GoalsService struct {
	goalsRepo      repository.GoalsRepositoryI
	categoriesRepo repository.CategoriesRepositoryI
}

func NewGoalsService(goalsRepo repository.GoalsRepositoryI, categoriesRepo repository.CategoriesRepositoryI) *GoalsService {
	if goalsRepo == nil || categoriesRepo == nil {
		log.Fatal("provided nil repos to goals service")
	}
	return &GoalsService{
		goalsRepo:      goalsRepo,
		categoriesRepo: categoriesRepo,
	}
}

func (gs *GoalsService) CreateGoal(ctx context.Context, uid uuid.UUID, req *CreateGoalRequest) (uuid.UUID, error) {
	err := validate.Struct(*req)
	if err != nil {
		if validationError, ok := err.(validator.ValidationErrors); ok {
			err = errors.New("validation error: ")
			for _, fieldErr := range validationError {
				err = errors.Join(err, fieldErr)
			}
			return uuid.UUID{}, err
		}
		return uuid.UUID{}, errors.New("validation unexpected error: " + err.Error())
	}
	if req.CategoryID != nil {
		categories, err := gs.categoriesRepo.GetByUserID(ctx, uid)
		if err != nil {
			return uuid.UUID{}, errors.New("categories repository error: " + err.Error())
		}
		owned := false
		for _, c := range categories {
			if c.ID == *req.CategoryID {
				owned = true
				break
			}
		}
		if !owned {
			return uuid.UUID{}, errorvalues.ErrCategoryNotFound
		}
	}
	id, err := gs.goalsRepo.Create(ctx, &entity.Goal{
		UserID:      uid,
		CategoryID:  req.CategoryID,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
	})
	if err != nil {
		if errors.Is(err, errorvalues.ErrCategoryNotFound) {
			return uuid.UUID{}, err
		}
		return uuid.UUID{}, errors.New("goals repository error: " + err.Error())
	}
	return id, nil
}

func (gs *GoalsService) GetUserGoals(ctx context.Context, uid uuid.UUID) ([]*entity.Goal, error) {
	goals, err := gs.goalsRepo.GetByUserID(ctx, uid)
	if err != nil {
		return nil, errors.New("goals repository error: " + err.Error())
	}
	return goals, nil
}

func (gs *GoalsService) DeleteGoal(ctx context.Context, goalID, userID uuid.UUID) error {
	goal, err := gs.goalsRepo.GetByID(ctx, goalID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrGoalNotFound) {
			return err
		}
		return errors.New("goals repository error: " + err.Error())
	}
	if goal.UserID != userID {
		return errorvalues.ErrWrongOwner
	}
	err = gs.goalsRepo.Delete(ctx, goalID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrGoalNotFound) {
			return err
		}
		return errors.New("goals repository error: " + err.Error())
	}
	return nil
}

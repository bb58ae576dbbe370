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

type CategoriesService struct {
	repo repository.CategoriesRepositoryI
}

func NewCategoriesService(categoriesRepo repository.CategoriesRepositoryI) *CategoriesService {
	if categoriesRepo == nil {
		log.Fatal("provided nil categoriesRepo")
	}
	return &CategoriesService{
		repo: categoriesRepo,
	}
}

func (cs *CategoriesService) CreateCategory(ctx context.Context, uid uuid.UUID, req *CreateCategoryRequest) (*entity.Category, error) {
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
	category := entity.Category{
		UserID: uid,
		Name:   req.Name,
		Color:  req.Color,
	}
	id, err := cs.repo.Create(ctx, &category)
	if err != nil {
		if errors.Is(err, errorvalues.ErrCategoryExists) {
			return nil, err
		}
		return nil, errors.New("categories repository error: " + err.Error())
	}
	category.ID = id
	return &category, nil
}

func (cs *CategoriesService) GetUserCategories(ctx context.Context, uid uuid.UUID) ([]*entity.Category, error) {
	categories, err := cs.repo.GetByUserID(ctx, uid)
	if err != nil {
		return nil, errors.New("categories repository error: " + err.Error())
	}
	return categories, nil
}

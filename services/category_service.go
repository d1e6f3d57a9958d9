package services

import (
	"context"
	"errors"

	"newsroom-cms/models"
	"newsroom-cms/repositories"

	"gorm.io/gorm"
)

type CategoryService interface {
	CreateCategory(ctx context.Context, actor *models.Actor, req models.CreateCategoryRequest) (*models.Category, error)
	GetCategories(ctx context.Context) ([]models.Category, error)
	GetCategory(ctx context.Context, id uint) (*models.Category, error)
}

type categoryService struct {
	categoryRepo repositories.CategoryRepository
}

func NewCategoryService(categoryRepo repositories.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

func (s *categoryService) CreateCategory(ctx context.Context, actor *models.Actor, req models.CreateCategoryRequest) (*models.Category, error) {
	if err := requireRole(actor, models.RoleEditor); err != nil {
		return nil, err
	}

	slug, err := s.categoryRepo.UniqueSlug(ctx, req.Name)
	if err != nil {
		return nil, dbError(err, "category")
	}

	category := &models.Category{
		Name:        req.Name,
		Slug:        slug,
		Description: req.Description,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, models.ErrorConflict{Message: "category already exists"}
		}
		return nil, dbError(err, "category")
	}
	return category, nil
}

func (s *categoryService) GetCategories(ctx context.Context) ([]models.Category, error) {
	categories, err := s.categoryRepo.GetAll(ctx)
	return categories, dbError(err, "category")
}

func (s *categoryService) GetCategory(ctx context.Context, id uint) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	return category, dbError(err, "category")
}

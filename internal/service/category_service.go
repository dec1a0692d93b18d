package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Pessima-byte/Estommy-sub002/internal/dto"
	"github.com/Pessima-byte/Estommy-sub002/internal/model"
	"github.com/Pessima-byte/Estommy-sub002/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CategoryService interface {
	CreateCategory(ctx context.Context, actor Actor, req dto.CreateCategoryRequest) (*dto.CategoryResponse, error)
	UpdateCategory(ctx context.Context, actor Actor, id uuid.UUID, req dto.UpdateCategoryRequest) (*dto.CategoryResponse, error)
	DeleteCategory(ctx context.Context, actor Actor, id uuid.UUID) error
	ListCategories(ctx context.Context, includeInactive bool) ([]dto.CategoryResponse, error)
}

type categoryService struct {
	categories repository.CategoryRepository
	activity   ActivityService
	db         *gorm.DB
}

func NewCategoryService(categories repository.CategoryRepository, activity ActivityService, db *gorm.DB) CategoryService {
	return &categoryService{categories: categories, activity: activity, db: db}
}

func (s *categoryService) CreateCategory(ctx context.Context, actor Actor, req dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	c := model.Category{Name: req.Name, Description: req.Description, Active: true}
	txErr := repository.RunTx(ctx, s.db, func(tx *gorm.DB) error {
		if err := tx.Create(&c).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrDuplicateCategory
			}
			return err
		}
		return s.activity.AppendTx(tx, model.Activity{
			UserID:      actor.ID,
			UserName:    actor.Name,
			Action:      model.ActionCreate,
			EntityType:  model.EntityCategory,
			EntityID:    c.ID,
			EntityName:  c.Name,
			Description: fmt.Sprintf("Added category %s", c.Name),
		})
	})
	if txErr != nil {
		return nil, txErr
	}
	return categoryToResponse(&c), nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, actor Actor, id uuid.UUID, req dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	c, err := s.categories.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Description != nil {
		c.Description = req.Description
	}

	txErr := repository.RunTx(ctx, s.db, func(tx *gorm.DB) error {
		if err := tx.Save(c).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrDuplicateCategory
			}
			return err
		}
		return s.activity.AppendTx(tx, model.Activity{
			UserID:      actor.ID,
			UserName:    actor.Name,
			Action:      model.ActionUpdate,
			EntityType:  model.EntityCategory,
			EntityID:    c.ID,
			EntityName:  c.Name,
			Description: fmt.Sprintf("Updated category %s", c.Name),
		})
	})
	if txErr != nil {
		return nil, txErr
	}
	return categoryToResponse(c), nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, actor Actor, id uuid.UUID) error {
	c, err := s.categories.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}
	return repository.RunTx(ctx, s.db, func(tx *gorm.DB) error {
		if err := tx.Model(&model.Category{}).Where("id = ?", id).Update("active", false).Error; err != nil {
			return err
		}
		return s.activity.AppendTx(tx, model.Activity{
			UserID:      actor.ID,
			UserName:    actor.Name,
			Action:      model.ActionDelete,
			EntityType:  model.EntityCategory,
			EntityID:    c.ID,
			EntityName:  c.Name,
			Description: fmt.Sprintf("Deactivated category %s", c.Name),
		})
	})
}

func (s *categoryService) ListCategories(ctx context.Context, includeInactive bool) ([]dto.CategoryResponse, error) {
	categories, err := s.categories.List(ctx, includeInactive)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(categories))
	for i := range categories {
		out = append(out, *categoryToResponse(&categories[i]))
	}
	return out, nil
}

func categoryToResponse(c *model.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{
		ID:          c.ID.String(),
		Name:        c.Name,
		Description: c.Description,
		Active:      c.Active,
	}
}

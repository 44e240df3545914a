package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/shopbill-api/internal/domain/entity"
	"github.com/sangkips/shopbill-api/internal/domain/repository"
	"github.com/sangkips/shopbill-api/pkg/apperror"
	"github.com/sangkips/shopbill-api/pkg/utils"
)

// CategoryService handles category-related operations
type CategoryService struct {
	categoryRepo repository.CategoryRepository
}

// NewCategoryService creates a new category service
func NewCategoryService(categoryRepo repository.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// CreateCategoryInput represents the create category input
type CreateCategoryInput struct {
	Name             string
	Description      string
	Emoji            string
	Image            string
	DisplayOrder     int
	ParentCategoryID *uuid.UUID
}

// CreateCategory creates a new category
func (s *CategoryService) CreateCategory(ctx context.Context, input *CreateCategoryInput) (*entity.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperror.NewBadRequestError("Category name is required")
	}

	existing, err := s.categoryRepo.GetByName(ctx, name)
	if err != nil {
		return nil, storageError(err, "")
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Category with this name already exists")
	}

	if err := s.checkParent(ctx, uuid.Nil, input.ParentCategoryID); err != nil {
		return nil, err
	}

	emoji := strings.TrimSpace(input.Emoji)
	if emoji == "" {
		emoji = entity.DefaultCategoryEmoji
	}

	category := &entity.Category{
		CategoryCode:     utils.GenerateCategoryCode(),
		CategoryName:     name,
		Description:      input.Description,
		Emoji:            emoji,
		Image:            input.Image,
		DisplayOrder:     input.DisplayOrder,
		ParentCategoryID: input.ParentCategoryID,
		IsActive:         true,
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, storageError(err, "Category with this name already exists")
	}
	return category, nil
}

// GetCategory retrieves a category by ID
func (s *CategoryService) GetCategory(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storageError(err, "")
	}
	if category == nil {
		return nil, apperror.NewNotFoundError("Category")
	}
	return category, nil
}

// ListCategories lists categories in display order
func (s *CategoryService) ListCategories(ctx context.Context, activeOnly bool) ([]entity.Category, error) {
	categories, err := s.categoryRepo.List(ctx, activeOnly)
	if err != nil {
		return nil, storageError(err, "")
	}
	return categories, nil
}

// UpdateCategoryInput represents the update category input
type UpdateCategoryInput struct {
	CategoryID       uuid.UUID
	Name             *string
	Description      *string
	Emoji            *string
	Image            *string
	DisplayOrder     *int
	ParentCategoryID *uuid.UUID
	IsActive         *bool
}

// UpdateCategory updates a category
func (s *CategoryService) UpdateCategory(ctx context.Context, input *UpdateCategoryInput) (*entity.Category, error) {
	category, err := s.GetCategory(ctx, input.CategoryID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, apperror.NewBadRequestError("Category name cannot be empty")
		}
		if name != category.CategoryName {
			existing, err := s.categoryRepo.GetByName(ctx, name)
			if err != nil {
				return nil, storageError(err, "")
			}
			if existing != nil && existing.ID != category.ID {
				return nil, apperror.NewConflictError("Category with this name already exists")
			}
		}
		category.CategoryName = name
	}
	if input.Description != nil {
		category.Description = *input.Description
	}
	if input.Emoji != nil {
		category.Emoji = strings.TrimSpace(*input.Emoji)
		if category.Emoji == "" {
			category.Emoji = entity.DefaultCategoryEmoji
		}
	}
	if input.Image != nil {
		category.Image = *input.Image
	}
	if input.DisplayOrder != nil {
		category.DisplayOrder = *input.DisplayOrder
	}
	if input.ParentCategoryID != nil {
		if err := s.checkParent(ctx, category.ID, input.ParentCategoryID); err != nil {
			return nil, err
		}
		category.ParentCategoryID = input.ParentCategoryID
	}
	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}
	category.UpdatedAt = time.Now().UTC()

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, storageError(err, "Category with this name already exists")
	}
	return category, nil
}

// DeleteCategory deactivates a category
func (s *CategoryService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetCategory(ctx, id); err != nil {
		return err
	}
	if err := s.categoryRepo.Deactivate(ctx, id); err != nil {
		return storageError(err, "")
	}
	return nil
}

func (s *CategoryService) checkParent(ctx context.Context, self uuid.UUID, parentID *uuid.UUID) error {
	if parentID == nil {
		return nil
	}
	if *parentID == self {
		return apperror.NewBadRequestError("Category cannot be its own parent")
	}
	if _, err := s.GetCategory(ctx, *parentID); err != nil {
		return err
	}
	return nil
}

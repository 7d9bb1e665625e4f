package service

import (
	"context"
	"fmt"
	"strings"

	"catalog-api/internal/domain"
	"catalog-api/internal/repository"

	"go.uber.org/zap"
)

// CategoryService coordinates category mutations and their product cascades
type CategoryService interface {
	List(ctx context.Context) ([]*domain.Category, error)
	Create(ctx context.Context, name string) (*domain.Category, error)
	Rename(ctx context.Context, oldName, newName string) error
	Delete(ctx context.Context, name string) (*CategoryDeletion, error)
}

// CategoryDeletion reports what a category delete did to dependent products.
// CascadeErr is set when products could not be detached; the category row is
// deleted regardless.
type CategoryDeletion struct {
	Name             string
	DetachedProducts int64
	CascadeErr       error
}

type categoryService struct {
	categories repository.CategoryRepository
	products   repository.ProductRepository
	logger     *zap.Logger
}

// NewCategoryService creates a new instance of CategoryService
func NewCategoryService(
	categories repository.CategoryRepository,
	products repository.ProductRepository,
	logger *zap.Logger,
) CategoryService {
	return &categoryService{
		categories: categories,
		products:   products,
		logger:     logger,
	}
}

func (s *categoryService) List(ctx context.Context) ([]*domain.Category, error) {
	return s.categories.List(ctx)
}

// Create stores a lowercased category name
func (s *categoryService) Create(ctx context.Context, name string) (*domain.Category, error) {
	if name == "" {
		return nil, domain.BadRequest("name is required")
	}
	return s.categories.Create(ctx, strings.ToLower(name))
}

// Rename moves products to the new name first, then renames the category row.
// A failed product step leaves the category untouched; a failed category step
// leaves products already pointing at the new name.
func (s *categoryService) Rename(ctx context.Context, oldName, newName string) error {
	if newName == "" {
		return domain.BadRequest("name is required")
	}
	oldName = strings.ToLower(oldName)
	newName = strings.ToLower(newName)

	moved, err := s.products.ReassignCategory(ctx, oldName, &newName)
	if err != nil {
		return &domain.StepError{Step: domain.StepProducts, Aborted: true, Err: err}
	}

	if _, err := s.categories.Rename(ctx, oldName, newName); err != nil {
		s.logger.Error("Category rename left products on the new name",
			zap.String("from", oldName),
			zap.String("to", newName),
			zap.Int64("products", moved),
			zap.Error(err),
		)
		return &domain.StepError{Step: domain.StepCategories, Err: err}
	}

	s.logger.Info("Category renamed",
		zap.String("from", oldName),
		zap.String("to", newName),
		zap.Int64("products", moved),
	)
	return nil
}

// Delete detaches products from the category and deletes the category row.
// Only the row delete can fail the operation.
func (s *categoryService) Delete(ctx context.Context, name string) (*CategoryDeletion, error) {
	name = strings.ToLower(name)
	result := &CategoryDeletion{Name: name}

	detached, err := s.products.ReassignCategory(ctx, name, nil)
	if err != nil {
		result.CascadeErr = err
		s.logger.Warn("Failed to detach products from category",
			zap.String("category", name),
			zap.Error(err),
		)
	} else {
		result.DetachedProducts = detached
	}

	if _, err := s.categories.Delete(ctx, name); err != nil {
		return result, fmt.Errorf("failed to delete category %q: %w", name, err)
	}

	return result, nil
}

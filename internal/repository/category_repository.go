package repository

import (
	"context"
	"fmt"

	"catalog-api/internal/domain"
)

const (
	listCategoriesQuery = `SELECT name FROM categories ORDER BY name ASC`
	createCategoryQuery = `INSERT INTO categories (name) VALUES ($1) RETURNING name`
	renameCategoryQuery = `UPDATE categories SET name = $2 WHERE name = $1`
	deleteCategoryQuery = `DELETE FROM categories WHERE name = $1`
)

// CategoryRepository defines the interface for category data access
type CategoryRepository interface {
	Create(ctx context.Context, name string) (*domain.Category, error)
	List(ctx context.Context) ([]*domain.Category, error)
	Rename(ctx context.Context, oldName, newName string) (int64, error)
	Delete(ctx context.Context, name string) (int64, error)
}

type categoryRepository struct {
	db DBTX
}

// NewCategoryRepository creates a new instance of CategoryRepository
func NewCategoryRepository(db DBTX) CategoryRepository {
	return &categoryRepository{db: db}
}

// Create inserts a category and returns the stored row
func (r *categoryRepository) Create(ctx context.Context, name string) (*domain.Category, error) {
	category := &domain.Category{}
	if err := r.db.QueryRow(ctx, createCategoryQuery, name).Scan(&category.Name); err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("category %q: %w", name, domain.ErrAlreadyExists)
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return category, nil
}

// List retrieves all categories ordered by name
func (r *categoryRepository) List(ctx context.Context) ([]*domain.Category, error) {
	rows, err := r.db.Query(ctx, listCategoriesQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	categories := []*domain.Category{}
	for rows.Next() {
		category := &domain.Category{}
		if err := rows.Scan(&category.Name); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	return categories, nil
}

// Rename changes a category's name and reports how many rows matched
func (r *categoryRepository) Rename(ctx context.Context, oldName, newName string) (int64, error) {
	tag, err := r.db.Exec(ctx, renameCategoryQuery, oldName, newName)
	if err != nil {
		return 0, fmt.Errorf("failed to rename category: %w", err)
	}
	return tag.RowsAffected(), nil
}

// Delete removes a category and reports how many rows matched
func (r *categoryRepository) Delete(ctx context.Context, name string) (int64, error) {
	tag, err := r.db.Exec(ctx, deleteCategoryQuery, name)
	if err != nil {
		return 0, fmt.Errorf("failed to delete category: %w", err)
	}
	return tag.RowsAffected(), nil
}

package repository

import (
	"context"
	"errors"
	"fmt"

	"catalog-api/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const productColumns = `id, name, price, category, description, colors, images, created_at`

const (
	listProductsQuery = `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC`
	findProductQuery  = `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	findImagesQuery   = `SELECT images FROM products WHERE id = $1`
)

const createProductQuery = `
	INSERT INTO products (id, name, price, category, description, colors, images, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	RETURNING ` + productColumns

const updateProductQuery = `
	UPDATE products
	SET name = $2, price = $3, category = $4, description = $5, colors = $6, images = $7
	WHERE id = $1
	RETURNING ` + productColumns

const (
	deleteProductQuery    = `DELETE FROM products WHERE id = $1`
	reassignCategoryQuery = `UPDATE products SET category = $2 WHERE category = $1`
)

// ProductRepository defines the interface for product data access
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
	Update(ctx context.Context, product *domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	FindImages(ctx context.Context, id uuid.UUID) ([]string, error)
	List(ctx context.Context) ([]*domain.Product, error)
	// ReassignCategory sets the category of every product currently in from.
	// A nil to clears it.
	ReassignCategory(ctx context.Context, from string, to *string) (int64, error)
}

type productRepository struct {
	db DBTX
}

// NewProductRepository creates a new instance of ProductRepository
func NewProductRepository(db DBTX) ProductRepository {
	return &productRepository{db: db}
}

// Create inserts a product and returns the stored row
func (r *productRepository) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	row := r.db.QueryRow(
		ctx,
		createProductQuery,
		product.ID,
		product.Name,
		product.Price,
		product.Category,
		product.Description,
		nonNil(product.Colors),
		nonNil(product.Images),
		product.CreatedAt,
	)

	created, err := scanProduct(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return created, nil
}

// Update overwrites every mutable column of an existing product
func (r *productRepository) Update(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	row := r.db.QueryRow(
		ctx,
		updateProductQuery,
		product.ID,
		product.Name,
		product.Price,
		product.Category,
		product.Description,
		nonNil(product.Colors),
		nonNil(product.Images),
	)

	updated, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("product %s: %w", product.ID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return updated, nil
}

// Delete removes a product
func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, deleteProductQuery, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("product %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// FindByID retrieves a product by ID
func (r *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	product, err := scanProduct(r.db.QueryRow(ctx, findProductQuery, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("product %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}
	return product, nil
}

// FindImages retrieves only the image URLs of a product
func (r *productRepository) FindImages(ctx context.Context, id uuid.UUID) ([]string, error) {
	var images []string
	if err := r.db.QueryRow(ctx, findImagesQuery, id).Scan(&images); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("product %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find product images: %w", err)
	}
	return nonNil(images), nil
}

// List retrieves all products, newest first
func (r *productRepository) List(ctx context.Context) ([]*domain.Product, error) {
	rows, err := r.db.Query(ctx, listProductsQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []*domain.Product{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// ReassignCategory moves every product of one category to another, or to none
func (r *productRepository) ReassignCategory(ctx context.Context, from string, to *string) (int64, error) {
	tag, err := r.db.Exec(ctx, reassignCategoryQuery, from, to)
	if err != nil {
		return 0, fmt.Errorf("failed to reassign products of category %q: %w", from, err)
	}
	return tag.RowsAffected(), nil
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	product := &domain.Product{}
	err := row.Scan(
		&product.ID,
		&product.Name,
		&product.Price,
		&product.Category,
		&product.Description,
		&product.Colors,
		&product.Images,
		&product.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	product.Colors = nonNil(product.Colors)
	product.Images = nonNil(product.Images)
	return product, nil
}

// nonNil keeps NOT NULL array columns and JSON output as [] rather than null.
func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

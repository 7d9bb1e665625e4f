package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"catalog-api/internal/domain"
	"catalog-api/internal/repository"
	"catalog-api/internal/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProductInput carries the writable product fields as submitted by a client.
// Category and Colors are raw; normalization happens in the service.
type ProductInput struct {
	Name        string
	Price       float64
	Category    string
	Description string
	Colors      string
	Images      []ImageFile
}

// ProductDeletion reports the blob cleanup that followed a product delete.
type ProductDeletion struct {
	ID            uuid.UUID
	RemovedImages int
	CleanupErr    error
}

// ProductService coordinates product rows and their stored images
type ProductService interface {
	List(ctx context.Context) ([]*domain.Product, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	Create(ctx context.Context, input ProductInput) (*domain.Product, error)
	Update(ctx context.Context, id uuid.UUID, input ProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id uuid.UUID) (*ProductDeletion, error)
}

type productService struct {
	products repository.ProductRepository
	store    storage.ObjectStore
	logger   *zap.Logger
	now      func() time.Time
}

// NewProductService creates a new instance of ProductService
func NewProductService(
	products repository.ProductRepository,
	store storage.ObjectStore,
	logger *zap.Logger,
) ProductService {
	return &productService{
		products: products,
		store:    store,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *productService) List(ctx context.Context) ([]*domain.Product, error) {
	return s.products.List(ctx)
}

func (s *productService) Get(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	return s.products.FindByID(ctx, id)
}

// Create uploads every attached image before the row is inserted, so a
// failed upload never leaves a product behind.
func (s *productService) Create(ctx context.Context, input ProductInput) (*domain.Product, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	now := s.now()
	images, err := uploadImages(ctx, s.store, now, input.Images)
	if err != nil {
		return nil, fmt.Errorf("failed to upload images: %w", err)
	}

	product := newProduct(uuid.New(), input)
	product.Images = images
	product.CreatedAt = now.UTC()

	created, err := s.products.Create(ctx, product)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Product created",
		zap.String("product_id", created.ID.String()),
		zap.Int("images", len(created.Images)),
	)
	return created, nil
}

// Update overwrites every scalar field. Attached images replace the stored
// list wholesale; previous blobs stay in the object store.
func (s *productService) Update(ctx context.Context, id uuid.UUID, input ProductInput) (*domain.Product, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	images, err := s.products.FindImages(ctx, id)
	if err != nil {
		return nil, err
	}

	if len(input.Images) > 0 {
		previous := len(images)
		images, err = uploadImages(ctx, s.store, s.now(), input.Images)
		if err != nil {
			return nil, fmt.Errorf("failed to upload images: %w", err)
		}
		s.logger.Debug("Product images replaced",
			zap.String("product_id", id.String()),
			zap.Int("orphaned", previous),
		)
	}

	product := newProduct(id, input)
	product.Images = images

	return s.products.Update(ctx, product)
}

// Delete removes the row, then one blob per stored URL. Blob failures do
// not fail the operation.
func (s *productService) Delete(ctx context.Context, id uuid.UUID) (*ProductDeletion, error) {
	images, err := s.products.FindImages(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.products.Delete(ctx, id); err != nil {
		return nil, err
	}

	result := &ProductDeletion{ID: id}
	var errs []error
	for _, url := range images {
		key := storage.KeyFromURL(url)
		if key == "" {
			continue
		}
		if err := s.store.Remove(ctx, key); err != nil {
			errs = append(errs, err)
			continue
		}
		result.RemovedImages++
	}

	if result.CleanupErr = errors.Join(errs...); result.CleanupErr != nil {
		s.logger.Warn("Failed to remove product images",
			zap.String("product_id", id.String()),
			zap.Int("failed", len(errs)),
			zap.Error(result.CleanupErr),
		)
	}
	return result, nil
}

func validateInput(input ProductInput) error {
	if math.IsNaN(input.Price) || math.IsInf(input.Price, 0) || input.Price < 0 {
		return domain.BadRequest("price must be a non-negative number")
	}
	if len(input.Images) > MaxImagesPerProduct {
		return domain.BadRequest("at most %d images are allowed", MaxImagesPerProduct)
	}
	return nil
}

func newProduct(id uuid.UUID, input ProductInput) *domain.Product {
	return &domain.Product{
		ID:          id,
		Name:        input.Name,
		Price:       input.Price,
		Category:    NormalizeCategory(input.Category),
		Description: input.Description,
		Colors:      SplitColors(input.Colors),
	}
}

// NormalizeCategory lowercases a category reference; empty means none.
func NormalizeCategory(category string) *string {
	if category == "" {
		return nil
	}
	lower := strings.ToLower(category)
	return &lower
}

// SplitColors splits a comma separated list, trimming entries and dropping empty ones.
func SplitColors(raw string) []string {
	colors := []string{}
	for _, color := range strings.Split(raw, ",") {
		if color = strings.TrimSpace(color); color != "" {
			colors = append(colors, color)
		}
	}
	return colors
}

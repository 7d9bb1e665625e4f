package service

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"catalog-api/internal/domain"

	"github.com/google/uuid"
)

// In-memory stand-ins for the data and object stores.

type fakeCategoryRepository struct {
	names     map[string]bool
	renameErr error
	deleteErr error
}

func newFakeCategoryRepository(names ...string) *fakeCategoryRepository {
	repo := &fakeCategoryRepository{names: make(map[string]bool)}
	for _, name := range names {
		repo.names[name] = true
	}
	return repo
}

func (f *fakeCategoryRepository) Create(_ context.Context, name string) (*domain.Category, error) {
	if f.names[name] {
		return nil, fmt.Errorf("category %q: %w", name, domain.ErrAlreadyExists)
	}
	f.names[name] = true
	return &domain.Category{Name: name}, nil
}

func (f *fakeCategoryRepository) List(_ context.Context) ([]*domain.Category, error) {
	categories := []*domain.Category{}
	for name := range f.names {
		categories = append(categories, &domain.Category{Name: name})
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Name < categories[j].Name })
	return categories, nil
}

func (f *fakeCategoryRepository) Rename(_ context.Context, oldName, newName string) (int64, error) {
	if f.renameErr != nil {
		return 0, f.renameErr
	}
	if !f.names[oldName] {
		return 0, nil
	}
	delete(f.names, oldName)
	f.names[newName] = true
	return 1, nil
}

func (f *fakeCategoryRepository) Delete(_ context.Context, name string) (int64, error) {
	if f.deleteErr != nil {
		return 0, f.deleteErr
	}
	if !f.names[name] {
		return 0, nil
	}
	delete(f.names, name)
	return 1, nil
}

type fakeProductRepository struct {
	rows        map[uuid.UUID]*domain.Product
	reassignErr error
	deleteErr   error
	createErr   error
	creates     int
}

func newFakeProductRepository(products ...*domain.Product) *fakeProductRepository {
	repo := &fakeProductRepository{rows: make(map[uuid.UUID]*domain.Product)}
	for _, p := range products {
		repo.rows[p.ID] = p
	}
	return repo
}

func (f *fakeProductRepository) Create(_ context.Context, product *domain.Product) (*domain.Product, error) {
	f.creates++
	if f.createErr != nil {
		return nil, f.createErr
	}
	stored := *product
	f.rows[product.ID] = &stored
	return &stored, nil
}

func (f *fakeProductRepository) Update(_ context.Context, product *domain.Product) (*domain.Product, error) {
	existing, ok := f.rows[product.ID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	stored := *product
	stored.CreatedAt = existing.CreatedAt
	f.rows[product.ID] = &stored
	return &stored, nil
}

func (f *fakeProductRepository) Delete(_ context.Context, id uuid.UUID) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.rows[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeProductRepository) FindByID(_ context.Context, id uuid.UUID) (*domain.Product, error) {
	product, ok := f.rows[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return product, nil
}

func (f *fakeProductRepository) FindImages(_ context.Context, id uuid.UUID) ([]string, error) {
	product, ok := f.rows[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return product.Images, nil
}

func (f *fakeProductRepository) List(_ context.Context) ([]*domain.Product, error) {
	products := []*domain.Product{}
	for _, p := range f.rows {
		products = append(products, p)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].CreatedAt.After(products[j].CreatedAt) })
	return products, nil
}

func (f *fakeProductRepository) ReassignCategory(_ context.Context, from string, to *string) (int64, error) {
	if f.reassignErr != nil {
		return 0, f.reassignErr
	}
	var n int64
	for _, p := range f.rows {
		if p.Category != nil && *p.Category == from {
			if to == nil {
				p.Category = nil
			} else {
				name := *to
				p.Category = &name
			}
			n++
		}
	}
	return n, nil
}

type fakeObjectStore struct {
	mu        sync.Mutex
	blobs     map[string][]byte
	uploaded  []string
	removed   []string
	failNames map[string]error
	removeErr error
}

func newFakeObjectStore() *fakeObjectStore {
	return &fakeObjectStore{
		blobs:     make(map[string][]byte),
		failNames: make(map[string]error),
	}
}

func (f *fakeObjectStore) Upload(_ context.Context, key string, body io.Reader) (string, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for suffix, err := range f.failNames {
		if strings.HasSuffix(key, "-"+suffix) {
			return "", err
		}
	}
	f.blobs[key] = data
	f.uploaded = append(f.uploaded, key)
	return "https://cdn.example.com/product-images/" + key, nil
}

func (f *fakeObjectStore) Remove(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removed = append(f.removed, key)
	if f.removeErr != nil {
		return f.removeErr
	}
	delete(f.blobs, key)
	return nil
}

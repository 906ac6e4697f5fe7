package service

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"

	"inventory-api/internal/domain"
	"inventory-api/internal/repository"
)

// Mock repositories for testing. Ids are sequential strings; unknown ids
// behave like malformed ones in the real repositories.

type mockCategoryRepository struct {
	mu         sync.Mutex
	categories map[string]*domain.Category
	nextID     int
	findErr    error
	findCalls  int
	// createErr, when set, is returned by Create instead of inserting.
	createErr error
	// beforeDelete runs inside Delete; a non-nil result is returned instead
	// of deleting.
	beforeDelete func() error
}

func newMockCategoryRepository() *mockCategoryRepository {
	return &mockCategoryRepository{categories: make(map[string]*domain.Category)}
}

func (m *mockCategoryRepository) FindByID(ctx context.Context, id string) (*domain.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.findCalls++
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.findErr != nil {
		return nil, m.findErr
	}
	category, ok := m.categories[id]
	if !ok {
		return nil, repository.ErrCategoryNotFound
	}
	return category, nil
}

func (m *mockCategoryRepository) List(ctx context.Context) ([]*domain.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	categories := make([]*domain.Category, 0, len(m.categories))
	for _, c := range m.categories {
		categories = append(categories, c)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Name() < categories[j].Name() })
	return categories, nil
}

func (m *mockCategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	for _, c := range m.categories {
		if c.Name() == category.Name() {
			return repository.ErrCategoryAlreadyExists
		}
	}
	m.nextID++
	id := "cat-" + strconv.Itoa(m.nextID)
	if err := category.AssignID(id); err != nil {
		return err
	}
	m.categories[id] = category
	return nil
}

func (m *mockCategoryRepository) Update(ctx context.Context, category *domain.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.categories[category.ID()]; !ok {
		return repository.ErrCategoryNotFound
	}
	m.categories[category.ID()] = category
	return nil
}

func (m *mockCategoryRepository) Delete(ctx context.Context, id string) error {
	if m.beforeDelete != nil {
		if err := m.beforeDelete(); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.categories[id]; !ok {
		return repository.ErrCategoryNotFound
	}
	delete(m.categories, id)
	return nil
}

func (m *mockCategoryRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.categories[id]
	return ok, nil
}

func (m *mockCategoryRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.categories {
		if c.Name() == name {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockCategoryRepository) Count(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.categories), nil
}

type mockProductRepository struct {
	mu       sync.Mutex
	products []*domain.Product
	nextID   int
}

func newMockProductRepository() *mockProductRepository {
	return &mockProductRepository{}
}

func (m *mockProductRepository) index(id string) int {
	for i, p := range m.products {
		if p.ID() == id {
			return i
		}
	}
	return -1
}

func (m *mockProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i := m.index(id); i >= 0 {
		return m.products[i], nil
	}
	return nil, repository.ErrProductNotFound
}

func (m *mockProductRepository) List(ctx context.Context) ([]*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*domain.Product{}, m.products...), nil
}

// ListPaged returns products in insertion order, newest first.
func (m *mockProductRepository) ListPaged(ctx context.Context, filter repository.ProductFilter) ([]*domain.Product, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	matching := []*domain.Product{}
	for i := len(m.products) - 1; i >= 0; i-- {
		p := m.products[i]
		if filter.CategoryID != "" && p.CategoryID() != filter.CategoryID {
			continue
		}
		if filter.Status != nil && p.Status() != *filter.Status {
			continue
		}
		matching = append(matching, p)
	}

	start := (filter.PageNumber - 1) * filter.PageSize
	if start > len(matching) {
		start = len(matching)
	}
	end := start + filter.PageSize
	if end > len(matching) {
		end = len(matching)
	}
	return matching[start:end], len(matching), nil
}

func (m *mockProductRepository) SearchByName(ctx context.Context, term string) ([]*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	found := []*domain.Product{}
	for _, p := range m.products {
		if containsFold(p.Name(), term) {
			found = append(found, p)
		}
	}
	return found, nil
}

func (m *mockProductRepository) ListLowStock(ctx context.Context) ([]*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	found := []*domain.Product{}
	for _, p := range m.products {
		if p.StockQuantity().Quantity() < domain.LowStockThreshold {
			found = append(found, p)
		}
	}
	return found, nil
}

func (m *mockProductRepository) ListByCategoryID(ctx context.Context, categoryID string) ([]*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	found := []*domain.Product{}
	for _, p := range m.products {
		if p.CategoryID() == categoryID {
			found = append(found, p)
		}
	}
	return found, nil
}

func (m *mockProductRepository) Create(ctx context.Context, product *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	if err := product.AssignID("prod-" + strconv.Itoa(m.nextID)); err != nil {
		return err
	}
	m.products = append(m.products, product)
	return nil
}

func (m *mockProductRepository) Update(ctx context.Context, product *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.index(product.ID())
	if i < 0 {
		return repository.ErrProductNotFound
	}
	m.products[i] = product
	return nil
}

func (m *mockProductRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.index(id)
	if i < 0 {
		return repository.ErrProductNotFound
	}
	m.products = append(m.products[:i], m.products[i+1:]...)
	return nil
}

func (m *mockProductRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.index(id) >= 0, nil
}

func (m *mockProductRepository) Count(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.products), nil
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

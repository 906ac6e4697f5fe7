package transport

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"

	"inventory-api/internal/domain"
	"inventory-api/internal/repository"
)

// In-memory repositories so handlers run against the real services.

type memoryCategoryRepository struct {
	mu         sync.Mutex
	categories map[string]*domain.Category
	nextID     int
}

func newMemoryCategoryRepository() *memoryCategoryRepository {
	return &memoryCategoryRepository{categories: make(map[string]*domain.Category)}
}

func (m *memoryCategoryRepository) FindByID(ctx context.Context, id string) (*domain.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.categories[id]; ok {
		return c, nil
	}
	return nil, repository.ErrCategoryNotFound
}

func (m *memoryCategoryRepository) List(ctx context.Context) ([]*domain.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.Category, 0, len(m.categories))
	for _, c := range m.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out, nil
}

func (m *memoryCategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
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

func (m *memoryCategoryRepository) Update(ctx context.Context, category *domain.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.categories[category.ID()]; !ok {
		return repository.ErrCategoryNotFound
	}
	m.categories[category.ID()] = category
	return nil
}

func (m *memoryCategoryRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.categories[id]; !ok {
		return repository.ErrCategoryNotFound
	}
	delete(m.categories, id)
	return nil
}

func (m *memoryCategoryRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.categories[id]
	return ok, nil
}

func (m *memoryCategoryRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.categories {
		if c.Name() == name {
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryCategoryRepository) Count(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.categories), nil
}

type memoryProductRepository struct {
	mu       sync.Mutex
	products []*domain.Product
	nextID   int
	// failWith, when set, is returned by every read.
	failWith error
}

func newMemoryProductRepository() *memoryProductRepository {
	return &memoryProductRepository{}
}

func (m *memoryProductRepository) index(id string) int {
	for i, p := range m.products {
		if p.ID() == id {
			return i
		}
	}
	return -1
}

func (m *memoryProductRepository) filter(keep func(*domain.Product) bool) ([]*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	out := []*domain.Product{}
	for _, p := range m.products {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memoryProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	if i := m.index(id); i >= 0 {
		return m.products[i], nil
	}
	return nil, repository.ErrProductNotFound
}

func (m *memoryProductRepository) List(ctx context.Context) ([]*domain.Product, error) {
	return m.filter(func(*domain.Product) bool { return true })
}

func (m *memoryProductRepository) ListPaged(ctx context.Context, filter repository.ProductFilter) ([]*domain.Product, int, error) {
	matching, err := m.filter(func(p *domain.Product) bool {
		if filter.CategoryID != "" && p.CategoryID() != filter.CategoryID {
			return false
		}
		return filter.Status == nil || p.Status() == *filter.Status
	})
	if err != nil {
		return nil, 0, err
	}

	start := min((filter.PageNumber-1)*filter.PageSize, len(matching))
	end := min(start+filter.PageSize, len(matching))
	return matching[start:end], len(matching), nil
}

func (m *memoryProductRepository) SearchByName(ctx context.Context, term string) ([]*domain.Product, error) {
	return m.filter(func(p *domain.Product) bool {
		return strings.Contains(strings.ToLower(p.Name()), strings.ToLower(term))
	})
}

func (m *memoryProductRepository) ListLowStock(ctx context.Context) ([]*domain.Product, error) {
	return m.filter(func(p *domain.Product) bool { return p.IsLowStock() })
}

func (m *memoryProductRepository) ListByCategoryID(ctx context.Context, categoryID string) ([]*domain.Product, error) {
	return m.filter(func(p *domain.Product) bool { return p.CategoryID() == categoryID })
}

func (m *memoryProductRepository) Create(ctx context.Context, product *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	if err := product.AssignID("prod-" + strconv.Itoa(m.nextID)); err != nil {
		return err
	}
	m.products = append(m.products, product)
	return nil
}

func (m *memoryProductRepository) Update(ctx context.Context, product *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.index(product.ID())
	if i < 0 {
		return repository.ErrProductNotFound
	}
	m.products[i] = product
	return nil
}

func (m *memoryProductRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.index(id)
	if i < 0 {
		return repository.ErrProductNotFound
	}
	m.products = append(m.products[:i], m.products[i+1:]...)
	return nil
}

func (m *memoryProductRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.index(id) >= 0, nil
}

func (m *memoryProductRepository) Count(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return 0, m.failWith
	}
	return len(m.products), nil
}

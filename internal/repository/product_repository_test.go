package repository

import (
	"context"
	"testing"
	"time"

	"inventory-api/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestProduct(t *testing.T, repo ProductRepository, name, categoryID string, stock int, status domain.ProductStatus) *domain.Product {
	t.Helper()
	product, err := buildProduct(name, "", 1999, categoryID, stock)
	require.NoError(t, err)
	switch status {
	case domain.ProductStatusInactive:
		product.MarkAsInactive()
	case domain.ProductStatusDiscontinued:
		product.MarkAsDiscontinued()
	}
	require.NoError(t, repo.Create(context.Background(), product))
	return product
}

// steppingClock makes every entity created in the test one second newer
// than the previous one.
func steppingClock(t *testing.T) {
	t.Helper()
	original := domain.Now
	current := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	domain.Now = func() time.Time {
		current = current.Add(time.Second)
		return current
	}
	t.Cleanup(func() { domain.Now = original })
}

func productNames(products []*domain.Product) []string {
	names := make([]string, 0, len(products))
	for _, p := range products {
		names = append(names, p.Name())
	}
	return names
}

func TestProductRepository_ListPaged(t *testing.T) {
	resetTables(t)
	steppingClock(t)
	categories := NewCategoryRepository(testDB)
	products := NewProductRepository(testDB)
	ctx := context.Background()

	electronics := createTestCategory(t, categories, "Electronics")
	books := createTestCategory(t, categories, "Books")

	for _, name := range []string{"P1", "P2", "P3", "P4", "P5"} {
		createTestProduct(t, products, name, electronics.ID(), 20, domain.ProductStatusActive)
	}
	createTestProduct(t, products, "B1", books.ID(), 20, domain.ProductStatusActive)
	createTestProduct(t, products, "B2", books.ID(), 20, domain.ProductStatusInactive)

	t.Run("pages newest first", func(t *testing.T) {
		page, total, err := products.ListPaged(ctx, ProductFilter{PageNumber: 1, PageSize: 3})
		require.NoError(t, err)
		assert.Equal(t, 7, total)
		assert.Equal(t, []string{"B2", "B1", "P5"}, productNames(page))

		page, total, err = products.ListPaged(ctx, ProductFilter{PageNumber: 3, PageSize: 3})
		require.NoError(t, err)
		assert.Equal(t, 7, total)
		assert.Equal(t, []string{"P1"}, productNames(page))
	})

	t.Run("page past the end is empty", func(t *testing.T) {
		page, total, err := products.ListPaged(ctx, ProductFilter{PageNumber: 9, PageSize: 3})
		require.NoError(t, err)
		assert.Equal(t, 7, total)
		assert.Empty(t, page)
	})

	t.Run("filters combine", func(t *testing.T) {
		active := domain.ProductStatusActive
		page, total, err := products.ListPaged(ctx, ProductFilter{
			PageNumber: 1,
			PageSize:   10,
			CategoryID: books.ID(),
			Status:     &active,
		})
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		assert.Equal(t, []string{"B1"}, productNames(page))
	})

	t.Run("malformed category matches nothing", func(t *testing.T) {
		page, total, err := products.ListPaged(ctx, ProductFilter{PageNumber: 1, PageSize: 10, CategoryID: "nonexistent"})
		require.NoError(t, err)
		assert.Zero(t, total)
		assert.Empty(t, page)
	})
}

func TestProductRepository_SearchByName(t *testing.T) {
	resetTables(t)
	categories := NewCategoryRepository(testDB)
	products := NewProductRepository(testDB)
	ctx := context.Background()

	category := createTestCategory(t, categories, "Electronics")
	createTestProduct(t, products, "Wireless Mouse", category.ID(), 20, domain.ProductStatusActive)
	createTestProduct(t, products, "Gaming Mousepad", category.ID(), 20, domain.ProductStatusActive)
	createTestProduct(t, products, "Keyboard", category.ID(), 20, domain.ProductStatusActive)
	createTestProduct(t, products, "100% Cotton Cable Sleeve", category.ID(), 20, domain.ProductStatusActive)

	tests := []struct {
		name     string
		term     string
		expected []string
	}{
		{"substring is case-insensitive", "MOUSE", []string{"Gaming Mousepad", "Wireless Mouse"}},
		{"full-text word match", "wireless mouse", []string{"Wireless Mouse"}},
		{"wildcards are literal", "100%", []string{"100% Cotton Cable Sleeve"}},
		{"underscore is literal", "_", []string{}},
		{"no match", "monitor", []string{}},
		{"blank term", "   ", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found, err := products.SearchByName(ctx, tt.term)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, productNames(found))
		})
	}
}

func TestProductRepository_ListByCategoryID(t *testing.T) {
	resetTables(t)
	categories := NewCategoryRepository(testDB)
	products := NewProductRepository(testDB)
	ctx := context.Background()

	tools := createTestCategory(t, categories, "Tools")
	garden := createTestCategory(t, categories, "Garden")
	createTestProduct(t, products, "Saw", tools.ID(), 3, domain.ProductStatusActive)
	createTestProduct(t, products, "Drill", tools.ID(), 3, domain.ProductStatusActive)
	createTestProduct(t, products, "Rake", garden.ID(), 3, domain.ProductStatusActive)

	found, err := products.ListByCategoryID(ctx, tools.ID())
	require.NoError(t, err)
	assert.Equal(t, []string{"Drill", "Saw"}, productNames(found))

	found, err = products.ListByCategoryID(ctx, uuid.NewString())
	require.NoError(t, err)
	assert.Empty(t, found)

	total, err := products.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
}

func TestProductRepository_CategoryMustExist(t *testing.T) {
	resetTables(t)
	products := NewProductRepository(testDB)
	ctx := context.Background()

	product, err := buildProduct("Orphan", "", 100, uuid.NewString(), 1)
	require.NoError(t, err)
	assert.ErrorIs(t, products.Create(ctx, product), ErrProductCategoryNotExists)
	assert.Empty(t, product.ID())

	product, err = buildProduct("Orphan", "", 100, "nonexistent", 1)
	require.NoError(t, err)
	assert.ErrorIs(t, products.Create(ctx, product), ErrProductCategoryNotExists)

	total, err := products.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestProductRepository_PriceRoundTripsAtColumnLimits(t *testing.T) {
	resetTables(t)
	categories := NewCategoryRepository(testDB)
	products := NewProductRepository(testDB)
	ctx := context.Background()
	category := createTestCategory(t, categories, "Luxury")

	for _, amount := range []string{"999999999999.99", "10.500", "0.01"} {
		t.Run(amount, func(t *testing.T) {
			price, err := domain.NewMoney(decimal.RequireFromString(amount), "BRL")
			require.NoError(t, err)
			stock, err := domain.NewStockQuantity(1)
			require.NoError(t, err)
			product, err := domain.NewProduct("Item "+amount, price, category.ID(), stock, "", "")
			require.NoError(t, err)
			require.NoError(t, products.Create(ctx, product))

			found, err := products.FindByID(ctx, product.ID())
			require.NoError(t, err)
			assert.True(t, found.Price().Equal(product.Price()), "stored %s, read %s", product.Price(), found.Price())
		})
	}
}

func TestProductRepository_MissingProduct(t *testing.T) {
	resetTables(t)
	products := NewProductRepository(testDB)
	ctx := context.Background()

	_, err := products.FindByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, ErrProductNotFound)

	_, err = products.FindByID(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, ErrProductNotFound)

	assert.ErrorIs(t, products.Delete(ctx, uuid.NewString()), ErrProductNotFound)

	exists, err := products.ExistsByID(ctx, "not-a-uuid")
	require.NoError(t, err)
	assert.False(t, exists)
}

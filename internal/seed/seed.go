// Package seed fills an empty database with a small demo catalog.
package seed

import (
	"context"
	"fmt"

	"inventory-api/internal/domain"
	"inventory-api/internal/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type categorySeed struct {
	name        string
	description string
	products    []productSeed
}

type productSeed struct {
	name        string
	description string
	price       string
	stock       int
	status      domain.ProductStatus
}

var catalog = []categorySeed{
	{
		name:        "Electronics",
		description: "Electronics and technology",
		products: []productSeed{
			{"Samsung Galaxy Smartphone", "Android smartphone with 128GB of storage", "1299.99", 25, domain.ProductStatusActive},
			{"Dell Inspiron Notebook", "Notebook with an Intel i7 and 16GB RAM", "3499.99", 15, domain.ProductStatusActive},
			{"Wired Earphones", "In-ear earphones with a 3.5mm jack", "59.90", 0, domain.ProductStatusInactive},
		},
	},
	{
		name:        "Clothing",
		description: "Apparel and accessories",
		products: []productSeed{
			{"Basic T-Shirt", "Cotton t-shirt, several colours", "49.90", 100, domain.ProductStatusActive},
			{"Running Shoes", "Lightweight running shoes", "299.90", 8, domain.ProductStatusActive},
		},
	},
	{
		name:        "Food",
		description: "Groceries",
		products: []productSeed{
			{"Rice 5kg", "Bag of white rice, 5kg", "24.90", 50, domain.ProductStatusActive},
			{"Black Beans 1kg", "Bag of black beans, 1kg", "8.50", 3, domain.ProductStatusActive},
		},
	},
	{
		name:        "Books",
		description: "Books and reading material",
		products: []productSeed{
			{"Clean Code", "A handbook of agile software craftsmanship", "89.90", 12, domain.ProductStatusActive},
			{"Domain-Driven Design", "Tackling complexity in the heart of software", "99.90", 5, domain.ProductStatusActive},
		},
	},
}

// Run inserts the demo catalog when no category exists yet. It reports
// whether anything was inserted.
func Run(ctx context.Context, categories repository.CategoryRepository, products repository.ProductRepository, logger *zap.Logger) (bool, error) {
	existing, err := categories.Count(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to count categories: %w", err)
	}
	if existing > 0 {
		logger.Debug("Skipping seed, categories already present", zap.Int("categories", existing))
		return false, nil
	}

	var productCount int
	for _, c := range catalog {
		category, err := domain.NewCategory(c.name, c.description)
		if err != nil {
			return false, err
		}
		if err := categories.Create(ctx, category); err != nil {
			return false, fmt.Errorf("failed to seed category %q: %w", c.name, err)
		}

		for _, p := range c.products {
			product, err := newProduct(p, category.ID())
			if err != nil {
				return false, fmt.Errorf("invalid seed product %q: %w", p.name, err)
			}
			if err := products.Create(ctx, product); err != nil {
				return false, fmt.Errorf("failed to seed product %q: %w", p.name, err)
			}
			productCount++
		}
	}

	logger.Info("Database seeded",
		zap.Int("categories", len(catalog)),
		zap.Int("products", productCount),
	)
	return true, nil
}

func newProduct(p productSeed, categoryID string) (*domain.Product, error) {
	amount, err := decimal.NewFromString(p.price)
	if err != nil {
		return nil, err
	}
	price, err := domain.NewMoney(amount, domain.DefaultCurrency)
	if err != nil {
		return nil, err
	}
	stock, err := domain.NewStockQuantity(p.stock)
	if err != nil {
		return nil, err
	}
	return domain.NewProduct(p.name, price, categoryID, stock, p.description, p.status)
}

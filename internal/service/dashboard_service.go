package service

import (
	"context"
	"fmt"
	"strings"

	"inventory-api/internal/domain"
	"inventory-api/internal/repository"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// DashboardService aggregates inventory-wide figures.
type DashboardService interface {
	Stats(ctx context.Context) (DashboardStats, error)
	ProductsByCategory(ctx context.Context) ([]CategoryProductCount, error)
}

type dashboardService struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	currency   string
	logger     *zap.Logger
}

// NewDashboardService reports stock value in currency, falling back to
// domain.DefaultCurrency when it is empty.
func NewDashboardService(
	products repository.ProductRepository,
	categories repository.CategoryRepository,
	currency string,
	logger *zap.Logger,
) DashboardService {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		currency = domain.DefaultCurrency
	}
	return &dashboardService{
		products:   products,
		categories: categories,
		currency:   currency,
		logger:     logger,
	}
}

func (s *dashboardService) Stats(ctx context.Context) (stats DashboardStats, err error) {
	ctx, span := startSpan(ctx, "DashboardService.Stats", attribute.String("currency", s.currency))
	defer func() { endSpan(span, err) }()

	totalProducts, err := s.products.Count(ctx)
	if err != nil {
		return DashboardStats{}, fmt.Errorf("failed to count products: %w", err)
	}

	totalCategories, err := s.categories.Count(ctx)
	if err != nil {
		return DashboardStats{}, fmt.Errorf("failed to count categories: %w", err)
	}

	lowStock, err := s.products.ListLowStock(ctx)
	if err != nil {
		return DashboardStats{}, fmt.Errorf("failed to list low stock products: %w", err)
	}

	products, err := s.products.List(ctx)
	if err != nil {
		return DashboardStats{}, fmt.Errorf("failed to list products: %w", err)
	}

	total, err := domain.Zero(s.currency)
	if err != nil {
		return DashboardStats{}, err
	}

	var outOfStock, unvalued int
	for _, p := range products {
		if p.IsOutOfStock() {
			outOfStock++
		}
		if p.Status() != domain.ProductStatusActive {
			continue
		}
		if p.Price().Currency() != s.currency {
			unvalued++
			continue
		}

		value, err := p.Price().Multiply(p.StockQuantity().Quantity())
		if err != nil {
			return DashboardStats{}, fmt.Errorf("failed to value product %s: %w", p.ID(), err)
		}
		if total, err = total.Add(value); err != nil {
			return DashboardStats{}, fmt.Errorf("failed to value product %s: %w", p.ID(), err)
		}
	}

	if unvalued > 0 {
		s.logger.Debug("Products excluded from stock valuation",
			zap.Int("count", unvalued),
			zap.String("currency", s.currency),
		)
	}

	return DashboardStats{
		TotalProducts:           totalProducts,
		TotalCategories:         totalCategories,
		LowStockProductsCount:   len(lowStock),
		OutOfStockProductsCount: outOfStock,
		TotalStockValue:         total.Amount(),
		Currency:                total.Currency(),
		UnvaluedProductsCount:   unvalued,
	}, nil
}

// ProductsByCategory returns one row per category, in name order, including
// categories without products.
func (s *dashboardService) ProductsByCategory(ctx context.Context) (rows []CategoryProductCount, err error) {
	ctx, span := startSpan(ctx, "DashboardService.ProductsByCategory")
	defer func() { endSpan(span, err) }()

	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	products, err := s.products.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	counts := make(map[string]int, len(categories))
	for _, p := range products {
		counts[p.CategoryID()]++
	}

	rows = make([]CategoryProductCount, 0, len(categories))
	for _, c := range categories {
		rows = append(rows, CategoryProductCount{
			CategoryID:   c.ID(),
			CategoryName: c.Name(),
			ProductCount: counts[c.ID()],
		})
	}
	return rows, nil
}

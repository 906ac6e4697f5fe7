package service

import (
	"time"

	"inventory-api/internal/domain"

	"github.com/shopspring/decimal"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// CategoryRecord is the read model returned for a category.
type CategoryRecord struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ProductRecord is the read model returned for a product. CategoryName is
// attached after loading and may be absent.
type ProductRecord struct {
	ID            string               `json:"id"`
	Name          string               `json:"name"`
	Description   string               `json:"description,omitempty"`
	Price         decimal.Decimal      `json:"price"`
	Currency      string               `json:"currency"`
	CategoryID    string               `json:"categoryId"`
	CategoryName  string               `json:"categoryName,omitempty"`
	StockQuantity int                  `json:"stockQuantity"`
	IsLowStock    bool                 `json:"isLowStock"`
	IsOutOfStock  bool                 `json:"isOutOfStock"`
	Status        domain.ProductStatus `json:"status"`
	CreatedAt     time.Time            `json:"createdAt"`
	UpdatedAt     time.Time            `json:"updatedAt"`
}

// Page is one page of a larger result set.
type Page[T any] struct {
	Items           []T  `json:"items"`
	PageNumber      int  `json:"pageNumber"`
	PageSize        int  `json:"pageSize"`
	TotalCount      int  `json:"totalCount"`
	TotalPages      int  `json:"totalPages"`
	HasNextPage     bool `json:"hasNextPage"`
	HasPreviousPage bool `json:"hasPreviousPage"`
}

// NewPage derives the page metadata from pageNumber, pageSize and totalCount.
func NewPage[T any](items []T, pageNumber, pageSize, totalCount int) Page[T] {
	totalPages := 0
	if pageSize > 0 {
		totalPages = (totalCount + pageSize - 1) / pageSize
	}
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items:           items,
		PageNumber:      pageNumber,
		PageSize:        pageSize,
		TotalCount:      totalCount,
		TotalPages:      totalPages,
		HasNextPage:     pageNumber < totalPages,
		HasPreviousPage: pageNumber > 1,
	}
}

// NormalizePaging clamps caller-supplied paging to the supported range.
func NormalizePaging(pageNumber, pageSize int) (int, int) {
	if pageNumber < 1 {
		pageNumber = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return pageNumber, pageSize
}

// DashboardStats summarises the whole inventory. TotalStockValue only covers
// active products priced in Currency; active products priced in any other
// currency are counted in UnvaluedProductsCount instead.
type DashboardStats struct {
	TotalProducts           int             `json:"totalProducts"`
	TotalCategories         int             `json:"totalCategories"`
	LowStockProductsCount   int             `json:"lowStockProductsCount"`
	OutOfStockProductsCount int             `json:"outOfStockProductsCount"`
	TotalStockValue         decimal.Decimal `json:"totalStockValue"`
	Currency                string          `json:"currency"`
	UnvaluedProductsCount   int             `json:"unvaluedProductsCount"`
}

type CategoryProductCount struct {
	CategoryID   string `json:"categoryId"`
	CategoryName string `json:"categoryName"`
	ProductCount int    `json:"productCount"`
}

func toCategoryRecord(c *domain.Category) CategoryRecord {
	return CategoryRecord{
		ID:          c.ID(),
		Name:        c.Name(),
		Description: c.Description(),
		CreatedAt:   c.CreatedAt(),
		UpdatedAt:   c.UpdatedAt(),
	}
}

func toProductRecord(p *domain.Product) ProductRecord {
	return ProductRecord{
		ID:            p.ID(),
		Name:          p.Name(),
		Description:   p.Description(),
		Price:         p.Price().Amount(),
		Currency:      p.Price().Currency(),
		CategoryID:    p.CategoryID(),
		StockQuantity: p.StockQuantity().Quantity(),
		IsLowStock:    p.IsLowStock(),
		IsOutOfStock:  p.IsOutOfStock(),
		Status:        p.Status(),
		CreatedAt:     p.CreatedAt(),
		UpdatedAt:     p.UpdatedAt(),
	}
}

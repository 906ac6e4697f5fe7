package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"inventory-api/internal/domain"
	"inventory-api/internal/repository"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

type CreateProductInput struct {
	Name          string
	Description   string
	Price         decimal.Decimal
	Currency      string
	CategoryID    string
	StockQuantity int
}

// UpdateProductInput replaces every editable field of a product. A nil Status
// keeps the current one.
type UpdateProductInput struct {
	ID          string
	Name        string
	Description string
	Price       decimal.Decimal
	Currency    string
	CategoryID  string
	Status      *domain.ProductStatus
}

type ListProductsInput struct {
	PageNumber int
	PageSize   int
	CategoryID string
	Status     *domain.ProductStatus
}

// ProductService defines the interface for product business logic
type ProductService interface {
	Create(ctx context.Context, input CreateProductInput) (ProductRecord, error)
	Update(ctx context.Context, input UpdateProductInput) (ProductRecord, error)
	UpdateStock(ctx context.Context, id string, quantity int) (ProductRecord, error)
	AdjustStock(ctx context.Context, id string, delta int) (ProductRecord, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, input ListProductsInput) (Page[ProductRecord], error)
	GetByID(ctx context.Context, id string) (record ProductRecord, found bool, err error)
	Search(ctx context.Context, term string) ([]ProductRecord, error)
	LowStock(ctx context.Context) ([]ProductRecord, error)
	ListByCategory(ctx context.Context, categoryID string) ([]ProductRecord, error)
}

type productService struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	enricher   categoryEnricher
	logger     *zap.Logger
}

// NewProductService creates a new instance of ProductService
func NewProductService(
	products repository.ProductRepository,
	categories repository.CategoryRepository,
	logger *zap.Logger,
) ProductService {
	return &productService{
		products:   products,
		categories: categories,
		enricher:   categoryEnricher{categories: categories, logger: logger},
		logger:     logger,
	}
}

func newPrice(amount decimal.Decimal, currency string) (domain.Money, error) {
	if strings.TrimSpace(currency) == "" {
		currency = domain.DefaultCurrency
	}
	return domain.NewMoney(amount, currency)
}

func (s *productService) requireCategory(ctx context.Context, categoryID string) error {
	exists, err := s.categories.ExistsByID(ctx, categoryID)
	if err != nil {
		return fmt.Errorf("failed to check category existence: %w", err)
	}
	if !exists {
		return invalidCategory(categoryID)
	}
	return nil
}

func (s *productService) find(ctx context.Context, id string) (*domain.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, productNotFound(id)
		}
		return nil, fmt.Errorf("failed to find product: %w", err)
	}
	return product, nil
}

func (s *productService) save(ctx context.Context, product *domain.Product) error {
	if err := s.products.Update(ctx, product); err != nil {
		switch {
		case errors.Is(err, repository.ErrProductNotFound):
			return productNotFound(product.ID())
		case errors.Is(err, repository.ErrProductCategoryNotExists):
			return invalidCategory(product.CategoryID())
		}
		return fmt.Errorf("failed to update product: %w", err)
	}
	return nil
}

// Create persists nothing when the category does not exist. An empty
// currency defaults to domain.DefaultCurrency.
func (s *productService) Create(ctx context.Context, input CreateProductInput) (record ProductRecord, err error) {
	ctx, span := startSpan(ctx, "ProductService.Create", attribute.String("category.id", input.CategoryID))
	defer func() { endSpan(span, err) }()

	if err := s.requireCategory(ctx, input.CategoryID); err != nil {
		return ProductRecord{}, err
	}

	price, err := newPrice(input.Price, input.Currency)
	if err != nil {
		return ProductRecord{}, err
	}
	stock, err := domain.NewStockQuantity(input.StockQuantity)
	if err != nil {
		return ProductRecord{}, err
	}

	product, err := domain.NewProduct(input.Name, price, input.CategoryID, stock, input.Description, domain.ProductStatusActive)
	if err != nil {
		return ProductRecord{}, err
	}

	if err := s.products.Create(ctx, product); err != nil {
		if errors.Is(err, repository.ErrProductCategoryNotExists) {
			return ProductRecord{}, invalidCategory(input.CategoryID)
		}
		return ProductRecord{}, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.Info("Product created",
		zap.String("product_id", product.ID()),
		zap.String("category_id", product.CategoryID()),
	)

	return s.enricher.record(ctx, product)
}

func (s *productService) Update(ctx context.Context, input UpdateProductInput) (record ProductRecord, err error) {
	ctx, span := startSpan(ctx, "ProductService.Update", attribute.String("product.id", input.ID))
	defer func() { endSpan(span, err) }()

	product, err := s.find(ctx, input.ID)
	if err != nil {
		return ProductRecord{}, err
	}

	if err := s.requireCategory(ctx, input.CategoryID); err != nil {
		return ProductRecord{}, err
	}

	price, err := newPrice(input.Price, input.Currency)
	if err != nil {
		return ProductRecord{}, err
	}

	if err := product.Update(input.Name, price, input.CategoryID, input.Description, input.Status); err != nil {
		return ProductRecord{}, err
	}

	if err := s.save(ctx, product); err != nil {
		return ProductRecord{}, err
	}

	s.logger.Info("Product updated", zap.String("product_id", product.ID()))

	return s.enricher.record(ctx, product)
}

// UpdateStock replaces the quantity on hand; it is not a delta.
func (s *productService) UpdateStock(ctx context.Context, id string, quantity int) (record ProductRecord, err error) {
	ctx, span := startSpan(ctx, "ProductService.UpdateStock",
		attribute.String("product.id", id),
		attribute.Int("stock.quantity", quantity),
	)
	defer func() { endSpan(span, err) }()

	product, err := s.find(ctx, id)
	if err != nil {
		return ProductRecord{}, err
	}

	if err := product.UpdateStock(quantity); err != nil {
		return ProductRecord{}, err
	}

	if err := s.save(ctx, product); err != nil {
		return ProductRecord{}, err
	}

	s.logger.Info("Product stock updated",
		zap.String("product_id", id),
		zap.Int("quantity", quantity),
	)

	return s.enricher.record(ctx, product)
}

// AdjustStock receives a positive delta as incoming stock and a negative one
// as outgoing stock. A zero delta is rejected.
func (s *productService) AdjustStock(ctx context.Context, id string, delta int) (record ProductRecord, err error) {
	ctx, span := startSpan(ctx, "ProductService.AdjustStock",
		attribute.String("product.id", id),
		attribute.Int("stock.delta", delta),
	)
	defer func() { endSpan(span, err) }()

	product, err := s.find(ctx, id)
	if err != nil {
		return ProductRecord{}, err
	}

	if delta < 0 {
		err = product.RemoveStock(-delta)
	} else {
		err = product.AddStock(delta)
	}
	if err != nil {
		return ProductRecord{}, err
	}

	if err := s.save(ctx, product); err != nil {
		return ProductRecord{}, err
	}

	s.logger.Info("Product stock adjusted",
		zap.String("product_id", id),
		zap.Int("delta", delta),
		zap.Int("quantity", product.StockQuantity().Quantity()),
	)

	return s.enricher.record(ctx, product)
}

func (s *productService) Delete(ctx context.Context, id string) (err error) {
	ctx, span := startSpan(ctx, "ProductService.Delete", attribute.String("product.id", id))
	defer func() { endSpan(span, err) }()

	exists, err := s.products.ExistsByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check product existence: %w", err)
	}
	if !exists {
		return productNotFound(id)
	}

	if err := s.products.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return productNotFound(id)
		}
		return fmt.Errorf("failed to delete product: %w", err)
	}

	s.logger.Info("Product deleted", zap.String("product_id", id))

	return nil
}

// List clamps paging before querying; see NormalizePaging.
func (s *productService) List(ctx context.Context, input ListProductsInput) (page Page[ProductRecord], err error) {
	pageNumber, pageSize := NormalizePaging(input.PageNumber, input.PageSize)

	ctx, span := startSpan(ctx, "ProductService.List",
		attribute.Int("page.number", pageNumber),
		attribute.Int("page.size", pageSize),
	)
	defer func() { endSpan(span, err) }()

	products, total, err := s.products.ListPaged(ctx, repository.ProductFilter{
		PageNumber: pageNumber,
		PageSize:   pageSize,
		CategoryID: input.CategoryID,
		Status:     input.Status,
	})
	if err != nil {
		return Page[ProductRecord]{}, fmt.Errorf("failed to list products: %w", err)
	}

	records, err := s.enricher.records(ctx, products)
	if err != nil {
		return Page[ProductRecord]{}, err
	}

	return NewPage(records, pageNumber, pageSize, total), nil
}

func (s *productService) GetByID(ctx context.Context, id string) (record ProductRecord, found bool, err error) {
	ctx, span := startSpan(ctx, "ProductService.GetByID", attribute.String("product.id", id))
	defer func() { endSpan(span, err) }()

	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return ProductRecord{}, false, nil
		}
		return ProductRecord{}, false, fmt.Errorf("failed to find product: %w", err)
	}

	record, err = s.enricher.record(ctx, product)
	if err != nil {
		return ProductRecord{}, false, err
	}
	return record, true, nil
}

func (s *productService) Search(ctx context.Context, term string) (records []ProductRecord, err error) {
	ctx, span := startSpan(ctx, "ProductService.Search", attribute.String("search.term", term))
	defer func() { endSpan(span, err) }()

	if strings.TrimSpace(term) == "" {
		return nil, ErrEmptySearchTerm
	}

	products, err := s.products.SearchByName(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}

	return s.enricher.records(ctx, products)
}

func (s *productService) LowStock(ctx context.Context) (records []ProductRecord, err error) {
	ctx, span := startSpan(ctx, "ProductService.LowStock")
	defer func() { endSpan(span, err) }()

	products, err := s.products.ListLowStock(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list low stock products: %w", err)
	}

	return s.enricher.records(ctx, products)
}

func (s *productService) ListByCategory(ctx context.Context, categoryID string) (records []ProductRecord, err error) {
	ctx, span := startSpan(ctx, "ProductService.ListByCategory", attribute.String("category.id", categoryID))
	defer func() { endSpan(span, err) }()

	category, err := s.categories.FindByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, categoryNotFound(categoryID)
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}

	products, err := s.products.ListByCategoryID(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list category products: %w", err)
	}

	records = make([]ProductRecord, 0, len(products))
	for _, p := range products {
		record := toProductRecord(p)
		record.CategoryName = category.Name()
		records = append(records, record)
	}
	return records, nil
}

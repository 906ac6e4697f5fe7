package service

import (
	"context"
	"errors"
	"fmt"

	"inventory-api/internal/domain"
	"inventory-api/internal/repository"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// CategoryService defines the interface for category business logic
type CategoryService interface {
	Create(ctx context.Context, name, description string) (CategoryRecord, error)
	Update(ctx context.Context, id, name, description string) (CategoryRecord, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]CategoryRecord, error)
	// GetByID reports found=false, with a nil error, when the id does not resolve.
	GetByID(ctx context.Context, id string) (record CategoryRecord, found bool, err error)
}

type categoryService struct {
	categories repository.CategoryRepository
	products   repository.ProductRepository
	logger     *zap.Logger
}

// NewCategoryService creates a new instance of CategoryService
func NewCategoryService(
	categories repository.CategoryRepository,
	products repository.ProductRepository,
	logger *zap.Logger,
) CategoryService {
	return &categoryService{
		categories: categories,
		products:   products,
		logger:     logger,
	}
}

// Create rejects names already in use. A concurrent insert of the same name
// that slips past the pre-check fails with ErrCategoryConflict.
func (s *categoryService) Create(ctx context.Context, name, description string) (record CategoryRecord, err error) {
	ctx, span := startSpan(ctx, "CategoryService.Create")
	defer func() { endSpan(span, err) }()

	category, err := domain.NewCategory(name, description)
	if err != nil {
		return CategoryRecord{}, err
	}

	exists, err := s.categories.ExistsByName(ctx, category.Name())
	if err != nil {
		return CategoryRecord{}, fmt.Errorf("failed to check category name: %w", err)
	}
	if exists {
		return CategoryRecord{}, duplicateCategoryName(category.Name())
	}

	if err := s.categories.Create(ctx, category); err != nil {
		if errors.Is(err, repository.ErrCategoryAlreadyExists) {
			return CategoryRecord{}, ErrCategoryConflict
		}
		return CategoryRecord{}, fmt.Errorf("failed to create category: %w", err)
	}

	s.logger.Info("Category created",
		zap.String("category_id", category.ID()),
		zap.String("name", category.Name()),
	)

	return toCategoryRecord(category), nil
}

func (s *categoryService) Update(ctx context.Context, id, name, description string) (record CategoryRecord, err error) {
	ctx, span := startSpan(ctx, "CategoryService.Update", attribute.String("category.id", id))
	defer func() { endSpan(span, err) }()

	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return CategoryRecord{}, categoryNotFound(id)
		}
		return CategoryRecord{}, fmt.Errorf("failed to find category: %w", err)
	}

	if err := category.Update(name, description); err != nil {
		return CategoryRecord{}, err
	}

	if err := s.categories.Update(ctx, category); err != nil {
		switch {
		case errors.Is(err, repository.ErrCategoryNotFound):
			return CategoryRecord{}, categoryNotFound(id)
		case errors.Is(err, repository.ErrCategoryAlreadyExists):
			return CategoryRecord{}, ErrCategoryConflict
		}
		return CategoryRecord{}, fmt.Errorf("failed to update category: %w", err)
	}

	s.logger.Info("Category updated", zap.String("category_id", id))

	return toCategoryRecord(category), nil
}

// Delete refuses while any product still belongs to the category.
func (s *categoryService) Delete(ctx context.Context, id string) (err error) {
	ctx, span := startSpan(ctx, "CategoryService.Delete", attribute.String("category.id", id))
	defer func() { endSpan(span, err) }()

	exists, err := s.categories.ExistsByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check category existence: %w", err)
	}
	if !exists {
		return categoryNotFound(id)
	}

	products, err := s.products.ListByCategoryID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to list category products: %w", err)
	}
	if len(products) > 0 {
		return categoryInUse(len(products))
	}

	if err := s.categories.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrCategoryNotFound):
			return categoryNotFound(id)
		case errors.Is(err, repository.ErrCategoryReferenced):
			// A product was added after the check above; report the fresh count.
			if products, listErr := s.products.ListByCategoryID(ctx, id); listErr == nil && len(products) > 0 {
				return categoryInUse(len(products))
			}
			return ErrCategoryInUse
		}
		return fmt.Errorf("failed to delete category: %w", err)
	}

	s.logger.Info("Category deleted", zap.String("category_id", id))

	return nil
}

func (s *categoryService) List(ctx context.Context) (records []CategoryRecord, err error) {
	ctx, span := startSpan(ctx, "CategoryService.List")
	defer func() { endSpan(span, err) }()

	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	records = make([]CategoryRecord, 0, len(categories))
	for _, c := range categories {
		records = append(records, toCategoryRecord(c))
	}
	return records, nil
}

func (s *categoryService) GetByID(ctx context.Context, id string) (record CategoryRecord, found bool, err error) {
	ctx, span := startSpan(ctx, "CategoryService.GetByID", attribute.String("category.id", id))
	defer func() { endSpan(span, err) }()

	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return CategoryRecord{}, false, nil
		}
		return CategoryRecord{}, false, fmt.Errorf("failed to find category: %w", err)
	}
	return toCategoryRecord(category), true, nil
}

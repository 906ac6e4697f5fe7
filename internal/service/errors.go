package service

import (
	"fmt"

	"inventory-api/internal/domain"
)

var (
	ErrCategoryNotFound      = domain.NewNotFoundError("category not found")
	ErrProductNotFound       = domain.NewNotFoundError("product not found")
	ErrDuplicateCategoryName = domain.NewBusinessRuleError("category name already exists")
	ErrCategoryConflict      = domain.NewBusinessRuleError("category conflicts with an existing category")
	ErrCategoryInUse         = domain.NewBusinessRuleError("category has associated products")
	ErrInvalidCategory       = domain.NewBusinessRuleError("category does not exist")
	ErrEmptySearchTerm       = domain.NewValidationError("search term cannot be empty")
)

func categoryNotFound(id string) error {
	return fmt.Errorf("%w: %s", ErrCategoryNotFound, id)
}

func productNotFound(id string) error {
	return fmt.Errorf("%w: %s", ErrProductNotFound, id)
}

func invalidCategory(id string) error {
	return fmt.Errorf("%w: %s", ErrInvalidCategory, id)
}

func duplicateCategoryName(name string) error {
	return fmt.Errorf("%w: %q", ErrDuplicateCategoryName, name)
}

func categoryInUse(productCount int) error {
	return fmt.Errorf("%w: %d product(s) still reference it", ErrCategoryInUse, productCount)
}

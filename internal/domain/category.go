package domain

import (
	"strings"
	"time"
)

// MaxCategoryNameLength is enforced at the request boundary, not by the entity.
const MaxCategoryNameLength = 100

// Category groups products. Fields change only through validating methods.
type Category struct {
	id          string
	name        string
	description string
	createdAt   time.Time
	updatedAt   time.Time
}

// NewCategory creates a category with both timestamps set to now (UTC).
func NewCategory(name, description string) (*Category, error) {
	name, err := validateCategoryName(name)
	if err != nil {
		return nil, err
	}

	now := Now()
	return &Category{
		name:        name,
		description: strings.TrimSpace(description),
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// RestoreCategory rebuilds a persisted category without touching timestamps.
func RestoreCategory(id, name, description string, createdAt, updatedAt time.Time) *Category {
	return &Category{
		id:          id,
		name:        name,
		description: description,
		createdAt:   createdAt.UTC(),
		updatedAt:   updatedAt.UTC(),
	}
}

func (c *Category) ID() string           { return c.id }
func (c *Category) Name() string         { return c.name }
func (c *Category) Description() string  { return c.description }
func (c *Category) CreatedAt() time.Time { return c.createdAt }
func (c *Category) UpdatedAt() time.Time { return c.updatedAt }

// AssignID records the identity generated by storage. It can be called once.
func (c *Category) AssignID(id string) error {
	if c.id != "" {
		return ErrIDAlreadyAssigned
	}
	c.id = id
	return nil
}

// Update replaces name and description. On error the category is unchanged.
func (c *Category) Update(name, description string) error {
	name, err := validateCategoryName(name)
	if err != nil {
		return err
	}

	c.name = name
	c.description = strings.TrimSpace(description)
	c.updatedAt = Now()
	return nil
}

func validateCategoryName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyCategoryName
	}
	return name, nil
}

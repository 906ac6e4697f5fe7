package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

// MaxProductNameLength bounds the trimmed product name, in characters.
const MaxProductNameLength = 200

// ProductStatus is the lifecycle state of a product. Any status may follow
// any other.
type ProductStatus string

const (
	ProductStatusActive       ProductStatus = "Active"
	ProductStatusInactive     ProductStatus = "Inactive"
	ProductStatusDiscontinued ProductStatus = "Discontinued"
)

// ParseProductStatus accepts the canonical names case-insensitively.
func ParseProductStatus(s string) (ProductStatus, error) {
	for _, st := range []ProductStatus{ProductStatusActive, ProductStatusInactive, ProductStatusDiscontinued} {
		if strings.EqualFold(strings.TrimSpace(s), string(st)) {
			return st, nil
		}
	}
	return "", ErrInvalidStatus
}

func (s ProductStatus) Valid() bool {
	switch s {
	case ProductStatusActive, ProductStatusInactive, ProductStatusDiscontinued:
		return true
	}
	return false
}

// Product is a sellable item. It references its category by id only.
type Product struct {
	id          string
	name        string
	description string
	price       Money
	categoryID  string
	stock       StockQuantity
	status      ProductStatus
	createdAt   time.Time
	updatedAt   time.Time
}

// NewProduct validates its inputs and stamps both timestamps. An empty status
// defaults to Active.
func NewProduct(name string, price Money, categoryID string, stock StockQuantity, description string, status ProductStatus) (*Product, error) {
	name, err := validateProductName(name)
	if err != nil {
		return nil, err
	}
	if err := validateCategoryID(categoryID); err != nil {
		return nil, err
	}
	if err := validatePrice(price); err != nil {
		return nil, err
	}
	if status == "" {
		status = ProductStatusActive
	}
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	now := Now()
	return &Product{
		name:        name,
		description: strings.TrimSpace(description),
		price:       price,
		categoryID:  strings.TrimSpace(categoryID),
		stock:       stock,
		status:      status,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// RestoreProduct rebuilds a persisted product without re-stamping it.
func RestoreProduct(id, name, description string, price Money, categoryID string, stock StockQuantity, status ProductStatus, createdAt, updatedAt time.Time) *Product {
	return &Product{
		id:          id,
		name:        name,
		description: description,
		price:       price,
		categoryID:  categoryID,
		stock:       stock,
		status:      status,
		createdAt:   createdAt.UTC(),
		updatedAt:   updatedAt.UTC(),
	}
}

func (p *Product) ID() string                   { return p.id }
func (p *Product) Name() string                 { return p.name }
func (p *Product) Description() string          { return p.description }
func (p *Product) Price() Money                 { return p.price }
func (p *Product) CategoryID() string           { return p.categoryID }
func (p *Product) StockQuantity() StockQuantity { return p.stock }
func (p *Product) Status() ProductStatus        { return p.status }
func (p *Product) CreatedAt() time.Time         { return p.createdAt }
func (p *Product) UpdatedAt() time.Time         { return p.updatedAt }
func (p *Product) IsLowStock() bool             { return p.stock.IsLowStock() }
func (p *Product) IsOutOfStock() bool           { return p.stock.IsOutOfStock() }

// AssignID records the identity generated by storage. It can be called once.
func (p *Product) AssignID(id string) error {
	if p.id != "" {
		return ErrIDAlreadyAssigned
	}
	p.id = id
	return nil
}

// Update replaces every editable field. A nil status keeps the current one.
// Validation runs before anything is assigned.
func (p *Product) Update(name string, price Money, categoryID, description string, status *ProductStatus) error {
	name, err := validateProductName(name)
	if err != nil {
		return err
	}
	if err := validateCategoryID(categoryID); err != nil {
		return err
	}
	if err := validatePrice(price); err != nil {
		return err
	}
	if status != nil && !status.Valid() {
		return ErrInvalidStatus
	}

	p.name = name
	p.description = strings.TrimSpace(description)
	p.price = price
	p.categoryID = strings.TrimSpace(categoryID)
	if status != nil {
		p.status = *status
	}
	p.touch()
	return nil
}

// UpdateStock replaces the stock quantity wholesale.
func (p *Product) UpdateStock(newQuantity int) error {
	stock, err := p.stock.Update(newQuantity)
	if err != nil {
		return err
	}
	p.stock = stock
	p.touch()
	return nil
}

func (p *Product) AddStock(quantity int) error {
	if quantity <= 0 {
		return ErrNonPositiveStockMove
	}
	stock, err := p.stock.Add(quantity)
	if err != nil {
		return err
	}
	p.stock = stock
	p.touch()
	return nil
}

// RemoveStock fails with ErrInsufficientStock when quantity exceeds what is on
// hand; the stock is left untouched.
func (p *Product) RemoveStock(quantity int) error {
	if quantity <= 0 {
		return ErrNonPositiveStockMove
	}
	stock, err := p.stock.Subtract(quantity)
	if err != nil {
		return err
	}
	p.stock = stock
	p.touch()
	return nil
}

func (p *Product) MarkAsInactive() {
	p.status = ProductStatusInactive
	p.touch()
}

func (p *Product) MarkAsDiscontinued() {
	p.status = ProductStatusDiscontinued
	p.touch()
}

func (p *Product) touch() {
	p.updatedAt = Now()
}

func validateProductName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyProductName
	}
	if utf8.RuneCountInString(name) > MaxProductNameLength {
		return "", ErrProductNameTooLong
	}
	return name, nil
}

func validateCategoryID(categoryID string) error {
	if strings.TrimSpace(categoryID) == "" {
		return ErrEmptyCategoryID
	}
	return nil
}

// validatePrice rejects the zero Money, which has no currency, and amounts
// that do not fit the price column.
func validatePrice(price Money) error {
	if price.Currency() == "" {
		return ErrEmptyCurrency
	}
	return ValidatePriceAmount(price.Amount())
}

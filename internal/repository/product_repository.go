package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"inventory-api/internal/domain"

	"github.com/shopspring/decimal"
)

var (
	ErrProductNotFound          = errors.New("product not found")
	ErrProductCategoryNotExists = errors.New("product references a category that does not exist")
)

// ProductFilter selects one page of products. Filters are AND-combined and
// ignored when empty.
type ProductFilter struct {
	PageNumber int
	PageSize   int
	CategoryID string
	Status     *domain.ProductStatus
}

func (f ProductFilter) offset() int {
	if f.PageNumber < 1 {
		return 0
	}
	return (f.PageNumber - 1) * f.PageSize
}

// ProductRepository defines the interface for product data access
type ProductRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, error)
	ListPaged(ctx context.Context, filter ProductFilter) ([]*domain.Product, int, error)
	SearchByName(ctx context.Context, term string) ([]*domain.Product, error)
	ListLowStock(ctx context.Context) ([]*domain.Product, error)
	ListByCategoryID(ctx context.Context, categoryID string) ([]*domain.Product, error)
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id string) error
	ExistsByID(ctx context.Context, id string) (bool, error)
	Count(ctx context.Context) (int, error)
}

type productRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new instance of ProductRepository
func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepository{db: db}
}

const productColumns = `id, name, description, price, currency, category_id, stock_quantity, status, created_at, updated_at`

func scanProduct(row rowScanner) (*domain.Product, error) {
	var (
		id          string
		name        string
		description sql.NullString
		amount      decimal.Decimal
		currency    string
		categoryID  string
		quantity    int
		status      string
		createdAt   time.Time
		updatedAt   time.Time
	)
	err := row.Scan(&id, &name, &description, &amount, &currency, &categoryID, &quantity, &status, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	price, err := domain.NewMoney(amount, currency)
	if err != nil {
		return nil, fmt.Errorf("stored price of product %s is invalid: %w", id, err)
	}
	stock, err := domain.NewStockQuantity(quantity)
	if err != nil {
		return nil, fmt.Errorf("stored stock of product %s is invalid: %w", id, err)
	}

	return domain.RestoreProduct(
		id,
		name,
		description.String,
		price,
		categoryID,
		stock,
		domain.ProductStatus(status),
		createdAt,
		updatedAt,
	), nil
}

func (r *productRepository) queryProducts(ctx context.Context, query string, args ...any) ([]*domain.Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []*domain.Product{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// FindByID returns ErrProductNotFound for unknown or malformed ids.
func (r *productRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	uid, ok := parseID(id)
	if !ok {
		return nil, ErrProductNotFound
	}

	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	product, err := scanProduct(r.db.QueryRowContext(ctx, query, uid))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}

	return product, nil
}

// List returns every product, newest first
func (r *productRepository) List(ctx context.Context) ([]*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC`

	products, err := r.queryProducts(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// ListPaged returns the requested page, newest first, and the number of
// products matching the filter across all pages.
func (r *productRepository) ListPaged(ctx context.Context, filter ProductFilter) ([]*domain.Product, int, error) {
	conditions := []string{}
	args := []any{}
	argIndex := 1

	if filter.CategoryID != "" {
		uid, ok := parseID(filter.CategoryID)
		if !ok {
			return []*domain.Product{}, 0, nil
		}
		conditions = append(conditions, fmt.Sprintf("category_id = $%d", argIndex))
		args = append(args, uid)
		argIndex++
	}

	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIndex))
		args = append(args, string(*filter.Status))
		argIndex++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM products %s", whereClause)
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM products
		%s
		ORDER BY created_at DESC, id
		LIMIT $%d OFFSET $%d
	`, productColumns, whereClause, argIndex, argIndex+1)

	args = append(args, filter.PageSize, filter.offset())

	products, err := r.queryProducts(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}

	return products, total, nil
}

// SearchByName matches a case-insensitive substring of the name, or any
// product whose name satisfies the term as a full-text query.
func (r *productRepository) SearchByName(ctx context.Context, term string) ([]*domain.Product, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return []*domain.Product{}, nil
	}

	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE name ILIKE $1 ESCAPE '\'
		   OR to_tsvector('simple', name) @@ plainto_tsquery('simple', $2)
		ORDER BY name ASC
	`

	products, err := r.queryProducts(ctx, query, "%"+escapeLike(term)+"%", term)
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	return products, nil
}

// ListLowStock returns products below the low-stock threshold, lowest first.
func (r *productRepository) ListLowStock(ctx context.Context) ([]*domain.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE stock_quantity < $1
		ORDER BY stock_quantity ASC, name ASC
	`

	products, err := r.queryProducts(ctx, query, domain.LowStockThreshold)
	if err != nil {
		return nil, fmt.Errorf("failed to list low stock products: %w", err)
	}
	return products, nil
}

func (r *productRepository) ListByCategoryID(ctx context.Context, categoryID string) ([]*domain.Product, error) {
	uid, ok := parseID(categoryID)
	if !ok {
		return []*domain.Product{}, nil
	}

	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE category_id = $1
		ORDER BY name ASC
	`

	products, err := r.queryProducts(ctx, query, uid)
	if err != nil {
		return nil, fmt.Errorf("failed to list products by category: %w", err)
	}
	return products, nil
}

// Create inserts the product and assigns the id generated by the database.
func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	categoryID, ok := parseID(product.CategoryID())
	if !ok {
		return ErrProductCategoryNotExists
	}

	query := `
		INSERT INTO products (name, description, price, currency, category_id, stock_quantity, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`

	var id string
	err := r.db.QueryRowContext(
		ctx,
		query,
		product.Name(),
		nullString(product.Description()),
		product.Price().Amount(),
		product.Price().Currency(),
		categoryID,
		product.StockQuantity().Quantity(),
		string(product.Status()),
		product.CreatedAt(),
		product.UpdatedAt(),
	).Scan(&id)

	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrProductCategoryNotExists
		}
		return fmt.Errorf("failed to create product: %w", err)
	}

	return product.AssignID(id)
}

// Update replaces the stored product with the entity's current state
func (r *productRepository) Update(ctx context.Context, product *domain.Product) error {
	uid, ok := parseID(product.ID())
	if !ok {
		return ErrProductNotFound
	}
	categoryID, ok := parseID(product.CategoryID())
	if !ok {
		return ErrProductCategoryNotExists
	}

	query := `
		UPDATE products
		SET name = $2, description = $3, price = $4, currency = $5, category_id = $6,
		    stock_quantity = $7, status = $8, updated_at = $9
		WHERE id = $1
	`

	result, err := r.db.ExecContext(
		ctx,
		query,
		uid,
		product.Name(),
		nullString(product.Description()),
		product.Price().Amount(),
		product.Price().Currency(),
		categoryID,
		product.StockQuantity().Quantity(),
		string(product.Status()),
		product.UpdatedAt(),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrProductCategoryNotExists
		}
		return fmt.Errorf("failed to update product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}

// Delete removes a product from the database
func (r *productRepository) Delete(ctx context.Context, id string) error {
	uid, ok := parseID(id)
	if !ok {
		return ErrProductNotFound
	}

	result, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, uid)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}

func (r *productRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	uid, ok := parseID(id)
	if !ok {
		return false, nil
	}

	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM products WHERE id = $1)`, uid).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check product existence: %w", err)
	}
	return exists, nil
}

func (r *productRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return total, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

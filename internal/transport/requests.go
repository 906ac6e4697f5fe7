package transport

import (
	"net/http"
	"strconv"

	"inventory-api/internal/domain"
	"inventory-api/internal/middleware"

	"github.com/shopspring/decimal"
)

func init() {
	// Prices go out as JSON numbers, the same shape clients send them in.
	decimal.MarshalJSONWithoutQuotes = true
}

// CategoryRequest is the payload for creating or replacing a category
type CategoryRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=500"`
}

// CreateProductRequest represents the product creation payload
type CreateProductRequest struct {
	Name          string          `json:"name" validate:"required,max=200"`
	Description   string          `json:"description" validate:"max=1000"`
	Price         decimal.Decimal `json:"price" validate:"gt=0,money"`
	Currency      string          `json:"currency" validate:"required,len=3"`
	CategoryID    string          `json:"categoryId" validate:"required"`
	StockQuantity int             `json:"stockQuantity" validate:"gte=0"`
}

// UpdateProductRequest replaces every editable field. An omitted status
// keeps the current one.
type UpdateProductRequest struct {
	Name        string          `json:"name" validate:"required,max=200"`
	Description string          `json:"description" validate:"max=1000"`
	Price       decimal.Decimal `json:"price" validate:"gt=0,money"`
	Currency    string          `json:"currency" validate:"required,len=3"`
	CategoryID  string          `json:"categoryId" validate:"required"`
	Status      string          `json:"status" validate:"omitempty,oneof=Active Inactive Discontinued"`
}

// UpdateStockRequest sets the absolute quantity on hand
type UpdateStockRequest struct {
	StockQuantity *int `json:"stockQuantity" validate:"required,gte=0"`
}

// AdjustStockRequest moves stock by a signed amount
type AdjustStockRequest struct {
	Delta int `json:"delta" validate:"ne=0"`
}

func (r UpdateProductRequest) status() (*domain.ProductStatus, error) {
	if r.Status == "" {
		return nil, nil
	}
	status, err := domain.ParseProductStatus(r.Status)
	if err != nil {
		return nil, err
	}
	return &status, nil
}

// decodeRequest decodes and validates the body into v, writing the 400
// response itself when that fails.
func decodeRequest(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := middleware.DecodeAndValidate(r, v); err != nil {
		middleware.RespondWithDecodeError(w, err)
		return false
	}
	return true
}

// queryInt reads an integer query parameter. Missing or malformed values
// yield zero so paging falls back to its defaults.
func queryInt(r *http.Request, name string) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}

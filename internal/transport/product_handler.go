package transport

import (
	"net/http"

	"inventory-api/internal/domain"
	"inventory-api/internal/middleware"
	"inventory-api/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ProductHandler handles HTTP requests for product operations
type ProductHandler struct {
	productService service.ProductService
	logger         *zap.Logger
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService service.ProductService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		logger:         logger,
	}
}

// RegisterRoutes registers all product routes. Writes go through protect.
func (h *ProductHandler) RegisterRoutes(r chi.Router, protect func(http.Handler) http.Handler) {
	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/search", h.Search)
		r.Get("/low-stock", h.LowStock)
		r.Get("/{id}", h.GetByID)

		r.Group(func(r chi.Router) {
			r.Use(protect)
			r.Post("/", h.Create)
			r.Put("/{id}", h.Update)
			r.Put("/{id}/stock", h.UpdateStock)
			r.Patch("/{id}/stock", h.AdjustStock)
			r.Delete("/{id}", h.Delete)
		})
	})
}

// List returns one page of products, optionally filtered by category and status
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	input := service.ListProductsInput{
		PageNumber: queryInt(r, "pageNumber"),
		PageSize:   queryInt(r, "pageSize"),
		CategoryID: r.URL.Query().Get("categoryId"),
	}

	if raw := r.URL.Query().Get("status"); raw != "" {
		status, err := domain.ParseProductStatus(raw)
		if err != nil {
			middleware.RespondWithServiceError(w, r, err, h.logger)
			return
		}
		input.Status = &status
	}

	page, err := h.productService.List(r.Context(), input)
	if err != nil {
		middleware.RespondWithServiceError(w, r, err, h.logger)
		return
	}
	middleware.RespondWithSuccess(w, http.StatusOK, page, "")
}

// GetByID returns a single product
func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	product, found, err := h.productService.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithServiceError(w, r, err, h.logger)
		return
	}
	if !found {
		middleware.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}
	middleware.RespondWithSuccess(w, http.StatusOK, product, "")
}

// Search matches products by name
func (h *ProductHandler) Search(w http.ResponseWriter, r *http.Request) {
	products, err := h.productService.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		middleware.RespondWithServiceError(w, r, err, h.logger)
		return
	}
	middleware.RespondWithSuccess(w, http.StatusOK, products, "")
}

// LowStock lists products below the low-stock threshold
func (h *ProductHandler) LowStock(w http.ResponseWriter, r *http.Request) {
	products, err := h.productService.LowStock(r.Context())
	if err != nil {
		middleware.RespondWithServiceError(w, r, err, h.logger)
		return
	}
	middleware.RespondWithSuccess(w, http.StatusOK, products, "")
}

// Create handles product creation
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	product, err := h.productService.Create(r.Context(), service.CreateProductInput{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		Currency:      req.Currency,
		CategoryID:    req.CategoryID,
		StockQuantity: req.StockQuantity,
	})
	if err != nil {
		middleware.RespondWithServiceError(w, r, err, h.logger)
		return
	}

	w.Header().Set("Location", "/api/products/"+product.ID)
	middleware.RespondWithSuccess(w, http.StatusCreated, product, "Product created successfully")
}

// Update replaces a product's editable fields
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateProductRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	status, err := req.status()
	if err != nil {
		middleware.RespondWithServiceError(w, r, err, h.logger)
		return
	}

	product, err := h.productService.Update(r.Context(), service.UpdateProductInput{
		ID:          chi.URLParam(r, "id"),
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Currency:    req.Currency,
		CategoryID:  req.CategoryID,
		Status:      status,
	})
	if err != nil {
		middleware.RespondWithServiceError(w, r, err, h.logger)
		return
	}
	middleware.RespondWithSuccess(w, http.StatusOK, product, "Product updated successfully")
}

// UpdateStock sets the quantity on hand
func (h *ProductHandler) UpdateStock(w http.ResponseWriter, r *http.Request) {
	var req UpdateStockRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	product, err := h.productService.UpdateStock(r.Context(), chi.URLParam(r, "id"), *req.StockQuantity)
	if err != nil {
		middleware.RespondWithServiceError(w, r, err, h.logger)
		return
	}
	middleware.RespondWithSuccess(w, http.StatusOK, product, "Stock updated successfully")
}

// AdjustStock adds or removes stock
func (h *ProductHandler) AdjustStock(w http.ResponseWriter, r *http.Request) {
	var req AdjustStockRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	product, err := h.productService.AdjustStock(r.Context(), chi.URLParam(r, "id"), req.Delta)
	if err != nil {
		middleware.RespondWithServiceError(w, r, err, h.logger)
		return
	}
	middleware.RespondWithSuccess(w, http.StatusOK, product, "Stock adjusted successfully")
}

// Delete removes a product
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.productService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		middleware.RespondWithServiceError(w, r, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

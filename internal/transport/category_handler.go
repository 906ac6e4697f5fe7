package transport

import (
	"net/http"

	"inventory-api/internal/middleware"
	"inventory-api/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CategoryHandler handles HTTP requests for category operations
type CategoryHandler struct {
	categoryService service.CategoryService
	productService  service.ProductService
	logger          *zap.Logger
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService service.CategoryService, productService service.ProductService, logger *zap.Logger) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
		productService:  productService,
		logger:          logger,
	}
}

// RegisterRoutes registers all category routes. Writes go through protect.
func (h *CategoryHandler) RegisterRoutes(r chi.Router, protect func(http.Handler) http.Handler) {
	r.Route("/api/categories", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{id}", h.GetByID)
		r.Get("/{id}/products", h.ListProducts)

		r.Group(func(r chi.Router) {
			r.Use(protect)
			r.Post("/", h.Create)
			r.Put("/{id}", h.Update)
			r.Delete("/{id}", h.Delete)
		})
	})
}

// List returns every category ordered by name
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categoryService.List(r.Context())
	if err != nil {
		middleware.RespondWithServiceError(w, r, err, h.logger)
		return
	}
	middleware.RespondWithSuccess(w, http.StatusOK, categories, "")
}

// GetByID returns a single category
func (h *CategoryHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	category, found, err := h.categoryService.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithServiceError(w, r, err, h.logger)
		return
	}
	if !found {
		middleware.RespondWithError(w, http.StatusNotFound, "Category not found")
		return
	}
	middleware.RespondWithSuccess(w, http.StatusOK, category, "")
}

// ListProducts returns the products filed under a category
func (h *CategoryHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.productService.ListByCategory(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithServiceError(w, r, err, h.logger)
		return
	}
	middleware.RespondWithSuccess(w, http.StatusOK, products, "")
}

// Create handles category creation
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	category, err := h.categoryService.Create(r.Context(), req.Name, req.Description)
	if err != nil {
		middleware.RespondWithServiceError(w, r, err, h.logger)
		return
	}

	w.Header().Set("Location", "/api/categories/"+category.ID)
	middleware.RespondWithSuccess(w, http.StatusCreated, category, "Category created successfully")
}

// Update replaces a category's name and description
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	category, err := h.categoryService.Update(r.Context(), chi.URLParam(r, "id"), req.Name, req.Description)
	if err != nil {
		middleware.RespondWithServiceError(w, r, err, h.logger)
		return
	}
	middleware.RespondWithSuccess(w, http.StatusOK, category, "Category updated successfully")
}

// Delete removes a category that no product references
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.categoryService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		middleware.RespondWithServiceError(w, r, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

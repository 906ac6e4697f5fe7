package transport

import (
	"net/http"

	"inventory-api/internal/middleware"
	"inventory-api/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// DashboardHandler serves the read-only inventory overview
type DashboardHandler struct {
	dashboardService service.DashboardService
	productService   service.ProductService
	logger           *zap.Logger
}

func NewDashboardHandler(dashboardService service.DashboardService, productService service.ProductService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		productService:   productService,
		logger:           logger,
	}
}

func (h *DashboardHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/dashboard", func(r chi.Router) {
		r.Get("/stats", h.Stats)
		r.Get("/low-stock", h.LowStock)
		r.Get("/products-by-category", h.ProductsByCategory)
	})
}

func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.dashboardService.Stats(r.Context())
	if err != nil {
		middleware.RespondWithServiceError(w, r, err, h.logger)
		return
	}
	middleware.RespondWithSuccess(w, http.StatusOK, stats, "")
}

func (h *DashboardHandler) LowStock(w http.ResponseWriter, r *http.Request) {
	products, err := h.productService.LowStock(r.Context())
	if err != nil {
		middleware.RespondWithServiceError(w, r, err, h.logger)
		return
	}
	middleware.RespondWithSuccess(w, http.StatusOK, products, "")
}

func (h *DashboardHandler) ProductsByCategory(w http.ResponseWriter, r *http.Request) {
	rows, err := h.dashboardService.ProductsByCategory(r.Context())
	if err != nil {
		middleware.RespondWithServiceError(w, r, err, h.logger)
		return
	}
	middleware.RespondWithSuccess(w, http.StatusOK, rows, "")
}

package transport

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"inventory-api/internal/middleware"
	"inventory-api/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Errors  []string        `json:"errors"`
}

type testAPI struct {
	router     chi.Router
	categories *memoryCategoryRepository
	products   *memoryProductRepository
}

func passthrough(next http.Handler) http.Handler { return next }

// newTestAPI mounts every handler on a router backed by in-memory repositories.
func newTestAPI(t *testing.T, protect func(http.Handler) http.Handler) *testAPI {
	t.Helper()

	logger := zaptest.NewLogger(t)
	categories := newMemoryCategoryRepository()
	products := newMemoryProductRepository()

	categoryService := service.NewCategoryService(categories, products, logger)
	productService := service.NewProductService(products, categories, logger)
	dashboardService := service.NewDashboardService(products, categories, "BRL", logger)

	router := chi.NewRouter()
	router.Use(middleware.ErrorHandlingMiddleware(logger))
	NewCategoryHandler(categoryService, productService, logger).RegisterRoutes(router, protect)
	NewProductHandler(productService, logger).RegisterRoutes(router, protect)
	NewDashboardHandler(dashboardService, productService, logger).RegisterRoutes(router)

	return &testAPI{router: router, categories: categories, products: products}
}

func (a *testAPI) do(t *testing.T, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.NewDecoder(w.Body).Decode(&env), "body: %s", w.Body.String())
	return env
}

func decodeData(t *testing.T, env envelope, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(env.Data, v))
}

// createCategory posts a category and returns the stored record.
func (a *testAPI) createCategory(t *testing.T, name string) service.CategoryRecord {
	t.Helper()
	w := a.do(t, http.MethodPost, "/api/categories", CategoryRequest{Name: name})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var record service.CategoryRecord
	decodeData(t, decodeEnvelope(t, w), &record)
	return record
}

// createProduct posts a product priced at 10 BRL and returns the stored record.
func (a *testAPI) createProduct(t *testing.T, name, categoryID string, stock int) service.ProductRecord {
	t.Helper()
	w := a.do(t, http.MethodPost, "/api/products", map[string]any{
		"name":          name,
		"price":         10,
		"currency":      "BRL",
		"categoryId":    categoryID,
		"stockQuantity": stock,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var record service.ProductRecord
	decodeData(t, decodeEnvelope(t, w), &record)
	return record
}

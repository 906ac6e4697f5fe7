package server

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"inventory-api/internal/config"
	"inventory-api/internal/database"
	"inventory-api/internal/logger"
	custommiddleware "inventory-api/internal/middleware"
	"inventory-api/internal/repository"
	"inventory-api/internal/service"
	"inventory-api/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	db     *sql.DB
	redis  *redis.Client
}

// NewServer wires repositories, services and handlers onto a chi router.
// redisClient may be nil when rate limiting is disabled.
func NewServer(cfg *config.Config, logger *zap.Logger, db *sql.DB, redisClient *redis.Client) (*Server, error) {
	router, err := NewRouter(cfg, logger, db, redisClient)
	if err != nil {
		return nil, err
	}

	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config: cfg,
		logger: logger,
		db:     db,
		redis:  redisClient,
	}

	return server, nil
}

// NewRouter builds the HTTP handler for the whole API.
func NewRouter(cfg *config.Config, log *zap.Logger, db *sql.DB, redisClient *redis.Client) (http.Handler, error) {
	router := chi.NewRouter()

	for _, mw := range custommiddleware.DefaultMiddlewareStack() {
		router.Use(mw)
	}
	router.Use(custommiddleware.LoggingMiddleware(log))
	router.Use(custommiddleware.ErrorHandlingMiddleware(log))
	router.Use(custommiddleware.CORSMiddleware(cfg.CORS.AllowedOrigins, cfg.IsDevelopment()))

	rateLimited := cfg.RateLimit.Enabled && redisClient != nil
	if rateLimited {
		router.Use(custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
			RequestsPerWindow: cfg.RateLimit.Requests,
			Window:            cfg.RateLimit.Window,
			KeyPrefix:         "ratelimit",
		}, log))
	}

	protect, err := writeGuard(cfg, log, redisClient, rateLimited)
	if err != nil {
		return nil, err
	}

	// Initialize repositories
	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)

	// Initialize services
	categoryService := service.NewCategoryService(categoryRepo, productRepo, log)
	productService := service.NewProductService(productRepo, categoryRepo, log)
	dashboardService := service.NewDashboardService(productRepo, categoryRepo, cfg.Dashboard.Currency, log)

	// Register routes
	transport.NewHealthHandler(func(ctx context.Context) map[string]string {
		return database.Health(ctx, db)
	}).RegisterRoutes(router)
	transport.NewCategoryHandler(categoryService, productService, log).RegisterRoutes(router, protect)
	transport.NewProductHandler(productService, log).RegisterRoutes(router, protect)
	transport.NewDashboardHandler(dashboardService, productService, log).RegisterRoutes(router)

	return otelhttp.NewHandler(router, logger.ServiceName), nil
}

// writeGuard returns the middleware chain in front of every mutating route.
// With auth disabled writes are open.
func writeGuard(cfg *config.Config, log *zap.Logger, redisClient *redis.Client, rateLimited bool) (func(http.Handler) http.Handler, error) {
	if !cfg.Auth.Enabled {
		log.Warn("Authentication disabled, write endpoints are open")
		return func(next http.Handler) http.Handler { return next }, nil
	}

	verifier, err := custommiddleware.NewTokenVerifier(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to configure token verification: %w", err)
	}

	chain := []func(http.Handler) http.Handler{
		custommiddleware.AuthMiddleware(verifier, log),
		custommiddleware.RequireRole([]string{cfg.Auth.WriteRole}, log),
	}
	if rateLimited {
		chain = append(chain, custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
			RequestsPerWindow: cfg.RateLimit.Requests,
			Window:            cfg.RateLimit.Window,
			KeyPrefix:         "ratelimit:writes",
		}, log))
	}

	return chi.Chain(chain...).Handler, nil
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Error("Failed to close redis connection", zap.Error(err))
		}
	}

	// Close database connection
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}

package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"catalog-api/internal/config"
	custommiddleware "catalog-api/internal/middleware"
	"catalog-api/internal/repository"
	"catalog-api/internal/service"
	"catalog-api/internal/storage"
	"catalog-api/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Pinger reports whether the data store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// Services are the coordinators the HTTP surface dispatches to
type Services struct {
	Auth       service.AuthService
	Categories service.CategoryService
	Products   service.ProductService
}

type Server struct {
	*http.Server
	logger *zap.Logger
	pool   *pgxpool.Pool
}

func NewServer(cfg *config.Config, logger *zap.Logger, pool *pgxpool.Pool, store storage.ObjectStore) *Server {
	categoryRepo := repository.NewCategoryRepository(pool)
	productRepo := repository.NewProductRepository(pool)

	services := Services{
		Auth:       service.NewAuthService(cfg.Auth.AdminPassword, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
		Categories: service.NewCategoryService(categoryRepo, productRepo, logger),
		Products:   service.NewProductService(productRepo, store, logger),
	}

	return &Server{
		Server: &http.Server{
			Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:           NewRouter(cfg, logger, services, pool),
			IdleTimeout:       time.Minute,
			ReadHeaderTimeout: 10 * time.Second,
			// Multipart uploads and the Cloudinary round trips share this budget.
			ReadTimeout:  2 * time.Minute,
			WriteTimeout: 2 * time.Minute,
		},
		logger: logger,
		pool:   pool,
	}
}

// NewRouter wires middleware, the gate and every route onto a chi router
func NewRouter(cfg *config.Config, logger *zap.Logger, services Services, db Pinger) http.Handler {
	router := chi.NewRouter()

	router.Use(custommiddleware.DefaultMiddlewareStack()...)
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.CORSMiddleware(cfg.CORS.AllowedOrigins, cfg.IsDevelopment()))

	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Catalog API is running"))
	})

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			logger.Warn("Health check failed", zap.Error(err))
			custommiddleware.RespondWithJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
		custommiddleware.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	authMiddleware := custommiddleware.AuthMiddleware(services.Auth, logger)
	requireAdmin := custommiddleware.RequireAdmin(logger)
	protect := func(next http.Handler) http.Handler {
		return authMiddleware(requireAdmin(next))
	}

	transport.NewAuthHandler(services.Auth, logger).RegisterRoutes(router)
	transport.NewCategoryHandler(services.Categories, logger).RegisterRoutes(router, protect)
	transport.NewProductHandler(services.Products, cfg.Server.MaxUploadMemory, logger).RegisterRoutes(router, protect)

	return router
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if s.pool != nil {
		s.pool.Close()
	}

	_ = s.logger.Sync()
	return nil
}

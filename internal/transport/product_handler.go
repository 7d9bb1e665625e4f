package transport

import (
	"net/http"

	"catalog-api/internal/middleware"
	"catalog-api/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const productNotFound = "Product not found"

// ProductHandler handles HTTP requests for products
type ProductHandler struct {
	productService  service.ProductService
	maxUploadMemory int64
	logger          *zap.Logger
}

// NewProductHandler creates a new ProductHandler. maxUploadMemory bounds the
// multipart bytes kept in memory; larger parts spill to temporary files.
func NewProductHandler(productService service.ProductService, maxUploadMemory int64, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		productService:  productService,
		maxUploadMemory: maxUploadMemory,
		logger:          logger,
	}
}

// RegisterRoutes registers the product routes; mutations run behind protect
func (h *ProductHandler) RegisterRoutes(r chi.Router, protect func(http.Handler) http.Handler) {
	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)

		r.Group(func(r chi.Router) {
			r.Use(protect)
			r.Post("/", h.Create)
			r.Put("/{id}", h.Update)
			r.Delete("/{id}", h.Delete)
		})
	})
}

// List returns every product, newest first
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.productService.List(r.Context())
	if err != nil {
		respondWithServiceError(w, h.logger, err, productNotFound)
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, products)
}

// Get returns a single product
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(r)
	if !ok {
		middleware.RespondWithMessage(w, http.StatusNotFound, productNotFound)
		return
	}

	product, err := h.productService.Get(r.Context(), id)
	if err != nil {
		respondWithServiceError(w, h.logger, err, productNotFound)
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// Create stores a new product with its uploaded images
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	input, err := parseProductInput(r, h.maxUploadMemory)
	if err != nil {
		h.logger.Debug("Product body rejected", zap.Error(err))
		respondWithServiceError(w, h.logger, err, productNotFound)
		return
	}

	product, err := h.productService.Create(r.Context(), input)
	if err != nil {
		respondWithServiceError(w, h.logger, err, productNotFound)
		return
	}
	middleware.RespondWithJSON(w, http.StatusCreated, product)
}

// Update overwrites a product, replacing its images when files are attached
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(r)
	if !ok {
		middleware.RespondWithMessage(w, http.StatusNotFound, productNotFound)
		return
	}

	input, err := parseProductInput(r, h.maxUploadMemory)
	if err != nil {
		h.logger.Debug("Product body rejected", zap.Error(err))
		respondWithServiceError(w, h.logger, err, productNotFound)
		return
	}

	product, err := h.productService.Update(r.Context(), id, input)
	if err != nil {
		respondWithServiceError(w, h.logger, err, productNotFound)
		return
	}

	h.logger.Info("Product updated", zap.String("product_id", id.String()))
	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// Delete removes a product and then its stored images
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(r)
	if !ok {
		middleware.RespondWithMessage(w, http.StatusNotFound, productNotFound)
		return
	}

	result, err := h.productService.Delete(r.Context(), id)
	if err != nil {
		respondWithServiceError(w, h.logger, err, productNotFound)
		return
	}

	h.logger.Info("Product deleted",
		zap.String("product_id", id.String()),
		zap.Int("removed_images", result.RemovedImages),
		zap.Bool("cleanup_failed", result.CleanupErr != nil),
	)
	middleware.RespondWithMessage(w, http.StatusOK, "Product deleted")
}

// productID parses the {id} route parameter; anything but a UUID cannot
// name a product.
func productID(r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	return id, err == nil
}

package transport

import (
	"net/http"

	"catalog-api/internal/middleware"
	"catalog-api/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CategoryRequest is the body of category create and rename
type CategoryRequest struct {
	Name string `json:"name" validate:"required"`
}

// CategoryHandler handles HTTP requests for categories
type CategoryHandler struct {
	categoryService service.CategoryService
	logger          *zap.Logger
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService service.CategoryService, logger *zap.Logger) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
		logger:          logger,
	}
}

// RegisterRoutes registers the category routes; mutations run behind protect
func (h *CategoryHandler) RegisterRoutes(r chi.Router, protect func(http.Handler) http.Handler) {
	r.Route("/api/categories", func(r chi.Router) {
		r.Get("/", h.List)

		r.Group(func(r chi.Router) {
			r.Use(protect)
			r.Post("/", h.Create)
			r.Put("/{name}", h.Rename)
			r.Delete("/{name}", h.Delete)
		})
	})
}

// List returns every category ordered by name
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categoryService.List(r.Context())
	if err != nil {
		respondWithServiceError(w, h.logger, err, "")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, categories)
}

// Create adds a category
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Category validation failed", zap.Error(err))
		respondWithDecodeError(w, err)
		return
	}

	category, err := h.categoryService.Create(r.Context(), req.Name)
	if err != nil {
		respondWithServiceError(w, h.logger, err, "")
		return
	}

	h.logger.Info("Category created", zap.String("category", category.Name))
	middleware.RespondWithJSON(w, http.StatusCreated, category)
}

// Rename renames a category and every product that references it
func (h *CategoryHandler) Rename(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Category validation failed", zap.Error(err))
		respondWithDecodeError(w, err)
		return
	}

	if err := h.categoryService.Rename(r.Context(), chi.URLParam(r, "name"), req.Name); err != nil {
		respondWithServiceError(w, h.logger, err, "")
		return
	}

	middleware.RespondWithMessage(w, http.StatusOK, "Category and products updated")
}

// Delete removes a category and detaches its products
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	result, err := h.categoryService.Delete(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		respondWithServiceError(w, h.logger, err, "")
		return
	}

	h.logger.Info("Category deleted",
		zap.String("category", result.Name),
		zap.Int64("detached_products", result.DetachedProducts),
		zap.Bool("cascade_failed", result.CascadeErr != nil),
	)
	middleware.RespondWithMessage(w, http.StatusOK, "Category deleted")
}

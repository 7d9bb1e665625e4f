package transport

import (
	"errors"
	"net/http"

	"catalog-api/internal/domain"
	"catalog-api/internal/middleware"

	"go.uber.org/zap"
)

// respondWithServiceError maps coordinator errors onto HTTP statuses.
// Upstream failures pass their message through in an "error" body.
func respondWithServiceError(w http.ResponseWriter, logger *zap.Logger, err error, notFoundMessage string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		middleware.RespondWithMessage(w, http.StatusNotFound, notFoundMessage)
	case errors.Is(err, domain.ErrBadRequest):
		middleware.RespondWithMessage(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrAlreadyExists):
		middleware.RespondWithMessage(w, http.StatusConflict, err.Error())
	default:
		logger.Error("Upstream failure", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, err.Error())
	}
}

// respondWithDecodeError answers a body that could not be decoded or validated.
func respondWithDecodeError(w http.ResponseWriter, err error) {
	if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
		middleware.RespondWithValidationErrors(w, validationErrors)
		return
	}
	middleware.RespondWithMessage(w, http.StatusBadRequest, "invalid request body")
}

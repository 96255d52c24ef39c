// Package handler implements the HTTP handlers for the REST API.
package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"

	"github.com/shiraberu/pricing-go/internal/application/dto"
	"github.com/shiraberu/pricing-go/internal/application/service"
	"github.com/shiraberu/pricing-go/internal/domain/entity"
	"github.com/shiraberu/pricing-go/internal/domain/pricing"
	"github.com/shiraberu/pricing-go/internal/domain/repository"
)

// respondError maps domain and application errors to HTTP status codes and
// writes the standard error envelope. Unmapped errors become opaque 500s so
// internals never leak to clients.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := classify(err)

	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "An unexpected error occurred"
	}

	render.Status(r, status)
	render.JSON(w, r, dto.NewErrorResponse[any](code, message))
}

func classify(err error) (int, string) {
	switch {
	case repository.IsNotFoundError(err):
		return http.StatusNotFound, "NOT_FOUND"

	case errors.Is(err, repository.ErrDuplicateSeller):
		return http.StatusConflict, "DUPLICATE_SELLER"

	case errors.Is(err, pricing.ErrRouteUnavailable):
		return http.StatusUnprocessableEntity, "ROUTE_UNAVAILABLE"

	case errors.Is(err, service.ErrNewerSchema):
		return http.StatusConflict, "NEWER_SCHEMA"

	case errors.Is(err, pricing.ErrInvalidPrice),
		errors.Is(err, pricing.ErrDegenerateRates),
		errors.Is(err, pricing.ErrInvalidExchangeRate),
		errors.Is(err, pricing.ErrInvalidShippingMode),
		errors.Is(err, pricing.ErrUnknownCarrier),
		errors.Is(err, service.ErrInvalidImport),
		errors.Is(err, entity.ErrInvalidCategoryName),
		errors.Is(err, entity.ErrInvalidSellerName),
		errors.Is(err, entity.ErrInvalidSellerPlatform),
		errors.Is(err, entity.ErrInvalidSellerType),
		errors.Is(err, entity.ErrMissingPlatformID):
		return http.StatusBadRequest, "INVALID_REQUEST"

	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR"
	}
}

// badRequest writes a 400 with the given message, for malformed bodies and
// parameters that never reach the domain layer.
func badRequest(w http.ResponseWriter, r *http.Request, message string) {
	render.Status(r, http.StatusBadRequest)
	render.JSON(w, r, dto.NewErrorResponse[any]("INVALID_REQUEST", message))
}

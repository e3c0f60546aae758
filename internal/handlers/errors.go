package handlers

import (
	"errors"
	"net/http"

	"sailbook/internal/repository"
	"sailbook/internal/services"
)

// statusFromErr maps the service error taxonomy onto HTTP statuses.
// Ambiguous is a data-integrity bug, so it is a 500, not something the
// client can fix.
func statusFromErr(err error) int {
	switch {
	case errors.Is(err, services.ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, services.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrTokenExpired):
		return http.StatusForbidden
	case errors.Is(err, services.ErrNotFound), errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrAmbiguous):
		return http.StatusInternalServerError
	case errors.Is(err, repository.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, services.ErrWeakPassword):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Package api provides HTTP handlers for the API.
package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/studydeck/internal/api/shared"
	"github.com/phrazzld/studydeck/internal/domain"
)

// MapErrorToStatusCode translates engine errors into HTTP status codes.
// Every error kind the study core reports is an expected, recoverable user
// condition, so nothing here maps to a crash; unknown errors become 500.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrCourseNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrDuplicateCourse),
		errors.Is(err, domain.ErrNoCourseSelected),
		errors.Is(err, domain.ErrNoCardSelected):
		return http.StatusConflict
	case errors.Is(err, domain.ErrEmptyCard),
		errors.Is(err, domain.ErrCourseNameEmpty),
		errors.Is(err, domain.ErrCardOutOfRange),
		errors.Is(err, shared.ErrInvalidRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a client-facing message for the error. Engine
// errors are user-input conditions and safe to surface verbatim; anything
// else gets a generic message so internals never leak.
func GetSafeErrorMessage(err error) string {
	for _, known := range []error{
		domain.ErrCourseNotFound,
		domain.ErrDuplicateCourse,
		domain.ErrNoCourseSelected,
		domain.ErrNoCardSelected,
		domain.ErrEmptyCard,
		domain.ErrCourseNameEmpty,
		domain.ErrCardOutOfRange,
		domain.ErrEmptyCourse,
	} {
		if errors.Is(err, known) {
			return known.Error()
		}
	}
	if errors.Is(err, shared.ErrInvalidRequest) {
		return "Invalid request format"
	}
	return "Internal server error"
}

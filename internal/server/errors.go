// Package server provides the HTTP REST API for the resume scorer.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/resume-scorer/internal/ingestion"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrUnsupportedMediaType indicates a request body in a format the endpoint cannot read
type ErrUnsupportedMediaType struct {
	ContentType string
}

func (e *ErrUnsupportedMediaType) Error() string {
	return fmt.Sprintf("unsupported content type: %s", e.ContentType)
}

// ErrMalformedBody indicates a body that could not be decoded
type ErrMalformedBody struct {
	Err error
}

func (e *ErrMalformedBody) Error() string {
	return fmt.Sprintf("invalid request body: %v", e.Err)
}

func (e *ErrMalformedBody) Unwrap() error {
	return e.Err
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusInternalServerError
	}

	var (
		validationErr *ErrValidation
		mediaErr      *ErrUnsupportedMediaType
		maxBytesErr   *http.MaxBytesError
		malformedErr  *ErrMalformedBody
	)
	switch {
	case errors.As(err, &maxBytesErr), errors.Is(err, ingestion.ErrTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &mediaErr):
		return http.StatusUnsupportedMediaType
	case errors.As(err, &validationErr), errors.As(err, &malformedErr), errors.Is(err, ingestion.ErrNotText):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Package apperr defines the failure kinds shared by the ordering core and its
// transports. Callers wrap a sentinel with context and classify with errors.Is.
package apperr

import (
	"context"
	"errors"
	"net/http"
)

var (
	ErrValidation   = errors.New("validation failed")
	ErrCapacity     = errors.New("time slot is full")
	ErrEmptyCart    = errors.New("cart is empty")
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("already exists")
)

func Kind(err error) string {
	switch {
	case err == nil:
		return ""

	case errors.Is(err, ErrValidation):
		return "validation"

	case errors.Is(err, ErrCapacity):
		return "capacity"

	case errors.Is(err, ErrEmptyCart):
		return "empty_cart"

	case errors.Is(err, ErrNotFound):
		return "not_found"

	case errors.Is(err, ErrUnauthorized):
		return "unauthorized"

	case errors.Is(err, ErrForbidden):
		return "forbidden"

	case errors.Is(err, ErrConflict):
		return "conflict"

	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"

	case errors.Is(err, context.Canceled):
		return "canceled"

	default:
		return "internal"
	}
}

func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK

	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest

	case errors.Is(err, ErrCapacity),
		errors.Is(err, ErrConflict):
		return http.StatusConflict

	case errors.Is(err, ErrEmptyCart):
		return http.StatusUnprocessableEntity

	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized

	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden

	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout

	case errors.Is(err, context.Canceled):
		return http.StatusRequestTimeout

	default:
		return http.StatusInternalServerError
	}
}

package apperr

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestKind(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("slot 12:00 PM - 12:30 PM: %w", ErrCapacity)

	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "validation", err: ErrValidation, want: "validation"},
		{name: "capacity", err: ErrCapacity, want: "capacity"},
		{name: "capacity_wrapped", err: wrapped, want: "capacity"},
		{name: "empty_cart", err: ErrEmptyCart, want: "empty_cart"},
		{name: "not_found", err: ErrNotFound, want: "not_found"},
		{name: "unauthorized", err: ErrUnauthorized, want: "unauthorized"},
		{name: "forbidden", err: ErrForbidden, want: "forbidden"},
		{name: "conflict", err: ErrConflict, want: "conflict"},
		{name: "deadline", err: context.DeadlineExceeded, want: "timeout"},
		{name: "canceled", err: context.Canceled, want: "canceled"},
		{name: "unknown", err: errors.New("unknown"), want: "internal"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Kind(tt.err); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestHTTPStatus(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("order ORD0042: %w", ErrNotFound)

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: http.StatusOK},
		{name: "validation", err: ErrValidation, want: http.StatusBadRequest},
		{name: "capacity", err: ErrCapacity, want: http.StatusConflict},
		{name: "empty_cart", err: ErrEmptyCart, want: http.StatusUnprocessableEntity},
		{name: "not_found", err: ErrNotFound, want: http.StatusNotFound},
		{name: "not_found_wrapped", err: wrapped, want: http.StatusNotFound},
		{name: "unauthorized", err: ErrUnauthorized, want: http.StatusUnauthorized},
		{name: "forbidden", err: ErrForbidden, want: http.StatusForbidden},
		{name: "conflict", err: ErrConflict, want: http.StatusConflict},
		{name: "deadline", err: context.DeadlineExceeded, want: http.StatusGatewayTimeout},
		{name: "canceled", err: context.Canceled, want: http.StatusRequestTimeout},
		{name: "unknown", err: errors.New("unknown"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := HTTPStatus(tt.err); got != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	err := NewValidationError("bad request", "persona is required")
	if got := err.Error(); got != "validation: bad request (persona is required)" {
		t.Fatalf("unexpected message: %q", got)
	}
	if got := NewNotFoundError("missing").Error(); got != "not_found: missing" {
		t.Fatalf("unexpected message: %q", got)
	}
}

func TestGetStatusCode(t *testing.T) {
	sentinel := errors.New("no valid PDF documents found")
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "validation", err: NewValidationError("x"), want: http.StatusBadRequest},
		{name: "processing", err: NewProcessingError("x", sentinel), want: http.StatusUnprocessableEntity},
		{name: "unavailable", err: NewUnavailableError("x"), want: http.StatusServiceUnavailable},
		{name: "network", err: NewNetworkError("x", sentinel), want: http.StatusBadGateway},
		{name: "wrapped", err: fmt.Errorf("analyze: %w", NewNotFoundError("x")), want: http.StatusNotFound},
		{name: "plain", err: sentinel, want: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetStatusCode(tt.err); got != tt.want {
				t.Fatalf("GetStatusCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestIsTypeAndUnwrap(t *testing.T) {
	sentinel := errors.New("boom")
	err := fmt.Errorf("outer: %w", NewValidationError("bad").WithCause(sentinel))

	if !IsType(err, ErrorTypeValidation) {
		t.Fatal("expected validation type through wrapping")
	}
	if IsType(err, ErrorTypeInternal) {
		t.Fatal("did not expect internal type")
	}
	if !errors.Is(err, sentinel) {
		t.Fatal("expected cause to be reachable with errors.Is")
	}
	if IsType(sentinel, ErrorTypeValidation) {
		t.Fatal("plain errors have no type")
	}
}

package goerror

import (
	"errors"
	"net/http"
	"testing"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "NotFound", err: NewBusiness("missing", CodeNotFound), want: http.StatusNotFound},
		{name: "Conflict", err: NewBusiness("duplicate", CodeConflict), want: http.StatusConflict},
		{name: "Unauthorized", err: NewBusiness("nope", CodeUnauthorized), want: http.StatusUnauthorized},
		{name: "Forbidden", err: NewBusiness("blocked", CodeForbidden), want: http.StatusForbidden},
		{name: "TooManyRequest", err: NewBusiness("slow down", CodeTooManyRequest), want: http.StatusTooManyRequests},
		{name: "Unavailable", err: NewUnavailable(errors.New("down"), "try later"), want: http.StatusServiceUnavailable},
		{name: "Server", err: NewServer(errors.New("boom")), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gerr *Error
			if !errors.As(tt.err, &gerr) {
				t.Fatalf("expected *Error, got %T", tt.err)
			}
			if got := gerr.StatusCode(); got != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestUnwrap(t *testing.T) {
	// Arrange
	cause := errors.New("connection refused")

	// Act
	err := NewUnavailable(cause, "try later")

	// Assert
	if !errors.Is(err, cause) {
		t.Fatalf("expected the cause to be reachable via errors.Is")
	}

	var gerr *Error
	if !errors.As(err, &gerr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if gerr.Msg() != "try later" {
		t.Fatalf("unexpected message: %q", gerr.Msg())
	}
	if gerr.Code() != CodeUnavailable {
		t.Fatalf("unexpected code: %v", gerr.Code())
	}
}

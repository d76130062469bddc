package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"storeflight/shared/failure"
	"testing"
)

func TestFailure_Error(t *testing.T) {
	f := &failure.Failure{
		Code:    http.StatusBadRequest,
		Message: "full_name is required",
	}

	if f.Error() != "full_name is required" {
		t.Errorf("expected error message to be 'full_name is required', got %s", f.Error())
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{name: "BadRequest", err: failure.BadRequest(errors.New("bad body")), code: http.StatusBadRequest, message: "bad body"},
		{name: "BadRequestFromString", err: failure.BadRequestFromString("phone is required"), code: http.StatusBadRequest, message: "phone is required"},
		{name: "Unauthorized", err: failure.Unauthorized(failure.MessageUnauthorized), code: http.StatusUnauthorized, message: "unauthorized"},
		{name: "InternalError", err: failure.InternalError(errors.New("db down")), code: http.StatusInternalServerError, message: "db down"},
		{name: "NotFound", err: failure.NotFound("reservation_not_found"), code: http.StatusNotFound, message: "reservation_not_found"},
		{name: "Gateway", err: failure.Gateway("paypal_create_failed", map[string]any{"name": "INVALID_REQUEST"}), code: http.StatusBadRequest, message: "paypal_create_failed"},
		{name: "ServerMisconfigured", err: failure.ErrServerMisconfigured, code: http.StatusInternalServerError, message: "server_misconfigured"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f *failure.Failure
			if !errors.As(tt.err, &f) {
				t.Fatalf("expected *failure.Failure, got %T", tt.err)
			}

			if f.Code != tt.code {
				t.Errorf("expected code %d, got %d", tt.code, f.Code)
			}

			if f.Message != tt.message {
				t.Errorf("expected message %q, got %q", tt.message, f.Message)
			}
		})
	}
}

func TestNilInputs(t *testing.T) {
	if err := failure.BadRequest(nil); err != nil {
		t.Errorf("expected nil, got %v", err)
	}

	if err := failure.InternalError(nil); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{name: "failure", err: failure.NotFound("reservation_not_found"), code: http.StatusNotFound},
		{name: "wrapped failure", err: fmt.Errorf("finalize: %w", failure.Unauthorized("unauthorized")), code: http.StatusUnauthorized},
		{name: "plain error", err: errors.New("boom"), code: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := failure.GetCode(tt.err); got != tt.code {
				t.Errorf("expected code %d, got %d", tt.code, got)
			}
		})
	}
}

func TestGetDetails(t *testing.T) {
	details := map[string]any{"debug_id": "abc123"}

	got, ok := failure.GetDetails(failure.Gateway("paypal_capture_failed", details)).(map[string]any)
	if !ok || got["debug_id"] != "abc123" {
		t.Errorf("expected details to be carried, got %v", got)
	}

	if failure.GetDetails(errors.New("plain")) != nil {
		t.Error("expected nil details for a plain error")
	}
}

// Package errors tests for error code definitions and error handling.
package errors

import (
	"errors"
	"fmt"
	"testing"
)

// TestErrorCodeValues verifies all error codes have non-empty values.
func TestErrorCodeValues(t *testing.T) {
	tests := []struct {
		name string
		code ErrorCode
	}{
		{"internal", ErrInternal},
		{"invalid", ErrInvalid},
		{"not found", ErrNotFound},
		{"database", ErrDatabase},
		{"migration", ErrMigration},
		{"connectivity", ErrConnectivity},
		{"validation", ErrValidation},
		{"auth failed", ErrAuthFailed},
		{"server rejected", ErrServerRejected},
		{"storage", ErrStorage},
		{"sync failed", ErrSyncFailed},
		{"sync in progress", ErrSyncInProgress},
		{"sync timeout", ErrSyncTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.code == "" {
				t.Errorf("ErrorCode %q should not be empty", tt.name)
			}
		})
	}
}

// TestAppError_Error verifies error message formatting.
func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appError *AppError
		want     string
	}{
		{
			name:     "error without underlying error",
			appError: &AppError{Code: ErrInternal, Message: "something failed"},
			want:     "[INTERNAL_ERROR] something failed",
		},
		{
			name:     "error with underlying error",
			appError: &AppError{Code: ErrStorage, Message: "enqueue failed", Err: errors.New("disk full")},
			want:     "[STORAGE_ERROR] enqueue failed: disk full",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.appError.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestAppError_Unwrap verifies errors.Is works through AppError.
func TestAppError_Unwrap(t *testing.T) {
	underlying := errors.New("connection refused")
	wrapped := Wrap(ErrConnectivity, "request failed", underlying)

	if !errors.Is(wrapped, underlying) {
		t.Error("expected errors.Is to find the underlying error")
	}
}

// TestHasCode verifies code classification through wrapping.
func TestHasCode(t *testing.T) {
	err := Wrap(ErrValidation, "title too short", errors.New("min length 5"))

	if !HasCode(err, ErrValidation) {
		t.Error("expected HasCode to match VALIDATION_ERROR")
	}
	if HasCode(err, ErrConnectivity) {
		t.Error("did not expect HasCode to match CONNECTIVITY_ERROR")
	}

	// Codes survive further fmt.Errorf wrapping.
	outer := fmt.Errorf("submit: %w", err)
	if !HasCode(outer, ErrValidation) {
		t.Error("expected HasCode to match through fmt.Errorf wrapping")
	}

	if HasCode(errors.New("plain"), ErrValidation) {
		t.Error("plain errors should carry no code")
	}
}

// TestCodeOf verifies code extraction with fallback.
func TestCodeOf(t *testing.T) {
	if got := CodeOf(New(ErrAuthFailed, "token expired")); got != ErrAuthFailed {
		t.Errorf("CodeOf() = %q, want %q", got, ErrAuthFailed)
	}
	if got := CodeOf(errors.New("plain")); got != ErrInternal {
		t.Errorf("CodeOf() = %q, want %q", got, ErrInternal)
	}
}

// TestIsConnectivity verifies the connectivity-class check.
func TestIsConnectivity(t *testing.T) {
	if !IsConnectivity(Wrap(ErrConnectivity, "no response", errors.New("dial tcp: timeout"))) {
		t.Error("expected connectivity error to be connectivity-class")
	}
	if IsConnectivity(New(ErrServerRejected, "http 500")) {
		t.Error("a server response is never connectivity-class")
	}
}

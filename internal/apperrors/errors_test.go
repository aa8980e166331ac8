package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestConstructorsSetStatusAndCode(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		wantStatus int
		wantCode   string
	}{
		{"validation", NewValidation("bad input"), http.StatusBadRequest, "VALIDATION_ERROR"},
		{"authentication", NewAuthentication("who"), http.StatusUnauthorized, "AUTHENTICATION_ERROR"},
		{"authorization", NewAuthorization("no"), http.StatusForbidden, "AUTHORIZATION_ERROR"},
		{"not found", NewNotFound("gone"), http.StatusNotFound, "NOT_FOUND"},
		{"conflict", NewConflict("dup"), http.StatusConflict, "CONFLICT"},
		{"internal", NewInternal("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", tt.err.StatusCode, tt.wantStatus)
			}
			if tt.err.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", tt.err.Code, tt.wantCode)
			}
		})
	}
}

func TestInternalIsNotOperational(t *testing.T) {
	if NewInternal("boom").Operational {
		t.Error("internal errors must not be operational")
	}
	if !NewValidation("bad").Operational {
		t.Error("validation errors must be operational")
	}
}

func TestNewInsufficientStockMessage(t *testing.T) {
	err := NewInsufficientStock("Linen Shirt", 2)
	want := `Insufficient quantity for product "Linen Shirt". Available: 2`
	if err.Message != want {
		t.Errorf("message = %q, want %q", err.Message, want)
	}
	if err.Code != "INSUFFICIENT_STOCK" {
		t.Errorf("code = %q", err.Code)
	}
	if err.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d", err.StatusCode)
	}
}

func TestAsAppError(t *testing.T) {
	appErr := NewNotFound("missing")
	wrapped := fmt.Errorf("fetch: %w", appErr)

	got, ok := AsAppError(wrapped)
	if !ok || got != appErr {
		t.Error("expected to unwrap AppError")
	}

	if _, ok := AsAppError(errors.New("plain")); ok {
		t.Error("plain errors must not match")
	}
}

package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestReasonOfWrapped(t *testing.T) {
	err := fmt.Errorf("commit: %w", NewBusinessRuleError(ReasonCodeExpired, "Coupon has expired"))
	if got := ReasonOf(err); got != ReasonCodeExpired {
		t.Errorf("ReasonOf() = %q, want %q", got, ReasonCodeExpired)
	}
	if got := KindOf(err); got != KindBusinessRule {
		t.Errorf("KindOf() = %q, want %q", got, KindBusinessRule)
	}
}

func TestAlreadyOpenIsConflictStatus(t *testing.T) {
	err := NewBusinessRuleError(ReasonAlreadyOpen, "Register already open")
	if err.Code != http.StatusConflict {
		t.Errorf("Code = %d, want %d", err.Code, http.StatusConflict)
	}
}

func TestStorageWrapsPlainErrorsOnly(t *testing.T) {
	base := errors.New("connection refused")
	wrapped := Storage(base)
	if KindOf(wrapped) != KindStorage {
		t.Fatalf("expected storage kind, got %q", KindOf(wrapped))
	}
	if !errors.Is(wrapped, base) {
		t.Errorf("expected wrapped error to unwrap to the cause")
	}

	rule := NewBusinessRuleError(ReasonNoOpenRegister, "No open register")
	if Storage(rule) != error(rule) {
		t.Errorf("expected app errors to pass through Storage unchanged")
	}
	if Storage(nil) != nil {
		t.Errorf("expected nil for nil input")
	}
}

func TestIsConflict(t *testing.T) {
	if !IsConflict(NewConcurrencyError("lock busy", nil)) {
		t.Errorf("expected concurrency error to be a conflict")
	}
	if IsConflict(errors.New("plain")) {
		t.Errorf("plain errors are not conflicts")
	}
}

package errors

import (
	"errors"
	"testing"
)

func TestErrorWrapper(t *testing.T) {
	t.Parallel()
	wrapper := NewWrapper("report", "build_workbook")

	t.Run("Wrap returns nil for nil error", func(t *testing.T) {
		if result := wrapper.Wrap(nil, "report failed"); result != nil {
			t.Errorf("expected nil, got %v", result)
		}
	})

	t.Run("Wrap creates WrappedError", func(t *testing.T) {
		baseErr := errors.New("sheet name too long")
		wrapped := wrapper.Wrap(baseErr, "report failed")

		var wrappedErr *WrappedError
		if !errors.As(wrapped, &wrappedErr) {
			t.Fatal("expected WrappedError type")
		}
		if wrappedErr.Module != "report" || wrappedErr.Operation != "build_workbook" {
			t.Errorf("unexpected context %s:%s", wrappedErr.Module, wrappedErr.Operation)
		}
		if !errors.Is(wrapped, baseErr) {
			t.Error("wrapped error should unwrap to base error")
		}
	})

	t.Run("Wrapf formats message", func(t *testing.T) {
		wrapped := wrapper.Wrapf(ErrNotFound, "no report for %s", "Salem")
		if got := GetUserMessage(wrapped); got != "no report for Salem" {
			t.Errorf("GetUserMessage() = %q", got)
		}
		if !IsNotFound(wrapped) {
			t.Error("expected wrapped ErrNotFound to be recognized")
		}
	})
}

func TestGetUserMessage(t *testing.T) {
	t.Parallel()
	if got := GetUserMessage(nil); got != "" {
		t.Errorf("GetUserMessage(nil) = %q, want empty", got)
	}
	plain := errors.New("plain")
	if got := GetUserMessage(plain); got != "plain" {
		t.Errorf("GetUserMessage(plain) = %q", got)
	}
}

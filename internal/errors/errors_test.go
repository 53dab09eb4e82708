package errors

import (
	stderrors "errors"
	"strings"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	err := New(BuildFailed, "synthesis aborted", nil)
	if !strings.Contains(err.Error(), "BUILD_FAILED") {
		t.Errorf("Expected code in message, got %s", err.Error())
	}

	cause := stderrors.New("disk full")
	wrapped := New(BuildFailed, "synthesis aborted", cause)
	if !strings.Contains(wrapped.Error(), "disk full") {
		t.Errorf("Expected cause in message, got %s", wrapped.Error())
	}
}

func TestUnwrap(t *testing.T) {
	cause := stderrors.New("underlying")
	err := New(InternalError, "wrapper", cause)
	if !stderrors.Is(err, cause) {
		t.Error("Expected errors.Is to find cause through Unwrap")
	}
}

func TestWrapPreservesCkgError(t *testing.T) {
	orig := New(EntityNotFound, "no such entity", nil)
	wrapped := Wrap(orig, InternalError)
	if wrapped.Code != EntityNotFound {
		t.Errorf("Expected original code preserved, got %s", wrapped.Code)
	}

	plain := stderrors.New("plain")
	converted := Wrap(plain, StoreUnavailable)
	if converted.Code != StoreUnavailable {
		t.Errorf("Expected assigned code, got %s", converted.Code)
	}

	if Wrap(nil, InternalError) != nil {
		t.Error("Expected nil for nil error")
	}
}

func TestSuggestedFixes(t *testing.T) {
	err := New(StoreNotInitialized, "no schema", nil)
	if len(err.SuggestedFixes) == 0 {
		t.Error("Expected suggested fixes for STORE_NOT_INITIALIZED")
	}

	err = New(InternalError, "boom", nil)
	if len(err.SuggestedFixes) != 0 {
		t.Error("Expected no fixes for INTERNAL_ERROR")
	}
}

package errs

import (
	"net/http"
	"testing"
)

func TestNewErrorKnownCode(t *testing.T) {
	err := NewError(ErrPostNotFound)

	if err.Code != ErrPostNotFound {
		t.Errorf("Code = %d, want %d", err.Code, ErrPostNotFound)
	}
	if err.Status != http.StatusNotFound {
		t.Errorf("Status = %d, want 404", err.Status)
	}
	if err.Message == "" {
		t.Error("expected a client-facing message")
	}
}

func TestNewErrorUnknownCodeFallsBack(t *testing.T) {
	err := NewError(999999)

	if err.Code != ErrUnknown {
		t.Errorf("Code = %d, want %d", err.Code, ErrUnknown)
	}
	if err.Status != http.StatusInternalServerError {
		t.Errorf("Status = %d, want 500", err.Status)
	}
}

func TestNewErrorAppliesDetails(t *testing.T) {
	err := NewError(ErrTooManyImages, 5)

	if err.Message != "A post can contain at most 5 images." {
		t.Errorf("Message = %q", err.Message)
	}
}

func TestNewErrorIgnoresDetailsWithoutPlaceholder(t *testing.T) {
	err := NewError(ErrPostNotFound, "extra")

	if err.Message != "Post not found." {
		t.Errorf("Message = %q, want the unmodified template", err.Message)
	}
}

package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestWrapWithCodeKeepsChain(t *testing.T) {
	err := WrapWithCode(ErrNotFound, CodeNotFound, "story abc")

	if !Is(err, ErrNotFound) {
		t.Fatal("expected wrapped error to match ErrNotFound")
	}
	if got := GetCode(err); got != CodeNotFound {
		t.Fatalf("code = %q, want %q", got, CodeNotFound)
	}
	if got := err.Error(); got != "story abc: not found" {
		t.Fatalf("message = %q", got)
	}
}

func TestGetCodeSkipsUncodedLayers(t *testing.T) {
	inner := WrapWithCode(ErrForbidden, CodeForbidden, "not the owner")
	outer := fmt.Errorf("get viewers: %w", Wrap(inner, "load story"))

	if got := GetCode(outer); got != CodeForbidden {
		t.Fatalf("code = %q, want %q", got, CodeForbidden)
	}
}

func TestWrapNil(t *testing.T) {
	if Wrap(nil, "x") != nil {
		t.Fatal("Wrap(nil) should be nil")
	}
	if WrapWithCode(nil, CodeInternal, "x") != nil {
		t.Fatal("WrapWithCode(nil) should be nil")
	}
}

func TestGetMessage(t *testing.T) {
	if got := GetMessage(New(CodeInvalidInput, "bad handle")); got != "bad handle" {
		t.Fatalf("message = %q", got)
	}
	if got := GetMessage(errors.New("plain")); got != "plain" {
		t.Fatalf("message = %q", got)
	}
	if got := GetMessage(nil); got != "" {
		t.Fatalf("message = %q", got)
	}
}

package serviceerrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsOfKind(t *testing.T) {
	err := NewNotFoundError("product with id %d not found", 3)

	if err.Error() != "product with id 3 not found" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
	if !IsOfKind(err, KindNotFound) {
		t.Fatal("expected KindNotFound")
	}
	if IsOfKind(err, KindConflict) {
		t.Fatal("did not expect KindConflict")
	}

	wrapped := fmt.Errorf("loading: %w", err)
	if !IsOfKind(wrapped, KindNotFound) {
		t.Fatal("expected kind to survive wrapping")
	}
	if IsOfKind(errors.New("plain"), KindNotFound) {
		t.Fatal("plain errors have no kind")
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("duplicate key")
	err := Wrap(KindConflict, cause, "resource already exists")

	if !errors.Is(err, cause) {
		t.Fatal("expected cause to be reachable through Unwrap")
	}
	if err.Error() != "resource already exists" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
	if err.Kind.String() != "conflict" {
		t.Fatalf("unexpected kind name: %s", err.Kind)
	}
}

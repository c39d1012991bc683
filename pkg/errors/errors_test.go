package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestMetadataForKnownCodes(t *testing.T) {
	tests := []struct {
		code   Code
		status int
	}{
		{CodeValidation, http.StatusBadRequest},
		{CodeNotFound, http.StatusNotFound},
		{CodeStateConflict, http.StatusUnprocessableEntity},
		{CodePrecondition, http.StatusUnprocessableEntity},
		{CodeDependency, http.StatusServiceUnavailable},
	}
	for _, tc := range tests {
		if got := MetadataFor(tc.code).HTTPStatus; got != tc.status {
			t.Fatalf("MetadataFor(%s) status = %d, want %d", tc.code, got, tc.status)
		}
	}
}

func TestMetadataForUnknownCodeFallsBack(t *testing.T) {
	meta := MetadataFor(Code("NOPE"))
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("unknown code should map to internal, got %d", meta.HTTPStatus)
	}
}

func TestAsUnwrapsThroughChain(t *testing.T) {
	base := New(CodeStateConflict, "entry already voided")
	wrapped := fmt.Errorf("approving entry: %w", base)

	typed := As(wrapped)
	if typed == nil {
		t.Fatal("expected typed error from wrapped chain")
	}
	if typed.Code() != CodeStateConflict {
		t.Fatalf("code = %s, want %s", typed.Code(), CodeStateConflict)
	}
}

func TestAsReturnsNilForPlainError(t *testing.T) {
	if As(errors.New("plain")) != nil {
		t.Fatal("plain error should not match")
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("row gone")
	err := Wrap(CodeNotFound, cause, "entry not found")
	if !errors.Is(err, cause) {
		t.Fatal("wrapped cause should survive errors.Is")
	}
}

func TestDumpCollectsChain(t *testing.T) {
	err := Wrap(CodePrecondition, errors.New("proof missing"), "cannot approve")
	d := Dump(err)
	if d.Code != CodePrecondition {
		t.Fatalf("dump code = %s", d.Code)
	}
	if len(d.Chain) < 2 {
		t.Fatalf("expected full chain, got %v", d.Chain)
	}
}

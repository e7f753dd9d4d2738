package errors

import (
	"errors"
	"net/http"
	"testing"
)

func TestMetadataForKnownCodes(t *testing.T) {
	if got := MetadataFor(CodeNotFound).HTTPStatus; got != http.StatusNotFound {
		t.Fatalf("not found status = %d", got)
	}
	if got := MetadataFor(CodeStateConflict).HTTPStatus; got != http.StatusUnprocessableEntity {
		t.Fatalf("state conflict status = %d", got)
	}
}

func TestMetadataForUnknownCodeFallsBackToInternal(t *testing.T) {
	meta := MetadataFor(Code("NOPE"))
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("unknown code should map to 500, got %d", meta.HTTPStatus)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("db down")
	err := Wrap(CodeDependency, cause, "load catalog")
	if !errors.Is(err, cause) {
		t.Fatal("wrapped cause lost")
	}
	typed := As(err)
	if typed == nil || typed.Code() != CodeDependency {
		t.Fatalf("unexpected typed error %v", typed)
	}
}

func TestAsReturnsNilForForeignErrors(t *testing.T) {
	if typed := As(errors.New("plain")); typed != nil {
		t.Fatalf("expected nil, got %v", typed)
	}
}

func TestDumpCollectsChain(t *testing.T) {
	err := Wrap(CodeValidation, errors.New("inner"), "outer")
	dump := Dump(err)
	if dump.Code != CodeValidation {
		t.Fatalf("dump code = %s", dump.Code)
	}
	if len(dump.Chain) != 2 {
		t.Fatalf("expected 2 chain entries, got %d", len(dump.Chain))
	}
}

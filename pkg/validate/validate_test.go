package validate

import (
	"testing"

	pkgerrors "github.com/spiceshop/storefront-go/pkg/errors"
)

type sample struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"required"`
}

func TestStructReportsWireNames(t *testing.T) {
	err := Struct(sample{Email: "not-an-email"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	details, ok := typed.Details().(map[string]string)
	if !ok {
		t.Fatalf("expected field details, got %T", typed.Details())
	}
	if details["email"] != "must be a valid email" {
		t.Fatalf("email detail: %q", details["email"])
	}
	if details["name"] != "is required" {
		t.Fatalf("name detail: %q", details["name"])
	}
}

func TestStructPassesValidPayload(t *testing.T) {
	if err := Struct(sample{Email: "a@b.example", Name: "Asha"}); err != nil {
		t.Fatalf("unexpected %v", err)
	}
}

package validation

import (
	"strings"
	"testing"

	"github.com/kbukum/resultkit/errors"
)

func TestValidatorRequired(t *testing.T) {
	v := New()
	v.Required("location", "{flow}.csv")
	if v.HasErrors() {
		t.Error("expected no errors for valid input")
	}

	v2 := New()
	v2.Required("location", "   ")
	if !v2.HasErrors() {
		t.Error("expected error for whitespace-only required field")
	}
}

func TestValidatorMin(t *testing.T) {
	v := New()
	v.Min("indent", 0, 0)
	if v.HasErrors() {
		t.Error("expected no errors at the minimum")
	}
	v.Min("indent", -1, 0)
	if !v.HasErrors() {
		t.Fatal("expected error below the minimum")
	}
	if got := v.Errors()[0].Message; got != "must be at least 0" {
		t.Errorf("unexpected message %q", got)
	}
}

func TestValidatorOneOf(t *testing.T) {
	allowed := []string{"csv", "json"}
	v := New()
	v.OneOf("file_type", "csv", allowed).OneOf("file_type", "", allowed)
	if v.HasErrors() {
		t.Errorf("expected no errors, got %v", v.Errors())
	}
	v.OneOf("file_type", "xls", allowed)
	if !v.HasErrors() {
		t.Error("expected error for disallowed value")
	}
}

func TestValidatorCustom(t *testing.T) {
	v := New()
	v.Custom(false, "delimiter", "must be a single printable character")
	if len(v.Errors()) != 1 || v.Errors()[0].Field != "delimiter" {
		t.Errorf("unexpected errors %v", v.Errors())
	}
}

func TestValidatorValidate(t *testing.T) {
	if New().Required("a", "x").Validate() != nil {
		t.Error("expected nil for valid input")
	}
	if New().Error() != nil {
		t.Error("expected nil error for empty validator")
	}

	v := New()
	v.Required("location", "")
	v.Min("indent", -2, 0)
	appErr := v.Validate()
	if appErr == nil {
		t.Fatal("expected error")
	}
	if appErr.Code != errors.ErrCodeInvalidInput {
		t.Errorf("expected INVALID_INPUT, got %s", appErr.Code)
	}
	if !strings.Contains(appErr.Message, "location: is required") || !strings.Contains(appErr.Message, "indent") {
		t.Errorf("expected both fields in message, got %q", appErr.Message)
	}
	fields, ok := appErr.Details["fields"].([]FieldError)
	if !ok || len(fields) != 2 {
		t.Errorf("expected two field errors in details, got %v", appErr.Details)
	}
}

func TestStructValidate(t *testing.T) {
	type descriptor struct {
		Type       string `json:"type" validate:"required"`
		SecretName string `json:"secret_name" validate:"required_if=Type secret"`
		FileType   string `json:"file_type" validate:"omitempty,oneof=csv json"`
	}

	tests := []struct {
		name   string
		in     descriptor
		errMsg string
	}{
		{"valid", descriptor{Type: "local"}, ""},
		{"valid secret", descriptor{Type: "secret", SecretName: "token"}, ""},
		{"missing type", descriptor{}, "type: is required"},
		{"secret without name", descriptor{Type: "secret"}, "secret_name: is required when type is secret"},
		{"bad file type", descriptor{Type: "tabular", FileType: "xls"}, "file_type: must be one of: csv json"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.in)
			if tc.errMsg == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Fatalf("expected INVALID_INPUT, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.errMsg) {
				t.Errorf("expected error containing %q, got %q", tc.errMsg, err.Error())
			}
		})
	}
}

func TestToSnakeCase(t *testing.T) {
	if got := toSnakeCase("SecretName"); got != "secret_name" {
		t.Errorf("expected secret_name, got %q", got)
	}
}

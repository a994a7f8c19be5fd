// Package validation configures the struct validator shared by request DTOs.
package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldIssue describes one failed constraint.
type FieldIssue struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

// New returns a validator that reports JSON field names.
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// Issues flattens validator errors into field/issue pairs. Other errors
// yield nil.
func Issues(err error) []FieldIssue {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make([]FieldIssue, 0, len(verrs))
	for _, fe := range verrs {
		field := fe.Namespace()
		if i := strings.Index(field, "."); i >= 0 {
			field = field[i+1:]
		}
		issue := fe.Tag()
		if fe.Param() != "" {
			issue += "=" + fe.Param()
		}
		out = append(out, FieldIssue{Field: field, Issue: issue})
	}
	return out
}

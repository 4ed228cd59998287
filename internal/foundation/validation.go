// Package foundation holds small building blocks shared by the config and
// site packages.
package foundation

import (
	"fmt"
	"strings"

	"git.home.luguber.info/inful/docpress/internal/foundation/errors"
)

// FieldError is one failed check on a named field.
type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (fe FieldError) Error() string {
	if fe.Field == "" {
		return fe.Message
	}
	return fe.Field + ": " + fe.Message
}

// Result collects field failures. The zero value is a passing result.
type Result struct {
	Errors []FieldError
}

// OK reports whether no failure was recorded.
func (r *Result) OK() bool { return len(r.Errors) == 0 }

// Add records a failure.
func (r *Result) Add(field, code, message string) {
	r.Errors = append(r.Errors, FieldError{Field: field, Code: code, Message: message})
}

// Err returns nil for a passing result, otherwise a validation error whose
// message lists every failure and whose "fields" context names the fields.
func (r *Result) Err(message string) error {
	if r.OK() {
		return nil
	}
	msgs := make([]string, len(r.Errors))
	var fields []string
	for i, fe := range r.Errors {
		msgs[i] = fe.Error()
		if fe.Field != "" {
			fields = append(fields, fe.Field)
		}
	}
	return errors.ValidationError(message+": "+strings.Join(msgs, "; ")).
		WithContext("fields", strings.Join(fields, ",")).
		Build()
}

// Rule checks a value. A failing rule returns an error code and message.
type Rule[T any] func(v T) (code, message string, ok bool)

// Check runs rules against v in order and records every failure under field.
func Check[T any](r *Result, field string, v T, rules ...Rule[T]) {
	for _, rule := range rules {
		if code, msg, ok := rule(v); !ok {
			r.Add(field, code, msg)
		}
	}
}

// Required fails on strings without non-space content.
func Required(v string) (string, string, bool) {
	if strings.TrimSpace(v) == "" {
		return "required", "must not be empty", false
	}
	return "", "", true
}

// OneOf fails on values outside allowed.
func OneOf[T comparable](allowed ...T) Rule[T] {
	return func(v T) (string, string, bool) {
		for _, a := range allowed {
			if v == a {
				return "", "", true
			}
		}
		return "one_of", fmt.Sprintf("must be one of: %v", allowed), false
	}
}

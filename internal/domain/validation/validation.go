// Package validation collects the field validators for each entity into pure
// functions returning a structured error list, independent of any transport.
package validation

import "fmt"

// FieldError names one invalid field and why it was rejected.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Errors is the result of validating one entity.
type Errors []FieldError

func (e Errors) Error() string {
	if len(e) == 0 {
		return "valid"
	}
	msg := e[0].Error()
	if len(e) > 1 {
		msg = fmt.Sprintf("%s (and %d more)", msg, len(e)-1)
	}
	return msg
}

func (e Errors) add(field, message string) Errors {
	return append(e, FieldError{Field: field, Message: message})
}

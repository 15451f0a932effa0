package errors

import (
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
)

// Errors makes it easy to combine multiple errors into a single string
type Errors []error

// ErrIf appends an error with failureMessage if the condition is true
// Returns the condition to allow for further conditional checks
func (e *Errors) ErrIf(condition bool, failureMessage string, formatArgs ...interface{}) bool {
	if condition {
		*e = append(*e, errors.Errorf(failureMessage, formatArgs...))
	}
	return condition
}

// AddErr appends an error if it is not nil. Smartly combines errors of type Errors
func (e *Errors) AddErr(err error) bool {
	if err != nil {
		if errs, ok := err.(Errors); ok {
			*e = append(*e, errs...)
		} else {
			*e = append(*e, err)
		}
	}
	return err == nil
}

// ErrOrNil returns e if an error is present, otherwise returns nil
func (e Errors) ErrOrNil() error {
	if len(e) == 1 {
		// simplify result if there's only one error
		return e[0]
	}
	if len(e) > 0 {
		return e
	}
	return nil
}

func (e Errors) Error() string {
	var buf strings.Builder
	for i, err := range e {
		if i != 0 {
			buf.WriteRune('\n')
		}
		buf.WriteString(err.Error())
	}
	return buf.String()
}

// MarshalJSON implements json.Marshaler
func (e Errors) MarshalJSON() ([]byte, error) {
	errs := make([]interface{}, 0, len(e))
	for _, err := range e {
		switch err := err.(type) {
		case json.Marshaler:
			errs = append(errs, err)
		default:
			errs = append(errs, map[string]interface{}{"Description": err.Error()})
		}
	}
	return json.Marshal(errs)
}

// ProviderError records a failed lookup against a single package provider
type ProviderError struct {
	Provider string
	Err      error
}

// NewProviderError wraps err with the provider's name. Returns nil if err is nil.
func NewProviderError(provider string, err error) error {
	if err == nil {
		return nil
	}
	return ProviderError{Provider: provider, Err: err}
}

func (p ProviderError) Error() string {
	return p.Provider + ": " + p.Err.Error()
}

// Cause implements the github.com/pkg/errors causer interface
func (p ProviderError) Cause() error {
	return p.Err
}

// Unwrap supports the standard library's errors.Is and errors.As
func (p ProviderError) Unwrap() error {
	return p.Err
}

// MarshalJSON implements json.Marshaler
func (p ProviderError) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{
		"Provider":    p.Provider,
		"Description": p.Err.Error(),
	})
}

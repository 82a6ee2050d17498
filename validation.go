package hxbind

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// ValidationError is a finding reported by a field's validation hook.
//
// Hooks set Code and Message; the binding stamps Field and Control before
// storing it.
type ValidationError struct {
	Code    string  `json:"code"`
	Message string  `json:"message"`
	Field   string  `json:"field"`
	Control Control `json:"-"`
}

// Error formats the finding as "field: [code] message".
func (e ValidationError) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = fmt.Sprintf("[%s] %s", e.Code, msg)
	}
	if e.Field != "" {
		return e.Field + ": " + msg
	}
	return msg
}

// ValidationErrors is an ordered list of findings.
type ValidationErrors []ValidationError

// Err combines the findings into one error, or returns nil when there are
// none.
func (errs ValidationErrors) Err() error {
	if len(errs) == 0 {
		return nil
	}
	var merr *multierror.Error
	for _, e := range errs {
		merr = multierror.Append(merr, e)
	}
	return merr.ErrorOrNil()
}

// ForField returns the findings stamped with the given field name.
func (errs ValidationErrors) ForField(name string) ValidationErrors {
	var out ValidationErrors
	for _, e := range errs {
		if e.Field == name {
			out = append(out, e)
		}
	}
	return out
}

// ValidationContext is handed to a field's OnValidate hook.
type ValidationContext struct {
	// Value is the field's current value.
	Value any
	// Snapshot is a deep copy of the whole record. Changing it has no
	// effect on the bound record.
	Snapshot Record
	// Errors collects findings. Hooks append to it directly or via Add.
	Errors ValidationErrors
}

// Add appends a finding.
func (c *ValidationContext) Add(code, message string) {
	c.Errors = append(c.Errors, ValidationError{Code: code, Message: message})
}

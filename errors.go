package hxbind

import "errors"

// Sentinel errors for binding operations.
var (
	ErrUnknownField   = errors.New("hxbind: unknown field")
	ErrDuplicateField = errors.New("hxbind: duplicate field name")
	ErrInvalidPath    = errors.New("hxbind: invalid path")
	ErrInvalidField   = errors.New("hxbind: invalid field")
	ErrDisposed       = errors.New("hxbind: binding set disposed")
)

// IsUnknownField checks if err reports access to a name with no binding.
func IsUnknownField(err error) bool {
	return errors.Is(err, ErrUnknownField)
}

// IsContractViolation checks if err reports a malformed field declaration.
func IsContractViolation(err error) bool {
	return errors.Is(err, ErrDuplicateField) || errors.Is(err, ErrInvalidPath) || errors.Is(err, ErrInvalidField)
}

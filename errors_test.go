package hxbind

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentinelErrors(t *testing.T) {
	// Verify sentinel errors are distinct
	errs := []error{
		ErrUnknownField,
		ErrDuplicateField,
		ErrInvalidPath,
		ErrInvalidField,
		ErrDisposed,
	}

	for i, err1 := range errs {
		for j, err2 := range errs {
			if i != j {
				assert.False(t, errors.Is(err1, err2), "%v and %v", err1, err2)
			}
		}
	}
}

func TestIsUnknownField(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		expect bool
	}{
		{"nil error", nil, false},
		{"ErrUnknownField", ErrUnknownField, true},
		{"wrapped ErrUnknownField", fmt.Errorf("wrapped: %w", ErrUnknownField), true},
		{"other error", errors.New("other error"), false},
		{"ErrDisposed", ErrDisposed, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, IsUnknownField(tt.err))
		})
	}
}

func TestIsContractViolation(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		expect bool
	}{
		{"nil error", nil, false},
		{"ErrDuplicateField", ErrDuplicateField, true},
		{"ErrInvalidPath", ErrInvalidPath, true},
		{"wrapped ErrInvalidField", fmt.Errorf("field %q: %w", "x", ErrInvalidField), true},
		{"ErrUnknownField", ErrUnknownField, false},
		{"ErrDisposed", ErrDisposed, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, IsContractViolation(tt.err))
		})
	}
}

func TestValidationErrorFormat(t *testing.T) {
	tests := []struct {
		name string
		err  ValidationError
		want string
	}{
		{"full", ValidationError{Code: "X-011", Message: "too short", Field: "firstName"}, "firstName: [X-011] too short"},
		{"no field", ValidationError{Code: "X-011", Message: "too short"}, "[X-011] too short"},
		{"no code", ValidationError{Message: "too short", Field: "firstName"}, "firstName: too short"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestValidationErrorsErr(t *testing.T) {
	assert.NoError(t, ValidationErrors(nil).Err())

	errs := ValidationErrors{
		{Code: "A", Message: "first", Field: "a"},
		{Code: "B", Message: "second", Field: "b"},
	}
	err := errs.Err()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "a: [A] first")
	assert.Contains(t, err.Error(), "b: [B] second")

	var ve ValidationError
	assert.True(t, errors.As(err, &ve))
	assert.Equal(t, "A", ve.Code)
}

func TestValidationErrorsForField(t *testing.T) {
	errs := ValidationErrors{
		{Code: "A", Field: "a"},
		{Code: "B", Field: "b"},
		{Code: "C", Field: "a"},
	}

	got := errs.ForField("a")
	assert.Len(t, got, 2)
	assert.Equal(t, "A", got[0].Code)
	assert.Equal(t, "C", got[1].Code)
	assert.Empty(t, errs.ForField("missing"))
}

package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors
var (
	ErrMissingInput   = errors.New("missing required input")
	ErrInvalidInput   = errors.New("invalid input")
	ErrDateOutOfRange = errors.New("date out of range")
)

// BusinessError represents a business logic error
type BusinessError struct {
	Code    string
	Message string
	// Fields names the request fields the error applies to, in request order.
	Fields []string
	Err    error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// NewBusinessError creates a new business error
func NewBusinessError(code, message string, err error, fields ...string) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Fields:  fields,
		Err:     err,
	}
}

// AsBusinessError reports whether err is, or wraps, a *BusinessError.
func AsBusinessError(err error) (*BusinessError, bool) {
	var be *BusinessError
	if errors.As(err, &be) {
		return be, true
	}
	return nil, false
}

// Error codes
const (
	ErrCodeMissingInput   = "MISSING_INPUT"
	ErrCodeInvalidInput   = "INVALID_INPUT"
	ErrCodeDateOutOfRange = "DATE_OUT_OF_RANGE"
)

func WrapMissingInput(fields []string) *BusinessError {
	return NewBusinessError(
		ErrCodeMissingInput,
		fmt.Sprintf("Required fields are empty: %s", strings.Join(fields, ", ")),
		ErrMissingInput,
		fields...,
	)
}

func WrapInvalidInput(field string, err error) *BusinessError {
	msg := fmt.Sprintf("Field %s is not valid", field)
	if err != nil {
		msg = fmt.Sprintf("Field %s is not valid: %v", field, err)
	}
	return NewBusinessError(
		ErrCodeInvalidInput,
		msg,
		ErrInvalidInput,
		field,
	)
}

func WrapDateOutOfRange(field, minDate string) *BusinessError {
	return NewBusinessError(
		ErrCodeDateOutOfRange,
		fmt.Sprintf("Field %s must not be before %s", field, minDate),
		ErrDateOutOfRange,
		field,
	)
}

func WrapLateSpanExceeded(field string, maxSpan string) *BusinessError {
	return NewBusinessError(
		ErrCodeDateOutOfRange,
		fmt.Sprintf("Field %s must be within %s of the penalty window start", field, maxSpan),
		ErrDateOutOfRange,
		field,
	)
}

package delay

import (
	"errors"
	"fmt"
)

var (
	// ErrNotAssignment indicates an item is not in PARAM=VALUE form.
	ErrNotAssignment = errors.New("expected PARAM=VALUE")
	// ErrNotInteger indicates a parameter value is not a decimal integer.
	ErrNotInteger = errors.New("value is not an integer")
)

// InvalidParamError reports an unrecognized parameter name.
type InvalidParamError struct {
	Name string
}

// Error implements error.
func (e *InvalidParamError) Error() string {
	return fmt.Sprintf("invalid parameter %q", e.Name)
}

// InvalidItemError reports a malformed PARAM=VALUE item.
type InvalidItemError struct {
	Item string
	Err  error
}

// Error implements error.
func (e *InvalidItemError) Error() string {
	return fmt.Sprintf("invalid item %q: %v", e.Item, e.Err)
}

// Unwrap exposes the underlying error.
func (e *InvalidItemError) Unwrap() error { return e.Err }

// RangeError reports a value outside the valid range of a parameter.
type RangeError struct {
	Param Param
	Value int64
	Min   int64
	Max   int64
}

// Error implements error.
func (e *RangeError) Error() string {
	return fmt.Sprintf("%s=%d out of valid range [%d, %d]", e.Param, e.Value, e.Min, e.Max)
}

// AlignError reports a value not divisible by the parameter's step.
type AlignError struct {
	Param Param
	Value int64
	Step  int64
}

// Error implements error.
func (e *AlignError) Error() string {
	return fmt.Sprintf("%s=%d must be divisible by %d", e.Param, e.Value, e.Step)
}

// RejectError reports a non-OK device response to a set command.
type RejectError struct {
	Response string
	Command  string
}

// Error implements error.
func (e *RejectError) Error() string {
	return fmt.Sprintf("device rejected command %q: %q", e.Command, e.Response)
}

// ResponseError reports an unparsable device response to a get command.
type ResponseError struct {
	Raw string
}

// Error implements error.
func (e *ResponseError) Error() string {
	return fmt.Sprintf("malformed device response %q", e.Raw)
}

// TransportError wraps an I/O failure or timeout on the serial link.
type TransportError struct {
	Op  string
	Err error
}

// Error implements error.
func (e *TransportError) Error() string {
	return fmt.Sprintf("transport %s: %v", e.Op, e.Err)
}

// Unwrap exposes the underlying error.
func (e *TransportError) Unwrap() error { return e.Err }

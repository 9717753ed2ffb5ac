package cext

import (
	"errors"
	"fmt"
)

// ArityFault reports that the transport rejected the call's argument count.
type ArityFault struct {
	Name     string
	Expected int
	Actual   int
}

func (f *ArityFault) Error() string {
	return fmt.Sprintf("TypeError: calling native function %s expected %d arguments but got %d", f.Name, f.Expected, f.Actual)
}

// TypeFault reports that the native call could not be performed: the
// transport rejected an argument or result type, the callable was not
// executable, or an argument could not be converted.
type TypeFault struct {
	Name  string
	Cause error
}

func (f *TypeFault) Error() string {
	return fmt.Sprintf("TypeError: calling native function %s failed: %v", f.Name, f.Cause)
}

func (f *TypeFault) Unwrap() error { return f.Cause }

// ResultValidationFault reports a native callee that violated its
// convention's result contract. It is an internal error and not
// recoverable at the call site.
type ResultValidationFault struct {
	Name   string
	Reason string
}

func (f *ResultValidationFault) Error() string {
	return fmt.Sprintf("SystemError: %s %s", f.Name, f.Reason)
}

// Transport-level errors. The invocation adapter turns them into faults
// that name the callable.
var (
	ErrUnsupportedType = errors.New("unsupported type")
	ErrNotExecutable   = errors.New("callable is not executable")
)

// ArityError is returned by a transport when the argument count does not
// match the callee.
type ArityError struct {
	Expected int
	Actual   int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("expected %d arguments, got %d", e.Expected, e.Actual)
}

// CalleePanic is returned by a transport when the callee itself failed
// after it started running.
type CalleePanic struct {
	Value any
}

func (e *CalleePanic) Error() string {
	return fmt.Sprintf("native callee panicked: %v", e.Value)
}

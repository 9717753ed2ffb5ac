package cext

import (
	"fmt"

	"github.com/chazu/nativecall/object"
)

// ResultValidator decides whether a raw native result honors the
// convention's contract. It returns the result to convert, or the error
// the call ends with.
type ResultValidator interface {
	Validate(name string, ctx *ExecutionContext, result any) (any, error)
}

// ValidatorFunc adapts a function to ResultValidator.
type ValidatorFunc func(name string, ctx *ExecutionContext, result any) (any, error)

func (f ValidatorFunc) Validate(name string, ctx *ExecutionContext, result any) (any, error) {
	return f(name, ctx, result)
}

// ObjectResult is the contract of object-returning functions: NULL means an
// error was raised, a handle means none was. Any other result breaks the
// contract.
type ObjectResult struct{}

func (ObjectResult) Validate(name string, ctx *ExecutionContext, result any) (any, error) {
	isNull := result == nil || result == Null
	pending := ctx.Pending()
	switch {
	case isNull && pending != nil:
		return nil, ctx.TakePending()
	case isNull:
		return nil, &ResultValidationFault{Name: name, Reason: "returned NULL without setting an error"}
	case pending != nil:
		ctx.TakePending()
		return nil, &ResultValidationFault{Name: name, Reason: "returned a result with an error set"}
	}
	if _, ok := result.(Handle); !ok {
		return nil, &ResultValidationFault{Name: name, Reason: fmt.Sprintf("returned a non-object result of type %T", result)}
	}
	return result, nil
}

// PrimitiveResult is the contract of int-returning slots such as setattr:
// -1 means an error was raised.
type PrimitiveResult struct{}

func (PrimitiveResult) Validate(name string, ctx *ExecutionContext, result any) (any, error) {
	n, ok := nativeInt(result)
	if !ok {
		return nil, &ResultValidationFault{Name: name, Reason: "returned a non-integer result"}
	}
	pending := ctx.Pending()
	switch {
	case n == -1 && pending != nil:
		return nil, ctx.TakePending()
	case n == -1:
		return nil, &ResultValidationFault{Name: name, Reason: "returned -1 without setting an error"}
	case pending != nil:
		ctx.TakePending()
		return nil, &ResultValidationFault{Name: name, Reason: "returned a result with an error set"}
	}
	return result, nil
}

// IterNextResult is the iternext contract: NULL without an error means the
// iterator is exhausted.
type IterNextResult struct{}

func (IterNextResult) Validate(name string, ctx *ExecutionContext, result any) (any, error) {
	if (result == nil || result == Null) && ctx.Pending() == nil {
		return nil, object.NewException(object.StopIteration, "")
	}
	return ObjectResult{}.Validate(name, ctx, result)
}

func nativeInt(v any) (int64, bool) {
	switch x := v.(type) {
	case Ssize:
		return int64(x), true
	case CInt:
		return int64(x), true
	case int:
		return int64(x), true
	case int32:
		return int64(x), true
	case int64:
		return x, true
	}
	return 0, false
}

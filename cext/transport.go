package cext

import (
	"fmt"
	"reflect"
)

// Transport performs the actual foreign call. Implementations report
// argument count mismatches as *ArityError, rejected argument or result
// types wrapping ErrUnsupportedType, and non-callable targets wrapping
// ErrNotExecutable.
type Transport interface {
	Invoke(callable any, args []any) (any, error)
}

// TransportFunc adapts a function to Transport.
type TransportFunc func(callable any, args []any) (any, error)

func (f TransportFunc) Invoke(callable any, args []any) (any, error) {
	return f(callable, args)
}

// ReflectTransport calls Go functions whose parameters use the native
// representations (Handle, Ssize, CInt, CString). It is the in-process
// stand-in for a real FFI.
type ReflectTransport struct{}

// Invoke calls callable with args after checking arity and argument types.
func (ReflectTransport) Invoke(callable any, args []any) (result any, err error) {
	fn := reflect.ValueOf(callable)
	if !fn.IsValid() || fn.Kind() != reflect.Func || fn.IsNil() {
		return nil, fmt.Errorf("%w: %T", ErrNotExecutable, callable)
	}
	rtype := fn.Type()

	fixed := rtype.NumIn()
	if rtype.IsVariadic() {
		fixed--
	}
	argc := len(args)
	if (rtype.IsVariadic() && argc < fixed) || (!rtype.IsVariadic() && argc != fixed) {
		return nil, &ArityError{Expected: fixed, Actual: argc}
	}
	if rtype.NumOut() > 1 {
		return nil, fmt.Errorf("%w: native functions return at most one value, %s returns %d", ErrUnsupportedType, rtype, rtype.NumOut())
	}

	in := make([]reflect.Value, argc)
	for i, arg := range args {
		var want reflect.Type
		if i < fixed {
			want = rtype.In(i)
		} else {
			want = rtype.In(fixed).Elem()
		}
		if in[i], err = convertArg(arg, want); err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
	}

	defer func() {
		if r := recover(); r != nil {
			result, err = nil, &CalleePanic{Value: r}
		}
	}()
	out := fn.Call(in)
	if len(out) == 0 {
		return nil, nil
	}
	return out[0].Interface(), nil
}

func convertArg(arg any, want reflect.Type) (reflect.Value, error) {
	if arg == nil {
		switch want.Kind() {
		case reflect.Interface, reflect.Ptr, reflect.Slice, reflect.Map, reflect.Func, reflect.Chan:
			return reflect.Zero(want), nil
		}
		return reflect.Value{}, fmt.Errorf("%w: NULL for %s", ErrUnsupportedType, want)
	}
	v := reflect.ValueOf(arg)
	if v.Type().AssignableTo(want) {
		return v, nil
	}
	return reflect.Value{}, fmt.Errorf("%w: %s for %s", ErrUnsupportedType, v.Type(), want)
}

package cext

import (
	"fmt"

	"github.com/chazu/nativecall/object"
)

// toNative converts a marshalled argument vector into native form. Native
// scalars pass through and heap objects become borrowed handles. Values
// without heap identity are materialized and retained; the returned temps
// must be released once the call is over.
func (rt *Runtime) toNative(args []any) (native []any, temps []object.Object) {
	native = make([]any, len(args))
	for i, arg := range args {
		switch {
		case isNativeScalar(arg):
			native[i] = arg
		case arg == nil || rt.Tracker.resolve(arg) != nil:
			native[i] = rt.Tracker.Expose(arg)
		default:
			obj := rt.Tracker.RetainBorrowed(rt.Materializer.Materialize(arg))
			if obj == nil {
				native[i] = Null
				continue
			}
			temps = append(temps, obj)
			native[i] = rt.Tracker.HandleOf(obj)
		}
	}
	return native, temps
}

// fromNative converts a validated native result into a managed value. A
// returned handle is a new reference which the managed side steals.
func (rt *Runtime) fromNative(result any) (object.Value, error) {
	switch x := result.(type) {
	case nil:
		return object.None, nil
	case Handle:
		if x == Null {
			return nil, nil
		}
		obj, ok := rt.Handles.Lookup(x)
		if !ok {
			return nil, fmt.Errorf("%w: dangling handle %#x", ErrUnsupportedType, uintptr(x))
		}
		rt.Tracker.Steal(obj)
		return obj, nil
	case Ssize:
		return int64(x), nil
	case CInt:
		return int64(x), nil
	case int:
		return int64(x), nil
	case int32:
		return int64(x), nil
	case int64:
		return x, nil
	case float64:
		return x, nil
	case bool:
		return x, nil
	case CString:
		return string(x), nil
	case string:
		return x, nil
	}
	return nil, fmt.Errorf("%w: native result of type %T", ErrUnsupportedType, result)
}

// describe renders the native argument kinds for logs and traces.
func (rt *Runtime) describe(native []any) []string {
	kinds := make([]string, len(native))
	for i, arg := range native {
		kinds[i] = nativeKind(arg)
		if h, ok := arg.(Handle); ok {
			if obj, found := rt.Handles.Lookup(h); found {
				kinds[i] += ":" + obj.TypeName()
			}
		}
	}
	return kinds
}

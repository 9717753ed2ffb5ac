package object

import "fmt"

// Value is anything an argument slot may hold: a heap Object or one of the
// unboxed scalars int, int64, float64, bool and string.
type Value = any

// Object is a heap-allocated managed object. Every Object can carry at most
// one NativeWrapper, created the first time it crosses into native code.
type Object interface {
	TypeName() string
	NativeWrapper() *NativeWrapper
	SetNativeWrapper(w *NativeWrapper)
}

// Base provides the wrapper slot for heap objects. Embed it by value.
type Base struct {
	wrapper *NativeWrapper
}

// NativeWrapper returns the object's wrapper, or nil if the object has
// never been exposed to native code.
func (b *Base) NativeWrapper() *NativeWrapper {
	return b.wrapper
}

// SetNativeWrapper attaches w. An object owns at most one wrapper, so
// replacing an existing one is a programming error.
func (b *Base) SetNativeWrapper(w *NativeWrapper) {
	if b.wrapper != nil && w != b.wrapper {
		panic("object: native wrapper already attached")
	}
	b.wrapper = w
}

// TypeName returns the managed type name of any Value.
func TypeName(v Value) string {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case Object:
		return x.TypeName()
	case int, int64:
		return "int"
	case float64:
		return "float"
	case bool:
		return "bool"
	case string:
		return "str"
	default:
		return fmt.Sprintf("foreign(%T)", v)
	}
}

// IsUnboxed reports whether v is one of the scalar representations that
// carries no heap identity.
func IsUnboxed(v Value) bool {
	switch v.(type) {
	case int, int64, float64, bool, string:
		return true
	}
	return false
}

// AsInt64 extracts an integer from an unboxed int, an *Int or a bool.
func AsInt64(v Value) (int64, bool) {
	switch x := v.(type) {
	case int:
		return int64(x), true
	case int64:
		return x, true
	case *Int:
		return x.V, true
	case bool:
		if x {
			return 1, true
		}
		return 0, true
	case *Bool:
		if x.V {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

// AsString extracts text from an unboxed string or a *Str.
func AsString(v Value) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case *Str:
		return x.V, true
	}
	return "", false
}

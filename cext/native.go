package cext

// Native-side scalar representations. Managed values that are not one of
// these cross the boundary as a Handle.
type (
	// Handle is the native reference to a managed object's wrapper.
	Handle uintptr
	// Ssize is a fixed-width signed size (Py_ssize_t).
	Ssize int64
	// CInt is a fixed-width 32-bit integer.
	CInt int32
	// CString is a native, NUL-free string.
	CString string
)

// Null is the invalid handle. Native code returns it to signal an error.
const Null Handle = 0

func isNativeScalar(v any) bool {
	switch v.(type) {
	case Handle, Ssize, CInt, CString:
		return true
	}
	return false
}

// nativeKind names the representation of a native argument for traces.
func nativeKind(v any) string {
	switch v.(type) {
	case Handle:
		return "handle"
	case Ssize:
		return "ssize"
	case CInt:
		return "int"
	case CString:
		return "cstring"
	case nil:
		return "null"
	}
	return "unknown"
}

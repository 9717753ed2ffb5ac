// Package object implements the slice of the managed object model that the
// native-call bridge consumes.
//
// This package contains:
//   - Heap objects (Int, Float, Str, Bool, None, Tuple, Dict, Exception)
//   - The NativeWrapper shadow record attached to objects exposed to native code
//   - A Factory with a permanently cached small-integer range
//   - Arguments, a concrete execution frame
//   - Callable and Function for managed invocation
package object

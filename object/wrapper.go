package object

// NativeWrapper is the manually reference-counted shadow of a managed
// object. Its count reflects outstanding native-held references only; the
// managed side is covered by the garbage collector.
type NativeWrapper struct {
	count  int64
	handle uintptr
}

// NewNativeWrapper returns a wrapper with a count of one, published under
// handle.
func NewNativeWrapper(handle uintptr) *NativeWrapper {
	return &NativeWrapper{count: 1, handle: handle}
}

// Count returns the current native reference count.
func (w *NativeWrapper) Count() int64 {
	return w.count
}

// Handle returns the handle the wrapper is currently published under, or 0
// once the wrapper has been released.
func (w *NativeWrapper) Handle() uintptr {
	return w.handle
}

// Publish records the handle native code uses to reach the wrapper.
func (w *NativeWrapper) Publish(handle uintptr) {
	w.handle = handle
}

// Released reports whether the wrapper sits at the stable zero state.
func (w *NativeWrapper) Released() bool {
	return w.count == 0
}

// Retain adds one native reference and returns the new count.
func (w *NativeWrapper) Retain() int64 {
	w.count++
	return w.count
}

// Release drops one native reference. reachedZero is true only on the
// transition from one to zero; releasing a wrapper already at zero leaves
// it there and reports false.
func (w *NativeWrapper) Release() (count int64, reachedZero bool) {
	if w.count == 0 {
		return 0, false
	}
	w.count--
	return w.count, w.count == 0
}

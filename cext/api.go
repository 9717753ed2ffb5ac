package cext

import (
	"github.com/chazu/nativecall/object"
)

// API is the surface native callees program against. Functions that return
// a Handle document whether it is a new reference, which the caller owns,
// or a borrowed one. Error reporting follows the native convention: the
// error indicator is set and a sentinel (Null or -1) is returned.
type API struct {
	rt  *Runtime
	ctx *ExecutionContext
}

// Context returns the execution context the API is bound to.
func (a *API) Context() *ExecutionContext {
	return a.ctx
}

// Object returns the managed object behind h, or nil.
func (a *API) Object(h Handle) object.Object {
	obj, _ := a.rt.Handles.Lookup(h)
	return obj
}

// NewRef returns a new reference to v.
func (a *API) NewRef(v object.Value) Handle {
	obj := a.rt.Tracker.RetainBorrowed(v)
	if obj == nil {
		return a.badInternalCall("NewRef", v)
	}
	return a.rt.Tracker.HandleOf(obj)
}

// Borrow returns a borrowed handle for v, or Null when v has no heap
// identity to borrow.
func (a *API) Borrow(v object.Value) Handle {
	return a.rt.Tracker.Expose(v)
}

// None returns a new reference to None.
func (a *API) None() Handle {
	return a.NewRef(object.None)
}

// IncRef adds a reference to h.
func (a *API) IncRef(h Handle) {
	if obj := a.Object(h); obj != nil {
		a.rt.Tracker.RetainBorrowed(obj)
	}
}

// DecRef drops a reference to h. The handle is invalid once its count
// reaches zero.
func (a *API) DecRef(h Handle) {
	if obj := a.Object(h); obj != nil {
		a.rt.Tracker.Release(obj, obj.NativeWrapper())
	}
}

// RefCount returns the native reference count of h, or 0 if h is not
// published. Immortal singletons report ImmortalRefCount.
func (a *API) RefCount(h Handle) int64 {
	obj := a.Object(h)
	if obj != nil && IsImmortal(obj) {
		return ImmortalRefCount
	}
	if obj == nil || obj.NativeWrapper() == nil {
		return 0
	}
	return obj.NativeWrapper().Count()
}

// FromSsize returns a new reference to an int.
func (a *API) FromSsize(n Ssize) Handle {
	return a.NewRef(a.rt.Factory.Int(int64(n)))
}

// FromString returns a new reference to a str.
func (a *API) FromString(s CString) Handle {
	return a.NewRef(a.rt.Factory.NewStr(string(s)))
}

// LongAsSsize converts an int handle. It returns -1 with the error
// indicator set on failure.
func (a *API) LongAsSsize(h Handle) Ssize {
	obj := a.Object(h)
	n, ok := object.AsInt64(obj)
	if !ok {
		a.ErrSetString(object.TypeError, CString("an integer is required (got type "+object.TypeName(obj)+")"))
		return -1
	}
	return Ssize(n)
}

// StringAsCString returns the contents of a str handle, or "" with the
// error indicator set.
func (a *API) StringAsCString(h Handle) CString {
	obj := a.Object(h)
	s, ok := object.AsString(obj)
	if !ok {
		a.ErrSetString(object.TypeError, CString("expected str, got "+object.TypeName(obj)))
		return ""
	}
	return CString(s)
}

// TupleSize returns the length of a tuple handle, or -1 with the error
// indicator set.
func (a *API) TupleSize(h Handle) Ssize {
	t, ok := a.Object(h).(*object.Tuple)
	if !ok {
		a.ErrSetString(object.SystemError, "bad argument to internal function")
		return -1
	}
	return Ssize(t.Len())
}

// TupleGetItem returns a borrowed handle to item i of a tuple.
func (a *API) TupleGetItem(h Handle, i Ssize) Handle {
	t, ok := a.Object(h).(*object.Tuple)
	if !ok {
		a.ErrSetString(object.SystemError, "bad argument to internal function")
		return Null
	}
	if i < 0 || int(i) >= t.Len() {
		a.ErrSetString(object.IndexError, "tuple index out of range")
		return Null
	}
	h = a.Borrow(t.At(int(i)))
	if h == Null {
		a.ErrSetString(object.SystemError, "tuple item has no native representation")
	}
	return h
}

// DictGetItem returns a borrowed handle to d[key], or Null without setting
// an error when the key is absent. An unboxed value is materialized into the
// dict so the borrowed object stays reachable from it.
func (a *API) DictGetItem(h Handle, key CString) Handle {
	d, ok := a.Object(h).(*object.Dict)
	if !ok {
		return Null
	}
	v, found := d.Get(string(key))
	if !found {
		return Null
	}
	if a.rt.Tracker.resolve(v) == nil {
		if obj, ok := a.rt.Materializer.Materialize(v).(object.Object); ok {
			v = obj
			d.Set(string(key), obj)
		}
	}
	return a.Borrow(v)
}

// ErrSetString sets the error indicator.
func (a *API) ErrSetString(typ string, msg CString) {
	a.ctx.Raise(&object.Exception{Type: typ, Message: string(msg)})
}

// ErrOccurred returns the pending error, or nil.
func (a *API) ErrOccurred() *object.Exception {
	return a.ctx.Pending()
}

// ErrClear clears the error indicator.
func (a *API) ErrClear() {
	a.ctx.TakePending()
}

// GetExcInfo returns the exception currently being handled by the calling
// frame, as handed over for this call.
func (a *API) GetExcInfo() *object.Exception {
	return a.ctx.CaughtException()
}

// SetExcInfo replaces the exception being handled. The caller's frame sees
// the new value when the call returns.
func (a *API) SetExcInfo(exc *object.Exception) {
	a.ctx.SetCaughtException(exc)
}

func (a *API) badInternalCall(fn string, v object.Value) Handle {
	a.ErrSetString(object.SystemError, CString(fn+": cannot reference value of type "+object.TypeName(v)))
	return Null
}

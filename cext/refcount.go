package cext

import (
	"github.com/chazu/nativecall/object"
)

// Tracker performs the manual reference counting native callees expect.
//
// A wrapper is created the first time an object is exposed and starts with
// one reference. Reaching zero withdraws the handle; the wrapper itself stays
// attached to the object so a later exposure can revive it. Tracker is not
// safe for concurrent use: a wrapper is retained and released on the thread
// that drives the call.
//
// None, True and False are shared by every runtime in the process. They are
// immortal: they never carry a wrapper, are never counted, and each tracker
// publishes them once under its own handle.
type Tracker struct {
	factory    *object.Factory
	handles    *HandleTable
	singletons map[object.Object]Handle
}

// ImmortalRefCount is the count reported for None, True and False.
const ImmortalRefCount int64 = 1<<32 - 1

// NewTracker creates a tracker publishing into handles.
func NewTracker(factory *object.Factory, handles *HandleTable) *Tracker {
	return &Tracker{
		factory:    factory,
		handles:    handles,
		singletons: make(map[object.Object]Handle, 3),
	}
}

// IsImmortal reports whether obj is one of the process-wide singletons.
func IsImmortal(obj object.Object) bool {
	return obj == object.None || obj == object.True || obj == object.False
}

// resolve maps v to the heap object that carries its wrapper. Small ints and
// bools map to their singletons. Other unboxed scalars have no identity and
// resolve to nil.
func (t *Tracker) resolve(v object.Value) object.Object {
	switch x := v.(type) {
	case object.Object:
		return x
	case bool:
		return object.BoolOf(x)
	case int:
		if t.factory.IsSmallInt(int64(x)) {
			return t.factory.Int(int64(x))
		}
	case int64:
		if t.factory.IsSmallInt(x) {
			return t.factory.Int(x)
		}
	}
	return nil
}

// Expose returns the handle for v without taking a reference, creating the
// wrapper on first exposure. Values without heap identity (large ints,
// floats, strings) have nothing to borrow and yield Null; callers materialize
// and retain them first.
func (t *Tracker) Expose(v object.Value) Handle {
	obj := t.resolve(v)
	if obj == nil {
		return Null
	}
	if IsImmortal(obj) {
		return t.singletonHandle(obj)
	}
	w := obj.NativeWrapper()
	switch {
	case w == nil:
		t.attach(obj)
	case w.Released():
		t.revive(obj, w)
	}
	return Handle(obj.NativeWrapper().Handle())
}

// RetainBorrowed ensures v has a wrapper and adds one native reference. A
// newly created wrapper already counts the reference. Unboxed values are
// boxed first; the caller keeps the returned object reachable.
func (t *Tracker) RetainBorrowed(v object.Value) object.Object {
	obj := t.resolve(v)
	if obj == nil {
		obj = t.factory.Box(v)
	}
	if obj == nil {
		return nil
	}
	if IsImmortal(obj) {
		t.singletonHandle(obj)
		return obj
	}
	w := obj.NativeWrapper()
	switch {
	case w == nil:
		t.attach(obj)
	case w.Released():
		t.revive(obj, w)
	default:
		w.Retain()
	}
	return obj
}

// HandleOf returns the handle obj is currently published under, or Null.
func (t *Tracker) HandleOf(obj object.Object) Handle {
	if IsImmortal(obj) {
		return t.singletonHandle(obj)
	}
	if w := obj.NativeWrapper(); w != nil {
		return Handle(w.Handle())
	}
	return Null
}

// Release drops one native reference from w, the wrapper of v. On the
// transition to zero the handle is withdrawn and, when v is a tuple, each
// item that carries a wrapper is released in turn. Releasing a wrapper that
// is already at zero does nothing.
func (t *Tracker) Release(v object.Value, w *object.NativeWrapper) {
	obj := t.resolve(v)
	if obj == nil || IsImmortal(obj) {
		return
	}
	if w == nil {
		w = obj.NativeWrapper()
		if w == nil {
			return
		}
	}
	count, zero := w.Release()
	if !zero {
		log.Debugf("release %s: count %d", object.TypeName(obj), count)
		return
	}
	t.handles.Withdraw(Handle(w.Handle()))
	w.Publish(0)

	if tuple, ok := obj.(*object.Tuple); ok {
		t.releaseItems(tuple)
	}
}

// ReleaseTuple releases an argument tuple after a call. A tuple that never
// reached native code has no wrapper but still owes its items the
// references taken when it was built.
func (t *Tracker) ReleaseTuple(tuple *object.Tuple) {
	if w := tuple.NativeWrapper(); w != nil {
		t.Release(tuple, w)
		return
	}
	t.releaseItems(tuple)
}

func (t *Tracker) releaseItems(tuple *object.Tuple) {
	for i := 0; i < tuple.Len(); i++ {
		item := t.resolve(tuple.At(i))
		if item == nil {
			continue
		}
		if w := item.NativeWrapper(); w != nil {
			t.Release(item, w)
		}
	}
}

// Steal adopts a reference native code handed back: the count drops by one
// and the managed side keeps the object alive from here on. No traversal
// happens because the object remains in use.
func (t *Tracker) Steal(obj object.Object) {
	if IsImmortal(obj) {
		return
	}
	w := obj.NativeWrapper()
	if w == nil {
		return
	}
	if _, zero := w.Release(); zero {
		t.handles.Withdraw(Handle(w.Handle()))
		w.Publish(0)
	}
}

func (t *Tracker) attach(obj object.Object) {
	h := t.handles.Publish(obj)
	obj.SetNativeWrapper(object.NewNativeWrapper(uintptr(h)))
}

func (t *Tracker) singletonHandle(obj object.Object) Handle {
	if h, ok := t.singletons[obj]; ok {
		return h
	}
	h := t.handles.Publish(obj)
	t.singletons[obj] = h
	return h
}

func (t *Tracker) revive(obj object.Object, w *object.NativeWrapper) {
	w.Retain()
	w.Publish(uintptr(t.handles.Publish(obj)))
}

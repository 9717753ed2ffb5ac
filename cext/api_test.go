package cext

import (
	"testing"

	"github.com/chazu/nativecall/object"
)

func TestAPI_References(t *testing.T) {
	rt := New(nil)
	api := rt.API(rt.NewContext())
	s := rt.Factory.NewStr("x")

	h := api.NewRef(s)
	if api.Object(h) != s {
		t.Fatal("NewRef handle does not resolve to the object")
	}
	if api.RefCount(h) != 1 {
		t.Errorf("RefCount = %d, want 1", api.RefCount(h))
	}
	api.IncRef(h)
	if api.RefCount(h) != 2 {
		t.Errorf("RefCount after IncRef = %d, want 2", api.RefCount(h))
	}
	if api.Borrow(s) != h || api.RefCount(h) != 2 {
		t.Error("Borrow changed the handle or the count")
	}
	api.DecRef(h)
	api.DecRef(h)
	if api.Object(h) != nil {
		t.Error("handle still valid after the last DecRef")
	}
	if api.RefCount(h) != 0 {
		t.Errorf("RefCount of a withdrawn handle = %d", api.RefCount(h))
	}

	if n := api.RefCount(api.None()); n != ImmortalRefCount {
		t.Errorf("RefCount(None) = %d, want %d", n, ImmortalRefCount)
	}

	if api.NewRef(struct{}{}) != Null {
		t.Error("NewRef of a foreign value should fail")
	}
	if exc := api.ErrOccurred(); exc == nil || exc.Type != object.SystemError {
		t.Errorf("ErrOccurred = %v, want SystemError", exc)
	}
	api.ErrClear()
	if api.ErrOccurred() != nil {
		t.Error("ErrClear did not clear the indicator")
	}
}

func TestAPI_Tuples(t *testing.T) {
	rt := New(nil)
	api := rt.API(rt.NewContext())
	a := rt.Factory.NewStr("a")
	h := api.NewRef(rt.Factory.NewTuple(a, int64(5)))

	if n := api.TupleSize(h); n != 2 {
		t.Errorf("TupleSize = %d, want 2", n)
	}
	if api.Object(api.TupleGetItem(h, 0)) != a {
		t.Error("TupleGetItem(0) is not the item")
	}
	if api.Object(api.TupleGetItem(h, 1)) != rt.Factory.Int(5) {
		t.Error("TupleGetItem(1) is not the small int singleton")
	}

	if api.TupleGetItem(h, 2) != Null {
		t.Error("out of range index should be Null")
	}
	if exc := api.ErrOccurred(); exc == nil || exc.Type != object.IndexError {
		t.Errorf("ErrOccurred = %v, want IndexError", exc)
	}
	api.ErrClear()

	if api.TupleSize(api.None()) != -1 || api.ErrOccurred() == nil {
		t.Error("TupleSize of a non-tuple should fail with the indicator set")
	}
	api.ErrClear()

	raw := api.NewRef(rt.Factory.NewTuple(2.5))
	if api.TupleGetItem(raw, 0) != Null || api.ErrOccurred() == nil {
		t.Error("an unmaterialized item should fail with the indicator set")
	}
}

func TestAPI_Conversions(t *testing.T) {
	rt := New(nil)
	api := rt.API(rt.NewContext())

	if n := api.LongAsSsize(api.FromSsize(1 << 40)); n != 1<<40 {
		t.Errorf("LongAsSsize = %d", n)
	}
	if s := api.StringAsCString(api.FromString("hi")); s != "hi" {
		t.Errorf("StringAsCString = %q", s)
	}
	if api.LongAsSsize(api.FromString("hi")) != -1 || api.ErrOccurred() == nil {
		t.Error("LongAsSsize of a str should fail")
	}
	api.ErrClear()

	d := rt.Factory.NewDict([]object.Keyword{{Name: "k", Value: "v"}})
	dh := api.NewRef(d)
	first := api.DictGetItem(dh, "k")
	if s := api.StringAsCString(first); s != "v" {
		t.Errorf("DictGetItem(k) = %q", s)
	}
	if api.DictGetItem(dh, "k") != first {
		t.Error("DictGetItem boxed the value again")
	}
	if api.DictGetItem(dh, "missing") != Null || api.ErrOccurred() != nil {
		t.Error("missing key should be Null without an error")
	}
}

func TestAPI_ExcInfo(t *testing.T) {
	rt := New(nil)
	ctx := rt.NewContext()
	api := rt.API(ctx)
	exc := object.NewException(object.ValueError, "v")

	api.SetExcInfo(exc)
	if api.GetExcInfo() != exc || ctx.CaughtException() != exc {
		t.Error("SetExcInfo did not update the context cell")
	}
	if api.Context() != ctx {
		t.Error("Context() is not the bound context")
	}
}

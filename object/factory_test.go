package object

import "testing"

func TestFactory_SmallIntsAreCached(t *testing.T) {
	f := NewDefaultFactory()

	for _, v := range []int64{-5, 0, 1, 256} {
		if f.Int(v) != f.Int(v) {
			t.Errorf("Int(%d) not cached", v)
		}
	}
	if f.Int(257) == f.Int(257) {
		t.Error("Int(257) should allocate")
	}
	if f.Int(-6) == f.Int(-6) {
		t.Error("Int(-6) should allocate")
	}
	if f.NewInt(1) == f.Int(1) {
		t.Error("NewInt must never return the singleton")
	}
}

func TestFactory_EmptyRange(t *testing.T) {
	f := NewFactory(1, 0)
	if f.IsSmallInt(0) || f.IsSmallInt(1) {
		t.Error("empty range should cache nothing")
	}
}

func TestFactory_Box(t *testing.T) {
	f := NewDefaultFactory()

	if f.Box(true) != True {
		t.Error("Box(true) should be the True singleton")
	}
	if f.Box(3) != f.Int(3) {
		t.Error("Box(3) should be the cached int")
	}
	s, ok := f.Box("hi").(*Str)
	if !ok || s.V != "hi" {
		t.Errorf("Box(\"hi\") = %v", f.Box("hi"))
	}
	if f.Box(None) != None {
		t.Error("Box(None) should pass through")
	}
}

func TestDict_PreservesOrder(t *testing.T) {
	f := NewDefaultFactory()
	d := f.NewDict([]Keyword{{"b", 1}, {"a", 2}})
	d.Set("b", 3)

	kws := d.Keywords()
	if len(kws) != 2 || kws[0].Name != "b" || kws[1].Name != "a" {
		t.Fatalf("keywords = %v", kws)
	}
	if kws[0].Value != 3 {
		t.Errorf("b = %v, want 3", kws[0].Value)
	}
}

func TestTuple_String(t *testing.T) {
	f := NewDefaultFactory()
	if got := f.NewTuple(1).String(); got != "(1,)" {
		t.Errorf("got %s", got)
	}
	if got := f.NewTuple(1, "a", None).String(); got != `(1, "a", None)` {
		t.Errorf("got %s", got)
	}
}

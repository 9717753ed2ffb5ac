package cext

import (
	"errors"
	"testing"
)

func TestReflectTransport_Call(t *testing.T) {
	var tr ReflectTransport
	got, err := tr.Invoke(func(h Handle, n Ssize) Ssize { return Ssize(h) + n }, []any{Handle(3), Ssize(4)})
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if got != Ssize(7) {
		t.Errorf("result = %v, want 7", got)
	}

	got, err = tr.Invoke(func() {}, nil)
	if err != nil || got != nil {
		t.Errorf("no-result call = (%v, %v), want (nil, nil)", got, err)
	}
}

func TestReflectTransport_Variadic(t *testing.T) {
	var tr ReflectTransport
	sum := func(first Handle, rest ...Handle) Ssize { return Ssize(len(rest)) }

	got, err := tr.Invoke(sum, []any{Handle(1), Handle(2), Handle(3)})
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if got != Ssize(2) {
		t.Errorf("result = %v, want 2", got)
	}

	_, err = tr.Invoke(sum, nil)
	var arity *ArityError
	if !errors.As(err, &arity) || arity.Expected != 1 || arity.Actual != 0 {
		t.Errorf("err = %v, want arity 1/0", err)
	}
}

func TestReflectTransport_Faults(t *testing.T) {
	var tr ReflectTransport
	tests := []struct {
		name     string
		callable any
		args     []any
		want     error
	}{
		{"not a function", "strlen", nil, ErrNotExecutable},
		{"nil function", (func())(nil), nil, ErrNotExecutable},
		{"argument type", func(CInt) {}, []any{Handle(1)}, ErrUnsupportedType},
		{"null scalar", func(Ssize) {}, []any{nil}, ErrUnsupportedType},
		{"two results", func() (int, int) { return 1, 2 }, nil, ErrUnsupportedType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tr.Invoke(tt.callable, tt.args)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestReflectTransport_Arity(t *testing.T) {
	var tr ReflectTransport
	_, err := tr.Invoke(func(a, b Handle) {}, []any{Handle(1), Handle(2), Ssize(1)})
	var arity *ArityError
	if !errors.As(err, &arity) {
		t.Fatalf("err = %v, want *ArityError", err)
	}
	if arity.Expected != 2 || arity.Actual != 3 {
		t.Errorf("arity = %+v, want 2/3", arity)
	}
}

func TestReflectTransport_Panic(t *testing.T) {
	var tr ReflectTransport
	_, err := tr.Invoke(func() { panic("segfault") }, nil)
	var p *CalleePanic
	if !errors.As(err, &p) {
		t.Fatalf("err = %v, want *CalleePanic", err)
	}
	if p.Value != "segfault" {
		t.Errorf("panic value = %v", p.Value)
	}
}

func TestReflectTransport_NilPointerArgument(t *testing.T) {
	var tr ReflectTransport
	called := false
	_, err := tr.Invoke(func(p *int) { called = p == nil }, []any{nil})
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if !called {
		t.Error("nil was not passed as a nil pointer")
	}
}

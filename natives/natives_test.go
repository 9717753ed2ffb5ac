package natives

import (
	"errors"
	"testing"

	"github.com/chazu/nativecall/cext"
	"github.com/chazu/nativecall/object"
)

func setup(t *testing.T) (*cext.Runtime, *cext.ExecutionContext, map[string]*cext.Root) {
	t.Helper()
	rt := cext.New(nil)
	ctx := rt.NewContext()
	m := NewModule(rt.API(ctx), 2)
	return rt, ctx, m.Roots(rt)
}

func TestModule_Calls(t *testing.T) {
	rt, ctx, roots := setup(t)
	self := rt.Factory.NewStr("-")

	tests := []struct {
		root  string
		frame *object.Arguments
		want  string
	}{
		{"len", object.NewArguments(self, "hello"), "5"},
		{"concat", object.NewArguments(self).WithVarargs("a", "b", "c"), `"abc"`},
		{"join", object.NewArguments(self).WithVarargs("x", "y"), `"x-y"`},
		{"getattr", object.NewArguments(self, "limit"), "2"},
		{"compare", object.NewArguments(3, 4, int64(cext.OpLT)), "True"},
		{"eq", object.NewArguments(3, 4), "False"},
		{"eq", object.NewArguments(int64(1000), int64(1000)), "True"},
	}
	for _, tt := range tests {
		t.Run(tt.root, func(t *testing.T) {
			res, err := roots[tt.root].Execute(ctx, tt.frame)
			if err != nil {
				t.Fatalf("Execute: %v", err)
			}
			if got := object.Repr(res); got != tt.want {
				t.Errorf("result = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestModule_SetAttr(t *testing.T) {
	_, ctx, roots := setup(t)

	if _, err := roots["setattr"].Execute(ctx, object.NewArguments(object.None, "limit", 5)); err != nil {
		t.Fatalf("setattr: %v", err)
	}
	res, err := roots["getattr"].Execute(ctx, object.NewArguments(object.None, "limit"))
	if err != nil {
		t.Fatal(err)
	}
	if n, _ := object.AsInt64(res); n != 5 {
		t.Errorf("limit = %v, want 5", res)
	}

	_, err = roots["setattr"].Execute(ctx, object.NewArguments(object.None, "other", 5))
	if !errors.Is(err, object.NewException(object.AttributeError, "")) {
		t.Errorf("err = %v, want AttributeError", err)
	}
}

func TestModule_Iteration(t *testing.T) {
	_, ctx, roots := setup(t)
	next := roots["next"]

	var got []int64
	for {
		res, err := next.Execute(ctx, object.NewArguments(object.None))
		if errors.Is(err, object.NewException(object.StopIteration, "")) {
			break
		}
		if err != nil {
			t.Fatalf("next: %v", err)
		}
		n, _ := object.AsInt64(res)
		got = append(got, n)
		if len(got) > 10 {
			t.Fatal("iterator did not stop")
		}
	}
	if len(got) != 2 || got[0] != 0 || got[1] != 1 {
		t.Errorf("items = %v, want [0 1]", got)
	}
}

func TestModule_Errors(t *testing.T) {
	_, ctx, roots := setup(t)

	_, err := roots["fail"].Execute(ctx, object.NewArguments(object.None, object.None))
	if !errors.Is(err, object.NewException(object.ValueError, "requested failure")) {
		t.Errorf("fail: err = %v", err)
	}

	_, err = roots["len"].Execute(ctx, object.NewArguments(object.None, 3))
	if !errors.Is(err, object.NewException(object.TypeError, "")) {
		t.Errorf("len(3): err = %v, want TypeError", err)
	}

	_, err = roots["getattr"].Execute(ctx, object.NewArguments(object.None, "missing"))
	if !errors.Is(err, object.NewException(object.AttributeError, "")) {
		t.Errorf("getattr: err = %v, want AttributeError", err)
	}

	_, err = roots["concat"].Execute(ctx, object.NewArguments(object.None).WithVarargs("a", 1))
	if !errors.Is(err, object.NewException(object.TypeError, "")) {
		t.Errorf("concat: err = %v, want TypeError", err)
	}
}

func TestModule_ExcInfo(t *testing.T) {
	_, ctx, roots := setup(t)
	handled := object.NewException(object.KeyError, "k")

	frame := object.NewArguments(object.None, object.None)
	frame.SetCaughtException(handled)
	res, err := roots["exc_info"].Execute(ctx, frame)
	if err != nil {
		t.Fatal(err)
	}
	if res != object.None {
		t.Errorf("exc_info = %v before the state was requested, want None", res)
	}

	ctx.LastException()
	frame = object.NewArguments(object.None, object.None)
	frame.SetCaughtException(handled)
	res, err = roots["exc_info"].Execute(ctx, frame)
	if err != nil {
		t.Fatal(err)
	}
	if res != handled {
		t.Errorf("exc_info = %v, want %v", res, handled)
	}
}

func TestModule_HandlesBalanced(t *testing.T) {
	rt, ctx, roots := setup(t)
	for i := 0; i < 3; i++ {
		if _, err := roots["concat"].Execute(ctx, object.NewArguments(object.None).WithVarargs("a", "b")); err != nil {
			t.Fatal(err)
		}
	}
	// Only None, exposed as self, remains published.
	if n := rt.Handles.Len(); n != 1 {
		t.Errorf("published handles = %d, want 1", n)
	}
}

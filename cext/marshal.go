package cext

import (
	"fmt"
	"math"

	"github.com/chazu/nativecall/object"
)

// Frame is the caller's execution frame as the marshaller reads it.
type Frame interface {
	ArgumentAt(i int) object.Value
	VariadicTail() []object.Value
	KeywordMap() []object.Keyword
	UserArgumentCount() int
	CaughtException() *object.Exception
	SetCaughtException(exc *object.Exception)
}

// NativeCall is a freshly built native argument vector together with the
// temporary tuples and other objects that must be released once the call
// returns.
type NativeCall struct {
	Args  []any
	Temps []*object.Tuple
	Owned []object.Object
}

// Marshaller builds per-convention argument vectors from a frame.
type Marshaller struct {
	factory      *object.Factory
	tracker      *Tracker
	materializer *Materializer
}

// NewMarshaller creates a marshaller.
func NewMarshaller(factory *object.Factory, tracker *Tracker, materializer *Materializer) *Marshaller {
	return &Marshaller{factory: factory, tracker: tracker, materializer: materializer}
}

// NativeArgs builds the vector the native callee of conv expects. op is the
// fixed comparison opcode for RichCompareFixedOp and ignored otherwise.
func (m *Marshaller) NativeArgs(name string, conv Convention, f Frame, op int) (*NativeCall, error) {
	self := f.ArgumentAt(0)

	switch conv {
	case NoArgs:
		return &NativeCall{Args: []any{self, object.None}}, nil

	case SingleArg:
		return &NativeCall{Args: []any{self, f.ArgumentAt(1)}}, nil

	case VarArgs:
		args := m.argsTuple(f.VariadicTail())
		return &NativeCall{Args: []any{self, args}, Temps: []*object.Tuple{args}}, nil

	case VarArgsKeywords:
		args := m.argsTuple(f.VariadicTail())
		kwargs, values := m.kwargsDict(f.KeywordMap())
		return &NativeCall{
			Args:  []any{self, args, kwargs},
			Temps: []*object.Tuple{args, values},
			Owned: []object.Object{kwargs},
		}, nil

	case FastCall:
		varargs := f.VariadicTail()
		args := m.argsTuple(varargs)
		return &NativeCall{Args: []any{self, args, Ssize(len(varargs))}, Temps: []*object.Tuple{args}}, nil

	case FastCallKeywords:
		varargs := f.VariadicTail()
		kwargs := f.KeywordMap()
		values := make([]object.Value, 0, len(varargs)+len(kwargs))
		values = append(values, varargs...)
		names := make([]object.Value, len(kwargs))
		for i, kw := range kwargs {
			values = append(values, kw.Value)
			names[i] = kw.Name
		}
		args := m.argsTuple(values)
		kwnames := m.argsTuple(names)
		return &NativeCall{
			Args:  []any{self, args, Ssize(len(varargs)), kwnames},
			Temps: []*object.Tuple{args, kwnames},
		}, nil

	case Allocator:
		n, err := asSsize(f.ArgumentAt(1))
		if err != nil {
			return nil, &TypeFault{Name: name, Cause: err}
		}
		return &NativeCall{Args: []any{self, n}}, nil

	case AttrGet:
		key, err := asCString(f.ArgumentAt(1))
		if err != nil {
			return nil, &TypeFault{Name: name, Cause: err}
		}
		return &NativeCall{Args: []any{self, key}}, nil

	case AttrSet:
		key, err := asCString(f.ArgumentAt(1))
		if err != nil {
			return nil, &TypeFault{Name: name, Cause: err}
		}
		return &NativeCall{Args: []any{self, key, f.ArgumentAt(2)}}, nil

	case RichCompare:
		cop, err := asCInt(f.ArgumentAt(2))
		if err != nil {
			return nil, &TypeFault{Name: name, Cause: err}
		}
		return &NativeCall{Args: []any{self, f.ArgumentAt(1), cop}}, nil

	case RichCompareFixedOp:
		return &NativeCall{Args: []any{self, f.ArgumentAt(1), CInt(op)}}, nil

	case IndexedSet:
		i, err := asSsize(f.ArgumentAt(1))
		if err != nil {
			return nil, &TypeFault{Name: name, Cause: err}
		}
		return &NativeCall{Args: []any{self, i, f.ArgumentAt(2)}}, nil

	case ReverseBinaryOp:
		return &NativeCall{Args: []any{f.ArgumentAt(1), self}}, nil

	case Power, ReversePower:
		args, err := powerArgs(name, conv, self, f.VariadicTail())
		if err != nil {
			return nil, err
		}
		return &NativeCall{Args: args}, nil

	case IterNext:
		return &NativeCall{Args: []any{self}}, nil

	case Direct:
		return &NativeCall{Args: m.userArgs(f)}, nil
	}
	return nil, fmt.Errorf("cext: unhandled convention %s", conv)
}

// ManagedArgs builds the positional list and keywords used when the bound
// callable turns out to be a managed function.
func (m *Marshaller) ManagedArgs(name string, conv Convention, f Frame, op int) ([]object.Value, []object.Keyword, error) {
	self := f.ArgumentAt(0)

	switch conv {
	case RichCompare:
		code, ok := object.AsInt64(f.ArgumentAt(2))
		if !ok {
			return nil, nil, &TypeFault{Name: name, Cause: integerRequired(f.ArgumentAt(2))}
		}
		s, ok := CompareOpString(int(code))
		if !ok {
			return nil, nil, &TypeFault{Name: name, Cause: object.NewException(object.ValueError, "invalid comparison opcode %d", code)}
		}
		return []object.Value{self, f.ArgumentAt(1), s}, nil, nil

	case RichCompareFixedOp:
		s, ok := CompareOpString(op)
		if !ok {
			return nil, nil, &TypeFault{Name: name, Cause: object.NewException(object.ValueError, "invalid comparison opcode %d", op)}
		}
		return []object.Value{self, f.ArgumentAt(1), s}, nil, nil

	case ReverseBinaryOp:
		return []object.Value{f.ArgumentAt(1), self}, nil, nil

	case Power, ReversePower:
		args, err := powerArgs(name, conv, self, f.VariadicTail())
		if err != nil {
			return nil, nil, err
		}
		out := make([]object.Value, len(args))
		copy(out, args)
		return out, nil, nil
	}
	return m.userArgs(f), f.KeywordMap(), nil
}

// userArgs concatenates the user arguments and the variadic tail.
func (m *Marshaller) userArgs(f Frame) []object.Value {
	n := f.UserArgumentCount()
	tail := f.VariadicTail()
	out := make([]object.Value, 0, n+len(tail))
	for i := 0; i < n; i++ {
		out = append(out, f.ArgumentAt(i))
	}
	return append(out, tail...)
}

// argsTuple builds an argument tuple for native code. Tuple construction
// steals one reference per item, so every item is materialized and given a
// reference up front.
func (m *Marshaller) argsTuple(items []object.Value) *object.Tuple {
	prepared := make([]object.Value, len(items))
	for i, item := range items {
		v := m.materializer.Materialize(item)
		if obj := m.tracker.RetainBorrowed(v); obj != nil {
			v = obj
		}
		prepared[i] = v
	}
	return m.factory.NewTuple(prepared...)
}

// kwargsDict builds the keyword dict for native code. Its values are
// prepared like tuple items and held by the returned values tuple, which is
// released with the call's other temporaries. The dict carries one
// reference of its own.
func (m *Marshaller) kwargsDict(kws []object.Keyword) (*object.Dict, *object.Tuple) {
	raw := make([]object.Value, len(kws))
	for i, kw := range kws {
		raw[i] = kw.Value
	}
	values := m.argsTuple(raw)

	prepared := make([]object.Keyword, len(kws))
	for i, kw := range kws {
		prepared[i] = object.Keyword{Name: kw.Name, Value: values.At(i)}
	}
	d := m.factory.NewDict(prepared)
	m.tracker.RetainBorrowed(d)
	return d, values
}

func powerArgs(name string, conv Convention, self object.Value, varargs []object.Value) ([]any, error) {
	if len(varargs) == 0 || len(varargs) > 2 {
		return nil, &TypeFault{Name: name, Cause: object.NewException(object.TypeError, "expected 1 or 2 arguments, got %d", len(varargs))}
	}
	var mod object.Value = object.None
	if len(varargs) > 1 {
		mod = varargs[1]
	}
	if conv == ReversePower {
		return []any{varargs[0], self, mod}, nil
	}
	return []any{self, varargs[0], mod}, nil
}

func asSsize(v object.Value) (Ssize, error) {
	n, ok := object.AsInt64(v)
	if !ok {
		return 0, integerRequired(v)
	}
	return Ssize(n), nil
}

func asCInt(v object.Value) (CInt, error) {
	n, ok := object.AsInt64(v)
	if !ok {
		return 0, integerRequired(v)
	}
	if n < math.MinInt32 || n > math.MaxInt32 {
		return 0, object.NewException(object.OverflowError, "Python int too large to convert to C int")
	}
	return CInt(n), nil
}

func asCString(v object.Value) (CString, error) {
	s, ok := object.AsString(v)
	if !ok {
		return "", object.NewException(object.TypeError, "attribute name must be string, not '%s'", object.TypeName(v))
	}
	return CString(s), nil
}

func integerRequired(v object.Value) error {
	return object.NewException(object.TypeError, "an integer is required (got type %s)", object.TypeName(v))
}

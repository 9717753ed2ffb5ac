package object

import (
	"strconv"
	"strings"
)

// NoneType is the type of the None singleton.
type NoneType struct{ Base }

func (*NoneType) TypeName() string { return "NoneType" }
func (*NoneType) String() string   { return "None" }

// Bool is the type of the True and False singletons.
type Bool struct {
	Base
	V bool
}

func (*Bool) TypeName() string { return "bool" }

func (b *Bool) String() string {
	if b.V {
		return "True"
	}
	return "False"
}

// Process-wide singletons. They are shared by every runtime and never
// carry a native wrapper.
var (
	None  = &NoneType{}
	True  = &Bool{V: true}
	False = &Bool{V: false}
)

// BoolOf returns the singleton for b.
func BoolOf(b bool) *Bool {
	if b {
		return True
	}
	return False
}

// Int is a heap-allocated integer.
type Int struct {
	Base
	V int64
}

func (*Int) TypeName() string { return "int" }
func (i *Int) String() string { return strconv.FormatInt(i.V, 10) }

// Float is a heap-allocated float.
type Float struct {
	Base
	V float64
}

func (*Float) TypeName() string { return "float" }
func (f *Float) String() string { return strconv.FormatFloat(f.V, 'g', -1, 64) }

// Str is a heap-allocated string.
type Str struct {
	Base
	V string
}

func (*Str) TypeName() string { return "str" }
func (s *Str) String() string { return strconv.Quote(s.V) }

// Tuple is an immutable, fixed-length ordered sequence.
type Tuple struct {
	Base
	items []Value
}

func (*Tuple) TypeName() string { return "tuple" }

// Len returns the number of items.
func (t *Tuple) Len() int { return len(t.items) }

// At returns the i-th item.
func (t *Tuple) At(i int) Value { return t.items[i] }

// Items returns a copy of the items.
func (t *Tuple) Items() []Value {
	out := make([]Value, len(t.items))
	copy(out, t.items)
	return out
}

func (t *Tuple) String() string {
	parts := make([]string, len(t.items))
	for i, v := range t.items {
		parts[i] = Repr(v)
	}
	if len(parts) == 1 {
		return "(" + parts[0] + ",)"
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Keyword is one name=value pair of a call's keyword arguments.
type Keyword struct {
	Name  string
	Value Value
}

// Dict is a string-keyed mapping that preserves insertion order.
type Dict struct {
	Base
	keys []string
	data map[string]Value
}

func (*Dict) TypeName() string { return "dict" }

// Len returns the number of entries.
func (d *Dict) Len() int { return len(d.keys) }

// Get looks up key.
func (d *Dict) Get(key string) (Value, bool) {
	v, ok := d.data[key]
	return v, ok
}

// Set inserts or replaces key.
func (d *Dict) Set(key string, v Value) {
	if _, ok := d.data[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.data[key] = v
}

// Keywords returns the entries in insertion order.
func (d *Dict) Keywords() []Keyword {
	out := make([]Keyword, len(d.keys))
	for i, k := range d.keys {
		out[i] = Keyword{Name: k, Value: d.data[k]}
	}
	return out
}

func (d *Dict) String() string {
	parts := make([]string, len(d.keys))
	for i, k := range d.keys {
		parts[i] = strconv.Quote(k) + ": " + Repr(d.data[k])
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Repr renders any Value for diagnostics.
func Repr(v Value) string {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case interface{ String() string }:
		return x.String()
	case string:
		return strconv.Quote(x)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case bool:
		return BoolOf(x).String()
	default:
		return "<" + TypeName(v) + ">"
	}
}

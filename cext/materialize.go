package cext

import "github.com/chazu/nativecall/object"

// Materializer promotes unboxed scalars to heap objects before they are
// placed in an argument tuple. A wrapper is only reachable for later release
// if some heap object holds it; a transient boxed scalar would leave the
// wrapper orphaned.
type Materializer struct {
	factory *object.Factory
}

// NewMaterializer creates a materializer allocating through factory.
func NewMaterializer(factory *object.Factory) *Materializer {
	return &Materializer{factory: factory}
}

// Materialize returns a fresh heap object for ints outside the cached small
// range, floats and strings. Small ints, bools and heap objects pass
// through unchanged.
func (m *Materializer) Materialize(v object.Value) object.Value {
	switch x := v.(type) {
	case int:
		if !m.factory.IsSmallInt(int64(x)) {
			return m.factory.NewInt(int64(x))
		}
	case int64:
		if !m.factory.IsSmallInt(x) {
			return m.factory.NewInt(x)
		}
	case float64:
		return m.factory.NewFloat(x)
	case string:
		return m.factory.NewStr(x)
	}
	return v
}

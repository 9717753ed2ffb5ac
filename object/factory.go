package object

// Default bounds of the permanently cached small-integer range.
const (
	DefaultSmallIntMin int64 = -5
	DefaultSmallIntMax int64 = 256
)

// Factory constructs managed objects. Integers inside [min, max] are served
// from a cache of singletons that live as long as the factory.
type Factory struct {
	min, max  int64
	smallInts []*Int
}

// NewFactory creates a factory caching the integers in [min, max]. An empty
// range (min > max) disables caching.
func NewFactory(min, max int64) *Factory {
	f := &Factory{min: min, max: max}
	if min <= max {
		f.smallInts = make([]*Int, max-min+1)
		for i := range f.smallInts {
			f.smallInts[i] = &Int{V: min + int64(i)}
		}
	}
	return f
}

// NewDefaultFactory creates a factory with the default small range.
func NewDefaultFactory() *Factory {
	return NewFactory(DefaultSmallIntMin, DefaultSmallIntMax)
}

// SmallRange returns the cached bounds.
func (f *Factory) SmallRange() (min, max int64) {
	return f.min, f.max
}

// IsSmallInt reports whether v falls in the cached range.
func (f *Factory) IsSmallInt(v int64) bool {
	return f.smallInts != nil && v >= f.min && v <= f.max
}

// Int returns the cached singleton for small values and a fresh object
// otherwise.
func (f *Factory) Int(v int64) *Int {
	if f.IsSmallInt(v) {
		return f.smallInts[v-f.min]
	}
	return &Int{V: v}
}

// NewInt always allocates.
func (f *Factory) NewInt(v int64) *Int {
	return &Int{V: v}
}

func (f *Factory) NewFloat(v float64) *Float {
	return &Float{V: v}
}

func (f *Factory) NewStr(v string) *Str {
	return &Str{V: v}
}

// NewTuple builds a tuple over a copy of items.
func (f *Factory) NewTuple(items ...Value) *Tuple {
	t := &Tuple{items: make([]Value, len(items))}
	copy(t.items, items)
	return t
}

// NewDict builds a dict from keyword pairs in order.
func (f *Factory) NewDict(kws []Keyword) *Dict {
	d := &Dict{data: make(map[string]Value, len(kws))}
	for _, kw := range kws {
		d.Set(kw.Name, kw.Value)
	}
	return d
}

// Box turns an unboxed scalar into its heap form, using singletons where
// they exist. Heap objects are returned unchanged.
func (f *Factory) Box(v Value) Object {
	switch x := v.(type) {
	case Object:
		return x
	case nil:
		return nil
	case bool:
		return BoolOf(x)
	case int:
		return f.Int(int64(x))
	case int64:
		return f.Int(x)
	case float64:
		return f.NewFloat(x)
	case string:
		return f.NewStr(x)
	}
	return nil
}

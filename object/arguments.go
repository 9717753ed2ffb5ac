package object

// Arguments is an execution frame as seen by a call site: the user
// arguments, the variadic tail, the keyword map and the frame's slot for
// the currently caught exception.
type Arguments struct {
	Positional []Value
	Varargs    []Value
	Keywords   []Keyword

	caught *Exception
}

// NewArguments creates a frame with the given user arguments.
func NewArguments(positional ...Value) *Arguments {
	return &Arguments{Positional: positional}
}

// WithVarargs sets the variadic tail and returns a.
func (a *Arguments) WithVarargs(varargs ...Value) *Arguments {
	a.Varargs = varargs
	return a
}

// WithKeywords sets the keyword arguments and returns a.
func (a *Arguments) WithKeywords(kws ...Keyword) *Arguments {
	a.Keywords = kws
	return a
}

// ArgumentAt returns user argument i, or nil if the frame has none there.
func (a *Arguments) ArgumentAt(i int) Value {
	if i < 0 || i >= len(a.Positional) {
		return nil
	}
	return a.Positional[i]
}

// VariadicTail returns a copy of the variadic tail.
func (a *Arguments) VariadicTail() []Value {
	out := make([]Value, len(a.Varargs))
	copy(out, a.Varargs)
	return out
}

// KeywordMap returns the keyword arguments.
func (a *Arguments) KeywordMap() []Keyword {
	return a.Keywords
}

// UserArgumentCount returns the number of fixed user arguments.
func (a *Arguments) UserArgumentCount() int {
	return len(a.Positional)
}

// CaughtException returns the frame's caught exception slot.
func (a *Arguments) CaughtException() *Exception {
	return a.caught
}

// SetCaughtException stores exc in the frame.
func (a *Arguments) SetCaughtException(exc *Exception) {
	a.caught = exc
}

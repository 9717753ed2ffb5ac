package object

// Callable is anything the interpreter can invoke with a positional list
// and keyword arguments.
type Callable interface {
	Call(args []Value, kwargs []Keyword) (Value, error)
}

// Function is a managed function implemented in Go.
type Function struct {
	Base
	Name string
	Fn   func(args []Value, kwargs []Keyword) (Value, error)
}

// NewFunction wraps fn as a managed function.
func NewFunction(name string, fn func(args []Value, kwargs []Keyword) (Value, error)) *Function {
	return &Function{Name: name, Fn: fn}
}

func (*Function) TypeName() string { return "function" }

func (f *Function) String() string { return "<function " + f.Name + ">" }

// Call invokes the function.
func (f *Function) Call(args []Value, kwargs []Keyword) (Value, error) {
	return f.Fn(args, kwargs)
}

package object

import "fmt"

// Exception is a managed exception instance. It doubles as a Go error so
// that a pending exception can propagate through ordinary error returns.
type Exception struct {
	Base
	Type    string
	Message string
}

// NewException creates an exception of the given type.
func NewException(typ, format string, args ...any) *Exception {
	return &Exception{Type: typ, Message: fmt.Sprintf(format, args...)}
}

func (e *Exception) TypeName() string { return e.Type }

func (e *Exception) Error() string {
	if e.Message == "" {
		return e.Type
	}
	return e.Type + ": " + e.Message
}

func (e *Exception) String() string { return e.Error() }

// Is matches exceptions by type so errors.Is can test against a template.
func (e *Exception) Is(target error) bool {
	t, ok := target.(*Exception)
	return ok && t.Type == e.Type && (t.Message == "" || t.Message == e.Message)
}

// Exception type names used by the bridge.
const (
	TypeError      = "TypeError"
	SystemError    = "SystemError"
	StopIteration  = "StopIteration"
	OverflowError  = "OverflowError"
	ValueError     = "ValueError"
	IndexError     = "IndexError"
	KeyError       = "KeyError"
	AttributeError = "AttributeError"
)

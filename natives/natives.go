// Package natives is a small native extension written against the cext
// API. The CLI binds it for its demo and introspection tests load it as a
// real package.
package natives

import (
	"strings"

	"github.com/chazu/nativecall/cext"
	"github.com/chazu/nativecall/object"
)

// Module holds the extension's state. Methods are native callees: they
// receive handles and scalars and report errors through the API.
type Module struct {
	api   *cext.API
	next  int64
	limit int64
}

// NewModule creates the extension bound to api. Next yields limit items.
func NewModule(api *cext.API, limit int64) *Module {
	return &Module{api: api, limit: limit}
}

// Len returns the length of a str or tuple.
func (m *Module) Len(self, arg cext.Handle) cext.Handle {
	switch x := m.api.Object(arg).(type) {
	case *object.Str:
		return m.api.FromSsize(cext.Ssize(len(x.V)))
	case *object.Tuple:
		return m.api.FromSsize(cext.Ssize(x.Len()))
	}
	m.api.ErrSetString(object.TypeError, "object has no len()")
	return cext.Null
}

// Concat joins the str items of an argument tuple.
func (m *Module) Concat(self, args cext.Handle) cext.Handle {
	n := m.api.TupleSize(args)
	if n < 0 {
		return cext.Null
	}
	var b strings.Builder
	for i := cext.Ssize(0); i < n; i++ {
		s := m.api.StringAsCString(m.api.TupleGetItem(args, i))
		if m.api.ErrOccurred() != nil {
			return cext.Null
		}
		b.WriteString(string(s))
	}
	return m.api.FromString(cext.CString(b.String()))
}

// Join is Concat with a separator taken from self, called with the
// fastcall convention.
func (m *Module) Join(self, args cext.Handle, nargs cext.Ssize) cext.Handle {
	sep := m.api.StringAsCString(self)
	if m.api.ErrOccurred() != nil {
		return cext.Null
	}
	parts := make([]string, 0, nargs)
	for i := cext.Ssize(0); i < nargs; i++ {
		s := m.api.StringAsCString(m.api.TupleGetItem(args, i))
		if m.api.ErrOccurred() != nil {
			return cext.Null
		}
		parts = append(parts, string(s))
	}
	return m.api.FromString(cext.CString(strings.Join(parts, string(sep))))
}

// GetAttr answers the "limit" and "next" attributes.
func (m *Module) GetAttr(self cext.Handle, name cext.CString) cext.Handle {
	switch name {
	case "limit":
		return m.api.FromSsize(cext.Ssize(m.limit))
	case "next":
		return m.api.FromSsize(cext.Ssize(m.next))
	}
	m.api.ErrSetString(object.AttributeError, "module has no attribute '"+name+"'")
	return cext.Null
}

// SetAttr sets "limit".
func (m *Module) SetAttr(self cext.Handle, name cext.CString, value cext.Handle) cext.CInt {
	if name != "limit" {
		m.api.ErrSetString(object.AttributeError, "cannot set '"+name+"'")
		return -1
	}
	n := m.api.LongAsSsize(value)
	if n == -1 && m.api.ErrOccurred() != nil {
		return -1
	}
	m.limit = int64(n)
	return 0
}

// Compare orders two ints.
func (m *Module) Compare(self, other cext.Handle, op cext.CInt) cext.Handle {
	a := m.api.LongAsSsize(self)
	b := m.api.LongAsSsize(other)
	if m.api.ErrOccurred() != nil {
		return cext.Null
	}
	var r bool
	switch op {
	case cext.OpLT:
		r = a < b
	case cext.OpLE:
		r = a <= b
	case cext.OpEQ:
		r = a == b
	case cext.OpNE:
		r = a != b
	case cext.OpGT:
		r = a > b
	case cext.OpGE:
		r = a >= b
	default:
		m.api.ErrSetString(object.ValueError, "bad comparison opcode")
		return cext.Null
	}
	return m.api.NewRef(r)
}

// Next yields 0, 1, ... up to the limit, then signals exhaustion.
func (m *Module) Next(self cext.Handle) cext.Handle {
	if m.next >= m.limit {
		return cext.Null
	}
	v := m.next
	m.next++
	return m.api.FromSsize(cext.Ssize(v))
}

// ExcInfo returns the exception the calling frame is handling, or None.
func (m *Module) ExcInfo(self, arg cext.Handle) cext.Handle {
	if exc := m.api.GetExcInfo(); exc != nil {
		return m.api.NewRef(exc)
	}
	return m.api.None()
}

// Fail raises ValueError.
func (m *Module) Fail(self, arg cext.Handle) cext.Handle {
	m.api.ErrSetString(object.ValueError, "requested failure")
	return cext.Null
}

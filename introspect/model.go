// Package introspect finds Go functions that can be bound as native
// callees and reports which calling conventions each one can serve.
package introspect

import (
	"go/types"

	"github.com/chazu/nativecall/cext"
)

// PackageModel is the native-callable surface of a Go package.
type PackageModel struct {
	ImportPath string
	Name       string // short package name
	Functions  []FunctionModel
}

// FunctionModel is one exported function or method and the conventions its
// signature fits.
type FunctionModel struct {
	Name        string
	RecvType    string // non-empty for methods (e.g., "*Module")
	Params      []ParamModel
	Result      *ParamModel
	Variadic    bool
	Conventions []cext.Convention
}

// QualifiedName returns Name, prefixed with the receiver for methods.
func (f *FunctionModel) QualifiedName() string {
	if f.RecvType == "" {
		return f.Name
	}
	return "(" + f.RecvType + ")." + f.Name
}

// ParamModel is a parameter or result.
type ParamModel struct {
	Name    string
	Kind    Kind
	GoType  types.Type
	TypeStr string
}

// Kind is the native representation of a parameter.
type Kind uint8

const (
	KindOther Kind = iota
	KindHandle
	KindSsize
	KindCInt
	KindCString
)

func (k Kind) String() string {
	switch k {
	case KindHandle:
		return "handle"
	case KindSsize:
		return "ssize"
	case KindCInt:
		return "int"
	case KindCString:
		return "cstring"
	}
	return "other"
}

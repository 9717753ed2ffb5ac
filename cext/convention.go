package cext

import (
	"fmt"
	"strings"
)

// Convention is the native argument shape a C-extension-style function
// expects. It is fixed when a Root is built.
type Convention uint8

const (
	NoArgs Convention = iota
	SingleArg
	VarArgs
	VarArgsKeywords
	FastCall
	FastCallKeywords
	Allocator
	AttrGet
	AttrSet
	RichCompare
	RichCompareFixedOp
	IndexedSet
	ReverseBinaryOp
	Power
	ReversePower
	IterNext
	// Direct passes the caller's variadic arguments through unchanged,
	// without a self slot.
	Direct

	numConventions
)

var conventionNames = [numConventions]string{
	NoArgs:             "noargs",
	SingleArg:          "o",
	VarArgs:            "varargs",
	VarArgsKeywords:    "keywords",
	FastCall:           "fastcall",
	FastCallKeywords:   "fastcall-keywords",
	Allocator:          "alloc",
	AttrGet:            "getattr",
	AttrSet:            "setattr",
	RichCompare:        "richcmp",
	RichCompareFixedOp: "richcmp-op",
	IndexedSet:         "ssizeobjarg",
	ReverseBinaryOp:    "reverse",
	Power:              "pow",
	ReversePower:       "rpow",
	IterNext:           "iternext",
	Direct:             "direct",
}

func (c Convention) String() string {
	if c < numConventions {
		return conventionNames[c]
	}
	return fmt.Sprintf("Convention(%d)", uint8(c))
}

// ParseConvention maps a convention name back to its value.
func ParseConvention(name string) (Convention, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range conventionNames {
		if n == name {
			return Convention(i), nil
		}
	}
	return 0, fmt.Errorf("unknown calling convention %q", name)
}

// Conventions returns every convention in declaration order.
func Conventions() []Convention {
	out := make([]Convention, numConventions)
	for i := range out {
		out[i] = Convention(i)
	}
	return out
}

// Signature is the managed-side shape a root declares to the interpreter.
type Signature struct {
	Params  []string
	Varargs bool
	Kwargs  bool
}

func (s Signature) String() string {
	parts := append([]string(nil), s.Params...)
	if s.Varargs {
		parts = append(parts, "*args")
	}
	if s.Kwargs {
		parts = append(parts, "**kwargs")
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Signature returns the declared managed-side signature.
func (c Convention) Signature() Signature {
	switch c {
	case NoArgs, IterNext:
		return Signature{Params: []string{"self"}}
	case SingleArg:
		return Signature{Params: []string{"self", "arg"}}
	case VarArgs, FastCall, Power, ReversePower:
		return Signature{Params: []string{"self"}, Varargs: true}
	case VarArgsKeywords, FastCallKeywords:
		return Signature{Params: []string{"self"}, Varargs: true, Kwargs: true}
	case Allocator:
		return Signature{Params: []string{"self", "nitems"}}
	case AttrGet:
		return Signature{Params: []string{"self", "key"}}
	case AttrSet:
		return Signature{Params: []string{"self", "key", "value"}}
	case RichCompare:
		return Signature{Params: []string{"self", "other", "op"}}
	case RichCompareFixedOp:
		return Signature{Params: []string{"self", "other"}}
	case IndexedSet:
		return Signature{Params: []string{"self", "i", "value"}}
	case ReverseBinaryOp:
		return Signature{Params: []string{"self", "obj"}}
	case Direct:
		return Signature{Varargs: true, Kwargs: true}
	}
	return Signature{}
}

// ownsArgsTuple reports whether the convention hands native code a fresh
// argument tuple that must be released after the call.
func (c Convention) ownsArgsTuple() bool {
	switch c {
	case VarArgs, VarArgsKeywords, FastCall, FastCallKeywords:
		return true
	}
	return false
}

// defaultValidator returns the result contract of the convention.
func (c Convention) defaultValidator() ResultValidator {
	switch c {
	case AttrSet, IndexedSet:
		return PrimitiveResult{}
	case IterNext:
		return IterNextResult{}
	}
	return ObjectResult{}
}

// Rich comparison opcodes.
const (
	OpLT = 0
	OpLE = 1
	OpEQ = 2
	OpNE = 3
	OpGT = 4
	OpGE = 5
)

var compareOpStrings = [...]string{"<", "<=", "==", "!=", ">", ">="}

// CompareOpString returns the operator spelling for a rich comparison
// opcode.
func CompareOpString(op int) (string, bool) {
	if op < 0 || op >= len(compareOpStrings) {
		return "", false
	}
	return compareOpStrings[op], true
}

package introspect

import (
	"go/types"

	"github.com/chazu/nativecall/cext"
)

// cextPath is the import path of the package declaring the native types.
const cextPath = "github.com/chazu/nativecall/cext"

// shapes lists the native parameter kinds each convention passes, in order.
// Direct is matched separately.
var shapes = map[cext.Convention][]Kind{
	cext.NoArgs:             {KindHandle, KindHandle},
	cext.SingleArg:          {KindHandle, KindHandle},
	cext.VarArgs:            {KindHandle, KindHandle},
	cext.VarArgsKeywords:    {KindHandle, KindHandle, KindHandle},
	cext.FastCall:           {KindHandle, KindHandle, KindSsize},
	cext.FastCallKeywords:   {KindHandle, KindHandle, KindSsize, KindHandle},
	cext.Allocator:          {KindHandle, KindSsize},
	cext.AttrGet:            {KindHandle, KindCString},
	cext.AttrSet:            {KindHandle, KindCString, KindHandle},
	cext.RichCompare:        {KindHandle, KindHandle, KindCInt},
	cext.RichCompareFixedOp: {KindHandle, KindHandle, KindCInt},
	cext.IndexedSet:         {KindHandle, KindSsize, KindHandle},
	cext.ReverseBinaryOp:    {KindHandle, KindHandle},
	cext.Power:              {KindHandle, KindHandle, KindHandle},
	cext.ReversePower:       {KindHandle, KindHandle, KindHandle},
	cext.IterNext:           {KindHandle},
}

// KindOf classifies t by the native type it names.
func KindOf(t types.Type) Kind {
	named, ok := t.(*types.Named)
	if !ok {
		return KindOther
	}
	obj := named.Obj()
	if obj.Pkg() == nil || obj.Pkg().Path() != cextPath {
		return KindOther
	}
	switch obj.Name() {
	case "Handle":
		return KindHandle
	case "Ssize":
		return KindSsize
	case "CInt":
		return KindCInt
	case "CString":
		return KindCString
	}
	return KindOther
}

// Classify returns the conventions sig can serve, in declaration order.
func Classify(sig *types.Signature) []cext.Convention {
	if sig.Results().Len() != 1 {
		return nil
	}
	result := KindOf(sig.Results().At(0).Type())

	params := sig.Params()
	kinds := make([]Kind, params.Len())
	for n := range kinds {
		t := params.At(n).Type()
		if sig.Variadic() && n == params.Len()-1 {
			t = t.(*types.Slice).Elem()
		}
		kinds[n] = KindOf(t)
	}

	var out []cext.Convention
	for _, conv := range cext.Conventions() {
		if conv == cext.Direct {
			if result == KindHandle && allHandles(kinds) {
				out = append(out, conv)
			}
			continue
		}
		if sig.Variadic() || !matches(kinds, shapes[conv]) {
			continue
		}
		if resultKind(conv) == result {
			out = append(out, conv)
		}
	}
	return out
}

// resultKind is the native result kind a convention's contract expects.
func resultKind(conv cext.Convention) Kind {
	switch conv {
	case cext.AttrSet, cext.IndexedSet:
		return KindCInt
	}
	return KindHandle
}

func matches(kinds, want []Kind) bool {
	if len(kinds) != len(want) {
		return false
	}
	for n := range kinds {
		if kinds[n] != want[n] {
			return false
		}
	}
	return true
}

func allHandles(kinds []Kind) bool {
	for _, k := range kinds {
		if k != KindHandle {
			return false
		}
	}
	return true
}

package natives

import (
	"github.com/chazu/nativecall/cext"
)

// Roots binds every callee of m to a root under its conventional name.
func (m *Module) Roots(rt *cext.Runtime) map[string]*cext.Root {
	roots := []*cext.Root{
		cext.NewRoot(rt, "len", m.Len, cext.SingleArg),
		cext.NewRoot(rt, "concat", m.Concat, cext.VarArgs),
		cext.NewRoot(rt, "join", m.Join, cext.FastCall),
		cext.NewRoot(rt, "getattr", m.GetAttr, cext.AttrGet),
		cext.NewRoot(rt, "setattr", m.SetAttr, cext.AttrSet),
		cext.NewRoot(rt, "compare", m.Compare, cext.RichCompare),
		cext.NewRoot(rt, "eq", m.Compare, cext.RichCompareFixedOp, cext.WithCompareOp(cext.OpEQ)),
		cext.NewRoot(rt, "next", m.Next, cext.IterNext),
		cext.NewRoot(rt, "exc_info", m.ExcInfo, cext.SingleArg),
		cext.NewRoot(rt, "fail", m.Fail, cext.SingleArg),
	}
	out := make(map[string]*cext.Root, len(roots))
	for _, r := range roots {
		out[r.Name()] = r
	}
	return out
}

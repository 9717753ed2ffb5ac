package introspect

import (
	"fmt"
	"go/types"

	"golang.org/x/tools/go/packages"
)

// IntrospectPackage loads a Go package by import path and returns the
// exported functions and pointer-receiver methods that serve at least one
// calling convention. When all is true, functions matching none are listed
// too.
func IntrospectPackage(importPath string, all bool) (*PackageModel, error) {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedTypes,
	}

	pkgs, err := packages.Load(cfg, importPath)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", importPath, err)
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no packages found for %s", importPath)
	}
	if len(pkgs[0].Errors) > 0 {
		return nil, fmt.Errorf("package errors: %v", pkgs[0].Errors)
	}

	pkg := pkgs[0]
	if pkg.Types == nil {
		return nil, fmt.Errorf("type information not available for %s", importPath)
	}

	model := &PackageModel{
		ImportPath: importPath,
		Name:       pkg.Name,
	}
	add := func(fm FunctionModel) {
		if all || len(fm.Conventions) > 0 {
			model.Functions = append(model.Functions, fm)
		}
	}

	scope := pkg.Types.Scope()
	for _, name := range scope.Names() {
		obj := scope.Lookup(name)
		if !obj.Exported() {
			continue
		}

		switch o := obj.(type) {
		case *types.Func:
			add(functionModel(o.Name(), "", o.Type().(*types.Signature), pkg.Types))

		case *types.TypeName:
			named, ok := o.Type().(*types.Named)
			if !ok {
				continue
			}
			mset := types.NewMethodSet(types.NewPointer(named))
			for n := 0; n < mset.Len(); n++ {
				sel := mset.At(n)
				fn, ok := sel.Obj().(*types.Func)
				if !ok || !fn.Exported() {
					continue
				}
				// Only methods declared on this type, not promoted ones.
				if len(sel.Index()) > 1 {
					continue
				}
				add(functionModel(fn.Name(), "*"+o.Name(), fn.Type().(*types.Signature), pkg.Types))
			}
		}
	}

	return model, nil
}

func functionModel(name, recvType string, sig *types.Signature, pkg *types.Package) FunctionModel {
	fm := FunctionModel{
		Name:        name,
		RecvType:    recvType,
		Variadic:    sig.Variadic(),
		Conventions: Classify(sig),
	}

	params := sig.Params()
	for n := 0; n < params.Len(); n++ {
		fm.Params = append(fm.Params, paramModel(params.At(n), pkg))
	}
	if sig.Results().Len() == 1 {
		r := paramModel(sig.Results().At(0), pkg)
		fm.Result = &r
	}
	return fm
}

func paramModel(v *types.Var, pkg *types.Package) ParamModel {
	return ParamModel{
		Name:    v.Name(),
		Kind:    KindOf(v.Type()),
		GoType:  v.Type(),
		TypeStr: types.TypeString(v.Type(), qualifier(pkg)),
	}
}

func qualifier(pkg *types.Package) types.Qualifier {
	return func(other *types.Package) string {
		if other == pkg {
			return ""
		}
		return other.Name()
	}
}

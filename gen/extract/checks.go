package extract

import (
	"go/types"

	"github.com/teranos/isx/errors"
	"github.com/teranos/isx/gen/shape"
)

// memberCheck resolves how member m of type t is tested for family f. The
// first matching rule wins:
//
//	pointer, func, unsafe.Pointer     == nil
//	json.RawMessage                   isx.EmptyJSON / isx.DefaultJSON
//	predicate method, or requested    x.IsEmpty()
//	interface                         == nil, or nil-or-method when it declares the predicate
//	IsZero() bool                     x.IsZero()
//	string, slice, map, chan          len(x) == 0 (arrays for IsEmpty only)
//	bool                              !x
//	number                            x == 0
func (x *extractor) memberCheck(m *shape.Member, t types.Type, f shape.Family) (shape.CheckKind, error) {
	if m.Self {
		// the receiver's own predicate is the one being generated
		return builtinCheck(m.Type, t.Underlying(), f)
	}

	switch u := t.Underlying().(type) {
	case *types.Pointer, *types.Signature:
		return shape.CheckNil, nil
	case *types.Basic:
		if u.Kind() == types.UnsafePointer {
			return shape.CheckNil, nil
		}
	}

	if isNamed(t, "encoding/json", "RawMessage") {
		return shape.CheckJSON, nil
	}

	if iface, ok := t.Underlying().(*types.Interface); ok {
		if hasBoolMethod(iface, f.Method()) {
			return shape.CheckNilOrMethod, nil
		}
		return shape.CheckNil, nil
	}

	if x.hasPredicate(t, f.Method()) || x.requestedFor(t, f) {
		return shape.CheckMethod, nil
	}

	if x.hasPredicate(t, "IsZero") {
		return shape.CheckIsZero, nil
	}

	return builtinCheck(m.Type, t.Underlying(), f)
}

// builtinCheck covers the built-in kinds that cannot carry methods.
func builtinCheck(typeName string, under types.Type, f shape.Family) (shape.CheckKind, error) {
	switch u := under.(type) {
	case *types.Basic:
		info := u.Info()
		switch {
		case info&types.IsString != 0:
			return shape.CheckLen, nil
		case info&types.IsBoolean != 0:
			return shape.CheckFalse, nil
		case info&types.IsNumeric != 0:
			return shape.CheckZero, nil
		}
	case *types.Slice, *types.Map, *types.Chan:
		return shape.CheckLen, nil
	case *types.Array:
		if f == shape.Empty {
			return shape.CheckLen, nil
		}
	}
	return 0, errors.NewMissingCapabilityf("%s has no %s", typeName, f.Method())
}

// hasPredicate reports whether t or *t has a method name() bool that is not
// declared in the generated file.
func (x *extractor) hasPredicate(t types.Type, name string) bool {
	obj, _, _ := types.LookupFieldOrMethod(t, true, x.pkg.Types, name)
	fn, ok := obj.(*types.Func)
	if !ok || x.inOutput(fn.Pos()) {
		return false
	}
	return isBoolPredicate(fn)
}

// declaresPredicate reports whether owner itself declares a method isxgen
// would generate for f, outside the generated file.
func (x *extractor) declaresPredicate(owner *types.TypeName, f shape.Family) (string, bool) {
	names := []string{f.Method()}
	if f == shape.Default {
		names = append(names, "IsNotDefault")
	}
	for _, name := range names {
		obj, index, _ := types.LookupFieldOrMethod(owner.Type(), true, x.pkg.Types, name)
		if fn, ok := obj.(*types.Func); ok && len(index) == 1 && !x.inOutput(fn.Pos()) {
			return name, true
		}
	}
	return "", false
}

// requestedFor reports whether t is a named type of this package that gets
// family f generated in this run.
func (x *extractor) requestedFor(t types.Type, f shape.Family) bool {
	n, ok := types.Unalias(t).(*types.Named)
	if !ok {
		return false
	}
	fams, ok := x.requested[n.Obj()]
	return ok && fams.Has(f)
}

func hasBoolMethod(iface *types.Interface, name string) bool {
	for i := 0; i < iface.NumMethods(); i++ {
		if m := iface.Method(i); m.Name() == name {
			return isBoolPredicate(m)
		}
	}
	return false
}

func isBoolPredicate(fn *types.Func) bool {
	sig, ok := fn.Type().(*types.Signature)
	if !ok || sig.Params().Len() != 0 || sig.Results().Len() != 1 {
		return false
	}
	return types.Identical(sig.Results().At(0).Type(), types.Typ[types.Bool])
}

func isNamed(t types.Type, pkgPath, name string) bool {
	n, ok := types.Unalias(t).(*types.Named)
	if !ok || n.Obj().Pkg() == nil {
		return false
	}
	return n.Obj().Pkg().Path() == pkgPath && n.Obj().Name() == name
}

// strictlyComparable reports whether == on t never panics: t is comparable
// and no field or element, at any depth, is an interface. Comparing interface
// values whose dynamic types are not comparable panics at run time.
func strictlyComparable(t types.Type) bool {
	if !types.Comparable(t) {
		return false
	}
	switch u := t.Underlying().(type) {
	case *types.Interface:
		return false
	case *types.Struct:
		for i := 0; i < u.NumFields(); i++ {
			if !strictlyComparable(u.Field(i).Type()) {
				return false
			}
		}
	case *types.Array:
		return strictlyComparable(u.Elem())
	}
	return true
}

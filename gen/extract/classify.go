package extract

import (
	"fmt"
	"go/types"
	"sort"

	"github.com/teranos/isx/errors"
	"github.com/teranos/isx/gen/shape"
)

// classify is the structural step for one requested type.
func (x *extractor) classify(td *typeDecl) (*pending, error) {
	if td.obj == nil {
		return nil, errors.Newf("type %s could not be type-checked", td.name)
	}
	named, err := x.namedType(td.obj, "type")
	if err != nil {
		return nil, err
	}

	d := td.directive
	p := &pending{
		decl: td,
		typ: &shape.Type{
			Name:     td.name,
			Families: d.Families,
			Receiver: d.Receiver,
			Pos:      td.pos,
		},
	}

	iface, isUnion := named.Underlying().(*types.Interface)
	if !isUnion {
		if len(d.Variants) > 0 || d.DefaultFunc != "" {
			return nil, errors.Newf("variants= and defaultfunc= apply only to interfaces, %s is not one", td.name)
		}
		kind, members, mtypes, err := x.record(named)
		if err != nil {
			return nil, err
		}
		p.typ.Kind, p.typ.Members, p.memberTypes = kind, members, mtypes
		return p, nil
	}

	p.typ.Kind = shape.TaggedUnion
	objs, pointers, err := x.variants(td, named, iface)
	if err != nil {
		return nil, err
	}
	for i, obj := range objs {
		vnamed, err := x.namedType(obj, "variant")
		if err != nil {
			return nil, err
		}
		if types.IsInterface(vnamed) {
			return nil, errors.NewUnsupportedShapef("variant %s of %s is itself an interface", obj.Name(), td.name)
		}
		kind, members, mtypes, err := x.record(vnamed)
		if err != nil {
			return nil, errors.Wrapf(err, "variant %s", obj.Name())
		}
		v := shape.Variant{
			Name:       obj.Name(),
			Kind:       kind,
			Members:    members,
			Pointer:    pointers[i],
			Comparable: strictlyComparable(vnamed),
			Pos:        x.position(obj.Pos()),
		}
		if vd, ok := x.byName[obj.Name()]; ok {
			v.MarkedDefault = vd.marked
		}
		p.typ.Variants = append(p.typ.Variants, v)
		p.variantTypes = append(p.variantTypes, mtypes)
		p.variantObjects = append(p.variantObjects, obj)
	}

	fn, err := x.defaultFunc(td, named)
	if err != nil {
		return nil, err
	}
	p.typ.DefaultFunc = fn
	return p, nil
}

// namedType rejects aliases and generic types.
func (x *extractor) namedType(obj *types.TypeName, what string) (*types.Named, error) {
	if obj.IsAlias() {
		return nil, errors.WithHint(
			errors.NewUnsupportedShapef("%s %s is an alias", what, obj.Name()),
			"request the aliased type instead")
	}
	named, ok := obj.Type().(*types.Named)
	if !ok {
		return nil, errors.NewUnsupportedShapef("%s %s is not a defined type", what, obj.Name())
	}
	if named.TypeParams().Len() > 0 {
		return nil, errors.NewUnsupportedShapef("%s %s is generic", what, obj.Name())
	}
	return named, nil
}

// record classifies a non-interface type as a unit, named or positional record.
func (x *extractor) record(named *types.Named) (shape.Kind, []shape.Member, []types.Type, error) {
	name := named.Obj().Name()

	switch u := named.Underlying().(type) {
	case *types.Struct:
		var members []shape.Member
		var mtypes []types.Type
		for i := 0; i < u.NumFields(); i++ {
			fld := u.Field(i)
			if fld.Name() == "_" {
				continue
			}
			members = append(members, shape.Member{Name: fld.Name(), Type: x.typeString(fld.Type())})
			mtypes = append(mtypes, fld.Type())
		}
		if len(members) == 0 {
			return shape.UnitRecord, nil, nil, nil
		}
		return shape.NamedRecord, members, mtypes, nil

	case *types.Array:
		if u.Len() == 0 {
			return shape.UnitRecord, nil, nil, nil
		}
		if u.Len() > int64(x.cfg.MaxArity) {
			return 0, nil, nil, errors.WithHint(
				errors.NewUnsupportedShapef("array type %s has %d elements, more than max_arity %d", name, u.Len(), x.cfg.MaxArity),
				"raise generate.max_arity in isxgen.toml")
		}
		elem := x.typeString(u.Elem())
		members := make([]shape.Member, u.Len())
		mtypes := make([]types.Type, u.Len())
		for i := range members {
			members[i] = shape.Member{Name: fmt.Sprintf("_f%d", i), Index: i, Positional: true, Type: elem}
			mtypes[i] = u.Elem()
		}
		return shape.PositionalRecord, members, mtypes, nil

	case *types.Basic:
		if u.Kind() == types.UnsafePointer {
			return 0, nil, nil, errors.NewUnsupportedShapef("type %s is a pointer newtype", name)
		}
		return x.newtype(named)

	case *types.Slice, *types.Map, *types.Chan:
		return x.newtype(named)

	case *types.Pointer:
		return 0, nil, nil, errors.NewUnsupportedShapef("type %s is a pointer newtype", name)
	case *types.Signature:
		return 0, nil, nil, errors.NewUnsupportedShapef("type %s is a func newtype", name)
	case *types.Interface:
		return 0, nil, nil, errors.NewUnsupportedShapef("type %s is an interface", name)
	}
	return 0, nil, nil, errors.NewUnsupportedShapef("type %s has unsupported underlying type %s", name, named.Underlying())
}

// newtype is a positional record of arity one whose member is the receiver.
func (x *extractor) newtype(named *types.Named) (shape.Kind, []shape.Member, []types.Type, error) {
	m := shape.Member{Name: "_f0", Self: true, Type: named.Obj().Name()}
	return shape.PositionalRecord, []shape.Member{m}, []types.Type{named}, nil
}

// variants returns the union's variants in declaration order, with whether
// each implements the union only through its pointer.
func (x *extractor) variants(td *typeDecl, union *types.Named, iface *types.Interface) ([]*types.TypeName, []bool, error) {
	sealed := nonPredicateMethods(iface)
	scope := x.pkg.Types.Scope()

	type found struct {
		obj     *types.TypeName
		pointer bool
	}
	var vs []found

	implements := func(obj *types.TypeName) (pointer, ok bool) {
		if sealed == nil {
			return false, true
		}
		if types.Implements(obj.Type(), sealed) {
			return false, true
		}
		if types.Implements(types.NewPointer(obj.Type()), sealed) {
			return true, true
		}
		return false, false
	}

	if names := td.directive.Variants; len(names) > 0 {
		for _, name := range names {
			obj, ok := scope.Lookup(name).(*types.TypeName)
			if !ok {
				return nil, nil, errors.NewUnsupportedShapef("variant %s of %s is not a type declared in this package", name, td.name)
			}
			pointer, ok := implements(obj)
			if !ok {
				return nil, nil, errors.NewUnsupportedShapef("variant %s does not implement %s", name, td.name)
			}
			vs = append(vs, found{obj, pointer})
		}
	} else {
		if sealed == nil {
			return nil, nil, errors.WithHint(
				errors.NewUnsupportedShapef("interface %s declares no methods to identify its variants", td.name),
				"add an unexported marker method or list the variants with variants=")
		}
		for _, name := range scope.Names() {
			obj, ok := scope.Lookup(name).(*types.TypeName)
			if !ok || obj == union.Obj() || obj.IsAlias() || types.IsInterface(obj.Type()) {
				continue
			}
			if named, ok := obj.Type().(*types.Named); !ok || named.TypeParams().Len() > 0 {
				continue
			}
			if pointer, ok := implements(obj); ok {
				vs = append(vs, found{obj, pointer})
			}
		}
		sort.Slice(vs, func(i, j int) bool { return vs[i].obj.Pos() < vs[j].obj.Pos() })
	}

	if len(vs) == 0 {
		return nil, nil, errors.WithHint(
			errors.NewUnsupportedShapef("interface %s has no variants in this package", td.name),
			"declare the variant types next to the interface")
	}

	objs := make([]*types.TypeName, len(vs))
	pointers := make([]bool, len(vs))
	for i, v := range vs {
		objs[i], pointers[i] = v.obj, v.pointer
	}
	return objs, pointers, nil
}

// nonPredicateMethods returns iface without the generated predicate methods,
// or nil when nothing is left. Variants implement it before generation runs.
func nonPredicateMethods(iface *types.Interface) *types.Interface {
	var methods []*types.Func
	for i := 0; i < iface.NumMethods(); i++ {
		m := iface.Method(i)
		if isPredicateName(m.Name()) {
			continue
		}
		sig := m.Type().(*types.Signature)
		plain := types.NewSignatureType(nil, nil, nil, sig.Params(), sig.Results(), sig.Variadic())
		methods = append(methods, types.NewFunc(m.Pos(), m.Pkg(), m.Name(), plain))
	}
	if len(methods) == 0 {
		return nil
	}
	return types.NewInterfaceType(methods, nil).Complete()
}

func isPredicateName(name string) bool {
	for _, f := range shape.Families {
		if name == f.Method() {
			return true
		}
	}
	return name == "IsNotDefault"
}

// defaultFunc finds the union's default constructor: func() Union.
func (x *extractor) defaultFunc(td *typeDecl, union *types.Named) (string, error) {
	name := td.directive.DefaultFunc
	explicit := name != ""
	if !explicit {
		name = x.cfg.DefaultFuncPrefix + td.name
	}

	fn, ok := x.pkg.Types.Scope().Lookup(name).(*types.Func)
	if ok {
		sig := fn.Type().(*types.Signature)
		if sig.Params().Len() == 0 && sig.Results().Len() == 1 && types.Identical(sig.Results().At(0).Type(), union) {
			return name, nil
		}
	}
	if explicit {
		return "", errors.Newf("defaultfunc %s is not a func() %s in this package", name, td.name)
	}
	return "", nil
}

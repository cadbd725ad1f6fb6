package schema

import (
	"go/ast"
	"go/parser"

	"github.com/teranos/isx/errors"
	"github.com/teranos/isx/gen/shape"
)

type spelledKind int

const (
	spelledBasic spelledKind = iota
	spelledSlice
	spelledArray
	spelledMap
	spelledChan
	spelledPointer
	spelledFunc
	spelledInterface
	spelledLocal
	spelledQualified
)

// spelling is what a type expression says about itself without type
// information.
type spelling struct {
	kind spelledKind
	// name is the identifier for basic, local and qualified spellings.
	name string
	// methods lists the bool predicates of an interface literal.
	methods map[string]bool
}

var basicChecks = map[string]shape.CheckKind{
	"string": shape.CheckLen,
	"bool":   shape.CheckFalse,

	"int": shape.CheckZero, "int8": shape.CheckZero, "int16": shape.CheckZero,
	"int32": shape.CheckZero, "int64": shape.CheckZero,
	"uint": shape.CheckZero, "uint8": shape.CheckZero, "uint16": shape.CheckZero,
	"uint32": shape.CheckZero, "uint64": shape.CheckZero, "uintptr": shape.CheckZero,
	"byte": shape.CheckZero, "rune": shape.CheckZero,
	"float32": shape.CheckZero, "float64": shape.CheckZero,
	"complex64": shape.CheckZero, "complex128": shape.CheckZero,

	"unsafe.Pointer": shape.CheckNil,
}

// qualifiedChecks covers standard library types with a known answer.
var qualifiedChecks = map[string]shape.CheckKind{
	"json.RawMessage": shape.CheckJSON,
	"time.Time":       shape.CheckIsZero,
	"time.Duration":   shape.CheckZero,
}

func classifyType(src string) (spelling, error) {
	expr, err := parser.ParseExpr(src)
	if err != nil {
		return spelling{}, errors.Wrapf(err, "invalid type %q", src)
	}
	return spell(expr, src)
}

func spell(expr ast.Expr, src string) (spelling, error) {
	switch e := expr.(type) {
	case *ast.ParenExpr:
		return spell(e.X, src)
	case *ast.Ident:
		switch e.Name {
		case "any", "error":
			return spelling{kind: spelledInterface}, nil
		}
		if _, ok := basicChecks[e.Name]; ok {
			return spelling{kind: spelledBasic, name: e.Name}, nil
		}
		return spelling{kind: spelledLocal, name: e.Name}, nil
	case *ast.SelectorExpr:
		pkg, ok := e.X.(*ast.Ident)
		if !ok {
			break
		}
		name := pkg.Name + "." + e.Sel.Name
		if name == "unsafe.Pointer" {
			return spelling{kind: spelledBasic, name: name}, nil
		}
		return spelling{kind: spelledQualified, name: name}, nil
	case *ast.ArrayType:
		if e.Len == nil {
			return spelling{kind: spelledSlice}, nil
		}
		return spelling{kind: spelledArray}, nil
	case *ast.MapType:
		return spelling{kind: spelledMap}, nil
	case *ast.ChanType:
		return spelling{kind: spelledChan}, nil
	case *ast.StarExpr:
		return spelling{kind: spelledPointer}, nil
	case *ast.FuncType:
		return spelling{kind: spelledFunc}, nil
	case *ast.InterfaceType:
		return spelling{kind: spelledInterface, methods: predicates(e)}, nil
	}
	return spelling{}, errors.NewUnsupportedShapef("type %q cannot be classified", src)
}

// predicates collects the methods of an interface literal shaped name() bool.
func predicates(it *ast.InterfaceType) map[string]bool {
	out := make(map[string]bool)
	if it.Methods == nil {
		return out
	}
	for _, field := range it.Methods.List {
		fn, ok := field.Type.(*ast.FuncType)
		if !ok || len(field.Names) != 1 {
			continue
		}
		if fn.Params.NumFields() != 0 || fn.Results.NumFields() != 1 {
			continue
		}
		if id, ok := fn.Results.List[0].Type.(*ast.Ident); ok && id.Name == "bool" {
			out[field.Names[0].Name] = true
		}
	}
	return out
}

func (b *builder) check(sp spelling, f shape.Family) (shape.CheckKind, error) {
	switch sp.kind {
	case spelledPointer, spelledFunc:
		return shape.CheckNil, nil
	case spelledInterface:
		if sp.methods[f.Method()] {
			return shape.CheckNilOrMethod, nil
		}
		return shape.CheckNil, nil
	case spelledLocal:
		if fams, ok := b.requested[sp.name]; ok && fams.Has(f) {
			if b.unions[sp.name] {
				return shape.CheckNilOrMethod, nil
			}
			return shape.CheckMethod, nil
		}
		return 0, errors.NewMissingCapabilityf("%s has no %s", sp.name, f.Method())
	case spelledQualified:
		if kind, ok := qualifiedChecks[sp.name]; ok {
			return kind, nil
		}
		return 0, errors.NewMissingCapabilityf("%s has no known %s", sp.name, f.Method())
	}
	return builtinCheck(sp, f)
}

func builtinCheck(sp spelling, f shape.Family) (shape.CheckKind, error) {
	switch sp.kind {
	case spelledBasic:
		return basicChecks[sp.name], nil
	case spelledSlice, spelledMap, spelledChan:
		return shape.CheckLen, nil
	case spelledArray:
		if f == shape.Empty {
			return shape.CheckLen, nil
		}
	}
	return 0, errors.NewMissingCapabilityf("no built-in %s", f.Method())
}

// equalitySafe reports whether == on a record of the given kind never
// panics, judged from spellings. Interfaces and unions can hold values that
// panic when compared; slices, maps and funcs do not compare at all.
func (b *builder) equalitySafe(kind string, r recordSpec) bool {
	switch kind {
	case "struct":
		for _, fs := range r.Fields {
			if !b.spelledSafe(fs.Type) {
				return false
			}
		}
	case "array":
		if r.Len > 0 {
			return b.spelledSafe(r.Elem)
		}
	case "newtype":
		return b.spelledSafe(r.Type)
	}
	return true
}

func (b *builder) spelledSafe(src string) bool {
	expr, err := parser.ParseExpr(src)
	if err != nil {
		// reported when the member is built
		return true
	}
	return b.exprSafe(expr)
}

func (b *builder) exprSafe(expr ast.Expr) bool {
	switch e := expr.(type) {
	case *ast.ParenExpr:
		return b.exprSafe(e.X)
	case *ast.Ident:
		return e.Name != "any" && e.Name != "error" && !b.unions[e.Name]
	case *ast.ArrayType:
		return e.Len != nil && b.exprSafe(e.Elt)
	case *ast.MapType, *ast.FuncType, *ast.InterfaceType:
		return false
	}
	return true
}

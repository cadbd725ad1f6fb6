// Package extract builds shapes from Go packages. Packages are loaded and
// type-checked with golang.org/x/tools/go/packages; types are requested with
// //isx:derive directives or by name.
//
// Extraction runs in three steps over one package:
//  1. scan type declarations for directives and default markers
//  2. classify every requested type structurally, discovering union variants
//  3. resolve each member's check for every requested family
//
// A type that fails any step produces diagnostics and no shape.
package extract

import (
	"context"
	"go/ast"
	"go/token"
	"go/types"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/tools/go/packages"

	"github.com/teranos/isx/errors"
	"github.com/teranos/isx/gen/shape"
	"github.com/teranos/isx/internal/util"
	"github.com/teranos/isx/logger"
)

// DefaultMaxArity bounds array types expanded element by element when Config
// leaves MaxArity unset.
const DefaultMaxArity = 64

// Config selects packages and types.
type Config struct {
	// Dir is the directory patterns are resolved in; empty means the working directory.
	Dir      string
	Patterns []string
	// BuildTags are passed to the build system as -tags.
	BuildTags []string
	// Output is the base name of the generated file. Methods declared in it
	// are ignored and errors located in it are tolerated.
	Output string
	// Types requests types by name in addition to directives.
	Types []string
	// Families applies to Types and to directives that name no family.
	Families          shape.FamilySet
	MaxArity          int
	DefaultFuncPrefix string
}

// Result is the extraction outcome for one package.
type Result struct {
	Package     *shape.Package
	Diagnostics shape.Diagnostics
}

// Load loads the packages matching cfg.Patterns and extracts their requested types.
func Load(ctx context.Context, cfg Config) ([]*Result, error) {
	patterns := cfg.Patterns
	if len(patterns) == 0 {
		patterns = []string{"."}
	}

	pcfg := &packages.Config{
		Context: ctx,
		Dir:     cfg.Dir,
		Mode:    packages.NeedName | packages.NeedFiles | packages.NeedSyntax | packages.NeedTypes | packages.NeedTypesInfo,
	}
	if len(cfg.BuildTags) > 0 {
		pcfg.BuildFlags = []string{"-tags=" + strings.Join(cfg.BuildTags, ",")}
	}

	logger.Debugw("loading packages", "patterns", patterns, "dir", cfg.Dir)

	pkgs, err := packages.Load(pcfg, patterns...)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load %s", strings.Join(patterns, " "))
	}
	if len(pkgs) == 0 {
		return nil, errors.Newf("no packages found for %s", strings.Join(patterns, " "))
	}

	var results []*Result
	for _, pkg := range pkgs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := packageErrors(pkg, cfg.Output); err != nil {
			return nil, err
		}
		if len(pkg.GoFiles) == 0 {
			return nil, errors.Newf("package %s has no Go files", pkg.PkgPath)
		}
		results = append(results, Package(pkg, cfg))
	}
	return results, nil
}

// packageErrors reports load and type errors, ignoring those located in the
// generated file: a stale output must not prevent regenerating it.
func packageErrors(pkg *packages.Package, output string) error {
	var msgs []string
	for _, e := range pkg.Errors {
		file, _, _ := strings.Cut(e.Pos, ":")
		if output != "" && file != "" && filepath.Base(file) == output {
			continue
		}
		msgs = append(msgs, e.Error())
	}
	if len(msgs) == 0 {
		return nil
	}
	return errors.WithDetail(
		errors.Newf("package %s has errors", pkg.PkgPath),
		strings.Join(msgs, "\n"))
}

// typeDecl is a package-level type declaration found in step 1.
type typeDecl struct {
	name      string
	obj       *types.TypeName
	pos       token.Position
	directive *Directive
	marked    bool
}

// pending is a structurally classified type awaiting member checks. Member
// types parallel the shape's members.
type pending struct {
	decl           *typeDecl
	typ            *shape.Type
	memberTypes    []types.Type
	variantTypes   [][]types.Type
	variantObjects []*types.TypeName
}

type extractor struct {
	pkg        *packages.Package
	cfg        Config
	outputPath string
	log        *zap.SugaredLogger

	decls  []*typeDecl
	byName map[string]*typeDecl
	// requested maps every type receiving generated methods to its families.
	requested map[*types.TypeName]shape.FamilySet
	diags     shape.Diagnostics
}

// Package extracts the requested types of a loaded package.
func Package(pkg *packages.Package, cfg Config) *Result {
	if cfg.MaxArity <= 0 {
		cfg.MaxArity = DefaultMaxArity
	}
	if cfg.DefaultFuncPrefix == "" {
		cfg.DefaultFuncPrefix = "Default"
	}

	dir := filepath.Dir(pkg.GoFiles[0])
	x := &extractor{
		pkg:       pkg,
		cfg:       cfg,
		log:       logger.ComponentLogger("extract").With(logger.FieldPackage, pkg.PkgPath),
		byName:    make(map[string]*typeDecl),
		requested: make(map[*types.TypeName]shape.FamilySet),
	}
	if cfg.Output != "" {
		x.outputPath = filepath.Join(dir, cfg.Output)
	}

	x.scan()
	x.requestByName()

	out := &shape.Package{Name: pkg.Name, Path: pkg.PkgPath, Dir: dir}
	for _, p := range x.classifyAll() {
		if x.resolveChecks(p) {
			out.Types = append(out.Types, p.typ)
		}
	}

	x.diags.Sort()
	x.log.Debugw("extracted", logger.FieldCount, len(out.Types), "diagnostics", len(x.diags))
	return &Result{Package: out, Diagnostics: x.diags}
}

func (x *extractor) position(pos token.Pos) token.Position {
	return x.pkg.Fset.Position(pos)
}

func (x *extractor) inOutput(pos token.Pos) bool {
	return x.outputPath != "" && x.position(pos).Filename == x.outputPath
}

func (x *extractor) fail(td *typeDecl, family *shape.Family, err error) {
	x.diags = append(x.diags, shape.Diagnostic{Pos: td.pos, Type: td.name, Family: family, Err: err})
}

// scan is step 1: collect package-level type declarations in source order.
func (x *extractor) scan() {
	for _, file := range x.pkg.Syntax {
		if x.inOutput(file.Pos()) {
			continue
		}
		for _, decl := range file.Decls {
			gen, ok := decl.(*ast.GenDecl)
			if !ok || gen.Tok != token.TYPE {
				continue
			}
			for _, spec := range gen.Specs {
				ts := spec.(*ast.TypeSpec)
				td := &typeDecl{name: ts.Name.Name, pos: x.position(ts.Name.Pos())}
				if obj, ok := x.pkg.TypesInfo.Defs[ts.Name].(*types.TypeName); ok {
					td.obj = obj
				}
				x.parseComments(td, docComments(gen, ts))
				x.decls = append(x.decls, td)
				x.byName[td.name] = td
			}
		}
	}
}

func (x *extractor) parseComments(td *typeDecl, lines []string) {
	for _, line := range lines {
		if IsDefaultMarker(line) {
			td.marked = true
			continue
		}
		d, ok, err := ParseDirective(line, x.cfg.Families)
		if !ok {
			continue
		}
		if err != nil {
			x.fail(td, nil, err)
			continue
		}
		if td.directive != nil {
			d.Families |= td.directive.Families
		}
		td.directive = &d
	}
}

// requestByName adds the types named in Config.Types.
func (x *extractor) requestByName() {
	for _, name := range x.cfg.Types {
		td, ok := x.byName[name]
		if !ok {
			x.diags = append(x.diags, shape.Diagnostic{
				Type: name,
				Err:  errors.NewUnsupportedShapef("type %s is not declared in package %s", name, x.pkg.PkgPath),
			})
			continue
		}
		if td.directive == nil {
			td.directive = &Directive{Families: x.cfg.Families}
			continue
		}
		td.directive.Families |= x.cfg.Families
	}
}

// classifyAll is step 2. Unions are classified first so their variants are
// known before records are checked against them.
func (x *extractor) classifyAll() []*pending {
	var unions, records []*typeDecl
	for _, td := range x.decls {
		if td.directive == nil {
			continue
		}
		if td.directive.Families.IsZero() {
			x.fail(td, nil, errors.Newf("%s requests no predicate family", td.name))
			continue
		}
		if td.obj != nil && types.IsInterface(td.obj.Type()) {
			unions = append(unions, td)
		} else {
			records = append(records, td)
		}
	}

	variantOf := make(map[*types.TypeName]string)
	var out []*pending

	for _, td := range unions {
		p, err := x.classify(td)
		if err != nil {
			x.fail(td, nil, err)
			continue
		}
		if err := claimVariants(p, variantOf); err != nil {
			x.fail(td, nil, err)
			continue
		}
		out = append(out, p)
	}

	for _, td := range records {
		if union, ok := variantOf[td.obj]; ok {
			x.fail(td, nil, errors.WithHint(
				errors.NewUnsupportedShapef("%s is a variant of union %s, which already generates its predicates", td.name, union),
				"remove the //isx:derive directive from the variant"))
			continue
		}
		p, err := x.classify(td)
		if err != nil {
			x.fail(td, nil, err)
			continue
		}
		out = append(out, p)
	}

	for _, p := range out {
		x.requested[p.decl.obj] = p.typ.Families
		for _, obj := range p.variantObjects {
			x.requested[obj] = p.typ.Families
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].decl.obj.Pos() < out[j].decl.obj.Pos() })
	return out
}

func claimVariants(p *pending, variantOf map[*types.TypeName]string) error {
	for _, obj := range p.variantObjects {
		if other, taken := variantOf[obj]; taken {
			return errors.NewUnsupportedShapef("variant %s of union %s already belongs to union %s", obj.Name(), p.typ.Name, other)
		}
	}
	for _, obj := range p.variantObjects {
		variantOf[obj] = p.typ.Name
	}
	return nil
}

// resolveChecks is step 3. It reports whether p survived.
func (x *extractor) resolveChecks(p *pending) bool {
	ok := true
	typ := p.typ
	log := logger.ChildLogger(x.log, logger.FieldType, typ.Name)

	for _, f := range typ.Families.List() {
		family := util.Ptr(f)

		for _, owner := range x.methodOwners(p) {
			if name, clash := x.declaresPredicate(owner, f); clash {
				ok = false
				x.fail(p.decl, family, errors.WithHint(
					errors.NewUnsupportedShapef("%s already declares %s", owner.Name(), name),
					"remove the hand-written method or drop "+f.Method()+" from //isx:derive"))
			}
		}

		if !typ.IsUnion() {
			if err := x.fillChecks(typ.Name, typ.Members, p.memberTypes, f); err != nil {
				ok = false
				x.fail(p.decl, family, err)
			}
			continue
		}
		for i := range typ.Variants {
			v := &typ.Variants[i]
			if err := x.fillChecks(v.Name, v.Members, p.variantTypes[i], f); err != nil {
				ok = false
				x.fail(p.decl, family, err)
			}
		}
	}

	if ok {
		log.Debugw("classified", logger.FieldShape, typ.Kind.String(), logger.FieldFamily, typ.Families.String())
	}
	return ok
}

// methodOwners are the named types that receive generated methods for p.
func (x *extractor) methodOwners(p *pending) []*types.TypeName {
	if p.typ.IsUnion() {
		return p.variantObjects
	}
	return []*types.TypeName{p.decl.obj}
}

func (x *extractor) fillChecks(owner string, members []shape.Member, mtypes []types.Type, f shape.Family) error {
	for i := range members {
		m := &members[i]
		kind, err := x.memberCheck(m, mtypes[i], f)
		if err != nil {
			return errors.WithHint(
				errors.Wrapf(err, "%s.%s", owner, m.Name),
				"implement "+f.Method()+"() bool on "+m.Type+", request it with //isx:derive, or change the field type")
		}
		if m.Checks == nil {
			m.Checks = make(map[shape.Family]shape.CheckKind)
		}
		m.Checks[f] = kind
	}
	return nil
}

func (x *extractor) qualifier(p *types.Package) string {
	if p == x.pkg.Types {
		return ""
	}
	return p.Name()
}

func (x *extractor) typeString(t types.Type) string {
	return types.TypeString(t, x.qualifier)
}

// Package gen drives predicate generation for whole packages: it extracts
// shapes, synthesizes every requested (type, family) pair in parallel and
// renders the results into one file per package.
package gen

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/teranos/isx/errors"
	"github.com/teranos/isx/gen/extract"
	"github.com/teranos/isx/gen/render"
	"github.com/teranos/isx/gen/schema"
	"github.com/teranos/isx/gen/shape"
	"github.com/teranos/isx/gen/synth"
	"github.com/teranos/isx/internal/util"
	"github.com/teranos/isx/logger"
)

// Diagnostic is a per-type generation failure.
type Diagnostic = shape.Diagnostic

// Config controls a generation run.
type Config struct {
	Extract extract.Config
	// Parallelism bounds concurrent synthesis; 0 means GOMAXPROCS.
	Parallelism int
	Render      render.Options
}

// Output is the generated file for one package.
type Output struct {
	Package *shape.Package
	// Path is where the generated file lives.
	Path string
	// Source is nil when no type was generated.
	Source []byte
	// Types lists the generated types in declaration order.
	Types       []string
	Diagnostics shape.Diagnostics
}

// Generate extracts and generates every package matching cfg.
func Generate(ctx context.Context, cfg Config) ([]*Output, error) {
	results, err := extract.Load(ctx, cfg.Extract)
	if err != nil {
		return nil, err
	}

	outputs := make([]*Output, 0, len(results))
	for _, r := range results {
		out, err := Build(ctx, r.Package, r.Diagnostics, cfg)
		if err != nil {
			return nil, err
		}
		outputs = append(outputs, out)
	}
	return outputs, nil
}

// GenerateSchema generates from a YAML schema file.
func GenerateSchema(ctx context.Context, path string, cfg Config) (*Output, error) {
	pkg, diags, err := schema.Load(path, schema.Config{
		Families:          cfg.Extract.Families,
		MaxArity:          cfg.Extract.MaxArity,
		DefaultFuncPrefix: cfg.Extract.DefaultFuncPrefix,
	})
	if err != nil {
		return nil, err
	}
	return Build(ctx, pkg, diags, cfg)
}

// Build synthesizes and renders the types of pkg. diags are extraction
// diagnostics carried into the output. A type whose synthesis fails for any
// family is left out entirely.
func Build(ctx context.Context, pkg *shape.Package, diags shape.Diagnostics, cfg Config) (*Output, error) {
	start := time.Now()
	log := logger.ComponentLogger("gen").With(logger.FieldPackage, pkg.Path)

	limit := cfg.Parallelism
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	units := make([]render.Unit, len(pkg.Types))
	failures := make([]shape.Diagnostics, len(pkg.Types))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, t := range pkg.Types {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			units[i], failures[i] = synthesize(t)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &Output{
		Package:     pkg,
		Path:        filepath.Join(pkg.Dir, outputName(cfg)),
		Diagnostics: append(shape.Diagnostics(nil), diags...),
	}
	var kept []render.Unit
	for i, u := range units {
		if len(failures[i]) > 0 {
			out.Diagnostics = append(out.Diagnostics, failures[i]...)
			continue
		}
		kept = append(kept, u)
		out.Types = append(out.Types, u.Type.Name)
	}
	out.Diagnostics.Sort()

	if len(kept) > 0 {
		src, err := render.File(pkg, kept, cfg.Render)
		if err != nil {
			return nil, err
		}
		out.Source = src
	}

	log.Infow("generated",
		logger.FieldCount, len(out.Types),
		"diagnostics", len(out.Diagnostics),
		logger.FieldDurationMS, time.Since(start).Milliseconds())
	return out, nil
}

func synthesize(t *shape.Type) (render.Unit, shape.Diagnostics) {
	u := render.Unit{Type: t}
	var diags shape.Diagnostics
	for _, f := range t.Families.List() {
		p, err := synth.For(t, f)
		if err != nil {
			diags = append(diags, shape.Diagnostic{Pos: t.Pos, Type: t.Name, Family: util.Ptr(f), Err: err})
			continue
		}
		u.Preds = append(u.Preds, p)
	}
	return u, diags
}

func outputName(cfg Config) string {
	if cfg.Extract.Output != "" {
		return cfg.Extract.Output
	}
	return "isx_gen.go"
}

// Write stores out.Source at out.Path, leaving an identical file untouched.
// When nothing was generated, a previously generated file is removed; a
// hand-written file at that path is never deleted. It reports whether the
// file system changed.
func Write(out *Output) (bool, error) {
	existing, err := os.ReadFile(out.Path)
	if err != nil && !os.IsNotExist(err) {
		return false, errors.Wrapf(err, "failed to read %s", out.Path)
	}
	exists := err == nil

	if out.Source == nil {
		if !exists || !isGenerated(existing) {
			return false, nil
		}
		if err := os.Remove(out.Path); err != nil {
			return false, errors.Wrapf(err, "failed to remove %s", out.Path)
		}
		logger.Infow("removed generated file", logger.FieldFile, out.Path)
		return true, nil
	}

	if exists && bytes.Equal(existing, out.Source) {
		return false, nil
	}
	if exists && !isGenerated(existing) {
		return false, errors.WithHint(
			errors.Newf("%s exists and was not generated by isxgen", out.Path),
			"choose another output file with -o")
	}
	if err := os.WriteFile(out.Path, out.Source, 0644); err != nil {
		return false, errors.Wrapf(err, "failed to write %s", out.Path)
	}
	logger.Infow("wrote generated file", logger.FieldFile, out.Path, logger.FieldCount, len(out.Types))
	return true, nil
}

func isGenerated(content []byte) bool {
	return bytes.HasPrefix(content, []byte(render.GeneratedHeader))
}

package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pterm/pterm"

	"github.com/teranos/isx/errors"
	"github.com/teranos/isx/gen"
	"github.com/teranos/isx/logger"
)

// reportDiagnostics prints diagnostics compiler-style with their hints and
// returns how many there were.
func reportDiagnostics(w io.Writer, outs []*gen.Output) int {
	n := 0
	for _, out := range outs {
		for _, d := range out.Diagnostics {
			n++
			pterm.Error.WithWriter(w).Println(d.Error())
			for _, hint := range errors.GetAllHints(d.Err) {
				pterm.Info.WithWriter(w).Println("hint: " + hint)
			}
			if logger.ShouldOutput(verbosity, logger.OutputShapeDump) {
				fmt.Fprintf(w, "%+v\n", d.Err)
			}
		}
	}
	return n
}

// writeOutputs writes or, in dry-run mode, prints every output.
func writeOutputs(w io.Writer, outs []*gen.Output, dryRun bool) error {
	for _, out := range outs {
		if dryRun {
			if out.Source != nil {
				fmt.Fprintf(w, "// %s\n%s", out.Path, out.Source)
			}
			continue
		}

		changed, err := gen.Write(out)
		if err != nil {
			return err
		}
		rel := relPath(out.Path)
		switch {
		case changed && out.Source == nil:
			pterm.Success.WithWriter(w).Printfln("Removed %s", rel)
		case changed:
			pterm.Success.WithWriter(w).Printfln("Generated %s (%s)", rel, strings.Join(out.Types, ", "))
		case logger.ShouldOutput(verbosity, logger.OutputSummary) && out.Source != nil:
			pterm.Info.WithWriter(w).Printfln("%s is up to date", rel)
		}
	}
	return nil
}

// failOnDiagnostics turns reported diagnostics into the command's exit status.
func failOnDiagnostics(n int) error {
	if n == 0 {
		return nil
	}
	return errors.Newf("generation failed with %d diagnostic(s)", n)
}

func relPath(path string) string {
	wd, err := os.Getwd()
	if err != nil {
		return path
	}
	if rel, err := filepath.Rel(wd, path); err == nil && !strings.HasPrefix(rel, "..") {
		return rel
	}
	return path
}

package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/isx/gen"
)

var (
	checkOpts   generateFlags
	checkSchema string
)

// CheckCmd reports generated files that are out of date
var CheckCmd = &cobra.Command{
	Use:   "check [packages...]",
	Short: "Check that generated files are up to date",
	Long: `Regenerate in memory and compare with the files on disk, ignoring the
isxgen version line.

Exit codes:
  0 - Generated files are up to date
  1 - A file is stale or missing, or a type could not be generated

Examples:
  isxgen check ./...
  isxgen check --schema isx.yaml`,
	RunE: runCheck,
}

func init() {
	checkOpts.register(CheckCmd.Flags())
	_ = CheckCmd.Flags().MarkHidden("dry-run")
	CheckCmd.Flags().StringVar(&checkSchema, "schema", "", "Check the output of a YAML schema instead of packages")
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := checkOpts.genConfig(cmd.Flags(), args)
	if err != nil {
		return err
	}

	var outs []*gen.Output
	if checkSchema != "" {
		out, err := gen.GenerateSchema(cmd.Context(), checkSchema, cfg)
		if err != nil {
			return err
		}
		outs = []*gen.Output{out}
	} else if outs, err = gen.Generate(cmd.Context(), cfg); err != nil {
		return err
	}

	n := reportDiagnostics(cmd.ErrOrStderr(), outs)

	results, err := gen.CheckAll(outs)
	for _, res := range results {
		switch {
		case res.Stale:
			pterm.Warning.WithWriter(cmd.OutOrStdout()).Printfln("%s: %s", relPath(res.Path), res.Reason)
		default:
			pterm.Success.WithWriter(cmd.OutOrStdout()).Printfln("%s is up to date", relPath(res.Path))
		}
	}
	if err != nil {
		return err
	}
	return failOnDiagnostics(n)
}

package commands

import (
	"github.com/spf13/cobra"

	"github.com/teranos/isx/gen"
)

var generateOpts generateFlags

// GenerateCmd generates predicates for Go packages. It is also what the root
// command runs when no subcommand is given.
var GenerateCmd = &cobra.Command{
	Use:   "generate [packages...]",
	Short: "Generate IsEmpty/IsDefault methods for Go packages",
	Long: `Generate IsEmpty and IsDefault methods for the types of Go packages.

Types are requested with a //isx:derive directive in their doc comment or
with --type. A sealed interface becomes a tagged union: every type of the
package implementing it is a variant, and //isx:default marks the variant
that IsDefault accepts.

The package defaults to the current directory, which is where go generate
runs:

  //go:generate isxgen

Examples:
  isxgen                                # Current package
  isxgen generate ./internal/...        # Several packages
  isxgen --type Point --family empty    # Without a directive
  isxgen --dry-run                      # Print instead of writing`,
	RunE: runGenerate,
}

func init() {
	generateOpts.register(GenerateCmd.Flags())
}

func runGenerate(cmd *cobra.Command, args []string) error {
	return generate(cmd, &generateOpts, args)
}

// generate is shared with the root command, which accepts the same flags.
func generate(cmd *cobra.Command, opts *generateFlags, patterns []string) error {
	cfg, err := opts.genConfig(cmd.Flags(), patterns)
	if err != nil {
		return err
	}

	outs, err := gen.Generate(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	n := reportDiagnostics(cmd.ErrOrStderr(), outs)
	if err := writeOutputs(cmd.OutOrStdout(), outs, opts.dryRun); err != nil {
		return err
	}
	return failOnDiagnostics(n)
}

var rootOpts generateFlags

// AttachGenerate makes root behave like generate when run without a
// subcommand, so that "//go:generate isxgen" works with the same flags.
func AttachGenerate(root *cobra.Command) {
	rootOpts.register(root.Flags())
	root.Args = cobra.ArbitraryArgs
	root.RunE = func(cmd *cobra.Command, args []string) error {
		return generate(cmd, &rootOpts, args)
	}
}

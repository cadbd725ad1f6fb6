package commands

import (
	"github.com/spf13/cobra"

	"github.com/teranos/isx/gen"
)

var schemaOpts generateFlags

// SchemaCmd generates predicates from a YAML schema
var SchemaCmd = &cobra.Command{
	Use:   "schema <file.yaml>",
	Short: "Generate from a YAML schema instead of Go source",
	Long: `Generate IsEmpty and IsDefault methods from a YAML description of the
types. No Go package is loaded, so member types are classified by how they
are spelled; a member whose capability cannot be inferred takes an explicit
check (method, nil, len, zero, false, iszero, json).

The generated file is written next to the schema unless the schema sets dir.

Example schema:

  package: shapes
  types:
    - name: Record
      kind: struct
      fields:
        - {name: Foo, type: string}
        - {name: Bar, type: bool}
    - name: Sample
      kind: union
      variants:
        - {name: Unit, kind: struct, default: true}
        - {name: Tuple, kind: array, elem: string, len: 2}`,
	Args: cobra.ExactArgs(1),
	RunE: runSchema,
}

func init() {
	schemaOpts.register(SchemaCmd.Flags())
	_ = SchemaCmd.Flags().MarkHidden("type")
	_ = SchemaCmd.Flags().MarkHidden("tags")
}

func runSchema(cmd *cobra.Command, args []string) error {
	cfg, err := schemaOpts.genConfig(cmd.Flags(), nil)
	if err != nil {
		return err
	}

	out, err := gen.GenerateSchema(cmd.Context(), args[0], cfg)
	if err != nil {
		return err
	}

	outs := []*gen.Output{out}
	n := reportDiagnostics(cmd.ErrOrStderr(), outs)
	if err := writeOutputs(cmd.OutOrStdout(), outs, schemaOpts.dryRun); err != nil {
		return err
	}
	return failOnDiagnostics(n)
}

package main

import (
	"context"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/isx/cmd/isxgen/commands"
	"github.com/teranos/isx/errors"
	"github.com/teranos/isx/logger"
)

var rootCmd = &cobra.Command{
	Use:   "isxgen [packages...]",
	Short: "isxgen - generate IsEmpty and IsDefault methods",
	Long: `isxgen - generate IsEmpty and IsDefault methods for Go types.

Records report empty when every field is empty. Tagged unions (sealed
interfaces) dispatch to their variants, and IsDefault accepts exactly the
variant marked //isx:default.

Available commands:
  generate - Generate for Go packages (default)
  schema   - Generate from a YAML schema
  check    - Fail when generated files are stale
  watch    - Regenerate on change
  init     - Write a default isxgen.toml
  config   - Show configuration
  version  - Show version

Examples:
  isxgen                       # Generate for the current package
  isxgen check ./...           # CI staleness check
  isxgen schema shapes.yaml    # Offline generation`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return commands.Setup(cmd)
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")
	rootCmd.PersistentFlags().Bool("json-logs", false, "Write logs as JSON")

	commands.AttachGenerate(rootCmd)

	rootCmd.AddCommand(commands.GenerateCmd)
	rootCmd.AddCommand(commands.SchemaCmd)
	rootCmd.AddCommand(commands.CheckCmd)
	rootCmd.AddCommand(commands.WatchCmd)
	rootCmd.AddCommand(commands.InitCmd)
	rootCmd.AddCommand(commands.ConfigCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	err := rootCmd.ExecuteContext(context.Background())
	logger.Cleanup()
	if err != nil {
		pterm.Error.WithWriter(os.Stderr).Println(err)
		for _, hint := range errors.GetAllHints(err) {
			pterm.Info.WithWriter(os.Stderr).Println("hint: " + hint)
		}
		os.Exit(1)
	}
}

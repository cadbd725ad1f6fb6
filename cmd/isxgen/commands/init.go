package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/isx/config"
)

var (
	initPath  string
	initForce bool
)

// InitCmd writes a default project configuration
var InitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default " + config.ProjectConfigName,
	Long: `Write an isxgen.toml holding the default settings, for editing.

isxgen finds the nearest isxgen.toml by walking up from the working
directory, so a file at the module root applies to every package.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	InitCmd.Flags().StringVar(&initPath, "path", config.ProjectConfigName, "Where to write the configuration")
	InitCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing file")
}

func runInit(cmd *cobra.Command, args []string) error {
	if err := config.Save(config.Defaults(), initPath, initForce); err != nil {
		return err
	}
	pterm.Success.WithWriter(cmd.OutOrStdout()).Printfln("Wrote %s", initPath)
	return nil
}

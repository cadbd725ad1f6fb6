package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/teranos/isx/config"
	"github.com/teranos/isx/errors"
)

// ConfigCmd shows the effective configuration
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show isxgen configuration",
	Long: `Display the effective isxgen configuration.

Configuration sources (in order of precedence):
1. Command line flags
2. Environment variables (ISXGEN_* prefix, e.g. ISXGEN_GENERATE_OUTPUT)
3. Project config (nearest isxgen.toml, searching upward)
4. User config (~/.config/isxgen/config.toml)
5. Default values

Examples:
  isxgen config show                 # Show current configuration
  isxgen config show --format json   # As JSON
  isxgen config where                # Which files were considered`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configWhereCmd = &cobra.Command{
	Use:   "where",
	Short: "Show where configuration is loaded from",
	Args:  cobra.NoArgs,
	RunE:  runConfigWhere,
}

var configFormat string

func init() {
	configShowCmd.Flags().StringVar(&configFormat, "format", "toml", "Output format: toml, json, yaml")

	ConfigCmd.AddCommand(configShowCmd)
	ConfigCmd.AddCommand(configWhereCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg := settings
	if cfg == nil {
		cfg = config.Defaults()
	}

	data, err := encodeConfig(cfg, configFormat)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func encodeConfig(cfg *config.Config, format string) ([]byte, error) {
	switch format {
	case "toml":
		return toml.Marshal(cfg)
	case "json":
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case "yaml":
		return yaml.Marshal(cfg)
	}
	return nil, errors.WithHint(
		errors.Newf("unknown format %q", format),
		"use toml, json or yaml")
}

func runConfigWhere(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()
	fmt.Fprintln(w, "Configuration sources (highest precedence last):")
	fmt.Fprintln(w, "  defaults")
	for _, path := range []string{config.UserConfigPath(), config.ProjectConfigPath()} {
		if path == "" {
			continue
		}
		status := "found"
		if _, err := os.Stat(path); err != nil {
			status = "missing"
		} else if keys, err := config.UnknownKeys(path); err != nil {
			status = "unreadable"
		} else if len(keys) > 0 {
			status = "unknown keys: " + strings.Join(keys, ", ")
		}
		fmt.Fprintf(w, "  %s (%s)\n", path, status)
	}
	fmt.Fprintln(w, "  ISXGEN_* environment variables")
	return nil
}

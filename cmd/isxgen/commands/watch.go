package commands

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/isx/gen"
	"github.com/teranos/isx/logger"
)

var (
	watchOpts   generateFlags
	watchSchema string
)

// WatchCmd regenerates whenever sources change
var WatchCmd = &cobra.Command{
	Use:   "watch [packages...]",
	Short: "Regenerate when sources change",
	Long: `Generate once, then watch the package directories (or the schema file)
and regenerate after changes settle. Stop with Ctrl-C.

Examples:
  isxgen watch
  isxgen watch ./internal/shapes
  isxgen watch --schema isx.yaml`,
	RunE: runWatch,
}

func init() {
	watchOpts.register(WatchCmd.Flags())
	_ = WatchCmd.Flags().MarkHidden("dry-run")
	WatchCmd.Flags().StringVar(&watchSchema, "schema", "", "Watch a YAML schema instead of packages")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := watchOpts.genConfig(cmd.Flags(), args)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	run := func(ctx context.Context) ([]*gen.Output, error) {
		var (
			outs []*gen.Output
			err  error
		)
		if watchSchema != "" {
			var out *gen.Output
			if out, err = gen.GenerateSchema(ctx, watchSchema, cfg); err != nil {
				return nil, err
			}
			outs = []*gen.Output{out}
		} else if outs, err = gen.Generate(ctx, cfg); err != nil {
			return nil, err
		}
		reportDiagnostics(cmd.ErrOrStderr(), outs)
		return outs, writeOutputs(cmd.OutOrStdout(), outs, false)
	}

	outs, err := run(ctx)
	if err != nil {
		return err
	}

	dirs := gen.PackageDirs(outs)
	if watchSchema != "" {
		abs, err := filepath.Abs(watchSchema)
		if err != nil {
			return err
		}
		dirs = []string{filepath.Dir(abs)}
	}

	w, err := gen.NewWatcher(dirs, cfg.Extract.Output, func(ctx context.Context) error {
		_, err := run(ctx)
		return err
	})
	if err != nil {
		return err
	}
	if watchSchema != "" {
		abs, _ := filepath.Abs(watchSchema)
		w.Match = func(path string) bool { return path == abs }
	}

	pterm.Info.WithWriter(cmd.OutOrStdout()).Printfln("Watching %d director(ies), press Ctrl-C to stop", len(dirs))
	logger.Infow("watching", "dirs", dirs)
	return w.Run(ctx)
}

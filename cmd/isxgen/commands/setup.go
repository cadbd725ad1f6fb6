package commands

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/teranos/isx/config"
	"github.com/teranos/isx/errors"
	"github.com/teranos/isx/gen"
	"github.com/teranos/isx/gen/extract"
	"github.com/teranos/isx/gen/render"
	"github.com/teranos/isx/gen/shape"
	"github.com/teranos/isx/logger"
	"github.com/teranos/isx/version"
)

var (
	// settings is the configuration loaded by Setup.
	settings *config.Config
	// verbosity is the effective -v count.
	verbosity int
)

// Setup loads configuration and initializes logging. It runs before every
// command; flags on the command line win over the config file.
func Setup(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load configuration")
	}

	verbosity = cfg.Log.Verbosity
	if f := cmd.Flags().Lookup("verbose"); f != nil && f.Changed {
		verbosity, _ = cmd.Flags().GetCount("verbose")
	}
	jsonLogs := cfg.Log.JSON
	if f := cmd.Flags().Lookup("json-logs"); f != nil && f.Changed {
		jsonLogs, _ = cmd.Flags().GetBool("json-logs")
	}

	if err := logger.Initialize(jsonLogs, verbosity); err != nil {
		return errors.Wrap(err, "failed to initialize logger")
	}
	logger.Debugw("configuration loaded",
		logger.FieldConfig, config.ProjectConfigPath(),
		"verbosity", logger.LevelName(verbosity))
	warnUnknownKeys()

	if err := cfg.CheckVersion(version.Get().Version); err != nil {
		return err
	}
	settings = cfg
	return nil
}

// warnUnknownKeys logs config keys isxgen does not know, usually typos.
func warnUnknownKeys() {
	for _, path := range config.ConfigFiles() {
		keys, err := config.UnknownKeys(path)
		if err != nil {
			logger.Warnw("could not lint config file", logger.FieldConfig, path, logger.FieldError, err)
			continue
		}
		for _, key := range keys {
			logger.Warnw("unknown config key", logger.FieldConfig, path, "key", key)
		}
	}
}

// generateFlags are shared by the commands that generate.
type generateFlags struct {
	types       []string
	families    []string
	output      string
	tags        []string
	receiver    string
	parallelism int
	dryRun      bool
}

func (g *generateFlags) register(fs *pflag.FlagSet) {
	fs.StringSliceVarP(&g.types, "type", "t", nil, "Types to generate without a //isx:derive directive")
	fs.StringSliceVarP(&g.families, "family", "f", nil, "Families for --type and bare directives: empty, default")
	fs.StringVarP(&g.output, "output", "o", "", "Generated file name inside each package (default "+config.DefaultOutput+")")
	fs.StringSliceVar(&g.tags, "tags", nil, "Build tags used to load packages and written as //go:build")
	fs.StringVar(&g.receiver, "receiver", "", "Receiver name for generated methods")
	fs.IntVarP(&g.parallelism, "parallelism", "p", 0, "Types synthesized concurrently (0 = GOMAXPROCS)")
	fs.BoolVar(&g.dryRun, "dry-run", false, "Print generated code instead of writing it")
}

// genConfig overlays the changed flags of fs on the loaded configuration.
func (g *generateFlags) genConfig(fs *pflag.FlagSet, patterns []string) (gen.Config, error) {
	cfg := settings
	if cfg == nil {
		cfg = config.Defaults()
	}
	gc := cfg.Generate

	if fs.Changed("family") {
		gc.Families = g.families
	}
	if fs.Changed("output") {
		gc.Output = g.output
	}
	if fs.Changed("tags") {
		gc.BuildTags = g.tags
	}
	if fs.Changed("receiver") {
		gc.Receiver = g.receiver
	}
	if fs.Changed("parallelism") {
		gc.Parallelism = g.parallelism
	}

	override := config.Config{Generate: gc, Log: cfg.Log}
	if err := override.Validate(); err != nil {
		return gen.Config{}, err
	}

	families, err := shape.ParseFamilySet(gc.Families)
	if err != nil {
		return gen.Config{}, err
	}

	return gen.Config{
		Extract: extract.Config{
			Patterns:          patterns,
			BuildTags:         gc.BuildTags,
			Output:            gc.Output,
			Types:             g.types,
			Families:          families,
			MaxArity:          gc.MaxArity,
			DefaultFuncPrefix: gc.DefaultFuncPrefix,
		},
		Parallelism: gc.Parallelism,
		Render: render.Options{
			Version:    version.Get().Version,
			BuildTags:  gc.BuildTags,
			Assertions: gc.Assertions,
			Receiver:   gc.Receiver,
		},
	}, nil
}

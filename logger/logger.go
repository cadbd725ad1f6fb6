// Package logger holds isxgen's process-wide zap logger.
//
// Diagnostics about user types are command output, printed by cmd/isxgen.
// The logger carries what the generator does: packages loaded, files
// written, per-type decisions at higher verbosity. It writes to stderr so
// that "isxgen --dry-run > out.go" stays clean.
package logger

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Logger is the global logger. It discards everything until Initialize runs.
	Logger = zap.NewNop().Sugar()
	// JSONOutput reports whether Initialize selected the JSON encoder.
	JSONOutput bool

	// helper backs the package-level functions, one frame deeper than Logger.
	helper = Logger
)

// Initialize replaces the global logger according to --json-logs and the -v count.
func Initialize(jsonOutput bool, verbosity int) error {
	return initialize(os.Stderr, jsonOutput, verbosity)
}

func initialize(w io.Writer, jsonOutput bool, verbosity int) error {
	JSONOutput = jsonOutput

	var encoder zapcore.Encoder
	if jsonOutput {
		encoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	} else {
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.TimeKey = ""
		cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		if verbosity < VerbosityTrace {
			cfg.CallerKey = ""
		}
		encoder = zapcore.NewConsoleEncoder(cfg)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(w), zap.NewAtomicLevelAt(VerbosityToLevel(verbosity)))
	var opts []zap.Option
	if verbosity >= VerbosityTrace {
		opts = append(opts, zap.AddCaller())
	}
	Logger = zap.New(core, opts...).Sugar().Named("isxgen")
	helper = Logger.WithOptions(zap.AddCallerSkip(1))
	return nil
}

// Cleanup flushes buffered entries. Call it once before the process exits.
func Cleanup() {
	if Logger != nil {
		_ = Logger.Sync()
	}
}

func Infow(msg string, keysAndValues ...interface{}) {
	helper.Infow(msg, keysAndValues...)
}

func Warnw(msg string, keysAndValues ...interface{}) {
	helper.Warnw(msg, keysAndValues...)
}

func Errorw(msg string, keysAndValues ...interface{}) {
	helper.Errorw(msg, keysAndValues...)
}

func Debugw(msg string, keysAndValues ...interface{}) {
	helper.Debugw(msg, keysAndValues...)
}

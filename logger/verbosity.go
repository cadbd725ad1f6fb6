package logger

import "go.uber.org/zap/zapcore"

// Verbosity is the number of -v flags. It selects output categories (see
// output.go) as well as the zap level.
const (
	VerbosityUser  = 0 // written files and diagnostics
	VerbosityInfo  = 1 // -v: per-package progress and summaries
	VerbosityDebug = 2 // -vv: timing, config, default-variant resolution
	VerbosityTrace = 3 // -vvv: member checks, caller locations in logs
	VerbosityAll   = 4 // -vvvv: shape and expression dumps
)

var levelNames = [...]string{
	VerbosityUser:  "User",
	VerbosityInfo:  "Info (-v)",
	VerbosityDebug: "Debug (-vv)",
	VerbosityTrace: "Trace (-vvv)",
	VerbosityAll:   "All (-vvvv)",
}

// VerbosityToLevel maps a -v count to the minimum zap level logged: warn
// with no flag, info with -v, debug beyond.
func VerbosityToLevel(verbosity int) zapcore.Level {
	switch {
	case verbosity <= VerbosityUser:
		return zapcore.WarnLevel
	case verbosity == VerbosityInfo:
		return zapcore.InfoLevel
	}
	return zapcore.DebugLevel
}

// LevelName describes a -v count for the startup log line.
func LevelName(verbosity int) string {
	switch {
	case verbosity < 0:
		return "Unknown"
	case verbosity > VerbosityAll:
		return "All (-vvvv+)"
	}
	return levelNames[verbosity]
}

package logger

// Output controls what categories of information are shown at each verbosity level.
//
// Unlike log levels (which filter by severity), output categories control
// WHAT types of information are displayed regardless of severity.
//
// Verbosity Levels:
//
//	0 (default) - Written files, diagnostics, final status
//	1 (-v)      - + Per-package progress, generation summaries
//	2 (-vv)     - + Timing, config values, union resolution
//	3 (-vvv)    - + Member check resolution per field
//	4 (-vvvv)   - + Full shape and expression dumps

// OutputCategory defines a category of output that can be enabled/disabled
type OutputCategory int

const (
	// Level 0 (default) - Always shown
	OutputResults     OutputCategory = iota // Files written, check results
	OutputDiagnostics                       // Generation diagnostics with hints
	OutputUserStatus                        // Final success/failure status

	// Level 1 (-v) - Informational
	OutputProgress // Per-package progress
	OutputSummary  // Types and families generated

	// Level 2 (-vv) - Detailed
	OutputTiming     // Load and render timing
	OutputConfig     // Config values loaded/applied
	OutputResolution // Default-variant resolution outcomes

	// Level 3 (-vvv) - Debug
	OutputMemberChecks // Check chosen for every member

	// Level 4 (-vvvv) - Full dump
	OutputShapeDump // Full shape and expression trees
)

// categoryLevels maps each output category to its minimum verbosity level
var categoryLevels = map[OutputCategory]int{
	OutputResults:     VerbosityUser,
	OutputDiagnostics: VerbosityUser,
	OutputUserStatus:  VerbosityUser,

	OutputProgress: VerbosityInfo,
	OutputSummary:  VerbosityInfo,

	OutputTiming:     VerbosityDebug,
	OutputConfig:     VerbosityDebug,
	OutputResolution: VerbosityDebug,

	OutputMemberChecks: VerbosityTrace,

	OutputShapeDump: VerbosityAll,
}

// ShouldOutput returns true if the given category should be shown at the given verbosity
func ShouldOutput(verbosity int, category OutputCategory) bool {
	minLevel, ok := categoryLevels[category]
	if !ok {
		// Unknown category, default to highest verbosity required
		return verbosity >= VerbosityAll
	}
	return verbosity >= minLevel
}

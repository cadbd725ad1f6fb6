package logger

import (
	"go.uber.org/zap"
)

// Standard field names for consistent structured logging across isxgen.
// Use these constants instead of raw strings to ensure consistency.
const (
	// Generation targets
	FieldPackage = "package"
	FieldType    = "type"
	FieldFamily  = "family"
	FieldVariant = "variant"
	FieldShape   = "shape"

	// Files and paths
	FieldFile   = "file"
	FieldLine   = "line"
	FieldConfig = "config"

	// Timing
	FieldDurationMS = "duration_ms"

	// Errors
	FieldError = "error"

	// Counts
	FieldCount = "count"
)

// ComponentLogger returns a named logger for a specific component.
//
// Example:
//
//	type Driver struct {
//	    logger *zap.SugaredLogger
//	}
//
//	func NewDriver() *Driver {
//	    return &Driver{logger: logger.ComponentLogger("extract")}
//	}
func ComponentLogger(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}

// ChildLogger creates a child logger with additional context.
//
// Example:
//
//	typeLogger := logger.ChildLogger(base, logger.FieldType, "Point")
func ChildLogger(parent *zap.SugaredLogger, keysAndValues ...interface{}) *zap.SugaredLogger {
	return parent.With(keysAndValues...)
}

package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestInitialize(t *testing.T) {
	tests := []struct {
		name       string
		jsonOutput bool
	}{
		{name: "JSON output mode", jsonOutput: true},
		{name: "Console output mode", jsonOutput: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Logger = nil
			JSONOutput = false

			require.NoError(t, Initialize(tt.jsonOutput, VerbosityUser))
			assert.NotNil(t, Logger)
			assert.Equal(t, tt.jsonOutput, JSONOutput)

			Cleanup()
		})
	}
}

func TestVerbosityFiltersLevels(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, initialize(&buf, true, VerbosityUser))

	Infow("hidden at verbosity 0", FieldType, "Point")
	Warnw("shown at verbosity 0", FieldType, "Point")
	Cleanup()

	out := buf.String()
	assert.NotContains(t, out, "hidden at verbosity 0")
	assert.Contains(t, out, "shown at verbosity 0")
}

func TestJSONOutputCarriesFields(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, initialize(&buf, true, VerbosityDebug))

	Debugw("generated", FieldType, "Point", FieldFamily, "empty")
	Cleanup()

	line := strings.TrimSpace(buf.String())
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(line), &entry))
	assert.Equal(t, "generated", entry["msg"])
	assert.Equal(t, "Point", entry[FieldType])
	assert.Equal(t, "empty", entry[FieldFamily])
	assert.Equal(t, "isxgen", entry["logger"])
}

func TestCallerAtTraceVerbosity(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, initialize(&buf, true, VerbosityTrace))
	Debugw("classified", FieldType, "Point")
	ComponentLogger("extract").Debugw("member check", FieldType, "Point")
	Cleanup()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	for _, line := range lines {
		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		assert.Contains(t, entry["caller"], "logger_test.go")
	}

	buf.Reset()
	require.NoError(t, initialize(&buf, true, VerbosityDebug))
	Debugw("classified")
	Cleanup()
	assert.NotContains(t, buf.String(), "caller")
}

func TestCleanupWithNilLogger(t *testing.T) {
	Logger = nil
	assert.NotPanics(t, Cleanup)
	assert.NotPanics(t, func() { Infow("nothing") })
	require.NoError(t, Initialize(false, VerbosityUser))
}

func TestVerbosityToLevel(t *testing.T) {
	tests := []struct {
		verbosity int
		want      zapcore.Level
	}{
		{-1, zapcore.WarnLevel},
		{VerbosityUser, zapcore.WarnLevel},
		{VerbosityInfo, zapcore.InfoLevel},
		{VerbosityDebug, zapcore.DebugLevel},
		{VerbosityAll + 3, zapcore.DebugLevel},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, VerbosityToLevel(tt.verbosity), "verbosity %d", tt.verbosity)
	}
}

func TestShouldOutput(t *testing.T) {
	assert.True(t, ShouldOutput(VerbosityUser, OutputDiagnostics))
	assert.False(t, ShouldOutput(VerbosityUser, OutputProgress))
	assert.True(t, ShouldOutput(VerbosityInfo, OutputSummary))
	assert.False(t, ShouldOutput(VerbosityDebug, OutputMemberChecks))
	assert.True(t, ShouldOutput(VerbosityAll, OutputShapeDump))
	assert.False(t, ShouldOutput(VerbosityTrace, OutputCategory(99)))
	assert.Equal(t, "Trace (-vvv)", LevelName(VerbosityTrace))
}

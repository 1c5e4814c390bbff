// pkg/logging/logging_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: Real filesystem (t.TempDir)
// PURPOSE: Test logger levels, log file placement and timing records

package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restoreLogger(t *testing.T) {
	t.Helper()
	original, level := log.Logger, zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = original
		zerolog.SetGlobalLevel(level)
	})
}

func TestLevel(t *testing.T) {
	tests := []struct {
		verbosity int
		want      zerolog.Level
	}{
		{-1, zerolog.WarnLevel},
		{0, zerolog.WarnLevel},
		{1, zerolog.InfoLevel},
		{2, zerolog.DebugLevel},
		{3, zerolog.TraceLevel},
		{5, zerolog.TraceLevel},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Level(tt.verbosity), "verbosity %d", tt.verbosity)
	}
}

func TestSetupLoggerUsesStateDir(t *testing.T) {
	restoreLogger(t)
	stateDir := t.TempDir()
	t.Setenv("PYPROJECT_STATE_DIR", stateDir)

	SetupLogger(1)
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())

	_, err := os.Stat(filepath.Join(stateDir, "pyproject.log"))
	assert.NoError(t, err)
}

func TestSetupWritesConsoleAndFile(t *testing.T) {
	restoreLogger(t)
	var console bytes.Buffer
	logFile := filepath.Join(t.TempDir(), "logs", "run.log")

	got := Setup(Options{Verbosity: 0, Console: &console, LogFile: logFile})
	assert.Equal(t, logFile, got)

	logger := GetLogger("workspace")
	logger.Warn().Str("manifest", "/ws/pyproject.toml").Msg("Skipping unparsable pyproject.toml")
	logger.Info().Msg("hidden at warn level")

	assert.Contains(t, console.String(), "Skipping unparsable pyproject.toml")
	assert.NotContains(t, console.String(), "hidden at warn level")

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"component":"workspace"`)
	assert.Contains(t, string(data), `"manifest":"/ws/pyproject.toml"`)
}

func TestSetupConsoleOnly(t *testing.T) {
	restoreLogger(t)
	var console bytes.Buffer

	assert.Empty(t, Setup(Options{Console: &console, LogFile: "-"}))

	// a log file under a regular file cannot be created
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))
	assert.Empty(t, Setup(Options{Console: &console, LogFile: filepath.Join(blocker, "run.log")}))
	assert.Contains(t, console.String(), "Logging to the console only")
}

func TestTimed(t *testing.T) {
	restoreLogger(t)
	var buf bytes.Buffer
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	done := Timed(logger, "materialize")
	assert.Contains(t, buf.String(), "Started")

	done()
	assert.Contains(t, buf.String(), "Finished")
	assert.Contains(t, buf.String(), `"operation":"materialize"`)
	assert.Contains(t, buf.String(), `"elapsed"`)
}

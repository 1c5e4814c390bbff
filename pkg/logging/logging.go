// Package logging configures zerolog for pyproject. Records go to stderr
// through a console writer and, in JSON, to pyproject.log in the state
// directory so a failed run can be inspected afterwards.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/arthur-debert/pyproject/pkg/errors"
	"github.com/arthur-debert/pyproject/pkg/paths"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Options configure Setup
type Options struct {
	// Verbosity is the -v count: 0 warn, 1 info, 2 debug, 3+ trace
	Verbosity int
	// Console receives human readable records; nil means stderr
	Console io.Writer
	// LogFile receives JSON records; empty means the state directory
	// log file, "-" disables it
	LogFile string
}

// SetupLogger configures the global logger for a -v count
func SetupLogger(verbosity int) {
	Setup(Options{Verbosity: verbosity})
}

// Setup configures the global logger and returns the log file in use,
// empty when records only reach the console.
func Setup(opts Options) string {
	zerolog.SetGlobalLevel(Level(opts.Verbosity))

	console := opts.Console
	if console == nil {
		console = os.Stderr
	}
	writers := []io.Writer{zerolog.ConsoleWriter{
		Out:        console,
		TimeFormat: time.Kitchen,
		NoColor:    os.Getenv("NO_COLOR") != "",
	}}

	logFile := opts.LogFile
	var fileErr error
	if logFile == "" {
		logFile, fileErr = defaultLogFile()
	}
	if logFile == "-" {
		logFile = ""
	}
	if logFile != "" && fileErr == nil {
		var f *os.File
		if f, fileErr = openLogFile(logFile); fileErr == nil {
			writers = append(writers, f)
		}
	}

	ctx := zerolog.New(io.MultiWriter(writers...)).With().Timestamp()
	if opts.Verbosity >= 2 {
		ctx = ctx.Caller()
	}
	log.Logger = ctx.Logger()

	if fileErr != nil {
		log.Warn().Err(fileErr).Msg("Logging to the console only")
		return ""
	}
	log.Debug().Int("verbosity", opts.Verbosity).Str("file", logFile).Msg("Logger ready")
	return logFile
}

// Level maps a -v count to a zerolog level
func Level(verbosity int) zerolog.Level {
	switch {
	case verbosity <= 0:
		return zerolog.WarnLevel
	case verbosity == 1:
		return zerolog.InfoLevel
	case verbosity == 2:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}

// GetLogger returns the global logger tagged with a component name
func GetLogger(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

func defaultLogFile() (string, error) {
	p, err := paths.New()
	if err != nil {
		return "", err
	}
	return p.LogFilePath(), nil
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrDirCreate, "cannot create log directory %s", filepath.Dir(path))
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot open log file %s", path)
	}
	return f, nil
}

// Timed logs operation at debug level and returns a func that logs its
// duration. Use with defer.
func Timed(logger zerolog.Logger, operation string) func() {
	start := time.Now()
	logger.Debug().Str("operation", operation).Msg("Started")
	return func() {
		logger.Debug().
			Str("operation", operation).
			Dur("elapsed", time.Since(start)).
			Msg("Finished")
	}
}

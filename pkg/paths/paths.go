// Package paths provides centralized path handling for pyproject.
// It implements XDG Base Directory specification compliance and
// provides a consistent API for the locations pyproject reads and writes.
package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/pyproject/pkg/errors"
)

// Environment variable names
const (
	// EnvConfigDir overrides the XDG config directory for pyproject
	EnvConfigDir = "PYPROJECT_CONFIG_DIR"

	// EnvDataDir overrides the XDG data directory for pyproject
	EnvDataDir = "PYPROJECT_DATA_DIR"

	// EnvStateDir overrides the XDG state directory for pyproject
	EnvStateDir = "PYPROJECT_STATE_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Default directories and files
const (
	// AppDirName is the directory name used under each XDG base directory
	AppDirName = "pyproject"

	// ConfigFileName is the user configuration file
	ConfigFileName = "config.toml"

	// TemplatesDir is the data subdirectory holding user template assets
	TemplatesDir = "templates"

	// LogFileName is the name of the log file
	LogFileName = "pyproject.log"
)

// Paths provides centralized path management for pyproject
type Paths interface {
	ConfigDir() string
	DataDir() string
	StateDir() string
	ConfigFilePath() string
	TemplatesDir() string
	LogFilePath() string
}

type paths struct {
	xdgConfig string
	xdgData   string
	xdgState  string
}

// New creates a new Paths instance, honouring the PYPROJECT_*_DIR overrides
// before falling back to the XDG base directories.
func New() (Paths, error) {
	p := &paths{}

	if dir := os.Getenv(EnvConfigDir); dir != "" {
		p.xdgConfig = expandHome(dir)
	} else {
		p.xdgConfig = filepath.Join(xdg.ConfigHome, AppDirName)
	}

	if dir := os.Getenv(EnvDataDir); dir != "" {
		p.xdgData = expandHome(dir)
	} else {
		p.xdgData = filepath.Join(xdg.DataHome, AppDirName)
	}

	if dir := os.Getenv(EnvStateDir); dir != "" {
		p.xdgState = expandHome(dir)
	} else {
		p.xdgState = filepath.Join(xdg.StateHome, AppDirName)
	}

	for _, dir := range []*string{&p.xdgConfig, &p.xdgData, &p.xdgState} {
		abs, err := filepath.Abs(*dir)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path for %s", *dir)
		}
		*dir = abs
	}

	return p, nil
}

// ConfigDir returns the pyproject config directory
func (p *paths) ConfigDir() string {
	return p.xdgConfig
}

// DataDir returns the pyproject data directory
func (p *paths) DataDir() string {
	return p.xdgData
}

// StateDir returns the pyproject state directory
func (p *paths) StateDir() string {
	return p.xdgState
}

// ConfigFilePath returns the user configuration file path
func (p *paths) ConfigFilePath() string {
	return filepath.Join(p.xdgConfig, ConfigFileName)
}

// TemplatesDir returns the directory holding user template assets
func (p *paths) TemplatesDir() string {
	return filepath.Join(p.xdgData, TemplatesDir)
}

// LogFilePath returns the path to the log file
func (p *paths) LogFilePath() string {
	return filepath.Join(p.xdgState, LogFileName)
}

// NormalizePath expands home, makes the path absolute and cleans it
func NormalizePath(path string) (string, error) {
	if path == "" {
		return "", errors.New(errors.ErrInvalidInput, "empty path")
	}

	abs, err := filepath.Abs(expandHome(path))
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path")
	}

	return filepath.Clean(abs), nil
}

// ExpandHome expands a leading ~ in paths
func ExpandHome(path string) string {
	return expandHome(path)
}

func expandHome(path string) string {
	if path == "" {
		return path
	}

	if path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			homeDir = os.Getenv(EnvHome)
			if homeDir == "" {
				return path
			}
		}

		if len(path) == 1 {
			return homeDir
		}

		if path[1] == '/' || path[1] == filepath.Separator {
			return filepath.Join(homeDir, path[2:])
		}

		// ~something (not the user's home)
		return path
	}

	return path
}

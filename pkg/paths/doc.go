// Package paths provides centralized path handling for pyproject.
//
// # Environment Variables
//
// The package respects the following environment variables:
//
//   - PYPROJECT_CONFIG_DIR: Override config directory (default: $XDG_CONFIG_HOME/pyproject)
//   - PYPROJECT_DATA_DIR: Override data directory (default: $XDG_DATA_HOME/pyproject)
//   - PYPROJECT_STATE_DIR: Override state directory (default: $XDG_STATE_HOME/pyproject)
//
// User template assets live in <data>/templates and the log file in
// <state>/pyproject.log.
package paths

// Package tools wraps the external programs pyproject drives: uv for
// environments, workspaces, interpreters and scripts, and git for
// repository setup. Every call has a fixed argument shape and goes
// through a runner.CommandRunner.
package tools

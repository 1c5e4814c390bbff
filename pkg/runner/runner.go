// Package runner runs external tools with captured output.
//
// A process that starts and exits non-zero is not an error at this level:
// Run returns its Result with ExitCode set. Use Check to turn a failed
// Result into a SUBPROCESS error.
package runner

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/arthur-debert/pyproject/pkg/errors"
	"github.com/arthur-debert/pyproject/pkg/logging"
)

// Invocation is one command line with an optional working directory
type Invocation struct {
	Name string   `json:"name" yaml:"name"`
	Args []string `json:"args" yaml:"args"`
	Dir  string   `json:"dir,omitempty" yaml:"dir,omitempty"`
}

// Command builds an invocation
func Command(name string, args ...string) Invocation {
	return Invocation{Name: name, Args: args}
}

// In returns a copy of the invocation that runs in dir
func (i Invocation) In(dir string) Invocation {
	i.Dir = dir
	return i
}

// String renders the invocation as a shell-like command line
func (i Invocation) String() string {
	parts := make([]string, 0, len(i.Args)+1)
	parts = append(parts, quote(i.Name))
	for _, a := range i.Args {
		parts = append(parts, quote(a))
	}
	return strings.Join(parts, " ")
}

func quote(s string) string {
	if s == "" {
		return "''"
	}
	if !strings.ContainsAny(s, " \t\n'\"\\$`*?<>|&;()") {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// Result is the captured outcome of an invocation
type Result struct {
	Invocation Invocation `json:"invocation" yaml:"invocation"`
	Stdout     string     `json:"stdout" yaml:"stdout"`
	Stderr     string     `json:"stderr" yaml:"stderr"`
	ExitCode   int        `json:"exit_code" yaml:"exit_code"`
}

// Output joins stdout and stderr for display
func (r Result) Output() string {
	out := strings.TrimRight(r.Stdout, "\n")
	errOut := strings.TrimRight(r.Stderr, "\n")
	switch {
	case out == "":
		return errOut
	case errOut == "":
		return out
	default:
		return out + "\n" + errOut
	}
}

// CommandRunner runs invocations. Implementations return an error only
// when the process could not run at all (missing binary, canceled context).
type CommandRunner interface {
	Run(ctx context.Context, inv Invocation) (Result, error)
}

// RealRunner runs invocations with os/exec
type RealRunner struct{}

// NewRealRunner creates a RealRunner
func NewRealRunner() *RealRunner {
	return &RealRunner{}
}

// Run executes the invocation and captures stdout and stderr
func (r *RealRunner) Run(ctx context.Context, inv Invocation) (Result, error) {
	logger := logging.GetLogger("runner")

	cmd := exec.CommandContext(ctx, inv.Name, inv.Args...)
	if inv.Dir != "" {
		cmd.Dir = inv.Dir
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logger.Debug().Str("command", inv.String()).Str("dir", inv.Dir).Msg("Running command")
	err := cmd.Run()

	result := Result{
		Invocation: inv,
		Stdout:     stdout.String(),
		Stderr:     stderr.String(),
	}

	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			result.ExitCode = exitErr.ExitCode()
			logger.Debug().Str("command", inv.String()).Int("exit_code", result.ExitCode).Msg("Command exited non-zero")
			return result, nil
		}
		return result, err
	}

	return result, nil
}

// Check converts a Run outcome into an error: a failure to start, or a
// non-zero exit whose message is the captured stderr.
func Check(result Result, err error) (Result, error) {
	if err != nil {
		return result, errors.Wrapf(err, errors.ErrSubprocess, "cannot run %s", result.Invocation.Name).
			WithDetail("command", result.Invocation.String()).
			WithDetail("exit_code", -1)
	}
	if result.ExitCode == 0 {
		return result, nil
	}

	message := strings.TrimSpace(result.Stderr)
	if message == "" {
		message = result.Invocation.String() + " failed"
	}
	return result, errors.New(errors.ErrSubprocess, message).WithDetails(map[string]interface{}{
		"command":   result.Invocation.String(),
		"exit_code": result.ExitCode,
		"stdout":    result.Stdout,
		"stderr":    result.Stderr,
	})
}

// RunChecked runs inv and applies Check
func RunChecked(ctx context.Context, r CommandRunner, inv Invocation) (Result, error) {
	result, err := r.Run(ctx, inv)
	result.Invocation = inv
	return Check(result, err)
}

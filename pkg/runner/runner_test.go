// pkg/runner/runner_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: sh
// PURPOSE: Test output capture, exit codes and SUBPROCESS error mapping

package runner

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/arthur-debert/pyproject/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRealRunnerExitCodes(t *testing.T) {
	tests := []struct {
		name   string
		script string
		code   int
	}{
		{"exit 0", "exit 0", 0},
		{"exit 1", "exit 1", 1},
		{"exit 42", "exit 42", 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := NewRealRunner().Run(context.Background(), Command("sh", "-c", tt.script))
			require.NoError(t, err)
			assert.Equal(t, tt.code, res.ExitCode)
		})
	}
}

func TestRealRunnerCapturesOutput(t *testing.T) {
	res, err := NewRealRunner().Run(context.Background(), Command("sh", "-c", "echo out; echo err >&2"))
	require.NoError(t, err)
	assert.Equal(t, "out\n", res.Stdout)
	assert.Equal(t, "err\n", res.Stderr)
	assert.Equal(t, "out\nerr", res.Output())
}

func TestRealRunnerWorkingDir(t *testing.T) {
	dir := t.TempDir()
	res, err := NewRealRunner().Run(context.Background(), Command("sh", "-c", "pwd -P").In(dir))
	require.NoError(t, err)
	assert.Contains(t, res.Stdout, "/")
	assert.Equal(t, dir, res.Invocation.Dir)
}

func TestRealRunnerMissingBinary(t *testing.T) {
	_, err := NewRealRunner().Run(context.Background(), Command("pyproject-test-no-such-binary"))
	require.Error(t, err)
}

func TestCheck(t *testing.T) {
	inv := Command("uv", "sync", "--directory", "/tmp/my project")

	_, err := Check(Result{Invocation: inv}, nil)
	require.NoError(t, err)

	_, err = Check(Result{Invocation: inv, Stdout: "partial", Stderr: "error: no network\n", ExitCode: 2}, nil)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrSubprocess))
	assert.Contains(t, err.Error(), "error: no network")
	assert.Equal(t, "partial", errors.GetDetailString(err, "stdout"))
	assert.Equal(t, "error: no network\n", errors.GetDetailString(err, "stderr"))
	assert.Equal(t, 2, errors.GetErrorDetails(err)["exit_code"])
	assert.Equal(t, "uv sync --directory '/tmp/my project'", errors.GetDetailString(err, "command"))

	_, err = Check(Result{Invocation: inv, ExitCode: 1}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed")

	_, err = Check(Result{Invocation: inv}, stderrors.New("exec: not found"))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrSubprocess))
}

func TestRunCheckedWithFake(t *testing.T) {
	fake := NewFake(func(inv Invocation) (Result, error) {
		if inv.Args[0] == "bad" {
			return Result{ExitCode: 3, Stderr: "boom"}, nil
		}
		return Result{Stdout: "ok"}, nil
	})

	res, err := RunChecked(context.Background(), fake, Command("tool", "good"))
	require.NoError(t, err)
	assert.Equal(t, "ok", res.Stdout)

	_, err = RunChecked(context.Background(), fake, Command("tool", "bad"))
	require.Error(t, err)
	assert.Equal(t, "boom", errors.GetErrorDetails(err)["stderr"])

	assert.Equal(t, []string{"tool good", "tool bad"}, fake.Commands())
}

func TestInvocationString(t *testing.T) {
	assert.Equal(t, "git init /tmp/demo", Command("git", "init", "/tmp/demo").String())
	assert.Equal(t, "uv add 'pandas>=2'", Command("uv", "add", "pandas>=2").String())
	assert.Equal(t, "echo ''", Command("echo", "").String())
	assert.Equal(t, `echo 'it'\''s'`, Command("echo", "it's").String())
}

func TestResultOutput(t *testing.T) {
	assert.Equal(t, "", Result{}.Output())
	assert.Equal(t, "a", Result{Stdout: "a\n"}.Output())
	assert.Equal(t, "b", Result{Stderr: "b\n"}.Output())
}

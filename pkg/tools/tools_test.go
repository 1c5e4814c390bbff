// pkg/tools/tools_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: runner.Fake
// PURPOSE: Test uv and git argument shapes and output parsing

package tools

import (
	"context"
	"testing"

	"github.com/arthur-debert/pyproject/pkg/errors"
	"github.com/arthur-debert/pyproject/pkg/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pythonListJSON = `[
  {"key": "cpython-3.12.8-linux-x86_64-gnu", "version": "3.12.8", "implementation": "cpython", "path": "/usr/bin/python3.12"},
  {"key": "cpython-3.13.2-linux-x86_64-gnu", "version": "3.13.2", "implementation": "cpython", "path": null},
  {"key": "pypy-3.10.14-linux-x86_64-gnu", "version": "3.10.14", "implementation": "pypy", "path": null},
  {"key": "cpython-3.9.21-linux-x86_64-gnu", "version": "3.9.21", "implementation": "cpython", "path": "/usr/bin/python3.9"},
  {"key": "cpython-3.14.0a4-linux-x86_64-gnu", "version": "3.14.0a4", "implementation": "cpython", "path": null},
  {"key": "cpython-3.12.8-linux-x86_64-musl", "version": "3.12.8", "implementation": "cpython", "path": null}
]`

func TestUVInvocations(t *testing.T) {
	fake := runner.NewFake(nil)
	uv := NewUV("", fake)
	ctx := context.Background()

	_, err := uv.Sync(ctx, "/work/demo")
	require.NoError(t, err)
	_, err = uv.SyncMember(ctx, "/work", "demo")
	require.NoError(t, err)
	_, err = uv.InitScript(ctx, "/work/tool.py", "3.13.2")
	require.NoError(t, err)
	_, err = uv.InitScript(ctx, "/work/plain.py", "")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"uv sync --directory /work/demo",
		"uv sync --directory /work --package demo",
		"uv init --script --python 3.13.2 /work/tool.py",
		"uv init --script /work/plain.py",
	}, fake.Commands())
}

func TestUVCustomBinary(t *testing.T) {
	uv := NewUV("/opt/uv", runner.NewFake(nil))
	assert.Equal(t, "/opt/uv sync --directory x", uv.SyncInvocation("x").String())
}

func TestUVSyncFailure(t *testing.T) {
	fake := runner.NewFake(func(runner.Invocation) (runner.Result, error) {
		return runner.Result{ExitCode: 2, Stderr: "error: No interpreter found"}, nil
	})

	_, err := NewUV("uv", fake).Sync(context.Background(), "/work/demo")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrSubprocess))
	assert.Contains(t, err.Error(), "No interpreter found")
}

func TestPythons(t *testing.T) {
	fake := runner.NewFake(func(runner.Invocation) (runner.Result, error) {
		return runner.Result{Stdout: pythonListJSON}, nil
	})

	pythons, err := NewUV("uv", fake).Pythons(context.Background())
	require.NoError(t, err)
	require.Len(t, pythons, 6)

	assert.Equal(t, []string{"uv python list --output-format json"}, fake.Commands())

	assert.Equal(t, "3.14.0a4", pythons[0].Version)
	assert.Equal(t, "3.13.2", pythons[1].Version)
	assert.False(t, pythons[1].Installed())
	assert.Equal(t, "3.12.8", pythons[2].Version)
	assert.True(t, pythons[2].Installed())
	assert.Equal(t, "/usr/bin/python3.12", pythons[2].Path)
	assert.Equal(t, "3.9.21", pythons[5].Version)
}

func TestPythonsBadOutput(t *testing.T) {
	fake := runner.NewFake(func(runner.Invocation) (runner.Result, error) {
		return runner.Result{Stdout: "not json"}, nil
	})
	_, err := NewUV("uv", fake).Pythons(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrSubprocess))
}

func TestSortPythonsUnparsableLast(t *testing.T) {
	pythons := []Python{{Version: "weird"}, {Version: "3.11.1"}, {Version: "3.12.0"}}
	SortPythons(pythons)
	assert.Equal(t, []string{"3.12.0", "3.11.1", "weird"},
		[]string{pythons[0].Version, pythons[1].Version, pythons[2].Version})
}

func TestVersions(t *testing.T) {
	pythons := []Python{
		{Version: "3.13.2", Implementation: "cpython"},
		{Version: "3.12.8", Implementation: "cpython"},
		{Version: "3.12.8", Implementation: "cpython"},
		{Version: "3.10.14", Implementation: "pypy"},
	}

	assert.Equal(t, []string{"3.12.8", "3.13.2"}, Versions(pythons, "3.12.8"))
	assert.Equal(t, []string{"3.11.0", "3.13.2", "3.12.8"}, Versions(pythons, "3.11.0"))
	assert.Equal(t, []string{"3.13.2", "3.12.8"}, Versions(pythons, ""))
}

func TestGitInit(t *testing.T) {
	fake := runner.NewFake(nil)
	res, err := NewGit("", fake).Init(context.Background(), "/work/demo")
	require.NoError(t, err)
	assert.Equal(t, "git init /work/demo", res.Invocation.String())
	assert.Equal(t, []string{"git init /work/demo"}, fake.Commands())
}

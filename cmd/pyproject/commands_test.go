package pyproject

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/pyproject/pkg/errors"
	"github.com/arthur-debert/pyproject/pkg/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pythonListJSON = `[
  {"key": "cpython-3.12.8-linux-x86_64-gnu", "version": "3.12.8", "implementation": "cpython", "path": "/usr/bin/python3.12"},
  {"key": "cpython-3.13.2-linux-x86_64-gnu", "version": "3.13.2", "implementation": "cpython", "path": null}
]`

// execute runs the CLI against a fake runner with isolated XDG dirs
func execute(t *testing.T, fake *runner.Fake, args ...string) (string, error) {
	t.Helper()

	t.Setenv("PYPROJECT_CONFIG_DIR", t.TempDir())
	t.Setenv("PYPROJECT_DATA_DIR", t.TempDir())
	t.Setenv("PYPROJECT_STATE_DIR", t.TempDir())

	if fake == nil {
		fake = runner.NewFake(nil)
	}
	cmd := newRootCmd(fake)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestPlanText(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, nil, "plan", "demo", "-l", dir, "--format", "text")
	require.NoError(t, err)

	assert.Contains(t, out, "Plan for demo (dry run)")
	assert.Contains(t, out, "pyproject.toml")
	assert.Contains(t, out, "main.py")
	assert.Contains(t, out, "pytest")

	_, statErr := os.Stat(filepath.Join(dir, "demo"))
	assert.True(t, os.IsNotExist(statErr), "plan must not create the project")
}

func TestPlanJSON(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, nil, "plan", "demo", "-l", dir, "--format", "json", "--no-sync", "--kind", "lib")
	require.NoError(t, err)

	var view struct {
		DryRun  bool `json:"dry_run"`
		Project struct {
			Name string `json:"name"`
			Kind string `json:"kind"`
		} `json:"project"`
		Steps []struct {
			Kind   string `json:"kind"`
			Status string `json:"status"`
		} `json:"steps"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &view))

	assert.True(t, view.DryRun)
	assert.Equal(t, "demo", view.Project.Name)
	assert.Equal(t, "lib", view.Project.Kind)

	var sync string
	for _, s := range view.Steps {
		if s.Kind == "sync" {
			sync = s.Status
		}
	}
	assert.Equal(t, "skipped", sync)
}

func TestPlanContents(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, nil, "plan", "demo", "-l", dir, "--format", "text", "--contents")
	require.NoError(t, err)
	assert.Contains(t, out, "[project]")
	assert.Regexp(t, `name = ['"]demo['"]`, out)
}

func TestNewCreatesProject(t *testing.T) {
	dir := t.TempDir()
	fake := runner.NewFake(nil)

	out, err := execute(t, fake, "new", "demo", "-l", dir, "--format", "text")
	require.NoError(t, err)

	target := filepath.Join(dir, "demo")
	for _, name := range []string{"pyproject.toml", ".python-version", "main.py", "README.md"} {
		assert.FileExists(t, filepath.Join(target, name))
	}
	assert.Contains(t, out, "Creating demo")
	assert.Contains(t, out, "Created")

	commands := fake.Commands()
	require.Len(t, commands, 1)
	assert.Equal(t, "uv sync --directory "+target, commands[0])
}

func TestNewWithFlags(t *testing.T) {
	dir := t.TempDir()
	fake := runner.NewFake(nil)

	_, err := execute(t, fake, "new", "demo", "-l", dir, "--format", "text",
		"--no-readme", "--no-sync", "--git", "--with", "rich", "--without", "ruff")
	require.NoError(t, err)

	target := filepath.Join(dir, "demo")
	assert.NoFileExists(t, filepath.Join(target, "README.md"))
	assert.FileExists(t, filepath.Join(target, ".gitignore"))

	manifest, err := os.ReadFile(filepath.Join(target, "pyproject.toml"))
	require.NoError(t, err)
	assert.Regexp(t, `['"]rich['"]`, string(manifest))
	assert.NotContains(t, string(manifest), "ruff")

	require.Len(t, fake.Commands(), 1)
	assert.True(t, strings.HasPrefix(fake.Commands()[0], "git init"))
}

func TestNewRejectsExistingDirectory(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "demo")
	require.NoError(t, os.MkdirAll(target, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(target, "keep.txt"), []byte("x"), 0644))

	fake := runner.NewFake(nil)
	_, err := execute(t, fake, "new", "demo", "-l", dir, "--format", "text")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrPathExists))
	assert.Empty(t, fake.Commands())
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code errors.ErrorCode
	}{
		{name: "missing name", args: []string{"new"}, code: errors.ErrInvalidInput},
		{name: "bad name", args: []string{"new", "bad name"}, code: errors.ErrInvalidInput},
		{name: "unknown profile", args: []string{"new", "demo", "-p", "nope"}, code: errors.ErrProfileNotFound},
		{name: "bad kind", args: []string{"new", "demo", "-k", "plugin"}, code: errors.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append(tt.args, "-l", t.TempDir(), "--format", "text")
			_, err := execute(t, nil, args...)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, tt.code), "got %v", err)
		})
	}
}

func TestScript(t *testing.T) {
	dir := t.TempDir()
	fake := runner.NewFake(nil)

	out, err := execute(t, fake, "script", filepath.Join(dir, "tool"), "--format", "text", "--python", "3.12")
	require.NoError(t, err)

	target := filepath.Join(dir, "tool.py")
	assert.Contains(t, out, "Created script "+target)
	require.Len(t, fake.Commands(), 1)
	assert.Equal(t, "uv init --script --python 3.12 "+target, fake.Commands()[0])
}

func TestProfiles(t *testing.T) {
	out, err := execute(t, nil, "profiles", "list", "--format", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "Basic")
	assert.Contains(t, out, "Data Science")

	out, err = execute(t, nil, "profiles", "show", "basic", "--format", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "Basic")
	assert.Contains(t, out, "[x] pytest")
	assert.Contains(t, out, "[ ] mypy")
}

func TestProfilesExport(t *testing.T) {
	out, err := execute(t, nil, "profiles", "export")
	require.NoError(t, err)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Contains(t, doc, "Basic")
}

func TestSchema(t *testing.T) {
	out, err := execute(t, nil, "schema")
	require.NoError(t, err)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Contains(t, doc, "$schema")
}

func TestPythons(t *testing.T) {
	fake := runner.NewFake(func(inv runner.Invocation) (runner.Result, error) {
		return runner.Result{Stdout: pythonListJSON}, nil
	})

	out, err := execute(t, fake, "pythons", "--format", "text")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "* 3.13.2"), lines[0])
	assert.Contains(t, lines[0], "(available for download)")

	out, err = execute(t, fake, "pythons", "--installed", "--format", "text")
	require.NoError(t, err)
	assert.NotContains(t, out, "3.13.2")
	assert.Contains(t, out, "/usr/bin/python3.12")
}

func TestConfig(t *testing.T) {
	out, err := execute(t, nil, "config", "defaults")
	require.NoError(t, err)
	assert.Contains(t, out, "[defaults]")

	custom := filepath.Join(t.TempDir(), "custom.toml")
	out, err = execute(t, nil, "config", "path", "--config", custom)
	require.NoError(t, err)
	assert.Equal(t, custom, strings.TrimSpace(out))
}

func TestHelpTopics(t *testing.T) {
	out, err := execute(t, nil, "help", "topics")
	require.NoError(t, err)
	assert.Contains(t, out, "Available help topics:")
	assert.Contains(t, out, "catalog")
	assert.Contains(t, out, "workspaces")

	out, err = execute(t, nil, "help", "catalog")
	require.NoError(t, err)
	assert.Contains(t, out, "Profile catalog")
}

func TestVersion(t *testing.T) {
	out, err := execute(t, nil, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "pyproject dev")
}

func TestCompletion(t *testing.T) {
	out, err := execute(t, nil, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "pyproject")

	_, err = execute(t, nil, "completion", "tcsh")
	assert.Error(t, err)
}

// run executes the CLI the way main does, returning stdout, stderr and
// the exit code
func runCLI(t *testing.T, fake *runner.Fake, args ...string) (string, string, int) {
	t.Helper()

	t.Setenv("PYPROJECT_CONFIG_DIR", t.TempDir())
	t.Setenv("PYPROJECT_DATA_DIR", t.TempDir())
	t.Setenv("PYPROJECT_STATE_DIR", t.TempDir())

	if fake == nil {
		fake = runner.NewFake(nil)
	}
	opts := &rootOptions{runner: fake}
	cmd := buildRootCmd(opts)
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	code := run(cmd, opts)
	return stdout.String(), stderr.String(), code
}

func TestErrorRenderedInSelectedFormat(t *testing.T) {
	_, stderr, code := runCLI(t, nil, "new", "bad name", "-l", t.TempDir(), "--format", "json")
	assert.Equal(t, 1, code)

	var obj struct {
		Error string `json:"error"`
		Code  string `json:"code"`
	}
	require.NoError(t, json.Unmarshal([]byte(stderr), &obj), stderr)
	assert.Equal(t, string(errors.ErrInvalidInput), obj.Code)

	_, stderr, code = runCLI(t, nil, "new", "bad name", "-l", t.TempDir(), "--format", "yaml")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "code: INVALID_INPUT")

	_, stderr, code = runCLI(t, nil, "new", "bad name", "-l", t.TempDir(), "--format", "text")
	assert.Equal(t, 1, code)
	assert.True(t, strings.HasPrefix(stderr, "Error: [INVALID_INPUT]"), stderr)
}

func TestNewFailureShowsCompletedStepsAndOutput(t *testing.T) {
	dir := t.TempDir()
	fake := runner.NewFake(func(inv runner.Invocation) (runner.Result, error) {
		if inv.Name == "uv" {
			return runner.Result{ExitCode: 1, Stdout: "Resolved 3 packages", Stderr: "error: no solution\n"}, nil
		}
		return runner.Result{Stdout: "Initialized empty Git repository"}, nil
	})

	stdout, stderr, code := runCLI(t, fake, "new", "demo", "-l", dir, "--format", "text", "--git")
	assert.Equal(t, 1, code)

	assert.Contains(t, stdout, "Failed creating demo")
	assert.Regexp(t, `git\s+: git init .*: ran`, stdout)
	assert.Regexp(t, `sync\s+: uv sync .*: failed to sync`, stdout)
	assert.Contains(t, stdout, "Initialized empty Git repository")

	assert.Contains(t, stderr, "Error: [SUBPROCESS] error: no solution")
	assert.Contains(t, stderr, "Resolved 3 packages")
	assert.Contains(t, stderr, "warning: partial project left in place")
	assert.FileExists(t, filepath.Join(dir, "demo", "pyproject.toml"))
}

func TestNewWithoutTemplate(t *testing.T) {
	dir := t.TempDir()

	_, err := execute(t, nil, "new", "gui", "-l", dir, "-p", "PySide6", "--format", "text",
		"--no-sync", "--without-template", "envrc")
	require.NoError(t, err)

	target := filepath.Join(dir, "gui")
	assert.FileExists(t, filepath.Join(target, "main.py"))
	assert.FileExists(t, filepath.Join(target, "form.ui"))
	assert.NoFileExists(t, filepath.Join(target, ".envrc"))

	_, err = execute(t, nil, "plan", "gui", "-l", dir, "-p", "PySide6", "--without-template", "nope")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestWithoutTemplateCompletion(t *testing.T) {
	out, err := execute(t, nil, "__complete", "new", "demo", "-p", "PySide6", "--without-template", "")
	require.NoError(t, err)
	assert.Contains(t, out, "pyside_starter.py\tStarter window and empty form")
	assert.Contains(t, out, "envrc\tdirenv activation script")
}

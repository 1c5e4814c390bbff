// pkg/ui/display/display_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test view building and line layout with a plain painter

package display

import (
	"bytes"
	"strings"
	"testing"

	"github.com/arthur-debert/pyproject/pkg/catalog"
	"github.com/arthur-debert/pyproject/pkg/options"
	"github.com/arthur-debert/pyproject/pkg/project"
	"github.com/arthur-debert/pyproject/pkg/runner"
	"github.com/arthur-debert/pyproject/pkg/style"
	"github.com/arthur-debert/pyproject/pkg/tools"
	"github.com/arthur-debert/pyproject/pkg/types"
	"github.com/arthur-debert/pyproject/pkg/workspace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type plain struct{}

func (plain) Title(s string) string         { return s }
func (plain) Profile(s string) string       { return s }
func (plain) Path(s string) string          { return s }
func (plain) Muted(s string) string         { return s }
func (plain) Warning(s string) string       { return s }
func (plain) Description(l []string) string { return strings.Join(l, "\n") }
func (plain) Step(s style.Step) string {
	return string(s.Kind) + " " + s.Target + " " + style.StepMessage(s)
}
func (plain) Package(o options.Option) string {
	if o.Enabled {
		return "[x] " + o.Label()
	}
	return "[ ] " + o.Label()
}

func TestGrid(t *testing.T) {
	opts := []options.Option{
		{Name: "numpy", Enabled: true},
		{Name: "pandas", Version: ">=2", Enabled: true},
		{Name: "jupyterlab"},
		{Name: "rich", Enabled: true},
		{Name: "polars"},
	}

	out := Grid(plain{}, opts, 2)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "[x] numpy "))
	assert.Contains(t, lines[0], "[x] pandas>=2")
	assert.Contains(t, lines[1], "[ ] jupyterlab")
	assert.Equal(t, "[ ] polars", lines[2])

	// the second column starts at the same offset on every row
	assert.Equal(t, strings.Index(lines[0], "[x] pandas"), strings.Index(lines[1], "[x] rich"))

	assert.Equal(t, 5, strings.Count(Grid(plain{}, opts, 0), "\n"))
}

func TestProfileListAndDetail(t *testing.T) {
	c, err := catalog.Default()
	require.NoError(t, err)

	list := NewProfileList(c)
	require.Len(t, list.Profiles, c.Len())
	assert.Equal(t, "builtin", list.Source)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, plain{}, list))
	assert.Contains(t, buf.String(), "Data Science")
	assert.Contains(t, buf.String(), "catalog: builtin")

	p, err := c.Get("PySide6")
	require.NoError(t, err)
	detail := NewProfileDetail(p, options.FromProfile(p), 3)

	buf.Reset()
	require.NoError(t, Write(&buf, plain{}, detail))
	assert.Contains(t, buf.String(), "PySide6")
	assert.Contains(t, buf.String(), "Templates")
	assert.Contains(t, buf.String(), "no_main = true")
}

func TestResultViewWithWorkspace(t *testing.T) {
	sync := runner.Command("uv", "sync", "--directory", "/ws", "--package", "demo")
	plan := &project.Plan{
		Project: types.ResolvedProject{Path: "/ws/demo", Name: "demo"},
		Files: []project.PlannedFile{
			{Path: "/ws/demo/main.py", Mode: 0755, Origin: project.OriginGenerated},
		},
		Git: &project.GitStep{
			Init:      runner.Command("git", "init", "/ws/demo"),
			GitIgnore: project.PlannedFile{Path: "/ws/demo/.gitignore", Mode: 0644, Origin: project.OriginGenerated},
		},
		Workspace:      &workspace.Workspace{Root: "/ws", Manifest: "/ws/pyproject.toml"},
		RegisterMember: true,
		Sync:           &sync,
	}
	res := &project.Result{
		Plan:        plan,
		Invocations: []runner.Result{{Invocation: sync, Stderr: "Resolved 3 packages\n"}},
	}

	v := NewResultView(res)
	assert.False(t, v.DryRun)
	require.Len(t, v.Steps, 5)
	assert.Equal(t, style.StepWrite, v.Steps[0].Kind)
	assert.Equal(t, "main.py", v.Steps[0].Target)
	assert.Equal(t, style.StepGit, v.Steps[1].Kind)
	assert.Equal(t, ".gitignore", v.Steps[2].Target)
	assert.Equal(t, style.StepRegister, v.Steps[3].Kind)
	assert.Equal(t, style.StatusDone, v.Steps[3].Status)
	assert.Equal(t, "0755", v.Files[0].Mode)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, plain{}, v))
	assert.Contains(t, buf.String(), "Creating demo")
	assert.Contains(t, buf.String(), "register demo added to /ws/pyproject.toml")
	assert.Contains(t, buf.String(), "$ uv sync --directory /ws --package demo")
	assert.Contains(t, buf.String(), "Resolved 3 packages")
}

func TestFailedView(t *testing.T) {
	gitInit := runner.Command("git", "init", "/ws/demo")
	sync := runner.Command("uv", "sync", "--directory", "/ws", "--package", "demo")
	plan := &project.Plan{
		Project: types.ResolvedProject{Path: "/ws/demo", Name: "demo"},
		Files: []project.PlannedFile{
			{Path: "/ws/demo/pyproject.toml", Mode: 0644, Origin: project.OriginGenerated},
		},
		Git: &project.GitStep{
			Init:      gitInit,
			GitIgnore: project.PlannedFile{Path: "/ws/demo/.gitignore", Mode: 0644, Origin: project.OriginGenerated},
		},
		Workspace: &workspace.Workspace{Root: "/ws", Manifest: "/ws/pyproject.toml"},
		Sync:      &sync,
	}
	// pyproject.toml and git init ran, then writing .gitignore failed
	res := &project.Result{
		Plan:        plan,
		Invocations: []runner.Result{{Invocation: gitInit, Stdout: "Initialized empty Git repository\n"}},
		Completed:   2,
	}

	v := NewFailedView(res)
	assert.True(t, v.Failed)
	require.Len(t, v.Steps, 5)
	assert.Equal(t, style.StatusDone, v.Steps[0].Status)
	assert.Equal(t, style.StatusDone, v.Steps[1].Status)
	assert.Equal(t, style.StatusFailed, v.Steps[2].Status)
	assert.Equal(t, style.StatusSkipped, v.Steps[3].Status, "register stays skipped")
	assert.Equal(t, style.StatusNotRun, v.Steps[4].Status)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, plain{}, v))
	assert.Contains(t, buf.String(), "Failed creating demo")
	assert.Contains(t, buf.String(), "write .gitignore failed to write")
	assert.Contains(t, buf.String(), "sync uv sync --directory /ws --package demo not run")
	assert.Contains(t, buf.String(), "Initialized empty Git repository")
}

func TestCapturedOutput(t *testing.T) {
	res := runner.Result{
		Invocation: runner.Command("uv", "sync"),
		ExitCode:   1,
		Stdout:     "Resolved 3 packages\n",
		Stderr:     "error: no solution\n",
	}
	_, err := runner.Check(res, nil)
	require.Error(t, err)
	assert.Equal(t, "Resolved 3 packages", CapturedOutput(err))

	// stderr is shown when the message does not already carry it
	_, err = runner.Check(runner.Result{Invocation: runner.Command("uv"), ExitCode: 2, Stderr: "  \n"}, nil)
	require.Error(t, err)
	assert.Empty(t, CapturedOutput(err))

	assert.Empty(t, CapturedOutput(assert.AnError))
}

func TestPlanViewSkips(t *testing.T) {
	plan := &project.Plan{
		Project:   types.ResolvedProject{Path: "/ws/demo", Name: "demo"},
		Workspace: &workspace.Workspace{Root: "/ws", Manifest: "/ws/pyproject.toml"},
	}

	v := NewPlanView(plan, false)
	require.Len(t, v.Steps, 2)
	assert.Equal(t, style.StatusSkipped, v.Steps[0].Status)
	assert.Equal(t, style.StepSync, v.Steps[1].Kind)
	assert.Equal(t, style.StatusSkipped, v.Steps[1].Status)
}

func TestPythonsAndTemplates(t *testing.T) {
	pythons := NewPythonList([]tools.Python{
		{Version: "3.13.2", Implementation: "cpython", Path: "/usr/bin/python3.13"},
		{Version: "3.12.8", Implementation: "cpython"},
	}, "3.13.2")

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, plain{}, pythons))
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "* 3.13.2"))
	assert.Contains(t, lines[1], "available for download")

	buf.Reset()
	require.NoError(t, Write(&buf, plain{}, NewTemplateList(nil)))
	assert.Equal(t, "No template assets\n", buf.String())
}

func TestScriptView(t *testing.T) {
	v := NewScriptView(&project.ScriptResult{
		Path:       "/tmp/tool.py",
		Runnable:   true,
		Invocation: runner.Result{Stdout: "Initialized script at `tool.py`\n"},
	})

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, plain{}, v))
	assert.Contains(t, buf.String(), "Created script /tmp/tool.py (runnable)")
	assert.Contains(t, buf.String(), "Initialized script")
}

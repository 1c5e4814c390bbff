package tools

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/Masterminds/semver/v3"
	"github.com/arthur-debert/pyproject/pkg/errors"
	"github.com/arthur-debert/pyproject/pkg/logging"
	"github.com/arthur-debert/pyproject/pkg/manifest"
	"github.com/arthur-debert/pyproject/pkg/runner"
)

// UV drives the uv project manager
type UV struct {
	bin    string
	runner runner.CommandRunner
}

// NewUV creates a client for the uv executable at bin
func NewUV(bin string, r runner.CommandRunner) *UV {
	if bin == "" {
		bin = "uv"
	}
	return &UV{bin: bin, runner: r}
}

// SyncInvocation is `uv sync --directory <dir>`
func (u *UV) SyncInvocation(dir string) runner.Invocation {
	return runner.Command(u.bin, "sync", "--directory", dir)
}

// SyncMemberInvocation is `uv sync --directory <root> --package <name>`
func (u *UV) SyncMemberInvocation(root, name string) runner.Invocation {
	return runner.Command(u.bin, "sync", "--directory", root, "--package", name)
}

// InitScriptInvocation is `uv init --script --python <version> <path>`
func (u *UV) InitScriptInvocation(path, python string) runner.Invocation {
	args := []string{"init", "--script"}
	if python != "" {
		args = append(args, "--python", python)
	}
	return runner.Command(u.bin, append(args, path)...)
}

// Sync creates or updates the project environment in dir
func (u *UV) Sync(ctx context.Context, dir string) (runner.Result, error) {
	return runner.RunChecked(ctx, u.runner, u.SyncInvocation(dir))
}

// SyncMember syncs the workspace at root for the member package name
func (u *UV) SyncMember(ctx context.Context, root, name string) (runner.Result, error) {
	return runner.RunChecked(ctx, u.runner, u.SyncMemberInvocation(root, name))
}

// InitScript creates a single-file script with inline metadata
func (u *UV) InitScript(ctx context.Context, path, python string) (runner.Result, error) {
	return runner.RunChecked(ctx, u.runner, u.InitScriptInvocation(path, python))
}

// Python is one interpreter reported by `uv python list`
type Python struct {
	Key            string `json:"key" yaml:"key"`
	Version        string `json:"version" yaml:"version"`
	Implementation string `json:"implementation" yaml:"implementation"`
	// Path is empty for interpreters uv can download but has not installed
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
}

// Installed reports whether the interpreter exists on disk
func (p Python) Installed() bool {
	return p.Path != ""
}

type uvPython struct {
	Key            string  `json:"key"`
	Version        string  `json:"version"`
	Implementation string  `json:"implementation"`
	Path           *string `json:"path"`
}

// Pythons lists available interpreters, newest version first
func (u *UV) Pythons(ctx context.Context) ([]Python, error) {
	logger := logging.GetLogger("tools.uv")

	res, err := runner.RunChecked(ctx, u.runner, runner.Command(u.bin, "python", "list", "--output-format", "json"))
	if err != nil {
		return nil, err
	}

	var raw []uvPython
	if err := json.Unmarshal([]byte(res.Stdout), &raw); err != nil {
		return nil, errors.Wrap(err, errors.ErrSubprocess, "unexpected output from uv python list").
			WithDetail("stdout", res.Stdout)
	}

	pythons := make([]Python, 0, len(raw))
	for _, r := range raw {
		p := Python{Key: r.Key, Version: r.Version, Implementation: r.Implementation}
		if r.Path != nil {
			p.Path = *r.Path
		}
		pythons = append(pythons, p)
	}
	SortPythons(pythons)

	logger.Debug().Int("count", len(pythons)).Msg("Listed Python interpreters")
	return pythons, nil
}

// SortPythons orders interpreters newest first. Versions that do not parse
// sort last, in their original order.
func SortPythons(pythons []Python) {
	parsed := make(map[string]*semver.Version, len(pythons))
	for _, p := range pythons {
		if v, err := manifest.ParseVersion(p.Version); err == nil {
			parsed[p.Version] = v
		}
	}
	sort.SliceStable(pythons, func(i, j int) bool {
		vi, vj := parsed[pythons[i].Version], parsed[pythons[j].Version]
		switch {
		case vi == nil:
			return false
		case vj == nil:
			return true
		default:
			return vi.GreaterThan(vj)
		}
	})
}

// Versions returns the distinct CPython versions in the order given.
// preferred is moved to the front when present, and added when missing.
func Versions(pythons []Python, preferred string) []string {
	seen := map[string]bool{}
	var out []string
	if preferred != "" {
		out = append(out, preferred)
		seen[preferred] = true
	}
	for _, p := range pythons {
		if p.Implementation != "" && p.Implementation != "cpython" {
			continue
		}
		if !seen[p.Version] {
			seen[p.Version] = true
			out = append(out, p.Version)
		}
	}
	return out
}

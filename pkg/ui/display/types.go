// Package display holds the format-independent views commands produce and
// the writer that lays them out as lines. The text and terminal renderers
// supply a Painter; the JSON and YAML renderers encode the views directly.
package display

import (
	"github.com/arthur-debert/pyproject/pkg/options"
	"github.com/arthur-debert/pyproject/pkg/runner"
	"github.com/arthur-debert/pyproject/pkg/style"
	"github.com/arthur-debert/pyproject/pkg/templates"
	"github.com/arthur-debert/pyproject/pkg/tools"
	"github.com/arthur-debert/pyproject/pkg/types"
)

// ProfileSummary is one row of the profile listing
type ProfileSummary struct {
	Name        string   `json:"name" yaml:"name"`
	Packages    int      `json:"packages" yaml:"packages"`
	Enabled     int      `json:"enabled" yaml:"enabled"`
	Templates   int      `json:"templates" yaml:"templates"`
	Description []string `json:"description" yaml:"description"`
}

// ProfileList is the result of `profiles list`
type ProfileList struct {
	Source   string           `json:"source" yaml:"source"`
	Profiles []ProfileSummary `json:"profiles" yaml:"profiles"`
}

// ProfileDetail is the result of `profiles show`: the profile plus its
// toggle grid.
type ProfileDetail struct {
	Profile types.Profile    `json:"profile" yaml:"profile"`
	Options []options.Option `json:"options" yaml:"options"`
	Columns int              `json:"-" yaml:"-"`
}

// Step is one line of a plan or result
type Step struct {
	Kind   style.StepKind `json:"kind" yaml:"kind"`
	Target string         `json:"target" yaml:"target"`
	Status style.Status   `json:"status" yaml:"status"`
	Detail string         `json:"detail,omitempty" yaml:"detail,omitempty"`
}

// File is a planned file with its content as text
type File struct {
	Path    string `json:"path" yaml:"path"`
	Mode    string `json:"mode" yaml:"mode"`
	Origin  string `json:"origin" yaml:"origin"`
	Source  string `json:"source,omitempty" yaml:"source,omitempty"`
	Content string `json:"content,omitempty" yaml:"content,omitempty"`
}

// ProjectView is the outcome of `new` or `plan`
type ProjectView struct {
	DryRun bool `json:"dry_run" yaml:"dry_run"`
	// Failed marks a run that stopped with an error
	Failed  bool                  `json:"failed,omitempty" yaml:"failed,omitempty"`
	Project types.ResolvedProject `json:"project" yaml:"project"`
	Steps   []Step                `json:"steps" yaml:"steps"`
	Files   []File                `json:"files,omitempty" yaml:"files,omitempty"`
	// Outputs holds captured subprocess output after a real run
	Outputs []runner.Result `json:"outputs,omitempty" yaml:"outputs,omitempty"`
}

// TemplateList is the result of `templates`
type TemplateList struct {
	Assets []templates.Asset `json:"assets" yaml:"assets"`
}

// PythonList is the result of `pythons`
type PythonList struct {
	Preferred string         `json:"preferred" yaml:"preferred"`
	Pythons   []tools.Python `json:"pythons" yaml:"pythons"`
}

// ScriptView is the result of `script`
type ScriptView struct {
	Path     string `json:"path" yaml:"path"`
	Runnable bool   `json:"runnable" yaml:"runnable"`
	Output   string `json:"output,omitempty" yaml:"output,omitempty"`
}

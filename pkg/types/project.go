package types

import (
	"fmt"
	"strings"
)

// ProjectKind selects the project layout
type ProjectKind string

const (
	// KindApplication is a plain application with a main.py entry point
	KindApplication ProjectKind = "app"
	// KindPackage is an installable package exposing a console script
	KindPackage ProjectKind = "package"
	// KindLibrary is an installable library without entry points
	KindLibrary ProjectKind = "lib"
)

// ParseProjectKind accepts the short and long spellings of a kind
func ParseProjectKind(s string) (ProjectKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "app", "application":
		return KindApplication, nil
	case "package", "pkg":
		return KindPackage, nil
	case "lib", "library":
		return KindLibrary, nil
	default:
		return "", fmt.Errorf("unknown project kind %q (want app, package or lib)", s)
	}
}

// Packaged reports whether the kind needs a build system
func (k ProjectKind) Packaged() bool {
	return k == KindPackage || k == KindLibrary
}

// Requirement is a selected dependency with its optional constraint
type Requirement struct {
	Name    string `json:"name" yaml:"name"`
	Version string `json:"version,omitempty" yaml:"version,omitempty"`
}

// String renders the requirement as "name" or "name<constraint>"
func (r Requirement) String() string {
	return r.Name + r.Version
}

// CopyOperation copies one template asset into the project
type CopyOperation struct {
	// Source is the template asset id
	Source string `json:"source" yaml:"source"`
	// Destination is the absolute target path
	Destination string `json:"destination" yaml:"destination"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	// Activation is set for direnv-style shell activation scripts
	Activation bool `json:"activation,omitempty" yaml:"activation,omitempty"`
}

// ProjectFlags are the user toggles applied at materialization time
type ProjectFlags struct {
	MakeRunnable bool `json:"make_runnable" yaml:"make_runnable"`
	NoReadme     bool `json:"no_readme" yaml:"no_readme"`
	NoMain       bool `json:"no_main" yaml:"no_main"`
	UseGit       bool `json:"use_git" yaml:"use_git"`
	NoWorkspace  bool `json:"no_workspace" yaml:"no_workspace"`
	NoSync       bool `json:"no_sync" yaml:"no_sync"`
}

// ResolvedProject is the immutable description handed to the materializer
type ResolvedProject struct {
	Path          string          `json:"path" yaml:"path"`
	Name          string          `json:"name" yaml:"name"`
	PythonVersion string          `json:"python_version" yaml:"python_version"`
	Kind          ProjectKind     `json:"kind" yaml:"kind"`
	Profile       string          `json:"profile" yaml:"profile"`
	Description   []string        `json:"description,omitempty" yaml:"description,omitempty"`
	Requirements  []Requirement   `json:"requirements" yaml:"requirements"`
	ManifestExtra []string        `json:"manifest_extra,omitempty" yaml:"manifest_extra,omitempty"`
	Copies        []CopyOperation `json:"copies,omitempty" yaml:"copies,omitempty"`
	Flags         ProjectFlags    `json:"flags" yaml:"flags"`
}

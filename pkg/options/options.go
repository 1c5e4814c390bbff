// Package options turns a profile's package list into toggle state.
//
// A Model is derived fresh each time a profile is chosen. It changes only
// through Toggle and Set; the profile it came from is never touched.
package options

import (
	"github.com/arthur-debert/pyproject/pkg/errors"
	"github.com/arthur-debert/pyproject/pkg/types"
)

// Option is one toggle record, in profile order
type Option struct {
	Name    string `json:"name" yaml:"name"`
	Version string `json:"version,omitempty" yaml:"version,omitempty"`
	Enabled bool   `json:"enabled" yaml:"enabled"`
}

// Label is the text shown next to the toggle, e.g. "pandas>=2"
func (o Option) Label() string {
	return o.Name + o.Version
}

// Model holds the toggle state for one profile
type Model struct {
	profile string
	options []Option
}

// FromProfile creates a model with one toggle per package, each starting
// from the package's enabled flag.
func FromProfile(profile types.Profile) *Model {
	m := &Model{
		profile: profile.Name,
		options: make([]Option, len(profile.Packages)),
	}
	for i, pkg := range profile.Packages {
		m.options[i] = Option{Name: pkg.Name, Version: pkg.Version, Enabled: pkg.Enabled}
	}
	return m
}

// Profile returns the name of the profile the model was built from
func (m *Model) Profile() string {
	return m.profile
}

// Len returns the number of toggles
func (m *Model) Len() int {
	return len(m.options)
}

// Toggle flips the toggle at index
func (m *Model) Toggle(index int) error {
	if index < 0 || index >= len(m.options) {
		return errors.Newf(errors.ErrIndex, "option index %d out of range [0, %d)", index, len(m.options)).
			WithDetail("index", index)
	}
	m.options[index].Enabled = !m.options[index].Enabled
	return nil
}

// Set forces the toggle for the named package
func (m *Model) Set(name string, enabled bool) error {
	for i := range m.options {
		if m.options[i].Name == name {
			m.options[i].Enabled = enabled
			return nil
		}
	}
	return errors.Newf(errors.ErrNotFound, "profile %q has no package %q", m.profile, name).
		WithDetail("package", name)
}

// Options returns a snapshot of every toggle
func (m *Model) Options() []Option {
	return append([]Option(nil), m.options...)
}

// Selected returns the toggled-on packages in profile order
func (m *Model) Selected() []types.Requirement {
	selected := make([]types.Requirement, 0, len(m.options))
	for _, o := range m.options {
		if o.Enabled {
			selected = append(selected, types.Requirement{Name: o.Name, Version: o.Version})
		}
	}
	return selected
}

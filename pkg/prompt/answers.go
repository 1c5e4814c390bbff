// Package prompt runs the interactive project wizard: pick a profile,
// toggle its packages, then fill in name, location, Python version, kind
// and the profile flags. The wizard only collects answers; turning them
// into a project.Input is plain code so it can be tested without a TTY.
package prompt

import (
	"github.com/arthur-debert/pyproject/pkg/catalog"
	"github.com/arthur-debert/pyproject/pkg/errors"
	"github.com/arthur-debert/pyproject/pkg/options"
	"github.com/arthur-debert/pyproject/pkg/project"
	"github.com/arthur-debert/pyproject/pkg/types"
)

// FlagChoice is a profile flag the wizard offers as a checkbox
type FlagChoice struct {
	Name  string
	Label string
}

// FlagChoices are offered in this order
var FlagChoices = []FlagChoice{
	{Name: types.FlagUseGit, Label: "Initialize a git repository"},
	{Name: types.FlagMakeRunnable, Label: "Make main.py runnable"},
	{Name: types.FlagNoReadme, Label: "Skip README.md"},
	{Name: types.FlagNoMain, Label: "Skip main.py"},
	{Name: types.FlagNoWorkspace, Label: "Ignore enclosing uv workspace"},
	{Name: types.FlagNoSync, Label: "Skip uv sync"},
}

// Answers are the raw wizard values
type Answers struct {
	Profile  string
	Packages []string // names of the checked packages
	Name     string
	Location string
	Python   string
	Kind     string
	Flags    []string // names of the checked FlagChoices
	// Templates holds the keys of the checked template entries
	Templates []string
}

// Defaults seed the wizard fields
type Defaults struct {
	Profile  string
	Name     string
	Location string
	Python   string
	Kind     types.ProjectKind
	// Flags set here win over the profile's extras
	Flags map[string]bool
	// SkipTemplates start unchecked
	SkipTemplates []string
}

// Seed fills the profile dependent answers: the packages enabled in the
// profile, every template entry and the flags from its extras, with
// defaults applied on top.
func (a *Answers) Seed(p types.Profile, defaults Defaults) {
	a.Profile = p.Name
	a.Packages = a.Packages[:0]
	for _, pkg := range p.Packages {
		if pkg.Enabled {
			a.Packages = append(a.Packages, pkg.Name)
		}
	}

	skip := make(map[string]bool, len(defaults.SkipTemplates))
	for _, key := range defaults.SkipTemplates {
		skip[key] = true
	}
	a.Templates = a.Templates[:0]
	for _, t := range p.Extras.Templates {
		if !skip[t.Key()] {
			a.Templates = append(a.Templates, t.Key())
		}
	}

	a.Flags = a.Flags[:0]
	for _, choice := range FlagChoices {
		on := p.Extras.Flag(choice.Name)
		if v, ok := defaults.Flags[choice.Name]; ok {
			on = v
		}
		if on {
			a.Flags = append(a.Flags, choice.Name)
		}
	}
}

// Input builds the project input. Packages not named in a.Packages are
// switched off, templates not named in a.Templates are skipped, and every
// offered flag is set explicitly.
func (a Answers) Input(c *catalog.Catalog) (project.Input, error) {
	profile, err := c.Get(a.Profile)
	if err != nil {
		return project.Input{}, err
	}

	checked := make(map[string]bool, len(a.Packages))
	for _, name := range a.Packages {
		checked[name] = true
	}
	model := options.FromProfile(profile)
	for _, o := range model.Options() {
		if err := model.Set(o.Name, checked[o.Name]); err != nil {
			return project.Input{}, err
		}
		delete(checked, o.Name)
	}
	for name := range checked {
		return project.Input{}, errors.Newf(errors.ErrInvalidInput, "package %q is not part of profile %q", name, profile.Name)
	}

	wanted := make(map[string]bool, len(a.Templates))
	for _, key := range a.Templates {
		wanted[key] = true
	}
	var skip []string
	for _, t := range profile.Extras.Templates {
		if !wanted[t.Key()] {
			skip = append(skip, t.Key())
		}
		delete(wanted, t.Key())
	}
	for key := range wanted {
		return project.Input{}, errors.Newf(errors.ErrInvalidInput, "template %q is not part of profile %q", key, profile.Name)
	}

	kind, err := types.ParseProjectKind(a.Kind)
	if err != nil {
		return project.Input{}, errors.Wrap(err, errors.ErrInvalidInput, "invalid project kind")
	}

	flags := make(map[string]bool, len(FlagChoices))
	for _, choice := range FlagChoices {
		flags[choice.Name] = false
	}
	for _, name := range a.Flags {
		if _, ok := flags[name]; !ok {
			return project.Input{}, errors.Newf(errors.ErrInvalidInput, "unknown flag %q", name)
		}
		flags[name] = true
	}

	return project.Input{
		Location:      a.Location,
		Name:          a.Name,
		PythonVersion: a.Python,
		Kind:          kind,
		Profile:       profile,
		Selection:     model,
		Flags:         flags,
		SkipTemplates: skip,
	}, nil
}

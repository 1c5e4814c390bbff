package project

import (
	"path/filepath"
	"regexp"

	"github.com/arthur-debert/pyproject/pkg/errors"
	"github.com/arthur-debert/pyproject/pkg/options"
	"github.com/arthur-debert/pyproject/pkg/paths"
	"github.com/arthur-debert/pyproject/pkg/templates"
	"github.com/arthur-debert/pyproject/pkg/types"
)

// validName follows the PEP 508 project name rules
var validName = regexp.MustCompile(`^([A-Za-z0-9]|[A-Za-z0-9][A-Za-z0-9._-]*[A-Za-z0-9])$`)

// Input is everything the user chose for a new project
type Input struct {
	// Location is the parent directory; the project is created in Location/Name
	Location      string
	Name          string
	PythonVersion string
	Kind          types.ProjectKind
	Profile       types.Profile
	// Selection holds the package toggles; nil means the profile defaults
	Selection *options.Model
	// Flags override the profile's extras flags, keyed by types.Flag* names
	Flags map[string]bool
	// SkipTemplates names template entries, by Template.Key, left out of
	// the copy step. Every other entry of the profile is copied.
	SkipTemplates []string
}

// ValidateName checks a project name against the PEP 508 rules
func ValidateName(name string) error {
	if !validName.MatchString(name) {
		return errors.Newf(errors.ErrInvalidInput,
			"invalid project name %q: use letters, digits, '.', '_' or '-', starting and ending with a letter or digit", name)
	}
	return nil
}

// Resolve validates the input and builds the project description
func Resolve(in Input, resolver *templates.Resolver) (types.ResolvedProject, error) {
	if err := ValidateName(in.Name); err != nil {
		return types.ResolvedProject{}, err
	}
	if in.PythonVersion == "" {
		return types.ResolvedProject{}, errors.New(errors.ErrInvalidInput, "no Python version given")
	}

	location := in.Location
	if location == "" {
		location = "."
	}
	location, err := paths.NormalizePath(location)
	if err != nil {
		return types.ResolvedProject{}, err
	}

	kind := in.Kind
	if kind == "" {
		kind = types.KindApplication
	}

	selection := in.Selection
	if selection == nil {
		selection = options.FromProfile(in.Profile)
	} else if selection.Profile() != in.Profile.Name {
		return types.ResolvedProject{}, errors.Newf(errors.ErrInvalidInput,
			"package selection belongs to profile %q, not %q", selection.Profile(), in.Profile.Name)
	}

	target := filepath.Join(location, in.Name)

	profile := in.Profile
	profile.Extras.Templates, err = keepTemplates(in.Profile, in.SkipTemplates)
	if err != nil {
		return types.ResolvedProject{}, err
	}
	copies, err := resolver.Resolve(profile, target)
	if err != nil {
		return types.ResolvedProject{}, err
	}

	flag := func(name string) bool {
		if v, ok := in.Flags[name]; ok {
			return v
		}
		return in.Profile.Extras.Flag(name)
	}

	return types.ResolvedProject{
		Path:          target,
		Name:          in.Name,
		PythonVersion: in.PythonVersion,
		Kind:          kind,
		Profile:       in.Profile.Name,
		Description:   append([]string(nil), in.Profile.Description...),
		Requirements:  selection.Selected(),
		ManifestExtra: append([]string(nil), in.Profile.Extras.PyprojectExtras...),
		Copies:        copies,
		Flags: types.ProjectFlags{
			MakeRunnable: flag(types.FlagMakeRunnable),
			NoReadme:     flag(types.FlagNoReadme),
			NoMain:       flag(types.FlagNoMain),
			UseGit:       flag(types.FlagUseGit),
			NoWorkspace:  flag(types.FlagNoWorkspace),
			NoSync:       flag(types.FlagNoSync),
		},
	}, nil
}

// keepTemplates drops the entries named in skip. Naming an entry the
// profile does not have is an error.
func keepTemplates(p types.Profile, skip []string) ([]types.Template, error) {
	if len(skip) == 0 {
		return p.Extras.Templates, nil
	}
	drop := make(map[string]bool, len(skip))
	for _, key := range skip {
		drop[key] = true
	}

	kept := make([]types.Template, 0, len(p.Extras.Templates))
	for _, t := range p.Extras.Templates {
		if drop[t.Key()] {
			delete(drop, t.Key())
			continue
		}
		kept = append(kept, t)
	}
	for _, key := range skip {
		if drop[key] {
			return nil, errors.Newf(errors.ErrInvalidInput, "template %q is not part of profile %q", key, p.Name)
		}
	}
	return kept, nil
}

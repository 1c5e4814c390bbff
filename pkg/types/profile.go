package types

// PackageStatus is the raw status literal declared for a package in the catalog
type PackageStatus string

const (
	// PackageEnabled marks a package checked by default
	PackageEnabled PackageStatus = "enabled"
	// PackageDisabled marks a package unchecked by default
	PackageDisabled PackageStatus = "disabled"
)

// IsKnown reports whether the status is one of the two documented literals
func (s PackageStatus) IsKnown() bool {
	return s == PackageEnabled || s == PackageDisabled
}

// Package is one dependency offered by a profile
type Package struct {
	Name string `json:"name" yaml:"name"`
	// Enabled is true only for the "enabled" literal; anything else is disabled
	Enabled bool `json:"enabled" yaml:"enabled"`
	// Version is an opaque constraint such as ">=1.2.3", empty when absent
	Version string `json:"version,omitempty" yaml:"version,omitempty"`
}

// Spec returns the requirement string for the package, e.g. "pandas>=2".
func (p Package) Spec() string {
	return p.Name + p.Version
}

// Template pairs source asset ids with destination filenames by index
type Template struct {
	Src         []string `json:"src" yaml:"src"`
	Dst         []string `json:"dst" yaml:"dst"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
}

// Key identifies the entry by its first source asset id
func (t Template) Key() string {
	if len(t.Src) == 0 {
		return ""
	}
	return t.Src[0]
}

// Extras flag names understood by the materializer
const (
	FlagNoMain       = "no_main"
	FlagNoReadme     = "no_readme"
	FlagUseGit       = "use_git"
	FlagMakeRunnable = "make_runnable"
	FlagNoWorkspace  = "no_workspace"
	FlagNoSync       = "no_sync"
)

// Extras holds the optional parts of a profile
type Extras struct {
	Templates []Template `json:"templates,omitempty" yaml:"templates,omitempty"`
	// PyprojectExtras are manifest lines appended verbatim
	PyprojectExtras []string `json:"pyproject_extras,omitempty" yaml:"pyproject_extras,omitempty"`
	// Flags are the free-form boolean switches, e.g. no_main
	Flags map[string]bool `json:"flags,omitempty" yaml:"flags,omitempty"`
}

// Flag returns the value of a free-form flag, false when unset
func (e Extras) Flag(name string) bool {
	return e.Flags[name]
}

// Profile is a named project template from the catalog
type Profile struct {
	Name        string    `json:"name" yaml:"name"`
	Packages    []Package `json:"packages" yaml:"packages"`
	Description []string  `json:"description" yaml:"description"`
	Extras      Extras    `json:"extras" yaml:"extras"`
}

// Clone returns a deep copy so callers cannot mutate catalog state
func (p Profile) Clone() Profile {
	c := Profile{
		Name:        p.Name,
		Packages:    append([]Package(nil), p.Packages...),
		Description: append([]string(nil), p.Description...),
		Extras: Extras{
			PyprojectExtras: append([]string(nil), p.Extras.PyprojectExtras...),
		},
	}
	for _, t := range p.Extras.Templates {
		c.Extras.Templates = append(c.Extras.Templates, Template{
			Src:         append([]string(nil), t.Src...),
			Dst:         append([]string(nil), t.Dst...),
			Description: t.Description,
		})
	}
	if p.Extras.Flags != nil {
		c.Extras.Flags = make(map[string]bool, len(p.Extras.Flags))
		for k, v := range p.Extras.Flags {
			c.Extras.Flags[k] = v
		}
	}
	return c
}

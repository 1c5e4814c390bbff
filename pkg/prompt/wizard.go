package prompt

import (
	"context"
	stderrors "errors"
	"os"
	"strings"

	"github.com/arthur-debert/pyproject/pkg/catalog"
	"github.com/arthur-debert/pyproject/pkg/errors"
	"github.com/arthur-debert/pyproject/pkg/logging"
	"github.com/arthur-debert/pyproject/pkg/project"
	"github.com/arthur-debert/pyproject/pkg/types"
	"github.com/charmbracelet/huh"
)

// Wizard asks for everything a new project needs
type Wizard struct {
	catalog  *catalog.Catalog
	pythons  []string
	defaults Defaults
	// Accessible switches huh to line-based prompts for screen readers
	Accessible bool
}

// New creates a wizard. pythons lists the versions offered, preferred
// first; when empty the version is typed in.
func New(c *catalog.Catalog, pythons []string, defaults Defaults) *Wizard {
	return &Wizard{
		catalog:    c,
		pythons:    pythons,
		defaults:   defaults,
		Accessible: os.Getenv("ACCESSIBLE") != "",
	}
}

// Run shows the two wizard pages and returns the resulting input.
// Aborting the form returns an ErrCancelled error.
func (w *Wizard) Run(ctx context.Context) (project.Input, error) {
	logger := logging.GetLogger("prompt")
	a := w.Initial()

	profileForm := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Profile").
				Description("Each profile brings its own packages and templates").
				Options(ProfileOptions(w.catalog)...).
				Value(&a.Profile),
		),
	).WithAccessible(w.Accessible)
	if err := run(ctx, profileForm); err != nil {
		return project.Input{}, err
	}

	profile, err := w.catalog.Get(a.Profile)
	if err != nil {
		return project.Input{}, err
	}
	a.Seed(profile, w.defaults)
	logger.Debug().Str("profile", profile.Name).Msg("Profile chosen")

	groups := []*huh.Group{
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Packages").
				Options(PackageOptions(profile, a.Packages)...).
				Value(&a.Packages),
		),
	}
	if len(profile.Extras.Templates) > 0 {
		groups = append(groups, huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Templates").
				Description("Files copied into the new project").
				Options(TemplateOptions(profile, a.Templates)...).
				Value(&a.Templates),
		))
	}
	groups = append(groups,
		huh.NewGroup(
			huh.NewInput().
				Title("Project name").
				Value(&a.Name).
				Validate(project.ValidateName),
			huh.NewInput().
				Title("Location").
				Description("The project is created in a new directory here").
				Value(&a.Location),
			w.pythonField(&a.Python),
			huh.NewSelect[string]().
				Title("Kind").
				Options(
					huh.NewOption("Application (main.py)", string(types.KindApplication)),
					huh.NewOption("Package (console script)", string(types.KindPackage)),
					huh.NewOption("Library (src layout)", string(types.KindLibrary)),
				).
				Value(&a.Kind),
		),
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Options").
				Options(FlagOptions(a.Flags)...).
				Value(&a.Flags),
		),
	)

	detailsForm := huh.NewForm(groups...).WithAccessible(w.Accessible)
	if err := run(ctx, detailsForm); err != nil {
		return project.Input{}, err
	}

	return a.Input(w.catalog)
}

// Initial returns the answers the wizard opens with
func (w *Wizard) Initial() Answers {
	a := Answers{
		Profile:  w.defaults.Profile,
		Name:     w.defaults.Name,
		Location: w.defaults.Location,
		Python:   w.defaults.Python,
		Kind:     string(w.defaults.Kind),
	}
	if a.Kind == "" {
		a.Kind = string(types.KindApplication)
	}
	if a.Python == "" && len(w.pythons) > 0 {
		a.Python = w.pythons[0]
	}
	if names := w.catalog.Names(); a.Profile == "" && len(names) > 0 {
		a.Profile = names[0]
	}
	return a
}

func (w *Wizard) pythonField(value *string) huh.Field {
	if len(w.pythons) == 0 {
		return huh.NewInput().
			Title("Python version").
			Value(value).
			Validate(func(s string) error {
				if s == "" {
					return stderrors.New("a Python version is required")
				}
				return nil
			})
	}
	return huh.NewSelect[string]().
		Title("Python version").
		Options(huh.NewOptions(w.pythons...)...).
		Value(value)
}

// ProfileOptions lists catalog profiles, labelled with their first
// description line.
func ProfileOptions(c *catalog.Catalog) []huh.Option[string] {
	var opts []huh.Option[string]
	for _, p := range c.Profiles() {
		label := p.Name
		if len(p.Description) > 0 {
			label += " - " + p.Description[0]
		}
		opts = append(opts, huh.NewOption(label, p.Name))
	}
	return opts
}

// PackageOptions lists a profile's packages, checking those in selected
func PackageOptions(p types.Profile, selected []string) []huh.Option[string] {
	on := make(map[string]bool, len(selected))
	for _, name := range selected {
		on[name] = true
	}
	opts := make([]huh.Option[string], 0, len(p.Packages))
	for _, pkg := range p.Packages {
		opts = append(opts, huh.NewOption(pkg.Spec(), pkg.Name).Selected(on[pkg.Name]))
	}
	return opts
}

// TemplateOptions lists a profile's template entries, labelled with
// their description and destinations, checking those in selected
func TemplateOptions(p types.Profile, selected []string) []huh.Option[string] {
	on := make(map[string]bool, len(selected))
	for _, key := range selected {
		on[key] = true
	}
	opts := make([]huh.Option[string], 0, len(p.Extras.Templates))
	for _, t := range p.Extras.Templates {
		label := strings.Join(t.Dst, ", ")
		if t.Description != "" {
			label = t.Description + " (" + label + ")"
		}
		opts = append(opts, huh.NewOption(label, t.Key()).Selected(on[t.Key()]))
	}
	return opts
}

// FlagOptions lists FlagChoices, checking those in selected
func FlagOptions(selected []string) []huh.Option[string] {
	on := make(map[string]bool, len(selected))
	for _, name := range selected {
		on[name] = true
	}
	opts := make([]huh.Option[string], 0, len(FlagChoices))
	for _, choice := range FlagChoices {
		opts = append(opts, huh.NewOption(choice.Label, choice.Name).Selected(on[choice.Name]))
	}
	return opts
}

func run(ctx context.Context, form *huh.Form) error {
	if err := form.RunWithContext(ctx); err != nil {
		if stderrors.Is(err, huh.ErrUserAborted) {
			return errors.New(errors.ErrCancelled, "cancelled")
		}
		return errors.Wrap(err, errors.ErrInternal, "interactive prompt failed")
	}
	return nil
}

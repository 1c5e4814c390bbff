package pyproject

import (
	"fmt"

	"github.com/arthur-debert/pyproject/pkg/errors"
	"github.com/arthur-debert/pyproject/pkg/options"
	"github.com/arthur-debert/pyproject/pkg/project"
	"github.com/arthur-debert/pyproject/pkg/prompt"
	"github.com/arthur-debert/pyproject/pkg/tools"
	"github.com/arthur-debert/pyproject/pkg/types"
	"github.com/arthur-debert/pyproject/pkg/ui"
	"github.com/arthur-debert/pyproject/pkg/ui/display"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// projectFlags are the flags shared by new and plan
type projectFlags struct {
	profile     string
	location    string
	python      string
	kind        string
	with        []string
	without     []string
	skip        []string
	git         bool
	noReadme    bool
	noMain      bool
	noWorkspace bool
	runnable    bool
	noSync      bool
	interactive bool
}

// flagNames maps command line flags to profile extras flags
var flagNames = map[string]string{
	"git":          types.FlagUseGit,
	"no-readme":    types.FlagNoReadme,
	"no-main":      types.FlagNoMain,
	"no-workspace": types.FlagNoWorkspace,
	"runnable":     types.FlagMakeRunnable,
	"no-sync":      types.FlagNoSync,
}

func (f *projectFlags) bind(fs *pflag.FlagSet) {
	fs.StringVarP(&f.profile, "profile", "p", "", MsgFlagProfile)
	fs.StringVarP(&f.location, "location", "l", ".", MsgFlagLocation)
	fs.StringVar(&f.python, "python", "", MsgFlagPython)
	fs.StringVarP(&f.kind, "kind", "k", "", MsgFlagKind)
	fs.StringSliceVar(&f.with, "with", nil, MsgFlagWith)
	fs.StringSliceVar(&f.without, "without", nil, MsgFlagWithout)
	fs.StringSliceVar(&f.skip, "without-template", nil, MsgFlagWithoutTemplate)
	fs.BoolVar(&f.git, "git", false, MsgFlagGit)
	fs.BoolVar(&f.noReadme, "no-readme", false, MsgFlagNoReadme)
	fs.BoolVar(&f.noMain, "no-main", false, MsgFlagNoMain)
	fs.BoolVar(&f.noWorkspace, "no-workspace", false, MsgFlagNoWorkspace)
	fs.BoolVar(&f.runnable, "runnable", false, MsgFlagRunnable)
	fs.BoolVar(&f.noSync, "no-sync", false, MsgFlagNoSync)
	fs.BoolVarP(&f.interactive, "interactive", "i", false, MsgFlagInteractive)
}

// overrides returns the extras flags given explicitly on the command line
func (f *projectFlags) overrides(fs *pflag.FlagSet) map[string]bool {
	out := make(map[string]bool)
	for flag, extra := range flagNames {
		if fs.Changed(flag) {
			v, _ := fs.GetBool(flag)
			out[extra] = v
		}
	}
	return out
}

// resolve turns the flags (or the wizard answers) into a resolved project
func (f *projectFlags) resolve(cmd *cobra.Command, a *app, args []string) (types.ResolvedProject, error) {
	var name string
	if len(args) > 0 {
		name = args[0]
	}

	var (
		in  project.Input
		err error
	)
	if f.interactive {
		in, err = f.ask(cmd, a, name)
	} else {
		in, err = f.input(cmd, a, name)
	}
	if err != nil {
		return types.ResolvedProject{}, err
	}
	return project.Resolve(in, a.resolver)
}

func (f *projectFlags) input(cmd *cobra.Command, a *app, name string) (project.Input, error) {
	if name == "" {
		return project.Input{}, errors.New(errors.ErrInvalidInput, MsgErrNoName)
	}

	profileName := f.profile
	if profileName == "" {
		profileName = a.defaultProfile()
	}
	if profileName == "" {
		return project.Input{}, errors.New(errors.ErrProfileNotFound, MsgErrNoProfiles)
	}
	profile, err := a.catalog.Get(profileName)
	if err != nil {
		return project.Input{}, err
	}

	selection := options.FromProfile(profile)
	for _, pkg := range f.with {
		if err := selection.Set(pkg, true); err != nil {
			return project.Input{}, err
		}
	}
	for _, pkg := range f.without {
		if err := selection.Set(pkg, false); err != nil {
			return project.Input{}, err
		}
	}

	kind, err := f.projectKind(a)
	if err != nil {
		return project.Input{}, err
	}

	return project.Input{
		Location:      f.location,
		Name:          name,
		PythonVersion: f.pythonVersion(a),
		Kind:          kind,
		Profile:       profile,
		Selection:     selection,
		Flags:         f.overrides(cmd.Flags()),
		SkipTemplates: f.skip,
	}, nil
}

func (f *projectFlags) ask(cmd *cobra.Command, a *app, name string) (project.Input, error) {
	var versions []string
	pythons, err := a.uv.Pythons(cmd.Context())
	if err != nil {
		log.Warn().Err(err).Msg(MsgWarnNoPythonList)
	} else {
		versions = tools.Versions(pythons, f.pythonVersion(a))
	}

	kind, err := f.projectKind(a)
	if err != nil {
		return project.Input{}, err
	}

	profileName := f.profile
	if profileName == "" {
		profileName = a.defaultProfile()
	}

	w := prompt.New(a.catalog, versions, prompt.Defaults{
		Profile:  profileName,
		Name:     name,
		Location: f.location,
		Python:   f.pythonVersion(a),
		Kind:     kind,
		Flags:    f.overrides(cmd.Flags()),
		// the wizard opens with these entries unchecked
		SkipTemplates: f.skip,
	})
	return w.Run(cmd.Context())
}

func (f *projectFlags) pythonVersion(a *app) string {
	if f.python != "" {
		return f.python
	}
	return a.cfg.Defaults.PythonVersion
}

func (f *projectFlags) projectKind(a *app) (types.ProjectKind, error) {
	raw := f.kind
	if raw == "" {
		raw = a.cfg.Defaults.Kind
	}
	kind, err := types.ParseProjectKind(raw)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInvalidInput, "invalid --kind")
	}
	return kind, nil
}

func newNewCmd(opts *rootOptions) *cobra.Command {
	var flags projectFlags

	cmd := &cobra.Command{
		Use:     "new [name]",
		Short:   MsgNewShort,
		Long:    MsgNewLong,
		Example: MsgNewExample,
		GroupID: "core",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.App()
			if err != nil {
				return err
			}
			resolved, err := flags.resolve(cmd, a, args)
			if err != nil {
				return err
			}

			format, err := opts.Format(cmd)
			if err != nil {
				return err
			}
			renderer, err := ui.NewRenderer(format, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			log.Info().
				Str("path", resolved.Path).
				Str("profile", resolved.Profile).
				Msg("Creating project")

			var spinner *pterm.SpinnerPrinter
			if format == ui.FormatTerminal {
				spinner, _ = pterm.DefaultSpinner.
					WithWriter(cmd.ErrOrStderr()).
					WithRemoveWhenDone(true).
					Start(fmt.Sprintf(MsgCreatingFormat, resolved.Name))
			}

			result, err := a.materializer.Materialize(cmd.Context(), resolved)
			if spinner != nil {
				if err != nil {
					spinner.Fail(fmt.Sprintf(MsgFailedFormat, resolved.Name))
				} else {
					_ = spinner.Stop()
				}
			}
			if err != nil {
				// show the steps that ran and their output before the error
				if result != nil {
					_ = renderer.RenderResult(display.NewFailedView(result))
				}
				return err
			}

			if err := renderer.RenderResult(display.NewResultView(result)); err != nil {
				return err
			}
			if format == ui.FormatTerminal || format == ui.FormatText {
				return renderer.RenderMessage(fmt.Sprintf(MsgCreatedFormat, resolved.Path))
			}
			return nil
		},
	}
	flags.bind(cmd.Flags())
	registerProjectCompletions(cmd, opts)
	return cmd
}

func newPlanCmd(opts *rootOptions) *cobra.Command {
	var (
		flags    projectFlags
		contents bool
	)

	cmd := &cobra.Command{
		Use:     "plan [name]",
		Short:   MsgPlanShort,
		Long:    MsgPlanLong,
		Example: MsgPlanExample,
		GroupID: "core",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.App()
			if err != nil {
				return err
			}
			resolved, err := flags.resolve(cmd, a, args)
			if err != nil {
				return err
			}
			plan, err := a.materializer.DryRun(resolved)
			if err != nil {
				return err
			}

			renderer, err := opts.Renderer(cmd)
			if err != nil {
				return err
			}
			return renderer.RenderResult(display.NewPlanView(plan, contents))
		},
	}
	flags.bind(cmd.Flags())
	cmd.Flags().BoolVar(&contents, "contents", false, MsgFlagContents)
	registerProjectCompletions(cmd, opts)
	return cmd
}

// registerProjectCompletions completes --profile, --kind, package names
// and template entries
func registerProjectCompletions(cmd *cobra.Command, opts *rootOptions) {
	_ = cmd.RegisterFlagCompletionFunc("profile", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		a, err := opts.App()
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		return a.catalog.Names(), cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("kind", cobra.FixedCompletions(
		[]string{string(types.KindApplication), string(types.KindPackage), string(types.KindLibrary)},
		cobra.ShellCompDirectiveNoFileComp,
	))
	fromProfile := func(list func(types.Profile) []string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			a, err := opts.App()
			if err != nil {
				return nil, cobra.ShellCompDirectiveError
			}
			profileName, _ := cmd.Flags().GetString("profile")
			if profileName == "" {
				profileName = a.defaultProfile()
			}
			p, err := a.catalog.Get(profileName)
			if err != nil {
				return nil, cobra.ShellCompDirectiveError
			}
			return list(p), cobra.ShellCompDirectiveNoFileComp
		}
	}
	packages := fromProfile(func(p types.Profile) []string {
		names := make([]string, 0, len(p.Packages))
		for _, pkg := range p.Packages {
			names = append(names, pkg.Name)
		}
		return names
	})
	_ = cmd.RegisterFlagCompletionFunc("with", packages)
	_ = cmd.RegisterFlagCompletionFunc("without", packages)
	_ = cmd.RegisterFlagCompletionFunc("without-template", fromProfile(func(p types.Profile) []string {
		keys := make([]string, 0, len(p.Extras.Templates))
		for _, t := range p.Extras.Templates {
			keys = append(keys, t.Key()+"\t"+t.Description)
		}
		return keys
	}))
	_ = cmd.RegisterFlagCompletionFunc("location", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return nil, cobra.ShellCompDirectiveFilterDirs
	})
}

package pyproject

import (
	"fmt"
	"os"

	"github.com/arthur-debert/pyproject/internal/version"
	"github.com/arthur-debert/pyproject/pkg/cobrax/topics"
	"github.com/arthur-debert/pyproject/pkg/logging"
	"github.com/arthur-debert/pyproject/pkg/runner"
	"github.com/arthur-debert/pyproject/pkg/ui"
	"github.com/arthur-debert/pyproject/pkg/ui/markdown"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// rootOptions carries the global flags and the lazily built app
type rootOptions struct {
	verbosity  int
	configPath string
	format     string

	runner runner.CommandRunner
	app    *app
}

// App loads configuration on first use
func (o *rootOptions) App() (*app, error) {
	if o.app != nil {
		return o.app, nil
	}
	a, err := newApp(o.configPath, o.runner)
	if err != nil {
		return nil, err
	}
	o.app = a
	return a, nil
}

// Format resolves --format; auto picks term or text from the output
func (o *rootOptions) Format(cmd *cobra.Command) (ui.Format, error) {
	f, err := ui.ParseFormat(o.format)
	if err != nil {
		return ui.FormatAuto, err
	}
	if f != ui.FormatAuto {
		return f, nil
	}
	if file, ok := cmd.OutOrStdout().(*os.File); ok {
		return ui.DetectFormat(file), nil
	}
	return ui.FormatText, nil
}

// Renderer returns the renderer for the command's output
func (o *rootOptions) Renderer(cmd *cobra.Command) (ui.Renderer, error) {
	f, err := o.Format(cmd)
	if err != nil {
		return nil, err
	}
	return ui.NewRenderer(f, cmd.OutOrStdout())
}

// RenderError writes err to the command's error stream in the format
// --format selected. An invalid --format falls back to text.
func (o *rootOptions) RenderError(cmd *cobra.Command, err error) error {
	out := cmd.ErrOrStderr()
	f, perr := ui.ParseFormat(o.format)
	if perr != nil {
		f = ui.FormatText
	}
	if f == ui.FormatAuto {
		f = ui.FormatText
		if file, ok := out.(*os.File); ok {
			f = ui.DetectFormat(file)
		}
	}
	r, rerr := ui.NewRenderer(f, out)
	if rerr != nil {
		return rerr
	}
	return r.RenderError(err)
}

// Execute runs the CLI and returns the process exit code. Errors are
// rendered once, here, in the selected output format.
func Execute() int {
	opts := &rootOptions{runner: runner.NewRealRunner()}
	return run(buildRootCmd(opts), opts)
}

func run(cmd *cobra.Command, opts *rootOptions) int {
	if err := cmd.Execute(); err != nil {
		_ = opts.RenderError(cmd, err)
		return 1
	}
	return 0
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	return newRootCmd(runner.NewRealRunner())
}

func newRootCmd(r runner.CommandRunner) *cobra.Command {
	return buildRootCmd(&rootOptions{runner: r})
}

func buildRootCmd(opts *rootOptions) *cobra.Command {
	initTemplateFormatting()

	rootCmd := &cobra.Command{
		Use:     "pyproject",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(opts.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf(MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", MsgFlagConfig)
	rootCmd.PersistentFlags().StringVar(&opts.format, "format", "auto", MsgFlagFormat)

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "COMMANDS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "catalog", Title: "CATALOG:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newNewCmd(opts))
	rootCmd.AddCommand(newPlanCmd(opts))
	rootCmd.AddCommand(newScriptCmd(opts))
	rootCmd.AddCommand(newProfilesCmd(opts))
	rootCmd.AddCommand(newTemplatesCmd(opts))
	rootCmd.AddCommand(newSchemaCmd())
	rootCmd.AddCommand(newPythonsCmd(opts))
	rootCmd.AddCommand(newConfigCmd(opts))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	if _, err := topics.Initialize(rootCmd, helpTopics(), topics.Options{
		Extensions: []string{".md"},
		Renderer:   markdown.New(),
	}); err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
	}

	return rootCmd
}

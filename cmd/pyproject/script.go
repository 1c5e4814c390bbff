package pyproject

import (
	"fmt"

	"github.com/arthur-debert/pyproject/pkg/ui"
	"github.com/arthur-debert/pyproject/pkg/ui/display"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newScriptCmd(opts *rootOptions) *cobra.Command {
	var (
		python   string
		runnable bool
	)

	cmd := &cobra.Command{
		Use:     "script <file>",
		Short:   MsgScriptShort,
		Long:    MsgScriptLong,
		GroupID: "core",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.App()
			if err != nil {
				return err
			}
			if python == "" {
				python = a.cfg.Defaults.PythonVersion
			}

			format, err := opts.Format(cmd)
			if err != nil {
				return err
			}
			renderer, err := ui.NewRenderer(format, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			var spinner *pterm.SpinnerPrinter
			if format == ui.FormatTerminal {
				spinner, _ = pterm.DefaultSpinner.
					WithWriter(cmd.ErrOrStderr()).
					WithRemoveWhenDone(true).
					Start(fmt.Sprintf(MsgScriptFormat, args[0]))
			}
			res, err := a.materializer.Script(cmd.Context(), args[0], python, runnable)
			if spinner != nil {
				if err != nil {
					spinner.Fail(fmt.Sprintf(MsgFailedFormat, args[0]))
				} else {
					_ = spinner.Stop()
				}
			}
			if err != nil {
				return err
			}
			return renderer.RenderResult(display.NewScriptView(res))
		},
	}
	cmd.Flags().StringVar(&python, "python", "", MsgFlagPython)
	cmd.Flags().BoolVar(&runnable, "runnable", false, MsgFlagRunnable)
	return cmd
}

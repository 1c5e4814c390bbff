package pyproject

import (
	"github.com/arthur-debert/pyproject/pkg/ui/display"
	"github.com/spf13/cobra"
)

func newPythonsCmd(opts *rootOptions) *cobra.Command {
	var installed bool

	cmd := &cobra.Command{
		Use:     "pythons",
		Short:   MsgPythonsShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.App()
			if err != nil {
				return err
			}
			pythons, err := a.uv.Pythons(cmd.Context())
			if err != nil {
				return err
			}
			if installed {
				kept := pythons[:0]
				for _, p := range pythons {
					if p.Installed() {
						kept = append(kept, p)
					}
				}
				pythons = kept
			}

			renderer, err := opts.Renderer(cmd)
			if err != nil {
				return err
			}
			return renderer.RenderResult(display.NewPythonList(pythons, a.cfg.Defaults.PythonVersion))
		},
	}
	cmd.Flags().BoolVar(&installed, "installed", false, MsgFlagInstalled)
	return cmd
}

package pyproject

import (
	"github.com/arthur-debert/pyproject/pkg/catalog"
	"github.com/arthur-debert/pyproject/pkg/ui/display"
	"github.com/spf13/cobra"
)

func newTemplatesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "templates",
		Short:   MsgTemplatesShort,
		GroupID: "catalog",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.App()
			if err != nil {
				return err
			}
			assets, err := a.store.List()
			if err != nil {
				return err
			}
			renderer, err := opts.Renderer(cmd)
			if err != nil {
				return err
			}
			return renderer.RenderResult(display.NewTemplateList(assets))
		},
	}
}

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "schema",
		Short:   MsgSchemaShort,
		GroupID: "catalog",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := cmd.OutOrStdout().Write([]byte(catalog.Schema()))
			return err
		},
	}
}

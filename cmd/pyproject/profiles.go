package pyproject

import (
	"encoding/json"
	"fmt"

	"github.com/arthur-debert/pyproject/pkg/options"
	"github.com/arthur-debert/pyproject/pkg/ui/display"
	"github.com/spf13/cobra"
)

func newProfilesCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "profiles",
		Short:   MsgProfilesShort,
		GroupID: "catalog",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listProfiles(cmd, opts)
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: MsgProfilesList,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listProfiles(cmd, opts)
		},
	})

	var columns int
	show := &cobra.Command{
		Use:   "show <profile>",
		Short: MsgProfilesShow,
		Args:  cobra.ExactArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			a, err := opts.App()
			if err != nil || len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return a.catalog.Names(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.App()
			if err != nil {
				return err
			}
			p, err := a.catalog.Get(args[0])
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("columns") {
				columns = a.cfg.Defaults.Columns
			}

			renderer, err := opts.Renderer(cmd)
			if err != nil {
				return err
			}
			return renderer.RenderResult(display.NewProfileDetail(p, options.FromProfile(p), columns))
		},
	}
	show.Flags().IntVar(&columns, "columns", 0, MsgFlagColumns)
	cmd.AddCommand(show)

	cmd.AddCommand(&cobra.Command{
		Use:   "export",
		Short: MsgProfilesExport,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.App()
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(a.catalog, "", "  ")
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		},
	})

	return cmd
}

func listProfiles(cmd *cobra.Command, opts *rootOptions) error {
	a, err := opts.App()
	if err != nil {
		return err
	}
	renderer, err := opts.Renderer(cmd)
	if err != nil {
		return err
	}
	return renderer.RenderResult(display.NewProfileList(a.catalog))
}

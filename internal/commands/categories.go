package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newCategoriesCommand(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the categories imported rows are matched against",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := openWorkspace(g.repo)
			if err != nil {
				return err
			}
			s, err := ws.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			cats, err := s.ListCategories(cmd.Context(), ws.cfg.User.ID)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tKIND\tID")
			for _, c := range cats {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", c.Name, c.Kind, c.ID)
			}
			return tw.Flush()
		},
	}
}

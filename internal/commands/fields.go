package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/budgetbook/budgetbook/internal/importer"
)

func newFieldsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "fields",
		Short: "List the fields a CSV column can be mapped to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "FIELD\tLABEL\tREQUIRED\tDESCRIPTION")
			for _, spec := range importer.FieldSpecs() {
				req := ""
				if spec.Required {
					req = "yes"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", spec.Field, spec.Label, req, spec.Help)
			}
			return tw.Flush()
		},
	}
}

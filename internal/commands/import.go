package commands

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/budgetbook/budgetbook/internal/importer"
	"github.com/budgetbook/budgetbook/internal/model"
	"github.com/budgetbook/budgetbook/internal/source"
)

func newImportCommand(g *globalOptions) *cobra.Command {
	var (
		flags importFlags
		list  bool
	)

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a bank CSV export into the budget",
		Long: "Import reads a local path or gs://bucket/object, maps its columns, converts\n" +
			"every row and saves the valid ones as one batch. Rows that fail are reported\n" +
			"and skipped; a partially valid file is only saved with --allow-partial.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ws, err := openWorkspace(g.repo)
			if err != nil {
				return err
			}
			s, err := ws.openStore(ctx)
			if err != nil {
				return err
			}
			defer s.Close()
			reader := source.NewReader(nil)
			defer reader.Close()

			p := &pipeline{
				ws:     ws,
				svc:    importer.NewService(s, nil),
				reader: reader,
				flags:  &flags,
				out:    cmd.OutOrStdout(),
			}
			run, err := p.run(ctx, args[0])
			if err != nil {
				return err
			}
			if !run.imported() {
				return nil
			}

			msg := fmt.Sprintf("import: %s (%d transactions, batch %s)", run.file, run.result.Summary.Imported, run.batchID)
			hash, err := p.commit(ctx, msg)
			if err != nil {
				return err
			}
			if hash != "" {
				fmt.Fprintf(p.out, "Committed %s\n", hash)
			}
			if !list {
				return nil
			}
			txns, err := s.ListTransactions(ctx, run.userID, run.batchID)
			if err != nil {
				return err
			}
			return printBatch(p.out, txns)
		},
	}

	flags.registerImport(cmd)
	cmd.Flags().BoolVar(&list, "list", false, "print the saved transactions of the batch")
	return cmd
}

func printBatch(out io.Writer, txns []model.StoredTransaction) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tAMOUNT\tDESCRIPTION")
	for _, t := range txns {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", t.Date, t.SignedAmount().StringFixed(2), t.Description)
	}
	return tw.Flush()
}

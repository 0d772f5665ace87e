package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/budgetbook/budgetbook/internal/importer"
	"github.com/budgetbook/budgetbook/internal/logger"
	"github.com/budgetbook/budgetbook/internal/source"
)

func newInboxCommand(g *globalOptions) *cobra.Command {
	var flags importFlags

	cmd := &cobra.Command{
		Use:   "inbox",
		Short: "Import every CSV waiting in the workspace import/ directory",
		Long: "Inbox imports each CSV in import/ and moves it to import/processed/ once\n" +
			"saved. Files that fail stay in import/ for another attempt.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			log := logger.FromContext(ctx)
			ws, err := openWorkspace(g.repo)
			if err != nil {
				return err
			}

			files, err := importer.Scan(ws.root)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(files) == 0 {
				fmt.Fprintln(out, "No files in import/")
				return nil
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
				out:    out,
			}

			var failed, moved, txns int
			for _, f := range files {
				fmt.Fprintf(out, "==> %s\n", f.Name)
				run, err := p.run(ctx, f.Path)
				if err != nil {
					failed++
					color.New(color.FgRed).Fprintf(out, "failed: %v\n", err)
					log.Warn().Err(err).Str("file", f.Name).Msg("import failed")
					continue
				}
				if flags.dryRun {
					continue
				}
				if run.imported() || run.result.Summary.Outcome() == importer.OutcomeEmpty {
					if err := importer.MarkProcessed(ws.root, f.Name); err != nil {
						return err
					}
					moved++
					txns += run.result.Summary.Imported
				}
			}

			if moved > 0 {
				msg := fmt.Sprintf("import: %d files from inbox (%d transactions)", moved, txns)
				hash, err := p.commit(ctx, msg)
				if err != nil {
					return err
				}
				if hash != "" {
					fmt.Fprintf(out, "Committed %s\n", hash)
				}
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d files failed", failed, len(files))
			}
			return nil
		},
	}

	flags.registerImport(cmd)
	return cmd
}

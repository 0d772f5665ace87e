package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/budgetbook/budgetbook/internal/importer"
	"github.com/budgetbook/budgetbook/internal/source"
)

func newPreviewCommand(g *globalOptions) *cobra.Command {
	var (
		flags importFlags
		rows  int
	)

	cmd := &cobra.Command{
		Use:   "preview <file>",
		Short: "Show the columns, proposed mapping and first rows of a CSV file",
		Long: "Preview parses a local path or gs://bucket/object and shows how its columns\n" +
			"would be mapped. Nothing is written.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(g.repo)
			if err != nil {
				return err
			}
			reader := source.NewReader(nil)
			defer reader.Close()

			p := &pipeline{
				ws:     ws,
				svc:    importer.NewService(nil, nil),
				reader: reader,
				flags:  &flags,
				out:    cmd.OutOrStdout(),
			}
			sess, err := p.load(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			n := rows
			if n == 0 {
				n = ws.cfg.Import.PreviewRows
			}
			return printPreview(p, source.Name(args[0]), sess, n)
		},
	}

	flags.registerLoad(cmd)
	cmd.Flags().IntVar(&rows, "rows", 0, "sample rows to show (default from config)")
	return cmd
}

func printPreview(p *pipeline, name string, sess *importer.Session, rows int) error {
	out := p.out
	pv := sess.Table.Preview(rows)

	fmt.Fprintf(out, "%s: %d rows, %d columns\n", name, pv.TotalRows, len(pv.Headers))
	if sess.Preset != "" {
		fmt.Fprintf(out, "Preset: %s\n", sess.Preset)
	} else if pr, ok := p.svc.Presets().Match(sess.Table.Headers); ok {
		fmt.Fprintf(out, "Columns match preset %q (use --preset %s)\n", pr.Name, pr.Name)
	}

	fmt.Fprintln(out, "\nMapping:")
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, spec := range importer.FieldSpecs() {
		header := sess.Mapping.Get(spec.Field)
		if header == "" {
			header = "-"
		}
		req := ""
		if spec.Required {
			req = "(required)"
		}
		fmt.Fprintf(tw, "  %s\t%s\t%s\n", spec.Field, header, req)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if missing := sess.Mapping.Missing(); len(missing) > 0 {
		names := make([]string, len(missing))
		for i, f := range missing {
			names[i] = string(f)
		}
		color.New(color.FgRed).Fprintf(out, "Missing required fields: %s (use --map field=Header)\n", strings.Join(names, ", "))
	} else {
		color.New(color.FgGreen).Fprintln(out, "Mapping complete")
	}

	if len(pv.Sample) == 0 {
		return nil
	}
	fmt.Fprintf(out, "\nFirst %d rows:\n", len(pv.Sample))
	tw = tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(pv.Headers, "\t"))
	for _, row := range pv.Sample {
		cells := make([]string, len(pv.Headers))
		for i, h := range pv.Headers {
			cells[i] = row.Get(h).String()
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	return tw.Flush()
}

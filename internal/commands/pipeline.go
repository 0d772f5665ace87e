package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/budgetbook/budgetbook/internal/config"
	"github.com/budgetbook/budgetbook/internal/gitops"
	"github.com/budgetbook/budgetbook/internal/importer"
	"github.com/budgetbook/budgetbook/internal/importlog"
	"github.com/budgetbook/budgetbook/internal/logger"
	"github.com/budgetbook/budgetbook/internal/source"
)

// maxListedErrors caps the per-row failures printed after a summary.
const maxListedErrors = 10

var errAllRowsFailed = errors.New("no rows could be imported")

// importFlags are shared by preview, import and inbox.
type importFlags struct {
	preset       string
	delimiter    string
	mappings     []string
	typeOverride string
	user         string
	allowPartial bool
	dryRun       bool
}

func (f *importFlags) registerLoad(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.preset, "preset", "", "column preset ("+strings.Join(importer.DefaultRegistry().Names(), ", ")+")")
	cmd.Flags().StringVar(&f.delimiter, "delimiter", "", `field delimiter: ",", ";", "tab" or "auto" (default from config)`)
	cmd.Flags().StringArrayVar(&f.mappings, "map", nil, `override a column mapping as field=Header; "field=" clears it (repeatable)`)
}

func (f *importFlags) registerImport(cmd *cobra.Command) {
	f.registerLoad(cmd)
	cmd.Flags().StringVar(&f.typeOverride, "type", "", "treat rows without type text as expense or income (default from config)")
	cmd.Flags().StringVar(&f.user, "user", "", "user ID to import as (default from config)")
	cmd.Flags().BoolVarP(&f.allowPartial, "allow-partial", "y", false, "import the valid rows when some rows fail")
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "transform and report without writing")
}

// importRun holds what one file import produced.
type importRun struct {
	file    string
	userID  string
	result  *importer.Result
	batchID string
}

// imported reports whether anything was written.
func (r *importRun) imported() bool { return r.batchID != "" }

// pipeline runs files through the importer for one workspace.
type pipeline struct {
	ws     *workspace
	svc    *importer.Service
	reader *source.Reader
	flags  *importFlags
	out    io.Writer
}

// load reads uri and proposes a mapping with any --map overrides applied.
func (p *pipeline) load(ctx context.Context, uri string) (*importer.Session, error) {
	text, err := p.reader.ReadFile(ctx, uri)
	if err != nil {
		return nil, err
	}

	delimSetting := p.flags.delimiter
	if delimSetting == "" {
		delimSetting = p.ws.cfg.Import.Delimiter
	}
	delim, err := config.ParseDelimiter(delimSetting)
	if err != nil {
		return nil, err
	}
	if delim == 0 && p.flags.preset == "" {
		delim = importer.DetectDelimiter(text)
	}

	sess, err := p.svc.Load(ctx, text, importer.LoadOptions{Delimiter: delim, Preset: p.flags.preset})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source.Name(uri), err)
	}
	if err := sess.Mapping.ApplyOverrides(sess.Table.Headers, p.flags.mappings); err != nil {
		return nil, err
	}
	return sess, nil
}

// run imports one file: load, transform, report, then persist unless the
// outcome or --dry-run says otherwise.
func (p *pipeline) run(ctx context.Context, uri string) (*importRun, error) {
	log := logger.FromContext(ctx).With().Str("file", source.Name(uri)).Logger()
	ctx = logger.WithContext(ctx, log)

	sess, err := p.load(ctx, uri)
	if err != nil {
		return nil, err
	}

	userID := p.flags.user
	if userID == "" {
		userID = p.ws.cfg.User.ID
	}
	overrideSetting := p.flags.typeOverride
	if overrideSetting == "" {
		overrideSetting = p.ws.cfg.Import.TypeOverride
	}
	override, err := importer.ParseTypeOverride(overrideSetting)
	if err != nil {
		return nil, err
	}

	res, err := p.svc.Transform(ctx, sess, userID, override)
	if err != nil {
		return nil, err
	}
	run := &importRun{file: source.Name(uri), userID: userID, result: res}
	printSummary(p.out, res.Summary)

	sum := res.Summary
	switch sum.Outcome() {
	case importer.OutcomeEmpty:
		return run, nil
	case importer.OutcomeAllFailed:
		return run, errAllRowsFailed
	case importer.OutcomePartial:
		if !p.flags.allowPartial && !p.ws.cfg.Import.AllowPartial {
			return run, fmt.Errorf("%d of %d rows failed; re-run with --allow-partial to import the rest", sum.Skipped, sum.TotalRows)
		}
	}

	if p.flags.dryRun {
		fmt.Fprintln(p.out, "Dry run: nothing written")
		return run, nil
	}

	batchID, err := p.svc.Persist(ctx, userID, res)
	if err != nil {
		return run, err
	}
	run.batchID = batchID

	entry := importlog.Entry{
		Timestamp: time.Now(),
		UserID:    userID,
		BatchID:   batchID,
		File:      run.file,
		Total:     sum.TotalRows,
		Imported:  sum.Imported,
		Skipped:   sum.Skipped,
		Outcome:   sum.Outcome().String(),
	}
	// The batch is already saved; a missing log row must not make the
	// caller retry the file.
	if err := importlog.Append(p.ws.root, entry); err != nil {
		log.Warn().Err(err).Str("batch_id", batchID).Msg("recording import failed")
		color.New(color.FgYellow).Fprintf(p.out, "Warning: batch %s saved but not recorded in %s: %v\n", batchID, importlog.RelPath, err)
	}

	fmt.Fprintf(p.out, "Saved batch %s\n", batchID)
	return run, nil
}

// commit records workspace changes when auto-commit is on. Returns the short
// hash, or "" when nothing was committed.
func (p *pipeline) commit(ctx context.Context, message string) (string, error) {
	if !p.ws.cfg.Git.AutoCommit || !gitops.IsRepo(p.ws.root) {
		return "", nil
	}
	hash, err := gitops.CommitAll(ctx, p.ws.root, message, author(p.ws.cfg))
	if errors.Is(err, gitops.ErrNothingToCommit) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	log := logger.FromContext(ctx)
	log.Info().Str("commit", hash).Msg("committed workspace")
	return hash, nil
}

func printSummary(out io.Writer, s importer.Summary) {
	c := color.New(color.FgGreen)
	switch s.Outcome() {
	case importer.OutcomeEmpty, importer.OutcomePartial:
		c = color.New(color.FgYellow)
	case importer.OutcomeAllFailed:
		c = color.New(color.FgRed)
	}
	c.Fprintln(out, s.Message())

	if n := len(s.AmbiguousDates); n > 0 {
		color.New(color.FgYellow).Fprintf(out, "Note: %d dates (first at row %d) were read as month/day; check them if the file uses day/month\n",
			n, s.AmbiguousDates[0])
	}

	if len(s.Errors) == 0 {
		return
	}

	counts := s.ReasonCounts()
	reasons := make([]string, 0, len(counts))
	for r := range counts {
		reasons = append(reasons, r)
	}
	slices.Sort(reasons)
	for _, r := range reasons {
		fmt.Fprintf(out, "  %s: %d\n", r, counts[r])
	}

	for i, re := range s.Errors {
		if i == maxListedErrors {
			fmt.Fprintf(out, "  ... and %d more\n", len(s.Errors)-maxListedErrors)
			break
		}
		fmt.Fprintf(out, "  %s\n", re.Error())
	}
}

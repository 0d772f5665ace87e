package importer

import (
	"context"
	"errors"
	"fmt"

	"github.com/budgetbook/budgetbook/internal/id"
	"github.com/budgetbook/budgetbook/internal/logger"
	"github.com/budgetbook/budgetbook/internal/model"
)

var (
	// ErrNothingToImport is returned by Persist when no row was transformed.
	ErrNothingToImport = errors.New("nothing to import")
	// ErrNoUser is returned when an operation is missing the owning user ID.
	ErrNoUser = errors.New("user ID is required")
)

// Store is the record store transactions are persisted to.
type Store interface {
	ListCategories(ctx context.Context, userID string) ([]model.Category, error)
	InsertTransactions(ctx context.Context, userID, batchID string, txns []model.Transaction) error
}

// Service runs the import pipeline in two phases: Transform is pure and
// Persist writes to the store.
type Service struct {
	store   Store
	presets *Registry
}

// NewService creates an import Service. A nil presets uses DefaultRegistry.
func NewService(store Store, presets *Registry) *Service {
	if presets == nil {
		presets = DefaultRegistry()
	}
	return &Service{store: store, presets: presets}
}

// Presets returns the service's preset registry.
func (s *Service) Presets() *Registry { return s.presets }

// LoadOptions controls Load.
type LoadOptions struct {
	Delimiter rune   // 0 uses the preset's or ','
	Preset    string // optional preset name; empty auto-detects
}

// Session is a parsed file plus the mapping the user is editing.
type Session struct {
	Table   *Table
	Mapping Mapping
	Preset  string
}

// Load parses text and proposes a mapping.
func (s *Service) Load(ctx context.Context, text string, opts LoadOptions) (*Session, error) {
	log := logger.FromContext(ctx)

	var preset *Preset
	if opts.Preset != "" {
		p, ok := s.presets.Get(opts.Preset)
		if !ok {
			return nil, fmt.Errorf("unknown preset %q", opts.Preset)
		}
		preset = &p
	}

	delim := opts.Delimiter
	if delim == 0 && preset != nil {
		delim = preset.Delimiter
	}

	table, err := ParseWithOptions(text, ParseOptions{Delimiter: delim})
	if err != nil {
		return nil, fmt.Errorf("parsing file: %w", err)
	}

	sess := &Session{Table: table}
	if preset != nil {
		sess.Mapping = preset.Mapping()
		sess.Preset = preset.Name
	} else {
		sess.Mapping = AutoDetect(table.Headers)
	}

	log.Debug().
		Int("headers", len(table.Headers)).
		Int("rows", len(table.Rows)).
		Str("preset", sess.Preset).
		Str("mapping", sess.Mapping.String()).
		Msg("loaded import file")
	return sess, nil
}

// Result is the output of Transform, handed unchanged to Persist.
type Result struct {
	Transactions []model.Transaction
	Summary      Summary
}

// Transform checks the mapping, fetches the user's categories once and
// converts every row. An incomplete mapping fails before any row is read.
func (s *Service) Transform(ctx context.Context, sess *Session, userID string, override TypeOverride) (*Result, error) {
	if userID == "" {
		return nil, ErrNoUser
	}
	if err := sess.Mapping.Check(); err != nil {
		return nil, err
	}

	categories, err := s.store.ListCategories(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}

	txns, summary := Transform(sess.Table.Rows, sess.Mapping, userID, categories, override)

	log := logger.FromContext(ctx)
	for _, re := range summary.Errors {
		log.Debug().Int("row", re.RowIndex).Str("reason", re.Reason).Msg("row skipped")
	}
	log.Info().
		Int("total", summary.TotalRows).
		Int("imported", summary.Imported).
		Int("skipped", summary.Skipped).
		Msg("transformed import file")

	return &Result{Transactions: txns, Summary: summary}, nil
}

// Persist bulk-inserts the result's transactions and returns the batch ID.
func (s *Service) Persist(ctx context.Context, userID string, res *Result) (string, error) {
	if userID == "" {
		return "", ErrNoUser
	}
	if res == nil || len(res.Transactions) == 0 {
		return "", ErrNothingToImport
	}

	batchID := id.NewBatchID()
	if err := s.store.InsertTransactions(ctx, userID, batchID, res.Transactions); err != nil {
		return "", fmt.Errorf("inserting batch %s: %w", batchID, err)
	}

	log := logger.FromContext(ctx)
	log.Info().
		Str("batch_id", batchID).
		Int("count", len(res.Transactions)).
		Msg("persisted import batch")
	return batchID, nil
}

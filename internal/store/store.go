// Package store opens the record store configured for a workspace.
package store

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/budgetbook/budgetbook/internal/categories"
	"github.com/budgetbook/budgetbook/internal/config"
	"github.com/budgetbook/budgetbook/internal/importer"
	"github.com/budgetbook/budgetbook/internal/ledger"
	"github.com/budgetbook/budgetbook/internal/logger"
	"github.com/budgetbook/budgetbook/internal/model"
)

// Store is an importer.Store that can read back saved batches and holds
// resources until closed.
type Store interface {
	importer.Store
	// ListTransactions returns a user's transactions ordered by date. An
	// empty batchID returns every batch.
	ListTransactions(ctx context.Context, userID, batchID string) ([]model.StoredTransaction, error)
	io.Closer
}

// Open loads the workspace categories and opens the configured backend.
// Both backends draw categories from categories/categories.csv; the sqlite
// backend seeds its categories table from it.
func Open(ctx context.Context, root string, cfg config.StorageConfig) (Store, error) {
	cats, err := categories.Load(root)
	if err != nil {
		return nil, err
	}

	log := logger.FromContext(ctx)
	switch cfg.Backend {
	case config.BackendCSV, "":
		log.Debug().Str("backend", config.BackendCSV).Str("root", root).Msg("opening store")
		return NewCSV(root, cats), nil
	case config.BackendSQLite:
		path := cfg.SQLitePath
		if !filepath.IsAbs(path) {
			path = filepath.Join(root, path)
		}
		log.Debug().Str("backend", config.BackendSQLite).Str("path", path).Msg("opening store")
		db, err := OpenSQLite(ctx, path)
		if err != nil {
			return nil, err
		}
		if err := db.SeedCategories(ctx, cats.All()); err != nil {
			_ = db.Close()
			return nil, err
		}
		return db, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

// CSV stores transactions in the monthly ledger files of a workspace.
type CSV struct {
	categories *categories.Service
	ledger     *ledger.Service
}

// NewCSV creates a CSV store rooted at root.
func NewCSV(root string, cats *categories.Service) *CSV {
	return &CSV{
		categories: cats,
		ledger:     ledger.NewService(root, cats),
	}
}

// ListCategories returns the workspace categories.
func (s *CSV) ListCategories(ctx context.Context, userID string) ([]model.Category, error) {
	return s.categories.ListCategories(ctx, userID)
}

// InsertTransactions appends a batch to the ledger.
func (s *CSV) InsertTransactions(ctx context.Context, userID, batchID string, txns []model.Transaction) error {
	return s.ledger.InsertTransactions(ctx, userID, batchID, txns)
}

// ListTransactions reads the ledger and keeps the rows of userID, limited to
// batchID when set.
func (s *CSV) ListTransactions(_ context.Context, userID, batchID string) ([]model.StoredTransaction, error) {
	all, err := s.ledger.ReadAll()
	if err != nil {
		return nil, err
	}
	var out []model.StoredTransaction
	for _, t := range all {
		if t.UserID == userID && (batchID == "" || t.BatchID == batchID) {
			out = append(out, t)
		}
	}
	return out, nil
}

// Close is a no-op.
func (s *CSV) Close() error { return nil }

package commands

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/budgetbook/budgetbook/internal/config"
	"github.com/budgetbook/budgetbook/internal/store"
)

// workspace is an initialized budgetbook directory.
type workspace struct {
	root string
	cfg  *config.Config
}

func openWorkspace(repo string) (*workspace, error) {
	root, err := filepath.Abs(repo)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}
	cfg, err := config.Load(filepath.Join(root, config.FileName))
	if err != nil {
		return nil, fmt.Errorf("loading workspace %s (run budgetbook init first): %w", root, err)
	}
	return &workspace{root: root, cfg: cfg}, nil
}

func (w *workspace) openStore(ctx context.Context) (store.Store, error) {
	s, err := store.Open(ctx, w.root, w.cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("opening %s store: %w", w.cfg.Storage.Backend, err)
	}
	return s, nil
}

package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/budgetbook/budgetbook/internal/categories"
	"github.com/budgetbook/budgetbook/internal/config"
	"github.com/budgetbook/budgetbook/internal/gitops"
	"github.com/budgetbook/budgetbook/internal/importer"
	"github.com/budgetbook/budgetbook/internal/ledger"
	"github.com/budgetbook/budgetbook/internal/logger"
	"github.com/budgetbook/budgetbook/internal/store"
)

type initOptions struct {
	name       string
	userID     string
	backend    string
	sqlitePath string
	noGit      bool
}

func newInitCommand() *cobra.Command {
	var opts initOptions

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new budgetbook workspace",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			hash, err := runInit(cmd.Context(), absDir, opts)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if hash != "" {
				fmt.Fprintf(out, "Initialized budgetbook workspace at %s (%s)\n", absDir, hash)
			} else {
				fmt.Fprintf(out, "Initialized budgetbook workspace at %s\n", absDir)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.name, "name", "", "your name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&opts.userID, "user-id", "", "user ID stamped on imported transactions (default: random UUID)")
	cmd.Flags().StringVar(&opts.backend, "backend", config.BackendCSV, "record store: csv or sqlite")
	cmd.Flags().StringVar(&opts.sqlitePath, "sqlite-path", "budgetbook.db", "database file for the sqlite backend, relative to the workspace")
	cmd.Flags().BoolVar(&opts.noGit, "no-git", false, "do not initialize a git repository")

	return cmd
}

func runInit(ctx context.Context, dir string, opts initOptions) (string, error) {
	log := logger.FromContext(ctx)

	userID := opts.userID
	if userID == "" {
		userID = uuid.NewString()
	}
	cfg := config.Default(userID, opts.name)
	cfg.Storage.Backend = opts.backend
	if opts.backend == config.BackendSQLite {
		cfg.Storage.SQLitePath = opts.sqlitePath
	}
	if opts.noGit {
		cfg.Git.AutoCommit = false
	}
	if err := cfg.Validate(); err != nil {
		return "", err
	}

	dirs := []string{
		filepath.Dir(categories.RelPath),
		ledger.Dir,
		"logs",
		importer.InboxDir,
		importer.ProcessedDir,
	}
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return "", fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	if err := config.Save(filepath.Join(dir, config.FileName), cfg); err != nil {
		return "", fmt.Errorf("writing config: %w", err)
	}

	if err := categories.NewService(categories.DefaultCategories()).Save(dir); err != nil {
		return "", fmt.Errorf("writing categories: %w", err)
	}

	if cfg.Storage.Backend == config.BackendSQLite {
		s, err := store.Open(ctx, dir, cfg.Storage)
		if err != nil {
			return "", fmt.Errorf("creating database: %w", err)
		}
		if err := s.Close(); err != nil {
			return "", fmt.Errorf("closing database: %w", err)
		}
	}

	gitignore := "*.db-journal\n*.db-wal\n*.db-shm\n"
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(gitignore), 0o644); err != nil {
		return "", fmt.Errorf("writing .gitignore: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, importer.InboxDir, ".gitkeep"), []byte{}, 0o644); err != nil {
		return "", fmt.Errorf("writing .gitkeep: %w", err)
	}

	log.Info().Str("dir", dir).Str("backend", cfg.Storage.Backend).Str("user_id", userID).Msg("workspace created")

	if opts.noGit {
		return "", nil
	}
	if !gitops.Available() {
		log.Warn().Msg("git not found; skipping repository init")
		return "", nil
	}
	if err := gitops.Init(ctx, dir); err != nil {
		return "", err
	}
	hash, err := gitops.CommitAll(ctx, dir, "init: Initialize budget for "+opts.name, author(cfg))
	if err != nil {
		return "", fmt.Errorf("initial commit: %w", err)
	}
	return hash, nil
}

func author(cfg *config.Config) gitops.Author {
	return gitops.Author{Name: cfg.Git.AuthorName, Email: cfg.Git.AuthorEmail}
}

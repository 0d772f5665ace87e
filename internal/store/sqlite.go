package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/budgetbook/budgetbook/internal/id"
	"github.com/budgetbook/budgetbook/internal/model"
)

const schema = `
CREATE TABLE IF NOT EXISTS categories (
	id   TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	kind TEXT NOT NULL CHECK (kind IN ('expense', 'income'))
);
CREATE TABLE IF NOT EXISTS transactions (
	id          TEXT PRIMARY KEY,
	user_id     TEXT NOT NULL,
	batch_id    TEXT NOT NULL,
	date        TEXT NOT NULL,
	amount      TEXT NOT NULL,
	is_expense  INTEGER NOT NULL,
	description TEXT NOT NULL,
	account     TEXT,
	category_id TEXT REFERENCES categories(id)
);
CREATE INDEX IF NOT EXISTS transactions_user_date ON transactions (user_id, date);
CREATE INDEX IF NOT EXISTS transactions_batch ON transactions (batch_id);
`

// SQLite stores categories and transactions in a SQLite database.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the database at path and ensures the schema exists.
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

// Close closes the database.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// SeedCategories inserts categories that are not already present.
func (s *SQLite) SeedCategories(ctx context.Context, cats []model.Category) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO categories (id, name, kind) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare category insert: %w", err)
	}
	defer stmt.Close()

	for _, c := range cats {
		if _, err := stmt.ExecContext(ctx, c.ID, c.Name, string(c.Kind)); err != nil {
			return fmt.Errorf("insert category %s: %w", c.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit categories: %w", err)
	}
	return nil
}

// ListCategories returns all categories in insertion order. Categories are
// shared by every user of the database.
func (s *SQLite) ListCategories(ctx context.Context, _ string) ([]model.Category, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, kind FROM categories ORDER BY rowid ASC`)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	var out []model.Category
	for rows.Next() {
		var c model.Category
		var kind string
		if err := rows.Scan(&c.ID, &c.Name, &kind); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		c.Kind = model.CategoryKind(kind)
		out = append(out, c)
	}
	return out, rows.Err()
}

// InsertTransactions inserts a batch inside one SQL transaction. Either every
// row is written or none is.
func (s *SQLite) InsertTransactions(ctx context.Context, userID, batchID string, txns []model.Transaction) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO transactions
			(id, user_id, batch_id, date, amount, is_expense, description, account, category_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare transaction insert: %w", err)
	}
	defer stmt.Close()

	for i, txn := range txns {
		if txn.UserID != userID {
			return fmt.Errorf("transaction %d belongs to %q, not %q", i, txn.UserID, userID)
		}
		if txn.Amount.IsNegative() {
			return fmt.Errorf("transaction %d: amount %s is negative", i, txn.Amount)
		}
		_, err := stmt.ExecContext(ctx,
			id.NewTransactionID(),
			userID,
			batchID,
			txn.Date,
			txn.Amount.String(),
			txn.IsExpense,
			txn.Description,
			nullable(txn.Account),
			nullable(txn.CategoryID),
		)
		if err != nil {
			return fmt.Errorf("insert transaction %d: %w", i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit batch %s: %w", batchID, err)
	}
	return nil
}

// ListTransactions returns a user's transactions ordered by date then
// insertion. An empty batchID returns every batch.
func (s *SQLite) ListTransactions(ctx context.Context, userID, batchID string) ([]model.StoredTransaction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, batch_id, date, amount, is_expense, description, account, category_id, user_id
		FROM transactions
		WHERE user_id = ? AND (? = '' OR batch_id = ?)
		ORDER BY date ASC, rowid ASC`, userID, batchID, batchID)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var out []model.StoredTransaction
	for rows.Next() {
		var (
			t                 model.StoredTransaction
			account, category sql.NullString
		)
		if err := rows.Scan(&t.ID, &t.BatchID, &t.Date, &t.Amount, &t.IsExpense, &t.Description, &account, &category, &t.UserID); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		t.Account = fromNullable(account)
		t.CategoryID = fromNullable(category)
		out = append(out, t)
	}
	return out, rows.Err()
}

func nullable(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func fromNullable(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}

package ledger

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/budgetbook/budgetbook/internal/id"
	"github.com/budgetbook/budgetbook/internal/model"
)

// Dir is the ledger directory inside a workspace.
const Dir = "ledger"

// Service stores transactions in monthly CSV files under
// <root>/ledger/YYYY/MM/transactions.csv.
type Service struct {
	root       string
	categories CategoryChecker
}

// NewService creates a ledger Service. categories may be nil to skip
// category checks.
func NewService(root string, categories CategoryChecker) *Service {
	return &Service{root: root, categories: categories}
}

type monthKey struct{ year, month int }

// InsertTransactions validates and appends a batch. Transactions are
// assigned fresh IDs and stamped with batchID. Nothing is written if any
// month fails validation.
func (s *Service) InsertTransactions(ctx context.Context, userID, batchID string, txns []model.Transaction) error {
	byMonth := make(map[monthKey][]model.StoredTransaction)
	var months []monthKey
	for i, txn := range txns {
		if txn.UserID != userID {
			return fmt.Errorf("transaction %d belongs to %q, not %q", i, txn.UserID, userID)
		}
		d, err := time.Parse(model.DateFormat, txn.Date)
		if err != nil {
			return fmt.Errorf("transaction %d: invalid date %q", i, txn.Date)
		}
		k := monthKey{d.Year(), int(d.Month())}
		if _, ok := byMonth[k]; !ok {
			months = append(months, k)
		}
		byMonth[k] = append(byMonth[k], model.StoredTransaction{
			ID:          id.NewTransactionID(),
			BatchID:     batchID,
			Transaction: txn,
		})
	}
	slices.SortFunc(months, func(a, b monthKey) int {
		if a.year != b.year {
			return a.year - b.year
		}
		return a.month - b.month
	})

	// Validate every month before writing any.
	for _, k := range months {
		existing, err := s.ReadMonth(k.year, k.month)
		if err != nil {
			return err
		}
		all := append(existing, byMonth[k]...)
		if verrs := ValidateTransactions(all, s.categories, "", k.year, k.month); len(verrs) > 0 {
			msgs := make([]string, len(verrs))
			for i, ve := range verrs {
				msgs[i] = ve.Error()
			}
			return fmt.Errorf("validation failed: %s", strings.Join(msgs, "; "))
		}
	}

	for _, k := range months {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.appendMonth(k.year, k.month, byMonth[k]); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) appendMonth(year, month int, rows []model.StoredTransaction) error {
	path := s.monthPath(year, month)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating ledger dir: %w", err)
	}

	isNew := false
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		isNew = true
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening ledger: %w", err)
	}
	defer f.Close()

	if isNew {
		err = WriteTransactions(f, rows)
	} else {
		err = AppendTransactions(f, rows)
	}
	if err != nil {
		return fmt.Errorf("appending to %s: %w", path, err)
	}
	return nil
}

// ReadMonth reads all transactions for a given year/month.
func (s *Service) ReadMonth(year, month int) ([]model.StoredTransaction, error) {
	path := s.monthPath(year, month)
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening ledger %s: %w", path, err)
	}
	defer f.Close()

	txns, err := ReadTransactions(f)
	if err != nil {
		return nil, fmt.Errorf("reading ledger %s: %w", path, err)
	}
	return txns, nil
}

// ReadAll reads every month in the ledger, ordered by date. Rows sharing a
// date keep their file order.
func (s *Service) ReadAll() ([]model.StoredTransaction, error) {
	paths, err := filepath.Glob(filepath.Join(s.root, Dir, "*", "*", "transactions.csv"))
	if err != nil {
		return nil, err
	}
	var all []model.StoredTransaction
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening ledger %s: %w", path, err)
		}
		txns, err := ReadTransactions(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("reading ledger %s: %w", path, err)
		}
		all = append(all, txns...)
	}
	slices.SortStableFunc(all, func(a, b model.StoredTransaction) int {
		return strings.Compare(a.Date, b.Date)
	})
	return all, nil
}

func (s *Service) monthPath(year, month int) string {
	return filepath.Join(s.root, Dir, fmt.Sprintf("%04d", year), fmt.Sprintf("%02d", month), "transactions.csv")
}

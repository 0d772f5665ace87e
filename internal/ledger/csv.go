package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/budgetbook/budgetbook/internal/model"
)

// Header is the CSV header for transactions.csv.
var Header = []string{"id", "user_id", "batch_id", "date", "amount", "is_expense", "description", "account", "category_id"}

const (
	numFields   = 9
	colID       = 0
	colUserID   = 1
	colBatchID  = 2
	colDate     = 3
	colAmount   = 4
	colExpense  = 5
	colDesc     = 6
	colAccount  = 7
	colCategory = 8
)

// ReadTransactions reads all rows from a transactions.csv reader.
func ReadTransactions(r io.Reader) ([]model.StoredTransaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading ledger CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var txns []model.StoredTransaction
	for i, rec := range records[1:] {
		txn, err := UnmarshalTransaction(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		txns = append(txns, txn)
	}
	return txns, nil
}

// WriteTransactions writes a header and txns.
func WriteTransactions(w io.Writer, txns []model.StoredTransaction) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	return appendTo(cw, txns)
}

// AppendTransactions writes txns without a header.
func AppendTransactions(w io.Writer, txns []model.StoredTransaction) error {
	return appendTo(csv.NewWriter(w), txns)
}

func appendTo(cw *csv.Writer, txns []model.StoredTransaction) error {
	for i, txn := range txns {
		if err := cw.Write(MarshalTransaction(txn)); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalTransaction converts a StoredTransaction to a CSV row.
func MarshalTransaction(txn model.StoredTransaction) []string {
	row := make([]string, numFields)
	row[colID] = txn.ID
	row[colUserID] = txn.UserID
	row[colBatchID] = txn.BatchID
	row[colDate] = txn.Date
	row[colAmount] = txn.Amount.StringFixed(2)
	if txn.Amount.Exponent() < -2 {
		row[colAmount] = txn.Amount.String()
	}
	row[colExpense] = strconv.FormatBool(txn.IsExpense)
	row[colDesc] = txn.Description
	if txn.Account != nil {
		row[colAccount] = *txn.Account
	}
	if txn.CategoryID != nil {
		row[colCategory] = *txn.CategoryID
	}
	return row
}

// UnmarshalTransaction converts a CSV row to a StoredTransaction.
func UnmarshalTransaction(record []string) (model.StoredTransaction, error) {
	if len(record) != numFields {
		return model.StoredTransaction{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	amount, err := decimal.NewFromString(record[colAmount])
	if err != nil {
		return model.StoredTransaction{}, fmt.Errorf("parsing amount %q: %w", record[colAmount], err)
	}

	isExpense, err := strconv.ParseBool(record[colExpense])
	if err != nil {
		return model.StoredTransaction{}, fmt.Errorf("parsing is_expense %q: %w", record[colExpense], err)
	}

	return model.StoredTransaction{
		ID:      record[colID],
		BatchID: record[colBatchID],
		Transaction: model.Transaction{
			Amount:      amount,
			IsExpense:   isExpense,
			Date:        record[colDate],
			Description: record[colDesc],
			Account:     optional(record[colAccount]),
			CategoryID:  optional(record[colCategory]),
			UserID:      record[colUserID],
		},
	}, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

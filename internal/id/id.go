package id

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// categoryNamespace scopes name-derived category IDs.
var categoryNamespace = uuid.MustParse("5b0f3a4e-8f0c-4c57-9a43-1f1f2d7c8e10")

// NewTransactionID returns a random transaction ID like "txn_<uuid>".
func NewTransactionID() string {
	return "txn_" + uuid.NewString()
}

// NewBatchID returns a random import batch ID like "imp_<uuid>".
func NewBatchID() string {
	return "imp_" + uuid.NewString()
}

// CategoryID derives a stable category ID from a category name.
// Names differing only in case or surrounding space share an ID.
func CategoryID(name string) string {
	key := strings.ToLower(strings.TrimSpace(name))
	return "cat_" + uuid.NewSHA1(categoryNamespace, []byte(key)).String()
}

// Kind returns the prefix of an ID ("txn", "imp", "cat").
func Kind(id string) (string, error) {
	prefix, rest, ok := strings.Cut(id, "_")
	if !ok {
		return "", fmt.Errorf("invalid ID format: %q", id)
	}
	if _, err := uuid.Parse(rest); err != nil {
		return "", fmt.Errorf("invalid uuid in ID %q: %w", id, err)
	}
	return prefix, nil
}

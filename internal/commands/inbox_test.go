package commands_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/budgetbook/budgetbook/internal/ledger"
)

func TestInbox_ImportsAndMoves(t *testing.T) {
	dir := newWorkspace(t)
	copyFile(t, chaseCSV, filepath.Join(dir, "import", "chase_checking.csv"))
	writeFile(t, filepath.Join(dir, "import", "broken.csv"), "Date,Amount\n2024-01-01,abc\n")

	out, err := runBudgetbook(t, "inbox", "--repo", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 files failed")
	assert.Contains(t, out, "==> broken.csv")
	assert.Contains(t, out, "==> chase_checking.csv")
	assert.Contains(t, out, "Imported 6 of 6 rows")

	_, err = os.Stat(filepath.Join(dir, "import", "processed", "chase_checking.csv"))
	assert.NoError(t, err, "imported file moves to processed/")
	_, err = os.Stat(filepath.Join(dir, "import", "broken.csv"))
	assert.NoError(t, err, "failed file stays in import/")

	txns, err := ledger.NewService(dir, nil).ReadMonth(2025, 1)
	require.NoError(t, err)
	assert.Len(t, txns, 6)
}

func TestInbox_DryRunLeavesFiles(t *testing.T) {
	dir := newWorkspace(t)
	copyFile(t, chaseCSV, filepath.Join(dir, "import", "chase_checking.csv"))

	_, err := runBudgetbook(t, "inbox", "--repo", dir, "--dry-run")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "import", "chase_checking.csv"))
	assert.NoError(t, err)
}

func TestInbox_Empty(t *testing.T) {
	dir := newWorkspace(t)

	out, err := runBudgetbook(t, "inbox", "--repo", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "No files in import/")
}

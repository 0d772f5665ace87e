package commands_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreview_AutoDetect(t *testing.T) {
	dir := newWorkspace(t)

	out, err := runBudgetbook(t, "preview", chaseCSV, "--repo", dir, "--rows", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "chase_checking.csv: 6 rows, 7 columns")
	assert.Contains(t, out, "Posting Date")
	assert.Contains(t, out, `Columns match preset "chase"`)
	assert.Contains(t, out, "Mapping complete")
	assert.Contains(t, out, "First 2 rows:")
	assert.Contains(t, out, "GITHUB *PRO SUBSCRIPTION")
	assert.NotContains(t, out, "STAPLES", "only the requested rows are shown")
}

func TestPreview_Preset(t *testing.T) {
	dir := newWorkspace(t)

	out, err := runBudgetbook(t, "preview", chaseCSV, "--repo", dir, "--preset", "Chase")
	require.NoError(t, err)
	assert.Contains(t, out, "Preset: chase")
}

func TestPreview_UnknownPreset(t *testing.T) {
	dir := newWorkspace(t)
	_, err := runBudgetbook(t, "preview", chaseCSV, "--repo", dir, "--preset", "nope")
	assert.ErrorContains(t, err, `unknown preset "nope"`)
}

func TestPreview_MissingFields(t *testing.T) {
	dir := newWorkspace(t)
	path := writeFile(t, filepath.Join(t.TempDir(), "odd.csv"), "When,How Much\n2024-01-01,5\n")

	out, err := runBudgetbook(t, "preview", path, "--repo", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Missing required fields: amount, date")
}

func TestPreview_MalformedCSV(t *testing.T) {
	dir := newWorkspace(t)
	path := writeFile(t, filepath.Join(t.TempDir(), "broken.csv"), "Date,Amount\n\"2024-01-01,5\n")

	_, err := runBudgetbook(t, "preview", path, "--repo", dir, "--delimiter", ",")
	assert.ErrorContains(t, err, "malformed CSV")
}

func TestFields(t *testing.T) {
	out, err := runBudgetbook(t, "fields")
	require.NoError(t, err)
	for _, f := range []string{"amount", "date", "description", "account", "category", "type"} {
		assert.Contains(t, out, f)
	}
	assert.Contains(t, out, "yes")
}

func TestCategories(t *testing.T) {
	dir := newWorkspace(t)

	out, err := runBudgetbook(t, "categories", "--repo", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Groceries")
	assert.Contains(t, out, "income")
}

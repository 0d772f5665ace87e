package commands_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/budgetbook/budgetbook/internal/commands"
)

const (
	chaseCSV  = "../../testdata/chase_checking.csv"
	budgetCSV = "../../testdata/budget_export.csv"
)

// runBudgetbook executes the CLI in-process and returns its stdout.
func runBudgetbook(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := commands.NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--no-color", "--log-level", "warn"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

// newWorkspace initializes a workspace without git.
func newWorkspace(t *testing.T, extra ...string) string {
	t.Helper()
	dir := t.TempDir()
	args := append([]string{"init", dir, "--name", "Pat", "--user-id", "user-1", "--no-git"}, extra...)
	_, err := runBudgetbook(t, args...)
	require.NoError(t, err)
	return dir
}

func writeFile(t *testing.T, path, contents string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func copyFile(t *testing.T, src, dst string) {
	t.Helper()
	data, err := os.ReadFile(src)
	require.NoError(t, err)
	writeFile(t, dst, string(data))
}

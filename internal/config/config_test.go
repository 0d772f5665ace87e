package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default("user-1", "Pat")
	cfg.Storage = StorageConfig{Backend: BackendSQLite, SQLitePath: "budget.db"}
	cfg.Import.TypeOverride = "expense"

	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestDefaults(t *testing.T) {
	cfg := Default("user-1", "Pat")

	assert.Equal(t, "user-1", cfg.User.ID)
	assert.Equal(t, "Pat", cfg.User.Name)
	assert.Equal(t, BackendCSV, cfg.Storage.Backend)
	assert.Equal(t, "auto", cfg.Import.Delimiter)
	assert.Equal(t, 10, cfg.Import.PreviewRows)
	assert.False(t, cfg.Import.AllowPartial)
	assert.True(t, cfg.Git.AutoCommit)
	assert.Equal(t, "Budgetbook", cfg.Git.AuthorName)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.NoError(t, cfg.Validate())
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("user:\n  id: \"\"\nstorage:\n  backend: mongo\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "user.id is required")
	assert.Contains(t, err.Error(), `storage.backend "mongo"`)
}

func TestYAMLFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Save(path, Default("user-1", "Pat")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "id: user-1")
	assert.Contains(t, contents, "backend: csv")
	assert.Contains(t, contents, "auto_commit: true")
	assert.NotContains(t, contents, "sqlite_path")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"sqlite without path", func(c *Config) { c.Storage.Backend = BackendSQLite }, "sqlite_path is required"},
		{"bad delimiter", func(c *Config) { c.Import.Delimiter = "|" }, "import.delimiter"},
		{"negative preview", func(c *Config) { c.Import.PreviewRows = -1 }, "preview_rows"},
		{"bad override", func(c *Config) { c.Import.TypeOverride = "transfer" }, "type_override"},
		{"ok", func(c *Config) { c.Import.TypeOverride = "Income" }, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default("user-1", "Pat")
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestParseDelimiter(t *testing.T) {
	tests := []struct {
		in   string
		want rune
	}{
		{"", 0},
		{"auto", 0},
		{",", ','},
		{";", ';'},
		{"\t", '\t'},
		{`\t`, '\t'},
		{"TAB", '\t'},
	}
	for _, tt := range tests {
		got, err := ParseDelimiter(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseDelimiter("|")
	assert.Error(t, err)
}

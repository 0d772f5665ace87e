package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileName is the workspace configuration file.
const FileName = "budgetbook.yaml"

// Storage backends.
const (
	BackendCSV    = "csv"
	BackendSQLite = "sqlite"
)

// Config represents the top-level budgetbook.yaml configuration.
type Config struct {
	User    UserConfig    `yaml:"user"`
	Storage StorageConfig `yaml:"storage"`
	Import  ImportConfig  `yaml:"import"`
	Git     GitConfig     `yaml:"git"`
	Log     LogConfig     `yaml:"log"`
}

// UserConfig identifies the user that imported transactions belong to.
type UserConfig struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

// StorageConfig selects the record store.
type StorageConfig struct {
	Backend    string `yaml:"backend"`               // csv or sqlite
	SQLitePath string `yaml:"sqlite_path,omitempty"` // relative to the workspace root
}

// ImportConfig holds defaults for the import command.
type ImportConfig struct {
	Delimiter    string `yaml:"delimiter"` // ",", ";", "\t" or "auto"
	PreviewRows  int    `yaml:"preview_rows"`
	TypeOverride string `yaml:"type_override,omitempty"` // expense or income
	AllowPartial bool   `yaml:"allow_partial"`
}

// GitConfig controls git integration.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads a budgetbook.yaml file from disk and validates it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new workspace.
func Default(userID, userName string) *Config {
	return &Config{
		User: UserConfig{
			ID:   userID,
			Name: userName,
		},
		Storage: StorageConfig{
			Backend: BackendCSV,
		},
		Import: ImportConfig{
			Delimiter:   "auto",
			PreviewRows: 10,
		},
		Git: GitConfig{
			AutoCommit:  true,
			AuthorName:  "Budgetbook",
			AuthorEmail: "import@budgetbook.local",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// DelimiterRune returns the configured delimiter rune, or 0 for auto-detection.
func (c ImportConfig) DelimiterRune() (rune, error) {
	return ParseDelimiter(c.Delimiter)
}

// ParseDelimiter accepts "", "auto", ",", ";", "\t" (or "tab").
func ParseDelimiter(s string) (rune, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return 0, nil
	case ",", "comma":
		return ',', nil
	case ";", "semicolon":
		return ';', nil
	case "\t", `\t`, "tab":
		return '\t', nil
	}
	return 0, fmt.Errorf("unsupported delimiter %q", s)
}

// Validate checks the configuration for values the commands cannot use.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.User.ID) == "" {
		errs = append(errs, errors.New("user.id is required"))
	}
	switch c.Storage.Backend {
	case BackendCSV:
	case BackendSQLite:
		if c.Storage.SQLitePath == "" {
			errs = append(errs, errors.New("storage.sqlite_path is required for the sqlite backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("storage.backend %q: want csv or sqlite", c.Storage.Backend))
	}
	if _, err := c.Import.DelimiterRune(); err != nil {
		errs = append(errs, fmt.Errorf("import.delimiter: %w", err))
	}
	if c.Import.PreviewRows < 0 {
		errs = append(errs, errors.New("import.preview_rows must not be negative"))
	}
	switch strings.ToLower(c.Import.TypeOverride) {
	case "", "none", "expense", "income":
	default:
		errs = append(errs, fmt.Errorf("import.type_override %q: want expense or income", c.Import.TypeOverride))
	}
	return errors.Join(errs...)
}

package file

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/dbtasks/internal/core/domain"
	"github.com/custodia-labs/dbtasks/internal/core/ports/driven"
)

// DefaultFileName is the configuration file looked up in the working directory.
const DefaultFileName = "dbtasks.toml"

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// fileConfig mirrors the TOML layout of the configuration file.
type fileConfig struct {
	Root               string                     `toml:"root,omitempty"`
	DefaultEnvironment string                     `toml:"default_environment,omitempty"`
	Tools              toolsSection               `toml:"tools"`
	Schema             schemaSection              `toml:"schema"`
	Databases          map[string]databaseSection `toml:"databases"`
}

type toolsSection struct {
	SQLite3            string   `toml:"sqlite3,omitempty"`
	StructureDumpFlags []string `toml:"structure_dump_flags"`
	StructureLoadFlags []string `toml:"structure_load_flags"`
}

type schemaSection struct {
	IgnoreTables []string `toml:"ignore_tables"`
}

type databaseSection struct {
	Database string `toml:"database"`
}

// ConfigStore is a file-based implementation of driven.ConfigStore using TOML.
// Environment overrides are applied on top of the file contents.
type ConfigStore struct {
	filePath  string
	overrides Overrides
}

// NewConfigStore creates a TOML config store for filePath.
// If filePath is empty, defaults to dbtasks.toml in the working directory.
func NewConfigStore(filePath string, overrides Overrides) *ConfigStore {
	if filePath == "" {
		filePath = DefaultFileName
	}
	return &ConfigStore{
		filePath:  filePath,
		overrides: overrides,
	}
}

// Load reads the TOML file and builds the tasks configuration.
// Unknown keys are rejected.
func (s *ConfigStore) Load() (*domain.TasksConfig, error) {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config file %s: %w", s.filePath, domain.ErrNotFound)
		}
		return nil, err
	}

	var fc fileConfig
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&fc); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return nil, fmt.Errorf("%w: %s: %s", domain.ErrInvalidInput, s.filePath, strict.String())
		}
		return nil, fmt.Errorf("parsing %s: %w", s.filePath, err)
	}

	return s.build(fc)
}

func (s *ConfigStore) build(fc fileConfig) (*domain.TasksConfig, error) {
	root, err := s.resolveRoot(fc.Root)
	if err != nil {
		return nil, err
	}

	patterns, err := domain.ParseTablePatterns(fc.Schema.IgnoreTables)
	if err != nil {
		return nil, fmt.Errorf("schema.ignore_tables: %w", err)
	}

	cfg := &domain.TasksConfig{
		Root:               root,
		DefaultEnvironment: fc.DefaultEnvironment,
		Tools: domain.ToolSettings{
			SQLite3:            fc.Tools.SQLite3,
			IgnoreTables:       patterns,
			StructureDumpFlags: fc.Tools.StructureDumpFlags,
			StructureLoadFlags: fc.Tools.StructureLoadFlags,
		},
		Databases: make(map[string]domain.DatabaseConfig, len(fc.Databases)),
	}
	if cfg.DefaultEnvironment == "" {
		cfg.DefaultEnvironment = domain.DefaultEnvironment
	}
	if s.overrides.Environment != "" {
		cfg.DefaultEnvironment = s.overrides.Environment
	}
	if s.overrides.SQLite3 != "" {
		cfg.Tools.SQLite3 = s.overrides.SQLite3
	}

	for env, section := range fc.Databases {
		cfg.Databases[env] = domain.DatabaseConfig{
			Environment: env,
			Database:    section.Database,
			Root:        root,
		}
	}
	return cfg, nil
}

// resolveRoot applies the override and anchors relative roots at the config file's directory.
func (s *ConfigStore) resolveRoot(root string) (string, error) {
	if s.overrides.Root != "" {
		root = s.overrides.Root
	}
	if root == "" {
		root = "."
	}
	if !filepath.IsAbs(root) {
		root = filepath.Join(filepath.Dir(s.filePath), root)
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolving root %s: %w", root, err)
	}
	return abs, nil
}

// Path returns the configuration file path.
func (s *ConfigStore) Path() string {
	return s.filePath
}

// WriteDefault writes a starter configuration to filePath.
// Returns domain.ErrAlreadyExists if the file is present.
func WriteDefault(filePath string) error {
	if _, err := os.Stat(filePath); err == nil {
		return fmt.Errorf("%s: %w", filePath, domain.ErrAlreadyExists)
	}

	fc := fileConfig{
		Root:               ".",
		DefaultEnvironment: domain.DefaultEnvironment,
		Tools: toolsSection{
			SQLite3:            domain.DefaultSQLite3,
			StructureDumpFlags: []string{},
			StructureLoadFlags: []string{},
		},
		Schema: schemaSection{
			IgnoreTables: []string{},
		},
		Databases: map[string]databaseSection{
			"development": {Database: "db/development.sqlite3"},
			"test":        {Database: "db/test.sqlite3"},
		},
	}

	data, err := toml.Marshal(fc)
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, data, 0o644)
}

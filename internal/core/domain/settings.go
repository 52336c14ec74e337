package domain

import (
	"fmt"
	"sort"
)

// DefaultSQLite3 is the executable used for schema dump and load.
const DefaultSQLite3 = "sqlite3"

// DefaultEnvironment is used when no environment is selected.
const DefaultEnvironment = "development"

// ToolSettings configures the external sqlite3 tool.
type ToolSettings struct {
	// SQLite3 is the executable name or path.
	SQLite3 string

	// IgnoreTables lists patterns of tables left out of schema dumps.
	IgnoreTables []TablePattern

	// StructureDumpFlags are passed before any caller-supplied dump flags.
	StructureDumpFlags []string

	// StructureLoadFlags are passed before any caller-supplied load flags.
	StructureLoadFlags []string
}

// DefaultToolSettings returns settings with the stock sqlite3 executable.
func DefaultToolSettings() ToolSettings {
	return ToolSettings{SQLite3: DefaultSQLite3}
}

// Executable returns the configured sqlite3 executable, falling back to the default.
func (s ToolSettings) Executable() string {
	if s.SQLite3 == "" {
		return DefaultSQLite3
	}
	return s.SQLite3
}

// TasksConfig is the full set of configured databases.
type TasksConfig struct {
	// Root is the directory relative database paths are resolved against.
	Root string

	// DefaultEnvironment is used when the caller selects none.
	DefaultEnvironment string

	// Tools configures the external sqlite3 tool.
	Tools ToolSettings

	// Databases maps environment names to database configurations.
	Databases map[string]DatabaseConfig
}

// Environments returns the configured environment names in sorted order.
func (c *TasksConfig) Environments() []string {
	names := make([]string, 0, len(c.Databases))
	for name := range c.Databases {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Database returns the configuration for env, falling back to the default environment.
func (c *TasksConfig) Database(env string) (DatabaseConfig, error) {
	if env == "" {
		env = c.DefaultEnvironment
	}
	if env == "" {
		env = DefaultEnvironment
	}
	cfg, ok := c.Databases[env]
	if !ok {
		return DatabaseConfig{}, fmt.Errorf("%w: %s", ErrUnknownEnvironment, env)
	}
	return cfg, nil
}

// Validate checks every configured database.
func (c *TasksConfig) Validate() error {
	for _, name := range c.Environments() {
		if err := c.Databases[name].Validate(); err != nil {
			return fmt.Errorf("environment %s: %w", name, err)
		}
	}
	return nil
}

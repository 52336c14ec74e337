package domain

import (
	"fmt"
	"path/filepath"
	"strings"
)

// MemoryDatabase is the identifier of an in-memory SQLite database.
const MemoryDatabase = ":memory:"

// DatabaseConfig identifies one SQLite database.
// It is immutable once handed to a task adapter.
type DatabaseConfig struct {
	// Environment is the name the database is configured under (e.g. "test").
	Environment string

	// Database is the file path as written in configuration.
	Database string

	// Root is the directory relative database paths are resolved against.
	Root string
}

// Path returns the database file path.
// Absolute paths are used as-is; relative paths are joined with Root.
func (c DatabaseConfig) Path() string {
	if c.IsMemory() || filepath.IsAbs(c.Database) || c.Root == "" {
		return c.Database
	}
	return filepath.Join(c.Root, c.Database)
}

// IsMemory reports whether the configuration names an in-memory database.
func (c DatabaseConfig) IsMemory() bool {
	return c.Database == MemoryDatabase || strings.Contains(c.Database, "mode=memory")
}

// Validate checks the configuration is usable.
func (c DatabaseConfig) Validate() error {
	if strings.TrimSpace(c.Database) == "" {
		return fmt.Errorf("%w: database path is required", ErrInvalidInput)
	}
	return nil
}

// String returns a human-readable description.
func (c DatabaseConfig) String() string {
	if c.Environment == "" {
		return c.Path()
	}
	return fmt.Sprintf("%s (%s)", c.Path(), c.Environment)
}

package driven

import "github.com/custodia-labs/dbtasks/internal/core/domain"

// ConfigStore provides access to the configured databases.
// Implementations handle persistence (e.g., TOML files) and overrides.
type ConfigStore interface {
	// Load reads and validates the tasks configuration.
	Load() (*domain.TasksConfig, error)

	// Path returns the configuration file path.
	// Returns empty string for stores not backed by a file.
	Path() string
}

package memory

import (
	"maps"
	"slices"
	"sync"

	"github.com/custodia-labs/dbtasks/internal/core/domain"
	"github.com/custodia-labs/dbtasks/internal/core/ports/driven"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// ConfigStore is an in-memory implementation of driven.ConfigStore for testing.
type ConfigStore struct {
	mu     sync.RWMutex
	config domain.TasksConfig
}

// NewConfigStore creates a new in-memory config store with no databases.
func NewConfigStore() *ConfigStore {
	return &ConfigStore{
		config: domain.TasksConfig{
			DefaultEnvironment: domain.DefaultEnvironment,
			Tools:              domain.DefaultToolSettings(),
			Databases:          make(map[string]domain.DatabaseConfig),
		},
	}
}

// SetRoot sets the root directory and re-roots every configured database.
func (s *ConfigStore) SetRoot(root string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config.Root = root
	for env, db := range s.config.Databases {
		db.Root = root
		s.config.Databases[env] = db
	}
}

// SetDefaultEnvironment sets the environment used when none is selected.
func (s *ConfigStore) SetDefaultEnvironment(env string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config.DefaultEnvironment = env
}

// SetTools replaces the tool settings.
func (s *ConfigStore) SetTools(tools domain.ToolSettings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config.Tools = tools
}

// AddDatabase configures database for env.
func (s *ConfigStore) AddDatabase(env, database string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config.Databases[env] = domain.DatabaseConfig{
		Environment: env,
		Database:    database,
		Root:        s.config.Root,
	}
}

// Load returns a copy of the stored configuration.
func (s *ConfigStore) Load() (*domain.TasksConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cfg := s.config
	cfg.Databases = maps.Clone(s.config.Databases)
	cfg.Tools.IgnoreTables = slices.Clone(s.config.Tools.IgnoreTables)
	cfg.Tools.StructureDumpFlags = slices.Clone(s.config.Tools.StructureDumpFlags)
	cfg.Tools.StructureLoadFlags = slices.Clone(s.config.Tools.StructureLoadFlags)
	return &cfg, nil
}

// Path returns the configuration file path.
func (s *ConfigStore) Path() string {
	return ":memory:"
}

package services

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/custodia-labs/dbtasks/internal/core/domain"
	"github.com/custodia-labs/dbtasks/internal/core/ports/driven"
	"github.com/custodia-labs/dbtasks/internal/core/ports/driving"
)

// Ensure Workspace implements the interface.
var _ driving.Workspace = (*Workspace)(nil)

// HandlerFactory creates a connection handler for one database.
type HandlerFactory func() driven.ConnectionHandler

// Workspace binds configured environments to their lifecycle tasks.
// Each environment gets its own connection handler; all share one command runner.
type Workspace struct {
	config     *domain.TasksConfig
	newHandler HandlerFactory
	runner     driven.CommandRunner

	mu       sync.Mutex
	handlers map[string]driven.ConnectionHandler
}

// NewWorkspace loads the configuration from store.
func NewWorkspace(
	store driven.ConfigStore,
	newHandler HandlerFactory,
	runner driven.CommandRunner,
) (*Workspace, error) {
	cfg, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", store.Path(), err)
	}
	return &Workspace{
		config:     cfg,
		newHandler: newHandler,
		runner:     runner,
		handlers:   make(map[string]driven.ConnectionHandler),
	}, nil
}

// Environments returns the configured environment names, sorted.
func (w *Workspace) Environments() []string {
	return w.config.Environments()
}

// DefaultEnvironment returns the environment used when none is given.
func (w *Workspace) DefaultEnvironment() string {
	if w.config.DefaultEnvironment == "" {
		return domain.DefaultEnvironment
	}
	return w.config.DefaultEnvironment
}

// Root returns the directory relative paths are resolved against.
func (w *Workspace) Root() string {
	return w.config.Root
}

// Tasks returns the lifecycle tasks for env.
// Environments naming the same database share its connection handler.
func (w *Workspace) Tasks(env string) (driving.DatabaseTasks, error) {
	cfg, err := w.config.Database(env)
	if err != nil {
		return nil, err
	}
	return NewSQLiteTasks(cfg, w.handler(cfg.Path()), w.runner, w.config.Tools), nil
}

// handler returns the connection handler for the database at path.
func (w *Workspace) handler(path string) driven.ConnectionHandler {
	w.mu.Lock()
	defer w.mu.Unlock()

	h, ok := w.handlers[path]
	if !ok {
		h = w.newHandler()
		w.handlers[path] = h
	}
	return h
}

// Close releases every connection handler.
func (w *Workspace) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	var errs []error
	for _, path := range slices.Sorted(maps.Keys(w.handlers)) {
		if err := w.handlers[path].Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", path, err))
		}
	}
	clear(w.handlers)
	return errors.Join(errs...)
}

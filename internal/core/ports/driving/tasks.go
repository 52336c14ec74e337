package driving

import (
	"context"

	"github.com/custodia-labs/dbtasks/internal/core/domain"
)

// DatabaseTasks performs lifecycle tasks for one configured database.
type DatabaseTasks interface {
	// Config returns the database configuration the tasks are bound to.
	Config() domain.DatabaseConfig

	// Create establishes a connection, creating the database file.
	// Returns domain.ErrDatabaseAlreadyExists if the file is already present.
	Create(ctx context.Context) error

	// Connect establishes a connection without checking for an existing file.
	Connect(ctx context.Context) error

	// Drop deletes the database file.
	// Returns domain.ErrNoDatabase if the file does not exist.
	Drop(ctx context.Context) error

	// Purge drops the database and always re-creates and reconnects it afterwards.
	Purge(ctx context.Context) error

	// Charset returns the encoding of the current connection.
	Charset(ctx context.Context) (string, error)

	// StructureDump writes the database schema to filename using sqlite3.
	StructureDump(ctx context.Context, filename string, extraFlags []string) error

	// StructureLoad feeds filename into sqlite3 against the database.
	StructureLoad(ctx context.Context, filename string, extraFlags []string) error
}

// Workspace resolves configured environments to their database tasks.
type Workspace interface {
	// Environments returns the configured environment names, sorted.
	Environments() []string

	// DefaultEnvironment returns the environment used when none is given.
	DefaultEnvironment() string

	// Root returns the directory relative paths are resolved against.
	Root() string

	// Tasks returns the lifecycle tasks for env.
	// An empty env selects the default environment.
	Tasks(env string) (DatabaseTasks, error)

	// Close releases the connection handlers.
	Close() error
}

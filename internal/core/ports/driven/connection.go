package driven

import (
	"context"

	"github.com/custodia-labs/dbtasks/internal/core/domain"
)

// ConnectionHandler owns the live connection for a database.
// Establishing a connection to a file-backed database creates the file.
// A handler serves one database; callers needing several databases use
// one handler each.
type ConnectionHandler interface {
	// Establish opens a connection for cfg and makes it current.
	// Any previously current connection is closed.
	Establish(ctx context.Context, cfg domain.DatabaseConfig) (Connection, error)

	// Current returns the current connection.
	// Returns domain.ErrNotConnected if none has been established.
	Current() (Connection, error)

	// Close closes the current connection, if any.
	Close() error
}

// Connection is an open database connection.
type Connection interface {
	// Path returns the resolved path of the database the connection is open on.
	Path() string

	// Encoding returns the text encoding of the database (e.g. "UTF-8").
	Encoding(ctx context.Context) (string, error)

	// DataSources returns the names of the tables and views in the database.
	DataSources(ctx context.Context) ([]string, error)

	// Quote renders value as an SQL string literal.
	Quote(value string) string

	// Disconnect closes the connection. It is safe to call more than once.
	Disconnect() error

	// Reconnect closes and reopens the connection to the same database.
	Reconnect(ctx context.Context) error
}

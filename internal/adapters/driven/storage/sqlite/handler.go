package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/dbtasks/internal/core/domain"
	"github.com/custodia-labs/dbtasks/internal/core/ports/driven"
	"github.com/custodia-labs/dbtasks/internal/logger"
)

// connectionPragmas are applied by the driver to every new connection.
// WAL is not enabled; dropping a database removes only the main file.
var connectionPragmas = []string{
	"busy_timeout(5000)",
	"foreign_keys(1)",
}

// Ensure Handler implements the interface.
var _ driven.ConnectionHandler = (*Handler)(nil)

// Handler tracks the current SQLite connection.
type Handler struct {
	mu      sync.Mutex
	current *Connection
}

// NewHandler creates a handler with no current connection.
func NewHandler() *Handler {
	return &Handler{}
}

// Establish opens a connection for cfg and makes it current.
// Opening a file-backed database creates the file and its parent directory.
func (h *Handler) Establish(ctx context.Context, cfg domain.DatabaseConfig) (driven.Connection, error) {
	conn, err := Open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	h.mu.Lock()
	prev := h.current
	h.current = conn
	h.mu.Unlock()

	if prev != nil {
		if err := prev.Disconnect(); err != nil {
			logger.Warn("closing previous connection", "path", prev.Path(), "error", err)
		}
	}
	return conn, nil
}

// Current returns the current connection.
func (h *Handler) Current() (driven.Connection, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.current == nil {
		return nil, domain.ErrNotConnected
	}
	return h.current, nil
}

// Close closes the current connection and forgets it.
func (h *Handler) Close() error {
	h.mu.Lock()
	conn := h.current
	h.current = nil
	h.mu.Unlock()

	if conn == nil {
		return nil
	}
	return conn.Disconnect()
}

// Ensure Connection implements the interface.
var _ driven.Connection = (*Connection)(nil)

// Connection is a database/sql handle to one SQLite database.
type Connection struct {
	mu   sync.Mutex
	db   *sql.DB
	path string
}

// Open connects to the database described by cfg.
func Open(ctx context.Context, cfg domain.DatabaseConfig) (*Connection, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	path := cfg.Path()
	if !cfg.IsMemory() {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	c := &Connection{path: path}
	if err := c.open(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

// open must be called with c.mu held or before c is shared.
func (c *Connection) open(ctx context.Context) error {
	db, err := sql.Open("sqlite", dsn(c.path))
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	// An in-memory database exists per connection.
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return fmt.Errorf("connecting to %s: %w", c.path, err)
	}

	logger.Debug("connected", "path", c.path)
	c.db = db
	return nil
}

func dsn(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	params := make([]string, len(connectionPragmas))
	for i, p := range connectionPragmas {
		params[i] = "_pragma=" + p
	}
	return path + sep + strings.Join(params, "&")
}

// Path returns the database file path.
func (c *Connection) Path() string {
	return c.path
}

func (c *Connection) handle() (*sql.DB, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.db == nil {
		return nil, domain.ErrNotConnected
	}
	return c.db, nil
}

// Encoding returns the database text encoding.
func (c *Connection) Encoding(ctx context.Context) (string, error) {
	db, err := c.handle()
	if err != nil {
		return "", err
	}

	var encoding string
	if err := db.QueryRowContext(ctx, "PRAGMA encoding").Scan(&encoding); err != nil {
		return "", fmt.Errorf("reading encoding: %w", err)
	}
	return encoding, nil
}

// DataSources returns the user tables and views, sorted by name.
func (c *Connection) DataSources(ctx context.Context) ([]string, error) {
	db, err := c.handle()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `
		SELECT name FROM sqlite_master
		WHERE type IN ('table', 'view') AND name NOT LIKE 'sqlite\_%' ESCAPE '\'
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("listing data sources: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning data source: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Quote renders value as an SQL string literal.
func (c *Connection) Quote(value string) string {
	return "'" + strings.ReplaceAll(value, "'", "''") + "'"
}

// Disconnect closes the connection. Calling it on a closed connection is a no-op.
func (c *Connection) Disconnect() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.db == nil {
		return nil
	}
	err := c.db.Close()
	c.db = nil
	logger.Debug("disconnected", "path", c.path)
	return err
}

// Reconnect closes the connection and opens it again.
func (c *Connection) Reconnect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.db != nil {
		if err := c.db.Close(); err != nil && !errors.Is(err, sql.ErrConnDone) {
			return fmt.Errorf("closing connection: %w", err)
		}
		c.db = nil
	}
	return c.open(ctx)
}

package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/custodia-labs/dbtasks/internal/core/domain"
	"github.com/custodia-labs/dbtasks/internal/core/ports/driven"
	"github.com/custodia-labs/dbtasks/internal/core/ports/driving"
	"github.com/custodia-labs/dbtasks/internal/logger"
)

// Ensure SQLiteTasks implements the interface.
var _ driving.DatabaseTasks = (*SQLiteTasks)(nil)

// schemaDirective dumps the full schema.
const schemaDirective = ".schema"

// SQLiteTasks performs lifecycle tasks for a single file-backed SQLite database.
// Callers must serialise tasks for the same database.
type SQLiteTasks struct {
	config  domain.DatabaseConfig
	handler driven.ConnectionHandler
	runner  driven.CommandRunner
	tools   domain.ToolSettings
}

// NewSQLiteTasks creates lifecycle tasks bound to cfg.
func NewSQLiteTasks(
	cfg domain.DatabaseConfig,
	handler driven.ConnectionHandler,
	runner driven.CommandRunner,
	tools domain.ToolSettings,
) *SQLiteTasks {
	return &SQLiteTasks{
		config:  cfg,
		handler: handler,
		runner:  runner,
		tools:   tools,
	}
}

// Config returns the database configuration.
func (t *SQLiteTasks) Config() domain.DatabaseConfig {
	return t.config
}

// Create establishes a connection, which creates the database file.
func (t *SQLiteTasks) Create(ctx context.Context) error {
	path := t.config.Path()
	if !t.config.IsMemory() {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s", domain.ErrDatabaseAlreadyExists, path)
		}
	}

	logger.Debug("creating database", "path", path)
	return t.Connect(ctx)
}

// Connect establishes a connection to the database.
func (t *SQLiteTasks) Connect(ctx context.Context) error {
	if _, err := t.handler.Establish(ctx, t.config); err != nil {
		return fmt.Errorf("establish connection: %w", err)
	}
	return nil
}

// Drop deletes the database file.
// In-memory databases have no file and are reported as missing.
func (t *SQLiteTasks) Drop(_ context.Context) error {
	path := t.config.Path()
	if t.config.IsMemory() {
		return fmt.Errorf("%w: %s has no file", domain.ErrNoDatabase, path)
	}
	logger.Debug("dropping database", "path", path)

	if err := os.Remove(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", domain.ErrNoDatabase, err.Error())
		}
		return err
	}
	return nil
}

// Purge drops the database, then re-creates and reconnects it.
// The re-create step runs whatever the outcome of the drop; if it fails
// its error is part of the result.
func (t *SQLiteTasks) Purge(ctx context.Context) (err error) {
	defer func() {
		if rerr := t.recreate(ctx); rerr != nil {
			err = errors.Join(err, rerr)
		}
	}()

	if err := t.Drop(ctx); err != nil {
		if errors.Is(err, domain.ErrNoDatabase) {
			logger.Debug("purge found no database", "path", t.config.Path())
			return nil
		}
		return err
	}

	conn, err := t.connection()
	if err != nil {
		if errors.Is(err, domain.ErrNotConnected) {
			return nil
		}
		return err
	}
	return conn.Disconnect()
}

func (t *SQLiteTasks) recreate(ctx context.Context) error {
	if err := t.Create(ctx); err != nil {
		return err
	}
	conn, err := t.connection()
	if err != nil {
		return err
	}
	if err := conn.Reconnect(ctx); err != nil {
		return fmt.Errorf("reconnect: %w", err)
	}
	return nil
}

// connection returns the handler's current connection when it is open on
// this database. A connection to any other database counts as none.
func (t *SQLiteTasks) connection() (driven.Connection, error) {
	conn, err := t.handler.Current()
	if err != nil {
		return nil, err
	}
	if conn.Path() != t.config.Path() {
		return nil, fmt.Errorf("%w: current connection is to %s", domain.ErrNotConnected, conn.Path())
	}
	return conn, nil
}

// Charset returns the encoding of the current connection.
func (t *SQLiteTasks) Charset(ctx context.Context) (string, error) {
	conn, err := t.connection()
	if err != nil {
		return "", err
	}
	return conn.Encoding(ctx)
}

// StructureDump writes the schema to filename by running sqlite3.
// Tables matched by the ignore patterns are left out of the dump.
func (t *SQLiteTasks) StructureDump(ctx context.Context, filename string, extraFlags []string) error {
	args, err := t.structureDumpArgs(ctx, extraFlags)
	if err != nil {
		return err
	}

	out, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("create structure file: %w", err)
	}
	defer out.Close()

	logger.Debug("dumping structure", "path", t.config.Path(), "file", filename)
	if err := t.run(ctx, driven.Command{Args: args, Stdout: out}); err != nil {
		return err
	}
	return out.Close()
}

func (t *SQLiteTasks) structureDumpArgs(ctx context.Context, extraFlags []string) ([]string, error) {
	args := make([]string, 0, len(t.tools.StructureDumpFlags)+len(extraFlags)+2)
	args = append(args, t.tools.StructureDumpFlags...)
	args = append(args, extraFlags...)
	args = append(args, t.config.Path())

	if len(t.tools.IgnoreTables) == 0 {
		return append(args, schemaDirective), nil
	}

	conn, err := t.dataSourceConnection(ctx)
	if err != nil {
		return nil, err
	}
	sources, err := conn.DataSources(ctx)
	if err != nil {
		return nil, fmt.Errorf("list data sources: %w", err)
	}

	ignored := domain.FilterTables(t.tools.IgnoreTables, sources)
	quoted := make([]string, len(ignored))
	for i, table := range ignored {
		quoted[i] = conn.Quote(table)
	}
	logger.Debug("ignoring tables", "patterns", patternStrings(t.tools.IgnoreTables), "tables", ignored)

	query := fmt.Sprintf(
		"SELECT sql FROM sqlite_master WHERE tbl_name NOT IN (%s) ORDER BY tbl_name, type DESC, name",
		strings.Join(quoted, ", "),
	)
	return append(args, query), nil
}

func patternStrings(patterns []domain.TablePattern) []string {
	out := make([]string, len(patterns))
	for i, p := range patterns {
		out[i] = p.String()
	}
	return out
}

// dataSourceConnection returns the current connection, establishing one if needed.
func (t *SQLiteTasks) dataSourceConnection(ctx context.Context) (driven.Connection, error) {
	conn, err := t.connection()
	if err == nil {
		return conn, nil
	}
	if !errors.Is(err, domain.ErrNotConnected) {
		return nil, err
	}
	conn, err = t.handler.Establish(ctx, t.config)
	if err != nil {
		return nil, fmt.Errorf("establish connection: %w", err)
	}
	return conn, nil
}

// StructureLoad runs sqlite3 against the database with filename as its input.
func (t *SQLiteTasks) StructureLoad(ctx context.Context, filename string, extraFlags []string) error {
	in, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("open structure file: %w", err)
	}
	defer in.Close()

	args := make([]string, 0, len(t.tools.StructureLoadFlags)+len(extraFlags)+1)
	args = append(args, t.tools.StructureLoadFlags...)
	args = append(args, extraFlags...)
	args = append(args, t.config.Path())

	logger.Debug("loading structure", "path", t.config.Path(), "file", filename)
	return t.run(ctx, driven.Command{Args: args, Stdin: in})
}

func (t *SQLiteTasks) run(ctx context.Context, cmd driven.Command) error {
	cmd.Name = t.tools.Executable()
	if err := t.runner.Run(ctx, cmd); err != nil {
		return &domain.CommandError{Command: cmd.Name, Args: cmd.Args, Err: err}
	}
	return nil
}

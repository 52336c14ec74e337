package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/custodia-labs/dbtasks/internal/core/domain"
	"github.com/custodia-labs/dbtasks/internal/core/ports/driven"
)

// mockConnection implements driven.Connection for testing.
type mockConnection struct {
	path          string
	encoding      string
	dataSources   []string
	sourcesErr    error
	reconnectErr  error
	disconnects   int
	reconnects    int
	disconnectErr error
}

func (c *mockConnection) Path() string {
	return c.path
}

func (c *mockConnection) Encoding(_ context.Context) (string, error) {
	return c.encoding, nil
}

func (c *mockConnection) DataSources(_ context.Context) ([]string, error) {
	return c.dataSources, c.sourcesErr
}

func (c *mockConnection) Quote(value string) string {
	return "'" + strings.ReplaceAll(value, "'", "''") + "'"
}

func (c *mockConnection) Disconnect() error {
	c.disconnects++
	return c.disconnectErr
}

func (c *mockConnection) Reconnect(_ context.Context) error {
	c.reconnects++
	return c.reconnectErr
}

// mockHandler implements driven.ConnectionHandler for testing.
// Establishing creates the database file the way SQLite does on first open.
type mockHandler struct {
	conn         *mockConnection
	current      *mockConnection
	establishErr error
	established  []domain.DatabaseConfig
	closed       bool
}

func newMockHandler() *mockHandler {
	return &mockHandler{conn: &mockConnection{encoding: "UTF-8"}}
}

func (h *mockHandler) Establish(_ context.Context, cfg domain.DatabaseConfig) (driven.Connection, error) {
	if h.establishErr != nil {
		return nil, h.establishErr
	}
	if !cfg.IsMemory() {
		f, err := os.OpenFile(cfg.Path(), os.O_CREATE|os.O_RDWR, 0o644)
		if err != nil {
			return nil, err
		}
		_ = f.Close()
	}
	h.established = append(h.established, cfg)
	h.conn.path = cfg.Path()
	h.current = h.conn
	return h.current, nil
}

func (h *mockHandler) Current() (driven.Connection, error) {
	if h.current == nil {
		return nil, domain.ErrNotConnected
	}
	return h.current, nil
}

func (h *mockHandler) Close() error {
	h.closed = true
	h.current = nil
	return nil
}

// mockHandlerFactory hands out a fresh mockHandler on every call.
type mockHandlerFactory struct {
	handlers []*mockHandler
}

func (f *mockHandlerFactory) new() driven.ConnectionHandler {
	h := newMockHandler()
	f.handlers = append(f.handlers, h)
	return h
}

// mockRunner implements driven.CommandRunner for testing.
type mockRunner struct {
	commands []driven.Command
	stdin    []string
	stdout   string
	err      error
}

func (r *mockRunner) Run(_ context.Context, cmd driven.Command) error {
	r.commands = append(r.commands, cmd)
	if cmd.Stdin != nil {
		var buf bytes.Buffer
		if _, err := io.Copy(&buf, cmd.Stdin); err != nil {
			return err
		}
		r.stdin = append(r.stdin, buf.String())
	}
	if cmd.Stdout != nil && r.stdout != "" {
		if _, err := io.WriteString(cmd.Stdout, r.stdout); err != nil {
			return err
		}
	}
	return r.err
}

func (r *mockRunner) last() driven.Command {
	if len(r.commands) == 0 {
		return driven.Command{}
	}
	return r.commands[len(r.commands)-1]
}

var errExitStatus1 = errors.New("exit status 1")

package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/custodia-labs/dbtasks/internal/core/domain"
	"github.com/custodia-labs/dbtasks/internal/core/ports/driving"
)

// mockTasks implements driving.DatabaseTasks for testing.
type mockTasks struct {
	config     domain.DatabaseConfig
	createErr  error
	dropErr    error
	purgeErr   error
	charset    string
	dumpErr    error
	loadErr    error
	calls      []string
	lastFile   string
	lastFlags  []string
	connectErr error
}

func (m *mockTasks) Config() domain.DatabaseConfig { return m.config }

func (m *mockTasks) Create(_ context.Context) error {
	m.calls = append(m.calls, "create")
	return m.createErr
}

func (m *mockTasks) Connect(_ context.Context) error {
	m.calls = append(m.calls, "connect")
	return m.connectErr
}

func (m *mockTasks) Drop(_ context.Context) error {
	m.calls = append(m.calls, "drop")
	return m.dropErr
}

func (m *mockTasks) Purge(_ context.Context) error {
	m.calls = append(m.calls, "purge")
	return m.purgeErr
}

func (m *mockTasks) Charset(_ context.Context) (string, error) {
	m.calls = append(m.calls, "charset")
	return m.charset, nil
}

func (m *mockTasks) StructureDump(_ context.Context, filename string, extraFlags []string) error {
	m.calls = append(m.calls, "structure_dump")
	m.lastFile = filename
	m.lastFlags = extraFlags
	return m.dumpErr
}

func (m *mockTasks) StructureLoad(_ context.Context, filename string, extraFlags []string) error {
	m.calls = append(m.calls, "structure_load")
	m.lastFile = filename
	m.lastFlags = extraFlags
	return m.loadErr
}

// mockWorkspace implements driving.Workspace for testing.
type mockWorkspace struct {
	tasks  map[string]*mockTasks
	def    string
	root   string
	closed bool
}

func newMockWorkspace() *mockWorkspace {
	return &mockWorkspace{
		def:  "development",
		root: "/app",
		tasks: map[string]*mockTasks{
			"development": {config: domain.DatabaseConfig{Environment: "development", Database: "db/development.sqlite3", Root: "/app"}},
			"test":        {config: domain.DatabaseConfig{Environment: "test", Database: "db/test.sqlite3", Root: "/app"}},
		},
	}
}

func (w *mockWorkspace) Environments() []string { return []string{"development", "test"} }

func (w *mockWorkspace) DefaultEnvironment() string { return w.def }

func (w *mockWorkspace) Root() string { return w.root }

func (w *mockWorkspace) Tasks(env string) (driving.DatabaseTasks, error) {
	if env == "" {
		env = w.def
	}
	tasks, ok := w.tasks[env]
	if !ok {
		return nil, domain.ErrUnknownEnvironment
	}
	return tasks, nil
}

func (w *mockWorkspace) Close() error {
	w.closed = true
	return nil
}

// setupCLITest installs a mock workspace and resets global flag state.
func setupCLITest(t *testing.T) (*mockWorkspace, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()

	ws := newMockWorkspace()
	oldFactory := workspaceFactory
	oldTerminal := stdinIsTerminal
	workspaceFactory = func(string) (driving.Workspace, error) { return ws, nil }
	stdinIsTerminal = func() bool { return false }

	out := new(bytes.Buffer)
	errOut := new(bytes.Buffer)
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	t.Cleanup(func() {
		workspaceFactory = oldFactory
		stdinIsTerminal = oldTerminal
		configPath = ""
		envName = ""
		verbose = false
		forceFlag = false
		sqliteFlags = nil
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	})
	return ws, out, errOut
}

func execute(args ...string) error {
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTasksConfig() *TasksConfig {
	return &TasksConfig{
		Root:               "/app",
		DefaultEnvironment: "development",
		Tools:              DefaultToolSettings(),
		Databases: map[string]DatabaseConfig{
			"test":        {Environment: "test", Database: "db/test.sqlite3", Root: "/app"},
			"development": {Environment: "development", Database: "db/development.sqlite3", Root: "/app"},
		},
	}
}

func TestToolSettings_Executable(t *testing.T) {
	assert.Equal(t, "sqlite3", ToolSettings{}.Executable())
	assert.Equal(t, "/opt/bin/sqlite3", ToolSettings{SQLite3: "/opt/bin/sqlite3"}.Executable())
	assert.Equal(t, DefaultSQLite3, DefaultToolSettings().Executable())
}

func TestTasksConfig_Environments(t *testing.T) {
	cfg := testTasksConfig()
	assert.Equal(t, []string{"development", "test"}, cfg.Environments())
}

func TestTasksConfig_Database(t *testing.T) {
	cfg := testTasksConfig()

	db, err := cfg.Database("test")
	require.NoError(t, err)
	assert.Equal(t, "db/test.sqlite3", db.Database)

	db, err = cfg.Database("")
	require.NoError(t, err)
	assert.Equal(t, "development", db.Environment)

	_, err = cfg.Database("production")
	assert.ErrorIs(t, err, ErrUnknownEnvironment)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "production")
}

func TestTasksConfig_Database_BuiltinDefault(t *testing.T) {
	cfg := testTasksConfig()
	cfg.DefaultEnvironment = ""

	db, err := cfg.Database("")
	require.NoError(t, err)
	assert.Equal(t, "development", db.Environment)
}

func TestTasksConfig_Validate(t *testing.T) {
	cfg := testTasksConfig()
	assert.NoError(t, cfg.Validate())

	cfg.Databases["broken"] = DatabaseConfig{Environment: "broken"}
	err := cfg.Validate()
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "broken")
}

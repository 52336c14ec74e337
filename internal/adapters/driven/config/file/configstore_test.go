package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/dbtasks/internal/core/domain"
)

const sampleConfig = `
root = "app"
default_environment = "test"

[tools]
sqlite3 = "/usr/local/bin/sqlite3"
structure_dump_flags = ["-bail"]
structure_load_flags = ["-batch"]

[schema]
ignore_tables = ["ar_internal_metadata", "/^tmp_/"]

[databases.development]
database = "db/development.sqlite3"

[databases.test]
database = "/tmp/t.sqlite3"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dbtasks.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestNewConfigStore_DefaultPath(t *testing.T) {
	store := NewConfigStore("", Overrides{})
	assert.Equal(t, "dbtasks.toml", store.Path())
}

func TestConfigStore_Load(t *testing.T) {
	path := writeConfig(t, sampleConfig)
	store := NewConfigStore(path, Overrides{})

	cfg, err := store.Load()

	require.NoError(t, err)
	wantRoot := filepath.Join(filepath.Dir(path), "app")
	assert.Equal(t, wantRoot, cfg.Root)
	assert.Equal(t, "test", cfg.DefaultEnvironment)
	assert.Equal(t, "/usr/local/bin/sqlite3", cfg.Tools.Executable())
	assert.Equal(t, []string{"-bail"}, cfg.Tools.StructureDumpFlags)
	assert.Equal(t, []string{"-batch"}, cfg.Tools.StructureLoadFlags)
	require.Len(t, cfg.Tools.IgnoreTables, 2)
	assert.True(t, cfg.Tools.IgnoreTables[1].IsRegexp())
	assert.Equal(t, []string{"development", "test"}, cfg.Environments())

	dev, err := cfg.Database("development")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(wantRoot, "db", "development.sqlite3"), dev.Path())

	test, err := cfg.Database("")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/t.sqlite3", test.Path())
}

func TestConfigStore_Load_Defaults(t *testing.T) {
	path := writeConfig(t, "[databases.development]\ndatabase = \"db/dev.sqlite3\"\n")
	store := NewConfigStore(path, Overrides{})

	cfg, err := store.Load()

	require.NoError(t, err)
	assert.Equal(t, filepath.Dir(path), cfg.Root)
	assert.Equal(t, domain.DefaultEnvironment, cfg.DefaultEnvironment)
	assert.Equal(t, "sqlite3", cfg.Tools.Executable())
	assert.Empty(t, cfg.Tools.IgnoreTables)
}

func TestConfigStore_Load_Overrides(t *testing.T) {
	path := writeConfig(t, sampleConfig)
	store := NewConfigStore(path, Overrides{
		Environment: "development",
		Root:        "/srv/app",
		SQLite3:     "sqlite3-custom",
	})

	cfg, err := store.Load()

	require.NoError(t, err)
	assert.Equal(t, "/srv/app", cfg.Root)
	assert.Equal(t, "development", cfg.DefaultEnvironment)
	assert.Equal(t, "sqlite3-custom", cfg.Tools.Executable())
	assert.Equal(t, "/srv/app/db/development.sqlite3", cfg.Databases["development"].Path())
}

func TestConfigStore_Load_MissingFile(t *testing.T) {
	store := NewConfigStore(filepath.Join(t.TempDir(), "missing.toml"), Overrides{})

	_, err := store.Load()

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "missing.toml")
}

func TestConfigStore_Load_InvalidTOML(t *testing.T) {
	path := writeConfig(t, "root = \n")
	store := NewConfigStore(path, Overrides{})

	_, err := store.Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing")
}

func TestConfigStore_Load_UnknownKey(t *testing.T) {
	path := writeConfig(t, "[databases.test]\ndatabse = \"db/test.sqlite3\"\n")
	store := NewConfigStore(path, Overrides{})

	_, err := store.Load()

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "databse")
}

func TestConfigStore_Load_InvalidIgnorePattern(t *testing.T) {
	path := writeConfig(t, "[schema]\nignore_tables = [\"/(/\"]\n")
	store := NewConfigStore(path, Overrides{})

	_, err := store.Load()

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "schema.ignore_tables")
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dbtasks.toml")

	require.NoError(t, WriteDefault(path))

	cfg, err := NewConfigStore(path, Overrides{}).Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"development", "test"}, cfg.Environments())
	assert.Equal(t, domain.DefaultEnvironment, cfg.DefaultEnvironment)
	assert.NoError(t, cfg.Validate())
}

func TestWriteDefault_AlreadyExists(t *testing.T) {
	path := writeConfig(t, sampleConfig)

	err := WriteDefault(path)

	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
	content, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Equal(t, sampleConfig, string(content))
}

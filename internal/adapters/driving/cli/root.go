// Package cli implements the dbtasks command-line interface with cobra.
package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/dbtasks/internal/core/ports/driving"
	"github.com/custodia-labs/dbtasks/internal/logger"
)

// version is set at build time via SetVersion.
var version = "dev"

// WorkspaceFactory opens the workspace described by a configuration file.
// An empty path selects the default configuration file.
type WorkspaceFactory func(configPath string) (driving.Workspace, error)

// ConfigInitializer writes a starter configuration file and returns its path.
// An empty path selects the default configuration file.
type ConfigInitializer func(configPath string) (string, error)

// Services injected by the composition root.
var (
	workspaceFactory  WorkspaceFactory
	configInitializer ConfigInitializer
)

// Global flags.
var (
	configPath string
	envName    string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "dbtasks",
	Short: "SQLite database lifecycle tasks",
	Long: `dbtasks creates, drops, purges and dumps or loads the schema of the
SQLite databases configured in dbtasks.toml.

Schema dump and load shell out to the sqlite3 command-line tool.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "configuration file (default dbtasks.toml)")
	rootCmd.PersistentFlags().StringVarP(&envName, "env", "e", "", "environment to operate on (default from config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug logs to stderr")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// SetWorkspaceFactory sets how commands open the workspace.
func SetWorkspaceFactory(f WorkspaceFactory) {
	workspaceFactory = f
}

// SetConfigInitializer sets how the init command writes configuration.
func SetConfigInitializer(f ConfigInitializer) {
	configInitializer = f
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// openWorkspace opens the workspace for the --config flag.
func openWorkspace() (driving.Workspace, error) {
	if workspaceFactory == nil {
		return nil, errors.New("workspace not configured")
	}
	return workspaceFactory(configPath)
}

// withTasks runs fn against the tasks of the selected environment.
func withTasks(fn func(ctx context.Context, ws driving.Workspace, tasks driving.DatabaseTasks) error) error {
	ws, err := openWorkspace()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := ws.Close(); cerr != nil {
			logger.Warn("closing workspace", "error", cerr)
		}
	}()

	tasks, err := ws.Tasks(envName)
	if err != nil {
		return err
	}
	return fn(context.Background(), ws, tasks)
}

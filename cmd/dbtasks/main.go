// Package main is the entry point for the dbtasks CLI.
package main

import (
	"fmt"
	"os"

	"github.com/custodia-labs/dbtasks/internal/adapters/driven/command"
	"github.com/custodia-labs/dbtasks/internal/adapters/driven/config/file"
	"github.com/custodia-labs/dbtasks/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/dbtasks/internal/adapters/driving/cli"
	"github.com/custodia-labs/dbtasks/internal/core/ports/driven"
	"github.com/custodia-labs/dbtasks/internal/core/ports/driving"
	"github.com/custodia-labs/dbtasks/internal/core/services"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	overrides, err := file.ParseOverrides()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// configFile picks the --config flag, then DBTASKS_CONFIG, then the default.
	configFile := func(path string) string {
		switch {
		case path != "":
			return path
		case overrides.ConfigPath != "":
			return overrides.ConfigPath
		default:
			return file.DefaultFileName
		}
	}

	cli.SetVersion(version)
	cli.SetWorkspaceFactory(func(path string) (driving.Workspace, error) {
		store := file.NewConfigStore(configFile(path), overrides)
		newHandler := func() driven.ConnectionHandler { return sqlite.NewHandler() }
		return services.NewWorkspace(store, newHandler, command.NewRunner())
	})
	cli.SetConfigInitializer(func(path string) (string, error) {
		path = configFile(path)
		return path, file.WriteDefault(path)
	})

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

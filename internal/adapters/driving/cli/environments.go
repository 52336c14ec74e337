package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/dbtasks/internal/core/domain"
	"github.com/custodia-labs/dbtasks/internal/logger"
)

var environmentsCmd = &cobra.Command{
	Use:     "environments",
	Aliases: []string{"envs"},
	Short:   "List configured databases",
	Args:    cobra.NoArgs,
	RunE:    runEnvironments,
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter configuration file",
	Args:  cobra.NoArgs,
	RunE:  runInit,
}

func init() {
	rootCmd.AddCommand(environmentsCmd)
	rootCmd.AddCommand(initCmd)
}

func runEnvironments(cmd *cobra.Command, _ []string) error {
	ws, err := openWorkspace()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := ws.Close(); cerr != nil {
			logger.Warn("closing workspace", "error", cerr)
		}
	}()

	def := ws.DefaultEnvironment()
	for _, env := range ws.Environments() {
		tasks, err := ws.Tasks(env)
		if err != nil {
			return err
		}
		marker := " "
		if env == def {
			marker = "*"
		}
		cmd.Printf("%s %-12s %s\n", marker, env, tasks.Config().Path())
	}
	return nil
}

func runInit(cmd *cobra.Command, _ []string) error {
	if configInitializer == nil {
		return errors.New("config initializer not configured")
	}

	path, err := configInitializer(configPath)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			cmd.PrintErrf("Configuration %s already exists\n", path)
			return nil
		}
		return err
	}
	cmd.Printf("Wrote %s\n", path)
	return nil
}

package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/dbtasks/internal/core/domain"
	"github.com/custodia-labs/dbtasks/internal/core/ports/driving"
)

var forceFlag bool

// stdinIsTerminal reports whether confirmations can be asked interactively.
var stdinIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create the database",
	Long: `Creates the database file for the selected environment by connecting to it.
An existing database is left untouched.`,
	Args: cobra.NoArgs,
	RunE: runCreate,
}

var dropCmd = &cobra.Command{
	Use:   "drop",
	Short: "Drop the database",
	Long: `Deletes the database file for the selected environment.
Asks for confirmation on a terminal unless --force is given.`,
	Args: cobra.NoArgs,
	RunE: runDrop,
}

var purgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Empty the database",
	Long: `Drops the database and creates it again, leaving an empty database
connected. Asks for confirmation on a terminal unless --force is given.`,
	Args: cobra.NoArgs,
	RunE: runPurge,
}

var charsetCmd = &cobra.Command{
	Use:   "charset",
	Short: "Print the database encoding",
	Args:  cobra.NoArgs,
	RunE:  runCharset,
}

func init() {
	dropCmd.Flags().BoolVarP(&forceFlag, "force", "f", false, "skip confirmation")
	purgeCmd.Flags().BoolVarP(&forceFlag, "force", "f", false, "skip confirmation")

	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(dropCmd)
	rootCmd.AddCommand(purgeCmd)
	rootCmd.AddCommand(charsetCmd)
}

func runCreate(cmd *cobra.Command, _ []string) error {
	return withTasks(func(ctx context.Context, _ driving.Workspace, tasks driving.DatabaseTasks) error {
		path := tasks.Config().Path()
		if err := tasks.Create(ctx); err != nil {
			if errors.Is(err, domain.ErrDatabaseAlreadyExists) {
				cmd.PrintErrf("Database '%s' already exists\n", path)
				return nil
			}
			return fmt.Errorf("couldn't create '%s' database: %w", path, err)
		}
		cmd.Printf("Created database '%s'\n", path)
		return nil
	})
}

func runDrop(cmd *cobra.Command, _ []string) error {
	return withTasks(func(ctx context.Context, _ driving.Workspace, tasks driving.DatabaseTasks) error {
		path := tasks.Config().Path()
		if !confirm(cmd, fmt.Sprintf("Drop database '%s'?", path)) {
			cmd.Println("Aborted.")
			return nil
		}
		if err := tasks.Drop(ctx); err != nil {
			if errors.Is(err, domain.ErrNoDatabase) {
				cmd.PrintErrf("Database '%s' does not exist\n", path)
				return nil
			}
			return fmt.Errorf("couldn't drop '%s' database: %w", path, err)
		}
		cmd.Printf("Dropped database '%s'\n", path)
		return nil
	})
}

func runPurge(cmd *cobra.Command, _ []string) error {
	return withTasks(func(ctx context.Context, _ driving.Workspace, tasks driving.DatabaseTasks) error {
		path := tasks.Config().Path()
		if !confirm(cmd, fmt.Sprintf("Purge all data from '%s'?", path)) {
			cmd.Println("Aborted.")
			return nil
		}
		if err := tasks.Purge(ctx); err != nil {
			return fmt.Errorf("couldn't purge '%s' database: %w", path, err)
		}
		cmd.Printf("Purged database '%s'\n", path)
		return nil
	})
}

func runCharset(cmd *cobra.Command, _ []string) error {
	return withTasks(func(ctx context.Context, _ driving.Workspace, tasks driving.DatabaseTasks) error {
		if err := tasks.Connect(ctx); err != nil {
			return err
		}
		charset, err := tasks.Charset(ctx)
		if err != nil {
			return fmt.Errorf("failed to read charset: %w", err)
		}
		cmd.Println(charset)
		return nil
	})
}

// confirm asks a yes/no question on a terminal.
// Non-interactive runs and --force proceed without asking.
func confirm(cmd *cobra.Command, question string) bool {
	if forceFlag || !stdinIsTerminal() {
		return true
	}
	cmd.Printf("%s [y/N]: ", question)
	answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n') //nolint:errcheck // EOF means no
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

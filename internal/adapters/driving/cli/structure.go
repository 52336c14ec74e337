package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/dbtasks/internal/core/ports/driving"
)

// sqliteFlags are extra flags passed to sqlite3.
var sqliteFlags []string

var structureCmd = &cobra.Command{
	Use:   "structure",
	Short: "Dump or load the database schema",
	Long: `Dumps the database schema to a SQL file or loads one into the database
using the sqlite3 command-line tool.

FILE defaults to db/structure.sql under the configured root.`,
}

var structureDumpCmd = &cobra.Command{
	Use:   "dump [FILE]",
	Short: "Write the database schema to FILE",
	Long: `Writes the schema of the selected database to FILE with sqlite3.
Tables matching schema.ignore_tables are left out.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStructureDump,
}

var structureLoadCmd = &cobra.Command{
	Use:   "load [FILE]",
	Short: "Load the schema in FILE into the database",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runStructureLoad,
}

func init() {
	structureDumpCmd.Flags().StringArrayVar(&sqliteFlags, "flag", nil, "extra sqlite3 flag (repeatable)")
	structureLoadCmd.Flags().StringArrayVar(&sqliteFlags, "flag", nil, "extra sqlite3 flag (repeatable)")

	structureCmd.AddCommand(structureDumpCmd)
	structureCmd.AddCommand(structureLoadCmd)
	rootCmd.AddCommand(structureCmd)
}

// structureFile returns the file argument or the default under root.
func structureFile(ws driving.Workspace, args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return filepath.Join(ws.Root(), "db", "structure.sql")
}

func runStructureDump(cmd *cobra.Command, args []string) error {
	return withTasks(func(ctx context.Context, ws driving.Workspace, tasks driving.DatabaseTasks) error {
		filename := structureFile(ws, args)
		if err := tasks.StructureDump(ctx, filename, sqliteFlags); err != nil {
			return fmt.Errorf("structure dump failed: %w", err)
		}
		cmd.Printf("Dumped structure of '%s' to %s\n", tasks.Config().Path(), filename)
		return nil
	})
}

func runStructureLoad(cmd *cobra.Command, args []string) error {
	return withTasks(func(ctx context.Context, ws driving.Workspace, tasks driving.DatabaseTasks) error {
		filename := structureFile(ws, args)
		if err := tasks.StructureLoad(ctx, filename, sqliteFlags); err != nil {
			return fmt.Errorf("structure load failed: %w", err)
		}
		cmd.Printf("Loaded %s into '%s'\n", filename, tasks.Config().Path())
		return nil
	})
}

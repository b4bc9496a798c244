package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jatin/qlock/internal/backup"
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Write all sessions to a JSON backup file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.close()

		path := backup.Filename(time.Now())
		if len(args) == 1 {
			path = args[0]
		}
		if err := backup.Export(path, e.list.All()); err != nil {
			return fmt.Errorf("export: %w", err)
		}
		fmt.Printf("Exported %d session(s) to %s\n", e.list.Len(), path)
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Merge sessions from a JSON backup file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.close()

		imported, err := backup.Import(args[0])
		if err != nil {
			return fmt.Errorf("import: %w", err)
		}
		added, err := e.list.Merge(imported)
		if err != nil {
			return fmt.Errorf("merge: %w", err)
		}
		fmt.Printf("Imported %d new session(s), %d already present.\n",
			added, len(imported)-added)
		return nil
	},
}

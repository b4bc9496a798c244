package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jatin/qlock/internal/session"
)

var resetForce bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all local sessions and history",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !resetForce {
			return fmt.Errorf("refusing to delete local data without --force")
		}
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.close()

		n := e.list.Len()
		if err := e.list.ReplaceAll([]session.Session{}); err != nil {
			return fmt.Errorf("reset sessions: %w", err)
		}
		fmt.Printf("Deleted %d session(s).\n", n)
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolVar(&resetForce, "force", false, "Actually delete all local data")
}

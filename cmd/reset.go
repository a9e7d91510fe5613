package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Forget the stored profile, session token and workout plan",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps()
		if err != nil {
			return err
		}
		defer d.Close()

		if err := d.sessions.Clear(cmd.Context()); err != nil {
			return fmt.Errorf("clear session: %w", err)
		}
		fmt.Println("Profile and workout plan cleared.")
		return nil
	},
}

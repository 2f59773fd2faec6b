package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored session token",
	Args:  cobra.NoArgs,
	RunE:  runLogout,
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

func runLogout(cmd *cobra.Command, _ []string) error {
	if err := app.client.Logout(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
	return nil
}

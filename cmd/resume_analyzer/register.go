package main

import (
	"fmt"

	"github.com/jonathan/resume-analyzer/internal/guard"
	"github.com/jonathan/resume-analyzer/internal/types"
	"github.com/spf13/cobra"
)

var registerCmd = withAccess(&cobra.Command{
	Use:   "register",
	Short: "Create an account and log in",
	Args:  cobra.NoArgs,
	RunE:  runRegister,
}, guard.GuestOnly)

var (
	registerName     string
	registerEmail    string
	registerPassword string
)

func init() {
	registerCmd.Flags().StringVarP(&registerName, "name", "n", "", "Full name (required)")
	registerCmd.Flags().StringVarP(&registerEmail, "email", "e", "", "Account email (required)")
	registerCmd.Flags().StringVarP(&registerPassword, "password", "p", "", "Password, at least 8 characters (read from stdin if omitted)")

	_ = registerCmd.MarkFlagRequired("name")
	_ = registerCmd.MarkFlagRequired("email")

	rootCmd.AddCommand(registerCmd)
}

func runRegister(cmd *cobra.Command, _ []string) error {
	password, err := passwordOrPrompt(cmd, registerPassword)
	if err != nil {
		return err
	}

	req := types.RegisterRequest{Name: registerName, Email: registerEmail, Password: password}
	if _, err := app.client.RegisterAndLogin(cmd.Context(), req); err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Account created. Logged in as %s\n", registerEmail)
	return nil
}

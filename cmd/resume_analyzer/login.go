package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-analyzer/internal/guard"
	"github.com/jonathan/resume-analyzer/internal/types"
	"github.com/spf13/cobra"
)

var loginCmd = withAccess(&cobra.Command{
	Use:   "login",
	Short: "Log in and store the session token",
	Long:  "Log in with email and password. The returned token is stored in the token file and sent with every later request. When --password is omitted it is read from stdin.",
	Args:  cobra.NoArgs,
	RunE:  runLogin,
}, guard.GuestOnly)

var (
	loginEmail    string
	loginPassword string
)

func init() {
	loginCmd.Flags().StringVarP(&loginEmail, "email", "e", "", "Account email (required)")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "Account password (read from stdin if omitted)")

	_ = loginCmd.MarkFlagRequired("email")

	rootCmd.AddCommand(loginCmd)
}

func runLogin(cmd *cobra.Command, _ []string) error {
	password, err := passwordOrPrompt(cmd, loginPassword)
	if err != nil {
		return err
	}

	if _, err := app.client.Login(cmd.Context(), types.LoginRequest{Email: loginEmail, Password: password}); err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "Logged in as %s\n", loginEmail)
	_, _ = fmt.Fprintf(out, "Run 'resume_analyzer analyze' to score a resume.\n")
	return nil
}

// passwordOrPrompt returns flagValue, or the first line of stdin when it is empty.
func passwordOrPrompt(cmd *cobra.Command, flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	_, _ = fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

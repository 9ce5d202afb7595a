package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and clear the persisted session",
	Long: `Invalidate the session with the backend and remove the locally
persisted cookie.

The local session is cleared even when the backend cannot be reached:
signing out never leaves stale credentials behind.`,
	RunE: runLogout,
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

func runLogout(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	logoutErr := a.store.Logout(cmd.Context())
	a.jar.Clear()

	if logoutErr != nil {
		a.logger.WithError(logoutErr).Warn("backend logout failed, local session cleared anyway")
		fmt.Println("Signed out locally (the backend could not be reached).")
		return nil
	}

	fmt.Println("Signed out.")
	return nil
}

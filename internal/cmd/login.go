package cmd

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/skillsphere/skillsphere/internal/api"
	"github.com/skillsphere/skillsphere/internal/session"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and persist the session cookie",
	Long: `Authenticate against the Skillsphere backend and persist the session
cookie for later invocations.

Credentials not supplied as flags are prompted for interactively.

Examples:
  # Prompt for email and password
  skillsphere login

  # Non-interactive (password from a secret manager)
  skillsphere login --email ada@example.com --password "$(pass show skillsphere)"
`,
	RunE: runLogin,
}

var (
	loginEmail    string
	loginPassword string
)

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "account email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "account password")

	rootCmd.AddCommand(loginCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	if loginEmail == "" || loginPassword == "" {
		form := huh.NewForm(huh.NewGroup(
			huh.NewInput().Title("Email").Value(&loginEmail),
			huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(&loginPassword),
		))
		if err := form.Run(); err != nil {
			return err
		}
	}

	payload, err := a.client.Login(cmd.Context(), api.Credentials{
		Email:    loginEmail,
		Password: loginPassword,
	})
	if err != nil {
		return err
	}

	sess, err := session.FromPayload(payload)
	if err != nil {
		return err
	}

	fmt.Printf("Signed in as %s\n", sess.Email)
	if !sess.HasCompletedOnboarding {
		fmt.Println("Onboarding is not finished yet — run skillsphere to complete it.")
	}
	return nil
}

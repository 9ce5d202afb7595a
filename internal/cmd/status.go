package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skillsphere/skillsphere/internal/nav"
	"github.com/skillsphere/skillsphere/internal/session"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current session state",
	Long: `Display who is signed in, which organisation they belong to and
whether onboarding is complete.

Examples:
  # Human-readable status
  skillsphere status

  # JSON for scripting
  skillsphere status --json
`,
	RunE: runStatus,
}

var statusJSON bool

func init() {
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "output status as JSON")

	rootCmd.AddCommand(statusCmd)
}

// StatusReport is the machine-readable session summary
type StatusReport struct {
	LoggedIn     bool   `json:"logged_in"`
	Email        string `json:"email,omitempty"`
	Name         string `json:"name,omitempty"`
	Organisation string `json:"organisation,omitempty"`
	Role         string `json:"role,omitempty"`
	Onboarded    bool   `json:"onboarded"`
	Phase        string `json:"phase"`
}

func runStatus(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	a.store.Bootstrap(cmd.Context())
	sess, _ := a.store.Snapshot()

	report := buildStatusReport(sess)

	if statusJSON {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal status: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	if !report.LoggedIn {
		fmt.Println("Not signed in. Run skillsphere login first.")
		return nil
	}

	fmt.Printf("Signed in as %s (%s)\n", report.Name, report.Email)
	if report.Organisation != "" {
		fmt.Printf("Organisation: %s (%s)\n", report.Organisation, report.Role)
	}
	if report.Onboarded {
		fmt.Println("Onboarding:   complete")
	} else {
		fmt.Println("Onboarding:   pending — run skillsphere to finish it")
	}
	return nil
}

func buildStatusReport(sess session.Session) StatusReport {
	report := StatusReport{
		LoggedIn:  sess.IsLoggedIn,
		Onboarded: sess.HasCompletedOnboarding,
		Phase:     nav.Classify(sess).String(),
	}
	if !sess.IsLoggedIn {
		return report
	}

	report.Email = sess.Email
	report.Name = fmt.Sprintf("%s %s", sess.FirstName, sess.LastName)
	if org := sess.Organisation; org != nil {
		report.Organisation = org.Name
		report.Role = string(org.Role)
	}
	return report
}

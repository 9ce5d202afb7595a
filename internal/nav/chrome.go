package nav

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/skillsphere/skillsphere/internal/route"
	"github.com/skillsphere/skillsphere/internal/session"
)

// MenuItem is one entry of the navigation chrome
type MenuItem struct {
	Title  string
	Target route.Path
}

// Items returns the menu for a phase. Exactly one chrome variant
// exists per phase.
func Items(p Phase) []MenuItem {
	switch p {
	case PhaseAnonymous:
		return []MenuItem{
			{Title: "Home", Target: route.PathLanding},
			{Title: "Sign in", Target: route.PathAuth},
			{Title: "Terms", Target: route.PathTerms},
			{Title: "Privacy", Target: route.PathPrivacy},
		}
	case PhaseOnboarding:
		return []MenuItem{
			{Title: "Onboarding", Target: route.PathOnboarding},
		}
	case PhaseAdmin:
		return []MenuItem{
			{Title: "Dashboard", Target: route.PathDashboard},
			{Title: "Courses", Target: route.Path("/courses")},
			{Title: "Reports", Target: route.Path("/reports")},
			{Title: "Settings", Target: route.Path("/settings")},
		}
	case PhaseMember:
		return []MenuItem{
			{Title: "Dashboard", Target: route.PathDashboard},
			{Title: "Courses", Target: route.Path("/courses")},
			{Title: "Roadmap", Target: route.Path("/roadmap")},
			{Title: "Badges", Target: route.Path("/badges")},
		}
	default:
		return nil
	}
}

// Styles contains lipgloss styles for the chrome
type Styles struct {
	Bar      lipgloss.Style
	Brand    lipgloss.Style
	Item     lipgloss.Style
	Active   lipgloss.Style
	Identity lipgloss.Style
	Footer   lipgloss.Style
}

// DefaultStyles returns the default chrome styles
func DefaultStyles() Styles {
	return Styles{
		Bar:      lipgloss.NewStyle().Padding(0, 1),
		Brand:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")),
		Item:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1),
		Active:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")).Padding(0, 1),
		Identity: lipgloss.NewStyle().Foreground(lipgloss.Color("242")),
		Footer:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1),
	}
}

// Chrome renders the navigation bar for the session's phase
type Chrome struct {
	styles Styles
}

// NewChrome creates a chrome renderer with default styles
func NewChrome() Chrome {
	return Chrome{styles: DefaultStyles()}
}

// Header renders the top navigation bar. The active path is
// highlighted; the identity block names the visitor and, for admins,
// marks the role.
func (c Chrome) Header(sess session.Session, active route.Path, width int) string {
	phase := Classify(sess)

	parts := []string{c.styles.Brand.Render("Skillsphere")}
	for _, item := range Items(phase) {
		style := c.styles.Item
		if item.Target == active {
			style = c.styles.Active
		}
		parts = append(parts, style.Render(item.Title))
	}

	left := lipgloss.JoinHorizontal(lipgloss.Center, parts...)
	right := c.styles.Identity.Render(c.identity(sess, phase))

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return c.styles.Bar.Render(left + strings.Repeat(" ", gap) + right)
}

// Footer renders key hints
func (c Chrome) Footer(width int) string {
	hints := "tab: next • enter: select • esc: back • ctrl+c: quit"
	return c.styles.Footer.Width(width).Render(hints)
}

func (c Chrome) identity(sess session.Session, phase Phase) string {
	switch phase {
	case PhaseAnonymous:
		return "not signed in"
	case PhaseOnboarding:
		return sess.Email
	case PhaseAdmin:
		return fmt.Sprintf("%s %s · admin", sess.FirstName, sess.LastName)
	case PhaseMember:
		if sess.Organisation != nil && sess.Organisation.Name != "" {
			return fmt.Sprintf("%s %s · %s", sess.FirstName, sess.LastName, sess.Organisation.Name)
		}
		return fmt.Sprintf("%s %s", sess.FirstName, sess.LastName)
	default:
		return ""
	}
}

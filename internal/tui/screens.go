package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/skillsphere/skillsphere/internal/nav"
	"github.com/skillsphere/skillsphere/internal/route"
	"github.com/skillsphere/skillsphere/internal/session"
)

// Screen renders the content area below the chrome. Screens own their
// local state and are discarded on navigation; only the session store
// outlives them.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	View(width int) string
	Path() route.Path
}

// ---------------------------------------------------------------------------
// Loading screen (bootstrap pending)
// ---------------------------------------------------------------------------

type loadingScreen struct {
	styles  Styles
	path    route.Path
	spinner spinner.Model
}

func newLoadingScreen(path route.Path, styles Styles) *loadingScreen {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return &loadingScreen{styles: styles, path: path, spinner: sp}
}

func (s *loadingScreen) Init() tea.Cmd { return s.spinner.Tick }
func (s *loadingScreen) Path() route.Path { return s.path }
func (s *loadingScreen) View(width int) string {
	return s.styles.Muted.Render(s.spinner.View() + " Checking your session…")
}

func (s *loadingScreen) Update(msg tea.Msg) (Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.spinner, cmd = s.spinner.Update(msg)
	return s, cmd
}

// ---------------------------------------------------------------------------
// Landing screen
// ---------------------------------------------------------------------------

type landingScreen struct {
	styles Styles
}

func (s *landingScreen) Init() tea.Cmd { return nil }
func (s *landingScreen) Path() route.Path { return route.PathLanding }

func (s *landingScreen) Update(msg tea.Msg) (Screen, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		return s, func() tea.Msg { return navigateMsg{target: route.PathAuth} }
	}
	return s, nil
}

func (s *landingScreen) View(width int) string {
	return s.styles.Title.Render("Welcome to Skillsphere") + "\n" +
		s.styles.Body.Render("Courses, quizzes, badges and learning roadmaps for your organisation.") + "\n\n" +
		s.styles.Muted.Render("Press enter to sign in.")
}

// ---------------------------------------------------------------------------
// Legal screens
// ---------------------------------------------------------------------------

type legalScreen struct {
	styles Styles
	path   route.Path
	title  string
	body   string
}

func newLegalScreen(path route.Path, styles Styles) *legalScreen {
	s := &legalScreen{styles: styles, path: path}
	if path == route.PathTerms {
		s.title = "Terms of Service"
		s.body = "Use of Skillsphere is subject to your organisation's agreement with us."
	} else {
		s.title = "Privacy Policy"
		s.body = "We store your account details and questionnaire answers to personalise your roadmap."
	}
	return s
}

func (s *legalScreen) Init() tea.Cmd { return nil }
func (s *legalScreen) Path() route.Path { return s.path }
func (s *legalScreen) Update(msg tea.Msg) (Screen, tea.Cmd) { return s, nil }

func (s *legalScreen) View(width int) string {
	return s.styles.Title.Render(s.title) + "\n" + s.styles.Body.Render(s.body)
}

// ---------------------------------------------------------------------------
// Dashboard screen
// ---------------------------------------------------------------------------

type dashboardScreen struct {
	styles Styles
	sess   session.Session
}

func (s *dashboardScreen) Init() tea.Cmd { return nil }
func (s *dashboardScreen) Path() route.Path { return route.PathDashboard }
func (s *dashboardScreen) Update(msg tea.Msg) (Screen, tea.Cmd) { return s, nil }

func (s *dashboardScreen) View(width int) string {
	name := s.sess.FirstName
	if name == "" {
		name = s.sess.Email
	}

	lines := s.styles.Title.Render(fmt.Sprintf("Welcome back, %s", name))
	if org := s.sess.Organisation; org != nil {
		lines += "\n" + s.styles.Subtitle.Render(fmt.Sprintf("%s · %s", org.Name, org.Role))
	}
	lines += "\n" + s.styles.Body.Render("Use the navigation bar to browse courses, reports and roadmaps.")
	return lines
}

// ---------------------------------------------------------------------------
// Stub screen for protected, non-gate pages (courses, reports, …)
// ---------------------------------------------------------------------------

type stubScreen struct {
	styles Styles
	path   route.Path
}

func (s *stubScreen) Init() tea.Cmd { return nil }
func (s *stubScreen) Path() route.Path { return s.path }
func (s *stubScreen) Update(msg tea.Msg) (Screen, tea.Cmd) { return s, nil }

func (s *stubScreen) View(width int) string {
	return s.styles.Title.Render(string(s.path)) + "\n" +
		s.styles.Muted.Render("This area is served by the data panels, outside the session gate.")
}

// ---------------------------------------------------------------------------
// Unreachable screen: defect marker, not intended behavior
// ---------------------------------------------------------------------------

type unreachableScreen struct {
	styles Styles
	path   route.Path
	phase  nav.Phase
}

func (s *unreachableScreen) Init() tea.Cmd { return nil }
func (s *unreachableScreen) Path() route.Path { return s.path }
func (s *unreachableScreen) Update(msg tea.Msg) (Screen, tea.Cmd) { return s, nil }

func (s *unreachableScreen) View(width int) string {
	return s.styles.Error.Render("This page should not be reachable.") + "\n" +
		s.styles.Muted.Render(fmt.Sprintf("path=%s phase=%s — please report this.", s.path, s.phase))
}

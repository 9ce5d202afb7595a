package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/skillsphere/skillsphere/internal/api"
	"github.com/skillsphere/skillsphere/internal/log"
	"github.com/skillsphere/skillsphere/internal/nav"
	"github.com/skillsphere/skillsphere/internal/onboarding"
	"github.com/skillsphere/skillsphere/internal/route"
	"github.com/skillsphere/skillsphere/internal/session"
)

// Model is the application shell: chrome on top, one resident screen
// below, and the session gate in between. Every navigation — user
// initiated, history pop, or post-mutation — funnels through
// applyGuard, so there is exactly one place where redirect decisions
// are made and applied.
type Model struct {
	store   *session.Store
	backend *api.Client
	history *route.History
	chrome  nav.Chrome
	styles  Styles
	logger  *log.Logger

	screen Screen
	width  int
	height int
}

// NewModel assembles the shell. The store must not yet be
// bootstrapped; Init owns that.
func NewModel(store *session.Store, backend *api.Client, logger *log.Logger) *Model {
	if logger == nil {
		logger = log.DefaultLogger()
	}
	styles := DefaultStyles()
	return &Model{
		store:   store,
		backend: backend,
		history: route.NewHistory(route.PathLanding),
		chrome:  nav.NewChrome(),
		styles:  styles,
		logger:  logger,
		screen:  newLoadingScreen(route.PathLanding, styles),
		width:   80,
	}
}

func (m *Model) Init() tea.Cmd {
	store := m.store
	return tea.Batch(
		m.screen.Init(),
		func() tea.Msg {
			store.Bootstrap(context.Background())
			return sessionReadyMsg{}
		},
	)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "tab":
			if !m.screenOwnsKeys() {
				return m, m.cycleMenu()
			}
		case "esc":
			if !m.screenOwnsKeys() {
				return m, func() tea.Msg { return backMsg{} }
			}
		case "ctrl+l":
			if sess, loading := m.store.Snapshot(); !loading && sess.IsLoggedIn {
				return m, m.logout()
			}
		}

	case sessionReadyMsg:
		return m, m.applyGuard()

	case navigateMsg:
		m.history.Push(msg.target)
		return m, m.applyGuard()

	case backMsg:
		if _, ok := m.history.Back(); ok {
			return m, m.applyGuard()
		}
		return m, nil

	case authResultMsg:
		auth, ok := m.screen.(*authScreen)
		if !ok {
			// The visitor navigated away while the mutation was in
			// flight; the cookie jar already holds the session, the
			// next bootstrap will pick it up.
			return m, nil
		}
		if msg.err != nil {
			return m, auth.fail(msg.err)
		}
		m.store.Replace(msg.session)
		m.history.Push(route.PathDashboard)
		return m, m.applyGuard()

	case logoutResultMsg:
		if msg.err != nil {
			m.logger.WithError(msg.err).Warn("backend logout failed, local session cleared anyway")
		}
		m.history.Push(route.PathLanding)
		return m, m.applyGuard()

	case wizardDoneMsg:
		ob, ok := m.screen.(*onboardingScreen)
		if !ok || ob.wizard.ID != msg.wizardID {
			// Result of a wizard that is no longer resident.
			return m, nil
		}
		if msg.err != nil {
			screen, cmd := m.screen.Update(msg)
			m.screen = screen
			return m, cmd
		}
		m.store.Replace(msg.session)
		m.history.Push(route.PathDashboard)
		return m, m.applyGuard()
	}

	screen, cmd := m.screen.Update(msg)
	m.screen = screen
	return m, cmd
}

// applyGuard reads one consistent session snapshot, runs the route
// rules against the current history entry, replaces (not pushes) the
// entry on redirect, and mounts the resulting screen. Chrome and
// screen derive from the same snapshot, so they can never disagree
// about who is signed in.
func (m *Model) applyGuard() tea.Cmd {
	sess, loading := m.store.Snapshot()
	path := m.history.Current()

	if target, redirect := route.Decide(path, sess, loading); redirect {
		m.logger.Debug("redirect", "from", string(path), "to", string(target))
		m.history.Replace(target)
		path = target
	}

	if loading {
		if _, ok := m.screen.(*loadingScreen); ok {
			return nil
		}
		m.screen = newLoadingScreen(path, m.styles)
		return m.screen.Init()
	}

	if m.screen != nil && m.screen.Path() == path {
		if _, stillLoading := m.screen.(*loadingScreen); !stillLoading {
			return nil
		}
	}

	m.screen = m.screenFor(path, sess)
	return m.screen.Init()
}

// screenFor mounts the screen for an allowed path. The fall-through
// branches cover states the route rules make impossible; rendering
// them loudly beats rendering them wrong.
func (m *Model) screenFor(path route.Path, sess session.Session) Screen {
	switch path {
	case route.PathLanding:
		return &landingScreen{styles: m.styles}
	case route.PathAuth:
		return newAuthScreen(m.backend, m.styles)
	case route.PathTerms, route.PathPrivacy:
		return newLegalScreen(path, m.styles)
	case route.PathOnboarding:
		if !sess.IsLoggedIn {
			return &unreachableScreen{styles: m.styles, path: path, phase: nav.Classify(sess)}
		}
		wizard := onboarding.NewWizard(m.backend, m.logger)
		return newOnboardingScreen(wizard, m.styles)
	case route.PathDashboard:
		if !sess.IsLoggedIn || !sess.HasCompletedOnboarding {
			return &unreachableScreen{styles: m.styles, path: path, phase: nav.Classify(sess)}
		}
		return &dashboardScreen{styles: m.styles, sess: sess}
	default:
		if !sess.IsLoggedIn || !sess.HasCompletedOnboarding {
			return &unreachableScreen{styles: m.styles, path: path, phase: nav.Classify(sess)}
		}
		return &stubScreen{styles: m.styles, path: path}
	}
}

// screenOwnsKeys reports whether the resident screen runs a form that
// needs tab and esc for itself
func (m *Model) screenOwnsKeys() bool {
	switch m.screen.(type) {
	case *authScreen, *onboardingScreen:
		return true
	}
	return false
}

// cycleMenu navigates to the next chrome item after the active one
func (m *Model) cycleMenu() tea.Cmd {
	sess, loading := m.store.Snapshot()
	if loading {
		return nil
	}

	items := nav.Items(nav.Classify(sess))
	if len(items) == 0 {
		return nil
	}

	active := m.history.Current()
	next := items[0].Target
	for i, item := range items {
		if item.Target == active {
			next = items[(i+1)%len(items)].Target
			break
		}
	}
	if next == active {
		return nil
	}
	return func() tea.Msg { return navigateMsg{target: next} }
}

func (m *Model) logout() tea.Cmd {
	store := m.store
	return func() tea.Msg {
		err := store.Logout(context.Background())
		return logoutResultMsg{err: err}
	}
}

func (m *Model) View() string {
	sess, _ := m.store.Snapshot()
	header := m.chrome.Header(sess, m.history.Current(), m.width)
	footer := m.chrome.Footer(m.width)
	return header + "\n\n" + m.screen.View(m.width) + "\n\n" + footer
}

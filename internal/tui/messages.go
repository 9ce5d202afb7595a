package tui

import (
	"github.com/google/uuid"

	"github.com/skillsphere/skillsphere/internal/route"
	"github.com/skillsphere/skillsphere/internal/session"
)

// sessionReadyMsg signals that the one-time session bootstrap resolved.
// Until it arrives the guard defers every decision.
type sessionReadyMsg struct{}

// navigateMsg is a user-initiated navigation (pushes history)
type navigateMsg struct {
	target route.Path
}

// backMsg pops the history
type backMsg struct{}

// authResultMsg carries the outcome of a login or signup mutation
type authResultMsg struct {
	session session.Session
	err     error
}

// logoutResultMsg carries the outcome of the logout mutation. The
// session store is already logged out either way; a non-nil err is
// only worth a warning.
type logoutResultMsg struct {
	err error
}

// wizardStepMsg signals that a wizard transition resolved (or failed
// in place). It is stamped with the wizard instance ID so results
// arriving after the onboarding screen was torn down are discarded.
type wizardStepMsg struct {
	wizardID uuid.UUID
	err      error
}

// wizardDoneMsg carries the fresh session produced by the wizard's
// completion. This is the only wizard result that may touch global
// state, and only when its wizard is still the resident one.
type wizardDoneMsg struct {
	wizardID uuid.UUID
	session  session.Session
	err      error
}

package onboarding

import (
	"github.com/skillsphere/skillsphere/internal/session"
)

// Step is a state of the onboarding machine
type Step int

const (
	// StepInitializing is the entry state: the wizard asks the backend
	// whether the account already has an organisation
	StepInitializing Step = iota
	// StepOrganization collects either an organisation name (admin) or
	// an invite code (employee)
	StepOrganization
	// StepQuestionnaire collects skills-questionnaire answers
	StepQuestionnaire
	// StepComplete is terminal: the completion mutation runs and the
	// session is replaced with fresh data
	StepComplete
)

// String returns the step name
func (s Step) String() string {
	switch s {
	case StepInitializing:
		return "initializing"
	case StepOrganization:
		return "organization"
	case StepQuestionnaire:
		return "questionnaire"
	case StepComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// State is the wizard's observable state, scoped to the onboarding
// screen and discarded on completion
type State struct {
	Step             Step
	RoleChoice       session.Role
	OrganizationName string
	InviteCode       string

	// Err is the last failed transition's error. The machine stays on
	// its current step; the user corrects input and resubmits.
	Err error

	// Busy is set while a mutation is outstanding, preventing duplicate
	// submission. It is a flag, not a lock: the UI stays responsive.
	Busy bool
}

package nav

import (
	"github.com/skillsphere/skillsphere/internal/session"
)

// Phase is the navigation-chrome category derived from the session.
// The four phases are mutually exclusive and cover every reachable
// session, which is what makes boolean-flag chrome branching
// unnecessary: classify once, consume everywhere.
type Phase int

const (
	// PhaseAnonymous is a visitor with no session
	PhaseAnonymous Phase = iota
	// PhaseOnboarding is an authenticated account that has not finished onboarding
	PhaseOnboarding
	// PhaseAdmin is an onboarded organisation administrator
	PhaseAdmin
	// PhaseMember is an onboarded non-admin organisation member
	PhaseMember
)

// String returns the phase name
func (p Phase) String() string {
	switch p {
	case PhaseAnonymous:
		return "anonymous"
	case PhaseOnboarding:
		return "onboarding"
	case PhaseAdmin:
		return "admin"
	case PhaseMember:
		return "member"
	default:
		return "unknown"
	}
}

// Classify maps a session to exactly one phase. It only reads the
// session; redirecting is the route guard's job, and both must be fed
// the same snapshot.
func Classify(sess session.Session) Phase {
	switch {
	case !sess.IsLoggedIn:
		return PhaseAnonymous
	case !sess.HasCompletedOnboarding:
		return PhaseOnboarding
	case sess.IsAdmin():
		return PhaseAdmin
	default:
		return PhaseMember
	}
}

package session

import (
	"fmt"

	"github.com/skillsphere/skillsphere/internal/api"
	"github.com/skillsphere/skillsphere/internal/log"
)

// Role is the visitor's role inside their organisation. It is a closed
// two-variant enum; the backend never issues anything else.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
)

// Organisation is the visitor's organisation membership
type Organisation struct {
	ID   int
	Name string
	Role Role
}

// Session is the authenticated-identity-plus-authorization snapshot for
// the current visitor. It is replaced wholesale, never partially
// mutated, so no consumer can observe a torn read.
type Session struct {
	IsLoggedIn             bool
	Email                  string
	FirstName              string
	LastName               string
	Organisation           *Organisation
	HasCompletedOnboarding bool
}

// LoggedOut is the session value for an anonymous visitor
func LoggedOut() Session {
	return Session{}
}

// IsAdmin reports whether the visitor administers their organisation
func (s Session) IsAdmin() bool {
	return s.Organisation != nil && s.Organisation.Role == RoleAdmin
}

// FromPayload converts a backend session payload into a Session,
// enforcing the session invariants:
//
//   - a logged-out payload carries no identity at all
//   - completed onboarding implies an organisation is present
//
// A payload that violates them is rejected; the caller degrades to the
// logged-out session.
func FromPayload(p api.SessionPayload) (Session, error) {
	if !p.IsLoggedIn {
		return LoggedOut(), nil
	}

	if p.HasCompletedOnboarding && p.Organisation == nil {
		return Session{}, fmt.Errorf("session payload claims completed onboarding without an organisation")
	}

	s := Session{
		IsLoggedIn:             true,
		Email:                  p.Email,
		FirstName:              p.Firstname,
		LastName:               p.Lastname,
		HasCompletedOnboarding: p.HasCompletedOnboarding,
	}

	if p.Organisation != nil {
		role := Role(p.Organisation.Role)
		if role != RoleAdmin && role != RoleEmployee {
			// Unknown role strings get member semantics rather than a
			// dead end.
			log.DefaultLogger().Warn("unknown organisation role, treating as employee",
				"role", string(p.Organisation.Role),
			)
			role = RoleEmployee
		}
		s.Organisation = &Organisation{
			ID:   p.Organisation.ID,
			Name: p.Organisation.Name,
			Role: role,
		}
	}

	return s, nil
}

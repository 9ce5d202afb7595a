package route

import (
	"github.com/skillsphere/skillsphere/internal/session"
)

// Path identifies a navigable screen
type Path string

// Route surface relevant to the gate. Anything else is treated as
// protected, non-onboarding.
const (
	PathLanding    Path = "/"
	PathAuth       Path = "/auth"
	PathOnboarding Path = "/onboarding"
	PathDashboard  Path = "/dashboard"
	PathTerms      Path = "/terms"
	PathPrivacy    Path = "/privacy"
)

// publicPaths are reachable regardless of session state
var publicPaths = map[Path]struct{}{
	PathLanding: {},
	PathAuth:    {},
	PathTerms:   {},
	PathPrivacy: {},
}

// IsPublic reports whether path requires no session at all
func IsPublic(path Path) bool {
	_, ok := publicPaths[path]
	return ok
}

// Decide is the authorization gate, evaluated once per navigation.
// It returns the redirect target and true, or "", false for
// "no redirect". The rules run in fixed order:
//
//  1. a loading session defers the decision entirely — redirecting
//     before bootstrap resolves would bounce a returning
//     authenticated visitor to /auth
//  2. public paths never redirect
//  3. anonymous visitors go to /auth
//  4. authenticated visitors who haven't finished onboarding go to
//     /onboarding (unless already there)
//  5. otherwise, no redirect
//
// Decide is pure and idempotent: re-evaluating on the returned target
// yields no redirect.
func Decide(path Path, sess session.Session, loading bool) (Path, bool) {
	if loading {
		return "", false
	}
	if IsPublic(path) {
		return "", false
	}
	if !sess.IsLoggedIn {
		return PathAuth, true
	}
	if !sess.HasCompletedOnboarding && path != PathOnboarding {
		return PathOnboarding, true
	}
	return "", false
}

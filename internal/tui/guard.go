package tui

import "petdex/pkg/session"

// route is the top-level navigation decision for a session status.
type route int

const (
	// routeSpinner blocks rendering until the first credential check settles.
	routeSpinner route = iota
	// routeLogin shows the sign-in / sign-up screens.
	routeLogin
	// routeProtected renders the authenticated screens.
	routeProtected
)

// routeFor gates navigation on session status alone. It holds no state of
// its own: Unknown and Authenticating show the spinner, an authenticated
// session unlocks the protected screens, anything else falls back to login.
func routeFor(s session.Status) route {
	switch s {
	case session.StatusUnknown, session.StatusAuthenticating:
		return routeSpinner
	case session.StatusAuthenticated:
		return routeProtected
	default:
		return routeLogin
	}
}

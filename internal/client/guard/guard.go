// Package guard contains the three navigation predicates gating routes.
// They are pure functions over a session status snapshot with no cached
// decisions, so a session transition is always reflected on the next call.
package guard

import "github.com/avelichko/petbook/internal/client/session"

// Well-known routes redirect targets.
const (
	RouteRoot = "/"
	RouteHome = "/home"
)

// Decision is the outcome of evaluating a guard.
//
// While the session is still loading, Pending is true and the caller renders
// a neutral state without redirecting. Otherwise either Allowed is true, or
// RedirectTo names the target route; ReturnTo carries the originally
// requested location for a post-login return where that applies.
type Decision struct {
	Pending    bool
	Allowed    bool
	RedirectTo string
	ReturnTo   string
}

// RequireSession gates routes that need an authenticated session.
func RequireSession(st session.Status, requested string) Decision {
	if st.State == session.StateLoading {
		return Decision{Pending: true}
	}
	if st.State != session.StateAuthenticated {
		return Decision{RedirectTo: RouteRoot, ReturnTo: requested}
	}
	return Decision{Allowed: true}
}

// RequireNoSession gates login/registration/password-recovery routes, which
// an authenticated user must not see.
func RequireNoSession(st session.Status) Decision {
	if st.State == session.StateLoading {
		return Decision{Pending: true}
	}
	if st.State == session.StateAuthenticated {
		return Decision{RedirectTo: RouteHome}
	}
	return Decision{Allowed: true}
}

// RequireAdmin gates admin-only routes: authenticated and role 2, otherwise
// back to the root.
func RequireAdmin(st session.Status) Decision {
	if st.State == session.StateLoading {
		return Decision{Pending: true}
	}
	if st.State != session.StateAuthenticated || !st.Admin {
		return Decision{RedirectTo: RouteRoot}
	}
	return Decision{Allowed: true}
}

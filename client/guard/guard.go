// Package guard decides, per navigation, whether a screen renders or
// redirects. The decision is recomputed on every navigation and never
// cached across session changes. Client gating is a UX convenience;
// the server enforces the same role sets authoritatively.
package guard

import (
	"github.com/lefika/ripota/client/access"
	"github.com/lefika/ripota/core/user"
)

type Decision int

const (
	// Loading renders a neutral indicator while the session resolves.
	Loading Decision = iota
	// RedirectLogin sends unauthenticated visitors to the login entry
	// point. The requested location is not preserved.
	RedirectLogin
	// RedirectHome sends authenticated users without the required role
	// to the default landing screen.
	RedirectHome
	// Render lets the requested screen through.
	Render
)

func (d Decision) String() string {
	switch d {
	case RedirectLogin:
		return "redirect-login"
	case RedirectHome:
		return "redirect-home"
	case Render:
		return "render"
	default:
		return "loading"
	}
}

const (
	LoginPath = "/login"
	HomePath  = "/dashboard"
)

// Screen is a guarded route. An empty Roles set means any
// authenticated user.
type Screen struct {
	Path  string
	Roles []string
}

// Screens mirrors the product's route table.
var Screens = []Screen{
	{Path: "/dashboard"},
	{Path: "/report", Roles: []string{user.RoleLecturer}},
	{Path: "/reports", Roles: []string{user.RoleLecturer, user.RolePRL, user.RolePL}},
	{Path: "/classes", Roles: []string{user.RoleLecturer, user.RolePRL, user.RolePL}},
	{Path: "/monitoring"},
	{Path: "/rating"},
	{Path: "/courses", Roles: []string{user.RolePRL, user.RolePL}},
}

// Session is the read-only slice of the session manager the guard needs.
type Session interface {
	Loading() bool
	User() *user.User
}

// Evaluate decides what happens when sess navigates to a screen
// declaring the given required roles.
func Evaluate(sess Session, required []string) Decision {
	if sess.Loading() {
		return Loading
	}
	usr := sess.User()
	if usr == nil {
		return RedirectLogin
	}
	if !access.Allowed(usr.Role, required) {
		return RedirectHome
	}
	return Render
}

// EvaluatePath looks the screen up in the route table. Unknown paths
// are authentication-only gates.
func EvaluatePath(sess Session, path string) Decision {
	for _, s := range Screens {
		if s.Path == path {
			return Evaluate(sess, s.Roles)
		}
	}
	return Evaluate(sess, nil)
}

package main

import (
	"github.com/maxence-charriere/go-app/v10/pkg/app"

	"github.com/arjunmk/gms/internal/gms"
)

// requireRole gates a page behind a session with the given role. No
// session goes to login; a session with a different role goes to that
// role's own home rather than being logged out. Returns the user when
// the caller may proceed.
func requireRole(ctx app.Context, role gms.Role) (*gms.User, bool) {
	session.Hydrate()
	u := session.Current()
	if u == nil {
		ctx.Navigate("/login")
		return nil, false
	}
	if u.Role != role {
		ctx.Navigate(u.Role.HomeRoute())
		return nil, false
	}
	return u, true
}

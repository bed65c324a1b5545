package main

import (
	"github.com/maxence-charriere/go-app/v10/pkg/app"

	"github.com/arjunmk/gms/internal/gms"
)

type navLink struct {
	label string
	href  string
}

func linksFor(role gms.Role) []navLink {
	switch role {
	case gms.RoleEmployee:
		return []navLink{
			{"Home", "/employee-home"},
			{"File Grievance", "/apply-grievance"},
			{"Help", "/help"},
			{"Profile", "/employee-profile"},
		}
	case gms.RoleOfficer:
		return []navLink{
			{"Home", "/officer-home"},
			{"Legal References", "/legal-references"},
			{"Profile", "/officer-profile"},
		}
	case gms.RoleAdmin:
		return []navLink{
			{"Dashboard", "/admin-home"},
		}
	default:
		return nil
	}
}

// Navbar is the shared top bar. Pages embed it with their role and the
// active href so the current link highlights.
type Navbar struct {
	app.Compo

	Role   gms.Role
	Active string
}

func (n *Navbar) onLogout(ctx app.Context, e app.Event) {
	e.PreventDefault()
	ctx.Async(func() {
		flow.Logout(ctx)
		ctx.Dispatch(func(ctx app.Context) {
			ctx.Navigate("/login")
		})
	})
}

func (n *Navbar) Render() app.UI {
	u := session.Current()
	name := ""
	if u != nil {
		name = u.Name
	}

	return app.Nav().Class("navbar").Body(
		app.Div().Class("navbar-brand").Text("Grievance Management"),
		app.Div().Class("navbar-links").Body(
			app.Range(linksFor(n.Role)).Slice(func(i int) app.UI {
				l := linksFor(n.Role)[i]
				cls := "nav-link"
				if l.href == n.Active {
					cls += " active"
				}
				return app.A().Class(cls).Href(l.href).Text(l.label)
			}),
		),
		app.Div().Class("navbar-user").Body(
			app.Span().Class("nav-username").Text(name),
			app.Button().Class("nav-logout").Text("Logout").OnClick(n.onLogout),
		),
	)
}

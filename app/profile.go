package main

import (
	"github.com/maxence-charriere/go-app/v10/pkg/app"

	"github.com/arjunmk/gms/internal/gms"
	"github.com/arjunmk/gms/internal/workflow"
)

// ProfileView renders the current user's profile for either role. The
// profile DTO's field names drift across backend versions, so every
// displayed value goes through gms.FirstField with the known candidate
// keys.
type ProfileView struct {
	app.Compo

	role string

	dto    map[string]any
	loaded bool
	errMsg string
}

func (v *ProfileView) OnNav(ctx app.Context) {
	if _, ok := requireRole(ctx, gms.Role(v.role)); !ok {
		return
	}
	ctx.Async(func() {
		dto, err := client.CurrentUser(ctx)
		ctx.Dispatch(func(ctx app.Context) {
			v.loaded = true
			if err != nil {
				v.errMsg = workflow.Message(err, "Could not load your profile.")
				return
			}
			v.dto = dto
		})
	})
}

func (v *ProfileView) active() string {
	if v.role == "OFFICER" {
		return "/officer-profile"
	}
	return "/employee-profile"
}

func (v *ProfileView) Render() app.UI {
	row := func(label string, keys ...string) app.UI {
		return detailRow(label, gms.FirstField(v.dto, keys...))
	}

	return app.Div().Class("page").Body(
		&Navbar{Role: gms.Role(v.role), Active: v.active()},

		app.Main().Class("content content-narrow").Body(
			app.H1().Text("My Profile"),

			app.If(!v.loaded, func() app.UI {
				return app.Div().Class("loading-spinner")
			}).ElseIf(v.errMsg != "", func() app.UI {
				return app.Div().Class("alert alert-error").Text(v.errMsg)
			}).Else(func() app.UI {
				return app.Div().Class("detail-card").Body(
					row("User number", "userNum", "empNum", "officerNum"),
					row("Name", "name", "fullName", "empName", "officerName"),
					row("Email", "email", "emailId"),
					row("Contact", "contactNum", "contact", "phone"),
					app.If(v.role == "OFFICER", func() app.UI {
						return app.Div().Body(
							row("Category", "categoryName", "categoryNum"),
						)
					}).Else(func() app.UI {
						return app.Div().Body(
							row("Department", "department", "dept"),
							row("Role", "employeeRole", "designation", "role"),
							row("Address", "address"),
						)
					}),
				)
			}),
		),
	)
}

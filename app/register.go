package main

import (
	"github.com/maxence-charriere/go-app/v10/pkg/app"

	"github.com/arjunmk/gms/internal/api"
	"github.com/arjunmk/gms/internal/gms"
	"github.com/arjunmk/gms/internal/workflow"
)

type RegisterView struct {
	app.Compo

	role string
	reg  api.Registration

	busy   bool
	errMsg string
	okMsg  string
}

func (v *RegisterView) OnInit() {
	v.role = "EMPLOYEE"
}

func (v *RegisterView) field(label, id string, typ string, get func() string, set func(string)) app.UI {
	return app.Div().Class("form-field").Body(
		app.Label().For(id).Text(label),
		app.Input().ID(id).Type(typ).Value(get()).
			OnInput(func(ctx app.Context, e app.Event) {
				set(ctx.JSSrc().Get("value").String())
			}),
	)
}

func (v *RegisterView) onSubmit(ctx app.Context, e app.Event) {
	e.PreventDefault()
	if v.busy {
		return
	}
	if v.reg.UserNum == "" || v.reg.Name == "" || v.reg.Password == "" {
		v.errMsg = "Please fill in user number, name and password"
		return
	}
	v.busy = true
	v.errMsg = ""
	v.okMsg = ""

	role := gms.Role(v.role)
	reg := v.reg

	ctx.Async(func() {
		err := client.Register(ctx, role, reg)
		ctx.Dispatch(func(ctx app.Context) {
			v.busy = false
			if err != nil {
				v.errMsg = workflow.Message(err, "Registration failed. Please try again.")
				return
			}
			v.okMsg = "Registration successful! You can sign in now."
			v.reg = api.Registration{}
		})
	})
}

func (v *RegisterView) Render() app.UI {
	return app.Div().Class("auth-page").Body(
		app.Div().Class("auth-card auth-card-wide").Body(
			app.H1().Text("Grievance Management System"),
			app.H2().Text("Create an account"),

			app.If(v.errMsg != "", func() app.UI {
				return app.Div().Class("alert alert-error").Text(v.errMsg)
			}),
			app.If(v.okMsg != "", func() app.UI {
				return app.Div().Class("alert alert-success").Body(
					app.Text(v.okMsg+" "),
					app.A().Href("/login").Text("Go to sign in"),
				)
			}),

			app.Form().OnSubmit(v.onSubmit).Body(
				app.Label().For("regRole").Text("Register as"),
				app.Select().ID("regRole").
					OnChange(func(ctx app.Context, e app.Event) {
						v.role = ctx.JSSrc().Get("value").String()
						if v.role == "OFFICER" && v.reg.CategoryNum == "" {
							v.reg.CategoryNum = gms.Categories[0].Num
						}
					}).
					Body(
						app.Option().Value("EMPLOYEE").Selected(v.role == "EMPLOYEE").Text("Employee"),
						app.Option().Value("OFFICER").Selected(v.role == "OFFICER").Text("Officer"),
					),

				v.field("User number", "regUserNum", "text",
					func() string { return v.reg.UserNum }, func(s string) { v.reg.UserNum = s }),
				v.field("Full name", "regName", "text",
					func() string { return v.reg.Name }, func(s string) { v.reg.Name = s }),
				v.field("Email", "regEmail", "email",
					func() string { return v.reg.Email }, func(s string) { v.reg.Email = s }),
				v.field("Password", "regPassword", "password",
					func() string { return v.reg.Password }, func(s string) { v.reg.Password = s }),
				v.field("Contact number", "regContact", "text",
					func() string { return v.reg.ContactNum }, func(s string) { v.reg.ContactNum = s }),
				v.field("Address", "regAddress", "text",
					func() string { return v.reg.Address }, func(s string) { v.reg.Address = s }),

				app.If(v.role == "EMPLOYEE", func() app.UI {
					return app.Div().Body(
						v.field("Department", "regDept", "text",
							func() string { return v.reg.Department }, func(s string) { v.reg.Department = s }),
						v.field("Job title", "regJob", "text",
							func() string { return v.reg.EmployeeRole }, func(s string) { v.reg.EmployeeRole = s }),
					)
				}).Else(func() app.UI {
					return app.Div().Body(
						app.Label().For("regCategory").Text("Grievance category"),
						app.Select().ID("regCategory").
							OnChange(func(ctx app.Context, e app.Event) {
								v.reg.CategoryNum = ctx.JSSrc().Get("value").String()
							}).
							Body(
								app.Range(gms.Categories).Slice(func(i int) app.UI {
									c := gms.Categories[i]
									return app.Option().Value(c.Num).
										Selected(v.reg.CategoryNum == c.Num).
										Text(c.Name)
								}),
							),
						v.field("Authorization key", "regAuthKey", "password",
							func() string { return v.reg.AuthKey }, func(s string) { v.reg.AuthKey = s }),
					)
				}),

				app.Button().Type("submit").Class("btn btn-primary").
					Disabled(v.busy).
					Text(registerLabel(v.busy)),
			),

			app.P().Class("auth-switch").Body(
				app.Text("Already registered? "),
				app.A().Href("/login").Text("Sign in"),
			),
		),
	)
}

func registerLabel(busy bool) string {
	if busy {
		return "Creating account..."
	}
	return "Create account"
}

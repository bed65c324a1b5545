package main

import (
	"github.com/maxence-charriere/go-app/v10/pkg/app"

	"github.com/arjunmk/gms/internal/api"
	"github.com/arjunmk/gms/internal/workflow"
)

type LoginView struct {
	app.Compo

	userNum  string
	password string
	authKey  string
	role     string

	busy   bool
	errMsg string
}

func (v *LoginView) OnInit() {
	v.role = "EMPLOYEE"
}

func (v *LoginView) OnNav(ctx app.Context) {
	// An authenticated user has no business on the login page.
	session.Hydrate()
	if u := session.Current(); u != nil {
		ctx.Navigate(u.Role.HomeRoute())
	}
}

func (v *LoginView) onSubmit(ctx app.Context, e app.Event) {
	e.PreventDefault()
	if v.busy {
		return
	}
	if v.userNum == "" || v.password == "" {
		v.errMsg = "Please enter your user number and password"
		return
	}
	v.busy = true
	v.errMsg = ""

	creds := api.Credentials{UserNum: v.userNum, Password: v.password}
	if v.role != "EMPLOYEE" {
		creds.AuthKey = v.authKey
	}

	ctx.Async(func() {
		u, err := flow.Login(ctx, creds)
		ctx.Dispatch(func(ctx app.Context) {
			v.busy = false
			if err != nil {
				v.errMsg = workflow.Message(err, "Login failed")
				return
			}
			ctx.Navigate(u.Role.HomeRoute())
		})
	})
}

func (v *LoginView) Render() app.UI {
	return app.Div().Class("auth-page").Body(
		app.Div().Class("auth-card").Body(
			app.H1().Text("Grievance Management System"),
			app.H2().Text("Sign in"),

			app.If(v.errMsg != "", func() app.UI {
				return app.Div().Class("alert alert-error").Text(v.errMsg)
			}),

			app.Form().OnSubmit(v.onSubmit).Body(
				app.Label().For("userNum").Text("User number"),
				app.Input().ID("userNum").Type("text").Value(v.userNum).
					Placeholder("e.g. E001").
					OnInput(func(ctx app.Context, e app.Event) {
						v.userNum = ctx.JSSrc().Get("value").String()
					}),

				app.Label().For("password").Text("Password"),
				app.Input().ID("password").Type("password").Value(v.password).
					OnInput(func(ctx app.Context, e app.Event) {
						v.password = ctx.JSSrc().Get("value").String()
					}),

				app.Label().For("role").Text("Role"),
				app.Select().ID("role").
					OnChange(func(ctx app.Context, e app.Event) {
						v.role = ctx.JSSrc().Get("value").String()
					}).
					Body(
						app.Option().Value("EMPLOYEE").Selected(v.role == "EMPLOYEE").Text("Employee"),
						app.Option().Value("OFFICER").Selected(v.role == "OFFICER").Text("Officer"),
						app.Option().Value("ADMIN").Selected(v.role == "ADMIN").Text("Administrator"),
					),

				app.If(v.role != "EMPLOYEE", func() app.UI {
					return app.Div().Body(
						app.Label().For("authKey").Text("Authorization key"),
						app.Input().ID("authKey").Type("password").Value(v.authKey).
							OnInput(func(ctx app.Context, e app.Event) {
								v.authKey = ctx.JSSrc().Get("value").String()
							}),
					)
				}),

				app.Button().Type("submit").Class("btn btn-primary").
					Disabled(v.busy).
					Text(loginLabel(v.busy)),
			),

			app.P().Class("auth-switch").Body(
				app.Text("New here? "),
				app.A().Href("/register").Text("Create an account"),
			),
		),
	)
}

func loginLabel(busy bool) string {
	if busy {
		return "Signing in..."
	}
	return "Sign in"
}

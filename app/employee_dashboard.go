package main

import (
	"fmt"

	"github.com/maxence-charriere/go-app/v10/pkg/app"

	"github.com/arjunmk/gms/internal/gms"
	"github.com/arjunmk/gms/internal/workflow"
)

type EmployeeDashboard struct {
	app.Compo

	grievances []gms.Grievance
	counts     gms.StatusCounts
	filter     gms.Status
	loaded     bool
	errMsg     string

	fetch fetchGuard
}

func (v *EmployeeDashboard) OnNav(ctx app.Context) {
	if _, ok := requireRole(ctx, gms.RoleEmployee); !ok {
		return
	}
	v.load(ctx)
}

func (v *EmployeeDashboard) load(ctx app.Context) {
	token := v.fetch.Begin()
	ctx.Async(func() {
		gs, err := client.EmployeeGrievances(ctx, "")
		ctx.Dispatch(func(ctx app.Context) {
			if !v.fetch.Current(token) {
				return
			}
			v.loaded = true
			if err != nil {
				v.errMsg = workflow.Message(err, "Could not load your grievances.")
				return
			}
			v.errMsg = ""
			v.grievances = gs
			v.counts = gms.CountByStatus(gs)
		})
	})
}

func (v *EmployeeDashboard) visible() []gms.Grievance {
	return gms.FilterByStatus(v.grievances, v.filter)
}

func (v *EmployeeDashboard) Render() app.UI {
	tab := func(label string, count int, status gms.Status) app.UI {
		cls := "filter-tab"
		if v.filter == status {
			cls += " active"
		}
		return app.Button().Class(cls).
			Text(fmt.Sprintf("%s (%d)", label, count)).
			OnClick(func(ctx app.Context, e app.Event) {
				v.filter = status
			})
	}

	return app.Div().Class("page").Body(
		&Navbar{Role: gms.RoleEmployee, Active: "/employee-home"},

		app.Main().Class("content").Body(
			app.Div().Class("page-header").Body(
				app.H1().Text("My Grievances"),
				app.Button().Class("btn btn-primary").Text("File New Grievance").
					OnClick(func(ctx app.Context, e app.Event) {
						ctx.Navigate("/apply-grievance")
					}),
			),

			app.If(v.errMsg != "", func() app.UI {
				return app.Div().Class("alert alert-error").Text(v.errMsg)
			}),

			app.Div().Class("filter-tabs").Body(
				tab("All", v.counts.All, gms.StatusUnknown),
				tab("Pending", v.counts.Pending, gms.StatusPending),
				tab("In Progress", v.counts.InProcess, gms.StatusInProcess),
				tab("Resolved", v.counts.Resolved, gms.StatusResolved),
			),

			app.If(!v.loaded, func() app.UI {
				return app.Div().Class("loading-spinner")
			}).ElseIf(len(v.visible()) == 0, func() app.UI {
				return app.Div().Class("empty-state").Text("No grievances to show.")
			}).Else(func() app.UI {
				return app.Div().Class("card-list").Body(
					app.Range(v.visible()).Slice(func(i int) app.UI {
						return v.renderCard(v.visible()[i])
					}),
				)
			}),
		),
	)
}

func (v *EmployeeDashboard) renderCard(g gms.Grievance) app.UI {
	st := gms.NormalizeStatus(g.Status)
	return app.Div().Class("grievance-card").
		OnClick(func(ctx app.Context, e app.Event) {
			ctx.Navigate("/grievance-details/" + g.GrvnNum)
		}).
		Body(
			app.Div().Class("card-row").Body(
				app.Span().Class("card-id").Text(g.GrvnNum),
				app.Span().Class("status-badge status-"+string(st)).Text(st.Label()),
			),
			app.H3().Text(g.Subject),
			app.Div().Class("card-meta").Body(
				app.Span().Text(gms.CategoryName(g.CategoryNum)),
				app.Span().Text(g.Severity),
				app.Span().Text(g.DateFiled),
			),
		)
}

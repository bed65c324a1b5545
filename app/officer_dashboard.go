package main

import (
	"fmt"

	"github.com/maxence-charriere/go-app/v10/pkg/app"

	"github.com/arjunmk/gms/internal/gms"
	"github.com/arjunmk/gms/internal/workflow"
)

// rowCanAssign gates the list-row Assign action: the self-assignment
// flag must be on and the row must pass the pending/not-cached precheck.
func rowCanAssign(g gms.Grievance, cached bool, f gms.Flags) bool {
	return f.SelfAssignment && gms.CanAssignGrievance(g, cached)
}

type OfficerDashboard struct {
	app.Compo

	grievances []gms.Grievance
	counts     gms.StatusCounts
	filter     gms.Status
	loaded     bool
	busy       bool
	errMsg     string
	flash      string

	fetch fetchGuard
}

func (v *OfficerDashboard) OnNav(ctx app.Context) {
	if _, ok := requireRole(ctx, gms.RoleOfficer); !ok {
		return
	}
	v.load(ctx)
}

func (v *OfficerDashboard) load(ctx app.Context) {
	token := v.fetch.Begin()
	ctx.Async(func() {
		gs, err := client.OfficerGrievances(ctx)
		ctx.Dispatch(func(ctx app.Context) {
			if !v.fetch.Current(token) {
				return
			}
			v.loaded = true
			if err != nil {
				v.errMsg = workflow.Message(err, "Could not load the grievance queue.")
				return
			}
			v.errMsg = ""
			v.grievances = gs
			v.counts = gms.CountByStatus(gs)
		})
	})
}

func (v *OfficerDashboard) visible() []gms.Grievance {
	return gms.FilterByStatus(v.grievances, v.filter)
}

// onAssign claims a grievance straight from the list row. Success caches
// the id inside the workflow and re-fetches the queue; the local copy is
// never patched optimistically.
func (v *OfficerDashboard) onAssign(ctx app.Context, g gms.Grievance) {
	if v.busy {
		return
	}
	v.busy = true
	ctx.Async(func() {
		err := flow.Assign(ctx, g)
		ctx.Dispatch(func(ctx app.Context) {
			v.busy = false
			if err != nil {
				v.errMsg = workflow.Message(err, "Failed to assign grievance. Please try again.")
				return
			}
			v.errMsg = ""
			v.flash = "Grievance " + g.GrvnNum + " has been assigned to you successfully!"
			v.load(ctx)
		})
	})
}

// rowAction renders the trailing cell: the assignment badge, an Assign
// button when the row qualifies, or nothing.
func (v *OfficerDashboard) rowAction(g gms.Grievance) app.UI {
	cached := assigned.Contains(g.GrvnNum)
	return app.If(cached, func() app.UI {
		return app.Span().Class("assigned-badge").Text("Assigned to you")
	}).ElseIf(rowCanAssign(g, cached, flags.All()), func() app.UI {
		return app.Button().Class("btn btn-small").Disabled(v.busy).Text("Assign").
			OnClick(func(ctx app.Context, e app.Event) {
				e.Call("stopPropagation")
				v.onAssign(ctx, g)
			})
	})
}

func (v *OfficerDashboard) Render() app.UI {
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
		&Navbar{Role: gms.RoleOfficer, Active: "/officer-home"},

		app.Main().Class("content").Body(
			app.Div().Class("page-header").Body(
				app.H1().Text("Grievance Queue"),
				app.Button().Class("btn").Text("Refresh").
					OnClick(func(ctx app.Context, e app.Event) {
						v.load(ctx)
					}),
			),

			app.If(v.flash != "", func() app.UI {
				return app.Div().Class("alert alert-success").Text(v.flash)
			}),
			app.If(v.errMsg != "", func() app.UI {
				return app.Div().Class("alert alert-error").Text(v.errMsg)
			}),

			app.Div().Class("filter-tabs").Body(
				tab("All", v.counts.All, gms.StatusUnknown),
				tab("Pending", v.counts.Pending, gms.StatusPending),
				tab("In Process", v.counts.InProcess, gms.StatusInProcess),
				tab("Resolved", v.counts.Resolved, gms.StatusResolved),
			),

			app.If(!v.loaded, func() app.UI {
				return app.Div().Class("loading-spinner")
			}).ElseIf(len(v.visible()) == 0, func() app.UI {
				return app.Div().Class("empty-state").Text("No grievances match this filter.")
			}).ElseIf(flags.All().OfficerTableView, func() app.UI {
				return v.renderTable()
			}).Else(func() app.UI {
				return v.renderCards()
			}),
		),
	)
}

func (v *OfficerDashboard) renderTable() app.UI {
	return app.Table().Class("grievance-table").Body(
		app.THead().Body(
			app.Tr().Body(
				app.Th().Text("ID"),
				app.Th().Text("Subject"),
				app.Th().Text("Severity"),
				app.Th().Text("Filed"),
				app.Th().Text("Status"),
				app.Th().Text(""),
			),
		),
		app.TBody().Body(
			app.Range(v.visible()).Slice(func(i int) app.UI {
				g := v.visible()[i]
				st := gms.NormalizeStatus(g.Status)
				return app.Tr().
					OnClick(func(ctx app.Context, e app.Event) {
						ctx.Navigate("/officer/grievance/" + g.GrvnNum)
					}).
					Body(
						app.Td().Text(g.GrvnNum),
						app.Td().Text(g.Subject),
						app.Td().Text(g.Severity),
						app.Td().Text(g.DateFiled),
						app.Td().Body(
							app.Span().Class("status-badge status-"+string(st)).Text(st.Label()),
						),
						app.Td().Body(v.rowAction(g)),
					)
			}),
		),
	)
}

func (v *OfficerDashboard) renderCards() app.UI {
	return app.Div().Class("card-list").Body(
		app.Range(v.visible()).Slice(func(i int) app.UI {
			g := v.visible()[i]
			st := gms.NormalizeStatus(g.Status)
			return app.Div().Class("grievance-card").
				OnClick(func(ctx app.Context, e app.Event) {
					ctx.Navigate("/officer/grievance/" + g.GrvnNum)
				}).
				Body(
					app.Div().Class("card-row").Body(
						app.Span().Class("card-id").Text(g.GrvnNum),
						app.Span().Class("status-badge status-"+string(st)).Text(st.Label()),
					),
					app.H3().Text(g.Subject),
					app.Div().Class("card-meta").Body(
						app.Span().Text(g.Severity),
						app.Span().Text(g.DateFiled),
						v.rowAction(g),
					),
				)
		}),
	)
}

package main

import (
	"strings"

	"github.com/maxence-charriere/go-app/v10/pkg/app"

	"github.com/arjunmk/gms/internal/gms"
	"github.com/arjunmk/gms/internal/workflow"
)

type GrievanceDetailView struct {
	app.Compo

	grvnNum string
	detail  workflow.Detail
	loaded  bool
	errMsg  string

	// Appeal modal
	showAppeal   bool
	appealTarget string // investigation num, empty for grievance-level
	appealText   string
	appealBusy   bool
	appealErr    string
	flash        string
}

func (v *GrievanceDetailView) OnNav(ctx app.Context) {
	if _, ok := requireRole(ctx, gms.RoleEmployee); !ok {
		return
	}
	path := ctx.Page().URL().Path
	v.grvnNum = strings.TrimPrefix(path, "/grievance-details/")
	v.load(ctx)
}

func (v *GrievanceDetailView) load(ctx app.Context) {
	ctx.Async(func() {
		d, err := flow.EmployeeDetail(ctx, v.grvnNum)
		ctx.Dispatch(func(ctx app.Context) {
			v.loaded = true
			if err != nil {
				v.errMsg = workflow.Message(err, "Could not load grievance "+v.grvnNum+".")
				return
			}
			v.errMsg = ""
			v.detail = d
		})
	})
}

func (v *GrievanceDetailView) openAppeal(investigationNum string) {
	v.showAppeal = true
	v.appealTarget = investigationNum
	v.appealText = ""
	v.appealErr = ""
}

// onAppealSubmit keeps the modal open on failure so the text survives.
func (v *GrievanceDetailView) onAppealSubmit(ctx app.Context, e app.Event) {
	e.PreventDefault()
	if v.appealBusy {
		return
	}
	v.appealBusy = true
	v.appealErr = ""
	target := v.appealTarget
	text := v.appealText

	ctx.Async(func() {
		err := flow.SubmitAppeal(ctx, v.grvnNum, target, text)
		ctx.Dispatch(func(ctx app.Context) {
			v.appealBusy = false
			if err != nil {
				v.appealErr = workflow.Message(err, "Failed to submit appeal. Please try again.")
				return
			}
			v.showAppeal = false
			v.flash = "Appeal submitted successfully!"
			v.load(ctx)
		})
	})
}

func (v *GrievanceDetailView) Render() app.UI {
	if !v.loaded {
		return app.Div().Class("page").Body(
			&Navbar{Role: gms.RoleEmployee, Active: "/employee-home"},
			app.Main().Class("content").Body(app.Div().Class("loading-spinner")),
		)
	}
	if v.errMsg != "" {
		return app.Div().Class("page").Body(
			&Navbar{Role: gms.RoleEmployee, Active: "/employee-home"},
			app.Main().Class("content").Body(
				app.Div().Class("alert alert-error").Text(v.errMsg),
				app.Button().Class("btn").Text("Back to Dashboard").
					OnClick(func(ctx app.Context, e app.Event) {
						ctx.Navigate("/employee-home")
					}),
			),
		)
	}

	g := v.detail.Grievance
	st := gms.NormalizeStatus(g.Status)

	return app.Div().Class("page").Body(
		&Navbar{Role: gms.RoleEmployee, Active: "/employee-home"},

		app.Main().Class("content").Body(
			app.If(v.flash != "", func() app.UI {
				return app.Div().Class("alert alert-success").Text(v.flash)
			}),

			app.Div().Class("page-header").Body(
				app.H1().Text("Grievance "+g.GrvnNum),
				app.Span().Class("status-badge status-"+string(st)).Text(st.Label()),
			),

			app.Div().Class("detail-card").Body(
				detailRow("Subject", g.Subject),
				detailRow("Category", gms.CategoryName(g.CategoryNum)),
				detailRow("Severity", g.Severity),
				detailRow("Filed", g.DateFiled),
				detailRow("Description", g.Description),
			),

			app.If(v.detail.Resolution != nil, func() app.UI {
				r := v.detail.Resolution
				return app.Div().Class("detail-card resolution-card").Body(
					app.H2().Text("Resolution"),
					detailRow("Summary", r.Summary),
					detailRow("Resolved on", r.ResolvedDate),
				)
			}),

			v.renderTimeline(),

			app.If(st != gms.StatusResolved, func() app.UI {
				return app.Button().Class("btn").Text("Raise an Appeal").
					OnClick(func(ctx app.Context, e app.Event) {
						v.openAppeal("")
					})
			}),

			app.If(v.showAppeal, func() app.UI {
				return v.renderAppealModal()
			}),
		),
	)
}

func (v *GrievanceDetailView) renderTimeline() app.UI {
	if v.detail.TimelineErr != nil {
		return app.Div().Class("alert alert-warning").
			Text("The investigation timeline could not be loaded right now.")
	}
	tl := v.detail.Timeline
	if tl == nil || (len(tl.Investigations) == 0 && len(tl.GrievanceLevelAppeals) == 0) {
		return app.Div().Class("empty-state").Text("No investigations yet.")
	}

	return app.Div().Class("timeline").Body(
		app.H2().Text("Timeline"),
		app.Range(tl.Investigations).Slice(func(i int) app.UI {
			inv := tl.Investigations[i]
			return app.Div().Class("timeline-item").Body(
				app.Div().Class("timeline-head").Body(
					app.Span().Class("timeline-id").Text(inv.InvestigationNum),
					app.Span().Class("timeline-date").Text(inv.InvestigationDate),
					app.If(inv.Ended(), func() app.UI {
						return app.Span().Class("timeline-ended").Text("Ended " + inv.EndDate)
					}),
				),
				detailRow("Findings", inv.Findings),
				app.If(inv.Remarks != "", func() app.UI { return detailRow("Remarks", inv.Remarks) }),
				app.If(inv.Outcome != "", func() app.UI { return detailRow("Outcome", inv.Outcome) }),
				app.Range(inv.Appeals).Slice(func(j int) app.UI {
					a := inv.Appeals[j]
					return app.Div().Class("appeal-item").Body(
						app.Span().Class("appeal-date").Text(a.AppealDate),
						app.Span().Text(a.AppealContent),
					)
				}),
				app.Button().Class("btn btn-small").Text("Appeal this investigation").
					OnClick(func(ctx app.Context, e app.Event) {
						v.openAppeal(inv.InvestigationNum)
					}),
			)
		}),
		app.Range(tl.GrievanceLevelAppeals).Slice(func(i int) app.UI {
			a := tl.GrievanceLevelAppeals[i]
			return app.Div().Class("appeal-item appeal-grievance").Body(
				app.Span().Class("appeal-date").Text(a.AppealDate),
				app.Span().Text(a.AppealContent),
			)
		}),
	)
}

func (v *GrievanceDetailView) renderAppealModal() app.UI {
	title := "Appeal Grievance " + v.grvnNum
	if v.appealTarget != "" {
		title = "Appeal Investigation " + v.appealTarget
	}
	return app.Div().Class("modal-overlay").Body(
		app.Div().Class("modal").Body(
			app.H2().Text(title),
			app.If(v.appealErr != "", func() app.UI {
				return app.Div().Class("alert alert-error").Text(v.appealErr)
			}),
			app.Form().OnSubmit(v.onAppealSubmit).Body(
				app.Textarea().Rows(5).
					Placeholder("Explain why you disagree with this outcome.").
					Text(v.appealText).
					OnInput(func(ctx app.Context, e app.Event) {
						v.appealText = ctx.JSSrc().Get("value").String()
					}),
				app.Div().Class("modal-actions").Body(
					app.Button().Type("button").Class("btn").Text("Cancel").
						OnClick(func(ctx app.Context, e app.Event) {
							v.showAppeal = false
						}),
					app.Button().Type("submit").Class("btn btn-primary").
						Disabled(v.appealBusy).
						Text("Submit Appeal"),
				),
			),
		),
	)
}

func detailRow(label, value string) app.UI {
	if value == "" {
		value = "N/A"
	}
	return app.Div().Class("detail-row").Body(
		app.Span().Class("detail-label").Text(label),
		app.Span().Class("detail-value").Text(value),
	)
}

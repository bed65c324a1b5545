package main

import (
	"strings"

	"github.com/maxence-charriere/go-app/v10/pkg/app"

	"github.com/arjunmk/gms/internal/gms"
	"github.com/arjunmk/gms/internal/workflow"
)

type OfficerGrievanceView struct {
	app.Compo

	grvnNum  string
	detail   workflow.Detail
	loaded   bool
	notFound bool
	errMsg   string
	flash    string

	// Investigation dialog. editingNum empty means "add new"; a failed
	// submit leaves the dialog open with the form untouched.
	showDialog bool
	editingNum string
	form       workflow.InvestigationForm
	dialogErr  string
	busy       bool

	// Legal reference picker
	refs        []gms.LegalReference
	selectedRef string
}

func (v *OfficerGrievanceView) OnNav(ctx app.Context) {
	if _, ok := requireRole(ctx, gms.RoleOfficer); !ok {
		return
	}
	path := ctx.Page().URL().Path
	v.grvnNum = strings.TrimPrefix(path, "/officer/grievance/")
	v.load(ctx)
	v.loadRefs(ctx)
}

func (v *OfficerGrievanceView) load(ctx app.Context) {
	ctx.Async(func() {
		d, err := flow.OfficerDetail(ctx, v.grvnNum)
		ctx.Dispatch(func(ctx app.Context) {
			v.loaded = true
			if err == workflow.ErrNotFound {
				v.notFound = true
				return
			}
			if err != nil {
				v.errMsg = workflow.Message(err, "Could not load grievance "+v.grvnNum+".")
				return
			}
			v.errMsg = ""
			v.detail = d
		})
	})
}

func (v *OfficerGrievanceView) loadRefs(ctx app.Context) {
	ctx.Async(func() {
		refs, err := client.LegalReferences(ctx)
		if err != nil {
			app.Log("legal references:", err)
			return
		}
		ctx.Dispatch(func(ctx app.Context) {
			v.refs = refs
			if v.selectedRef == "" && len(refs) > 0 {
				v.selectedRef = refs[0].RefID
			}
		})
	})
}

// mutate runs a lifecycle action and re-fetches the detail on success.
// The local copy is never patched optimistically.
func (v *OfficerGrievanceView) mutate(ctx app.Context, action func(app.Context) error, success string, onErr func(error)) {
	if v.busy {
		return
	}
	v.busy = true
	ctx.Async(func() {
		err := action(ctx)
		ctx.Dispatch(func(ctx app.Context) {
			v.busy = false
			if err != nil {
				onErr(err)
				return
			}
			v.flash = success
			v.dialogErr = ""
			v.showDialog = false
			v.load(ctx)
		})
	})
}

func (v *OfficerGrievanceView) onAssign(ctx app.Context, e app.Event) {
	g := v.detail.Grievance
	v.mutate(ctx,
		func(ctx app.Context) error { return flow.Assign(ctx, g) },
		"Grievance "+g.GrvnNum+" has been assigned to you successfully!",
		func(err error) {
			v.errMsg = workflow.Message(err, "Failed to assign grievance. Please try again.")
		})
}

func (v *OfficerGrievanceView) openAddDialog() {
	v.showDialog = true
	v.editingNum = ""
	v.form = workflow.InvestigationForm{}
	v.dialogErr = ""
}

func (v *OfficerGrievanceView) openEditDialog(inv gms.Investigation) {
	v.showDialog = true
	v.editingNum = inv.InvestigationNum
	v.form = workflow.InvestigationForm{
		Findings: inv.Findings,
		Remarks:  inv.Remarks,
		Outcome:  inv.Outcome,
	}
	v.dialogErr = ""
}

func (v *OfficerGrievanceView) onDialogSubmit(ctx app.Context, e app.Event) {
	e.PreventDefault()
	g := v.detail.Grievance
	form := v.form
	editing := v.editingNum

	if editing == "" {
		v.mutate(ctx,
			func(ctx app.Context) error { return flow.AddInvestigation(ctx, g, form) },
			"Investigation added successfully!",
			func(err error) {
				v.dialogErr = workflow.Message(err, "Failed to add investigation. Please try again.")
			})
		return
	}
	v.mutate(ctx,
		func(ctx app.Context) error { return flow.UpdateInvestigation(ctx, editing, form) },
		"Investigation updated successfully!",
		func(err error) {
			v.dialogErr = workflow.Message(err, "Failed to update investigation. Please try again.")
		})
}

func (v *OfficerGrievanceView) onEnd(ctx app.Context, inv gms.Investigation) {
	ok := app.Window().Call("confirm", "End investigation "+inv.InvestigationNum+"? This cannot be undone.").Bool()
	if !ok {
		return
	}
	v.mutate(ctx,
		func(ctx app.Context) error { return flow.EndInvestigation(ctx, inv) },
		"Investigation ended successfully!",
		func(err error) {
			v.errMsg = workflow.Message(err, "Failed to end investigation. Please try again.")
		})
}

func (v *OfficerGrievanceView) onIntendedResolve(ctx app.Context, e app.Event) {
	g := v.detail.Grievance
	ok := app.Window().Call("confirm", "Mark grievance "+g.GrvnNum+" as intended for resolution?").Bool()
	if !ok {
		return
	}
	v.mutate(ctx,
		func(ctx app.Context) error { return flow.IntendedResolve(ctx, g) },
		"Grievance marked for resolution.",
		func(err error) {
			v.errMsg = workflow.Message(err, "Action failed.")
		})
}

func (v *OfficerGrievanceView) onApplyRef(ctx app.Context, e app.Event) {
	refID := v.selectedRef
	if refID == "" {
		return
	}
	v.mutate(ctx,
		func(ctx app.Context) error { return client.ApplyLegalReference(ctx, v.grvnNum, refID) },
		"Legal reference applied.",
		func(err error) {
			v.errMsg = workflow.Message(err, "Failed to apply legal reference.")
		})
}

func (v *OfficerGrievanceView) Render() app.UI {
	if !v.loaded {
		return app.Div().Class("page").Body(
			&Navbar{Role: gms.RoleOfficer, Active: "/officer-home"},
			app.Main().Class("content").Body(app.Div().Class("loading-spinner")),
		)
	}
	if v.notFound {
		return app.Div().Class("page").Body(
			&Navbar{Role: gms.RoleOfficer, Active: "/officer-home"},
			app.Main().Class("content").Body(
				app.Div().Class("alert alert-error").
					Text("Grievance "+v.grvnNum+" is not in your queue."),
				app.Button().Class("btn").Text("Back to Queue").
					OnClick(func(ctx app.Context, e app.Event) {
						ctx.Navigate("/officer-home")
					}),
			),
		)
	}

	g := v.detail.Grievance
	st := gms.NormalizeStatus(g.Status)
	acts := gms.Decide(st, assigned.Contains(g.GrvnNum), flags.All())

	return app.Div().Class("page").Body(
		&Navbar{Role: gms.RoleOfficer, Active: "/officer-home"},

		app.Main().Class("content").Body(
			app.If(v.flash != "", func() app.UI {
				return app.Div().Class("alert alert-success").Text(v.flash)
			}),
			app.If(v.errMsg != "", func() app.UI {
				return app.Div().Class("alert alert-error").Text(v.errMsg)
			}),

			app.Div().Class("page-header").Body(
				app.H1().Text("Grievance "+g.GrvnNum),
				app.Span().Class("status-badge status-"+string(st)).Text(st.Label()),
			),

			app.Div().Class("detail-card").Body(
				detailRow("Subject", g.Subject),
				detailRow("Employee", g.EmpNum),
				detailRow("Category", gms.CategoryName(g.CategoryNum)),
				detailRow("Severity", g.Severity),
				detailRow("Filed", g.DateFiled),
				detailRow("Description", g.Description),
			),

			v.renderActions(acts),

			app.If(acts.ResolutionShown && v.detail.Resolution != nil, func() app.UI {
				r := v.detail.Resolution
				return app.Div().Class("detail-card resolution-card").Body(
					app.H2().Text("Resolution"),
					detailRow("Summary", r.Summary),
					detailRow("Resolved on", r.ResolvedDate),
				)
			}),

			v.renderInvestigations(acts),

			app.If(v.showDialog, func() app.UI {
				return v.renderDialog()
			}),
		),
	)
}

func (v *OfficerGrievanceView) renderActions(acts gms.Actions) app.UI {
	return app.Div().Class("action-bar").Body(
		app.If(acts.CanAssign, func() app.UI {
			return app.Button().Class("btn btn-primary").Disabled(v.busy).
				Text("Assign to Me").OnClick(v.onAssign)
		}),
		app.If(acts.AssignDisabled != "", func() app.UI {
			return app.Span().Class("action-disabled").Text(acts.AssignDisabled)
		}),
		app.If(acts.CanInvestigate, func() app.UI {
			return app.Button().Class("btn btn-primary").Disabled(v.busy).
				Text("Add Investigation").
				OnClick(func(ctx app.Context, e app.Event) {
					v.openAddDialog()
				})
		}),
		app.If(acts.CanResolve, func() app.UI {
			return app.Button().Class("btn").Disabled(v.busy).
				Text("Intend to Resolve").OnClick(v.onIntendedResolve)
		}),
		app.If(acts.CanResolve && len(v.refs) > 0, func() app.UI {
			return app.Div().Class("ref-picker").Body(
				app.Select().
					OnChange(func(ctx app.Context, e app.Event) {
						v.selectedRef = ctx.JSSrc().Get("value").String()
					}).
					Body(
						app.Range(v.refs).Slice(func(i int) app.UI {
							r := v.refs[i]
							return app.Option().Value(r.RefID).
								Selected(v.selectedRef == r.RefID).
								Text(r.SectionName)
						}),
					),
				app.Button().Class("btn").Disabled(v.busy).
					Text("Apply Legal Reference").OnClick(v.onApplyRef),
			)
		}),
	)
}

func (v *OfficerGrievanceView) renderInvestigations(acts gms.Actions) app.UI {
	if v.detail.TimelineErr != nil {
		return app.Div().Class("alert alert-warning").
			Text("The investigation timeline could not be loaded right now.")
	}
	tl := v.detail.Timeline
	if tl == nil || len(tl.Investigations) == 0 {
		return app.Div().Class("empty-state").Text("No investigations yet.")
	}

	return app.Div().Class("timeline").Body(
		app.H2().Text("Investigations"),
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
				app.If(acts.CanInvestigate && !inv.Ended(), func() app.UI {
					return app.Div().Class("timeline-actions").Body(
						app.Button().Class("btn btn-small").Text("Update").
							OnClick(func(ctx app.Context, e app.Event) {
								v.openEditDialog(inv)
							}),
						app.Button().Class("btn btn-small btn-danger").Text("End").
							OnClick(func(ctx app.Context, e app.Event) {
								v.onEnd(ctx, inv)
							}),
					)
				}),
			)
		}),
	)
}

func (v *OfficerGrievanceView) renderDialog() app.UI {
	title := "Add Investigation"
	if v.editingNum != "" {
		title = "Update Investigation " + v.editingNum
	}
	return app.Div().Class("modal-overlay").Body(
		app.Div().Class("modal").Body(
			app.H2().Text(title),
			app.If(v.dialogErr != "", func() app.UI {
				return app.Div().Class("alert alert-error").Text(v.dialogErr)
			}),
			app.Form().OnSubmit(v.onDialogSubmit).Body(
				app.Label().Text("Findings"),
				app.Textarea().Rows(4).Text(v.form.Findings).
					OnInput(func(ctx app.Context, e app.Event) {
						v.form.Findings = ctx.JSSrc().Get("value").String()
					}),
				app.Label().Text("Remarks"),
				app.Textarea().Rows(2).Text(v.form.Remarks).
					OnInput(func(ctx app.Context, e app.Event) {
						v.form.Remarks = ctx.JSSrc().Get("value").String()
					}),
				app.Label().Text("Outcome"),
				app.Textarea().Rows(2).Text(v.form.Outcome).
					OnInput(func(ctx app.Context, e app.Event) {
						v.form.Outcome = ctx.JSSrc().Get("value").String()
					}),
				app.Div().Class("modal-actions").Body(
					app.Button().Type("button").Class("btn").Text("Cancel").
						OnClick(func(ctx app.Context, e app.Event) {
							v.showDialog = false
							v.dialogErr = ""
						}),
					app.Button().Type("submit").Class("btn btn-primary").
						Disabled(v.busy).Text("Save"),
				),
			),
		),
	)
}

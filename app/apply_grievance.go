package main

import (
	"github.com/maxence-charriere/go-app/v10/pkg/app"

	"github.com/arjunmk/gms/internal/api"
	"github.com/arjunmk/gms/internal/gms"
	"github.com/arjunmk/gms/internal/workflow"
)

type ApplyGrievanceView struct {
	app.Compo

	categoryNum string
	subject     string
	description string
	severity    string
	files       []api.Attachment

	busy    bool
	errMsg  string
	outcome *workflow.FileOutcome
}

func (v *ApplyGrievanceView) OnInit() {
	v.categoryNum = gms.Categories[0].Num
	v.subject = gms.DefaultTopic(v.categoryNum)
	v.severity = gms.Severities[0]
}

func (v *ApplyGrievanceView) OnNav(ctx app.Context) {
	if _, ok := requireRole(ctx, gms.RoleEmployee); !ok {
		return
	}
}

// onCategoryChange resets the subject to the new category's first topic
// so a stale topic from the previous category can never be submitted.
func (v *ApplyGrievanceView) onCategoryChange(ctx app.Context, e app.Event) {
	v.categoryNum = ctx.JSSrc().Get("value").String()
	v.subject = gms.DefaultTopic(v.categoryNum)
}

// onFilesChange stages the selected files into memory. Each browser File
// is read through arrayBuffer; the upload itself happens only inside the
// filing saga.
func (v *ApplyGrievanceView) onFilesChange(ctx app.Context, e app.Event) {
	list := ctx.JSSrc().Get("files")
	n := list.Get("length").Int()
	v.files = nil
	for i := 0; i < n; i++ {
		f := list.Call("item", i)
		name := f.Get("name").String()
		f.Call("arrayBuffer").Then(func(buf app.Value) {
			u8 := app.Window().Get("Uint8Array").New(buf)
			data := make([]byte, u8.Get("length").Int())
			app.CopyBytesToGo(data, u8)
			ctx.Dispatch(func(ctx app.Context) {
				v.files = append(v.files, api.Attachment{Name: name, Data: data})
			})
		})
	}
}

func (v *ApplyGrievanceView) onSubmit(ctx app.Context, e app.Event) {
	e.PreventDefault()
	if v.busy {
		return
	}
	v.busy = true
	v.errMsg = ""
	v.outcome = nil

	req := api.FileGrievanceRequest{
		CategoryNum: v.categoryNum,
		Subject:     v.subject,
		Description: v.description,
		Severity:    v.severity,
	}
	files := v.files

	ctx.Async(func() {
		out := flow.FileGrievance(ctx, req, files)
		ctx.Dispatch(func(ctx app.Context) {
			v.busy = false
			if out.State == workflow.FileFailed {
				v.errMsg = out.Message()
				return
			}
			v.outcome = &out
		})
	})
}

func (v *ApplyGrievanceView) Render() app.UI {
	if v.outcome != nil {
		return v.renderOutcome()
	}

	return app.Div().Class("page").Body(
		&Navbar{Role: gms.RoleEmployee, Active: "/apply-grievance"},

		app.Main().Class("content content-narrow").Body(
			app.H1().Text("File a Grievance"),

			app.If(v.errMsg != "", func() app.UI {
				return app.Div().Class("alert alert-error").Text(v.errMsg)
			}),

			app.Form().OnSubmit(v.onSubmit).Body(
				app.Label().For("category").Text("Category"),
				app.Select().ID("category").OnChange(v.onCategoryChange).Body(
					app.Range(gms.Categories).Slice(func(i int) app.UI {
						c := gms.Categories[i]
						return app.Option().Value(c.Num).
							Selected(v.categoryNum == c.Num).
							Text(c.Name)
					}),
				),

				app.Label().For("subject").Text("Subject"),
				app.Select().ID("subject").
					OnChange(func(ctx app.Context, e app.Event) {
						v.subject = ctx.JSSrc().Get("value").String()
					}).
					Body(
						app.Range(gms.Topics(v.categoryNum)).Slice(func(i int) app.UI {
							t := gms.Topics(v.categoryNum)[i]
							return app.Option().Value(t).Selected(v.subject == t).Text(t)
						}),
					),

				app.Label().For("severity").Text("Severity"),
				app.Select().ID("severity").
					OnChange(func(ctx app.Context, e app.Event) {
						v.severity = ctx.JSSrc().Get("value").String()
					}).
					Body(
						app.Range(gms.Severities).Slice(func(i int) app.UI {
							s := gms.Severities[i]
							return app.Option().Value(s).Selected(v.severity == s).Text(s)
						}),
					),

				app.Label().For("description").Text("Description"),
				app.Textarea().ID("description").Rows(6).
					Placeholder("Describe what happened, when, and who was involved.").
					Text(v.description).
					OnInput(func(ctx app.Context, e app.Event) {
						v.description = ctx.JSSrc().Get("value").String()
					}),

				app.Label().For("attachments").Text("Attachments (optional)"),
				app.Input().ID("attachments").Type("file").Multiple(true).
					OnChange(v.onFilesChange),
				app.If(len(v.files) > 0, func() app.UI {
					return app.Ul().Class("staged-files").Body(
						app.Range(v.files).Slice(func(i int) app.UI {
							return app.Li().Text(v.files[i].Name)
						}),
					)
				}),

				app.Button().Type("submit").Class("btn btn-primary").
					Disabled(v.busy).
					Text(submitLabel(v.busy)),
			),
		),
	)
}

func (v *ApplyGrievanceView) renderOutcome() app.UI {
	cls := "alert alert-success"
	if v.outcome.State == workflow.FilePartial {
		cls = "alert alert-warning"
	}
	return app.Div().Class("page").Body(
		&Navbar{Role: gms.RoleEmployee, Active: "/apply-grievance"},
		app.Main().Class("content content-narrow").Body(
			app.Div().Class(cls).Text(v.outcome.Message()),
			app.Div().Class("outcome-actions").Body(
				app.Button().Class("btn btn-primary").Text("View Grievance").
					OnClick(func(ctx app.Context, e app.Event) {
						ctx.Navigate("/grievance-details/" + v.outcome.GrvnNum)
					}),
				app.Button().Class("btn").Text("Back to Dashboard").
					OnClick(func(ctx app.Context, e app.Event) {
						ctx.Navigate("/employee-home")
					}),
			),
		),
	)
}

func submitLabel(busy bool) string {
	if busy {
		return "Submitting..."
	}
	return "Submit Grievance"
}

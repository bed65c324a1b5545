package main

import (
	"strings"

	"github.com/maxence-charriere/go-app/v10/pkg/app"

	"github.com/arjunmk/gms/internal/gms"
	"github.com/arjunmk/gms/internal/workflow"
)

type LegalReferencesView struct {
	app.Compo

	refs   []gms.LegalReference
	query  string
	loaded bool
	errMsg string
}

func (v *LegalReferencesView) OnNav(ctx app.Context) {
	if _, ok := requireRole(ctx, gms.RoleOfficer); !ok {
		return
	}
	ctx.Async(func() {
		refs, err := client.LegalReferences(ctx)
		ctx.Dispatch(func(ctx app.Context) {
			v.loaded = true
			if err != nil {
				v.errMsg = workflow.Message(err, "Could not load legal references.")
				return
			}
			v.refs = refs
		})
	})
}

func (v *LegalReferencesView) visible() []gms.LegalReference {
	q := strings.ToLower(strings.TrimSpace(v.query))
	if q == "" {
		return v.refs
	}
	out := make([]gms.LegalReference, 0, len(v.refs))
	for _, r := range v.refs {
		if strings.Contains(strings.ToLower(r.SectionName), q) ||
			strings.Contains(strings.ToLower(r.Description), q) {
			out = append(out, r)
		}
	}
	return out
}

func (v *LegalReferencesView) Render() app.UI {
	return app.Div().Class("page").Body(
		&Navbar{Role: gms.RoleOfficer, Active: "/legal-references"},

		app.Main().Class("content").Body(
			app.H1().Text("Legal References"),

			app.If(v.errMsg != "", func() app.UI {
				return app.Div().Class("alert alert-error").Text(v.errMsg)
			}),

			app.Input().Type("search").Class("search-box").
				Placeholder("Search sections...").
				Value(v.query).
				OnInput(func(ctx app.Context, e app.Event) {
					v.query = ctx.JSSrc().Get("value").String()
				}),

			app.If(!v.loaded, func() app.UI {
				return app.Div().Class("loading-spinner")
			}).ElseIf(len(v.visible()) == 0, func() app.UI {
				return app.Div().Class("empty-state").Text("No matching references.")
			}).Else(func() app.UI {
				return app.Div().Class("card-list").Body(
					app.Range(v.visible()).Slice(func(i int) app.UI {
						r := v.visible()[i]
						return app.Div().Class("ref-card").Body(
							app.H3().Text(r.SectionName),
							app.P().Text(r.Description),
							app.Span().Class("ref-id").Text(r.RefID),
						)
					}),
				)
			}),
		),
	)
}

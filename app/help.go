package main

import (
	"bytes"
	_ "embed"

	"github.com/maxence-charriere/go-app/v10/pkg/app"
	"github.com/yuin/goldmark"

	"github.com/arjunmk/gms/internal/gms"
)

//go:embed help.md
var helpMarkdown []byte

type HelpView struct {
	app.Compo

	html string
}

func (v *HelpView) OnInit() {
	var buf bytes.Buffer
	if err := goldmark.Convert(helpMarkdown, &buf); err != nil {
		app.Log("help: render markdown:", err)
		v.html = "<p>Help content is unavailable.</p>"
		return
	}
	v.html = buf.String()
}

func (v *HelpView) OnNav(ctx app.Context) {
	if _, ok := requireRole(ctx, gms.RoleEmployee); !ok {
		return
	}
}

func (v *HelpView) Render() app.UI {
	return app.Div().Class("page").Body(
		&Navbar{Role: gms.RoleEmployee, Active: "/help"},
		app.Main().Class("content content-narrow help-content").Body(
			app.Raw("<div>" + v.html + "</div>"),
		),
	)
}

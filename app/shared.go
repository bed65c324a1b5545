package main

import (
	"github.com/maxence-charriere/go-app/v10/pkg/app"

	"github.com/arjunmk/gms/internal/api"
	"github.com/arjunmk/gms/internal/store"
	"github.com/arjunmk/gms/internal/workflow"
)

// Client-wide singletons. The API client talks to the same origin that
// serves the Wasm bundle; a 401 from any call wipes the session and
// sends the user back to login.
var (
	client   = api.New("/api")
	session  = store.NewSession(localStorage{})
	flags    = store.NewFlagStore(localStorage{})
	assigned = store.NewAssignmentCache(localStorage{})
	flow     = workflow.New(client, session, flags, assigned)
)

func init() {
	client.OnUnauthorized = func() {
		flow.ForceLogout()
		if !app.IsServer {
			app.Window().Get("location").Set("href", "/login")
		}
	}
}

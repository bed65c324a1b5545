package main

import "github.com/google/uuid"

// fetchGuard serializes a view's list fetches. Begin marks a new fetch;
// a response carrying any earlier token is discarded, so a slow fetch
// can never overwrite a newer one.
type fetchGuard struct {
	token string
}

func (g *fetchGuard) Begin() string {
	g.token = uuid.NewString()
	return g.token
}

// Current reports whether token still identifies the latest fetch.
func (g *fetchGuard) Current(token string) bool {
	return g.token == token
}

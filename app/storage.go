package main

import (
	"encoding/json"

	"github.com/maxence-charriere/go-app/v10/pkg/app"

	"github.com/arjunmk/gms/internal/store"
)

// localStorage adapts the browser's window.localStorage to the
// store.Storage interface. Server-side prerendering has no storage, so
// every call degrades to misses there.
type localStorage struct{}

func (localStorage) Get(key string, v any) error {
	if app.IsServer {
		return store.ErrNoValue
	}
	item := app.Window().Get("localStorage").Call("getItem", key)
	if !item.Truthy() {
		return store.ErrNoValue
	}
	return json.Unmarshal([]byte(item.String()), v)
}

func (localStorage) Set(key string, v any) error {
	if app.IsServer {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	app.Window().Get("localStorage").Call("setItem", key, string(b))
	return nil
}

func (localStorage) Del(key string) {
	if app.IsServer {
		return
	}
	app.Window().Get("localStorage").Call("removeItem", key)
}

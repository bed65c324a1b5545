// Package store keeps the browser-local state the client depends on:
// the authenticated session, the feature-flag map and the officer's
// assignment cache. Persistence goes through the Storage interface so
// the stores run unchanged against browser localStorage in Wasm builds
// and an in-memory map in tests.
package store

import "errors"

// ErrNoValue is returned by Storage.Get when the key is absent.
var ErrNoValue = errors.New("store: no value for key")

// Storage is the minimal persistence adapter: values are JSON-encoded by
// the implementation.
type Storage interface {
	Get(key string, v any) error
	Set(key string, v any) error
	Del(key string)
}

// Persisted keys. These match what the deployed client has always
// written, so an upgrade in place keeps existing sessions.
const (
	KeyUser     = "user"
	KeyUserNum  = "userNum"
	KeyRole     = "role"
	KeyAssigned = "assignedGrievances"
	KeyFlags    = "featureFlags"
)

package store

import (
	"sync"

	"github.com/arjunmk/gms/internal/gms"
)

// FlagStore persists the feature-flag map and notifies subscribers on
// every mutation so open views react without a reload.
type FlagStore struct {
	storage Storage

	mu   sync.Mutex
	subs map[int]func(gms.Flags)
	next int
}

// NewFlagStore seeds storage with the defaults when no flag map has been
// persisted yet. Seeding is idempotent.
func NewFlagStore(storage Storage) *FlagStore {
	fs := &FlagStore{storage: storage, subs: map[int]func(gms.Flags){}}
	var existing gms.Flags
	if err := storage.Get(KeyFlags, &existing); err == ErrNoValue {
		storage.Set(KeyFlags, gms.DefaultFlags())
	}
	return fs
}

// All returns the persisted flag map, falling back to the defaults when
// storage is unreadable.
func (fs *FlagStore) All() gms.Flags {
	var f gms.Flags
	if err := fs.storage.Get(KeyFlags, &f); err != nil {
		return gms.DefaultFlags()
	}
	return f
}

// Enabled reports one flag by its persisted name. Unknown names are
// false.
func (fs *FlagStore) Enabled(name string) bool {
	f := fs.All()
	switch name {
	case "officer_table_view":
		return f.OfficerTableView
	case "grievance_self_assignment":
		return f.SelfAssignment
	case "investigate_workflow":
		return f.InvestigateWorkflow
	}
	return false
}

// Set writes one flag and broadcasts the new map.
func (fs *FlagStore) Set(name string, enabled bool) {
	f := fs.All()
	switch name {
	case "officer_table_view":
		f.OfficerTableView = enabled
	case "grievance_self_assignment":
		f.SelfAssignment = enabled
	case "investigate_workflow":
		f.InvestigateWorkflow = enabled
	default:
		return
	}
	fs.storage.Set(KeyFlags, f)
	fs.notify(f)
}

// Toggle flips one flag and broadcasts the new map.
func (fs *FlagStore) Toggle(name string) {
	fs.Set(name, !fs.Enabled(name))
}

// Reset restores the defaults and broadcasts them.
func (fs *FlagStore) Reset() {
	d := gms.DefaultFlags()
	fs.storage.Set(KeyFlags, d)
	fs.notify(d)
}

// Subscribe registers a change listener and returns its cancel func.
// Each mutation notifies each subscriber exactly once.
func (fs *FlagStore) Subscribe(fn func(gms.Flags)) (cancel func()) {
	fs.mu.Lock()
	id := fs.next
	fs.next++
	fs.subs[id] = fn
	fs.mu.Unlock()
	return func() {
		fs.mu.Lock()
		delete(fs.subs, id)
		fs.mu.Unlock()
	}
}

func (fs *FlagStore) notify(f gms.Flags) {
	fs.mu.Lock()
	fns := make([]func(gms.Flags), 0, len(fs.subs))
	for _, fn := range fs.subs {
		fns = append(fns, fn)
	}
	fs.mu.Unlock()
	for _, fn := range fns {
		fn(f)
	}
}

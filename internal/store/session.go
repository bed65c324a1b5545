package store

import (
	"github.com/arjunmk/gms/internal/gms"
)

// Session holds the authenticated user for the lifetime of the page,
// hydrated from persisted storage on startup. It is purely a client-side
// convenience; the server session cookie is what actually authenticates
// requests.
type Session struct {
	storage Storage
	user    *gms.User
}

func NewSession(storage Storage) *Session {
	return &Session{storage: storage}
}

// Hydrate loads a previously persisted user. A malformed persisted value
// is discarded, and all local keys with it, rather than poisoning every
// subsequent load.
func (s *Session) Hydrate() {
	var u gms.User
	err := s.storage.Get(KeyUser, &u)
	switch {
	case err == ErrNoValue:
		return
	case err != nil || u.Role == "":
		s.Clear()
		return
	}
	s.user = &u
}

// Current returns the in-memory user, nil when logged out.
func (s *Session) Current() *gms.User { return s.user }

// SetCurrent persists the user under the session keys and makes it
// current.
func (s *Session) SetCurrent(u gms.User) error {
	if err := s.storage.Set(KeyUser, u); err != nil {
		return err
	}
	if err := s.storage.Set(KeyUserNum, u.UserNum); err != nil {
		return err
	}
	if err := s.storage.Set(KeyRole, string(u.Role)); err != nil {
		return err
	}
	s.user = &u
	return nil
}

// Clear wipes the session and the assignment cache. Safe to call at any
// time, including when nothing is stored.
func (s *Session) Clear() {
	s.storage.Del(KeyUser)
	s.storage.Del(KeyUserNum)
	s.storage.Del(KeyRole)
	s.storage.Del(KeyAssigned)
	s.user = nil
}

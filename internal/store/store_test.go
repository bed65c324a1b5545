package store

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arjunmk/gms/internal/gms"
)

func TestSessionRoundTrip(t *testing.T) {
	mem := NewMemory()
	s := NewSession(mem)

	u := gms.User{UserNum: "O001", Name: "Meera", Role: gms.RoleOfficer}
	require.NoError(t, s.SetCurrent(u))
	require.Equal(t, "O001", s.Current().UserNum)

	// A fresh session over the same storage hydrates the same user.
	s2 := NewSession(mem)
	s2.Hydrate()
	require.NotNil(t, s2.Current())
	require.Equal(t, gms.RoleOfficer, s2.Current().Role)
}

func TestSessionHydrateMissing(t *testing.T) {
	s := NewSession(NewMemory())
	s.Hydrate()
	require.Nil(t, s.Current())
}

func TestSessionHydrateMalformed(t *testing.T) {
	mem := NewMemory()
	// A user persisted without a role is unusable and must be wiped,
	// not carried into the session.
	require.NoError(t, mem.Set(KeyUser, map[string]string{"userNum": "E001"}))
	require.NoError(t, mem.Set(KeyAssigned, []string{"G001"}))

	s := NewSession(mem)
	s.Hydrate()
	require.Nil(t, s.Current())
	require.Equal(t, 0, mem.Len())
}

func TestSessionClear(t *testing.T) {
	mem := NewMemory()
	s := NewSession(mem)
	require.NoError(t, s.SetCurrent(gms.User{UserNum: "E001", Role: gms.RoleEmployee}))
	NewAssignmentCache(mem).Add("G001")

	s.Clear()
	require.Nil(t, s.Current())
	require.Equal(t, 0, mem.Len())
}

func TestFlagStoreSeedsDefaultsOnce(t *testing.T) {
	mem := NewMemory()
	fs := NewFlagStore(mem)
	require.True(t, fs.All().OfficerTableView)
	require.False(t, fs.All().SelfAssignment)

	fs.Set("grievance_self_assignment", true)

	// A second store over the same storage must not re-seed.
	fs2 := NewFlagStore(mem)
	require.True(t, fs2.All().SelfAssignment)
}

func TestFlagStoreSetAndToggle(t *testing.T) {
	fs := NewFlagStore(NewMemory())

	fs.Set("investigate_workflow", true)
	require.True(t, fs.Enabled("investigate_workflow"))

	fs.Toggle("investigate_workflow")
	require.False(t, fs.Enabled("investigate_workflow"))

	// Unknown names neither panic nor persist anything.
	fs.Set("no_such_flag", true)
	require.False(t, fs.Enabled("no_such_flag"))
}

func TestFlagStoreNotifiesOncePerMutation(t *testing.T) {
	fs := NewFlagStore(NewMemory())

	calls := 0
	var last gms.Flags
	cancel := fs.Subscribe(func(f gms.Flags) {
		calls++
		last = f
	})

	fs.Set("grievance_self_assignment", true)
	require.Equal(t, 1, calls)
	require.True(t, last.SelfAssignment)

	fs.Reset()
	require.Equal(t, 2, calls)
	require.False(t, last.SelfAssignment)

	cancel()
	fs.Set("grievance_self_assignment", true)
	require.Equal(t, 2, calls)
}

func TestAssignmentCache(t *testing.T) {
	cache := NewAssignmentCache(NewMemory())
	require.Empty(t, cache.List())
	require.NotNil(t, cache.List())

	cache.Add("G001")
	cache.Add("G002")
	cache.Add("G001") // dedup
	require.Equal(t, []string{"G001", "G002"}, cache.List())
	require.True(t, cache.Contains("G001"))
	require.False(t, cache.Contains("G009"))

	cache.Clear()
	require.Empty(t, cache.List())
}

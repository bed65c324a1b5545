package main

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arjunmk/gms/internal/gms"
)

func TestRowCanAssign(t *testing.T) {
	pending := gms.Grievance{GrvnNum: "G001", Status: "PENDING"}
	selfAssign := gms.Flags{SelfAssignment: true}

	require.True(t, rowCanAssign(pending, false, selfAssign))

	// Already cached rows never offer the button again.
	require.False(t, rowCanAssign(pending, true, selfAssign))

	// The flag gates the action entirely.
	require.False(t, rowCanAssign(pending, false, gms.DefaultFlags()))

	// Only pending rows qualify.
	require.False(t, rowCanAssign(gms.Grievance{GrvnNum: "G002", Status: "IN_PROCESS"}, false, selfAssign))
	require.False(t, rowCanAssign(gms.Grievance{GrvnNum: "G003", Status: "RESOLVED"}, false, selfAssign))
}

func TestFetchGuardDiscardsStaleTokens(t *testing.T) {
	var g fetchGuard

	first := g.Begin()
	require.True(t, g.Current(first))

	second := g.Begin()
	require.NotEqual(t, first, second)
	require.False(t, g.Current(first))
	require.True(t, g.Current(second))
}

package gms

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeStatus(t *testing.T) {
	cases := []struct {
		raw  string
		want Status
	}{
		{"PENDING", StatusPending},
		{"pending", StatusPending},
		{"  Pending Review ", StatusPending},
		{"IN_PROCESS", StatusInProcess},
		{"in process", StatusInProcess},
		{"RESOLVED", StatusResolved},
		{"resolved successfully", StatusResolved},
		// The intended marker wins over the resolve substring.
		{"INTENDED_RESOLVE", StatusInProcess},
		{"intended_to_resolve", StatusInProcess},
		{"", StatusUnknown},
		{"   ", StatusUnknown},
		{"garbage", StatusUnknown},
		{"CLOSED", StatusUnknown},
	}
	for _, c := range cases {
		require.Equal(t, c.want, NormalizeStatus(c.raw), "raw=%q", c.raw)
	}
}

func TestStatusLabel(t *testing.T) {
	require.Equal(t, "IN PROCESS", StatusInProcess.Label())
	require.Equal(t, "PENDING", StatusPending.Label())
	require.Equal(t, "UNKNOWN", StatusUnknown.Label())
}

func TestCountByStatus(t *testing.T) {
	gs := []Grievance{
		{GrvnNum: "G001", Status: "PENDING"},
		{GrvnNum: "G002", Status: "IN_PROCESS"},
		{GrvnNum: "G003", Status: "INTENDED_RESOLVE"},
		{GrvnNum: "G004", Status: "RESOLVED"},
		{GrvnNum: "G005", Status: "whatever"},
	}
	c := CountByStatus(gs)
	require.Equal(t, 5, c.All)
	require.Equal(t, 1, c.Pending)
	require.Equal(t, 2, c.InProcess)
	require.Equal(t, 1, c.Resolved)
}

func TestFilterByStatus(t *testing.T) {
	gs := []Grievance{
		{GrvnNum: "G001", Status: "PENDING"},
		{GrvnNum: "G002", Status: "INTENDED_RESOLVE"},
		{GrvnNum: "G003", Status: "RESOLVED"},
	}

	inProc := FilterByStatus(gs, StatusInProcess)
	require.Len(t, inProc, 1)
	require.Equal(t, "G002", inProc[0].GrvnNum)

	// Unknown filter means no filter.
	require.Equal(t, gs, FilterByStatus(gs, StatusUnknown))
}

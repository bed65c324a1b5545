package gms

import "strings"

// Status is the client's three-bucket classification of the server's
// free-text status field.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusInProcess Status = "IN_PROCESS"
	StatusResolved  Status = "RESOLVED"
	StatusUnknown   Status = ""
)

// NormalizeStatus classifies a raw server status into one bucket using
// case-insensitive substring matching. "intended" resolves before
// "resolve" so the INTENDED_RESOLVE lifecycle state buckets as
// in-process rather than resolved. Unrecognized or empty input yields
// StatusUnknown.
func NormalizeStatus(raw string) Status {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case s == "":
		return StatusUnknown
	case strings.Contains(s, "pending"):
		return StatusPending
	case strings.Contains(s, "intended"):
		return StatusInProcess
	case strings.Contains(s, "process"):
		return StatusInProcess
	case strings.Contains(s, "resolve"):
		return StatusResolved
	}
	return StatusUnknown
}

// Label renders a bucket for display, e.g. "IN PROCESS".
func (s Status) Label() string {
	if s == StatusUnknown {
		return "UNKNOWN"
	}
	return strings.ReplaceAll(string(s), "_", " ")
}

// StatusCounts are per-bucket totals over an unfiltered grievance set,
// used so filter buttons keep stable numbers while the table is
// filtered.
type StatusCounts struct {
	All       int
	Pending   int
	InProcess int
	Resolved  int
}

// CountByStatus buckets a grievance list.
func CountByStatus(gs []Grievance) StatusCounts {
	c := StatusCounts{All: len(gs)}
	for _, g := range gs {
		switch NormalizeStatus(g.Status) {
		case StatusPending:
			c.Pending++
		case StatusInProcess:
			c.InProcess++
		case StatusResolved:
			c.Resolved++
		}
	}
	return c
}

// FilterByStatus returns the grievances whose normalized status matches.
// An unknown filter returns the input unchanged.
func FilterByStatus(gs []Grievance, want Status) []Grievance {
	if want == StatusUnknown {
		return gs
	}
	out := make([]Grievance, 0, len(gs))
	for _, g := range gs {
		if NormalizeStatus(g.Status) == want {
			out = append(out, g)
		}
	}
	return out
}

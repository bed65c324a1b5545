package gms

// Flags are the locally persisted feature toggles read by officer pages.
type Flags struct {
	OfficerTableView    bool `json:"officer_table_view"`
	SelfAssignment      bool `json:"grievance_self_assignment"`
	InvestigateWorkflow bool `json:"investigate_workflow"`
}

// DefaultFlags is the seed set written to storage on first load.
func DefaultFlags() Flags {
	return Flags{OfficerTableView: true}
}

// Actions is the derived UI mode for the grievance detail view: which
// operations the current officer may attempt given the latest fetched
// status, the local assignment hint and the feature flags. The server
// remains the gatekeeper; these rules only avoid round trips that are
// certain to be rejected.
type Actions struct {
	CanAssign       bool
	CanInvestigate  bool
	CanResolve      bool
	AssignDisabled  string // human-readable reason when assignment is gated off
	ResolutionShown bool
}

// Decide computes the allowed actions from (status, assigned, flags).
func Decide(status Status, assigned bool, flags Flags) Actions {
	var a Actions
	switch status {
	case StatusPending:
		if !assigned {
			if flags.SelfAssignment {
				a.CanAssign = true
			} else {
				a.AssignDisabled = "This feature is not yet available. Coming soon!"
			}
		}
	case StatusInProcess:
		if assigned && flags.InvestigateWorkflow {
			a.CanInvestigate = true
		}
	case StatusResolved:
		a.ResolutionShown = true
	}
	if status != StatusResolved {
		a.CanResolve = true
	}
	return a
}

// CanAssignGrievance is the list-row precheck: assignment is only ever
// offered for PENDING grievances that are not already locally cached.
func CanAssignGrievance(g Grievance, alreadyAssigned bool) bool {
	return !alreadyAssigned && NormalizeStatus(g.Status) == StatusPending
}

// Package workflow is the client-side view-model for the grievance
// lifecycle: it owns the preconditions, the two-phase filing saga and
// the user-facing failure messages, leaving the Wasm pages as thin
// renderers. State only advances after a round trip confirms success,
// and then by re-fetching; nothing here mutates cached copies
// optimistically.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/arjunmk/gms/internal/api"
	"github.com/arjunmk/gms/internal/gms"
	"github.com/arjunmk/gms/internal/store"
)

// UserError is a precondition failure with a message meant for direct
// display. No network call was made when one of these comes back.
type UserError string

func (e UserError) Error() string { return string(e) }

// ErrNotFound marks a detail fetch whose grievance is absent from the
// caller's visible set; further fetches for that view should stop.
var ErrNotFound = errors.New("grievance not found")

// Workflow binds the API collaborator to the local stores. One instance
// serves the whole client.
type Workflow struct {
	API      *api.Client
	Session  *store.Session
	Flags    *store.FlagStore
	Assigned *store.AssignmentCache
}

func New(c *api.Client, s *store.Session, f *store.FlagStore, a *store.AssignmentCache) *Workflow {
	return &Workflow{API: c, Session: s, Flags: f, Assigned: a}
}

// Message unwraps the server-extracted message from an API error,
// substituting the fallback for transport failures and empty bodies.
func Message(err error, fallback string) string {
	var ae *api.Error
	if errors.As(err, &ae) && ae.Message != "" {
		return ae.Message
	}
	var ue UserError
	if errors.As(err, &ue) {
		return string(ue)
	}
	return fallback
}

// Login authenticates, persists the session and returns the user. The
// caller navigates to user.Role.HomeRoute().
func (w *Workflow) Login(ctx context.Context, creds api.Credentials) (gms.User, error) {
	u, err := w.API.Login(ctx, creds)
	if err != nil {
		return gms.User{}, err
	}
	if u.Role == "" {
		return gms.User{}, UserError("Login failed")
	}
	if err := w.Session.SetCurrent(u); err != nil {
		return gms.User{}, err
	}
	return u, nil
}

// Logout notifies the server best-effort and unconditionally clears the
// session and assignment cache. It never fails.
func (w *Workflow) Logout(ctx context.Context) {
	_ = w.API.Logout(ctx)
	w.Session.Clear()
}

// ForceLogout clears local state without the server round trip; the 401
// hook uses it.
func (w *Workflow) ForceLogout() {
	w.Session.Clear()
}

// FindOfficerGrievance loads the officer queue and selects one grievance
// by its business key. Absence yields ErrNotFound.
func (w *Workflow) FindOfficerGrievance(ctx context.Context, grvnNum string) (gms.Grievance, error) {
	gs, err := w.API.OfficerGrievances(ctx)
	if err != nil {
		return gms.Grievance{}, err
	}
	for _, g := range gs {
		if g.GrvnNum == grvnNum {
			return g, nil
		}
	}
	return gms.Grievance{}, ErrNotFound
}

// Assign claims a grievance for the current officer. Preconditions: the
// self-assignment flag must be on, the latest fetched status must be
// PENDING, and the grievance must not already be cached. On confirmed
// success the id is cached; the caller re-fetches detail and timeline.
func (w *Workflow) Assign(ctx context.Context, g gms.Grievance) error {
	if !w.Flags.All().SelfAssignment {
		return UserError("This feature is not yet available. Coming soon!")
	}
	if w.Assigned.Contains(g.GrvnNum) {
		return UserError(fmt.Sprintf("Grievance %s is already assigned to you.", g.GrvnNum))
	}
	if st := gms.NormalizeStatus(g.Status); st != gms.StatusPending {
		return UserError(fmt.Sprintf("Grievance %s is already '%s' and cannot be re-assigned.", g.GrvnNum, st.Label()))
	}
	u := w.Session.Current()
	if u == nil {
		return UserError("Officer number not found. Please log in again.")
	}
	if err := w.API.Assign(ctx, g.GrvnNum, u.UserNum, "Assigned for investigation"); err != nil {
		return err
	}
	w.Assigned.Add(g.GrvnNum)
	return nil
}

// InvestigationForm is the officer-entered draft for adding or updating
// an investigation. The struct survives a failed submit so the dialog
// can stay open with the values intact.
type InvestigationForm struct {
	Findings string
	Remarks  string
	Outcome  string
}

// Validate enforces the one mandatory field.
func (f InvestigationForm) Validate() error {
	if strings.TrimSpace(f.Findings) == "" {
		return UserError("Please enter findings")
	}
	return nil
}

// AddInvestigation opens an investigation. Preconditions: the grievance
// is locally assigned AND its latest fetched status is exactly
// IN_PROCESS; both are checked before any network call since the server
// will reject violations anyway.
func (w *Workflow) AddInvestigation(ctx context.Context, g gms.Grievance, form InvestigationForm) error {
	if !w.Assigned.Contains(g.GrvnNum) {
		return UserError("Please select this grievance first before adding an investigation")
	}
	if st := gms.NormalizeStatus(g.Status); st != gms.StatusInProcess {
		return UserError("Investigations can only be added when grievance is 'In-Process'. Current status: " + st.Label())
	}
	if err := form.Validate(); err != nil {
		return err
	}
	return w.API.AddInvestigation(ctx, api.InvestigationRequest{
		GrvnNum:  g.GrvnNum,
		Findings: form.Findings,
		Remarks:  form.Remarks,
		Outcome:  form.Outcome,
	})
}

// UpdateInvestigation rewrites an open investigation. On failure the
// returned error carries a message selected by response status so the
// dialog shows it inline without losing the draft.
func (w *Workflow) UpdateInvestigation(ctx context.Context, investigationNum string, form InvestigationForm) error {
	if err := form.Validate(); err != nil {
		return err
	}
	err := w.API.UpdateInvestigation(ctx, investigationNum, api.InvestigationRequest{
		Findings: strings.TrimSpace(form.Findings),
		Remarks:  strings.TrimSpace(form.Remarks),
		Outcome:  strings.TrimSpace(form.Outcome),
	})
	if err == nil {
		return nil
	}
	switch api.StatusOf(err) {
	case 404:
		return UserError(fmt.Sprintf("Investigation %s not found.", investigationNum))
	case 403:
		return UserError("You don't have permission to update this investigation.")
	case 400:
		return UserError(Message(err, "Invalid data provided. Please check all fields."))
	case 0:
		return UserError("No response from server. Please check your connection.")
	default:
		return UserError(Message(err, fmt.Sprintf("Server error (%d). Please try again.", api.StatusOf(err))))
	}
}

// EndInvestigation closes an investigation. The caller confirms with the
// user first; an already-ended record is blocked before the round trip.
func (w *Workflow) EndInvestigation(ctx context.Context, inv gms.Investigation) error {
	if inv.Ended() {
		return UserError(fmt.Sprintf("Investigation %s has already ended.", inv.InvestigationNum))
	}
	return w.API.EndInvestigation(ctx, inv.InvestigationNum)
}

// SubmitAppeal files an appeal, either against one investigation or at
// the grievance level when investigationNum is empty.
func (w *Workflow) SubmitAppeal(ctx context.Context, grvnNum, investigationNum, content string) error {
	if strings.TrimSpace(content) == "" {
		return UserError("Please enter your appeal")
	}
	return w.API.SubmitAppeal(ctx, api.AppealRequest{
		GrvnNum:          grvnNum,
		InvestigationNum: investigationNum,
		AppealContent:    strings.TrimSpace(content),
	})
}

// IntendedResolve marks a grievance for resolution. Available whenever
// the latest fetched status is not RESOLVED; the caller confirms first.
func (w *Workflow) IntendedResolve(ctx context.Context, g gms.Grievance) error {
	if gms.NormalizeStatus(g.Status) == gms.StatusResolved {
		return UserError("This grievance is already resolved.")
	}
	return w.API.IntendedResolve(ctx, g.GrvnNum)
}

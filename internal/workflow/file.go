package workflow

import (
	"context"
	"strings"

	"github.com/arjunmk/gms/internal/api"
)

// FileState is the terminal state of a filing attempt.
type FileState int

const (
	// FileFailed: the grievance was not created; nothing to clean up.
	FileFailed FileState = iota
	// FileSucceeded: grievance created and every attachment uploaded
	// (or there were none).
	FileSucceeded
	// FilePartial: grievance created but the attachment upload failed.
	// The grievance is NOT rolled back; the user is told it exists and
	// which part went wrong.
	FilePartial
)

// FileOutcome reports a filing attempt. GrvnNum is set in every state
// except FileFailed.
type FileOutcome struct {
	State   FileState
	GrvnNum string
	Err     error
}

// Message renders the outcome for display.
func (o FileOutcome) Message() string {
	switch o.State {
	case FileSucceeded:
		return "Grievance " + o.GrvnNum + " filed successfully!"
	case FilePartial:
		return "Grievance " + o.GrvnNum + " was filed, but the attachments could not be uploaded: " +
			Message(o.Err, "upload failed") + ". You can add them later from the grievance page."
	default:
		return Message(o.Err, "Failed to file grievance. Please try again.")
	}
}

// FileGrievance runs the two-phase filing saga: create the grievance,
// then upload attachments against the returned id. Phase two failing
// never undoes phase one.
func (w *Workflow) FileGrievance(ctx context.Context, req api.FileGrievanceRequest, files []api.Attachment) FileOutcome {
	if strings.TrimSpace(req.Subject) == "" {
		return FileOutcome{State: FileFailed, Err: UserError("Please enter a subject")}
	}
	if strings.TrimSpace(req.Description) == "" {
		return FileOutcome{State: FileFailed, Err: UserError("Please describe your grievance")}
	}
	grvnNum, err := w.API.FileGrievance(ctx, req)
	if err != nil {
		return FileOutcome{State: FileFailed, Err: err}
	}
	if len(files) == 0 {
		return FileOutcome{State: FileSucceeded, GrvnNum: grvnNum}
	}
	if err := w.API.UploadAttachments(ctx, "grievances", grvnNum, files); err != nil {
		return FileOutcome{State: FilePartial, GrvnNum: grvnNum, Err: err}
	}
	return FileOutcome{State: FileSucceeded, GrvnNum: grvnNum}
}

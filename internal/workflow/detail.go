package workflow

import (
	"context"

	"github.com/arjunmk/gms/internal/gms"
)

// Detail is everything the grievance detail views show. Timeline is
// best-effort: a failed timeline fetch leaves it nil with the error
// recorded, and the rest of the page still renders.
type Detail struct {
	Grievance   gms.Grievance
	Resolution  *gms.Resolution
	Timeline    *gms.Timeline
	TimelineErr error
}

// EmployeeDetail loads one of the employee's own grievances. The
// grievance fetch is fatal; the resolution is only requested once the
// normalized status reads RESOLVED; the timeline never fails the load.
func (w *Workflow) EmployeeDetail(ctx context.Context, grvnNum string) (Detail, error) {
	g, err := w.API.Grievance(ctx, grvnNum)
	if err != nil {
		return Detail{}, err
	}
	d := Detail{Grievance: g}
	if gms.NormalizeStatus(g.Status) == gms.StatusResolved {
		if res, err := w.API.Resolution(ctx, grvnNum); err == nil {
			d.Resolution = &res
		}
	}
	if tl, err := w.API.Timeline(ctx, grvnNum); err != nil {
		d.TimelineErr = err
	} else {
		d.Timeline = &tl
	}
	return d, nil
}

// OfficerDetail resolves a grievance from the officer queue and attaches
// its timeline. A missing grievance halts with ErrNotFound before any
// further fetch; a failed timeline fetch does not.
func (w *Workflow) OfficerDetail(ctx context.Context, grvnNum string) (Detail, error) {
	g, err := w.FindOfficerGrievance(ctx, grvnNum)
	if err != nil {
		return Detail{}, err
	}
	d := Detail{Grievance: g}
	if gms.NormalizeStatus(g.Status) == gms.StatusResolved {
		if res, err := w.API.Resolution(ctx, grvnNum); err == nil {
			d.Resolution = &res
		}
	}
	if tl, err := w.API.Timeline(ctx, grvnNum); err != nil {
		d.TimelineErr = err
	} else {
		d.Timeline = &tl
	}
	return d, nil
}

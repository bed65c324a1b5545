package workflow

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arjunmk/gms/internal/api"
	"github.com/arjunmk/gms/internal/gms"
)

func TestFileGrievanceValidationSkipsNetwork(t *testing.T) {
	cases := []struct {
		name string
		req  api.FileGrievanceRequest
		want string
	}{
		{"blank subject", api.FileGrievanceRequest{Subject: "  ", Description: "d"}, "Please enter a subject"},
		{"blank description", api.FileGrievanceRequest{Subject: "s", Description: " "}, "Please describe your grievance"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			h := newHarness(t, nil)
			out := h.FileGrievance(context.Background(), c.req, nil)
			require.Equal(t, FileFailed, out.State)
			require.EqualError(t, out.Err, c.want)
			require.Zero(t, h.calls.Load())
		})
	}
}

func TestFileGrievanceSucceedsWithoutFiles(t *testing.T) {
	h := newHarness(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"grvnNum":"G010"}`))
	}))

	out := h.FileGrievance(context.Background(), api.FileGrievanceRequest{
		CategoryNum: "SAL", Subject: "Bonus Issues", Description: "Missing quarterly bonus", Severity: "HIGH",
	}, nil)
	require.Equal(t, FileSucceeded, out.State)
	require.Equal(t, "G010", out.GrvnNum)
	require.Equal(t, "Grievance G010 filed successfully!", out.Message())
	require.EqualValues(t, 1, h.calls.Load())
}

func TestFileGrievanceCreateFailure(t *testing.T) {
	h := newHarness(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"Unknown category"}`))
	}))

	out := h.FileGrievance(context.Background(), api.FileGrievanceRequest{
		Subject: "s", Description: "d",
	}, []api.Attachment{{Name: "a.txt", Data: []byte("x")}})
	require.Equal(t, FileFailed, out.State)
	require.Empty(t, out.GrvnNum)
	require.Equal(t, "Unknown category", out.Message())
	// The upload must not have been attempted.
	require.EqualValues(t, 1, h.calls.Load())
}

func TestFileGrievancePartialKeepsGrievance(t *testing.T) {
	h := newHarness(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/employee/grievances" {
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"grvnNum":"G011"}`))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"disk full"}`))
	}))

	out := h.FileGrievance(context.Background(), api.FileGrievanceRequest{
		Subject: "s", Description: "d",
	}, []api.Attachment{{Name: "a.txt", Data: []byte("x")}})
	require.Equal(t, FilePartial, out.State)
	require.Equal(t, "G011", out.GrvnNum)
	require.Contains(t, out.Message(), "Grievance G011 was filed")
	require.Contains(t, out.Message(), "disk full")
	require.EqualValues(t, 2, h.calls.Load())
}

func TestEmployeeDetailResolutionOnlyWhenResolved(t *testing.T) {
	var resolutionFetched atomic.Bool
	handler := func(status string) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch {
			case r.URL.Path == "/grievances/G001":
				w.Write([]byte(`{"grvnNum":"G001","status":"` + status + `"}`))
			case r.URL.Path == "/resolutions/G001":
				resolutionFetched.Store(true)
				w.Write([]byte(`{"grvnNum":"G001","summary":"Back pay issued"}`))
			case r.URL.Path == "/grievance/G001/timeline":
				w.Write([]byte(`{"investigations":[],"grievanceLevelAppeals":[]}`))
			default:
				w.WriteHeader(http.StatusNotFound)
			}
		})
	}

	t.Run("pending", func(t *testing.T) {
		resolutionFetched.Store(false)
		h := newHarness(t, handler("PENDING"))
		d, err := h.EmployeeDetail(context.Background(), "G001")
		require.NoError(t, err)
		require.Nil(t, d.Resolution)
		require.False(t, resolutionFetched.Load())
		require.NotNil(t, d.Timeline)
	})

	t.Run("resolved", func(t *testing.T) {
		resolutionFetched.Store(false)
		h := newHarness(t, handler("RESOLVED"))
		d, err := h.EmployeeDetail(context.Background(), "G001")
		require.NoError(t, err)
		require.NotNil(t, d.Resolution)
		require.Equal(t, "Back pay issued", d.Resolution.Summary)
	})
}

func TestEmployeeDetailTimelineFailureIsNotFatal(t *testing.T) {
	h := newHarness(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/grievances/G001" {
			w.Write([]byte(`{"grvnNum":"G001","status":"PENDING"}`))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))

	d, err := h.EmployeeDetail(context.Background(), "G001")
	require.NoError(t, err)
	require.Nil(t, d.Timeline)
	require.Error(t, d.TimelineErr)
	require.Equal(t, "G001", d.Grievance.GrvnNum)
}

func TestEmployeeDetailGrievanceFailureIsFatal(t *testing.T) {
	h := newHarness(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"Grievance not found"}`))
	}))

	_, err := h.EmployeeDetail(context.Background(), "G404")
	require.Error(t, err)
	require.Equal(t, 404, api.StatusOf(err))
	// Nothing after the failed grievance fetch.
	require.EqualValues(t, 1, h.calls.Load())
}

func TestOfficerDetailStopsOnMissingGrievance(t *testing.T) {
	h := newHarness(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/officer/grievances", r.URL.Path)
		w.Write([]byte(`[{"grvnNum":"G001","status":"PENDING"}]`))
	}))

	_, err := h.OfficerDetail(context.Background(), "G099")
	require.ErrorIs(t, err, ErrNotFound)
	require.EqualValues(t, 1, h.calls.Load())
}

func TestOfficerDetailAttachesTimeline(t *testing.T) {
	h := newHarness(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/officer/grievances":
			w.Write([]byte(`[{"grvnNum":"G002","status":"IN_PROCESS"}]`))
		case "/grievance/G002/timeline":
			w.Write([]byte(`{"investigations":[{"investigationNum":"I001","findings":"f"}],"grievanceLevelAppeals":[]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	d, err := h.OfficerDetail(context.Background(), "G002")
	require.NoError(t, err)
	require.Equal(t, gms.StatusInProcess, gms.NormalizeStatus(d.Grievance.Status))
	require.NotNil(t, d.Timeline)
	require.Len(t, d.Timeline.Investigations, 1)
	require.False(t, d.Timeline.Investigations[0].Ended())
}

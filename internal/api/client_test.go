package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arjunmk/gms/internal/gms"
)

func TestExtractMessagePrecedence(t *testing.T) {
	cases := []struct {
		body string
		want string
	}{
		{`{"details":"d","message":"m","error":"e"}`, "m"},
		{`{"message":"m","error":"e"}`, "m"},
		{`{"details":"d","error":"e"}`, "d"},
		{`{"error":"e"}`, "e"},
		{`{"details":"","error":"e"}`, "e"},
		{`{"code":42}`, ""},
		{`not json at all `, "not json at all"},
		{``, ""},
	}
	for _, c := range cases {
		require.Equal(t, c.want, extractMessage([]byte(c.body)), "body=%q", c.body)
	}
}

func TestStatusOf(t *testing.T) {
	require.Equal(t, 404, StatusOf(&Error{Status: 404}))
	require.Equal(t, 0, StatusOf(context.Canceled))
}

func TestUnauthorizedRunsHook(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"Session expired"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	hooked := 0
	c.OnUnauthorized = func() { hooked++ }

	_, err := c.EmployeeGrievances(context.Background(), "")
	require.Error(t, err)
	require.Equal(t, 401, StatusOf(err))
	require.Equal(t, 1, hooked)

	ae, ok := err.(*Error)
	require.True(t, ok)
	require.Equal(t, "Session expired", ae.Message)
}

func TestFileGrievanceParsesID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/employee/grievances", r.URL.Path)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"grvnNum":"G042"}`))
	}))
	defer srv.Close()

	id, err := New(srv.URL).FileGrievance(context.Background(), FileGrievanceRequest{
		CategoryNum: "SAL", Subject: "Bonus Issues", Severity: "LOW",
	})
	require.NoError(t, err)
	require.Equal(t, "G042", id)
}

func TestFileGrievanceRawBodyFallback(t *testing.T) {
	// Some backend versions answer with the bare id.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte("G007\n"))
	}))
	defer srv.Close()

	id, err := New(srv.URL).FileGrievance(context.Background(), FileGrievanceRequest{Subject: "x"})
	require.NoError(t, err)
	require.Equal(t, "G007", id)
}

func TestUploadAttachmentsMultipart(t *testing.T) {
	var gotTable, gotID string
	var gotNames []string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/attachments/upload", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		gotTable = r.FormValue("parentTable")
		gotID = r.FormValue("parentId")
		for _, fh := range r.MultipartForm.File["files"] {
			gotNames = append(gotNames, fh.Filename)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	err := New(srv.URL).UploadAttachments(context.Background(), "grievances", "G001", []Attachment{
		{Name: "payslip.pdf", Data: []byte("pdf")},
		{Name: "photo.jpg", Data: []byte("jpg")},
	})
	require.NoError(t, err)
	require.Equal(t, "grievances", gotTable)
	require.Equal(t, "G001", gotID)
	require.Equal(t, []string{"payslip.pdf", "photo.jpg"}, gotNames)
}

func TestEmployeeGrievancesStatusQuery(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("status")
		w.Write([]byte(`[{"grvnNum":"G001","status":"PENDING"}]`))
	}))
	defer srv.Close()

	gs, err := New(srv.URL).EmployeeGrievances(context.Background(), gms.StatusPending)
	require.NoError(t, err)
	require.Equal(t, "PENDING", gotQuery)
	require.Len(t, gs, 1)
	require.Equal(t, "G001", gs[0].GrvnNum)
}

package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

// newTestAPI stands up the built-in backend over a throwaway database.
func newTestAPI(t *testing.T) *httptest.Server {
	t.Helper()
	cfg = Config{AuthKey: "test-key", DataDir: t.TempDir(), UploadDir: t.TempDir()}
	initDB(cfg.DataDir)
	srv := httptest.NewServer(apiRoutes())
	t.Cleanup(func() {
		srv.Close()
		db.Close()
	})
	return srv
}

func newBrowser(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar}
}

// call sends a JSON request and decodes the JSON response into a loose
// map, returning the status code alongside.
func call(t *testing.T, c *http.Client, method, url string, body any) (int, map[string]any) {
	t.Helper()
	var rdr *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		rdr = bytes.NewReader(raw)
	} else {
		rdr = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, url, rdr)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	var out map[string]any
	json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}

func callList(t *testing.T, c *http.Client, url string) (int, []map[string]any) {
	t.Helper()
	resp, err := c.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	var out []map[string]any
	json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}

func registerEmployee(t *testing.T, base, userNum string) {
	t.Helper()
	status, _ := call(t, http.DefaultClient, "POST", base+"/auth/register/employee", map[string]string{
		"userNum": userNum, "name": "Test Employee", "password": "password",
		"department": "Finance",
	})
	require.Equal(t, http.StatusCreated, status)
}

func registerOfficer(t *testing.T, base, userNum, category string) {
	t.Helper()
	status, _ := call(t, http.DefaultClient, "POST", base+"/auth/register/officer", map[string]string{
		"userNum": userNum, "name": "Test Officer", "password": "password",
		"categoryNum": category, "authKey": "test-key",
	})
	require.Equal(t, http.StatusCreated, status)
}

func login(t *testing.T, base, userNum, authKey string) *http.Client {
	t.Helper()
	c := newBrowser(t)
	status, body := call(t, c, "POST", base+"/auth/login", map[string]string{
		"userNum": userNum, "password": "password", "authKey": authKey,
	})
	require.Equal(t, http.StatusOK, status, "login %s: %v", userNum, body)
	return c
}

func TestAuthFlow(t *testing.T) {
	srv := newTestAPI(t)

	status, body := call(t, newBrowser(t), "GET", srv.URL+"/employee/grievances", nil)
	require.Equal(t, http.StatusUnauthorized, status)
	require.Equal(t, "Not authenticated", body["error"])

	registerEmployee(t, srv.URL, "E100")

	status, body = call(t, http.DefaultClient, "POST", srv.URL+"/auth/register/employee", map[string]string{
		"userNum": "E100", "name": "Dup", "password": "password",
	})
	require.Equal(t, http.StatusConflict, status)
	require.Equal(t, "User number E100 is already registered", body["error"])

	status, body = call(t, newBrowser(t), "POST", srv.URL+"/auth/login", map[string]string{
		"userNum": "E100", "password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, status)
	require.Equal(t, "Invalid credentials", body["error"])

	c := login(t, srv.URL, "E100", "")
	status, body = call(t, c, "GET", srv.URL+"/current-user", nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "E100", body["empNum"])
	require.Equal(t, "Finance", body["department"])
}

func TestOfficerLoginRequiresAuthKey(t *testing.T) {
	srv := newTestAPI(t)
	registerOfficer(t, srv.URL, "O100", "SAL")

	status, body := call(t, newBrowser(t), "POST", srv.URL+"/auth/login", map[string]string{
		"userNum": "O100", "password": "password",
	})
	require.Equal(t, http.StatusUnauthorized, status)
	require.Equal(t, "Invalid authorization key", body["error"])

	login(t, srv.URL, "O100", "test-key")
}

func TestRegisterOfficerRejectsBadAuthKey(t *testing.T) {
	srv := newTestAPI(t)
	status, body := call(t, http.DefaultClient, "POST", srv.URL+"/auth/register/officer", map[string]string{
		"userNum": "O100", "name": "n", "password": "password", "authKey": "nope",
	})
	require.Equal(t, http.StatusForbidden, status)
	require.Equal(t, "Invalid authorization key", body["error"])
}

func TestFileGrievanceNumbering(t *testing.T) {
	srv := newTestAPI(t)
	registerEmployee(t, srv.URL, "E100")
	c := login(t, srv.URL, "E100", "")

	status, body := call(t, c, "POST", srv.URL+"/employee/grievances", map[string]string{
		"categoryNum": "SAL", "subject": "Bonus Issues", "description": "Missing bonus",
	})
	require.Equal(t, http.StatusCreated, status)
	require.Equal(t, "G001", body["grvnNum"])

	status, body = call(t, c, "POST", srv.URL+"/employee/grievances", map[string]string{
		"categoryNum": "HR", "subject": "Leave Rejection", "description": "Denied leave twice",
	})
	require.Equal(t, http.StatusCreated, status)
	require.Equal(t, "G002", body["grvnNum"])

	status, body = call(t, c, "POST", srv.URL+"/employee/grievances", map[string]string{
		"categoryNum": "BOGUS", "subject": "x", "description": "y",
	})
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "Unknown category BOGUS", body["error"])
}

func TestEmployeeGrievanceScoping(t *testing.T) {
	srv := newTestAPI(t)
	registerEmployee(t, srv.URL, "E100")
	registerEmployee(t, srv.URL, "E200")
	c1 := login(t, srv.URL, "E100", "")
	c2 := login(t, srv.URL, "E200", "")

	call(t, c1, "POST", srv.URL+"/employee/grievances", map[string]string{
		"categoryNum": "SAL", "subject": "Bonus Issues", "description": "d",
	})

	_, own := callList(t, c1, srv.URL+"/employee/grievances")
	require.Len(t, own, 1)
	require.Equal(t, "PENDING", own[0]["status"])
	require.Equal(t, "Salary & Wage Issues", own[0]["categoryName"])

	_, other := callList(t, c2, srv.URL+"/employee/grievances")
	require.Empty(t, other)

	_, filtered := callList(t, c1, srv.URL+"/employee/grievances?status=RESOLVED")
	require.Empty(t, filtered)

	// Detail reads of someone else's grievance are refused.
	status, body := call(t, c2, "GET", srv.URL+"/grievances/G001", nil)
	require.Equal(t, http.StatusForbidden, status)
	require.Equal(t, "Forbidden", body["error"])
}

func TestAssignConflict(t *testing.T) {
	srv := newTestAPI(t)
	registerEmployee(t, srv.URL, "E100")
	registerOfficer(t, srv.URL, "O100", "SAL")
	emp := login(t, srv.URL, "E100", "")
	off := login(t, srv.URL, "O100", "test-key")

	call(t, emp, "POST", srv.URL+"/employee/grievances", map[string]string{
		"categoryNum": "SAL", "subject": "Bonus Issues", "description": "d",
	})

	status, _ := call(t, off, "PUT", srv.URL+"/officer/grievances/G001/assign", map[string]string{
		"officerNum": "O100", "remarks": "Assigned for investigation",
	})
	require.Equal(t, http.StatusOK, status)

	status, body := call(t, off, "GET", srv.URL+"/grievances/G001", nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "IN_PROCESS", body["status"])

	// Re-assigning carries the readable conflict payload.
	status, body = call(t, off, "PUT", srv.URL+"/officer/grievances/G001/assign", nil)
	require.Equal(t, http.StatusConflict, status)
	require.Equal(t, "Grievance is not pending", body["error"])
	require.Equal(t, "Grievance G001 is already 'IN PROCESS' and cannot be re-assigned.", body["details"])
}

func TestAssignOutsideCategory(t *testing.T) {
	srv := newTestAPI(t)
	registerEmployee(t, srv.URL, "E100")
	registerOfficer(t, srv.URL, "O200", "HR")
	emp := login(t, srv.URL, "E100", "")
	off := login(t, srv.URL, "O200", "test-key")

	call(t, emp, "POST", srv.URL+"/employee/grievances", map[string]string{
		"categoryNum": "SAL", "subject": "Bonus Issues", "description": "d",
	})

	status, body := call(t, off, "PUT", srv.URL+"/officer/grievances/G001/assign", nil)
	require.Equal(t, http.StatusForbidden, status)
	require.Equal(t, "Grievance G001 is outside your category", body["error"])

	_, queue := callList(t, off, srv.URL+"/officer/grievances")
	require.Empty(t, queue)
}

func TestInvestigationLifecycle(t *testing.T) {
	srv := newTestAPI(t)
	registerEmployee(t, srv.URL, "E100")
	registerOfficer(t, srv.URL, "O100", "SAL")
	emp := login(t, srv.URL, "E100", "")
	off := login(t, srv.URL, "O100", "test-key")

	call(t, emp, "POST", srv.URL+"/employee/grievances", map[string]string{
		"categoryNum": "SAL", "subject": "Bonus Issues", "description": "d",
	})

	// Adding before assignment is refused.
	status, body := call(t, off, "POST", srv.URL+"/officer/investigations/add", map[string]string{
		"grvnNum": "G001", "findings": "Reviewed records",
	})
	require.Equal(t, http.StatusForbidden, status)
	require.Equal(t, "Grievance G001 is not assigned to you", body["error"])

	call(t, off, "PUT", srv.URL+"/officer/grievances/G001/assign", nil)

	status, body = call(t, off, "POST", srv.URL+"/officer/investigations/add", map[string]string{
		"grvnNum": "G001", "findings": "Reviewed records", "outcome": "Underpayment confirmed",
	})
	require.Equal(t, http.StatusCreated, status)
	require.Equal(t, "I001", body["investigationNum"])

	status, _ = call(t, off, "PUT", srv.URL+"/officer/investigations/I001/update", map[string]string{
		"findings": "Reviewed records and payslips",
	})
	require.Equal(t, http.StatusOK, status)

	status, _ = call(t, off, "PUT", srv.URL+"/officer/investigations/I001/end", nil)
	require.Equal(t, http.StatusOK, status)

	// Ended investigations are locked.
	status, body = call(t, off, "PUT", srv.URL+"/officer/investigations/I001/update", map[string]string{
		"findings": "late edit",
	})
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "Investigation I001 has ended and is locked", body["error"])

	status, body = call(t, off, "PUT", srv.URL+"/officer/investigations/I001/end", nil)
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "Investigation I001 has already ended", body["error"])

	// The employee sees the record on the timeline.
	status, body = call(t, emp, "GET", srv.URL+"/grievance/G001/timeline", nil)
	require.Equal(t, http.StatusOK, status)
	invs, ok := body["investigations"].([]any)
	require.True(t, ok)
	require.Len(t, invs, 1)
}

func TestIntendedResolveOwnership(t *testing.T) {
	srv := newTestAPI(t)
	registerEmployee(t, srv.URL, "E100")
	registerEmployee(t, srv.URL, "E200")
	owner := login(t, srv.URL, "E100", "")
	stranger := login(t, srv.URL, "E200", "")

	call(t, owner, "POST", srv.URL+"/employee/grievances", map[string]string{
		"categoryNum": "SAL", "subject": "Bonus Issues", "description": "d",
	})

	status, _ := call(t, stranger, "PUT", srv.URL+"/employee/grievances/G001/intended-resolve", nil)
	require.Equal(t, http.StatusForbidden, status)

	status, _ = call(t, owner, "PUT", srv.URL+"/employee/grievances/G001/intended-resolve", nil)
	require.Equal(t, http.StatusOK, status)

	status, body := call(t, owner, "GET", srv.URL+"/grievances/G001", nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "INTENDED_RESOLVE", body["status"])
}

func TestSubmitAppealValidation(t *testing.T) {
	srv := newTestAPI(t)
	registerEmployee(t, srv.URL, "E100")
	c := login(t, srv.URL, "E100", "")

	call(t, c, "POST", srv.URL+"/employee/grievances", map[string]string{
		"categoryNum": "SAL", "subject": "Bonus Issues", "description": "d",
	})

	status, body := call(t, c, "POST", srv.URL+"/employee/appeals/add", map[string]string{
		"grvnNum": "G001", "appealContent": "  ",
	})
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "Appeal content is required", body["error"])

	status, body = call(t, c, "POST", srv.URL+"/employee/appeals/add", map[string]string{
		"grvnNum": "G001", "investigationNum": "I999", "appealContent": "I disagree",
	})
	require.Equal(t, http.StatusNotFound, status)
	require.Equal(t, "Investigation I999 not found", body["error"])

	status, body = call(t, c, "POST", srv.URL+"/employee/appeals/add", map[string]string{
		"grvnNum": "G001", "appealContent": "I disagree",
	})
	require.Equal(t, http.StatusCreated, status)
	require.Equal(t, "A001", body["appealNum"])
}

func TestRoleGuards(t *testing.T) {
	srv := newTestAPI(t)
	registerEmployee(t, srv.URL, "E100")
	c := login(t, srv.URL, "E100", "")

	for _, url := range []string{
		srv.URL + "/officer/grievances",
		srv.URL + "/admin/grievances",
		srv.URL + "/legalrefs/all-legal-references",
	} {
		status, body := call(t, c, "GET", url, nil)
		require.Equal(t, http.StatusForbidden, status, url)
		require.Equal(t, "Forbidden", body["error"])
	}
}

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/arjunmk/gms/internal/gms"
)

// EmployeeGrievances lists the caller's own grievances, optionally
// filtered server-side by normalized status.
func (c *Client) EmployeeGrievances(ctx context.Context, status gms.Status) ([]gms.Grievance, error) {
	path := "/employee/grievances"
	if status != gms.StatusUnknown {
		path += "?status=" + url.QueryEscape(string(status))
	}
	var gs []gms.Grievance
	if err := c.get(ctx, path, &gs); err != nil {
		return nil, err
	}
	return gs, nil
}

// FileGrievanceRequest is the create payload. Subject carries the chosen
// topic.
type FileGrievanceRequest struct {
	CategoryNum string `json:"categoryNum"`
	Subject     string `json:"subject"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
}

// FileGrievance creates a grievance and returns its new business key.
// The server usually answers with a structured body carrying grvnNum;
// older versions answer with the bare key, so the raw body is the
// fallback.
func (c *Client) FileGrievance(ctx context.Context, req FileGrievanceRequest) (string, error) {
	var raw []byte
	if err := c.post(ctx, "/employee/grievances", req, &raw); err != nil {
		return "", err
	}
	var structured struct {
		GrvnNum string `json:"grvnNum"`
	}
	if err := json.Unmarshal(raw, &structured); err == nil && structured.GrvnNum != "" {
		return structured.GrvnNum, nil
	}
	return strings.Trim(strings.TrimSpace(string(raw)), `"`), nil
}

// Grievance fetches one grievance by its business key.
func (c *Client) Grievance(ctx context.Context, grvnNum string) (gms.Grievance, error) {
	var g gms.Grievance
	if err := c.get(ctx, "/grievances/"+url.PathEscape(grvnNum), &g); err != nil {
		return gms.Grievance{}, err
	}
	return g, nil
}

// Timeline fetches the investigation/appeal history for a grievance.
func (c *Client) Timeline(ctx context.Context, grvnNum string) (gms.Timeline, error) {
	var t gms.Timeline
	if err := c.get(ctx, "/grievance/"+url.PathEscape(grvnNum)+"/timeline", &t); err != nil {
		return gms.Timeline{}, err
	}
	return t, nil
}

// Resolution fetches the final disposition of a resolved grievance.
func (c *Client) Resolution(ctx context.Context, grvnNum string) (gms.Resolution, error) {
	var r gms.Resolution
	if err := c.get(ctx, "/resolutions/"+url.PathEscape(grvnNum), &r); err != nil {
		return gms.Resolution{}, err
	}
	return r, nil
}

// IntendedResolve marks the caller's grievance as intended for
// resolution.
func (c *Client) IntendedResolve(ctx context.Context, grvnNum string) error {
	return c.put(ctx, "/employee/grievances/"+url.PathEscape(grvnNum)+"/intended-resolve", nil, nil)
}

// AppealRequest raises an appeal, either against a specific
// investigation or at the grievance level when InvestigationNum is
// empty.
type AppealRequest struct {
	GrvnNum          string `json:"grvnNum"`
	InvestigationNum string `json:"investigationNum,omitempty"`
	AppealContent    string `json:"appealContent"`
}

// SubmitAppeal files an appeal on behalf of the employee.
func (c *Client) SubmitAppeal(ctx context.Context, req AppealRequest) error {
	return c.post(ctx, "/employee/appeals/add", req, nil)
}

// OfficerGrievances lists the grievances visible to the officer queue.
func (c *Client) OfficerGrievances(ctx context.Context) ([]gms.Grievance, error) {
	var gs []gms.Grievance
	if err := c.get(ctx, "/officer/grievances", &gs); err != nil {
		return nil, err
	}
	return gs, nil
}

// Assign claims a grievance for the officer with a fixed remark.
func (c *Client) Assign(ctx context.Context, grvnNum, officerNum, remarks string) error {
	body := map[string]string{"officerNum": officerNum, "remarks": remarks}
	return c.put(ctx, "/officer/grievances/"+url.PathEscape(grvnNum)+"/assign", body, nil)
}

// InvestigationRequest carries the officer-authored fields. Findings is
// mandatory, the rest optional.
type InvestigationRequest struct {
	GrvnNum  string `json:"grvnNum,omitempty"`
	Findings string `json:"findings"`
	Remarks  string `json:"remarks,omitempty"`
	Outcome  string `json:"outcome,omitempty"`
}

// AddInvestigation opens a new investigation on a grievance.
func (c *Client) AddInvestigation(ctx context.Context, req InvestigationRequest) error {
	return c.post(ctx, "/officer/investigations/add", req, nil)
}

// UpdateInvestigation rewrites an open investigation's fields.
func (c *Client) UpdateInvestigation(ctx context.Context, investigationNum string, req InvestigationRequest) error {
	req.GrvnNum = ""
	return c.put(ctx, "/officer/investigations/"+url.PathEscape(investigationNum)+"/update", req, nil)
}

// EndInvestigation closes an investigation; the server locks it from
// further edits.
func (c *Client) EndInvestigation(ctx context.Context, investigationNum string) error {
	return c.put(ctx, "/officer/investigations/"+url.PathEscape(investigationNum)+"/end", nil, nil)
}

// AdminGrievances lists every grievance in the system.
func (c *Client) AdminGrievances(ctx context.Context) ([]gms.Grievance, error) {
	var gs []gms.Grievance
	if err := c.get(ctx, "/admin/grievances", &gs); err != nil {
		return nil, err
	}
	return gs, nil
}

// DepartmentCount is one analytics row of the employees-by-department
// aggregate.
type DepartmentCount struct {
	Department string `json:"department"`
	Count      int    `json:"count"`
}

// OfficerWorkload is one analytics row of the per-officer assignment
// aggregate.
type OfficerWorkload struct {
	OfficerNum string `json:"officerNum"`
	Name       string `json:"name"`
	Assigned   int    `json:"assigned"`
	Resolved   int    `json:"resolved"`
}

func (c *Client) EmployeesByDepartment(ctx context.Context) ([]DepartmentCount, error) {
	var rows []DepartmentCount
	if err := c.get(ctx, "/admin/analytics/employees-by-department", &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (c *Client) OfficerWorkloads(ctx context.Context) ([]OfficerWorkload, error) {
	var rows []OfficerWorkload
	if err := c.get(ctx, "/admin/analytics/officer-workload", &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// AdminEmployees lists employee accounts as loose DTOs for the
// management tab.
func (c *Client) AdminEmployees(ctx context.Context) ([]map[string]any, error) {
	var rows []map[string]any
	if err := c.get(ctx, "/admin/analytics/employees", &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// AdminOfficers lists officer accounts for the management tab.
func (c *Client) AdminOfficers(ctx context.Context) ([]map[string]any, error) {
	var rows []map[string]any
	if err := c.get(ctx, "/admin/analytics/officers-list", &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (c *Client) DeleteEmployee(ctx context.Context, empNum string) error {
	return c.delete(ctx, "/admin/delete_employees/"+url.PathEscape(empNum))
}

func (c *Client) DeleteOfficer(ctx context.Context, officerNum string) error {
	return c.delete(ctx, "/admin/delete_officers/"+url.PathEscape(officerNum))
}

// LegalReferences lists every statute entry officers can browse.
func (c *Client) LegalReferences(ctx context.Context) ([]gms.LegalReference, error) {
	var refs []gms.LegalReference
	if err := c.get(ctx, "/legalrefs/all-legal-references", &refs); err != nil {
		return nil, err
	}
	return refs, nil
}

// ApplyLegalReference links a statute entry to a grievance.
func (c *Client) ApplyLegalReference(ctx context.Context, grvnNum, refID string) error {
	body := map[string]string{"grvnNum": grvnNum, "refId": refID}
	return c.post(ctx, "/officer/grievances/apply-legal-ref", body, nil)
}

// Attachment is one staged upload: name plus raw bytes read in the
// browser.
type Attachment struct {
	Name string
	Data []byte
}

// UploadAttachments sends staged files as one multipart request tagged
// with the parent entity. The server validates type and size; the client
// does not.
func (c *Client) UploadAttachments(ctx context.Context, parentTable, parentID string, files []Attachment) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, f := range files {
		part, err := w.CreateFormFile("files", f.Name)
		if err != nil {
			return err
		}
		if _, err := part.Write(f.Data); err != nil {
			return err
		}
	}
	if err := w.WriteField("parentTable", parentTable); err != nil {
		return err
	}
	if err := w.WriteField("parentId", parentID); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/attachments/upload", &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	return c.send(req, nil)
}

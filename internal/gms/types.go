// Package gms holds the domain rules shared by the web client and the
// serving shell: roles, grievance data shapes, status normalization and
// the lifecycle rules that decide which actions a user may take.
package gms

// Role is the actor role carried by a session.
type Role string

const (
	RoleEmployee Role = "EMPLOYEE"
	RoleOfficer  Role = "OFFICER"
	RoleAdmin    Role = "ADMIN"
)

// HomeRoute returns the landing route for a role. Unknown roles land on
// the login page.
func (r Role) HomeRoute() string {
	switch r {
	case RoleEmployee:
		return "/employee-home"
	case RoleOfficer:
		return "/officer-home"
	case RoleAdmin:
		return "/admin-home"
	}
	return "/login"
}

// Severity levels accepted when filing a grievance.
var Severities = []string{"LOW", "MEDIUM", "HIGH", "CRITICAL"}

// User is the authenticated identity returned by the login endpoint.
// Profile endpoints return a looser DTO, see FirstField.
type User struct {
	UserNum string `json:"userNum"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Role    Role   `json:"role"`
}

// Grievance as returned by the list and detail endpoints. Status is the
// server's free-text lifecycle field; use NormalizeStatus before
// comparing it to anything.
type Grievance struct {
	GrvnNum      string `json:"grvnNum"`
	EmpNum       string `json:"empNum"`
	CategoryNum  string `json:"categoryNum"`
	CategoryName string `json:"categoryName"`
	Subject      string `json:"subject"`
	Description  string `json:"description"`
	Severity     string `json:"severity"`
	Status       string `json:"status"`
	DateFiled    string `json:"dateFiled"`
}

// Investigation is one officer-authored record on a grievance. EndDate is
// empty while the investigation is open; once set the record is locked
// server-side.
type Investigation struct {
	InvestigationNum  string   `json:"investigationNum"`
	GrvnNum           string   `json:"grvnNum"`
	Findings          string   `json:"findings"`
	Remarks           string   `json:"remarks,omitempty"`
	Outcome           string   `json:"outcome,omitempty"`
	InvestigationDate string   `json:"investigationDate"`
	EndDate           string   `json:"endDate,omitempty"`
	Appeals           []Appeal `json:"appeals,omitempty"`
}

// Ended reports whether the investigation has been closed.
func (inv Investigation) Ended() bool { return inv.EndDate != "" }

// Appeal attaches either to one investigation or to the grievance as a
// whole, depending on which timeline collection it arrives in.
type Appeal struct {
	AppealNum     string `json:"appealNum"`
	AppealContent string `json:"appealContent"`
	AppealDate    string `json:"appealDate"`
}

// Timeline is the aggregate returned by the timeline endpoint.
type Timeline struct {
	Investigations        []Investigation `json:"investigations"`
	GrievanceLevelAppeals []Appeal        `json:"grievanceLevelAppeals"`
}

// Resolution is the final disposition shown once a grievance resolves.
type Resolution struct {
	GrvnNum      string `json:"grvnNum"`
	Summary      string `json:"summary"`
	ResolvedDate string `json:"resolvedDate"`
}

// LegalReference is a statute entry officers can apply to a grievance.
type LegalReference struct {
	RefID       string `json:"refId"`
	SectionName string `json:"sectionName"`
	Description string `json:"description"`
}

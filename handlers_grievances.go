package main

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/arjunmk/gms/internal/gms"
)

func handleEmployeeGrievances(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)
	gs, err := queryGrievances("emp_num = ?", u.UserNum)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal error")
		return
	}
	if st := gms.Status(r.URL.Query().Get("status")); st != gms.StatusUnknown {
		gs = gms.FilterByStatus(gs, st)
	}
	writeJSON(w, http.StatusOK, gs)
}

type fileGrievanceRequest struct {
	CategoryNum string `json:"categoryNum"`
	Subject     string `json:"subject"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
}

func handleFileGrievance(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)
	var req fileGrievanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Subject) == "" {
		writeError(w, http.StatusBadRequest, "Subject is required")
		return
	}
	if len(gms.Topics(req.CategoryNum)) == 0 {
		writeError(w, http.StatusBadRequest, "Unknown category "+req.CategoryNum)
		return
	}
	if req.Severity == "" {
		req.Severity = "LOW"
	}

	grvnNum := nextNum("G", "grievances", "grvn_num")
	_, err := db.Exec(`INSERT INTO grievances (grvn_num, emp_num, category_num, subject,
			description, severity, status) VALUES (?, ?, ?, ?, ?, ?, 'PENDING')`,
		grvnNum, u.UserNum, req.CategoryNum, req.Subject, req.Description, req.Severity)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Could not file grievance")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"grvnNum": grvnNum})
}

// canSeeGrievance scopes detail reads: the filing employee, officers of
// the grievance's category, and admins.
func canSeeGrievance(u *User, g gms.Grievance) bool {
	switch u.Role {
	case "ADMIN":
		return true
	case "OFFICER":
		return u.CategoryNum == g.CategoryNum
	default:
		return u.UserNum == g.EmpNum
	}
}

func handleGrievanceDetail(w http.ResponseWriter, r *http.Request) {
	grvnNum := r.PathValue("grvnNum")
	g, err := getGrievance(grvnNum)
	if err == sql.ErrNoRows {
		writeError(w, http.StatusNotFound, "Grievance "+grvnNum+" not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal error")
		return
	}
	if !canSeeGrievance(currentUser(r), g) {
		writeError(w, http.StatusForbidden, "Forbidden")
		return
	}
	writeJSON(w, http.StatusOK, g)
}

func handleTimeline(w http.ResponseWriter, r *http.Request) {
	grvnNum := r.PathValue("grvnNum")
	g, err := getGrievance(grvnNum)
	if err != nil {
		writeError(w, http.StatusNotFound, "Grievance "+grvnNum+" not found")
		return
	}
	if !canSeeGrievance(currentUser(r), g) {
		writeError(w, http.StatusForbidden, "Forbidden")
		return
	}
	tl, err := getTimeline(grvnNum)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal error")
		return
	}
	writeJSON(w, http.StatusOK, tl)
}

func handleResolution(w http.ResponseWriter, r *http.Request) {
	grvnNum := r.PathValue("grvnNum")
	g, err := getGrievance(grvnNum)
	if err != nil {
		writeError(w, http.StatusNotFound, "Grievance "+grvnNum+" not found")
		return
	}
	if !canSeeGrievance(currentUser(r), g) {
		writeError(w, http.StatusForbidden, "Forbidden")
		return
	}
	res, err := getResolution(grvnNum)
	if err == sql.ErrNoRows {
		writeError(w, http.StatusNotFound, "No resolution for "+grvnNum)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal error")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func handleIntendedResolve(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)
	grvnNum := r.PathValue("grvnNum")
	g, err := getGrievance(grvnNum)
	if err != nil {
		writeError(w, http.StatusNotFound, "Grievance "+grvnNum+" not found")
		return
	}
	if g.EmpNum != u.UserNum {
		writeError(w, http.StatusForbidden, "Forbidden")
		return
	}
	if gms.NormalizeStatus(g.Status) == gms.StatusResolved {
		writeError(w, http.StatusBadRequest, "Grievance "+grvnNum+" is already resolved")
		return
	}
	db.Exec("UPDATE grievances SET status = 'INTENDED_RESOLVE' WHERE grvn_num = ?", grvnNum)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Marked for resolution"})
}

type appealRequest struct {
	GrvnNum          string `json:"grvnNum"`
	InvestigationNum string `json:"investigationNum"`
	AppealContent    string `json:"appealContent"`
}

func handleSubmitAppeal(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)
	var req appealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.AppealContent) == "" {
		writeError(w, http.StatusBadRequest, "Appeal content is required")
		return
	}
	g, err := getGrievance(req.GrvnNum)
	if err != nil {
		writeError(w, http.StatusNotFound, "Grievance "+req.GrvnNum+" not found")
		return
	}
	if g.EmpNum != u.UserNum {
		writeError(w, http.StatusForbidden, "Forbidden")
		return
	}
	if req.InvestigationNum != "" {
		var exists bool
		db.QueryRow(`SELECT EXISTS(SELECT 1 FROM investigations
			WHERE investigation_num = ? AND grvn_num = ?)`,
			req.InvestigationNum, req.GrvnNum).Scan(&exists)
		if !exists {
			writeError(w, http.StatusNotFound, "Investigation "+req.InvestigationNum+" not found")
			return
		}
	}

	appealNum := nextNum("A", "appeals", "appeal_num")
	_, err = db.Exec(`INSERT INTO appeals (appeal_num, grvn_num, investigation_num, appeal_content)
		VALUES (?, ?, ?, ?)`, appealNum, req.GrvnNum, req.InvestigationNum, req.AppealContent)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Could not submit appeal")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"appealNum": appealNum})
}

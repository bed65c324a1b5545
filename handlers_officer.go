package main

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/arjunmk/gms/internal/gms"
)

func handleOfficerGrievances(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)
	gs, err := queryGrievances("category_num = ?", u.CategoryNum)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal error")
		return
	}
	writeJSON(w, http.StatusOK, gs)
}

type assignRequest struct {
	OfficerNum string `json:"officerNum"`
	Remarks    string `json:"remarks"`
}

// handleAssign claims a PENDING grievance for the officer. The
// precondition violation carries both error and details so older and
// newer clients both surface something readable.
func handleAssign(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)
	grvnNum := r.PathValue("grvnNum")

	var req assignRequest
	json.NewDecoder(r.Body).Decode(&req)

	g, err := getGrievance(grvnNum)
	if err == sql.ErrNoRows {
		writeError(w, http.StatusNotFound, "Grievance "+grvnNum+" not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal error")
		return
	}
	if g.CategoryNum != u.CategoryNum {
		writeError(w, http.StatusForbidden, "Grievance "+grvnNum+" is outside your category")
		return
	}
	if st := gms.NormalizeStatus(g.Status); st != gms.StatusPending {
		writeJSON(w, http.StatusConflict, map[string]string{
			"error":   "Grievance is not pending",
			"details": "Grievance " + grvnNum + " is already '" + st.Label() + "' and cannot be re-assigned.",
		})
		return
	}

	_, err = db.Exec(`UPDATE grievances SET status = 'IN_PROCESS', assigned_officer = ?
		WHERE grvn_num = ?`, u.UserNum, grvnNum)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Could not assign grievance")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Assigned"})
}

type investigationRequest struct {
	GrvnNum  string `json:"grvnNum"`
	Findings string `json:"findings"`
	Remarks  string `json:"remarks"`
	Outcome  string `json:"outcome"`
}

func handleAddInvestigation(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)
	var req investigationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Findings) == "" {
		writeError(w, http.StatusBadRequest, "Findings are required")
		return
	}

	g, err := getGrievance(req.GrvnNum)
	if err != nil {
		writeError(w, http.StatusNotFound, "Grievance "+req.GrvnNum+" not found")
		return
	}
	var assignedTo string
	db.QueryRow("SELECT assigned_officer FROM grievances WHERE grvn_num = ?", req.GrvnNum).Scan(&assignedTo)
	if assignedTo != u.UserNum {
		writeError(w, http.StatusForbidden, "Grievance "+req.GrvnNum+" is not assigned to you")
		return
	}
	if gms.NormalizeStatus(g.Status) != gms.StatusInProcess {
		writeError(w, http.StatusBadRequest, "Investigations require an in-process grievance")
		return
	}

	invNum := nextNum("I", "investigations", "investigation_num")
	_, err = db.Exec(`INSERT INTO investigations (investigation_num, grvn_num, officer_num,
			findings, remarks, outcome) VALUES (?, ?, ?, ?, ?, ?)`,
		invNum, req.GrvnNum, u.UserNum, req.Findings, req.Remarks, req.Outcome)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Could not add investigation")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"investigationNum": invNum})
}

// loadOwnInvestigation resolves {num} and enforces authorship. It writes
// the error response itself and returns false when the caller must stop.
func loadOwnInvestigation(w http.ResponseWriter, r *http.Request, u *User) (num string, ended bool, ok bool) {
	num = r.PathValue("investigationNum")
	var officerNum string
	var endDate sql.NullString
	err := db.QueryRow(`SELECT officer_num, end_date FROM investigations
		WHERE investigation_num = ?`, num).Scan(&officerNum, &endDate)
	if err == sql.ErrNoRows {
		writeError(w, http.StatusNotFound, "Investigation "+num+" not found")
		return num, false, false
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal error")
		return num, false, false
	}
	if officerNum != u.UserNum {
		writeError(w, http.StatusForbidden, "Not your investigation")
		return num, false, false
	}
	return num, endDate.Valid && endDate.String != "", true
}

func handleUpdateInvestigation(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)
	num, ended, ok := loadOwnInvestigation(w, r, u)
	if !ok {
		return
	}
	if ended {
		writeError(w, http.StatusBadRequest, "Investigation "+num+" has ended and is locked")
		return
	}
	var req investigationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Findings) == "" {
		writeError(w, http.StatusBadRequest, "Findings are required")
		return
	}
	_, err := db.Exec(`UPDATE investigations SET findings = ?, remarks = ?, outcome = ?
		WHERE investigation_num = ?`, req.Findings, req.Remarks, req.Outcome, num)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Could not update investigation")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Updated"})
}

func handleEndInvestigation(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)
	num, ended, ok := loadOwnInvestigation(w, r, u)
	if !ok {
		return
	}
	if ended {
		writeError(w, http.StatusBadRequest, "Investigation "+num+" has already ended")
		return
	}
	db.Exec("UPDATE investigations SET end_date = CURRENT_TIMESTAMP WHERE investigation_num = ?", num)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Ended"})
}

func handleLegalReferences(w http.ResponseWriter, r *http.Request) {
	rows, err := db.Query("SELECT ref_id, section_name, description FROM legal_refs ORDER BY ref_id")
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal error")
		return
	}
	defer rows.Close()
	refs := []gms.LegalReference{}
	for rows.Next() {
		var lr gms.LegalReference
		if err := rows.Scan(&lr.RefID, &lr.SectionName, &lr.Description); err != nil {
			writeError(w, http.StatusInternalServerError, "Internal error")
			return
		}
		refs = append(refs, lr)
	}
	writeJSON(w, http.StatusOK, refs)
}

type applyRefRequest struct {
	GrvnNum string `json:"grvnNum"`
	RefID   string `json:"refId"`
}

func handleApplyLegalRef(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)
	var req applyRefRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	g, err := getGrievance(req.GrvnNum)
	if err != nil {
		writeError(w, http.StatusNotFound, "Grievance "+req.GrvnNum+" not found")
		return
	}
	if g.CategoryNum != u.CategoryNum {
		writeError(w, http.StatusForbidden, "Grievance "+req.GrvnNum+" is outside your category")
		return
	}
	var exists bool
	db.QueryRow("SELECT EXISTS(SELECT 1 FROM legal_refs WHERE ref_id = ?)", req.RefID).Scan(&exists)
	if !exists {
		writeError(w, http.StatusNotFound, "Legal reference "+req.RefID+" not found")
		return
	}
	db.Exec("INSERT OR IGNORE INTO grievance_legal_refs (grvn_num, ref_id) VALUES (?, ?)",
		req.GrvnNum, req.RefID)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Applied"})
}

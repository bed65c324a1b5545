package main

import (
	"net/http"
)

func handleAdminGrievances(w http.ResponseWriter, r *http.Request) {
	gs, err := queryGrievances("")
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal error")
		return
	}
	writeJSON(w, http.StatusOK, gs)
}

func handleEmployeesByDepartment(w http.ResponseWriter, r *http.Request) {
	rows, err := db.Query(`SELECT department, COUNT(*) FROM users
		WHERE role = 'EMPLOYEE' GROUP BY department ORDER BY department`)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal error")
		return
	}
	defer rows.Close()

	type deptRow struct {
		Department string `json:"department"`
		Count      int    `json:"count"`
	}
	out := []deptRow{}
	for rows.Next() {
		var d deptRow
		if err := rows.Scan(&d.Department, &d.Count); err != nil {
			writeError(w, http.StatusInternalServerError, "Internal error")
			return
		}
		if d.Department == "" {
			d.Department = "Unassigned"
		}
		out = append(out, d)
	}
	writeJSON(w, http.StatusOK, out)
}

func handleOfficerWorkload(w http.ResponseWriter, r *http.Request) {
	rows, err := db.Query(`SELECT u.user_num, u.name,
			COUNT(CASE WHEN g.status != 'RESOLVED' THEN 1 END),
			COUNT(CASE WHEN g.status = 'RESOLVED' THEN 1 END)
		FROM users u
		LEFT JOIN grievances g ON g.assigned_officer = u.user_num
		WHERE u.role = 'OFFICER'
		GROUP BY u.user_num, u.name ORDER BY u.user_num`)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal error")
		return
	}
	defer rows.Close()

	type loadRow struct {
		OfficerNum string `json:"officerNum"`
		Name       string `json:"name"`
		Assigned   int    `json:"assigned"`
		Resolved   int    `json:"resolved"`
	}
	out := []loadRow{}
	for rows.Next() {
		var l loadRow
		if err := rows.Scan(&l.OfficerNum, &l.Name, &l.Assigned, &l.Resolved); err != nil {
			writeError(w, http.StatusInternalServerError, "Internal error")
			return
		}
		out = append(out, l)
	}
	writeJSON(w, http.StatusOK, out)
}

func listAccounts(role string) ([]map[string]any, error) {
	rows, err := db.Query(`SELECT user_num, name, email, contact_num, department, category_num
		FROM users WHERE role = ? ORDER BY user_num`, role)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []map[string]any{}
	for rows.Next() {
		var userNum, name, email, contact, dept, cat string
		if err := rows.Scan(&userNum, &name, &email, &contact, &dept, &cat); err != nil {
			return nil, err
		}
		m := map[string]any{
			"userNum":    userNum,
			"name":       name,
			"email":      email,
			"contactNum": contact,
		}
		if role == "EMPLOYEE" {
			m["empNum"] = userNum
			m["department"] = dept
		} else {
			m["officerNum"] = userNum
			m["categoryNum"] = cat
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func handleAdminEmployees(w http.ResponseWriter, r *http.Request) {
	out, err := listAccounts("EMPLOYEE")
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal error")
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func handleAdminOfficers(w http.ResponseWriter, r *http.Request) {
	out, err := listAccounts("OFFICER")
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal error")
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func deleteAccount(w http.ResponseWriter, userNum, role string) {
	var exists bool
	db.QueryRow("SELECT EXISTS(SELECT 1 FROM users WHERE user_num = ? AND role = ?)",
		userNum, role).Scan(&exists)
	if !exists {
		writeError(w, http.StatusNotFound, "Account "+userNum+" not found")
		return
	}
	if _, err := db.Exec("DELETE FROM users WHERE user_num = ?", userNum); err != nil {
		writeError(w, http.StatusConflict, "Account "+userNum+" still has linked records")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Deleted " + userNum})
}

func handleDeleteEmployee(w http.ResponseWriter, r *http.Request) {
	deleteAccount(w, r.PathValue("empNum"), "EMPLOYEE")
}

func handleDeleteOfficer(w http.ResponseWriter, r *http.Request) {
	deleteAccount(w, r.PathValue("officerNum"), "OFFICER")
}

package main

import (
	"fmt"

	"github.com/arjunmk/gms/internal/gms"
)

type User struct {
	UserNum      string
	Name         string
	Email        string
	PasswordHash string
	Role         string
	Address      string
	Department   string
	ContactNum   string
	EmployeeRole string
	CategoryNum  string
}

func getUser(userNum string) (*User, error) {
	var u User
	err := db.QueryRow(`SELECT user_num, name, email, password_hash, role, address,
			department, contact_num, employee_role, category_num
		FROM users WHERE user_num = ?`, userNum).
		Scan(&u.UserNum, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.Address,
			&u.Department, &u.ContactNum, &u.EmployeeRole, &u.CategoryNum)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

const grievanceCols = `grvn_num, emp_num, category_num, subject, description,
	severity, status, strftime('%Y-%m-%d', date_filed)`

func scanGrievance(row interface{ Scan(...any) error }) (gms.Grievance, error) {
	var g gms.Grievance
	err := row.Scan(&g.GrvnNum, &g.EmpNum, &g.CategoryNum, &g.Subject,
		&g.Description, &g.Severity, &g.Status, &g.DateFiled)
	g.CategoryName = gms.CategoryName(g.CategoryNum)
	return g, err
}

func queryGrievances(where string, args ...any) ([]gms.Grievance, error) {
	q := "SELECT " + grievanceCols + " FROM grievances"
	if where != "" {
		q += " WHERE " + where
	}
	q += " ORDER BY date_filed DESC, grvn_num DESC"
	rows, err := db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("query grievances: %w", err)
	}
	defer rows.Close()

	gs := []gms.Grievance{}
	for rows.Next() {
		g, err := scanGrievance(rows)
		if err != nil {
			return nil, err
		}
		gs = append(gs, g)
	}
	return gs, rows.Err()
}

func getGrievance(grvnNum string) (gms.Grievance, error) {
	row := db.QueryRow("SELECT "+grievanceCols+" FROM grievances WHERE grvn_num = ?", grvnNum)
	return scanGrievance(row)
}

func getTimeline(grvnNum string) (gms.Timeline, error) {
	tl := gms.Timeline{
		Investigations:        []gms.Investigation{},
		GrievanceLevelAppeals: []gms.Appeal{},
	}

	rows, err := db.Query(`SELECT investigation_num, grvn_num, findings, remarks, outcome,
			strftime('%Y-%m-%d', investigation_date),
			COALESCE(strftime('%Y-%m-%d', end_date), '')
		FROM investigations WHERE grvn_num = ?
		ORDER BY investigation_date, investigation_num`, grvnNum)
	if err != nil {
		return tl, err
	}
	defer rows.Close()
	for rows.Next() {
		var inv gms.Investigation
		if err := rows.Scan(&inv.InvestigationNum, &inv.GrvnNum, &inv.Findings,
			&inv.Remarks, &inv.Outcome, &inv.InvestigationDate, &inv.EndDate); err != nil {
			return tl, err
		}
		inv.Appeals = []gms.Appeal{}
		tl.Investigations = append(tl.Investigations, inv)
	}
	if err := rows.Err(); err != nil {
		return tl, err
	}

	aRows, err := db.Query(`SELECT appeal_num, investigation_num, appeal_content,
			strftime('%Y-%m-%d', appeal_date)
		FROM appeals WHERE grvn_num = ? ORDER BY appeal_date, appeal_num`, grvnNum)
	if err != nil {
		return tl, err
	}
	defer aRows.Close()
	for aRows.Next() {
		var a gms.Appeal
		var invNum string
		if err := aRows.Scan(&a.AppealNum, &invNum, &a.AppealContent, &a.AppealDate); err != nil {
			return tl, err
		}
		if invNum == "" {
			tl.GrievanceLevelAppeals = append(tl.GrievanceLevelAppeals, a)
			continue
		}
		for i := range tl.Investigations {
			if tl.Investigations[i].InvestigationNum == invNum {
				tl.Investigations[i].Appeals = append(tl.Investigations[i].Appeals, a)
				break
			}
		}
	}
	return tl, aRows.Err()
}

func getResolution(grvnNum string) (gms.Resolution, error) {
	var r gms.Resolution
	err := db.QueryRow(`SELECT grvn_num, summary, strftime('%Y-%m-%d', resolved_date)
		FROM resolutions WHERE grvn_num = ?`, grvnNum).
		Scan(&r.GrvnNum, &r.Summary, &r.ResolvedDate)
	return r, err
}

// profileDTO is the loose map shape the profile endpoints return.
func profileDTO(u *User) map[string]any {
	dto := map[string]any{
		"userNum":    u.UserNum,
		"name":       u.Name,
		"email":      u.Email,
		"contactNum": u.ContactNum,
		"role":       u.Role,
	}
	switch u.Role {
	case "OFFICER":
		dto["officerNum"] = u.UserNum
		dto["categoryNum"] = u.CategoryNum
		dto["categoryName"] = gms.CategoryName(u.CategoryNum)
	case "EMPLOYEE":
		dto["empNum"] = u.UserNum
		dto["department"] = u.Department
		dto["employeeRole"] = u.EmployeeRole
		dto["address"] = u.Address
	}
	return dto
}

package main

import (
	"log"

	"golang.org/x/crypto/bcrypt"
)

// seed loads a small demo data set for local development. It is
// idempotent: a database that already has users is left alone.
func seed() {
	var n int
	db.QueryRow("SELECT COUNT(*) FROM users").Scan(&n)
	if n > 0 {
		return
	}
	log.Println("Seeding demo data")

	hash, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)

	users := []struct {
		num, name, email, role, dept, empRole, cat string
	}{
		{"E001", "Asha Nair", "asha@example.com", "EMPLOYEE", "Manufacturing", "Machine Operator", ""},
		{"E002", "Ravi Kumar", "ravi@example.com", "EMPLOYEE", "Accounts", "Clerk", ""},
		{"O001", "Meera Pillai", "meera@example.com", "OFFICER", "", "", "SAL"},
		{"O002", "John Mathew", "john@example.com", "OFFICER", "", "", "HR"},
		{"A001", "Admin", "admin@example.com", "ADMIN", "", "", ""},
	}
	for _, u := range users {
		db.Exec(`INSERT INTO users (user_num, name, email, password_hash, role,
				department, employee_role, category_num)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			u.num, u.name, u.email, string(hash), u.role, u.dept, u.empRole, u.cat)
	}

	grievances := []struct {
		num, emp, cat, subject, severity, status, officer string
	}{
		{"G001", "E001", "SAL", "Non-payment / Delay / Deduction", "HIGH", "PENDING", ""},
		{"G002", "E001", "SAL", "Overtime Issues", "MEDIUM", "IN_PROCESS", "O001"},
		{"G003", "E002", "HR", "Leave Rejection", "LOW", "RESOLVED", "O002"},
		{"G004", "E002", "SAL", "Bonus Issues", "LOW", "INTENDED_RESOLVE", "O001"},
	}
	for _, g := range grievances {
		db.Exec(`INSERT INTO grievances (grvn_num, emp_num, category_num, subject,
				description, severity, status, assigned_officer)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			g.num, g.emp, g.cat, g.subject, "Seeded demo grievance.", g.severity, g.status, g.officer)
	}

	db.Exec(`INSERT INTO investigations (investigation_num, grvn_num, officer_num, findings)
		VALUES ('I001', 'G002', 'O001', 'Payroll records requested from accounts.')`)
	db.Exec(`INSERT INTO investigations (investigation_num, grvn_num, officer_num, findings,
			outcome, end_date)
		VALUES ('I002', 'G003', 'O002', 'Leave policy reviewed with the supervisor.',
			'Leave request approved retroactively.', CURRENT_TIMESTAMP)`)
	db.Exec(`INSERT INTO resolutions (grvn_num, summary)
		VALUES ('G003', 'Leave approved and policy clarified with the department.')`)

	refs := []struct{ id, name, desc string }{
		{"LR001", "Payment of Wages Act, Sec 5", "Wages must be paid before the seventh day after the wage period."},
		{"LR002", "Minimum Wages Act, Sec 12", "Employers must pay at least the scheduled minimum rate."},
		{"LR003", "Industrial Disputes Act, Sec 25F", "Conditions precedent to retrenchment of workmen."},
	}
	for _, r := range refs {
		db.Exec("INSERT INTO legal_refs (ref_id, section_name, description) VALUES (?, ?, ?)",
			r.id, r.name, r.desc)
	}
}

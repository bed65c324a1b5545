package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

var db *sql.DB

func initDB(dataDir string) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatal(err)
	}
	path := filepath.Join(dataDir, "gms.db")
	var err error
	db, err = sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)")
	if err != nil {
		log.Fatal(err)
	}
	migrate()
}

func migrate() {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			user_num TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL DEFAULT '',
			password_hash TEXT NOT NULL,
			role TEXT NOT NULL CHECK(role IN ('EMPLOYEE','OFFICER','ADMIN')),
			address TEXT NOT NULL DEFAULT '',
			department TEXT NOT NULL DEFAULT '',
			contact_num TEXT NOT NULL DEFAULT '',
			employee_role TEXT NOT NULL DEFAULT '',
			category_num TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_num TEXT NOT NULL REFERENCES users(user_num) ON DELETE CASCADE,
			token TEXT UNIQUE NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			expires_at DATETIME NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS grievances (
			grvn_num TEXT PRIMARY KEY,
			emp_num TEXT NOT NULL REFERENCES users(user_num),
			category_num TEXT NOT NULL,
			subject TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			severity TEXT NOT NULL DEFAULT 'LOW',
			status TEXT NOT NULL DEFAULT 'PENDING',
			assigned_officer TEXT NOT NULL DEFAULT '',
			date_filed DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS investigations (
			investigation_num TEXT PRIMARY KEY,
			grvn_num TEXT NOT NULL REFERENCES grievances(grvn_num) ON DELETE CASCADE,
			officer_num TEXT NOT NULL,
			findings TEXT NOT NULL,
			remarks TEXT NOT NULL DEFAULT '',
			outcome TEXT NOT NULL DEFAULT '',
			investigation_date DATETIME DEFAULT CURRENT_TIMESTAMP,
			end_date DATETIME
		)`,
		`CREATE TABLE IF NOT EXISTS appeals (
			appeal_num TEXT PRIMARY KEY,
			grvn_num TEXT NOT NULL REFERENCES grievances(grvn_num) ON DELETE CASCADE,
			investigation_num TEXT NOT NULL DEFAULT '',
			appeal_content TEXT NOT NULL,
			appeal_date DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS resolutions (
			grvn_num TEXT PRIMARY KEY REFERENCES grievances(grvn_num) ON DELETE CASCADE,
			summary TEXT NOT NULL,
			resolved_date DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS legal_refs (
			ref_id TEXT PRIMARY KEY,
			section_name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS grievance_legal_refs (
			grvn_num TEXT NOT NULL REFERENCES grievances(grvn_num) ON DELETE CASCADE,
			ref_id TEXT NOT NULL REFERENCES legal_refs(ref_id),
			UNIQUE(grvn_num, ref_id)
		)`,
		`CREATE TABLE IF NOT EXISTS attachments (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			parent_table TEXT NOT NULL,
			parent_id TEXT NOT NULL,
			name TEXT NOT NULL,
			path TEXT NOT NULL,
			size INTEGER NOT NULL DEFAULT 0,
			mime_type TEXT NOT NULL DEFAULT 'application/octet-stream',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			log.Fatalf("migrate: %v", err)
		}
	}
}

// nextNum yields sequential business keys like G001, I014, A002.
func nextNum(prefix, table, column string) string {
	var n int
	db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n)
	for {
		n++
		id := fmt.Sprintf("%s%03d", prefix, n)
		var exists bool
		db.QueryRow("SELECT EXISTS(SELECT 1 FROM "+table+" WHERE "+column+" = ?)", id).Scan(&exists)
		if !exists {
			return id
		}
	}
}

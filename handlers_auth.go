package main

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

func generateToken() string {
	b := make([]byte, 32)
	rand.Read(b)
	return hex.EncodeToString(b)
}

type loginRequest struct {
	UserNum  string `json:"userNum"`
	Password string `json:"password"`
	AuthKey  string `json:"authKey"`
}

func handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.UserNum = strings.TrimSpace(req.UserNum)
	if req.UserNum == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "User number and password are required")
		return
	}

	u, err := getUser(req.UserNum)
	if err == sql.ErrNoRows {
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal error")
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if u.Role != "EMPLOYEE" && req.AuthKey != cfg.AuthKey {
		writeError(w, http.StatusUnauthorized, "Invalid authorization key")
		return
	}

	token := generateToken()
	expires := time.Now().Add(7 * 24 * time.Hour)
	db.Exec("INSERT INTO sessions (user_num, token, expires_at) VALUES (?, ?, ?)",
		u.UserNum, token, expires)

	http.SetCookie(w, &http.Cookie{
		Name:     "session",
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, map[string]string{
		"userNum": u.UserNum,
		"name":    u.Name,
		"email":   u.Email,
		"role":    u.Role,
	})
}

func handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie("session"); err == nil {
		db.Exec("DELETE FROM sessions WHERE token = ?", cookie.Value)
	}
	http.SetCookie(w, &http.Cookie{Name: "session", MaxAge: -1, Path: "/"})
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

type registerRequest struct {
	UserNum      string `json:"userNum"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	Address      string `json:"address"`
	Department   string `json:"department"`
	ContactNum   string `json:"contactNum"`
	EmployeeRole string `json:"employeeRole"`
	CategoryNum  string `json:"categoryNum"`
	AuthKey      string `json:"authKey"`
}

func handleRegister(w http.ResponseWriter, r *http.Request) {
	role := strings.ToUpper(r.PathValue("role"))
	if role != "EMPLOYEE" && role != "OFFICER" {
		writeError(w, http.StatusBadRequest, "Unknown role")
		return
	}

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.UserNum = strings.TrimSpace(req.UserNum)
	if req.UserNum == "" || req.Name == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "User number, name and password are required")
		return
	}
	if role == "OFFICER" && req.AuthKey != cfg.AuthKey {
		writeError(w, http.StatusForbidden, "Invalid authorization key")
		return
	}

	var exists bool
	db.QueryRow("SELECT EXISTS(SELECT 1 FROM users WHERE user_num = ?)", req.UserNum).Scan(&exists)
	if exists {
		writeError(w, http.StatusConflict, "User number "+req.UserNum+" is already registered")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal error")
		return
	}

	_, err = db.Exec(`INSERT INTO users (user_num, name, email, password_hash, role,
			address, department, contact_num, employee_role, category_num)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		req.UserNum, req.Name, req.Email, string(hash), role,
		req.Address, req.Department, req.ContactNum, req.EmployeeRole, req.CategoryNum)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Could not create account")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"message": "Registered"})
}

func handleCurrentUser(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, profileDTO(currentUser(r)))
}

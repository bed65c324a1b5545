package main

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

type contextKey string

const userKey contextKey = "user"

func currentUser(r *http.Request) *User {
	if u, ok := r.Context().Value(userKey).(*User); ok {
		return u
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// authMiddleware resolves the session cookie. API clients get a JSON
// 401 rather than a redirect; the SPA reacts by clearing its local
// session.
func authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie("session")
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Not authenticated")
			return
		}
		var userNum string
		var expiresAt time.Time
		err = db.QueryRow(
			"SELECT user_num, expires_at FROM sessions WHERE token = ?",
			cookie.Value,
		).Scan(&userNum, &expiresAt)
		if err != nil || time.Now().After(expiresAt) {
			http.SetCookie(w, &http.Cookie{Name: "session", MaxAge: -1, Path: "/"})
			writeError(w, http.StatusUnauthorized, "Session expired")
			return
		}
		u, err := getUser(userNum)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Not authenticated")
			return
		}
		ctx := context.WithValue(r.Context(), userKey, u)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func requireRole(role string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u := currentUser(r)
		if u == nil || u.Role != role {
			writeError(w, http.StatusForbidden, "Forbidden")
			return
		}
		next(w, r)
	}
}

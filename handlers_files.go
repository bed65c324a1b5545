package main

import (
	"database/sql"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"
)

// handleUploadAttachments accepts one multipart request with any number
// of "files" parts plus parentTable/parentId fields. Files are stored
// under a random name; the original name survives only in the database.
func handleUploadAttachments(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart request")
		return
	}
	parentTable := r.FormValue("parentTable")
	parentID := r.FormValue("parentId")
	if parentTable != "grievances" {
		writeError(w, http.StatusBadRequest, "Unknown parent table "+parentTable)
		return
	}
	g, err := getGrievance(parentID)
	if err != nil {
		writeError(w, http.StatusNotFound, "Grievance "+parentID+" not found")
		return
	}
	if !canSeeGrievance(u, g) {
		writeError(w, http.StatusForbidden, "Forbidden")
		return
	}

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		writeError(w, http.StatusBadRequest, "No files provided")
		return
	}

	dir := filepath.Join(cfg.UploadDir, parentTable, parentID)
	os.MkdirAll(dir, 0755)

	saved := 0
	for _, header := range files {
		f, err := header.Open()
		if err != nil {
			continue
		}
		diskName := uuid.NewString() + filepath.Ext(header.Filename)
		diskPath := filepath.Join(dir, diskName)
		dst, err := os.Create(diskPath)
		if err != nil {
			f.Close()
			continue
		}
		size, _ := io.Copy(dst, f)
		dst.Close()
		f.Close()

		mime := header.Header.Get("Content-Type")
		if mime == "" {
			mime = "application/octet-stream"
		}
		db.Exec(`INSERT INTO attachments (parent_table, parent_id, name, path, size, mime_type)
			VALUES (?, ?, ?, ?, ?, ?)`, parentTable, parentID, header.Filename, diskPath, size, mime)
		saved++
	}
	if saved == 0 {
		writeError(w, http.StatusInternalServerError, "Could not save attachments")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int{"uploaded": saved})
}

func handleListAttachments(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)
	grvnNum := r.PathValue("grvnNum")
	g, err := getGrievance(grvnNum)
	if err != nil {
		writeError(w, http.StatusNotFound, "Grievance "+grvnNum+" not found")
		return
	}
	if !canSeeGrievance(u, g) {
		writeError(w, http.StatusForbidden, "Forbidden")
		return
	}

	rows, err := db.Query(`SELECT id, name, size, mime_type FROM attachments
		WHERE parent_table = 'grievances' AND parent_id = ? ORDER BY id`, grvnNum)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal error")
		return
	}
	defer rows.Close()

	type attRow struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
		Size int64  `json:"size"`
		Mime string `json:"mimeType"`
	}
	out := []attRow{}
	for rows.Next() {
		var a attRow
		if err := rows.Scan(&a.ID, &a.Name, &a.Size, &a.Mime); err != nil {
			writeError(w, http.StatusInternalServerError, "Internal error")
			return
		}
		out = append(out, a)
	}
	writeJSON(w, http.StatusOK, out)
}

func handleDownloadAttachment(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)
	id, _ := strconv.ParseInt(r.PathValue("id"), 10, 64)

	var name, path, mime, parentID string
	err := db.QueryRow(`SELECT name, path, mime_type, parent_id FROM attachments
		WHERE id = ? AND parent_table = 'grievances'`, id).
		Scan(&name, &path, &mime, &parentID)
	if err == sql.ErrNoRows {
		writeError(w, http.StatusNotFound, "Attachment not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal error")
		return
	}
	g, err := getGrievance(parentID)
	if err != nil || !canSeeGrievance(u, g) {
		writeError(w, http.StatusForbidden, "Forbidden")
		return
	}

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	http.ServeFile(w, r, path)
}

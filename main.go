package main

import (
	"log"
	"net/http"
	"net/http/httputil"
	"net/url"
	"os"

	"github.com/maxence-charriere/go-app/v10/pkg/app"
)

func main() {
	loadConfig()
	initDB(cfg.DataDir)
	os.MkdirAll(cfg.UploadDir, 0755)
	if cfg.Seed {
		seed()
	}

	mux := http.NewServeMux()
	mux.Handle("/api/", http.StripPrefix("/api", apiHandler()))

	// Everything else is the Wasm client shell.
	mux.Handle("/", &app.Handler{
		Name:        "GMS",
		Title:       "Grievance Management System",
		Description: "File, investigate and resolve workplace grievances.",
		Styles:      []string{"/web/app.css"},
	})

	log.Printf("GMS running on %s", cfg.Addr)
	log.Fatal(http.ListenAndServe(cfg.Addr, mux))
}

// apiHandler returns either the built-in backend or, when GMS_API_URL
// is set, a reverse proxy to an external one. The client talks to /api
// either way.
func apiHandler() http.Handler {
	if cfg.APIURL != "" {
		target, err := url.Parse(cfg.APIURL)
		if err != nil {
			log.Fatalf("parse GMS_API_URL: %v", err)
		}
		log.Printf("Proxying /api to %s", target)
		return httputil.NewSingleHostReverseProxy(target)
	}
	return apiRoutes()
}

func apiRoutes() http.Handler {
	mux := http.NewServeMux()

	// Public
	mux.HandleFunc("POST /auth/login", handleLogin)
	mux.HandleFunc("POST /auth/logout", handleLogout)
	mux.HandleFunc("POST /auth/register/{role}", handleRegister)

	// Authenticated
	authed := http.NewServeMux()
	authed.HandleFunc("GET /current-user", handleCurrentUser)

	authed.HandleFunc("GET /employee/grievances", requireRole("EMPLOYEE", handleEmployeeGrievances))
	authed.HandleFunc("POST /employee/grievances", requireRole("EMPLOYEE", handleFileGrievance))
	authed.HandleFunc("PUT /employee/grievances/{grvnNum}/intended-resolve", requireRole("EMPLOYEE", handleIntendedResolve))
	authed.HandleFunc("POST /employee/appeals/add", requireRole("EMPLOYEE", handleSubmitAppeal))

	authed.HandleFunc("GET /grievances/{grvnNum}", handleGrievanceDetail)
	authed.HandleFunc("GET /grievance/{grvnNum}/timeline", handleTimeline)
	authed.HandleFunc("GET /resolutions/{grvnNum}", handleResolution)

	authed.HandleFunc("GET /officer/grievances", requireRole("OFFICER", handleOfficerGrievances))
	authed.HandleFunc("PUT /officer/grievances/{grvnNum}/assign", requireRole("OFFICER", handleAssign))
	authed.HandleFunc("POST /officer/grievances/{grvnNum}/assign", requireRole("OFFICER", handleAssign))
	authed.HandleFunc("POST /officer/investigations/add", requireRole("OFFICER", handleAddInvestigation))
	authed.HandleFunc("PUT /officer/investigations/{investigationNum}/update", requireRole("OFFICER", handleUpdateInvestigation))
	authed.HandleFunc("PUT /officer/investigations/{investigationNum}/end", requireRole("OFFICER", handleEndInvestigation))
	authed.HandleFunc("GET /legalrefs/all-legal-references", requireRole("OFFICER", handleLegalReferences))
	authed.HandleFunc("POST /officer/grievances/apply-legal-ref", requireRole("OFFICER", handleApplyLegalRef))

	authed.HandleFunc("GET /admin/grievances", requireRole("ADMIN", handleAdminGrievances))
	authed.HandleFunc("GET /admin/analytics/employees-by-department", requireRole("ADMIN", handleEmployeesByDepartment))
	authed.HandleFunc("GET /admin/analytics/officer-workload", requireRole("ADMIN", handleOfficerWorkload))
	authed.HandleFunc("GET /admin/analytics/employees", requireRole("ADMIN", handleAdminEmployees))
	authed.HandleFunc("GET /admin/analytics/officers-list", requireRole("ADMIN", handleAdminOfficers))
	authed.HandleFunc("DELETE /admin/delete_employees/{empNum}", requireRole("ADMIN", handleDeleteEmployee))
	authed.HandleFunc("DELETE /admin/delete_officers/{officerNum}", requireRole("ADMIN", handleDeleteOfficer))

	authed.HandleFunc("POST /attachments/upload", handleUploadAttachments)
	authed.HandleFunc("GET /attachments/grievances/{grvnNum}", handleListAttachments)
	authed.HandleFunc("GET /attachments/{id}/download", handleDownloadAttachment)

	mux.Handle("/", authMiddleware(authed))
	return mux
}

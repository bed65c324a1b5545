package main

import "github.com/maxence-charriere/go-app/v10/pkg/app"

func main() {
	app.Route("/", func() app.Composer { return &LoginView{} })
	app.Route("/login", func() app.Composer { return &LoginView{} })
	app.Route("/register", func() app.Composer { return &RegisterView{} })

	app.Route("/employee-home", func() app.Composer { return &EmployeeDashboard{} })
	app.Route("/apply-grievance", func() app.Composer { return &ApplyGrievanceView{} })
	app.RouteWithRegexp(`^/grievance-details/.+$`, func() app.Composer { return &GrievanceDetailView{} })
	app.Route("/help", func() app.Composer { return &HelpView{} })
	app.Route("/employee-profile", func() app.Composer { return &ProfileView{role: "EMPLOYEE"} })

	app.Route("/officer-home", func() app.Composer { return &OfficerDashboard{} })
	app.RouteWithRegexp(`^/officer/grievance/.+$`, func() app.Composer { return &OfficerGrievanceView{} })
	app.Route("/legal-references", func() app.Composer { return &LegalReferencesView{} })
	app.Route("/officer-profile", func() app.Composer { return &ProfileView{role: "OFFICER"} })

	app.Route("/admin-home", func() app.Composer { return &AdminDashboard{} })

	app.RunWhenOnBrowser()
}

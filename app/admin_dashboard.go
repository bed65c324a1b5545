package main

import (
	"fmt"

	"github.com/maxence-charriere/go-app/v10/pkg/app"

	"github.com/arjunmk/gms/internal/api"
	"github.com/arjunmk/gms/internal/gms"
	"github.com/arjunmk/gms/internal/workflow"
)

const (
	adminTabOverview  = "overview"
	adminTabGrvn      = "grievances"
	adminTabEmployees = "employees"
	adminTabOfficers  = "officers"
	adminTabSettings  = "settings"
)

type AdminDashboard struct {
	app.Compo

	tab string

	grievances []gms.Grievance
	counts     gms.StatusCounts
	depts      []api.DepartmentCount
	workloads  []api.OfficerWorkload
	employees  []map[string]any
	officers   []map[string]any

	// staged holds user numbers ticked for deletion; nothing is deleted
	// until the admin confirms.
	staged map[string]bool

	loaded bool
	busy   bool
	errMsg string
	flash  string

	fetch fetchGuard
}

// tabDatasets names the data an admin tab renders; each tab activation
// fetches only what it shows.
type tabDatasets struct {
	Grievances bool
	Analytics  bool
	Employees  bool
	Officers   bool
}

func datasetsFor(tab string) tabDatasets {
	switch tab {
	case adminTabGrvn:
		return tabDatasets{Grievances: true}
	case adminTabEmployees:
		return tabDatasets{Employees: true}
	case adminTabOfficers:
		return tabDatasets{Officers: true}
	case adminTabSettings:
		return tabDatasets{}
	default:
		return tabDatasets{Grievances: true, Analytics: true}
	}
}

// pruneStaged drops only the ids that were actually deleted; a failed
// delete leaves the rest staged so the admin can retry.
func pruneStaged(staged map[string]bool, deleted []string) map[string]bool {
	out := map[string]bool{}
	for id, on := range staged {
		if on {
			out[id] = true
		}
	}
	for _, id := range deleted {
		delete(out, id)
	}
	return out
}

func (v *AdminDashboard) OnInit() {
	v.tab = adminTabOverview
	v.staged = map[string]bool{}
}

func (v *AdminDashboard) OnNav(ctx app.Context) {
	if _, ok := requireRole(ctx, gms.RoleAdmin); !ok {
		return
	}
	v.loadTab(ctx, v.tab)
}

// loadTab fetches only the active tab's data. The analytics aggregates
// are best-effort; the grievance list is the fatal fetch of the
// overview.
func (v *AdminDashboard) loadTab(ctx app.Context, tab string) {
	need := datasetsFor(tab)
	if need == (tabDatasets{}) {
		v.loaded = true
		return
	}
	v.loaded = false
	token := v.fetch.Begin()

	ctx.Async(func() {
		var (
			gs    []gms.Grievance
			depts []api.DepartmentCount
			loads []api.OfficerWorkload
			emps  []map[string]any
			offs  []map[string]any
			err   error
		)
		if need.Grievances {
			gs, err = client.AdminGrievances(ctx)
		}
		if err == nil && need.Analytics {
			depts, _ = client.EmployeesByDepartment(ctx)
			loads, _ = client.OfficerWorkloads(ctx)
		}
		if err == nil && need.Employees {
			emps, err = client.AdminEmployees(ctx)
		}
		if err == nil && need.Officers {
			offs, err = client.AdminOfficers(ctx)
		}

		ctx.Dispatch(func(ctx app.Context) {
			if !v.fetch.Current(token) {
				return
			}
			v.loaded = true
			if err != nil {
				v.errMsg = workflow.Message(err, "Could not load dashboard data.")
				return
			}
			v.errMsg = ""
			if need.Grievances {
				v.grievances = gs
				v.counts = gms.CountByStatus(gs)
			}
			if need.Analytics {
				v.depts = depts
				v.workloads = loads
			}
			if need.Employees {
				v.employees = emps
			}
			if need.Officers {
				v.officers = offs
			}
		})
	})
}

func (v *AdminDashboard) stagedIDs() []string {
	var ids []string
	for id, on := range v.staged {
		if on {
			ids = append(ids, id)
		}
	}
	return ids
}

// onDeleteStaged confirms once, then deletes each staged account in
// turn. Partial failure stops at the first error and re-fetches so the
// lists show what actually remains.
func (v *AdminDashboard) onDeleteStaged(ctx app.Context, officers bool) {
	ids := v.stagedIDs()
	if len(ids) == 0 || v.busy {
		return
	}
	kind := "employee"
	if officers {
		kind = "officer"
	}
	ok := app.Window().Call("confirm",
		fmt.Sprintf("Delete %d %s account(s)? This cannot be undone.", len(ids), kind)).Bool()
	if !ok {
		return
	}
	v.busy = true

	ctx.Async(func() {
		var err error
		var deleted []string
		for _, id := range ids {
			if officers {
				err = client.DeleteOfficer(ctx, id)
			} else {
				err = client.DeleteEmployee(ctx, id)
			}
			if err != nil {
				break
			}
			deleted = append(deleted, id)
		}
		d, e := deleted, err
		ctx.Dispatch(func(ctx app.Context) {
			v.busy = false
			// Only the ids that actually went through leave the staging
			// set; a failure keeps the rest ticked for retry.
			v.staged = pruneStaged(v.staged, d)
			if e != nil {
				v.errMsg = workflow.Message(e, fmt.Sprintf("Deleted %d account(s), then a delete failed.", len(d)))
			} else {
				v.flash = fmt.Sprintf("Deleted %d account(s).", len(d))
			}
			v.loadTab(ctx, v.tab)
		})
	})
}

func (v *AdminDashboard) Render() app.UI {
	tab := func(label, id string) app.UI {
		cls := "filter-tab"
		if v.tab == id {
			cls += " active"
		}
		return app.Button().Class(cls).Text(label).
			OnClick(func(ctx app.Context, e app.Event) {
				v.tab = id
				v.errMsg = ""
				v.flash = ""
				v.loadTab(ctx, id)
			})
	}

	return app.Div().Class("page").Body(
		&Navbar{Role: gms.RoleAdmin, Active: "/admin-home"},

		app.Main().Class("content").Body(
			app.H1().Text("Administration"),

			app.Div().Class("filter-tabs").Body(
				tab("Overview", adminTabOverview),
				tab("Grievances", adminTabGrvn),
				tab("Employees", adminTabEmployees),
				tab("Officers", adminTabOfficers),
				tab("Settings", adminTabSettings),
			),

			app.If(v.flash != "", func() app.UI {
				return app.Div().Class("alert alert-success").Text(v.flash)
			}),
			app.If(v.errMsg != "", func() app.UI {
				return app.Div().Class("alert alert-error").Text(v.errMsg)
			}),

			app.If(!v.loaded, func() app.UI {
				return app.Div().Class("loading-spinner")
			}).Else(func() app.UI {
				switch v.tab {
				case adminTabGrvn:
					return v.renderGrievances()
				case adminTabEmployees:
					return v.renderAccounts(v.employees, false)
				case adminTabOfficers:
					return v.renderAccounts(v.officers, true)
				case adminTabSettings:
					return v.renderSettings()
				default:
					return v.renderOverview()
				}
			}),
		),
	)
}

func (v *AdminDashboard) renderOverview() app.UI {
	stat := func(label string, n int) app.UI {
		return app.Div().Class("stat-card").Body(
			app.Div().Class("stat-value").Text(fmt.Sprintf("%d", n)),
			app.Div().Class("stat-label").Text(label),
		)
	}

	return app.Div().Body(
		app.Div().Class("stat-grid").Body(
			stat("Total", v.counts.All),
			stat("Pending", v.counts.Pending),
			stat("In Process", v.counts.InProcess),
			stat("Resolved", v.counts.Resolved),
		),

		app.H2().Text("Employees by Department"),
		app.Table().Class("grievance-table").Body(
			app.THead().Body(app.Tr().Body(
				app.Th().Text("Department"), app.Th().Text("Employees"),
			)),
			app.TBody().Body(
				app.Range(v.depts).Slice(func(i int) app.UI {
					d := v.depts[i]
					return app.Tr().Body(
						app.Td().Text(d.Department),
						app.Td().Text(fmt.Sprintf("%d", d.Count)),
					)
				}),
			),
		),

		app.H2().Text("Officer Workload"),
		app.Table().Class("grievance-table").Body(
			app.THead().Body(app.Tr().Body(
				app.Th().Text("Officer"), app.Th().Text("Name"),
				app.Th().Text("Assigned"), app.Th().Text("Resolved"),
			)),
			app.TBody().Body(
				app.Range(v.workloads).Slice(func(i int) app.UI {
					w := v.workloads[i]
					return app.Tr().Body(
						app.Td().Text(w.OfficerNum),
						app.Td().Text(w.Name),
						app.Td().Text(fmt.Sprintf("%d", w.Assigned)),
						app.Td().Text(fmt.Sprintf("%d", w.Resolved)),
					)
				}),
			),
		),
	)
}

func (v *AdminDashboard) renderGrievances() app.UI {
	return app.Table().Class("grievance-table").Body(
		app.THead().Body(app.Tr().Body(
			app.Th().Text("ID"), app.Th().Text("Employee"), app.Th().Text("Subject"),
			app.Th().Text("Severity"), app.Th().Text("Status"), app.Th().Text("Filed"),
		)),
		app.TBody().Body(
			app.Range(v.grievances).Slice(func(i int) app.UI {
				g := v.grievances[i]
				st := gms.NormalizeStatus(g.Status)
				return app.Tr().Body(
					app.Td().Text(g.GrvnNum),
					app.Td().Text(g.EmpNum),
					app.Td().Text(g.Subject),
					app.Td().Text(g.Severity),
					app.Td().Body(
						app.Span().Class("status-badge status-"+string(st)).Text(st.Label()),
					),
					app.Td().Text(g.DateFiled),
				)
			}),
		),
	)
}

func (v *AdminDashboard) renderAccounts(accounts []map[string]any, officers bool) app.UI {
	idKeys := []string{"empNum", "userNum"}
	if officers {
		idKeys = []string{"officerNum", "userNum"}
	}

	return app.Div().Body(
		app.Div().Class("page-header").Body(
			app.Span().Text(fmt.Sprintf("%d account(s)", len(accounts))),
			app.Button().Class("btn btn-danger").
				Disabled(v.busy || len(v.stagedIDs()) == 0).
				Text(fmt.Sprintf("Delete Selected (%d)", len(v.stagedIDs()))).
				OnClick(func(ctx app.Context, e app.Event) {
					v.onDeleteStaged(ctx, officers)
				}),
		),
		app.Table().Class("grievance-table").Body(
			app.THead().Body(app.Tr().Body(
				app.Th().Text(""), app.Th().Text("ID"), app.Th().Text("Name"),
				app.Th().Text("Email"), app.Th().Text("Contact"),
			)),
			app.TBody().Body(
				app.Range(accounts).Slice(func(i int) app.UI {
					a := accounts[i]
					id := gms.FirstField(a, idKeys...)
					return app.Tr().Body(
						app.Td().Body(
							app.Input().Type("checkbox").Checked(v.staged[id]).
								OnClick(func(ctx app.Context, e app.Event) {
									v.staged[id] = !v.staged[id]
								}),
						),
						app.Td().Text(id),
						app.Td().Text(gms.FirstField(a, "name", "fullName", "empName", "officerName")),
						app.Td().Text(gms.FirstField(a, "email", "emailId")),
						app.Td().Text(gms.FirstField(a, "contactNum", "contact", "phone")),
					)
				}),
			),
		),
	)
}

func (v *AdminDashboard) renderSettings() app.UI {
	f := flags.All()
	toggle := func(label, name string, on bool) app.UI {
		return app.Div().Class("setting-row").Body(
			app.Input().Type("checkbox").Checked(on).
				OnClick(func(ctx app.Context, e app.Event) {
					flags.Set(name, !on)
				}),
			app.Label().Text(label),
		)
	}

	return app.Div().Class("detail-card").Body(
		app.H2().Text("Feature Flags"),
		toggle("Officer queue as table", "officer_table_view", f.OfficerTableView),
		toggle("Grievance self-assignment", "grievance_self_assignment", f.SelfAssignment),
		toggle("Investigation workflow", "investigate_workflow", f.InvestigateWorkflow),
		app.Button().Class("btn").Text("Reset to Defaults").
			OnClick(func(ctx app.Context, e app.Event) {
				flags.Reset()
			}),
	)
}

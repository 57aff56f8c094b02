package check

// DashboardPredicates is the load-state surface the dashboard checks need.
// Both the browser page object and the static probe satisfy it.
type DashboardPredicates interface {
	IsLoaded() (bool, error)
	HeaderIsVisible() (bool, error)
	SidebarIsVisible() (bool, error)
}

// ForDashboard builds the standard dashboard check suite.
func ForDashboard(d DashboardPredicates) []Check {
	return []Check{
		{Name: "dashboard_loaded", Message: MsgDashboardNotLoaded, Fn: d.IsLoaded},
		{Name: "header_visible", Message: MsgHeaderNotVisible, Fn: d.HeaderIsVisible},
		{Name: "sidebar_visible", Message: MsgSidebarNotVisible, Fn: d.SidebarIsVisible},
	}
}

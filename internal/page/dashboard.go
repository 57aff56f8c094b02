package page

import (
	"github.com/kuitang/dashprobe/internal/session"
	"github.com/kuitang/dashprobe/internal/wait"
)

// Dashboard page landmarks. IsLoaded keys off the root container; header
// and sidebar are the post-load chrome the dashboard always renders.
var (
	DashboardRoot    = ID("dashboard")
	DashboardHeader  = CSS("header.dashboard-header")
	DashboardSidebar = CSS("nav.dashboard-sidebar")
)

// DashboardPage is the page object for the dashboard.
type DashboardPage struct {
	*Page
}

// NewDashboardPage binds a dashboard page object to a session.
func NewDashboardPage(sess *session.Session, policy wait.Policy) *DashboardPage {
	return &DashboardPage{Page: New(sess, policy)}
}

// IsLoaded reports whether the dashboard's root landmark resolved within
// the wait window.
func (d *DashboardPage) IsLoaded() (bool, error) {
	return d.Visible(DashboardRoot)
}

// HeaderIsVisible reports whether the dashboard header is rendered.
func (d *DashboardPage) HeaderIsVisible() (bool, error) {
	return d.Visible(DashboardHeader)
}

// SidebarIsVisible reports whether the dashboard sidebar is rendered.
func (d *DashboardPage) SidebarIsVisible() (bool, error) {
	return d.Visible(DashboardSidebar)
}

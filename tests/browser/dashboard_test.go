// Dashboard load and visibility scenarios.
package browser

import (
	"testing"
	"time"

	"github.com/kuitang/dashprobe/internal/check"
	"github.com/kuitang/dashprobe/internal/page"
	"github.com/kuitang/dashprobe/internal/wait"
)

// TestBrowser_Dashboard_LoadsSuccessfully verifies the full dashboard page
// reports loaded with both header and sidebar visible.
func TestBrowser_Dashboard_LoadsSuccessfully(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}

	env := SetupDashboardTestEnv(t)
	sess := env.AcquireSession(t, ScenarioPolicy())

	dash := page.NewDashboardPage(sess, ScenarioPolicy())
	if err := dash.Navigate(env.PageURL("/dashboard")); err != nil {
		t.Fatalf("Failed to navigate to dashboard: %v", err)
	}
	if got := dash.State(); got != page.Loaded {
		t.Fatalf("page state = %s, want %s", got, page.Loaded)
	}

	loaded, err := dash.IsLoaded()
	if err != nil {
		t.Fatalf("IsLoaded returned error: %v", err)
	}
	if !loaded {
		t.Error("Dashboard failed to load")
	}

	header, err := dash.HeaderIsVisible()
	if err != nil {
		t.Fatalf("HeaderIsVisible returned error: %v", err)
	}
	if !header {
		t.Error("Header not visible")
	}

	sidebar, err := dash.SidebarIsVisible()
	if err != nil {
		t.Fatalf("SidebarIsVisible returned error: %v", err)
	}
	if !sidebar {
		t.Error("Sidebar not visible")
	}
}

// TestBrowser_Dashboard_CheckSuitePasses runs the named check suite against
// the full dashboard page.
func TestBrowser_Dashboard_CheckSuitePasses(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}

	env := SetupDashboardTestEnv(t)
	sess := env.AcquireSession(t, ScenarioPolicy())

	dash := page.NewDashboardPage(sess, ScenarioPolicy())
	if err := dash.Navigate(env.PageURL("/dashboard")); err != nil {
		t.Fatalf("Failed to navigate to dashboard: %v", err)
	}

	results, err := check.Run(check.ForDashboard(dash))
	if err != nil {
		t.Fatalf("check suite aborted: %v", err)
	}
	if !results.AllPassed() {
		t.Errorf("check suite failed: %s", results.Summary())
	}
}

// TestBrowser_Dashboard_MissingHeaderDegradesToFalse verifies an absent
// element yields a false predicate, never an error.
func TestBrowser_Dashboard_MissingHeaderDegradesToFalse(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}

	env := SetupDashboardTestEnv(t)
	sess := env.AcquireSession(t, ScenarioPolicy())

	// Short lookup window: the element is absent, so the predicate should
	// conclude quickly rather than wait the full scenario window.
	dash := page.NewDashboardPage(sess, wait.Default().WithTimeout(time.Second))
	if err := dash.Navigate(env.PageURL("/dashboard/headerless")); err != nil {
		t.Fatalf("Failed to navigate: %v", err)
	}

	loaded, err := dash.IsLoaded()
	if err != nil {
		t.Fatalf("IsLoaded returned error: %v", err)
	}
	if !loaded {
		t.Error("Dashboard failed to load")
	}

	header, err := dash.HeaderIsVisible()
	if err != nil {
		t.Fatalf("missing element must not error, got: %v", err)
	}
	if header {
		t.Error("header reported visible on a headerless page")
	}
}

// TestBrowser_Dashboard_HiddenElementIsNotVisible verifies an element that
// exists but is display:none does not count as visible.
func TestBrowser_Dashboard_HiddenElementIsNotVisible(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}

	env := SetupDashboardTestEnv(t)
	sess := env.AcquireSession(t, ScenarioPolicy())

	dash := page.NewDashboardPage(sess, wait.Default().WithTimeout(time.Second))
	if err := dash.Navigate(env.PageURL("/dashboard/hidden-sidebar")); err != nil {
		t.Fatalf("Failed to navigate: %v", err)
	}

	sidebar, err := dash.SidebarIsVisible()
	if err != nil {
		t.Fatalf("hidden element must not error, got: %v", err)
	}
	if sidebar {
		t.Error("hidden sidebar reported visible")
	}
}

// TestBrowser_Dashboard_BlankPageNotLoaded verifies IsLoaded is false on a
// page without the dashboard root landmark.
func TestBrowser_Dashboard_BlankPageNotLoaded(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}

	env := SetupDashboardTestEnv(t)
	sess := env.AcquireSession(t, ScenarioPolicy())

	dash := page.NewDashboardPage(sess, wait.Default().WithTimeout(time.Second))
	if err := dash.Navigate(env.PageURL("/blank")); err != nil {
		t.Fatalf("Failed to navigate: %v", err)
	}

	loaded, err := dash.IsLoaded()
	if err != nil {
		t.Fatalf("IsLoaded returned error: %v", err)
	}
	if loaded {
		t.Error("blank page reported as loaded dashboard")
	}
}

// TestBrowser_Dashboard_SlowTargetTimesOutBounded verifies a page that never
// becomes ready within the wait window ends in LoadTimedOut with false
// predicates, bounded by the policy rather than hanging.
func TestBrowser_Dashboard_SlowTargetTimesOutBounded(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}

	env := SetupDashboardTestEnv(t)
	sess := env.AcquireSession(t, ScenarioPolicy())

	policy := wait.Default().WithTimeout(time.Second)
	dash := page.NewDashboardPage(sess, policy)

	start := time.Now()
	if err := dash.Navigate(env.PageURL("/slow")); err != nil {
		t.Fatalf("navigation timeout must not propagate as an error, got: %v", err)
	}
	if got := dash.State(); got != page.LoadTimedOut {
		t.Fatalf("page state = %s, want %s", got, page.LoadTimedOut)
	}

	loaded, err := dash.IsLoaded()
	if err != nil {
		t.Fatalf("IsLoaded returned error after timeout: %v", err)
	}
	if loaded {
		t.Error("slow page reported loaded within the wait window")
	}

	if elapsed := time.Since(start); elapsed >= slowPageDelay {
		t.Errorf("probe took %s, not bounded by the %s wait window", elapsed, policy.Timeout)
	}
}

// TestBrowser_Dashboard_UnreachableTargetNotLoaded verifies an unreachable
// URL degrades to false predicates with the scenario still able to release
// its session.
func TestBrowser_Dashboard_UnreachableTargetNotLoaded(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}

	env := SetupDashboardTestEnv(t)
	sess := env.AcquireSession(t, ScenarioPolicy())

	dash := page.NewDashboardPage(sess, wait.Default().WithTimeout(time.Second))
	// Nothing listens on this port.
	if err := dash.Navigate("http://127.0.0.1:9/dashboard"); err != nil {
		t.Fatalf("unreachable target must not propagate as an error, got: %v", err)
	}
	if got := dash.State(); got != page.LoadTimedOut {
		t.Fatalf("page state = %s, want %s", got, page.LoadTimedOut)
	}

	loaded, err := dash.IsLoaded()
	if err != nil {
		t.Fatalf("IsLoaded returned error: %v", err)
	}
	if loaded {
		t.Error("unreachable target reported as loaded")
	}

	results, err := check.Run(check.ForDashboard(dash))
	if err != nil {
		t.Fatalf("check suite aborted: %v", err)
	}
	if results.AllPassed() {
		t.Error("check suite passed against an unreachable target")
	}
	failed := results.Failed()
	if len(failed) == 0 || failed[0].Message != check.MsgDashboardNotLoaded {
		t.Errorf("expected %q failure, got %+v", check.MsgDashboardNotLoaded, failed)
	}

	sess.Release()
	if !sess.Closed() {
		t.Error("session not released after failed scenario")
	}
}

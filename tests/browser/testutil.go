// Package browser provides shared test utilities for Playwright browser tests.
// All browser test files use DashboardTestEnv via SetupDashboardTestEnv(t).
package browser

import (
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/kuitang/dashprobe/internal/errs"
	"github.com/kuitang/dashprobe/internal/session"
	"github.com/kuitang/dashprobe/internal/urlutil"
	"github.com/kuitang/dashprobe/internal/wait"
)

// Scenario wait window. Individual tests that probe timeout behavior pass
// shorter explicit policies; never introduce a larger value here.
const browserWaitTimeout = 10 * time.Second

// slowPageDelay is how long the /slow endpoint stalls before responding.
// Must comfortably exceed the short policies used in timeout tests.
const slowPageDelay = 5 * time.Second

var fixtureMu sync.Mutex
var sharedFixture *DashboardTestEnv

// DashboardTestEnv serves fake dashboard pages from an httptest server and
// hands out browser sessions from a shared manager.
type DashboardTestEnv struct {
	Server  *httptest.Server
	BaseURL string
	Manager *session.Manager
}

// SetupDashboardTestEnv returns the shared test environment, creating it on
// first use.
func SetupDashboardTestEnv(t *testing.T) *DashboardTestEnv {
	t.Helper()

	fixtureMu.Lock()
	defer fixtureMu.Unlock()

	if sharedFixture != nil {
		return sharedFixture
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /dashboard", serveHTML(fullDashboardHTML))
	mux.HandleFunc("GET /dashboard/headerless", serveHTML(headerlessDashboardHTML))
	mux.HandleFunc("GET /dashboard/hidden-sidebar", serveHTML(hiddenSidebarDashboardHTML))
	mux.HandleFunc("GET /blank", serveHTML(blankPageHTML))
	mux.HandleFunc("GET /slow", func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(slowPageDelay):
		case <-r.Context().Done():
			return
		}
		serveHTML(fullDashboardHTML)(w, r)
	})

	sharedFixture = &DashboardTestEnv{
		Server:  httptest.NewServer(mux),
		Manager: session.NewManager(),
	}
	sharedFixture.BaseURL = sharedFixture.Server.URL
	return sharedFixture
}

func serveHTML(html string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(html))
	}
}

// PageURL returns the absolute URL for a page path on the test server.
func (env *DashboardTestEnv) PageURL(path string) string {
	return urlutil.BuildAbsolute(env.BaseURL, path)
}

// AcquireSession acquires a headless session with the given wait policy,
// skipping the test when Playwright is not available. The session is
// released on test cleanup; releasing earlier in the test body is fine.
func (env *DashboardTestEnv) AcquireSession(t *testing.T, policy wait.Policy) *session.Session {
	t.Helper()

	sess, err := env.Manager.Acquire(session.Config{
		Headless: true,
		Wait:     policy,
	})
	if err != nil {
		if errs.Is(err, errs.SessionStart) {
			t.Skip("Playwright not available:", err)
		}
		t.Fatalf("could not acquire session: %v", err)
	}
	t.Cleanup(sess.Release)
	return sess
}

// ScenarioPolicy is the standard 10s wait window for happy-path scenarios.
func ScenarioPolicy() wait.Policy {
	return wait.Default().WithTimeout(browserWaitTimeout)
}

func cleanupSharedFixture() {
	fixtureMu.Lock()
	defer fixtureMu.Unlock()
	if sharedFixture == nil {
		return
	}
	sharedFixture.Manager.Close()
	sharedFixture.Server.Close()
	sharedFixture = nil
}

func TestMain(m *testing.M) {
	code := m.Run()
	cleanupSharedFixture()
	os.Exit(code)
}

// Fake dashboard pages. The full variant matches every named locator; the
// degraded variants each break exactly one check.

const fullDashboardHTML = `<!DOCTYPE html>
<html>
<head><title>AI Dashboard</title></head>
<body>
  <div id="dashboard">
    <header class="dashboard-header"><h1>AI Dashboard</h1></header>
    <nav class="dashboard-sidebar">
      <a href="/reports">Reports</a>
      <a href="/models">Models</a>
    </nav>
    <main class="dashboard-content"><p>All systems nominal.</p></main>
  </div>
</body>
</html>`

const headerlessDashboardHTML = `<!DOCTYPE html>
<html>
<head><title>AI Dashboard</title></head>
<body>
  <div id="dashboard">
    <nav class="dashboard-sidebar"><a href="/reports">Reports</a></nav>
    <main class="dashboard-content"><p>Header missing.</p></main>
  </div>
</body>
</html>`

const hiddenSidebarDashboardHTML = `<!DOCTYPE html>
<html>
<head><title>AI Dashboard</title></head>
<body>
  <div id="dashboard">
    <header class="dashboard-header"><h1>AI Dashboard</h1></header>
    <nav class="dashboard-sidebar" style="display: none"><a href="/reports">Reports</a></nav>
  </div>
</body>
</html>`

const blankPageHTML = `<!DOCTYPE html>
<html>
<head><title>Nothing Here</title></head>
<body><p>Not the dashboard.</p></body>
</html>`

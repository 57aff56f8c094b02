// Package session owns browser session lifecycle: creation, window-state
// configuration, and guaranteed teardown.
//
// A Manager holds one Playwright driver and one launched browser, shared
// across sessions. Each Acquire yields an independent browser context and
// page owned exclusively by the caller, who must Release it on every exit
// path (defer).
package session

import (
	"sync"

	"github.com/playwright-community/playwright-go"

	"github.com/kuitang/dashprobe/internal/errs"
	"github.com/kuitang/dashprobe/internal/obs"
	"github.com/kuitang/dashprobe/internal/wait"
)

// Config controls how a session's browser window behaves.
type Config struct {
	// Maximize launches the window maximized with no fixed viewport.
	Maximize bool

	// Headless runs the browser without a visible window.
	Headless bool

	// Wait is applied as the driver's default timeout for element lookups
	// and navigation readiness.
	Wait wait.Policy
}

// Manager launches and tears down browser sessions.
type Manager struct {
	mu       sync.Mutex
	pw       *playwright.Playwright
	browser  playwright.Browser
	headless bool
	maximize bool
	closed   bool
}

// NewManager returns a Manager. The browser is launched lazily on the
// first Acquire.
func NewManager() *Manager {
	return &Manager{}
}

// Acquire starts a browser session with the given configuration and
// returns a handle. Failure to start the driver or launch the browser is a
// session_start error; callers do not retry.
func (m *Manager) Acquire(cfg Config) (*Session, error) {
	browser, err := m.launch(cfg)
	if err != nil {
		return nil, err
	}

	ctxOptions := playwright.BrowserNewContextOptions{}
	if cfg.Maximize {
		// Window geometry comes from --start-maximized; a fixed viewport
		// would override it.
		ctxOptions.NoViewport = playwright.Bool(true)
	}
	browserCtx, err := browser.NewContext(ctxOptions)
	if err != nil {
		return nil, errs.Wrap(errs.SessionStart, "could not create browser context", err)
	}

	policy := cfg.Wait.Normalize()
	browserCtx.SetDefaultTimeout(policy.TimeoutMillis())
	browserCtx.SetDefaultNavigationTimeout(policy.TimeoutMillis())

	page, err := browserCtx.NewPage()
	if err != nil {
		_ = browserCtx.Close()
		return nil, errs.Wrap(errs.SessionStart, "could not create page", err)
	}

	obs.Pkg("session").Debug("session acquired",
		"maximize", cfg.Maximize,
		"headless", cfg.Headless,
		"wait", policy.Timeout.String(),
	)
	return &Session{
		ctx:  browserCtx,
		page: page,
		wait: policy,
	}, nil
}

// launch starts the driver and browser once, guarded by the manager mutex.
// The first session's window-state config decides the launch flags.
func (m *Manager) launch(cfg Config) (playwright.Browser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, errs.New(errs.SessionClosed, "session manager is closed")
	}
	if m.browser != nil {
		if cfg.Headless != m.headless || cfg.Maximize != m.maximize {
			obs.Pkg("session").Warn("browser already launched; window-state flags apply to the first acquire only",
				"launched_headless", m.headless,
				"launched_maximize", m.maximize,
			)
		}
		return m.browser, nil
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, errs.Wrap(errs.SessionStart, "could not start browser driver", err)
	}

	var args []string
	if cfg.Maximize {
		args = append(args, "--start-maximized")
	}
	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(cfg.Headless),
		Args:     args,
	})
	if err != nil {
		_ = pw.Stop()
		return nil, errs.Wrap(errs.SessionStart, "could not launch browser", err)
	}

	m.pw = pw
	m.browser = browser
	m.headless = cfg.Headless
	m.maximize = cfg.Maximize
	return browser, nil
}

// Close shuts down the shared browser and driver. Sessions acquired from
// this manager become unusable.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.browser != nil {
		_ = m.browser.Close()
		m.browser = nil
	}
	if m.pw != nil {
		_ = m.pw.Stop()
		m.pw = nil
	}
	m.closed = true
}

// Session is one live browser session: a browser context plus its page,
// exclusively owned by the scenario that acquired it.
type Session struct {
	mu   sync.Mutex
	ctx  playwright.BrowserContext
	page playwright.Page
	wait wait.Policy
}

// Page returns the underlying driver page. Returns a session_closed error
// once the session has been released.
func (s *Session) Page() (playwright.Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.page == nil {
		return nil, errs.New(errs.SessionClosed, "session is closed")
	}
	return s.page, nil
}

// Wait returns the policy the session was configured with.
func (s *Session) Wait() wait.Policy {
	return s.wait
}

// Closed reports whether the session has been released.
func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page == nil
}

// Release terminates the session unconditionally. Safe to call more than
// once; later calls are no-ops.
func (s *Session) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.page == nil {
		return
	}
	_ = s.page.Close()
	_ = s.ctx.Close()
	s.page = nil
	s.ctx = nil
	obs.Pkg("session").Debug("session released")
}

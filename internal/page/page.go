// Package page implements the page-object layer: a thin wrapper over a
// browser session with named element locators and bounded-wait visibility
// predicates.
//
// Predicates never fail for "element not found": absence and hidden-ness
// both degrade to a false result. Only session-level failures (session
// already released) propagate as errors.
package page

import (
	"github.com/playwright-community/playwright-go"

	"github.com/kuitang/dashprobe/internal/errs"
	"github.com/kuitang/dashprobe/internal/obs"
	"github.com/kuitang/dashprobe/internal/session"
	"github.com/kuitang/dashprobe/internal/wait"
)

// LoadState tracks where a page is in its navigation lifecycle.
type LoadState int

const (
	NotNavigated LoadState = iota
	Navigating
	Loaded
	LoadTimedOut
)

func (s LoadState) String() string {
	switch s {
	case NotNavigated:
		return "not_navigated"
	case Navigating:
		return "navigating"
	case Loaded:
		return "loaded"
	case LoadTimedOut:
		return "load_timed_out"
	default:
		return "unknown"
	}
}

// Page wraps a session (reference, not ownership) with a wait policy.
// Create one per navigation; it carries no state across scenarios.
type Page struct {
	sess   *session.Session
	policy wait.Policy
	state  LoadState
}

// New binds a page object to a session with an explicit wait policy.
func New(sess *session.Session, policy wait.Policy) *Page {
	return &Page{
		sess:   sess,
		policy: policy.Normalize(),
		state:  NotNavigated,
	}
}

// State returns the page's navigation state.
func (p *Page) State() LoadState {
	return p.state
}

// Navigate loads url and blocks until the DOM reaches a ready state or the
// wait policy's timeout elapses. A page that fails to become ready moves to
// LoadTimedOut and is still queryable; predicates there report false for
// anything that depends on post-load rendering. Only session-level failures
// return an error.
func (p *Page) Navigate(url string) error {
	pwPage, err := p.sess.Page()
	if err != nil {
		return err
	}

	p.state = Navigating
	_, err = pwPage.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(p.policy.TimeoutMillis()),
	})
	if err != nil {
		if p.sess.Closed() {
			p.state = NotNavigated
			return errs.Wrap(errs.SessionClosed, "session closed during navigation", err)
		}
		p.state = LoadTimedOut
		obs.Pkg("page").Warn("page did not reach ready state",
			"url", url,
			"timeout", p.policy.Timeout.String(),
			"error", err.Error(),
		)
		return nil
	}

	p.state = Loaded
	obs.Pkg("page").Debug("page loaded", "url", url)
	return nil
}

// Visible reports whether the element identified by loc exists and is
// rendered (visible, non-zero box) within the wait window. Absent or
// hidden elements yield (false, nil), never an error.
func (p *Page) Visible(loc Locator) (bool, error) {
	pwPage, err := p.sess.Page()
	if err != nil {
		return false, err
	}
	if p.state == NotNavigated {
		return false, errs.New(errs.FailedPrecondition, "page has not been navigated")
	}

	element := pwPage.Locator(loc.Selector()).First()
	err = element.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(p.policy.TimeoutMillis()),
	})
	if err != nil {
		if p.sess.Closed() {
			return false, errs.Wrap(errs.SessionClosed, "session closed during lookup", err)
		}
		return false, nil
	}
	return true, nil
}

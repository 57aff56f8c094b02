// Package staticprobe evaluates dashboard checks against server-rendered
// HTML fetched over plain HTTP, without launching a browser.
//
// Visibility here is best-effort: only the hidden attribute and inline
// display/visibility styles are considered, since no stylesheet is applied.
package staticprobe

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/kuitang/dashprobe/internal/errs"
	"github.com/kuitang/dashprobe/internal/obs"
	"github.com/kuitang/dashprobe/internal/page"
	"github.com/kuitang/dashprobe/internal/wait"
)

// Probe fetches pages, polling not-yet-ready targets at the wait policy's
// interval until its timeout elapses.
type Probe struct {
	client *http.Client
	policy wait.Policy
}

// New returns a probe bounded by the given wait policy.
func New(policy wait.Policy) *Probe {
	policy = policy.Normalize()
	return &Probe{
		client: &http.Client{Timeout: policy.Timeout},
		policy: policy,
	}
}

// FetchDashboard fetches url and parses it into a queryable document.
// Unreachable targets and non-2xx responses are retried at the policy's
// poll interval until its deadline passes; an exhausted deadline is a
// navigation_timeout error, since the page never reached a ready state.
func (p *Probe) FetchDashboard(ctx context.Context, url string) (*DashboardDocument, error) {
	deadline := p.policy.Deadline(time.Now())
	ctx, cancel := context.WithDeadline(ctx, deadline)
	defer cancel()

	log := obs.Pkg("staticprobe")
	for {
		doc, err := p.fetchOnce(ctx, url)
		if err == nil {
			return doc, nil
		}
		if !errs.Is(err, errs.NavigationTimeout) {
			return nil, err
		}

		if !time.Now().Add(p.policy.PollInterval).Before(deadline) {
			log.Warn("page did not reach ready state", "url", url, "timeout", p.policy.Timeout.String())
			return nil, err
		}
		log.Debug("target not ready, retrying", "url", url, "error", err.Error())
		select {
		case <-ctx.Done():
			return nil, errs.Wrap(errs.NavigationTimeout, "page did not reach ready state", ctx.Err())
		case <-time.After(p.policy.PollInterval):
		}
	}
}

func (p *Probe) fetchOnce(ctx context.Context, url string) (*DashboardDocument, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errs.Wrap(errs.InvalidArgument, "invalid target URL", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, errs.Wrap(errs.NavigationTimeout, "page did not reach ready state", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errs.New(errs.NavigationTimeout, "page did not reach ready state")
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, errs.Wrap(errs.Internal, "could not parse page HTML", err)
	}
	return &DashboardDocument{doc: doc}, nil
}

// DashboardDocument exposes the dashboard predicates over parsed HTML.
type DashboardDocument struct {
	doc *goquery.Document
}

// IsLoaded reports whether the dashboard root landmark is present and not hidden.
func (d *DashboardDocument) IsLoaded() (bool, error) {
	return d.visible(page.DashboardRoot), nil
}

// HeaderIsVisible reports whether the dashboard header is present and not hidden.
func (d *DashboardDocument) HeaderIsVisible() (bool, error) {
	return d.visible(page.DashboardHeader), nil
}

// SidebarIsVisible reports whether the dashboard sidebar is present and not hidden.
func (d *DashboardDocument) SidebarIsVisible() (bool, error) {
	return d.visible(page.DashboardSidebar), nil
}

func (d *DashboardDocument) visible(loc page.Locator) bool {
	sel := d.doc.Find(loc.Selector()).First()
	if sel.Length() == 0 {
		return false
	}
	// An element hidden anywhere up the tree is not rendered.
	for s := sel; s.Length() > 0; s = s.Parent() {
		if hiddenInline(s) {
			return false
		}
	}
	return true
}

func hiddenInline(sel *goquery.Selection) bool {
	if _, ok := sel.Attr("hidden"); ok {
		return true
	}
	style, ok := sel.Attr("style")
	if !ok {
		return false
	}
	style = strings.ToLower(strings.ReplaceAll(style, " ", ""))
	return strings.Contains(style, "display:none") || strings.Contains(style, "visibility:hidden")
}

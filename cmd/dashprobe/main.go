// dashprobe runs the dashboard visibility checks against a live URL and
// exits 0 iff every check passes.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/kuitang/dashprobe/internal/check"
	"github.com/kuitang/dashprobe/internal/config"
	"github.com/kuitang/dashprobe/internal/errs"
	"github.com/kuitang/dashprobe/internal/obs"
	"github.com/kuitang/dashprobe/internal/page"
	"github.com/kuitang/dashprobe/internal/session"
	"github.com/kuitang/dashprobe/internal/staticprobe"
)

func main() {
	os.Exit(run())
}

func run() int {
	flags := config.ParseFlags()
	obs.Init()
	cfg := config.MustLoad(flags)
	cfg.PrintStartupSummary()

	var (
		results check.Results
		err     error
	)
	if cfg.Static {
		results, err = runStatic(cfg)
	} else {
		results, err = runBrowser(cfg)
	}
	if err != nil {
		obs.Pkg("main").Error("probe aborted", "code", string(errs.CodeOf(err)), "error", err.Error())
		fmt.Fprintf(os.Stderr, "dashprobe: %s\n", errs.MessageOf(err))
		if errs.IsFatal(err) {
			return 2
		}
		return 1
	}

	for _, r := range results.Failed() {
		fmt.Fprintf(os.Stderr, "FAIL %s: %s\n", r.Name, r.Message)
	}
	fmt.Fprintln(os.Stderr, results.Summary())
	if !results.AllPassed() {
		return 1
	}
	return 0
}

func runBrowser(cfg *config.Config) (check.Results, error) {
	mgr := session.NewManager()
	defer mgr.Close()

	sess, err := mgr.Acquire(session.Config{
		Maximize: cfg.Maximize,
		Headless: cfg.Headless,
		Wait:     cfg.WaitPolicy(),
	})
	if err != nil {
		return nil, err
	}
	defer sess.Release()

	dash := page.NewDashboardPage(sess, sess.Wait())
	if err := dash.Navigate(cfg.TargetURL); err != nil {
		return nil, err
	}
	return check.Run(check.ForDashboard(dash))
}

func runStatic(cfg *config.Config) (check.Results, error) {
	probe := staticprobe.New(cfg.WaitPolicy())
	doc, err := probe.FetchDashboard(context.Background(), cfg.TargetURL)
	if err != nil {
		if errs.Is(err, errs.NavigationTimeout) {
			// Same shape as a browser-mode timeout: the page never became
			// ready, so every check reports failed rather than aborting.
			return notReadyResults(), nil
		}
		return nil, err
	}
	return check.Run(check.ForDashboard(doc))
}

func notReadyResults() check.Results {
	results := make(check.Results, 0, 3)
	for _, c := range check.ForDashboard(nothingVisible{}) {
		results = append(results, check.Result{
			Name:    c.Name,
			Passed:  false,
			Message: c.Message,
		})
	}
	return results
}

type nothingVisible struct{}

func (nothingVisible) IsLoaded() (bool, error)         { return false, nil }
func (nothingVisible) HeaderIsVisible() (bool, error)  { return false, nil }
func (nothingVisible) SidebarIsVisible() (bool, error) { return false, nil }

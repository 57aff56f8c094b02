// Package check runs named visibility checks and aggregates results.
package check

import (
	"fmt"
	"strings"
	"time"

	"github.com/kuitang/dashprobe/internal/obs"
)

// Failure messages for the dashboard checks.
const (
	MsgDashboardNotLoaded = "Dashboard failed to load"
	MsgHeaderNotVisible   = "Header not visible"
	MsgSidebarNotVisible  = "Sidebar not visible"
)

// Check is a named boolean predicate with a human-readable failure message.
type Check struct {
	Name    string
	Message string
	Fn      func() (bool, error)
}

// Result records one evaluated check.
type Result struct {
	Name     string
	Passed   bool
	Message  string
	Duration time.Duration
}

// Results is an ordered list of evaluated checks.
type Results []Result

// Failed returns the results that did not pass.
func (rs Results) Failed() Results {
	var failed Results
	for _, r := range rs {
		if !r.Passed {
			failed = append(failed, r)
		}
	}
	return failed
}

// AllPassed reports whether every check passed.
func (rs Results) AllPassed() bool {
	return len(rs.Failed()) == 0
}

// Summary returns a one-line human-readable summary.
func (rs Results) Summary() string {
	failed := rs.Failed()
	if len(failed) == 0 {
		return fmt.Sprintf("%d/%d checks passed", len(rs), len(rs))
	}
	messages := make([]string, 0, len(failed))
	for _, r := range failed {
		messages = append(messages, r.Message)
	}
	return fmt.Sprintf("%d/%d checks passed: %s", len(rs)-len(failed), len(rs), strings.Join(messages, "; "))
}

// Run evaluates checks sequentially. A check error is a session-level
// failure and aborts the run, returning the results evaluated so far.
// Missing or hidden elements are not errors: they come back as failed
// results with the check's message.
func Run(checks []Check) (Results, error) {
	log := obs.Pkg("check")
	results := make(Results, 0, len(checks))
	for _, c := range checks {
		start := time.Now()
		ok, err := c.Fn()
		elapsed := time.Since(start)
		if err != nil {
			log.Error("check aborted", "name", c.Name, "error", err.Error())
			return results, err
		}

		r := Result{
			Name:     c.Name,
			Passed:   ok,
			Duration: elapsed,
		}
		if !ok {
			r.Message = c.Message
			log.Warn("check failed", "name", c.Name, "message", c.Message, "duration", elapsed.String())
		} else {
			log.Debug("check passed", "name", c.Name, "duration", elapsed.String())
		}
		results = append(results, r)
	}
	return results, nil
}

// Package wait defines the explicit wait policy applied to element lookups.
//
// The policy is a value passed down to every operation that needs a bounded
// wait. There is no ambient session-wide timeout: two predicate calls with
// different policies never influence each other.
package wait

import "time"

const (
	// DefaultTimeout bounds element lookups and navigation readiness.
	DefaultTimeout = 10 * time.Second

	// DefaultPollInterval is how often a pending condition is re-checked.
	DefaultPollInterval = 100 * time.Millisecond
)

// Policy bounds how long an operation may block before concluding
// "not present" or "not ready".
type Policy struct {
	Timeout      time.Duration
	PollInterval time.Duration
}

// Default returns the standard lookup policy.
func Default() Policy {
	return Policy{
		Timeout:      DefaultTimeout,
		PollInterval: DefaultPollInterval,
	}
}

// WithTimeout returns a copy of the policy with the given timeout.
func (p Policy) WithTimeout(d time.Duration) Policy {
	p.Timeout = d
	return p
}

// Normalize fills zero or negative fields with defaults so a zero Policy
// is usable.
func (p Policy) Normalize() Policy {
	if p.Timeout <= 0 {
		p.Timeout = DefaultTimeout
	}
	if p.PollInterval <= 0 {
		p.PollInterval = DefaultPollInterval
	}
	if p.PollInterval > p.Timeout {
		p.PollInterval = p.Timeout
	}
	return p
}

// TimeoutMillis returns the timeout in milliseconds for driver APIs that
// take float milliseconds.
func (p Policy) TimeoutMillis() float64 {
	return float64(p.Normalize().Timeout.Milliseconds())
}

// Deadline returns the wall-clock deadline for an operation starting now.
func (p Policy) Deadline(now time.Time) time.Time {
	return now.Add(p.Normalize().Timeout)
}

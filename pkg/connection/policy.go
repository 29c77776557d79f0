package connection

import "time"

// Connection policy defaults. These reproduce the shipped splash behavior and
// are not user configurable.
const (
	DefaultMaxAttempts     = 3
	DefaultAttemptTimeout  = 15 * time.Second
	DefaultMinimumSplash   = 5 * time.Second
	DefaultRetryDelay      = 2 * time.Second
	DefaultAffordanceDelay = 3 * time.Second
	DefaultRevealDelay     = 1 * time.Second
)

// Policy holds the timing and attempt limits used by a Coordinator.
type Policy struct {
	MaxAttempts     int
	AttemptTimeout  time.Duration
	MinimumSplash   time.Duration
	RetryDelay      time.Duration
	AffordanceDelay time.Duration // exhausted -> retry button visible
	RevealDelay     time.Duration // connected -> ready to present
}

// DefaultPolicy returns the fixed production policy.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts:     DefaultMaxAttempts,
		AttemptTimeout:  DefaultAttemptTimeout,
		MinimumSplash:   DefaultMinimumSplash,
		RetryDelay:      DefaultRetryDelay,
		AffordanceDelay: DefaultAffordanceDelay,
		RevealDelay:     DefaultRevealDelay,
	}
}

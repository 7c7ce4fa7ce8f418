package fulfillment

import (
	"fmt"
	"time"

	"orders/internal/pkg/errs"
)

const (
	DefaultChargeMaxRetries    = 3
	DefaultChargeRetryInterval = 5 * time.Second
)

// RetryPolicy bounds how often a step is retried after execution failures.
// MaxRetries excludes the first attempt; the wait between attempts is fixed.
type RetryPolicy struct {
	MaxRetries int
	Interval   time.Duration
}

// ChargeRetryPolicy is the policy of the Charging state: one attempt plus three retries.
func ChargeRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxRetries: DefaultChargeMaxRetries, Interval: DefaultChargeRetryInterval}
}

// NoRetry runs a step exactly once.
func NoRetry() RetryPolicy {
	return RetryPolicy{}
}

func (p RetryPolicy) Validate() error {
	if p.MaxRetries < 0 {
		return errs.NewValueIsOutOfRangeError("maxRetries", p.MaxRetries, 0, "unbounded")
	}
	if p.Interval < 0 {
		return errs.NewValueIsInvalidErrorWithCause("interval", fmt.Errorf("%s is negative", p.Interval))
	}
	return nil
}

// Attempts is the total number of invocations the policy allows.
func (p RetryPolicy) Attempts() int {
	return p.MaxRetries + 1
}

// Budget is the longest a step may spend waiting between its attempts.
func (p RetryPolicy) Budget() time.Duration {
	if p.MaxRetries <= 0 {
		return 0
	}
	return time.Duration(p.MaxRetries) * p.Interval
}

package order

import (
	"fmt"

	"orders/internal/pkg/errs"
)

// Status is the lifecycle state stored on an order.
//
//	PENDING_PAYMENT ──> PROCESSING ──┬──> PAID ───┬──> NOTIFIED
//	                                 └──> FAILED ─┘
//
// Transitions are monotonic: a status may only move to a later stage. Writing the
// current status again is accepted so a redelivered step is harmless.
type Status string

const (
	PendingPayment Status = "PENDING_PAYMENT"
	Processing     Status = "PROCESSING"
	Paid           Status = "PAID"
	Failed         Status = "FAILED"
	Notified       Status = "NOTIFIED"
)

func stageOf() map[Status]int {
	return map[Status]int{
		PendingPayment: 0,
		Processing:     1,
		Paid:           2,
		Failed:         2,
		Notified:       3,
	}
}

// ParseStatus converts an external value (query string, database, workflow payload).
func ParseStatus(value string) (Status, error) {
	s := Status(value)
	if err := s.Validate(); err != nil {
		return "", err
	}
	return s, nil
}

// Validate rejects values outside the enumerated set, including the empty string.
func (s Status) Validate() error {
	if _, ok := stageOf()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", string(s)))
	}
	return nil
}

func (s Status) String() string {
	return string(s)
}

// IsSettled reports whether the payment decision has been recorded.
func (s Status) IsSettled() bool {
	return s == Paid || s == Failed || s == Notified
}

// CanTransitionTo reports whether next may replace s.
func (s Status) CanTransitionTo(next Status) bool {
	stages := stageOf()
	from, okFrom := stages[s]
	to, okTo := stages[next]
	if !okFrom || !okTo {
		return false
	}

	if s == next {
		return true
	}
	if next == Notified {
		return s == Paid || s == Failed
	}
	return to > from
}

// TransitionTo returns next if the move is allowed.
func (s Status) TransitionTo(next Status) (Status, error) {
	if err := next.Validate(); err != nil {
		return "", err
	}
	if !s.CanTransitionTo(next) {
		return "", errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s cannot move to %s", s, next),
		)
	}
	return next, nil
}

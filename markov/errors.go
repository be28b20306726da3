package markov

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

var (
	ErrUnknownState             = errors.New("unknown state")
	ErrNoStationaryDistribution = errors.New("no stationary distribution")
	ErrSingularTransition       = errors.New("I - gamma*P is singular")
	ErrInvalidDiscountFactor    = errors.New("discount factor must lie in [0, 1)")
	ErrMalformedDistribution    = errors.New("malformed distribution")
	ErrEmptyStateSpace          = errors.New("empty state space")
)

// UnknownStateError carries the state that was looked up. It matches
// ErrUnknownState under errors.Is.
type UnknownStateError struct {
	State any
}

func (e *UnknownStateError) Error() string {
	return fmt.Sprintf("unknown state %v", e.State)
}

func (e *UnknownStateError) Is(target error) bool {
	return target == ErrUnknownState
}

func unknownState[S comparable](s S) error {
	return errors.WithStack(&UnknownStateError{State: s})
}

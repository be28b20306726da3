package markov

import "github.com/CodeStranger-Fred/markov/distribution"

// Process is a Markov process over states of type S.
type Process[S comparable] interface {
	// Transition returns the distribution of the next state, or nil when
	// state is terminal.
	Transition(state S) (distribution.ProbabilityDistribution[S], error)
}

// IsTerminal reports whether state is terminal in p. Processes with a cheaper
// test than computing a transition can provide an IsTerminal(S) bool method.
func IsTerminal[S comparable](p Process[S], state S) (bool, error) {
	if tp, ok := p.(interface{ IsTerminal(S) bool }); ok {
		return tp.IsTerminal(state), nil
	}
	d, err := p.Transition(state)
	if err != nil {
		return false, err
	}
	return d == nil, nil
}

// Simulate runs p from start. The trace yields start first and then one
// sampled state per step until it reaches a terminal state, which is the last
// value yielded. Processes without terminal states give infinite traces.
func Simulate[S comparable](p Process[S], start S, rng distribution.Source) *Trace[S] {
	state := start
	started := false
	return newTrace(func() (S, bool, error) {
		if !started {
			started = true
			return state, true, nil
		}
		next, err := p.Transition(state)
		if err != nil || next == nil {
			return state, false, err
		}
		state = next.Choose(rng)
		return state, true, nil
	})
}

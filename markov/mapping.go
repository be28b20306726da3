package markov

import "github.com/CodeStranger-Fred/markov/distribution"

// Mapping assigns each state a distribution over outcomes of type O, or nil
// for a terminal state. States keep the order in which they were first set;
// that order becomes the state space of a finite process.
type Mapping[S, O comparable] struct {
	states []S
	dists  map[S]distribution.FiniteDistribution[O]
}

func NewMapping[S, O comparable]() *Mapping[S, O] {
	return &Mapping[S, O]{dists: make(map[S]distribution.FiniteDistribution[O])}
}

// NewTransition returns an empty state -> successor mapping.
func NewTransition[S comparable]() *Mapping[S, S] {
	return NewMapping[S, S]()
}

// NewRewardTransition returns an empty state -> (successor, reward) mapping.
func NewRewardTransition[S comparable]() *Mapping[S, Step[S]] {
	return NewMapping[S, Step[S]]()
}

// Set replaces the distribution of s, appending s if it is new.
func (m *Mapping[S, O]) Set(s S, d distribution.FiniteDistribution[O]) *Mapping[S, O] {
	if m.dists == nil {
		m.dists = make(map[S]distribution.FiniteDistribution[O])
	}
	if _, ok := m.dists[s]; !ok {
		m.states = append(m.states, s)
	}
	m.dists[s] = d
	return m
}

// Terminal marks s as terminal.
func (m *Mapping[S, O]) Terminal(s S) *Mapping[S, O] {
	return m.Set(s, nil)
}

func (m *Mapping[S, O]) Get(s S) (distribution.FiniteDistribution[O], bool) {
	d, ok := m.dists[s]
	return d, ok
}

func (m *Mapping[S, O]) States() []S {
	return append([]S(nil), m.states...)
}

func (m *Mapping[S, O]) Len() int {
	return len(m.states)
}

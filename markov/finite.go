package markov

import (
	"log/slog"
	"math"
	"math/cmplx"

	"github.com/CodeStranger-Fred/markov/distribution"
	"github.com/cockroachdb/errors"
	"gonum.org/v1/gonum/mat"
)

// FiniteMarkovProcess is a Markov process over a finite state space. The
// transition matrix is built once at construction; the process never changes
// afterwards.
type FiniteMarkovProcess[S comparable] struct {
	stateSpace  []S
	index       map[S]int
	transitions map[S]distribution.FiniteDistribution[S]
	matrix      *mat.Dense
	opts        options
}

// NewFiniteMarkovProcess validates m and builds the transition matrix over
// the states of m in insertion order.
func NewFiniteMarkovProcess[S comparable](m *Mapping[S, S], opts ...Option) (*FiniteMarkovProcess[S], error) {
	return newFiniteMarkovProcess(m, newOptions(opts))
}

func newFiniteMarkovProcess[S comparable](m *Mapping[S, S], o options) (*FiniteMarkovProcess[S], error) {
	if m == nil || m.Len() == 0 {
		return nil, ErrEmptyStateSpace
	}

	p := &FiniteMarkovProcess[S]{
		stateSpace:  m.States(),
		index:       make(map[S]int, m.Len()),
		transitions: make(map[S]distribution.FiniteDistribution[S], m.Len()),
		opts:        o,
	}
	for i, s := range p.stateSpace {
		p.index[s] = i
		p.transitions[s], _ = m.Get(s)
	}

	n := len(p.stateSpace)
	p.matrix = mat.NewDense(n, n, nil)
	terminal := 0
	for i, s := range p.stateSpace {
		d := p.transitions[s]
		if d == nil {
			terminal++
			continue
		}
		if err := distribution.Check(d, o.probabilityTolerance); err != nil {
			return nil, errors.Wrapf(errors.Mark(err, ErrMalformedDistribution), "transition from %v", s)
		}
		for _, w := range d.Table() {
			j, ok := p.index[w.Outcome]
			if !ok {
				return nil, errors.Wrapf(unknownState(w.Outcome), "successor of %v", s)
			}
			p.matrix.Set(i, j, float64(w.Probability))
		}
	}

	o.logger.Debug("finite markov process built",
		slog.Int("states", n),
		slog.Int("terminal", terminal))
	return p, nil
}

// Transition returns the stored successor distribution, nil for a terminal
// state.
func (p *FiniteMarkovProcess[S]) Transition(state S) (distribution.ProbabilityDistribution[S], error) {
	d, err := p.Successors(state)
	if err != nil || d == nil {
		return nil, err
	}
	return d, nil
}

// Successors is Transition with the finite distribution type.
func (p *FiniteMarkovProcess[S]) Successors(state S) (distribution.FiniteDistribution[S], error) {
	d, ok := p.transitions[state]
	if !ok {
		return nil, unknownState(state)
	}
	return d, nil
}

// IsTerminal is false for states outside the state space.
func (p *FiniteMarkovProcess[S]) IsTerminal(state S) bool {
	d, ok := p.transitions[state]
	return ok && d == nil
}

func (p *FiniteMarkovProcess[S]) StateSpace() []S {
	return append([]S(nil), p.stateSpace...)
}

// Index returns the row of state in the transition matrix.
func (p *FiniteMarkovProcess[S]) Index(state S) (int, bool) {
	i, ok := p.index[state]
	return i, ok
}

// TransitionMatrix returns a copy of the matrix whose (i, j) entry is the
// probability of moving from state i to state j.
func (p *FiniteMarkovProcess[S]) TransitionMatrix() *mat.Dense {
	return mat.DenseCopyOf(p.matrix)
}

// UnitEigenvalues returns the indices, in solver order, of the eigenvalues of
// the transposed transition matrix lying within the eigen tolerance of 1.
// More than one means the chain has several stationary distributions.
func (p *FiniteMarkovProcess[S]) UnitEigenvalues() ([]int, error) {
	_, unit, err := p.eigen()
	return unit, err
}

// StationaryDistribution returns a distribution over the state space left
// unchanged by one step of the process. It is the normalised real part of
// the eigenvector of the first unit eigenvalue of the transposed transition
// matrix.
func (p *FiniteMarkovProcess[S]) StationaryDistribution() (*distribution.Categorical[S], error) {
	eig, unit, err := p.eigen()
	if err != nil {
		return nil, err
	}
	if len(unit) == 0 {
		return nil, ErrNoStationaryDistribution
	}
	if len(unit) > 1 {
		p.opts.logger.Warn("several unit eigenvalues, using the first",
			slog.Int("count", len(unit)),
			slog.Int("eigenvalue_index", unit[0]))
	}

	var vecs mat.CDense
	eig.VectorsTo(&vecs)

	col := unit[0]
	n := len(p.stateSpace)
	v := make([]float64, n)
	sum := 0.0
	for i := range v {
		v[i] = real(vecs.At(i, col))
		sum += v[i]
	}
	if math.Abs(sum) < p.opts.eigenTolerance {
		return nil, errors.Wrapf(ErrNoStationaryDistribution, "eigenvector %d sums to %g", col, sum)
	}

	pi := &distribution.Categorical[S]{}
	for i, s := range p.stateSpace {
		pi.Add(s, distribution.Probability(v[i]/sum))
	}
	return pi, nil
}

func (p *FiniteMarkovProcess[S]) eigen() (*mat.Eigen, []int, error) {
	var eig mat.Eigen
	if ok := eig.Factorize(p.matrix.T(), mat.EigenRight); !ok {
		return nil, nil, errors.Wrap(ErrNoStationaryDistribution, "eigen decomposition did not converge")
	}
	var unit []int
	for i, lambda := range eig.Values(nil) {
		if cmplx.Abs(lambda-1) < p.opts.eigenTolerance {
			unit = append(unit, i)
		}
	}
	return &eig, unit, nil
}

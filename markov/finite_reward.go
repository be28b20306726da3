package markov

import (
	"log/slog"
	"math"

	"github.com/CodeStranger-Fred/markov/distribution"
	"github.com/cockroachdb/errors"
	"gonum.org/v1/gonum/mat"
)

// FiniteMarkovRewardProcess is a finite Markov process whose transitions carry
// rewards. The state transition matrix comes from the embedded
// FiniteMarkovProcess, built from the exact marginal over successors.
type FiniteMarkovRewardProcess[S comparable] struct {
	*FiniteMarkovProcess[S]

	rewardTransitions map[S]distribution.FiniteDistribution[Step[S]]
	rewards           *mat.VecDense
}

// NewFiniteMarkovRewardProcess aggregates m into a transition matrix and the
// vector of expected immediate rewards. Terminal states get a reward of 0.
func NewFiniteMarkovRewardProcess[S comparable](m *Mapping[S, Step[S]], opts ...Option) (*FiniteMarkovRewardProcess[S], error) {
	o := newOptions(opts)
	if m == nil || m.Len() == 0 {
		return nil, ErrEmptyStateSpace
	}

	transitions := NewTransition[S]()
	rewardTransitions := make(map[S]distribution.FiniteDistribution[Step[S]], m.Len())
	for _, s := range m.States() {
		d, _ := m.Get(s)
		rewardTransitions[s] = d
		if d == nil {
			transitions.Terminal(s)
			continue
		}
		if err := distribution.Check(d, o.probabilityTolerance); err != nil {
			return nil, errors.Wrapf(errors.Mark(err, ErrMalformedDistribution), "reward transition from %v", s)
		}
		transitions.Set(s, distribution.Map(d, func(step Step[S]) S { return step.State }))
	}

	fmp, err := newFiniteMarkovProcess(transitions, o)
	if err != nil {
		return nil, err
	}

	rewards := mat.NewVecDense(len(fmp.stateSpace), nil)
	for i, s := range fmp.stateSpace {
		d := rewardTransitions[s]
		if d == nil {
			continue
		}
		rewards.SetVec(i, distribution.Expectation(d, func(step Step[S]) float64 {
			return float64(step.Reward)
		}))
	}

	return &FiniteMarkovRewardProcess[S]{
		FiniteMarkovProcess: fmp,
		rewardTransitions:   rewardTransitions,
		rewards:             rewards,
	}, nil
}

func (p *FiniteMarkovRewardProcess[S]) TransitionReward(state S) (distribution.ProbabilityDistribution[Step[S]], error) {
	d, err := p.RewardSuccessors(state)
	if err != nil || d == nil {
		return nil, err
	}
	return d, nil
}

// RewardSuccessors is TransitionReward with the finite distribution type.
func (p *FiniteMarkovRewardProcess[S]) RewardSuccessors(state S) (distribution.FiniteDistribution[Step[S]], error) {
	d, ok := p.rewardTransitions[state]
	if !ok {
		return nil, unknownState(state)
	}
	return d, nil
}

// RewardVector returns a copy of the expected immediate reward of each state,
// indexed like the state space.
func (p *FiniteMarkovRewardProcess[S]) RewardVector() *mat.VecDense {
	return mat.VecDenseCopyOf(p.rewards)
}

// Rewards is RewardVector keyed by state.
func (p *FiniteMarkovRewardProcess[S]) Rewards() map[S]float64 {
	return p.keyed(p.rewards)
}

// ValueFunction solves (I - gamma*P) v = R for the discounted value of every
// state.
func (p *FiniteMarkovRewardProcess[S]) ValueFunction(gamma float64) (*mat.VecDense, error) {
	if math.IsNaN(gamma) || gamma < 0 || gamma >= 1 {
		return nil, errors.Wrapf(ErrInvalidDiscountFactor, "gamma=%g", gamma)
	}

	n := len(p.stateSpace)
	a := mat.NewDense(n, n, nil)
	a.Scale(-gamma, p.matrix)
	for i := 0; i < n; i++ {
		a.Set(i, i, a.At(i, i)+1)
	}

	var lu mat.LU
	lu.Factorize(a)
	if cond := lu.Cond(); !(cond <= mat.ConditionTolerance) {
		return nil, errors.Wrapf(ErrSingularTransition, "condition number %g", cond)
	}

	v := mat.NewVecDense(n, nil)
	if err := lu.SolveVecTo(v, false, p.rewards); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "solving bellman equation"), ErrSingularTransition)
	}
	p.opts.logger.Debug("value function solved",
		slog.Float64("gamma", gamma),
		slog.Float64("condition", lu.Cond()))
	return v, nil
}

// Values is ValueFunction keyed by state.
func (p *FiniteMarkovRewardProcess[S]) Values(gamma float64) (map[S]float64, error) {
	v, err := p.ValueFunction(gamma)
	if err != nil {
		return nil, err
	}
	return p.keyed(v), nil
}

func (p *FiniteMarkovRewardProcess[S]) keyed(v mat.Vector) map[S]float64 {
	out := make(map[S]float64, len(p.stateSpace))
	for i, s := range p.stateSpace {
		out[s] = v.AtVec(i)
	}
	return out
}

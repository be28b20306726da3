package markov

import (
	"fmt"

	"github.com/CodeStranger-Fred/markov/distribution"
)

type Reward float64

// Step is a successor state together with the reward earned reaching it.
type Step[S comparable] struct {
	State  S
	Reward Reward
}

func (s Step[S]) String() string {
	return fmt.Sprintf("(%v, %.3f)", s.State, float64(s.Reward))
}

// RewardProcess is a Markov process whose transitions also produce a reward.
type RewardProcess[S comparable] interface {
	// TransitionReward returns the joint distribution of the next state and
	// reward, or nil when state is terminal.
	TransitionReward(state S) (distribution.ProbabilityDistribution[Step[S]], error)
}

// Marginal turns p into a plain process by sampling TransitionReward and
// dropping the reward.
func Marginal[S comparable](p RewardProcess[S]) Process[S] {
	return marginal[S]{p: p}
}

type marginal[S comparable] struct {
	p RewardProcess[S]
}

func (m marginal[S]) Transition(state S) (distribution.ProbabilityDistribution[S], error) {
	d, err := m.p.TransitionReward(state)
	if err != nil || d == nil {
		return nil, err
	}
	return distribution.NewSampled(func(rng distribution.Source) S {
		return d.Choose(rng).State
	}), nil
}

// SimulateReward runs p from start. The first step is (start, 0); each
// further step is drawn from TransitionReward until a terminal state.
func SimulateReward[S comparable](p RewardProcess[S], start S, rng distribution.Source) *Trace[Step[S]] {
	step := Step[S]{State: start}
	started := false
	return newTrace(func() (Step[S], bool, error) {
		if !started {
			started = true
			return step, true, nil
		}
		next, err := p.TransitionReward(step.State)
		if err != nil || next == nil {
			return step, false, err
		}
		step = next.Choose(rng)
		return step, true, nil
	})
}

// Return discounts the rewards of a trace back to its first step.
func Return[S comparable](steps []Step[S], gamma float64) float64 {
	g := 0.0
	for i := len(steps) - 1; i >= 1; i-- {
		g = float64(steps[i].Reward) + gamma*g
	}
	return g
}

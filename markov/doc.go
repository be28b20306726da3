// Package markov models discrete-time Markov processes and Markov reward
// processes.
//
// Any type with a Transition method is a Process and can be simulated with
// Simulate; any type with a TransitionReward method is a RewardProcess and can
// be simulated with SimulateReward. States are any comparable type.
//
// Finite processes are built from a Mapping that lists every state in order,
// each with its successor distribution or nil when the state is terminal:
//
//	m := markov.NewRewardTransition[string]().
//		Set("A", distribution.Constant(markov.Step[string]{State: "B", Reward: 1})).
//		Terminal("B")
//	mrp, err := markov.NewFiniteMarkovRewardProcess(m)
//	if err != nil {
//		return err
//	}
//	v, err := mrp.ValueFunction(0.5) // [1, 0]
//
// FiniteMarkovProcess exposes the transition matrix and the stationary
// distribution; FiniteMarkovRewardProcess adds the expected reward vector and
// the discounted value function, solved exactly with an LU decomposition.
package markov

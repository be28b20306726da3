package markov_test

import (
	"math"
	"testing"

	"github.com/CodeStranger-Fred/markov/distribution"
	"github.com/CodeStranger-Fred/markov/markov"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func step(s string, r float64) markov.Step[string] {
	return markov.Step[string]{State: s, Reward: markov.Reward(r)}
}

func twoState(t *testing.T) *markov.FiniteMarkovRewardProcess[string] {
	t.Helper()
	m := markov.NewRewardTransition[string]().
		Set("A", distribution.Constant(step("B", 1))).
		Terminal("B")
	p, err := markov.NewFiniteMarkovRewardProcess(m)
	require.NoError(t, err)
	return p
}

// student is a small process with several rewards per successor and one
// terminal state.
func student(t *testing.T) *markov.FiniteMarkovRewardProcess[string] {
	t.Helper()
	m := markov.NewRewardTransition[string]().
		Set("class", distribution.NewCategorical(
			weighted(step("class", -2), 0.3),
			weighted(step("pub", 1), 0.2),
			weighted(step("pub", 3), 0.1),
			weighted(step("sleep", 0), 0.4),
		)).
		Set("pub", distribution.NewCategorical(
			weighted(step("class", -1), 0.6),
			weighted(step("sleep", 2), 0.4),
		)).
		Terminal("sleep")
	p, err := markov.NewFiniteMarkovRewardProcess(m)
	require.NoError(t, err)
	return p
}

func TestFiniteMarkovRewardProcess_TwoState(t *testing.T) {
	t.Parallel()

	p := twoState(t)

	assert.True(t, mat.Equal(mat.NewDense(2, 2, []float64{0, 1, 0, 0}), p.TransitionMatrix()))
	assert.True(t, mat.Equal(mat.NewVecDense(2, []float64{1, 0}), p.RewardVector()))

	v, err := p.ValueFunction(0.5)
	require.NoError(t, err)
	assert.InDelta(t, 1, v.AtVec(0), 1e-12)
	assert.InDelta(t, 0, v.AtVec(1), 1e-12)

	values, err := p.Values(0.5)
	require.NoError(t, err)
	assert.InDelta(t, 1, values["A"], 1e-12)
	assert.InDelta(t, 0, values["B"], 1e-12)
	assert.Equal(t, map[string]float64{"A": 1, "B": 0}, p.Rewards())
}

func TestFiniteMarkovRewardProcess_SingleTerminalState(t *testing.T) {
	t.Parallel()

	p, err := markov.NewFiniteMarkovRewardProcess(markov.NewRewardTransition[string]().Terminal("end"))
	require.NoError(t, err)

	for _, gamma := range []float64{0, 0.3, 0.99} {
		v, err := p.ValueFunction(gamma)
		require.NoError(t, err)
		assert.Equal(t, 1, v.Len())
		assert.Zero(t, v.AtVec(0))
	}
}

func TestFiniteMarkovRewardProcess_Aggregation(t *testing.T) {
	t.Parallel()

	p := student(t)

	assert.Equal(t, []string{"class", "pub", "sleep"}, p.StateSpace())

	t.Run("marginal matches manual aggregation", func(t *testing.T) {
		manual := mat.NewDense(3, 3, nil)
		for i, s := range p.StateSpace() {
			d, err := p.RewardSuccessors(s)
			require.NoError(t, err)
			if d == nil {
				continue
			}
			for _, w := range d.Table() {
				j, ok := p.Index(w.Outcome.State)
				require.True(t, ok)
				manual.Set(i, j, manual.At(i, j)+float64(w.Probability))
			}
		}
		assert.True(t, mat.EqualApprox(manual, p.TransitionMatrix(), 1e-12))
	})

	t.Run("exact successor distribution", func(t *testing.T) {
		d, err := p.Successors("class")
		require.NoError(t, err)
		assert.InDelta(t, 0.3, float64(d.Probability("pub")), 1e-12)
	})

	t.Run("expected rewards", func(t *testing.T) {
		r := p.RewardVector()
		assert.InDelta(t, 0.3*-2+0.2*1+0.1*3, r.AtVec(0), 1e-12)
		assert.InDelta(t, 0.6*-1+0.4*2, r.AtVec(1), 1e-12)
		assert.Zero(t, r.AtVec(2))
	})
}

func TestValueFunction_BellmanResidual(t *testing.T) {
	t.Parallel()

	p := student(t)
	pm := p.TransitionMatrix()
	r := p.RewardVector()

	for _, gamma := range []float64{0, 0.5, 0.9, 0.999} {
		v, err := p.ValueFunction(gamma)
		require.NoError(t, err)

		var rhs mat.VecDense
		rhs.MulVec(pm, v)
		rhs.ScaleVec(gamma, &rhs)
		rhs.AddVec(r, &rhs)
		for i := 0; i < v.Len(); i++ {
			assert.InDelta(t, rhs.AtVec(i), v.AtVec(i), 1e-9, "gamma=%g state=%d", gamma, i)
		}
	}
}

func TestValueFunction_InvalidDiscountFactor(t *testing.T) {
	t.Parallel()

	p := twoState(t)
	for _, gamma := range []float64{-0.1, 1, 1.5, math.NaN(), math.Inf(1)} {
		_, err := p.ValueFunction(gamma)
		assert.True(t, errors.Is(err, markov.ErrInvalidDiscountFactor), "gamma=%g", gamma)
	}
}

func TestFiniteMarkovRewardProcess_TransitionReward(t *testing.T) {
	t.Parallel()

	p := twoState(t)

	d, err := p.TransitionReward("A")
	require.NoError(t, err)
	require.NotNil(t, d)

	d, err = p.TransitionReward("B")
	require.NoError(t, err)
	assert.Nil(t, d)

	_, err = p.TransitionReward("C")
	assert.True(t, errors.Is(err, markov.ErrUnknownState))
}

func TestNewFiniteMarkovRewardProcess_Errors(t *testing.T) {
	t.Parallel()

	t.Run("empty", func(t *testing.T) {
		_, err := markov.NewFiniteMarkovRewardProcess(markov.NewRewardTransition[string]())
		assert.True(t, errors.Is(err, markov.ErrEmptyStateSpace))
	})

	t.Run("malformed", func(t *testing.T) {
		m := markov.NewRewardTransition[string]().
			Set("A", distribution.NewCategorical(weighted(step("A", 1), 0.5), weighted(step("A", 2), 0.2)))
		_, err := markov.NewFiniteMarkovRewardProcess(m)
		assert.True(t, errors.Is(err, markov.ErrMalformedDistribution))
	})

	t.Run("unknown successor", func(t *testing.T) {
		m := markov.NewRewardTransition[string]().Set("A", distribution.Constant(step("Z", 1)))
		_, err := markov.NewFiniteMarkovRewardProcess(m)
		assert.True(t, errors.Is(err, markov.ErrUnknownState))
	})
}

package distribution_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/CodeStranger-Fred/markov/distribution"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategorical_AddAccumulates(t *testing.T) {
	t.Parallel()

	c := distribution.NewCategorical(
		distribution.Weighted[string]{Outcome: "a", Probability: 0.25},
		distribution.Weighted[string]{Outcome: "b", Probability: 0.5},
		distribution.Weighted[string]{Outcome: "a", Probability: 0.25},
	)

	assert.Equal(t, 2, c.Len())
	assert.InDelta(t, 0.5, float64(c.Probability("a")), 1e-12)
	assert.InDelta(t, 0.5, float64(c.Probability("b")), 1e-12)
	assert.Zero(t, c.Probability("missing"))

	table := c.Table()
	require.Len(t, table, 2)
	assert.Equal(t, "a", table[0].Outcome, "first appearance keeps its position")
	assert.Equal(t, "b", table[1].Outcome)
}

func TestCategorical_ZeroValue(t *testing.T) {
	t.Parallel()

	var c distribution.Categorical[int]
	assert.Empty(t, c.Table())
	c.Add(3, 1)
	assert.Equal(t, 3, c.Choose(rand.New(rand.NewSource(1))))
}

func TestCategorical_ChooseStaysInSupport(t *testing.T) {
	t.Parallel()

	c := distribution.Uniform("x", "y", "z")
	rng := rand.New(rand.NewSource(7))

	counts := map[string]int{}
	for _, s := range distribution.SampleN[string](c, rng, 3000) {
		counts[s]++
	}
	require.Len(t, counts, 3)
	for outcome, n := range counts {
		assert.InDelta(t, 1000, n, 150, "outcome %s", outcome)
	}
}

func TestConstant(t *testing.T) {
	t.Parallel()

	c := distribution.Constant(42)
	assert.Equal(t, distribution.Probability(1), c.Probability(42))
	assert.Equal(t, 42, c.Choose(rand.New(rand.NewSource(3))))
}

func TestCheck(t *testing.T) {
	t.Parallel()

	t.Run("normalized", func(t *testing.T) {
		c := distribution.Uniform(1, 2, 3, 4, 5, 6, 7, 8, 9, 10)
		assert.NoError(t, distribution.Check[int](c, 1e-8))
	})

	t.Run("not normalized", func(t *testing.T) {
		c := distribution.NewCategorical(distribution.Weighted[int]{Outcome: 1, Probability: 0.7})
		err := distribution.Check[int](c, 1e-8)
		assert.True(t, errors.Is(err, distribution.ErrNotNormalized))
	})

	t.Run("negative", func(t *testing.T) {
		c := distribution.NewCategorical(
			distribution.Weighted[int]{Outcome: 1, Probability: 1.5},
			distribution.Weighted[int]{Outcome: 2, Probability: -0.5},
		)
		err := distribution.Check[int](c, 1e-8)
		assert.True(t, errors.Is(err, distribution.ErrNegativeProbability))
	})

	t.Run("nan", func(t *testing.T) {
		c := distribution.NewCategorical(distribution.Weighted[int]{Outcome: 1, Probability: distribution.Probability(math.NaN())})
		err := distribution.Check[int](c, 1e-8)
		assert.True(t, errors.Is(err, distribution.ErrNegativeProbability))

		c = distribution.NewCategorical(
			distribution.Weighted[int]{Outcome: 1, Probability: 1},
			distribution.Weighted[int]{Outcome: 2, Probability: distribution.Probability(math.NaN())},
		)
		assert.Error(t, distribution.Check[int](c, 1e-8))
	})

	t.Run("empty", func(t *testing.T) {
		err := distribution.Check[int](&distribution.Categorical[int]{}, 1e-8)
		assert.True(t, errors.Is(err, distribution.ErrNotNormalized))
	})
}

func TestMapAndExpectation(t *testing.T) {
	t.Parallel()

	type pair struct {
		next   string
		reward float64
	}
	d := distribution.NewCategorical(
		distribution.Weighted[pair]{Outcome: pair{"a", 1}, Probability: 0.2},
		distribution.Weighted[pair]{Outcome: pair{"b", 2}, Probability: 0.5},
		distribution.Weighted[pair]{Outcome: pair{"a", 3}, Probability: 0.3},
	)

	m := distribution.Map[pair, string](d, func(p pair) string { return p.next })
	assert.InDelta(t, 0.5, float64(m.Probability("a")), 1e-12)
	assert.InDelta(t, 0.5, float64(m.Probability("b")), 1e-12)
	assert.Equal(t, "a", m.Table()[0].Outcome)

	e := distribution.Expectation[pair](d, func(p pair) float64 { return p.reward })
	assert.InDelta(t, 0.2*1+0.5*2+0.3*3, e, 1e-12)
}

func TestSampled(t *testing.T) {
	t.Parallel()

	d := distribution.NewSampled(func(rng distribution.Source) bool { return rng.Float64() < 2 })
	assert.True(t, d.Choose(rand.New(rand.NewSource(1))))
}

func TestCategorical_String(t *testing.T) {
	t.Parallel()

	c := distribution.NewCategorical(
		distribution.Weighted[string]{Outcome: "a", Probability: 0.25},
		distribution.Weighted[string]{Outcome: "b", Probability: 0.75},
	)
	assert.Equal(t, "{a: 0.250, b: 0.750}", c.String())
}

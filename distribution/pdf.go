// Package distribution holds the probability distributions the markov
// package samples from and enumerates.
package distribution

import (
	"math"

	"github.com/cockroachdb/errors"
)

var (
	ErrNotNormalized       = errors.New("probabilities do not sum to 1")
	ErrNegativeProbability = errors.New("negative probability")
)

// Source is the random number source every draw is taken from.
// *rand.Rand from math/rand satisfies it.
type Source interface {
	Float64() float64
}

type Probability float64

// ProbabilityDistribution can be sampled.
type ProbabilityDistribution[T any] interface {
	Choose(rng Source) T
}

// FiniteDistribution has a finite support that can be enumerated.
type FiniteDistribution[T comparable] interface {
	ProbabilityDistribution[T]

	// Table lists each outcome once with its probability.
	Table() []Weighted[T]

	// Probability returns 0 for outcomes outside the support.
	Probability(T) Probability
}

type Weighted[T any] struct {
	Outcome     T
	Probability Probability
}

// Check reports whether the probabilities of d are non-negative and sum to 1
// within tol. NaN fails both tests.
func Check[T comparable](d FiniteDistribution[T], tol float64) error {
	sum := 0.0
	for _, w := range d.Table() {
		if !(w.Probability >= 0) {
			return errors.Wrapf(ErrNegativeProbability, "outcome %v has probability %g", w.Outcome, float64(w.Probability))
		}
		sum += float64(w.Probability)
	}
	if !(math.Abs(sum-1) <= tol) {
		return errors.Wrapf(ErrNotNormalized, "sum is %g", sum)
	}
	return nil
}

// Expectation returns the probability weighted sum of f over the support of d.
func Expectation[T comparable](d FiniteDistribution[T], f func(T) float64) float64 {
	e := 0.0
	for _, w := range d.Table() {
		e += float64(w.Probability) * f(w.Outcome)
	}
	return e
}

// Map pushes d forward through f. Outcomes that f sends to the same value have
// their probabilities summed; order follows first appearance.
func Map[T, U comparable](d FiniteDistribution[T], f func(T) U) *Categorical[U] {
	c := &Categorical[U]{}
	for _, w := range d.Table() {
		c.Add(f(w.Outcome), w.Probability)
	}
	return c
}

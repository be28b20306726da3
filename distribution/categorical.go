package distribution

import (
	"fmt"
	"strings"
)

// Categorical is a finite distribution that remembers the order in which
// outcomes were added. The zero value is an empty distribution ready to use.
type Categorical[T comparable] struct {
	outcomes []T
	probs    map[T]Probability
}

func NewCategorical[T comparable](table ...Weighted[T]) *Categorical[T] {
	c := &Categorical[T]{}
	for _, w := range table {
		c.Add(w.Outcome, w.Probability)
	}
	return c
}

// Constant puts all mass on x.
func Constant[T comparable](x T) *Categorical[T] {
	return NewCategorical(Weighted[T]{Outcome: x, Probability: 1})
}

// Uniform spreads the mass evenly over xs. Repeated values accumulate.
func Uniform[T comparable](xs ...T) *Categorical[T] {
	c := &Categorical[T]{}
	for _, x := range xs {
		c.Add(x, Probability(1/float64(len(xs))))
	}
	return c
}

// Add adds p to the mass of outcome.
func (c *Categorical[T]) Add(outcome T, p Probability) {
	if c.probs == nil {
		c.probs = make(map[T]Probability)
	}
	if _, ok := c.probs[outcome]; !ok {
		c.outcomes = append(c.outcomes, outcome)
	}
	c.probs[outcome] += p
}

func (c *Categorical[T]) Table() []Weighted[T] {
	table := make([]Weighted[T], 0, len(c.outcomes))
	for _, o := range c.outcomes {
		table = append(table, Weighted[T]{Outcome: o, Probability: c.probs[o]})
	}
	return table
}

func (c *Categorical[T]) Probability(outcome T) Probability {
	return c.probs[outcome]
}

func (c *Categorical[T]) Len() int {
	return len(c.outcomes)
}

// Choose walks the cumulative mass in insertion order. Mass lost to rounding
// goes to the last outcome.
func (c *Categorical[T]) Choose(rng Source) T {
	v := rng.Float64()
	cumulative := 0.0
	var last T
	for _, o := range c.outcomes {
		cumulative += float64(c.probs[o])
		if v < cumulative {
			return o
		}
		last = o
	}
	return last
}

func (c *Categorical[T]) String() string {
	var b strings.Builder
	b.WriteString("{")
	for i, w := range c.Table() {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%v: %.3f", w.Outcome, float64(w.Probability))
	}
	b.WriteString("}")
	return b.String()
}

package markov

import "iter"

// Trace is a lazy, forward-only sequence of simulated values. Each call to
// Next draws at most one sample. A trace is not safe for concurrent use.
type Trace[T any] struct {
	advance func() (T, bool, error)
	cur     T
	err     error
	done    bool
}

func newTrace[T any](advance func() (T, bool, error)) *Trace[T] {
	return &Trace[T]{advance: advance}
}

// Next advances the trace. It returns false once the process has stopped at
// a terminal state or an error occurred.
func (t *Trace[T]) Next() bool {
	if t.done {
		return false
	}
	v, ok, err := t.advance()
	if err != nil || !ok {
		t.err = err
		t.done = true
		return false
	}
	t.cur = v
	return true
}

// Value returns the value produced by the last successful Next.
func (t *Trace[T]) Value() T {
	return t.cur
}

func (t *Trace[T]) Err() error {
	return t.err
}

// All ranges over the remaining values. Check Err afterwards.
func (t *Trace[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for t.Next() {
			if !yield(t.Value()) {
				return
			}
		}
	}
}

// Take collects at most n further values.
func (t *Trace[T]) Take(n int) ([]T, error) {
	out := make([]T, 0, n)
	for len(out) < n && t.Next() {
		out = append(out, t.Value())
	}
	return out, t.Err()
}

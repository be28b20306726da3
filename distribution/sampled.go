package distribution

// Sampled is a distribution known only through its sampler.
type Sampled[T any] struct {
	sampler func(Source) T
}

func NewSampled[T any](sampler func(Source) T) Sampled[T] {
	return Sampled[T]{sampler: sampler}
}

func (s Sampled[T]) Choose(rng Source) T {
	return s.sampler(rng)
}

// SampleN draws n independent samples from d.
func SampleN[T any](d ProbabilityDistribution[T], rng Source, n int) []T {
	out := make([]T, n)
	for i := range out {
		out[i] = d.Choose(rng)
	}
	return out
}

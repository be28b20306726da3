package markov

import "log/slog"

const (
	DefaultEigenTolerance       = 1e-8
	DefaultProbabilityTolerance = 1e-8
)

// Option configures a finite process at construction.
type Option func(*options)

type options struct {
	logger               *slog.Logger
	eigenTolerance       float64
	probabilityTolerance float64
}

func newOptions(opts []Option) options {
	o := options{
		logger:               slog.New(slog.DiscardHandler),
		eigenTolerance:       DefaultEigenTolerance,
		probabilityTolerance: DefaultProbabilityTolerance,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithLogger sets the logger. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithEigenTolerance sets how close to 1 an eigenvalue of the transposed
// transition matrix must be to count as a unit eigenvalue.
func WithEigenTolerance(tol float64) Option {
	return func(o *options) {
		if tol > 0 {
			o.eigenTolerance = tol
		}
	}
}

// WithProbabilityTolerance sets how far from 1 the total mass of an input
// distribution may drift before construction rejects it.
func WithProbabilityTolerance(tol float64) Option {
	return func(o *options) {
		if tol > 0 {
			o.probabilityTolerance = tol
		}
	}
}

// Package config loads the command line configuration from the environment
// and optional .env files.
package config

import (
	"io/fs"
	"math"

	"github.com/caarlos0/env/v11"
	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	// ModelFile is a YAML model; the gridworld is used when empty.
	ModelFile   string  `env:"MARKOV_MODEL_FILE"`
	Gamma       float64 `env:"MARKOV_GAMMA" envDefault:"0.9"`
	Seed        int64   `env:"MARKOV_SEED" envDefault:"1"`
	Traces      int     `env:"MARKOV_TRACES" envDefault:"3"`
	TraceLength int     `env:"MARKOV_TRACE_LENGTH" envDefault:"20"`
	ChartPath   string  `env:"MARKOV_CHART_PATH"`
	Color       bool    `env:"MARKOV_COLOR" envDefault:"true"`
	LogLevel    string  `env:"MARKOV_LOG_LEVEL" envDefault:"info"`
	LogFormat   string  `env:"MARKOV_LOG_FORMAT" envDefault:"text"`

	Grid Grid
}

type Grid struct {
	Rows      int       `env:"MARKOV_GRID_ROWS" envDefault:"4"`
	Cols      int       `env:"MARKOV_GRID_COLS" envDefault:"4"`
	Wind      []int     `env:"MARKOV_GRID_WIND" envDefault:"0,1,1,0" envSeparator:","`
	WindProbs []float64 `env:"MARKOV_GRID_WIND_PROBS" envDefault:"0.1,0.8,0.1" envSeparator:","`
}

// Load reads the given .env files, if they exist, then parses the
// environment. Variables already set take precedence over the files.
func Load(envFiles ...string) (Config, error) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, errors.Wrapf(err, "loading %s", f)
		}
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, errors.Mark(errors.Wrap(err, "parsing environment"), ErrInvalidConfig)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if math.IsNaN(c.Gamma) || c.Gamma < 0 || c.Gamma >= 1 {
		return errors.Wrapf(ErrInvalidConfig, "MARKOV_GAMMA=%g must lie in [0, 1)", c.Gamma)
	}
	if c.Traces < 0 {
		return errors.Wrapf(ErrInvalidConfig, "MARKOV_TRACES=%d is negative", c.Traces)
	}
	if c.TraceLength < 1 {
		return errors.Wrapf(ErrInvalidConfig, "MARKOV_TRACE_LENGTH=%d must be positive", c.TraceLength)
	}
	if c.ModelFile == "" {
		if len(c.Grid.Wind) != c.Grid.Cols {
			return errors.Wrapf(ErrInvalidConfig, "MARKOV_GRID_WIND has %d entries for %d columns", len(c.Grid.Wind), c.Grid.Cols)
		}
		if len(c.Grid.WindProbs) != 3 {
			return errors.Wrapf(ErrInvalidConfig, "MARKOV_GRID_WIND_PROBS needs 3 entries, got %d", len(c.Grid.WindProbs))
		}
	}
	return nil
}

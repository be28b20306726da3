// Command markov prints the tables of a finite Markov reward process and
// simulates a few traces from it.
//
// The process is read from MARKOV_MODEL_FILE when set, otherwise the
// stochastic windy gridworld is built from the MARKOV_GRID_* variables.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"

	"github.com/CodeStranger-Fred/markov/chart"
	"github.com/CodeStranger-Fred/markov/display"
	"github.com/CodeStranger-Fred/markov/distribution"
	"github.com/CodeStranger-Fred/markov/gridworld"
	"github.com/CodeStranger-Fred/markov/internal/config"
	"github.com/CodeStranger-Fred/markov/internal/logger"
	"github.com/CodeStranger-Fred/markov/markov"
	"github.com/CodeStranger-Fred/markov/model"
	"github.com/cockroachdb/errors"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/logrusorgru/aurora"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	log, err := newLogger(cfg, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := run(cfg, log, os.Stdout); err != nil {
		log.Error("markov failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func newLogger(cfg config.Config, w io.Writer) (*slog.Logger, error) {
	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	return logger.New(
		logger.WithLevel(level),
		logger.WithFormat(logger.Format(cfg.LogFormat)),
		logger.WithOutput(w),
	)
}

func run(cfg config.Config, log *slog.Logger, out io.Writer) error {
	rng := rand.New(rand.NewSource(cfg.Seed))
	pr := display.New(out, cfg.Color)

	if cfg.ModelFile != "" {
		m, err := model.LoadFile(cfg.ModelFile)
		if err != nil {
			return err
		}
		log = log.With(slog.String("model", m.Name))
		p, err := m.RewardProcess(markov.WithLogger(log))
		if err != nil {
			return err
		}
		return report(cfg, log, pr, p, p.StateSpace()[0], rng)
	}

	w := gridworld.StochasticWindyGridWorld{
		Rows:            cfg.Grid.Rows,
		Cols:            cfg.Grid.Cols,
		BaseWind:        cfg.Grid.Wind,
		StochasticWind0: distribution.Probability(cfg.Grid.WindProbs[0]),
		StochasticWind1: distribution.Probability(cfg.Grid.WindProbs[1]),
		StochasticWind2: distribution.Probability(cfg.Grid.WindProbs[2]),
	}
	log = log.With(slog.String("model", "gridworld"))
	p, err := w.RewardProcess(markov.WithLogger(log))
	if err != nil {
		return err
	}
	start := gridworld.Cell{Row: w.Rows - 1, Col: 0}
	if err := report(cfg, log, pr, p, start, rng); err != nil {
		return err
	}

	values, err := p.Values(cfg.Gamma)
	if err != nil {
		return err
	}
	au := aurora.NewAurora(cfg.Color)
	fmt.Fprintln(out)
	w.PrintValues(out, au, values)
	fmt.Fprintln(out)
	w.PrintCurrentState(out, au, start)
	return nil
}

func report[S comparable](cfg config.Config, log *slog.Logger, pr *display.Printer, p *markov.FiniteMarkovRewardProcess[S], start S, rng distribution.Source) error {
	if err := display.RewardTransitions(pr, p); err != nil {
		return err
	}

	var bars []*charts.Bar
	pi, err := p.StationaryDistribution()
	switch {
	case errors.Is(err, markov.ErrNoStationaryDistribution):
		log.Info("process has no stationary distribution", slog.Any("reason", err))
	case err != nil:
		return err
	default:
		display.StationaryDistribution[S](pr, pi)
		probs := make([]float64, 0, pi.Len())
		for _, w := range pi.Table() {
			probs = append(probs, float64(w.Probability))
		}
		bar, err := chart.Bar("Stationary distribution", p.StateSpace(), chart.Series{Name: "pi", Values: probs})
		if err != nil {
			return err
		}
		bars = append(bars, bar)
	}

	display.RewardFunction(pr, p)
	if err := display.ValueFunction(pr, p, cfg.Gamma); err != nil {
		return err
	}

	for i := 0; i < cfg.Traces; i++ {
		steps, err := markov.SimulateReward[S](p, start, rng).Take(cfg.TraceLength)
		if err != nil {
			return err
		}
		display.Trace(pr, steps, markov.Return(steps, cfg.Gamma))
	}

	if cfg.ChartPath == "" {
		return nil
	}
	v, err := p.ValueFunction(cfg.Gamma)
	if err != nil {
		return err
	}
	bar, err := chart.Bar(fmt.Sprintf("Reward and value (gamma=%g)", cfg.Gamma), p.StateSpace(),
		chart.Series{Name: "reward", Values: p.RewardVector().RawVector().Data},
		chart.Series{Name: "value", Values: v.RawVector().Data},
	)
	if err != nil {
		return err
	}
	bars = append(bars, bar)
	if err := chart.WriteFile(cfg.ChartPath, bars...); err != nil {
		return err
	}
	log.Info("chart written", slog.String("path", cfg.ChartPath))
	return nil
}

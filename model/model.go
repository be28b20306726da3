// Package model reads finite Markov reward processes from YAML.
//
//	name: two-state
//	states:
//	  - name: A
//	    transitions:
//	      - {to: B, probability: 1, reward: 1}
//	  - name: B
//
// A state without transitions is terminal. Rewards default to 0.
package model

import (
	"io"
	"os"

	"github.com/CodeStranger-Fred/markov/distribution"
	"github.com/CodeStranger-Fred/markov/markov"
	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

var ErrInvalidModel = errors.New("invalid model")

type Model struct {
	Name   string  `yaml:"name"`
	States []State `yaml:"states"`
}

type State struct {
	Name        string       `yaml:"name"`
	Transitions []Transition `yaml:"transitions"`
}

type Transition struct {
	To          string  `yaml:"to"`
	Probability float64 `yaml:"probability"`
	Reward      float64 `yaml:"reward"`
}

func Decode(r io.Reader) (*Model, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var m Model
	if err := dec.Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.Wrap(ErrInvalidModel, "empty document")
		}
		return nil, errors.Mark(errors.Wrap(err, "decoding model"), ErrInvalidModel)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

func LoadFile(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening model %s", path)
	}
	defer f.Close()
	return Decode(f)
}

// Validate checks the structure of the model. Probabilities are checked when
// the reward process is built.
func (m *Model) Validate() error {
	if len(m.States) == 0 {
		return errors.Wrap(ErrInvalidModel, "no states")
	}
	seen := make(map[string]bool, len(m.States))
	for _, s := range m.States {
		if s.Name == "" {
			return errors.Wrap(ErrInvalidModel, "state without a name")
		}
		if seen[s.Name] {
			return errors.Wrapf(ErrInvalidModel, "state %q listed twice", s.Name)
		}
		seen[s.Name] = true
	}
	for _, s := range m.States {
		for _, t := range s.Transitions {
			if !seen[t.To] {
				return errors.Wrapf(ErrInvalidModel, "state %q transitions to undeclared state %q", s.Name, t.To)
			}
		}
	}
	return nil
}

func (m *Model) RewardTransition() *markov.Mapping[string, markov.Step[string]] {
	mapping := markov.NewRewardTransition[string]()
	for _, s := range m.States {
		if len(s.Transitions) == 0 {
			mapping.Terminal(s.Name)
			continue
		}
		pdf := &distribution.Categorical[markov.Step[string]]{}
		for _, t := range s.Transitions {
			pdf.Add(markov.Step[string]{State: t.To, Reward: markov.Reward(t.Reward)}, distribution.Probability(t.Probability))
		}
		mapping.Set(s.Name, pdf)
	}
	return mapping
}

func (m *Model) RewardProcess(opts ...markov.Option) (*markov.FiniteMarkovRewardProcess[string], error) {
	p, err := markov.NewFiniteMarkovRewardProcess(m.RewardTransition(), opts...)
	if err != nil {
		return nil, errors.Wrapf(err, "model %q", m.Name)
	}
	return p, nil
}

package model_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/CodeStranger-Fred/markov/markov"
	"github.com/CodeStranger-Fred/markov/model"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile(t *testing.T) {
	t.Parallel()

	m, err := model.LoadFile(filepath.Join("testdata", "student.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "student", m.Name)
	require.Len(t, m.States, 4)

	p, err := m.RewardProcess()
	require.NoError(t, err)
	assert.Equal(t, []string{"class1", "class2", "pub", "sleep"}, p.StateSpace())
	assert.True(t, p.IsTerminal("sleep"))

	rewards := p.Rewards()
	assert.InDelta(t, -2, rewards["class1"], 1e-12)
	assert.InDelta(t, 0.4*10+0.6*-2, rewards["class2"], 1e-12)

	v, err := p.Values(0.9)
	require.NoError(t, err)
	assert.Zero(t, v["sleep"])
}

func TestDecode_TwoState(t *testing.T) {
	t.Parallel()

	m, err := model.Decode(strings.NewReader(`
name: two-state
states:
  - name: A
    transitions:
      - {to: B, probability: 1, reward: 1}
  - name: B
`))
	require.NoError(t, err)

	p, err := m.RewardProcess()
	require.NoError(t, err)
	v, err := p.ValueFunction(0.5)
	require.NoError(t, err)
	assert.InDelta(t, 1, v.AtVec(0), 1e-12)
	assert.InDelta(t, 0, v.AtVec(1), 1e-12)
}

func TestDecode_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
	}{
		{"empty", ""},
		{"no states", "name: x\n"},
		{"unknown field", "states:\n  - name: A\n    colour: red\n"},
		{"duplicate state", "states:\n  - name: A\n  - name: A\n"},
		{"unnamed state", "states:\n  - transitions: []\n"},
		{"undeclared successor", "states:\n  - name: A\n    transitions:\n      - {to: B, probability: 1}\n"},
		{"bad yaml", "states: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := model.Decode(strings.NewReader(tt.doc))
			require.Error(t, err)
			assert.True(t, errors.Is(err, model.ErrInvalidModel), "%v", err)
		})
	}
}

func TestRewardProcess_Malformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
	}{
		{"not normalized", "states:\n  - name: A\n    transitions:\n      - {to: A, probability: 0.5}\n"},
		{"nan probability", "states:\n  - name: A\n    transitions:\n      - {to: A, probability: .nan, reward: 1}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := model.Decode(strings.NewReader(tt.doc))
			require.NoError(t, err)

			_, err = m.RewardProcess()
			assert.True(t, errors.Is(err, markov.ErrMalformedDistribution), "%v", err)
		})
	}
}

func TestLoadFile_Missing(t *testing.T) {
	t.Parallel()

	_, err := model.LoadFile(filepath.Join("testdata", "missing.yaml"))
	assert.Error(t, err)
}

// Package gridworld builds the stochastic windy gridworld as a finite Markov
// reward process. The agent follows the uniform random policy over
// up/down/left/right; every move costs 1 and the top-left and bottom-right
// cells are terminal.
package gridworld

import (
	"fmt"
	"io"
	"math"

	"github.com/CodeStranger-Fred/markov/distribution"
	"github.com/CodeStranger-Fred/markov/markov"
	"github.com/cockroachdb/errors"
	"github.com/logrusorgru/aurora"
)

var ErrInvalidWind = errors.New("invalid wind")

type Action string

var Actions = []Action{"up", "down", "left", "right"}

// Cell is a grid position and the state type of the process.
type Cell struct {
	Row, Col int
}

func (c Cell) String() string {
	return fmt.Sprintf("%d,%d", c.Row, c.Col)
}

// StochasticWindyGridWorld pushes the agent up after each move: with
// probability StochasticWind0 there is no wind, with StochasticWind1 the
// column's BaseWind applies and with StochasticWind2 one more row than that.
type StochasticWindyGridWorld struct {
	Rows            int
	Cols            int
	BaseWind        []int
	StochasticWind0 distribution.Probability
	StochasticWind1 distribution.Probability
	StochasticWind2 distribution.Probability
}

func (w StochasticWindyGridWorld) Check() error {
	if w.Rows <= 0 || w.Cols <= 0 {
		return errors.Newf("grid must have positive size, got %dx%d", w.Rows, w.Cols)
	}
	if len(w.BaseWind) != w.Cols {
		return errors.Wrapf(ErrInvalidWind, "%d base winds for %d columns", len(w.BaseWind), w.Cols)
	}
	for c, b := range w.BaseWind {
		if b < 0 {
			return errors.Wrapf(ErrInvalidWind, "column %d has negative wind %d", c, b)
		}
	}
	for i, p := range []distribution.Probability{w.StochasticWind0, w.StochasticWind1, w.StochasticWind2} {
		if !(p >= 0) {
			return errors.Wrapf(ErrInvalidWind, "stochastic wind %d has probability %g", i, float64(p))
		}
	}
	sum := float64(w.StochasticWind0 + w.StochasticWind1 + w.StochasticWind2)
	if !floatEq(sum, 1, 1e-9) {
		return errors.Wrapf(ErrInvalidWind, "wind probabilities sum to %g", sum)
	}
	return nil
}

func floatEq(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

func (w StochasticWindyGridWorld) Cells() []Cell {
	cells := make([]Cell, 0, w.Rows*w.Cols)
	for r := 0; r < w.Rows; r++ {
		for c := 0; c < w.Cols; c++ {
			cells = append(cells, Cell{r, c})
		}
	}
	return cells
}

func (w StochasticWindyGridWorld) IsTerminal(s Cell) bool {
	return s == Cell{0, 0} || s == Cell{w.Rows - 1, w.Cols - 1}
}

// Transition is the distribution of the cell reached by taking action from s.
func (w StochasticWindyGridWorld) Transition(s0 Cell, action Action) *distribution.Categorical[Cell] {
	s1 := w.Shift(s0, action)
	base := w.BaseWind[s1.Col]

	pdf := &distribution.Categorical[Cell]{}
	pdf.Add(s1, w.StochasticWind0)
	pdf.Add(Cell{w.ClipRow(s1.Row - base), s1.Col}, w.StochasticWind1)
	pdf.Add(Cell{w.ClipRow(s1.Row - base - 1), s1.Col}, w.StochasticWind2)
	return pdf
}

func (w StochasticWindyGridWorld) Shift(s0 Cell, action Action) Cell {
	r1, c1 := s0.Row, s0.Col
	switch action {
	case "up":
		r1--
	case "down":
		r1++
	case "right":
		c1++
	case "left":
		c1--
	}
	return Cell{w.ClipRow(r1), w.ClipCol(c1)}
}

func (w StochasticWindyGridWorld) ClipRow(r int) int {
	return min(max(r, 0), w.Rows-1)
}

func (w StochasticWindyGridWorld) ClipCol(c int) int {
	return min(max(c, 0), w.Cols-1)
}

// RewardTransition is the gridworld under the uniform random policy.
func (w StochasticWindyGridWorld) RewardTransition() (*markov.Mapping[Cell, markov.Step[Cell]], error) {
	if err := w.Check(); err != nil {
		return nil, err
	}
	m := markov.NewRewardTransition[Cell]()
	for _, s := range w.Cells() {
		if w.IsTerminal(s) {
			m.Terminal(s)
			continue
		}
		pdf := &distribution.Categorical[markov.Step[Cell]]{}
		pa := distribution.Probability(1 / float64(len(Actions)))
		for _, a := range Actions {
			for _, o := range w.Transition(s, a).Table() {
				pdf.Add(markov.Step[Cell]{State: o.Outcome, Reward: -1}, pa*o.Probability)
			}
		}
		m.Set(s, pdf)
	}
	return m, nil
}

func (w StochasticWindyGridWorld) RewardProcess(opts ...markov.Option) (*markov.FiniteMarkovRewardProcess[Cell], error) {
	m, err := w.RewardTransition()
	if err != nil {
		return nil, err
	}
	return markov.NewFiniteMarkovRewardProcess(m, opts...)
}

// PrintCurrentState draws the grid with the current cell highlighted.
func (w StochasticWindyGridWorld) PrintCurrentState(out io.Writer, au aurora.Aurora, current Cell) {
	for r := 0; r < w.Rows; r++ {
		for c := 0; c < w.Cols; c++ {
			st := Cell{r, c}
			if st == current {
				fmt.Fprint(out, au.Green(fmt.Sprintf("%5s ", st)))
			} else {
				fmt.Fprint(out, au.Blue(fmt.Sprintf("%5s ", st)))
			}
			fmt.Fprint(out, au.White("|"))
		}
		fmt.Fprintln(out)
	}
}

// PrintValues draws one value per cell.
func (w StochasticWindyGridWorld) PrintValues(out io.Writer, au aurora.Aurora, values map[Cell]float64) {
	for r := 0; r < w.Rows; r++ {
		for c := 0; c < w.Cols; c++ {
			fmt.Fprint(out, au.Blue(format2x2(values[Cell{r, c}])))
			fmt.Fprint(out, au.White("|"))
		}
		fmt.Fprintln(out)
	}
}

func format2x2(x float64) string {
	if x < 0 {
		return " -" + fmt.Sprintf("%05.2f", -x)
	}
	return fmt.Sprintf(" %05.2f", x)
}

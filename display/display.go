// Package display prints the tables of a finite process to a terminal.
package display

import (
	"fmt"
	"io"

	"github.com/CodeStranger-Fred/markov/distribution"
	"github.com/CodeStranger-Fred/markov/markov"
	"github.com/logrusorgru/aurora"
)

type Printer struct {
	out io.Writer
	au  aurora.Aurora
}

// New returns a Printer writing to out, coloured when colors is true.
func New(out io.Writer, colors bool) *Printer {
	return &Printer{out: out, au: aurora.NewAurora(colors)}
}

// Transitions lists every state with its successor probabilities.
func Transitions[S comparable](p *Printer, fmp *markov.FiniteMarkovProcess[S]) error {
	for _, s := range fmp.StateSpace() {
		d, err := fmp.Successors(s)
		if err != nil {
			return err
		}
		if d == nil {
			fmt.Fprintf(p.out, "%v is a Terminal State\n", p.au.Red(s))
			continue
		}
		fmt.Fprintf(p.out, "From State %v:\n", p.au.Bold(s))
		for _, w := range d.Table() {
			fmt.Fprintf(p.out, "  To State %v with Probability %.3f\n", p.au.Cyan(w.Outcome), float64(w.Probability))
		}
	}
	return nil
}

// RewardTransitions lists every state with its (successor, reward)
// probabilities.
func RewardTransitions[S comparable](p *Printer, mrp *markov.FiniteMarkovRewardProcess[S]) error {
	for _, s := range mrp.StateSpace() {
		d, err := mrp.RewardSuccessors(s)
		if err != nil {
			return err
		}
		if d == nil {
			fmt.Fprintf(p.out, "%v is a Terminal State\n", p.au.Red(s))
			continue
		}
		fmt.Fprintf(p.out, "From State %v:\n", p.au.Bold(s))
		for _, w := range d.Table() {
			fmt.Fprintf(p.out, "  To [State %v and Reward %.3f] with Probability %.3f\n",
				p.au.Cyan(w.Outcome.State), float64(w.Outcome.Reward), float64(w.Probability))
		}
	}
	return nil
}

// StationaryDistribution prints the stationary probability of each state.
func StationaryDistribution[S comparable](p *Printer, pi distribution.FiniteDistribution[S]) {
	p.header("Stationary Distribution")
	for _, w := range pi.Table() {
		p.row(w.Outcome, float64(w.Probability))
	}
}

func RewardFunction[S comparable](p *Printer, mrp *markov.FiniteMarkovRewardProcess[S]) {
	p.header("Reward Function")
	r := mrp.RewardVector()
	for i, s := range mrp.StateSpace() {
		p.row(s, r.AtVec(i))
	}
}

func ValueFunction[S comparable](p *Printer, mrp *markov.FiniteMarkovRewardProcess[S], gamma float64) error {
	v, err := mrp.ValueFunction(gamma)
	if err != nil {
		return err
	}
	p.header(fmt.Sprintf("Value Function (gamma=%g)", gamma))
	for i, s := range mrp.StateSpace() {
		p.row(s, v.AtVec(i))
	}
	return nil
}

// Trace prints one simulated reward trace on a line.
func Trace[S comparable](p *Printer, steps []markov.Step[S], ret float64) {
	for i, st := range steps {
		if i > 0 {
			fmt.Fprint(p.out, p.au.Gray(12, " -> "))
		}
		fmt.Fprintf(p.out, "%v", p.au.Green(st.State))
		if i > 0 {
			fmt.Fprintf(p.out, "(%+.2f)", float64(st.Reward))
		}
	}
	fmt.Fprintf(p.out, "  return=%.3f\n", ret)
}

func (p *Printer) header(title string) {
	fmt.Fprintln(p.out, p.au.Bold(p.au.Underline(title)))
}

func (p *Printer) row(state any, x float64) {
	color := p.au.Blue
	if x < 0 {
		color = p.au.Magenta
	}
	fmt.Fprintf(p.out, "  %-12v %s\n", state, color(fmt.Sprintf("%.3f", x)))
}

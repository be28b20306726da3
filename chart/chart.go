// Package chart renders per-state vectors of a finite process as HTML bar
// charts.
package chart

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

var ErrLengthMismatch = errors.New("series length does not match the state space")

// Series is one value per state.
type Series struct {
	Name   string
	Values []float64
}

// Bar builds a bar chart with one group of bars per state.
func Bar[S comparable](title string, states []S, series ...Series) (*charts.Bar, error) {
	labels := make([]string, len(states))
	for i, s := range states {
		labels[i] = fmt.Sprint(s)
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithInitializationOpts(opts.Initialization{Theme: "shine"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(labels)
	for _, s := range series {
		if len(s.Values) != len(states) {
			return nil, errors.Wrapf(ErrLengthMismatch, "series %q has %d values for %d states", s.Name, len(s.Values), len(states))
		}
		items := make([]opts.BarData, 0, len(s.Values))
		for _, v := range s.Values {
			items = append(items, opts.BarData{Value: v})
		}
		bar.AddSeries(s.Name, items)
	}
	return bar, nil
}

// Render writes a page holding every chart to w.
func Render(w io.Writer, bars ...*charts.Bar) error {
	page := components.NewPage()
	for _, b := range bars {
		page.AddCharts(b)
	}
	return errors.Wrap(page.Render(w), "rendering chart page")
}

// WriteFile renders the page to path, creating its directory.
func WriteFile(path string, bars ...*charts.Bar) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return errors.Wrapf(err, "creating %s", filepath.Dir(path))
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating %s", path)
	}
	if err := Render(f, bars...); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

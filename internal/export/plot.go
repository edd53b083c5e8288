package export

import (
	"fmt"
	"io"

	"github.com/san-kum/windtunnel/internal/aero"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

const (
	plotWidth  = 8 * vg.Inch
	plotHeight = 5 * vg.Inch
)

// RangePlot builds the drag and power curves of a sweep.
func RangePlot(data *aero.SweepResult) (*plot.Plot, error) {
	if data == nil || data.Len() == 0 {
		return nil, fmt.Errorf("export: no range data to plot")
	}
	drag := make(plotter.XYs, data.Len())
	power := make(plotter.XYs, data.Len())
	for i, v := range data.Velocities {
		drag[i].X, drag[i].Y = v, data.DragForces[i]
		power[i].X, power[i].Y = v, data.Powers[i]
	}

	p := plot.New()
	p.Title.Text = "Velocity Range Analysis"
	p.X.Label.Text = "Velocity (m/s)"
	p.Y.Label.Text = "Value"
	p.Add(plotter.NewGrid())
	p.Legend.Top = true
	p.Legend.Left = true

	if err := plotutil.AddLines(p,
		"Drag Force (N)", drag,
		"Power (W)", power,
	); err != nil {
		return nil, err
	}
	return p, nil
}

// WriteRangePlot renders the sweep chart as PNG.
func WriteRangePlot(w io.Writer, data *aero.SweepResult) error {
	p, err := RangePlot(data)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(plotWidth, plotHeight, "png")
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}

// PlotRange saves the sweep chart; the image format follows the extension
// (png, svg, pdf ...).
func PlotRange(path string, data *aero.SweepResult) error {
	p, err := RangePlot(data)
	if err != nil {
		return err
	}
	return p.Save(plotWidth, plotHeight, path)
}

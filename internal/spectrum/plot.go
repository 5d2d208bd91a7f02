package spectrum

import (
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// Series is one named curve. When X is nil the sample index is used.
type Series struct {
	Name string
	X    []float64
	Y    []float64
}

// LinePlot draws every series as a line on a shared set of axes.
func LinePlot(title, xLabel, yLabel string, series ...Series) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel

	for i, s := range series {
		pts := make(plotter.XYs, len(s.Y))
		for j, y := range s.Y {
			pts[j].X = float64(j)
			if s.X != nil {
				pts[j].X = s.X[j]
			}
			pts[j].Y = y
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, err
		}
		line.Color = plotutil.Color(i)
		p.Add(line)
		p.Legend.Add(s.Name, line)
	}
	p.Legend.Top = true
	return p, nil
}

// WritePNG renders p as a 6x4 inch PNG.
func WritePNG(w io.Writer, p *plot.Plot) error {
	wt, err := p.WriterTo(6*vg.Inch, 4*vg.Inch, "png")
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}

package waveplot

import (
	"bytes"
	"fmt"
	"image"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/OpenCircuitLab/SpiceTrace/pkg/analysis"
)

// Series is one named line of a time-domain plot.
type Series struct {
	Name string
	X    []float64
	Y    []float64
}

// DefaultWidth and DefaultHeight size saved and rasterized plots.
const (
	DefaultWidth  = 8 * vg.Inch
	DefaultHeight = 4 * vg.Inch
)

// TimePlot builds the time-domain line plot for one or more traces.
func TimePlot(title string, series ...Series) (*plot.Plot, error) {
	if len(series) == 0 {
		return nil, fmt.Errorf("waveplot: no series to plot")
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Time (s)"
	p.Y.Label.Text = "Voltage (V)"
	p.Add(plotter.NewGrid())

	for _, s := range series {
		if len(s.X) != len(s.Y) {
			return nil, fmt.Errorf("waveplot: series %q axis length %d != value length %d", s.Name, len(s.X), len(s.Y))
		}
		xys := make(plotter.XYs, len(s.X))
		for i := range s.X {
			xys[i].X = s.X[i]
			xys[i].Y = s.Y[i]
		}
		line, err := plotter.NewLine(xys)
		if err != nil {
			return nil, fmt.Errorf("waveplot: %w", err)
		}
		p.Add(line)
		if len(series) > 1 {
			p.Legend.Add(s.Name, line)
		}
	}
	return p, nil
}

// SpectrumPlot builds the magnitude-vs-frequency plot on a log frequency
// axis, clipped to [lo, hi] Hz. The caller picks the band; the RC bench
// uses 1 kHz to 200 MHz.
func SpectrumPlot(points []analysis.Point, lo, hi float64) (*plot.Plot, error) {
	if lo <= 0 || hi <= lo {
		return nil, fmt.Errorf("waveplot: bad frequency band [%g, %g]", lo, hi)
	}

	var xys plotter.XYs
	for _, pt := range points {
		if pt.Frequency < lo || pt.Frequency > hi {
			continue
		}
		xys = append(xys, plotter.XY{X: pt.Frequency, Y: pt.Magnitude})
	}
	if len(xys) == 0 {
		return nil, fmt.Errorf("waveplot: no spectrum points inside [%g, %g] Hz", lo, hi)
	}

	p := plot.New()
	p.Title.Text = "FFT Magnitude"
	p.X.Label.Text = "Frequency (Hz)"
	p.Y.Label.Text = "Magnitude"
	p.X.Scale = plot.LogScale{}
	p.X.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Add(plotter.NewGrid())

	line, err := plotter.NewLine(xys)
	if err != nil {
		return nil, fmt.Errorf("waveplot: %w", err)
	}
	p.Add(line)
	return p, nil
}

// Save writes a plot to disk; the format follows the file extension
// (.png, .svg, .pdf).
func Save(p *plot.Plot, path string) error {
	if err := p.Save(DefaultWidth, DefaultHeight, path); err != nil {
		return fmt.Errorf("waveplot: save %s: %w", path, err)
	}
	return nil
}

// Image rasterizes a plot for inline display.
func Image(p *plot.Plot) image.Image {
	c := vgimg.New(DefaultWidth, DefaultHeight)
	p.Draw(draw.New(c))
	return c.Image()
}

// PNG rasterizes a plot to PNG bytes for embedding in reports.
func PNG(p *plot.Plot) ([]byte, error) {
	c := vgimg.New(DefaultWidth, DefaultHeight)
	p.Draw(draw.New(c))

	var buf bytes.Buffer
	png := vgimg.PngCanvas{Canvas: c}
	if _, err := png.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("waveplot: encode png: %w", err)
	}
	return buf.Bytes(), nil
}

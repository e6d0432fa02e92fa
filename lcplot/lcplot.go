// Package lcplot renders an L-curve: log10 roughness against log10 residual
// with the selected corner marked.
package lcplot

import (
	"fmt"
	"image/color"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/katalvlaran/daemkit/core"
	"github.com/katalvlaran/daemkit/model"
)

// Options size and title the figure.
type Options struct {
	Title  string
	Width  vg.Length
	Height vg.Length
}

// DefaultOptions returns a 5×4 inch figure.
func DefaultOptions() Options {
	return Options{Title: "L-curve", Width: 5 * vg.Inch, Height: 4 * vg.Inch}
}

var cornerColor = color.RGBA{R: 200, G: 30, B: 30, A: 255}

// New builds the plot for lc.
func New(lc *model.LCurve, o Options) (*plot.Plot, error) {
	if lc == nil || len(lc.LogResidual) == 0 {
		return nil, core.ArgumentError("lcplot.New", "lcurve", "empty", "must have points")
	}
	if len(lc.LogRoughness) != len(lc.LogResidual) {
		return nil, core.LengthError("lcplot.New", "LogRoughness", len(lc.LogRoughness), len(lc.LogResidual))
	}
	if lc.Best < 0 || lc.Best >= len(lc.LogResidual) || len(lc.Points) != len(lc.LogResidual) {
		return nil, core.ArgumentError("lcplot.New", "lcurve.Best", lc.Best, "must index a sweep point")
	}

	xys := make(plotter.XYs, len(lc.LogResidual))
	for i := range xys {
		xys[i].X, xys[i].Y = lc.LogResidual[i], lc.LogRoughness[i]
	}
	line, err := plotter.NewLine(xys)
	if err != nil {
		return nil, fmt.Errorf("lcplot.New: %w", err)
	}
	line.Width = vg.Points(1.5)

	corner, err := plotter.NewScatter(plotter.XYs{xys[lc.Best]})
	if err != nil {
		return nil, fmt.Errorf("lcplot.New: %w", err)
	}
	corner.GlyphStyle.Shape = draw.CircleGlyph{}
	corner.GlyphStyle.Radius = vg.Points(4)
	corner.GlyphStyle.Color = cornerColor

	p := plot.New()
	p.Title.Text = o.Title
	p.X.Label.Text = "log10 residual norm ‖Af − g‖"
	p.Y.Label.Text = "log10 roughness norm ‖Rf‖"
	p.Add(plotter.NewGrid(), line, corner)
	p.Legend.Add("L-curve", line)
	p.Legend.Add(fmt.Sprintf("ω = %.3g", lc.BestOmega()), corner)
	p.Legend.Top = true

	return p, nil
}

// Render writes lc to w in format ("png", "svg", "pdf", ...).
func Render(w io.Writer, lc *model.LCurve, format string, o Options) error {
	p, err := New(lc, o)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(o.Width, o.Height, format)
	if err != nil {
		return fmt.Errorf("lcplot.Render: %w", err)
	}
	_, err = wt.WriteTo(w)

	return err
}

// Save renders lc to path on fs; the extension selects the format.
func Save(fs afero.Fs, path string, lc *model.LCurve, o Options) error {
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if format == "" {
		return core.ArgumentError("lcplot.Save", "path", path, "needs an extension")
	}
	f, err := fs.Create(path)
	if err != nil {
		return fmt.Errorf("lcplot.Save: %w", err)
	}
	if err = Render(f, lc, format, o); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}

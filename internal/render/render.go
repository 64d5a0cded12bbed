// Package render draws FTLE scalar fields as filled contour images using
// gonum/plot.
package render

import (
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/george9932/LCS-FTLE-Optimized/internal/field"
)

// Renderer holds the plotting settings shared by every frame.
type Renderer struct {
	Levels int     // number of filled color bands
	SizeCM float64 // plot width in centimeters
}

func New(levels int, sizeCM float64) *Renderer {
	return &Renderer{Levels: levels, SizeCM: sizeCM}
}

// fieldGrid adapts a ScalarField to plotter.GridXYZ.
type fieldGrid struct {
	f *field.ScalarField
	x []float64
	y []float64
}

func newFieldGrid(f *field.ScalarField) fieldGrid {
	return fieldGrid{f: f, x: f.Grid.XCoords(), y: f.Grid.YCoords()}
}

func (g fieldGrid) Dims() (c, r int)   { return g.f.Grid.NX, g.f.Grid.NY }
func (g fieldGrid) X(c int) float64    { return g.x[c] }
func (g fieldGrid) Y(r int) float64    { return g.y[r] }
func (g fieldGrid) Z(c, r int) float64 { return g.f.At(c, r) }

// RenderField writes one field as a PNG: quantized filled bands over the
// domain, a title, and a color bar underneath. The canvas keeps the
// domain's aspect ratio so cells stay square.
func (r *Renderer) RenderField(f *field.ScalarField, title, outPath string) error {
	grid := newFieldGrid(f)

	min, max, err := f.MinMax()
	if err != nil {
		return err
	}
	if min == max {
		max = min + 1e-12 // flat field, avoid a degenerate color range
	}

	cm := moreland.Kindlmann()
	cm.SetMin(min)
	cm.SetMax(max)
	pal := cm.Palette(r.Levels)

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"
	p.Add(plotter.NewHeatMap(grid, pal))

	cb := plot.New()
	cb.HideY()
	cb.X.Padding = 0
	cb.Add(&plotter.ColorBar{ColorMap: cm})

	g := f.Grid
	aspect := (g.YMax - g.YMin) / (g.XMax - g.XMin)
	width := vg.Length(r.SizeCM) * vg.Centimeter
	height := width*vg.Length(aspect) + 3*vg.Centimeter

	img := vgimg.New(width, height)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows: 2,
		Cols: 1,
		PadX: vg.Millimeter,
		PadY: vg.Millimeter,
	}
	// The color bar strip stays short regardless of the field's aspect.
	canvases := plot.Align([][]*plot.Plot{{p}, {cb}}, tiles, dc)
	barHeight := vg.Length(1.5) * vg.Centimeter
	canvases[0][0].Rectangle.Min.Y = barHeight
	canvases[1][0].Rectangle.Max.Y = barHeight
	p.Draw(canvases[0][0])
	cb.Draw(canvases[1][0])

	w, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer w.Close()

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(w); err != nil {
		return err
	}
	return nil
}

package intarsia

import (
	"fmt"
	"image"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Annotator decorates a finished pattern, typically with stitch and row
// axes. Failures must be reported as errors wrapping ErrRender.
type Annotator interface {
	Annotate(img image.Image, grid GridSpec) (image.Image, error)
}

// PlotAnnotator draws the pattern on a gonum plot whose axes count
// stitches (x) and rows (y, from the bottom).
type PlotAnnotator struct {
	// Title is drawn above the chart when non-empty.
	Title string
	// MaxTicks caps the number of labelled ticks per axis. Zero means 20.
	MaxTicks int
	// Margin is the space in pixels reserved around the image for the
	// axes. Zero means 60.
	Margin int
}

// Annotate implements Annotator.
func (a PlotAnnotator) Annotate(img image.Image, grid GridSpec) (out image.Image, err error) {
	b := img.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("%w: empty image", ErrRender)
	}
	if grid.Width <= 0 || grid.Height <= 0 {
		return nil, fmt.Errorf("%w: grid %s", ErrRender, grid)
	}
	// gonum/plot reports some drawing failures, missing fonts among
	// them, by panicking.
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, fmt.Errorf("%w: %v", ErrRender, r)
		}
	}()

	maxTicks := a.MaxTicks
	if maxTicks <= 0 {
		maxTicks = 20
	}
	margin := a.Margin
	if margin <= 0 {
		margin = 60
	}

	p := plot.New()
	p.Title.Text = a.Title
	p.X.Label.Text = "stitch"
	p.Y.Label.Text = "row"
	p.X.Min, p.X.Max = 0, float64(grid.Width)
	p.Y.Min, p.Y.Max = 0, float64(grid.Height)
	p.X.Tick.Marker = cellTicks(grid.Width, maxTicks)
	p.Y.Tick.Marker = cellTicks(grid.Height, maxTicks)
	p.Add(plotter.NewImage(img, 0, 0, float64(grid.Width), float64(grid.Height)))

	// 72 DPI makes one point one pixel.
	c := vgimg.NewWith(
		vgimg.UseWH(vg.Length(b.Dx()+2*margin), vg.Length(b.Dy()+2*margin)),
		vgimg.UseDPI(72),
	)
	p.Draw(draw.New(c))
	return c.Image(), nil
}

// cellTicks labels cell boundaries 0..n, thinned to at most limit labels.
func cellTicks(n, limit int) plot.ConstantTicks {
	step := max(1, (n+limit-1)/limit)
	var ticks []plot.Tick
	for v := 0; v <= n; v++ {
		t := plot.Tick{Value: float64(v)}
		if v%step == 0 || v == n {
			t.Label = strconv.Itoa(v)
		}
		ticks = append(ticks, t)
	}
	return ticks
}

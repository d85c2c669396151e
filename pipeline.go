package intarsia

import (
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/wbrown/intarsia/imageutil"
)

// Pipeline converts photographs into patterns. A Pipeline holds no
// per-run state and may be reused.
type Pipeline struct {
	Extractor Extractor
	Annotator Annotator
	Axes      bool
	// Title is drawn above the axes by a PlotAnnotator that has no title
	// of its own. Other annotators ignore it.
	Title string
}

// PipelineOption is a functional option for configuring a Pipeline.
type PipelineOption func(*Pipeline)

// NewPipeline creates a new Pipeline with the given options.
// Default values: Extractor=DominantExtractor{}, Annotator=PlotAnnotator{},
// Axes=false.
func NewPipeline(opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		Extractor: DominantExtractor{},
		Annotator: PlotAnnotator{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// WithExtractor sets the palette extractor.
func WithExtractor(e Extractor) PipelineOption {
	return func(p *Pipeline) {
		p.Extractor = e
	}
}

// WithAxes enables or disables the axis annotation stage.
func WithAxes(enabled bool) PipelineOption {
	return func(p *Pipeline) {
		p.Axes = enabled
	}
}

// WithAnnotator sets the annotator used when axes are enabled.
func WithAnnotator(a Annotator) PipelineOption {
	return func(p *Pipeline) {
		p.Annotator = a
	}
}

// WithTitle sets the chart title drawn by a PlotAnnotator. It may be
// given before or after WithAnnotator.
func WithTitle(title string) PipelineOption {
	return func(p *Pipeline) {
		p.Title = title
	}
}

// annotator returns the Annotator Run uses, with the pipeline title filled
// in for a PlotAnnotator.
func (p *Pipeline) annotator() Annotator {
	if pa, ok := p.Annotator.(PlotAnnotator); ok && pa.Title == "" {
		pa.Title = p.Title
		return pa
	}
	return p.Annotator
}

// Result holds the buffers produced by one run. Every buffer is distinct;
// none aliases the input image.
type Result struct {
	Grid GridSpec
	// Down is the grid-sized mosaic, one pixel per stitch.
	Down *imageutil.RGBAImage
	// Up is Down scaled back to the original size.
	Up *imageutil.RGBAImage
	// Quantized is Up recolored with Palette.
	Quantized *imageutil.RGBAImage
	// Processed is the final pattern: Quantized with the grid and, if
	// enabled, axes.
	Processed *imageutil.RGBAImage
	Palette   Palette
	Chart     *Chart
}

// Run converts original into a pattern of grid cells using colors palette
// entries. The stages run strictly in order:
//
//  1. blur, downsample to the grid and upsample back (ResampleDownUp)
//  2. extract a palette from the downsampled mosaic (never the original)
//  3. quantize the upsampled mosaic to that palette
//  4. overlay the stitch grid
//  5. optionally annotate with axes
//
// The first failing stage aborts the run and no Result is returned.
func (p *Pipeline) Run(original image.Image, grid GridSpec, colors int) (*Result, error) {
	start := time.Now()
	if colors > MaxPaletteSize {
		return nil, fmt.Errorf("%w: requested %d colors, at most %d allowed",
			ErrPaletteTooLarge, colors, MaxPaletteSize)
	}
	if colors <= 0 {
		return nil, fmt.Errorf("%w: requested %d colors", ErrPaletteTooSmall, colors)
	}

	buf := imageutil.RGBAImageFromImage(original)
	Logf("pattern: %dx%d image, grid %s, %d colors",
		buf.Width(), buf.Height(), grid, colors)

	down, up, err := ResampleDownUp(buf, grid)
	if err != nil {
		return nil, err
	}

	extracted, err := p.Extractor.Extract(down.RGBA, max(colors, DefaultExtractColors))
	if err != nil {
		return nil, fmt.Errorf("extracting palette: %w", err)
	}
	palette, err := SelectPalette(extracted, colors)
	if err != nil {
		return nil, err
	}
	Logf("pattern: palette %v", palette.Hex())

	quantized := up.Clone()
	if err := Quantize(quantized, palette); err != nil {
		return nil, err
	}
	// One pixel per stitch; the quantized enlargement holds the same
	// colors mapped through the same palette.
	chart, err := BuildChart(down, grid, palette)
	if err != nil {
		return nil, err
	}

	processed := quantized.Clone()
	if err := DrawGrid(processed, grid); err != nil {
		return nil, err
	}

	if p.Axes {
		annotated, err := p.annotator().Annotate(processed.RGBA, grid)
		if err != nil {
			if !errors.Is(err, ErrRender) {
				err = fmt.Errorf("%w: %w", ErrRender, err)
			}
			return nil, fmt.Errorf("annotating axes: %w", err)
		}
		processed = imageutil.RGBAImageFromImage(annotated)
	}

	Logf("pattern: done in %v", time.Since(start))
	return &Result{
		Grid:      grid,
		Down:      down,
		Up:        up,
		Quantized: quantized,
		Processed: processed,
		Palette:   palette,
		Chart:     chart,
	}, nil
}

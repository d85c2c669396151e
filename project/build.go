package project

import (
	"fmt"

	"github.com/wbrown/intarsia"
)

// BuildOptions configures Store.Build.
type BuildOptions struct {
	Grid   intarsia.GridSpec
	Colors int
	Axes   bool
	Method intarsia.Method
	// KeepStages also writes resized_down.png, resized_up.png and
	// quantized.png.
	KeepStages bool
	// Pipeline overrides the pipeline built from Method and Axes.
	Pipeline *intarsia.Pipeline
}

func (o BuildOptions) pipeline(title string) (*intarsia.Pipeline, error) {
	if o.Pipeline != nil {
		return o.Pipeline, nil
	}
	extractor, err := intarsia.NewExtractor(o.Method)
	if err != nil {
		return nil, err
	}
	return intarsia.NewPipeline(
		intarsia.WithExtractor(extractor),
		intarsia.WithAxes(o.Axes),
		intarsia.WithTitle(title),
	), nil
}

// Build creates a project, imports the image at imagePath and runs the
// pattern pipeline on it. If any step fails the project directory is
// removed again and the error returned.
func (s *Store) Build(name, imagePath string, opts BuildOptions) (p *Project, err error) {
	pipeline, err := opts.pipeline(name)
	if err != nil {
		return nil, err
	}

	p, err = s.Create(name)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err == nil {
			return
		}
		if rmErr := p.Remove(); rmErr != nil {
			intarsia.Logf("project %s: rollback failed: %v", name, rmErr)
		}
		p = nil
	}()

	if err = p.ImportImage(imagePath); err != nil {
		return p, err
	}
	res, err := pipeline.Run(p.Original.RGBA, opts.Grid, opts.Colors)
	if err != nil {
		return p, fmt.Errorf("processing %s: %w", name, err)
	}

	p.Manifest.Axes = opts.Axes
	p.Manifest.Method = string(opts.Method)
	if p.Manifest.Method == "" {
		p.Manifest.Method = string(intarsia.MethodDominant)
	}
	if err = p.Apply(res, opts.KeepStages); err != nil {
		return p, err
	}
	return p, nil
}

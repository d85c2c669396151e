// Package intarsia turns photographs into crochet and cross-stitch
// patterns. A pattern is the photograph blurred, reduced to one pixel per
// stitch, blown back up into solid blocks, recolored with a small palette
// and overlaid with a stitch grid.
package intarsia

import (
	"errors"
	"fmt"
	"log"

	"github.com/wbrown/intarsia/imageutil"
)

const (
	// BlurSigma is the Gaussian blur applied before downsampling.
	BlurSigma = 3.0

	// MaxPaletteSize is the largest palette a pattern may use.
	MaxPaletteSize = 256

	// DefaultExtractColors is how many candidate colors are requested
	// from an Extractor when the pattern needs fewer.
	DefaultExtractColors = 10
)

var (
	// ErrInvalidDimensions reports a zero, negative or out-of-range grid.
	ErrInvalidDimensions = errors.New("invalid grid dimensions")

	// ErrPaletteTooSmall reports a requested palette size of zero or an
	// extractor that returned fewer colors than requested.
	ErrPaletteTooSmall = errors.New("palette too small")

	// ErrPaletteTooLarge reports a requested palette size above
	// MaxPaletteSize.
	ErrPaletteTooLarge = errors.New("palette too large")

	// ErrCodec reports an image that could not be decoded or encoded.
	ErrCodec = errors.New("image codec failure")

	// ErrRender reports a failure of the axis annotation stage.
	ErrRender = errors.New("render failure")
)

// Logf is the package-level diagnostic logger. It defaults to log.Printf
// and may be replaced with SetLogger.
var Logf func(format string, v ...interface{}) = log.Printf

// SetLogger replaces the package logger. Passing nil mutes it.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}

// RGB is an 8-bit per channel color.
type RGB = imageutil.RGB

// GridSpec is the number of mosaic cells (stitches) across and down. The
// resampler and the grid overlay must be given the same GridSpec or the
// lines will not sit on the block boundaries.
type GridSpec struct {
	Width  int
	Height int
}

func (g GridSpec) String() string {
	return fmt.Sprintf("%dx%d", g.Width, g.Height)
}

// Validate checks the grid against an image of the given size. Both grid
// dimensions must be positive and no larger than the image.
func (g GridSpec) Validate(width, height int) error {
	if g.Width <= 0 || g.Height <= 0 {
		return fmt.Errorf("%w: grid %s must be positive", ErrInvalidDimensions, g)
	}
	if g.Width > width || g.Height > height {
		return fmt.Errorf("%w: grid %s exceeds image %dx%d",
			ErrInvalidDimensions, g, width, height)
	}
	return nil
}

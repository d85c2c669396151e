package intarsia

import (
	"fmt"

	"github.com/wbrown/intarsia/imageutil"
)

// NearestIndex returns the index of the palette color closest to c. When
// several entries are equally close the first one wins, so the result is
// reproducible for a given palette order. The palette must not be empty.
func NearestIndex(c RGB, palette Palette) int {
	best := 0
	bestDist := distanceSquared(c, palette[0])
	for i := 1; i < len(palette); i++ {
		if d := distanceSquared(c, palette[i]); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// Quantize replaces every pixel of img, in place, with its nearest palette
// color. Output pixels are opaque.
//
// The search is linear in the palette for every distinct input color, so
// the cost is O(width*height*K) in the worst case. Mosaic images have few
// distinct colors, which the per-call memo exploits; a photograph-sized
// input with a 256 color palette is the slow case.
func Quantize(img *imageutil.RGBAImage, palette Palette) error {
	if len(palette) == 0 {
		return fmt.Errorf("%w: empty palette", ErrPaletteTooSmall)
	}

	memo := make(map[RGB]RGB)
	for y := 0; y < img.Height(); y++ {
		for x := 0; x < img.Width(); x++ {
			c := img.GetRGB(x, y)
			q, ok := memo[c]
			if !ok {
				q = palette[NearestIndex(c, palette)]
				memo[c] = q
			}
			img.SetRGB(x, y, q)
		}
	}
	return nil
}

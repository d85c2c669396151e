package imageutil

import (
	"golang.org/x/image/draw"
)

// Resize scales img to exactly width x height with nearest-neighbor
// sampling, so every output pixel is a copy of one source pixel. Output
// pixel x samples source column ((2x+1)*srcWidth) / (2*width), and likewise
// for rows.
func Resize(img *RGBAImage, width, height int) *RGBAImage {
	dst := NewRGBAImage(width, height)
	// Src rather than Over so transparent source pixels copy verbatim.
	draw.NearestNeighbor.Scale(dst.RGBA, dst.Bounds(), img.RGBA, img.Bounds(), draw.Src, nil)
	return dst
}

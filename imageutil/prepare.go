package imageutil

import (
	"github.com/disintegration/gift"
)

// Blur applies a Gaussian blur with the given sigma and returns a new image
// of the same size.
func Blur(img *RGBAImage, sigma float32) *RGBAImage {
	g := gift.New(gift.GaussianBlur(sigma))
	dst := NewRGBAImage(img.Width(), img.Height())
	g.Draw(dst.RGBA, img.RGBA)
	return dst
}

// DownUp prepares a mosaic from img.
//
// The function:
// 1. Blurs the image with the given sigma to suppress aliasing
// 2. Resizes to cols x rows with nearest-neighbor sampling
// 3. Resizes back to the original size, again nearest-neighbor, so every
// small pixel becomes a solid rectangular block
//
// Returns:
//   - small: the cols x rows image, one pixel per mosaic cell
//   - blocky: the mosaic at the original resolution
func DownUp(img *RGBAImage, cols, rows int, sigma float32) (small, blocky *RGBAImage) {
	blurred := Blur(img, sigma)
	small = Resize(blurred, cols, rows)
	blocky = Resize(small, img.Width(), img.Height())
	return small, blocky
}

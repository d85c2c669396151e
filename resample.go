package intarsia

import (
	"github.com/wbrown/intarsia/imageutil"
)

// ResampleDownUp blurs img, shrinks it to one pixel per grid cell and
// scales it back to its original size with nearest-neighbor sampling. The
// result has at most grid.Width*grid.Height uniform rectangular blocks.
//
// small is the grid-sized mosaic and blocky the full-size one; img is not
// modified.
func ResampleDownUp(img *imageutil.RGBAImage, grid GridSpec) (small, blocky *imageutil.RGBAImage, err error) {
	if err := grid.Validate(img.Width(), img.Height()); err != nil {
		return nil, nil, err
	}
	small, blocky = imageutil.DownUp(img, grid.Width, grid.Height, BlurSigma)
	return small, blocky, nil
}

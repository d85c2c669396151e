package intarsia

import (
	"image"

	"github.com/wbrown/intarsia/imageutil"
)

// gridColor is the color of grid lines.
var gridColor = RGB{}

// CellSize returns the pixel pitch of the grid on an image of the given
// size. Integer division keeps lines on fixed pixel columns and rows; any
// remainder ends up in the last cell.
func (g GridSpec) CellSize(width, height int) (cellW, cellH int) {
	return width / g.Width, height / g.Height
}

// DrawGrid draws 1px black lines over img in place: grid.Height horizontal
// lines at y = i*cellH and grid.Width vertical lines at x = j*cellW. The
// first line of each set lies on the image border; no closing line is drawn
// on the far edges.
func DrawGrid(img *imageutil.RGBAImage, grid GridSpec) error {
	width, height := img.Width(), img.Height()
	if err := grid.Validate(width, height); err != nil {
		return err
	}
	cellW, cellH := grid.CellSize(width, height)

	for i := 0; i < grid.Height; i++ {
		y := i * cellH
		img.FillRect(image.Rect(0, y, width, y+1), gridColor)
	}
	for j := 0; j < grid.Width; j++ {
		x := j * cellW
		img.FillRect(image.Rect(x, 0, x+1, height), gridColor)
	}
	return nil
}

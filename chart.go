package intarsia

import (
	"fmt"
	"strings"

	"github.com/wbrown/intarsia/imageutil"
)

// Chart is the stitch-level view of a pattern: one palette index per
// mosaic cell plus the number of stitches worked in each color.
type Chart struct {
	Grid    GridSpec
	Palette Palette
	// Cells is indexed [row][column], top row first.
	Cells  [][]int
	Counts []int
}

// BuildChart reads the palette index of every mosaic cell from a quantized
// image. img is either the grid-sized mosaic or a nearest-neighbor
// enlargement of it; cell (i, j) is read where the enlargement copied it,
// at ((2j+1)*width)/(2*grid.Width) and ((2i+1)*height)/(2*grid.Height).
// On a grid-sized image that is pixel (j, i).
func BuildChart(img *imageutil.RGBAImage, grid GridSpec, palette Palette) (*Chart, error) {
	width, height := img.Width(), img.Height()
	if err := grid.Validate(width, height); err != nil {
		return nil, err
	}
	if len(palette) == 0 {
		return nil, fmt.Errorf("%w: empty palette", ErrPaletteTooSmall)
	}

	chart := &Chart{
		Grid:    grid,
		Palette: palette,
		Cells:   make([][]int, grid.Height),
		Counts:  make([]int, len(palette)),
	}
	for i := range chart.Cells {
		y := (2*i + 1) * height / (2 * grid.Height)
		row := make([]int, grid.Width)
		for j := range row {
			x := (2*j + 1) * width / (2 * grid.Width)
			idx := NearestIndex(img.GetRGB(x, y), palette)
			row[j] = idx
			chart.Counts[idx]++
		}
		chart.Cells[i] = row
	}
	return chart, nil
}

// Instructions returns row-by-row stitch instructions starting at fromRow.
// Rows are numbered from 1 at the bottom of the chart, the way a flat piece
// is worked: odd rows read right to left, even rows left to right. Each
// line run-length encodes the row using palette letters, e.g.
// "Row 3: 4xB 2xA 4xB". A fromRow below 1 starts at the first row.
func (c *Chart) Instructions(fromRow int) []string {
	fromRow = max(fromRow, 1)
	var lines []string
	for r := fromRow; r <= c.Grid.Height; r++ {
		cells := c.Cells[c.Grid.Height-r]
		order := make([]int, len(cells))
		for k := range cells {
			if r%2 == 1 {
				order[k] = cells[len(cells)-1-k]
			} else {
				order[k] = cells[k]
			}
		}
		lines = append(lines, fmt.Sprintf("Row %d: %s", r, runs(order)))
	}
	return lines
}

// Legend returns one line per palette color: letter, hex and stitch count.
func (c *Chart) Legend() []string {
	hex := c.Palette.Hex()
	lines := make([]string, len(c.Palette))
	for i := range c.Palette {
		lines[i] = fmt.Sprintf("%s  %s  %d stitches", Label(i), hex[i], c.Counts[i])
	}
	return lines
}

func runs(indices []int) string {
	var parts []string
	for k := 0; k < len(indices); {
		n := 1
		for k+n < len(indices) && indices[k+n] == indices[k] {
			n++
		}
		parts = append(parts, fmt.Sprintf("%dx%s", n, Label(indices[k])))
		k += n
	}
	return strings.Join(parts, " ")
}

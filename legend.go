package intarsia

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	legendSwatch   = 24
	legendPadding  = 8
	legendWidth    = 320
	legendFontSize = 14
)

// loadLegendFont parses the embedded Go Regular TrueType font.
func loadLegendFont() (*truetype.Font, error) {
	f, err := freetype.ParseFont(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing legend font: %v", ErrRender, err)
	}
	return f, nil
}

// RenderLegend draws the color key of a chart: one row per palette entry
// with a swatch, the chart letter, the hex value and the stitch count.
func RenderLegend(chart *Chart) (*image.RGBA, error) {
	ttf, err := loadLegendFont()
	if err != nil {
		return nil, err
	}

	rowH := legendSwatch + legendPadding
	height := legendPadding + len(chart.Palette)*rowH
	img := image.NewRGBA(image.Rect(0, 0, legendWidth, height))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(ttf)
	ctx.SetFontSize(legendFontSize)
	ctx.SetClip(img.Bounds())
	ctx.SetDst(img)
	ctx.SetSrc(image.Black)
	ctx.SetHinting(font.HintingFull)

	lines := chart.Legend()
	for i, c := range chart.Palette {
		top := legendPadding + i*rowH
		swatch := image.Rect(legendPadding, top, legendPadding+legendSwatch, top+legendSwatch)
		// Outline the swatch so white entries stay visible.
		draw.Draw(img, swatch, image.NewUniform(color.Black), image.Point{}, draw.Src)
		draw.Draw(img, swatch.Inset(1), image.NewUniform(c.ToColor()), image.Point{}, draw.Src)

		baseline := top + (legendSwatch+legendFontSize)/2 - 2
		pt := freetype.Pt(2*legendPadding+legendSwatch, baseline)
		if _, err := ctx.DrawString(lines[i], pt); err != nil {
			return nil, fmt.Errorf("%w: drawing legend text: %v", ErrRender, err)
		}
	}
	return img, nil
}

package intarsia

import (
	"fmt"
	"image"
	"math"
	"slices"
	"strings"

	"github.com/cenkalti/dominantcolor"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
)

// Palette is an ordered list of distinct colors. The index of a color is
// its handle in charts and legends.
type Palette []RGB

// SelectPalette returns the first k colors of an extractor's ranked output.
// Fewer than k extracted colors is an error; the palette is never padded.
func SelectPalette(extracted []RGB, k int) (Palette, error) {
	if k <= 0 {
		return nil, fmt.Errorf("%w: requested %d colors", ErrPaletteTooSmall, k)
	}
	if k > MaxPaletteSize {
		return nil, fmt.Errorf("%w: requested %d colors, at most %d allowed",
			ErrPaletteTooLarge, k, MaxPaletteSize)
	}
	if len(extracted) < k {
		return nil, fmt.Errorf("%w: requested %d colors, extractor found %d",
			ErrPaletteTooSmall, k, len(extracted))
	}
	return slices.Clone(Palette(extracted[:k])), nil
}

// Hex returns the palette as "#rrggbb" strings.
func (p Palette) Hex() []string {
	out := make([]string, len(p))
	for i, c := range p {
		cf, _ := colorful.MakeColor(c.ToColor())
		out[i] = cf.Hex()
	}
	return out
}

// ParsePalette parses "#rrggbb" strings into a Palette.
func ParsePalette(hex []string) (Palette, error) {
	out := make(Palette, 0, len(hex))
	for _, h := range hex {
		c, err := colorful.Hex(h)
		if err != nil {
			return nil, fmt.Errorf("error parsing color %s: %w", h, err)
		}
		r, g, b := c.RGB255()
		out = append(out, RGB{R: r, G: g, B: b})
	}
	return out, nil
}

// Label returns the chart letter for palette index i: A..Z, then AA, AB...
func Label(i int) string {
	var sb strings.Builder
	for n := i + 1; n > 0; n = (n - 1) / 26 {
		sb.WriteByte(byte('A' + (n-1)%26))
	}
	b := []byte(sb.String())
	slices.Reverse(b)
	return string(b)
}

// Method names a palette extraction algorithm.
type Method string

const (
	// MethodDominant ranks colors by cluster weight using dominantcolor.
	MethodDominant Method = "dominant"

	// MethodKMeans ranks k-means cluster centres by population.
	MethodKMeans Method = "kmeans"
)

// Extractor samples an image and returns up to n representative colors,
// most representative first.
type Extractor interface {
	Extract(img image.Image, n int) ([]RGB, error)
}

// NewExtractor returns the Extractor for a method name.
func NewExtractor(method Method) (Extractor, error) {
	switch method {
	case MethodDominant, "":
		return DominantExtractor{}, nil
	case MethodKMeans:
		return KMeansExtractor{}, nil
	default:
		return nil, fmt.Errorf("unknown palette method %q, options are %s or %s",
			method, MethodDominant, MethodKMeans)
	}
}

// DominantExtractor extracts colors with dominantcolor's weighted
// clustering. Heavier clusters come first.
type DominantExtractor struct{}

// Extract implements Extractor.
func (DominantExtractor) Extract(img image.Image, n int) ([]RGB, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: requested %d colors", ErrPaletteTooSmall, n)
	}
	found := dominantcolor.FindWeight(img, n)
	slices.SortStableFunc(found, func(a, b dominantcolor.Color) int {
		switch {
		case a.Weight > b.Weight:
			return -1
		case a.Weight < b.Weight:
			return 1
		}
		return 0
	})
	out := make([]RGB, 0, len(found))
	for _, c := range found {
		out = append(out, RGB{R: c.RGBA.R, G: c.RGBA.G, B: c.RGBA.B})
	}
	return distinct(out), nil
}

// KMeansExtractor clusters sampled pixels with k-means. Clusters are
// ranked by population.
type KMeansExtractor struct {
	// MaxSamples caps the number of pixels fed to k-means. Zero means
	// 12000.
	MaxSamples int
}

// Extract implements Extractor.
func (e KMeansExtractor) Extract(img image.Image, n int) ([]RGB, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: requested %d colors", ErrPaletteTooSmall, n)
	}
	maxSamples := e.MaxSamples
	if maxSamples <= 0 {
		maxSamples = 12000
	}

	b := img.Bounds()
	width, height := b.Dx(), b.Dy()
	if width == 0 || height == 0 {
		return nil, nil
	}

	// Subsample to keep kmeans tractable on large images.
	step := 1
	if width*height > maxSamples {
		step = int(math.Sqrt(float64(width*height)/float64(maxSamples))) + 1
	}

	dataset := make(clusters.Observations, 0, min(width*height, maxSamples))
	for y := b.Min.Y; y < b.Max.Y; y += step {
		for x := b.Min.X; x < b.Max.X; x += step {
			r16, g16, b16, a16 := img.At(x, y).RGBA()
			if a16 == 0 {
				continue
			}
			dataset = append(dataset, clusters.Coordinates{
				float64(r16) / 65535.0,
				float64(g16) / 65535.0,
				float64(b16) / 65535.0,
			})
		}
	}
	if len(dataset) == 0 {
		return nil, nil
	}

	cc, err := kmeans.New().Partition(dataset, min(n, len(dataset)))
	if err != nil {
		return nil, fmt.Errorf("kmeans: %w", err)
	}

	// Most populated clusters first.
	slices.SortStableFunc(cc, func(a, b clusters.Cluster) int {
		return len(b.Observations) - len(a.Observations)
	})

	out := make([]RGB, 0, len(cc))
	for _, c := range cc {
		if len(c.Observations) == 0 || len(c.Center) < 3 {
			continue
		}
		col := colorful.Color{R: c.Center[0], G: c.Center[1], B: c.Center[2]}.Clamped()
		r, g, b := col.RGB255()
		out = append(out, RGB{R: r, G: g, B: b})
	}
	return distinct(out), nil
}

// distinct drops repeated colors, keeping the first occurrence.
func distinct(colors []RGB) []RGB {
	seen := make(map[RGB]bool, len(colors))
	out := colors[:0]
	for _, c := range colors {
		if seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

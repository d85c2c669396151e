package intarsia

import (
	"image"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wbrown/intarsia/imageutil"
)

func TestSelectPalette(t *testing.T) {
	extracted := []RGB{red, green, blue}

	p, err := SelectPalette(extracted, 2)
	require.NoError(t, err)
	if diff := cmp.Diff(Palette{red, green}, p); diff != "" {
		t.Errorf("SelectPalette mismatch (-want +got):\n%s", diff)
	}

	p[0] = white
	assert.Equal(t, red, extracted[0], "palette aliases extractor output")
}

func TestSelectPaletteErrors(t *testing.T) {
	extracted := []RGB{red, green, blue}
	tests := []struct {
		name    string
		colors  []RGB
		k       int
		wantErr error
	}{
		{"zero", extracted, 0, ErrPaletteTooSmall},
		{"negative", extracted, -3, ErrPaletteTooSmall},
		{"short extraction", extracted, 4, ErrPaletteTooSmall},
		{"nothing extracted", nil, 1, ErrPaletteTooSmall},
		{"over limit", make([]RGB, 300), MaxPaletteSize + 1, ErrPaletteTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SelectPalette(tt.colors, tt.k)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSelectPaletteMaxSize(t *testing.T) {
	p, err := SelectPalette(make([]RGB, MaxPaletteSize), MaxPaletteSize)
	require.NoError(t, err)
	assert.Len(t, p, MaxPaletteSize)
}

func TestLabel(t *testing.T) {
	tests := map[int]string{
		0:   "A",
		1:   "B",
		25:  "Z",
		26:  "AA",
		27:  "AB",
		51:  "AZ",
		52:  "BA",
		701: "ZZ",
		702: "AAA",
	}
	for i, want := range tests {
		assert.Equal(t, want, Label(i), "Label(%d)", i)
	}
}

func TestPaletteHex(t *testing.T) {
	p := Palette{red, RGB{R: 0x12, G: 0xab, B: 0x05}, white}
	hex := p.Hex()
	assert.Equal(t, []string{"#ff0000", "#12ab05", "#ffffff"}, hex)

	parsed, err := ParsePalette(hex)
	require.NoError(t, err)
	if diff := cmp.Diff(p, parsed); diff != "" {
		t.Errorf("ParsePalette mismatch (-want +got):\n%s", diff)
	}

	_, err = ParsePalette([]string{"#ff0000", "not a color"})
	assert.Error(t, err)
}

func TestNewExtractor(t *testing.T) {
	e, err := NewExtractor("")
	require.NoError(t, err)
	assert.IsType(t, DominantExtractor{}, e)

	e, err = NewExtractor(MethodKMeans)
	require.NoError(t, err)
	assert.IsType(t, KMeansExtractor{}, e)

	_, err = NewExtractor("median-cut")
	assert.Error(t, err)
}

func checkExtracted(t *testing.T, colors []RGB, n int) {
	t.Helper()
	require.NotEmpty(t, colors)
	assert.LessOrEqual(t, len(colors), n)
	seen := make(map[RGB]bool)
	for _, c := range colors {
		assert.False(t, seen[c], "duplicate color %v", c)
		seen[c] = true
	}
}

func TestDominantExtractor(t *testing.T) {
	img := imageutil.CreateCheckerboardImage(64, 64, 8)
	for y := 0; y < 32; y++ {
		for x := 0; x < 64; x++ {
			img.SetRGB(x, y, red)
		}
	}
	colors, err := DominantExtractor{}.Extract(img.RGBA, 4)
	require.NoError(t, err)
	checkExtracted(t, colors, 4)

	_, err = DominantExtractor{}.Extract(img.RGBA, 0)
	assert.ErrorIs(t, err, ErrPaletteTooSmall)
}

func TestKMeansExtractor(t *testing.T) {
	img := imageutil.CreateColorBarsImage(80, 10)
	colors, err := KMeansExtractor{}.Extract(img.RGBA, 4)
	require.NoError(t, err)
	checkExtracted(t, colors, 4)

	// Subsampling still yields colors.
	colors, err = KMeansExtractor{MaxSamples: 50}.Extract(img.RGBA, 3)
	require.NoError(t, err)
	checkExtracted(t, colors, 3)

	colors, err = KMeansExtractor{}.Extract(image.NewRGBA(image.Rect(0, 0, 0, 0)), 3)
	require.NoError(t, err)
	assert.Empty(t, colors)
}

func TestDistinct(t *testing.T) {
	got := distinct([]RGB{red, blue, red, green, blue})
	assert.Equal(t, []RGB{red, blue, green}, got)
}

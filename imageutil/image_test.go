package imageutil

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func TestNewRGBAImage(t *testing.T) {
	img := NewRGBAImage(100, 50)
	if img.Width() != 100 {
		t.Errorf("Expected width 100, got %d", img.Width())
	}
	if img.Height() != 50 {
		t.Errorf("Expected height 50, got %d", img.Height())
	}
}

func TestRGBAImageGetSetRGB(t *testing.T) {
	img := NewRGBAImage(10, 10)
	c := RGB{R: 100, G: 150, B: 200}
	img.SetRGB(5, 5, c)

	got := img.GetRGB(5, 5)
	if got != c {
		t.Errorf("Expected %v, got %v", c, got)
	}
	if a := img.RGBAAt(5, 5).A; a != 255 {
		t.Errorf("SetRGB should write opaque pixels, got alpha %d", a)
	}
}

func TestRGBAImageClone(t *testing.T) {
	img := NewRGBAImage(10, 10)
	img.SetRGB(5, 5, RGB{R: 255, G: 0, B: 0})

	clone := img.Clone()
	if clone.GetRGB(5, 5) != img.GetRGB(5, 5) {
		t.Error("Clone should have same pixel values")
	}

	// Modify clone, original should be unchanged
	clone.SetRGB(5, 5, RGB{R: 0, G: 255, B: 0})
	if img.GetRGB(5, 5).G != 0 {
		t.Error("Modifying clone should not affect original")
	}
}

func TestRGBAImageFromImageOffsetBounds(t *testing.T) {
	src := image.NewRGBA(image.Rect(10, 20, 14, 23))
	src.SetRGBA(10, 20, color.RGBA{R: 9, G: 8, B: 7, A: 255})

	img := RGBAImageFromImage(src)
	if img.Bounds().Min != (image.Point{}) {
		t.Fatalf("Expected origin-anchored bounds, got %v", img.Bounds())
	}
	if img.Width() != 4 || img.Height() != 3 {
		t.Errorf("Expected 4x3, got %dx%d", img.Width(), img.Height())
	}
	if got := img.GetRGB(0, 0); got != (RGB{9, 8, 7}) {
		t.Errorf("Expected top-left pixel {9 8 7}, got %v", got)
	}
}

func TestFillRectClips(t *testing.T) {
	img := CreateSolidImage(10, 10, RGB{R: 255})
	img.FillRect(image.Rect(8, -5, 20, 20), RGB{})

	if got := img.GetRGB(9, 0); got != (RGB{}) {
		t.Errorf("Expected black inside rect, got %v", got)
	}
	if got := img.GetRGB(7, 0); got != (RGB{R: 255}) {
		t.Errorf("Expected red outside rect, got %v", got)
	}
}

func TestDistinctColors(t *testing.T) {
	if n := CreateSolidImage(8, 8, RGB{1, 2, 3}).DistinctColors(); n != 1 {
		t.Errorf("Solid image should have 1 color, got %d", n)
	}
	if n := CreateColorBarsImage(64, 4).DistinctColors(); n != 8 {
		t.Errorf("Color bars should have 8 colors, got %d", n)
	}
}

func TestResize(t *testing.T) {
	img := CreateGradientImage(100, 100)

	resized := Resize(img, 5, 7)
	if resized.Width() != 5 || resized.Height() != 7 {
		t.Errorf("Expected 5x7, got %dx%d", resized.Width(), resized.Height())
	}

	resized = Resize(img, 200, 200)
	if resized.Width() != 200 || resized.Height() != 200 {
		t.Errorf("Expected 200x200, got %dx%d", resized.Width(), resized.Height())
	}
}

func TestResizeNearestPicksSourcePixels(t *testing.T) {
	img := CreateColorBarsImage(80, 10)
	small := Resize(img, 8, 1)

	// Each output pixel samples the centre of one 10px bar.
	for x := 0; x < 8; x++ {
		want := img.GetRGB(x*10+5, 5)
		if got := small.GetRGB(x, 0); got != want {
			t.Errorf("Pixel %d: expected %v, got %v", x, want, got)
		}
	}
}

func TestResizeUnevenBlocks(t *testing.T) {
	// 10 source columns stretched over 119 output columns: block j covers
	// exactly the columns whose sample maps back to j.
	src := CreateGradientImage(10, 1)
	up := Resize(src, 119, 1)
	for x := 0; x < 119; x++ {
		j := (2*x + 1) * 10 / (2 * 119)
		if got, want := up.GetRGB(x, 0), src.GetRGB(j, 0); got != want {
			t.Fatalf("Column %d: expected source column %d (%v), got %v", x, j, want, got)
		}
	}
}

func TestBlurPreservesSolidColor(t *testing.T) {
	c := RGB{R: 200, G: 40, B: 90}
	blurred := Blur(CreateSolidImage(20, 20, c), 3.0)

	if blurred.Width() != 20 || blurred.Height() != 20 {
		t.Fatalf("Blur should keep dimensions, got %dx%d", blurred.Width(), blurred.Height())
	}
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			if got := blurred.GetRGB(x, y); got != c {
				t.Fatalf("Blur of a solid image changed (%d,%d): %v", x, y, got)
			}
		}
	}
}

func TestBlurSoftensEdges(t *testing.T) {
	img := CreateCheckerboardImage(40, 40, 20)
	blurred := Blur(img, 3.0)

	// Pixels right at the square boundary should mix black and white.
	c := blurred.GetRGB(19, 10)
	if c.R == 0 || c.R == 255 {
		t.Errorf("Expected a blended value at the edge, got %v", c)
	}
}

func TestDownUp(t *testing.T) {
	img := CreateColorBarsImage(100, 100)
	small, blocky := DownUp(img, 5, 5, 3.0)

	if small.Width() != 5 || small.Height() != 5 {
		t.Fatalf("Expected 5x5 small image, got %dx%d", small.Width(), small.Height())
	}
	if blocky.Width() != 100 || blocky.Height() != 100 {
		t.Fatalf("Expected 100x100 blocky image, got %dx%d", blocky.Width(), blocky.Height())
	}
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			if blocky.GetRGB(x, y) != small.GetRGB(x/20, y/20) {
				t.Fatalf("Pixel (%d,%d) does not match its 20x20 block", x, y)
			}
		}
	}
}

func TestLoadSaveImage(t *testing.T) {
	tmpDir := t.TempDir()
	img := CreateColorBarsImage(64, 64)

	pngPath := filepath.Join(tmpDir, "test.png")
	if err := SaveImage(img.RGBA, pngPath); err != nil {
		t.Fatalf("Failed to save PNG: %v", err)
	}

	loaded, err := LoadImage(pngPath)
	if err != nil {
		t.Fatalf("Failed to load PNG: %v", err)
	}

	// PNG should be lossless
	mse := CalculateMSE(img, loaded)
	if mse > 0.01 {
		t.Errorf("PNG should be lossless, MSE=%f", mse)
	}
}

func TestLoadImageErrors(t *testing.T) {
	tmpDir := t.TempDir()

	if _, err := LoadImage(filepath.Join(tmpDir, "missing.png")); err == nil {
		t.Error("Expected error for missing file")
	}

	bogus := filepath.Join(tmpDir, "bogus.png")
	if err := os.WriteFile(bogus, []byte("not an image"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadImage(bogus); err == nil {
		t.Error("Expected error for undecodable file")
	}
}

func TestSaveImageUnknownExtension(t *testing.T) {
	err := SaveImage(NewRGBAImage(2, 2).RGBA, filepath.Join(t.TempDir(), "out.xyz"))
	if err == nil {
		t.Error("Expected error for unknown extension")
	}
}

func TestCalculateMSE(t *testing.T) {
	img1 := CreateSolidImage(10, 10, RGB{})
	img2 := CreateSolidImage(10, 10, RGB{R: 10, G: 10, B: 10})

	if mse := CalculateMSE(img1, img1.Clone()); mse != 0 {
		t.Errorf("Identical images should have MSE=0, got %f", mse)
	}
	if mse := CalculateMSE(img1, img2); mse != 100.0 {
		t.Errorf("Expected MSE=100, got %f", mse)
	}
}

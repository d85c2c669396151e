package imageutil

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // Register WEBP decoder
)

// LoadImage loads an image from the specified path. Supports PNG, JPEG,
// GIF, TIFF, BMP and WEBP; JPEG EXIF orientation is applied so phone
// photographs come out upright.
func LoadImage(path string) (*RGBAImage, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return RGBAImageFromImage(img), nil
}

// SaveImage saves an image to the specified path. The format is determined
// by the file extension; unknown extensions are rejected.
func SaveImage(img image.Image, path string) error {
	if err := imaging.Save(img, path, imaging.JPEGQuality(95)); err != nil {
		return fmt.Errorf("failed to encode image: %w", err)
	}
	return nil
}

package project

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// ErrOpen is returned when the image viewer cannot be started.
var ErrOpen = errors.New("could not open image")

// ImageKind selects one of a project's stored images.
type ImageKind string

const (
	KindOriginal  ImageKind = "original"
	KindProcessed ImageKind = "processed"
	KindLegend    ImageKind = "legend"
)

// ParseImageKind parses a kind name. The empty string selects the
// processed image.
func ParseImageKind(s string) (ImageKind, error) {
	switch k := ImageKind(s); k {
	case "":
		return KindProcessed, nil
	case KindOriginal, KindProcessed, KindLegend:
		return k, nil
	default:
		return "", fmt.Errorf("unknown image type %q (want original, processed or legend)", s)
	}
}

// Opener displays the file at path. It defaults to the platform's image
// viewer and may be replaced, for example in tests.
var Opener = openWithViewer

func openWithViewer(path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", path)
	default:
		cmd = exec.Command("xdg-open", path)
	}
	return cmd.Start()
}

// ImagePath returns the file backing an image kind.
func (p *Project) ImagePath(kind ImageKind) string {
	switch kind {
	case KindOriginal:
		return filepath.Join(p.Path, OriginalFile)
	case KindLegend:
		return filepath.Join(p.Path, LegendFile)
	default:
		return filepath.Join(p.Path, ProcessedFile)
	}
}

// Show opens one of the project's images with Opener.
func (p *Project) Show(kind ImageKind) error {
	switch kind {
	case KindOriginal:
		if p.Original == nil {
			return ErrEmptyOriginal
		}
	case KindProcessed:
		if p.Processed == nil {
			return ErrEmptyProcessed
		}
	case KindLegend:
		if _, err := os.Stat(p.ImagePath(kind)); err != nil {
			return ErrEmptyProcessed
		}
	default:
		return fmt.Errorf("unknown image type %q", kind)
	}
	if err := Opener(p.ImagePath(kind)); err != nil {
		return fmt.Errorf("%w: %w", ErrOpen, err)
	}
	return nil
}

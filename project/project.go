// Package project keeps each pattern conversion as a named directory under
// a storage root:
//
//	<root>/<name>/original.png   source image, decoded and re-encoded
//	<root>/<name>/processed.png  finished pattern
//	<root>/<name>/legend.png     color key with stitch counts
//	<root>/<name>/project.json   manifest
//
// The intermediate mosaics (resized_down.png, resized_up.png,
// quantized.png) are written only when asked for.
package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/wbrown/intarsia"
	"github.com/wbrown/intarsia/imageutil"
)

// File names inside a project directory.
const (
	OriginalFile  = "original.png"
	ProcessedFile = "processed.png"
	LegendFile    = "legend.png"
	ManifestFile  = "project.json"
	DownFile      = "resized_down.png"
	UpFile        = "resized_up.png"
	QuantizedFile = "quantized.png"
)

// EnvRoot names the environment variable that overrides the default
// storage root.
const EnvRoot = "INTARSIA_HOME"

var (
	// ErrExists is returned when creating a project that already exists.
	ErrExists = errors.New("project exists already")
	// ErrNotExist is returned when loading or removing a missing project.
	ErrNotExist = errors.New("project does not exist")
	// ErrInvalidName is returned for names that are not a single path
	// element.
	ErrInvalidName = errors.New("invalid project name")
	// ErrEmptyOriginal is returned when a project has no original image.
	ErrEmptyOriginal = errors.New("there is no original image in this project")
	// ErrEmptyProcessed is returned when a project has no processed image.
	ErrEmptyProcessed = errors.New("there is no processed image in this project")
	// ErrBadManifest is returned when a manifest's chart does not match its
	// grid or palette.
	ErrBadManifest = errors.New("inconsistent project manifest")
)

// Manifest is the JSON description of a project, stored as project.json.
type Manifest struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"created_at"`
	GridWidth  int       `json:"grid_width"`
	GridHeight int       `json:"grid_height"`
	Colors     int       `json:"colors"`
	Axes       bool      `json:"axes"`
	Method     string    `json:"method,omitempty"`
	Palette    []string  `json:"palette,omitempty"`
	Counts     []int     `json:"counts,omitempty"`
	Cells      [][]int   `json:"cells,omitempty"`
}

// Grid returns the manifest's grid.
func (m Manifest) Grid() intarsia.GridSpec {
	return intarsia.GridSpec{Width: m.GridWidth, Height: m.GridHeight}
}

// Project is one conversion on disk. Original and Processed are nil until
// an image has been imported or a pattern applied.
type Project struct {
	Name      string
	Path      string
	Manifest  Manifest
	Original  *imageutil.RGBAImage
	Processed *imageutil.RGBAImage
}

// Store manages projects under Root.
type Store struct {
	Root string
}

// NewStore returns a store rooted at root.
func NewStore(root string) *Store {
	return &Store{Root: root}
}

// DefaultRoot returns $INTARSIA_HOME if set, otherwise ~/.intarsia.
func DefaultRoot() (string, error) {
	if root := os.Getenv(EnvRoot); root != "" {
		return root, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".intarsia"), nil
}

// dir returns the directory of a named project.
func (s *Store) dir(name string) (string, error) {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) || filepath.Base(name) != name {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return filepath.Join(s.Root, name), nil
}

// Exists reports whether a project directory exists.
func (s *Store) Exists(name string) bool {
	dir, err := s.dir(name)
	if err != nil {
		return false
	}
	_, err = os.Stat(dir)
	return err == nil
}

// Create makes an empty project directory, creating the root if needed.
func (s *Store) Create(name string) (*Project, error) {
	dir, err := s.dir(name)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(s.Root, 0755); err != nil {
		return nil, fmt.Errorf("creating project root: %w", err)
	}
	if err := os.Mkdir(dir, 0755); err != nil {
		if errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("%w: %s", ErrExists, name)
		}
		return nil, fmt.Errorf("creating project: %w", err)
	}
	return &Project{
		Name: name,
		Path: dir,
		Manifest: Manifest{
			ID:        uuid.NewString(),
			Name:      name,
			CreatedAt: time.Now().UTC(),
		},
	}, nil
}

// Load opens an existing project and decodes its images.
func (s *Store) Load(name string) (*Project, error) {
	dir, err := s.dir(name)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(dir); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotExist, name)
		}
		return nil, err
	}

	p := &Project{Name: name, Path: dir}
	m, err := readManifest(dir)
	if err != nil {
		return nil, err
	}
	p.Manifest = m
	if p.Manifest.Name == "" {
		p.Manifest.Name = name
	}
	if p.Original, err = loadOptional(filepath.Join(dir, OriginalFile)); err != nil {
		return nil, err
	}
	if p.Processed, err = loadOptional(filepath.Join(dir, ProcessedFile)); err != nil {
		return nil, err
	}
	return p, nil
}

// Remove deletes a project directory.
func (s *Store) Remove(name string) error {
	dir, err := s.dir(name)
	if err != nil {
		return err
	}
	if _, err := os.Stat(dir); errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrNotExist, name)
	}
	return os.RemoveAll(dir)
}

// List returns the manifests of all projects, sorted by name. A missing
// root holds no projects.
func (s *Store) List() ([]Manifest, error) {
	entries, err := os.ReadDir(s.Root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	var out []Manifest
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		m, err := readManifest(filepath.Join(s.Root, e.Name()))
		if err != nil {
			return nil, err
		}
		if m.Name == "" {
			m.Name = e.Name()
		}
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Remove deletes the project's directory if it exists.
func (p *Project) Remove() error {
	if _, err := os.Stat(p.Path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return os.RemoveAll(p.Path)
}

// ImportImage decodes the image at path and stores it as the project's
// original.
func (p *Project) ImportImage(path string) error {
	img, err := imageutil.LoadImage(path)
	if err != nil {
		return fmt.Errorf("%w: reading %s: %w", intarsia.ErrCodec, path, err)
	}
	if err := save(img, filepath.Join(p.Path, OriginalFile)); err != nil {
		return err
	}
	p.Original = img
	return nil
}

// Apply stores a pipeline result: the processed pattern, its legend and
// the manifest, plus the intermediate mosaics when keepStages is set.
func (p *Project) Apply(res *intarsia.Result, keepStages bool) error {
	if keepStages {
		stages := []struct {
			img  *imageutil.RGBAImage
			name string
		}{
			{res.Down, DownFile},
			{res.Up, UpFile},
			{res.Quantized, QuantizedFile},
		}
		for _, s := range stages {
			if err := save(s.img, filepath.Join(p.Path, s.name)); err != nil {
				return err
			}
		}
	}

	if err := save(res.Processed, filepath.Join(p.Path, ProcessedFile)); err != nil {
		return err
	}
	legend, err := intarsia.RenderLegend(res.Chart)
	if err != nil {
		return err
	}
	if err := save(imageutil.RGBAImageFromImage(legend), filepath.Join(p.Path, LegendFile)); err != nil {
		return err
	}

	p.Processed = res.Processed
	p.Manifest.GridWidth = res.Grid.Width
	p.Manifest.GridHeight = res.Grid.Height
	p.Manifest.Colors = len(res.Palette)
	p.Manifest.Palette = res.Palette.Hex()
	p.Manifest.Counts = res.Chart.Counts
	p.Manifest.Cells = res.Chart.Cells
	return p.writeManifest()
}

// Chart rebuilds the stitch chart recorded in the manifest.
func (p *Project) Chart() (*intarsia.Chart, error) {
	if len(p.Manifest.Cells) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyProcessed, p.Name)
	}
	palette, err := intarsia.ParsePalette(p.Manifest.Palette)
	if err != nil {
		return nil, err
	}
	if err := p.Manifest.checkChart(len(palette)); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrBadManifest, p.Name, err)
	}
	return &intarsia.Chart{
		Grid:    p.Manifest.Grid(),
		Palette: palette,
		Cells:   p.Manifest.Cells,
		Counts:  p.Manifest.Counts,
	}, nil
}

// checkChart verifies that cells, counts and grid agree for a palette of
// n colors.
func (m Manifest) checkChart(n int) error {
	if n == 0 {
		return errors.New("empty palette")
	}
	if m.GridWidth <= 0 || m.GridHeight <= 0 {
		return fmt.Errorf("grid %s", m.Grid())
	}
	if len(m.Counts) != n {
		return fmt.Errorf("%d counts for %d colors", len(m.Counts), n)
	}
	if len(m.Cells) != m.GridHeight {
		return fmt.Errorf("%d rows for grid %s", len(m.Cells), m.Grid())
	}
	for i, row := range m.Cells {
		if len(row) != m.GridWidth {
			return fmt.Errorf("row %d has %d cells for grid %s", i, len(row), m.Grid())
		}
		for j, idx := range row {
			if idx < 0 || idx >= n {
				return fmt.Errorf("cell (%d,%d) uses color %d of %d", i, j, idx, n)
			}
		}
	}
	return nil
}

func (p *Project) writeManifest() error {
	data, err := json.MarshalIndent(p.Manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(p.Path, ManifestFile), data, 0644); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	return nil
}

func readManifest(dir string) (Manifest, error) {
	var m Manifest
	data, err := os.ReadFile(filepath.Join(dir, ManifestFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return m, nil
		}
		return m, fmt.Errorf("reading manifest: %w", err)
	}
	if err := json.Unmarshal(data, &m); err != nil {
		return m, fmt.Errorf("error unmarshalling manifest %s: %w", dir, err)
	}
	return m, nil
}

func loadOptional(path string) (*imageutil.RGBAImage, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	img, err := imageutil.LoadImage(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", intarsia.ErrCodec, err)
	}
	return img, nil
}

func save(img *imageutil.RGBAImage, path string) error {
	if err := imageutil.SaveImage(img.RGBA, path); err != nil {
		return fmt.Errorf("%w: %w", intarsia.ErrCodec, err)
	}
	return nil
}

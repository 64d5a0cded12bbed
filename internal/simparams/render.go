package simparams

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	DefaultContourLevels = 100
	DefaultFPS           = 25
	DefaultPlotSizeCM    = 14.0
	DefaultWorkers       = 0 // 0 means GOMAXPROCS
)

// RenderFile is the optional per-project rendering settings file.
const RenderFile = "render.yaml"

// Render holds plotting and animation settings. Unlike Params these are
// not shared with the upstream tools, so they live in their own YAML file
// and every field has a default.
type Render struct {
	ContourLevels int     `yaml:"contour_levels"`
	FPS           int     `yaml:"fps"`
	PlotSizeCM    float64 `yaml:"plot_size_cm"`
	Workers       int     `yaml:"workers"`
}

func DefaultRender() *Render {
	return &Render{
		ContourLevels: DefaultContourLevels,
		FPS:           DefaultFPS,
		PlotSizeCM:    DefaultPlotSizeCM,
		Workers:       DefaultWorkers,
	}
}

// LoadRender reads render.yaml from the project directory. A missing file
// is not an error; defaults apply.
func LoadRender(projDir string) (*Render, error) {
	path := filepath.Join(projDir, RenderFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultRender(), nil
		}
		return nil, err
	}
	r := DefaultRender()
	if err := yaml.Unmarshal(data, r); err != nil {
		return nil, fmt.Errorf("simparams: parse %s: %w", path, err)
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Render) Validate() error {
	if r.ContourLevels < 2 {
		return fmt.Errorf("simparams: contour_levels must be at least 2, got %d", r.ContourLevels)
	}
	if r.FPS < 1 || r.FPS > 100 {
		return fmt.Errorf("simparams: fps must be in [1,100], got %d", r.FPS)
	}
	if r.PlotSizeCM <= 0 {
		return fmt.Errorf("simparams: plot_size_cm must be positive, got %g", r.PlotSizeCM)
	}
	if r.Workers < 0 {
		return fmt.Errorf("simparams: workers must not be negative, got %d", r.Workers)
	}
	return nil
}

// GIFDelay converts frames per second to the GIF delay unit (hundredths
// of a second per frame).
func (r *Render) GIFDelay() int {
	d := 100 / r.FPS
	if d < 1 {
		d = 1
	}
	return d
}

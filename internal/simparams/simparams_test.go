package simparams

import (
	"os"
	"path/filepath"
	"testing"
)

func writeParams(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, DefaultFile)
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

const validJSON = `{
	"x_min": 0, "x_max": 2, "y_min": 0, "y_max": 1,
	"nx": 201, "ny": 101, "data_nx": 101, "data_ny": 51,
	"t_min": 0, "t_max": 15, "data_delta_t": 0.25,
	"steps": 60, "file_prefix": "velocity_", "direction": "forward"
}`

func TestLoad(t *testing.T) {
	path := writeParams(t, t.TempDir(), validJSON)

	p, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if p.NX != 201 || p.NY != 101 {
		t.Errorf("grid: got %dx%d, want 201x101", p.NX, p.NY)
	}
	if p.Direction != Forward {
		t.Errorf("direction: got %s", p.Direction)
	}
	if p.FilePrefix != "velocity_" {
		t.Errorf("file_prefix: got %s", p.FilePrefix)
	}
}

func TestLoadBadDirection(t *testing.T) {
	body := `{
		"x_min": 0, "x_max": 2, "y_min": 0, "y_max": 1,
		"nx": 10, "ny": 10, "data_nx": 10, "data_ny": 10,
		"t_min": 0, "t_max": 1, "data_delta_t": 0.5,
		"steps": 2, "file_prefix": "v_", "direction": "sideways"
	}`
	path := writeParams(t, t.TempDir(), body)

	if _, err := Load(path); err != ErrBadDirection {
		t.Errorf("expected ErrBadDirection, got %v", err)
	}
}

func TestPrecisionOf(t *testing.T) {
	tests := []struct {
		num  float64
		want int
	}{
		{1.0, 0},
		{0.5, 1},
		{0.25, 2},
		{0.125, 3},
		{2.0, 0},
		{0.1, 1},
	}
	for _, tt := range tests {
		if got := PrecisionOf(tt.num); got != tt.want {
			t.Errorf("PrecisionOf(%g) = %d, want %d", tt.num, got, tt.want)
		}
	}
}

func TestDerivedValues(t *testing.T) {
	p := &Params{
		XMin: 0, XMax: 2, YMin: 0, YMax: 1,
		NX: 10, NY: 10, DataNX: 10, DataNY: 10,
		TMin: 0, TMax: 15, DataDeltaT: 0.25,
		Steps: 60, Direction: Forward,
	}
	if got := p.CalcDeltaT(); got != 0.25 {
		t.Errorf("CalcDeltaT = %g, want 0.25", got)
	}
	if got := p.SignedDeltaT(); got != 0.25 {
		t.Errorf("SignedDeltaT = %g, want 0.25", got)
	}
	if p.SignPrefix() != "positive_" {
		t.Errorf("SignPrefix = %s", p.SignPrefix())
	}
	if p.InitialTime() != 0 || p.FinalTime() != 15 {
		t.Errorf("times: initial %g final %g", p.InitialTime(), p.FinalTime())
	}

	p.Direction = Backward
	if got := p.SignedDeltaT(); got != -0.25 {
		t.Errorf("backward SignedDeltaT = %g, want -0.25", got)
	}
	if p.SignPrefix() != "negative_" {
		t.Errorf("backward SignPrefix = %s", p.SignPrefix())
	}
	if p.InitialTime() != 15 || p.FinalTime() != 0 {
		t.Errorf("backward times: initial %g final %g", p.InitialTime(), p.FinalTime())
	}
}

func TestFormatTime(t *testing.T) {
	p := &Params{DataDeltaT: 0.25}
	if got := p.FormatTime(1.5); got != "1.50" {
		t.Errorf("FormatTime(1.5) = %q, want \"1.50\"", got)
	}
	p.DataDeltaT = 1
	if got := p.FormatTime(3); got != "3" {
		t.Errorf("FormatTime(3) = %q, want \"3\"", got)
	}
}

func TestValidate(t *testing.T) {
	base := func() Params {
		return Params{
			XMin: 0, XMax: 2, YMin: 0, YMax: 1,
			NX: 10, NY: 10, DataNX: 10, DataNY: 10,
			TMin: 0, TMax: 1, DataDeltaT: 0.5,
			Steps: 2, Direction: Forward,
		}
	}

	tests := []struct {
		name   string
		mutate func(*Params)
	}{
		{"empty domain", func(p *Params) { p.XMax = p.XMin }},
		{"tiny grid", func(p *Params) { p.NX = 1 }},
		{"tiny data grid", func(p *Params) { p.DataNY = 1 }},
		{"empty time range", func(p *Params) { p.TMax = p.TMin }},
		{"negative delta", func(p *Params) { p.DataDeltaT = -0.1 }},
		{"zero steps", func(p *Params) { p.Steps = 0 }},
	}
	for _, tt := range tests {
		p := base()
		tt.mutate(&p)
		if err := p.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tt.name)
		}
	}

	p := base()
	if err := p.Validate(); err != nil {
		t.Errorf("valid params rejected: %v", err)
	}
}

func TestLoadRenderDefaults(t *testing.T) {
	r, err := LoadRender(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if r.ContourLevels != DefaultContourLevels || r.FPS != DefaultFPS {
		t.Errorf("defaults not applied: %+v", r)
	}
}

func TestLoadRenderFile(t *testing.T) {
	dir := t.TempDir()
	body := "contour_levels: 50\nfps: 10\n"
	if err := os.WriteFile(filepath.Join(dir, RenderFile), []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	r, err := LoadRender(dir)
	if err != nil {
		t.Fatal(err)
	}
	if r.ContourLevels != 50 {
		t.Errorf("contour_levels = %d, want 50", r.ContourLevels)
	}
	if r.FPS != 10 {
		t.Errorf("fps = %d, want 10", r.FPS)
	}
	// Unset fields keep their defaults.
	if r.PlotSizeCM != DefaultPlotSizeCM {
		t.Errorf("plot_size_cm = %g, want default", r.PlotSizeCM)
	}
}

func TestGIFDelay(t *testing.T) {
	tests := []struct {
		fps  int
		want int
	}{
		{25, 4},
		{100, 1},
		{10, 10},
	}
	for _, tt := range tests {
		r := DefaultRender()
		r.FPS = tt.fps
		if got := r.GIFDelay(); got != tt.want {
			t.Errorf("GIFDelay at %d fps = %d, want %d", tt.fps, got, tt.want)
		}
	}
}
